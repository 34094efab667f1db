package booking

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/marcvidal/hotel-booking-backend/internal/ledger"
	"github.com/marcvidal/hotel-booking-backend/internal/pkg/apperror"
	"github.com/marcvidal/hotel-booking-backend/internal/room"
)

type CreateRequest struct {
	UserID   string
	RoomID   string
	CheckIn  time.Time
	CheckOut time.Time
	Adults   int
	Children int
}

type Service interface {
	// Allocate atomically reserves the stay's room-nights and materializes a
	// pending booking priced from the ledger.
	Allocate(ctx context.Context, req CreateRequest) (*Booking, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Cancel releases the booking's nights and moves it to cancelled,
	// subject to the cancellation window. Admins bypass the window.
	Cancel(ctx context.Context, id, actorID string, isAdmin bool) (*Booking, error)

	// Transition moves a booking along pending -> confirmed -> completed.
	// Non-admin actors may only cancel their own booking.
	Transition(ctx context.Context, id string, target Status, actorID string, isAdmin bool) (*Booking, error)
}

type service struct {
	repo        Repository
	ledger      ledger.Service
	rooms       room.Service
	maxStay     int
	cancelAhead time.Duration
	log         *zap.Logger
}

// NewService creates the booking service. maxStayNights caps stay length;
// cancelAhead is how long before check-in a cancellation must happen
// (zero disables the window).
func NewService(repo Repository, ledgerSvc ledger.Service, rooms room.Service,
	maxStayNights int, cancelAhead time.Duration, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		repo:        repo,
		ledger:      ledgerSvc,
		rooms:       rooms,
		maxStay:     maxStayNights,
		cancelAhead: cancelAhead,
		log:         log,
	}
}

func (s *service) Allocate(ctx context.Context, req CreateRequest) (*Booking, error) {
	rm, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !rm.IsActive {
		return nil, ErrRoomNotFound
	}

	stay := StayRequest{
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Adults:   req.Adults,
		Children: req.Children,
	}
	if err := ValidateStay(stay, rm.Capacity, s.maxStay); err != nil {
		return nil, err
	}

	checkIn := ledger.Day(req.CheckIn)
	checkOut := ledger.Day(req.CheckOut)
	nights := ledger.Nights(checkIn, checkOut)

	// Unlocked price read. A stale read cannot half-book the range: the
	// claim below is all-or-nothing, so the worst case is a clean conflict.
	priced, err := s.ledger.GetRange(ctx, rm.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	total, err := TotalPriceCents(priced, rm.BasePriceCents)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Claim(ctx, rm.ID, nights); err != nil {
		var conflict *ledger.ConflictError
		if errors.As(err, &conflict) {
			return nil, apperror.Wrapf(err, http.StatusConflict,
				"room unavailable on %s", conflict.Date.Format(time.DateOnly))
		}
		return nil, err
	}

	b := &Booking{
		UserID:          req.UserID,
		RoomID:          rm.ID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Adults:          req.Adults,
		Children:        req.Children,
		TotalPriceCents: total,
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		// Compensate the claim so the nights are not stranded.
		if relErr := s.ledger.Release(ctx, rm.ID, nights); relErr != nil {
			s.log.Error("failed to release nights after booking insert failure",
				zap.String("room_id", rm.ID), zap.Error(relErr))
		}
		return nil, err
	}
	b.RoomNumber = rm.RoomNumber
	b.HotelID = rm.HotelID
	b.HotelName = rm.HotelName

	s.log.Info("booking allocated",
		zap.String("booking_id", b.ID),
		zap.String("room_id", b.RoomID),
		zap.String("check_in", checkIn.Format(time.DateOnly)),
		zap.String("check_out", checkOut.Format(time.DateOnly)),
		zap.Int64("total_price_cents", total))
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, id, actorID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && b.UserID != actorID {
		return nil, ErrPermissionDenied
	}
	if b.Status.Terminal() {
		return nil, ErrAlreadyTerminal
	}
	if !isAdmin && s.cancelAhead > 0 {
		deadline := b.CheckIn.Add(-s.cancelAhead)
		if time.Now().UTC().After(deadline) {
			return nil, ErrCancelWindowClosed
		}
	}

	// The booking owns these nights, so a concurrent claim cannot race the
	// release into a corrupt state: claims only succeed on available nights.
	nights := ledger.Nights(b.CheckIn, b.CheckOut)
	if err := s.ledger.Release(ctx, b.RoomID, nights); err != nil {
		return nil, err
	}

	payment := b.PaymentStatus
	if payment == PaymentPaid {
		payment = PaymentRefunded
	}
	if err := s.repo.UpdateStatus(ctx, b.ID, StatusCancelled, payment); err != nil {
		// Nights are released but the booking is still active; the
		// reconciliation scan re-claims them until the status write lands.
		s.log.Error("booking status write failed after release",
			zap.String("booking_id", b.ID), zap.Error(err))
		return nil, err
	}

	b.Status = StatusCancelled
	b.PaymentStatus = payment
	s.log.Info("booking cancelled",
		zap.String("booking_id", b.ID), zap.String("actor_id", actorID))
	return b, nil
}

func (s *service) Transition(ctx context.Context, id string, target Status, actorID string, isAdmin bool) (*Booking, error) {
	if !target.Valid() {
		return nil, ErrInvalidStatus
	}
	if target == StatusCancelled {
		return s.Cancel(ctx, id, actorID, isAdmin)
	}

	// Only cancellation is open to booking owners.
	if !isAdmin {
		return nil, ErrPermissionDenied
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status.Terminal() {
		return nil, ErrAlreadyTerminal
	}
	if !b.Status.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	// Completion leaves the nights claimed; past dates are never sold again.
	if err := s.repo.UpdateStatus(ctx, b.ID, target, b.PaymentStatus); err != nil {
		return nil, err
	}
	b.Status = target
	return b, nil
}
