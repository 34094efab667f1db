package booking

import (
	"net/http"
	"time"

	"github.com/marcvidal/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "booking not found")
	ErrRoomNotFound       = apperror.New(http.StatusNotFound, "room not found")
	ErrDateOrder          = apperror.New(http.StatusBadRequest, "check-out date must be after check-in date")
	ErrStayTooLong        = apperror.New(http.StatusBadRequest, "stay exceeds the maximum length")
	ErrOccupancy          = apperror.New(http.StatusBadRequest, "at least one adult is required")
	ErrCapacityExceeded   = apperror.New(http.StatusBadRequest, "guest count exceeds room capacity")
	ErrInvalidStatus      = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrAlreadyTerminal    = apperror.New(http.StatusConflict, "booking is already cancelled or completed")
	ErrInvalidTransition  = apperror.New(http.StatusConflict, "status transition not allowed")
	ErrCancelWindowClosed = apperror.New(http.StatusConflict, "cancellation window has closed")
	ErrPermissionDenied   = apperror.New(http.StatusForbidden, "permission denied")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known booking status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Terminal statuses admit no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Active bookings own the room-nights in [check-in, check-out).
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo encodes the lifecycle:
// pending -> confirmed -> completed, and pending|confirmed -> cancelled.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCompleted || target == StatusCancelled
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

type Booking struct {
	ID              string
	UserID          string
	UserName        string
	RoomID          string
	RoomNumber      string
	HotelID         string
	HotelName       string
	CheckIn         time.Time // UTC midnight
	CheckOut        time.Time // exclusive: the check-out night is not occupied
	Adults          int
	Children        int
	TotalPriceCents int64
	Status          Status
	PaymentStatus   PaymentStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Filter struct {
	UserID   string
	RoomID   string
	HotelID  string
	Status   string
	FromDate *time.Time
	ToDate   *time.Time
	Page     int
	PageSize int
}
