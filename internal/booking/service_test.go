package booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcvidal/hotel-booking-backend/internal/ledger"
	"github.com/marcvidal/hotel-booking-backend/internal/pkg/apperror"
	"github.com/marcvidal/hotel-booking-backend/internal/room"
)

type stubRoomService struct {
	rooms map[string]*room.Room
}

func (s *stubRoomService) GetByID(ctx context.Context, id string) (*room.Room, error) {
	rm, ok := s.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	clone := *rm
	return &clone, nil
}

func (s *stubRoomService) Create(ctx context.Context, req room.CreateRequest) (*room.Room, error) {
	return nil, room.ErrNotFound
}

func (s *stubRoomService) List(ctx context.Context, filter room.Filter) ([]*room.Room, int, error) {
	return nil, 0, nil
}

func (s *stubRoomService) Update(ctx context.Context, id string, req room.UpdateRequest) (*room.Room, error) {
	return nil, room.ErrNotFound
}

func (s *stubRoomService) Delete(ctx context.Context, id string) error {
	return room.ErrNotFound
}

type testEnv struct {
	svc    Service
	repo   *MemoryRepository
	store  *ledger.MemoryStore
	ledger ledger.Service
}

func newTestEnv(t *testing.T, cancelAhead time.Duration) *testEnv {
	t.Helper()

	store := ledger.NewMemoryStore()
	ledgerSvc := ledger.NewService(store, nil, nil)
	repo := NewMemoryRepository()

	rooms := &stubRoomService{rooms: map[string]*room.Room{
		"room-1": {
			ID:             "room-1",
			HotelID:        "hotel-1",
			HotelName:      "Harbor View",
			RoomNumber:     "101",
			IsActive:       true,
			Capacity:       3,
			BasePriceCents: 10000,
		},
		"room-closed": {
			ID:       "room-closed",
			IsActive: false,
			Capacity: 2,
		},
	}}

	return &testEnv{
		svc:    NewService(repo, ledgerSvc, rooms, 30, cancelAhead, nil),
		repo:   repo,
		store:  store,
		ledger: ledgerSvc,
	}
}

func claimedCount(t *testing.T, store *ledger.MemoryStore, from time.Time) int {
	t.Helper()
	claimed, err := store.ListClaimedFrom(context.Background(), from)
	require.NoError(t, err)
	return len(claimed)
}

func TestAllocateTwoNightStay(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, 0)

	b, err := env.svc.Allocate(ctx, CreateRequest{
		UserID:   "user-1",
		RoomID:   "room-1",
		CheckIn:  day("2025-06-01"),
		CheckOut: day("2025-06-03"),
		Adults:   2,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, PaymentPending, b.PaymentStatus)
	assert.Equal(t, int64(20000), b.TotalPriceCents)
	assert.NotEmpty(t, b.ID)

	// Exactly the two stay nights are claimed; check-out day is untouched.
	assert.Equal(t, 2, claimedCount(t, env.store, day("2025-06-01")))
	assert.Equal(t, 0, claimedCount(t, env.store, day("2025-06-03")))
}

func TestAllocateUsesNightlyOverrides(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, 0)

	weekend := int64(15000)
	require.NoError(t, env.ledger.SetPrice(ctx, "room-1", day("2025-06-02"), &weekend))

	b, err := env.svc.Allocate(ctx, CreateRequest{
		UserID:   "user-1",
		RoomID:   "room-1",
		CheckIn:  day("2025-06-01"),
		CheckOut: day("2025-06-03"),
		Adults:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25000), b.TotalPriceCents)
}

func TestAllocateConflictNamesFirstOverlappingNight(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, 0)

	_, err := env.svc.Allocate(ctx, CreateRequest{
		UserID: "user-1", RoomID: "room-1",
		CheckIn: day("2025-06-01"), CheckOut: day("2025-06-03"), Adults: 1,
	})
	require.NoError(t, err)

	// Overlapping request from another guest loses with a 409.
	_, err = env.svc.Allocate(ctx, CreateRequest{
		UserID: "user-2", RoomID: "room-1",
		CheckIn: day("2025-05-30"), CheckOut: day("2025-06-02"), Adults: 1,
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Contains(t, appErr.Message, "2025-06-01")

	// The loser's non-overlapping nights must not be half-claimed.
	assert.Equal(t, 0, claimedCount(t, env.store, day("2025-05-30"))-claimedCount(t, env.store, day("2025-06-01")))
}

func TestAllocateConcurrentOverlapSingleWinner(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, 0)

	const guests = 8
	var wg sync.WaitGroup
	errs := make([]error, guests)

	for i := 0; i < guests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.Allocate(ctx, CreateRequest{
				UserID: fmt.Sprintf("user-%d", i), RoomID: "room-1",
				CheckIn: day("2025-06-01"), CheckOut: day("2025-06-03"), Adults: 1,
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusConflict, appErr.Code)
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 2, claimedCount(t, env.store, day("2025-06-01")))
}

func TestAllocateBackToBackStaysDoNotConflict(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, 0)

	_, err := env.svc.Allocate(ctx, CreateRequest{
		UserID: "user-1", RoomID: "room-1",
		CheckIn: day("2025-06-01"), CheckOut: day("2025-06-03"), Adults: 1,
	})
	require.NoError(t, err)

	// Check-in on the previous guest's check-out day.
	_, err = env.svc.Allocate(ctx, CreateRequest{
		UserID: "user-2", RoomID: "room-1",
		CheckIn: day("2025-06-03"), CheckOut: day("2025-06-05"), Adults: 1,
	})
	require.NoError(t, err)
}

func TestAllocateCapacityExceededLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, 0)

	_, err := env.svc.Allocate(ctx, CreateRequest{
		UserID: "user-1", RoomID: "room-1",
		CheckIn: day("2025-06-01"), CheckOut: day("2025-06-03"),
		Adults: 3, Children: 1,
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 0, claimedCount(t, env.store, day("2025-06-01")))
}

func TestAllocateUnknownOrInactiveRoom(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, 0)

	_, err := env.svc.Allocate(ctx, CreateRequest{
		UserID: "user-1", RoomID: "room-missing",
		CheckIn: day("2025-06-01"), CheckOut: day("2025-06-02"), Adults: 1,
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = env.svc.Allocate(ctx, CreateRequest{
		UserID: "user-1", RoomID: "room-closed",
		CheckIn: day("2025-06-01"), CheckOut: day("2025-06-02"), Adults: 1,
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCancelReleasesNightsForRebooking(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, 0)

	b, err := env.svc.Allocate(ctx, CreateRequest{
		UserID: "user-1", RoomID: "room-1",
		CheckIn: day("2025-06-01"), CheckOut: day("2025-06-03"), Adults: 1,
	})
	require.NoError(t, err)

	cancelled, err := env.svc.Cancel(ctx, b.ID, "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, 0, claimedCount(t, env.store, day("2025-06-01")))

	// The same range is sellable again.
	_, err = env.svc.Allocate(ctx, CreateRequest{
		UserID: "user-2", RoomID: "room-1",
		CheckIn: day("2025-06-01"), CheckOut: day("2025-06-03"), Adults: 1,
	})
	require.NoError(t, err)
}

func TestCancelRefundsPaidBooking(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, 0)

	b, err := env.svc.Allocate(ctx, CreateRequest{
		UserID: "user-1", RoomID: "room-1",
		CheckIn: day("2025-06-01"), CheckOut: day("2025-06-02"), Adults: 1,
	})
	require.NoError(t, err)
	require.NoError(t, env.repo.UpdateStatus(ctx, b.ID, StatusConfirmed, PaymentPaid))

	cancelled, err := env.svc.Cancel(ctx, b.ID, "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, PaymentRefunded, cancelled.PaymentStatus)
}

func TestCancelPermissionAndTerminalChecks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, 0)

	b, err := env.svc.Allocate(ctx, CreateRequest{
		UserID: "user-1", RoomID: "room-1",
		CheckIn: day("2025-06-01"), CheckOut: day("2025-06-02"), Adults: 1,
	})
	require.NoError(t, err)

	_, err = env.svc.Cancel(ctx, b.ID, "user-2", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// Admin may cancel on behalf of the guest.
	_, err = env.svc.Cancel(ctx, b.ID, "admin-1", true)
	require.NoError(t, err)

	// A second cancel hits the terminal guard.
	_, err = env.svc.Cancel(ctx, b.ID, "user-1", false)
	assert.ErrorIs(t, err, ErrAlreadyTerminal)
}

func TestCancelWindowClosed(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, 48*time.Hour)

	checkIn := ledger.Day(time.Now().UTC().AddDate(0, 0, 1))
	b, err := env.svc.Allocate(ctx, CreateRequest{
		UserID: "user-1", RoomID: "room-1",
		CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2), Adults: 1,
	})
	require.NoError(t, err)

	// Check-in is within 48h, so the guest is too late.
	_, err = env.svc.Cancel(ctx, b.ID, "user-1", false)
	assert.ErrorIs(t, err, ErrCancelWindowClosed)

	// Admins bypass the window.
	_, err = env.svc.Cancel(ctx, b.ID, "admin-1", true)
	require.NoError(t, err)
}

func TestCancelWindowOpen(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, 48*time.Hour)

	checkIn := ledger.Day(time.Now().UTC().AddDate(0, 0, 10))
	b, err := env.svc.Allocate(ctx, CreateRequest{
		UserID: "user-1", RoomID: "room-1",
		CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 1), Adults: 1,
	})
	require.NoError(t, err)

	_, err = env.svc.Cancel(ctx, b.ID, "user-1", false)
	require.NoError(t, err)
}

func TestTransitionLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, 0)

	b, err := env.svc.Allocate(ctx, CreateRequest{
		UserID: "user-1", RoomID: "room-1",
		CheckIn: day("2025-06-01"), CheckOut: day("2025-06-03"), Adults: 1,
	})
	require.NoError(t, err)

	// Guests cannot confirm their own booking.
	_, err = env.svc.Transition(ctx, b.ID, StatusConfirmed, "user-1", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	confirmed, err := env.svc.Transition(ctx, b.ID, StatusConfirmed, "admin-1", true)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)

	// pending is not reachable from confirmed.
	_, err = env.svc.Transition(ctx, b.ID, StatusPending, "admin-1", true)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	completed, err := env.svc.Transition(ctx, b.ID, StatusCompleted, "admin-1", true)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, completed.Status)

	// Completion keeps the nights claimed.
	assert.Equal(t, 2, claimedCount(t, env.store, day("2025-06-01")))

	_, err = env.svc.Transition(ctx, b.ID, StatusConfirmed, "admin-1", true)
	assert.ErrorIs(t, err, ErrAlreadyTerminal)
}

func TestTransitionCancelDelegates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, 0)

	b, err := env.svc.Allocate(ctx, CreateRequest{
		UserID: "user-1", RoomID: "room-1",
		CheckIn: day("2025-06-01"), CheckOut: day("2025-06-02"), Adults: 1,
	})
	require.NoError(t, err)

	// Owners may cancel through the status endpoint.
	cancelled, err := env.svc.Transition(ctx, b.ID, StatusCancelled, "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, 0, claimedCount(t, env.store, day("2025-06-01")))
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, 0)

	_, err := env.svc.Transition(ctx, "booking-1", Status("teleported"), "admin-1", true)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, 0)

	_, err := env.svc.GetByID(ctx, "booking-404")
	assert.True(t, errors.Is(err, ErrNotFound))
}
