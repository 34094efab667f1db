package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcvidal/hotel-booking-backend/internal/booking"
	"github.com/marcvidal/hotel-booking-backend/internal/ledger"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

type fixture struct {
	repo   *booking.MemoryRepository
	store  *ledger.MemoryStore
	ledger ledger.Service
	rec    *Reconciler
}

func newFixture(t *testing.T, now string) *fixture {
	t.Helper()

	repo := booking.NewMemoryRepository()
	store := ledger.NewMemoryStore()
	ledgerSvc := ledger.NewService(store, nil, nil)

	rec := NewReconciler(repo, ledgerSvc, nil)
	rec.now = func() time.Time { return day(now) }

	return &fixture{repo: repo, store: store, ledger: ledgerSvc, rec: rec}
}

func (f *fixture) addBooking(t *testing.T, roomID, checkIn, checkOut string, status booking.Status) *booking.Booking {
	t.Helper()
	b := &booking.Booking{
		UserID:   "user-1",
		RoomID:   roomID,
		CheckIn:  day(checkIn),
		CheckOut: day(checkOut),
		Adults:   1,
		Status:   status,
	}
	require.NoError(t, f.repo.Create(context.Background(), b))
	return b
}

func TestRunConsistentStateIsANoOp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "2025-06-01")

	f.addBooking(t, "room-1", "2025-06-10", "2025-06-12", booking.StatusConfirmed)
	require.NoError(t, f.ledger.Claim(ctx, "room-1", ledger.Nights(day("2025-06-10"), day("2025-06-12"))))

	report, err := f.rec.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Reclaimed)
	assert.Equal(t, 0, report.Released)
}

func TestRunReclaimsDriftedBookingNights(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "2025-06-01")

	// An active booking whose nights were lost, e.g. a cancel that failed
	// halfway and released nights without flipping the status.
	f.addBooking(t, "room-1", "2025-06-10", "2025-06-13", booking.StatusConfirmed)

	report, err := f.rec.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Reclaimed)
	assert.Equal(t, 0, report.Released)

	claimed, err := f.store.ListClaimedFrom(ctx, day("2025-06-01"))
	require.NoError(t, err)
	assert.Len(t, claimed, 3)

	// A second pass finds nothing to do.
	report, err = f.rec.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Reclaimed+report.Released)
}

func TestRunReleasesOrphanClaims(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "2025-06-01")

	// Claimed nights with no active booking: the booking insert failed after
	// the claim, or the booking was since cancelled.
	require.NoError(t, f.ledger.Claim(ctx, "room-1", ledger.Nights(day("2025-06-05"), day("2025-06-07"))))

	report, err := f.rec.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Reclaimed)
	assert.Equal(t, 2, report.Released)

	claimed, err := f.store.ListClaimedFrom(ctx, day("2025-06-01"))
	require.NoError(t, err)
	assert.Empty(t, claimed)
}

func TestRunIgnoresCancelledBookingsAndAdminBlocks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "2025-06-01")

	// Cancelled bookings do not own nights, so nothing gets reclaimed.
	f.addBooking(t, "room-1", "2025-06-10", "2025-06-12", booking.StatusCancelled)

	// Admin blocks are not claims and must survive the orphan scan.
	require.NoError(t, f.ledger.SetAvailability(ctx, "room-2", day("2025-06-15"), false))

	report, err := f.rec.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Reclaimed)
	assert.Equal(t, 0, report.Released)

	nights, err := f.ledger.GetRange(ctx, "room-2", day("2025-06-15"), day("2025-06-16"))
	require.NoError(t, err)
	require.Len(t, nights, 1)
	assert.False(t, nights[0].IsAvailable)
}

func TestRunOnlyTouchesNightsFromTodayOnward(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "2025-06-11")

	// Stay straddles today: 06-10 is in the past, 06-11 and 06-12 are not.
	f.addBooking(t, "room-1", "2025-06-10", "2025-06-13", booking.StatusConfirmed)

	report, err := f.rec.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Reclaimed)

	claimed, err := f.store.ListClaimedFrom(ctx, day("2025-06-01"))
	require.NoError(t, err)
	require.Len(t, claimed, 2)
	assert.Equal(t, day("2025-06-11"), claimed[0].Date)
	assert.Equal(t, day("2025-06-12"), claimed[1].Date)
}

func TestRunMixedDriftBothDirections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "2025-06-01")

	f.addBooking(t, "room-1", "2025-06-10", "2025-06-12", booking.StatusPending)
	require.NoError(t, f.ledger.Claim(ctx, "room-2", ledger.Nights(day("2025-06-20"), day("2025-06-21"))))

	report, err := f.rec.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Reclaimed)
	assert.Equal(t, 1, report.Released)
}
