package reconcile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/marcvidal/hotel-booking-backend/internal/booking"
	"github.com/marcvidal/hotel-booking-backend/internal/ledger"
)

// Report summarizes one reconciliation pass.
type Report struct {
	// Reclaimed counts nights that belong to an active booking but were
	// found available, and were claimed back.
	Reclaimed int

	// Released counts claimed nights with no matching active booking.
	Released int
}

// Reconciler compares the calendar ledger against active bookings and
// repairs drift in both directions. The booking record is the source of
// truth: missing claims are restored, orphan claims are released.
type Reconciler struct {
	bookings booking.Repository
	ledger   ledger.Service
	log      *zap.Logger
	now      func() time.Time
}

func NewReconciler(bookings booking.Repository, lg ledger.Service, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{bookings: bookings, ledger: lg, log: log, now: time.Now}
}

// Run executes a single reconciliation pass over nights from today onward.
// Past nights are never touched.
func (r *Reconciler) Run(ctx context.Context) (Report, error) {
	var report Report
	today := ledger.Day(r.now())

	active, err := r.bookings.ListActive(ctx, today)
	if err != nil {
		return report, err
	}

	// Expected claims per room, restricted to nights from today onward.
	expected := make(map[string]map[string]bool)
	for _, b := range active {
		for _, d := range ledger.Nights(b.CheckIn, b.CheckOut) {
			if d.Before(today) {
				continue
			}
			if expected[b.RoomID] == nil {
				expected[b.RoomID] = make(map[string]bool)
			}
			expected[b.RoomID][d.Format(time.DateOnly)] = true
		}
	}

	claimed, err := r.ledger.ClaimedNightsFrom(ctx, today)
	if err != nil {
		return report, err
	}

	claimedSet := make(map[string]map[string]bool, len(claimed))
	orphans := make(map[string][]time.Time)
	for _, n := range claimed {
		key := n.Date.Format(time.DateOnly)
		if claimedSet[n.RoomID] == nil {
			claimedSet[n.RoomID] = make(map[string]bool)
		}
		claimedSet[n.RoomID][key] = true
		if !expected[n.RoomID][key] {
			orphans[n.RoomID] = append(orphans[n.RoomID], n.Date)
		}
	}

	for roomID, dates := range orphans {
		if err := r.ledger.Release(ctx, roomID, dates); err != nil {
			r.log.Error("reconcile: release orphan nights failed",
				zap.String("room_id", roomID), zap.Error(err))
			continue
		}
		report.Released += len(dates)
	}

	// Re-claim nights an active booking should hold but does not.
	for roomID, days := range expected {
		var missing []time.Time
		for key := range days {
			if claimedSet[roomID][key] {
				continue
			}
			d, err := time.Parse(time.DateOnly, key)
			if err != nil {
				continue
			}
			missing = append(missing, d)
		}
		if len(missing) == 0 {
			continue
		}
		if err := r.ledger.Claim(ctx, roomID, missing); err != nil {
			r.log.Error("reconcile: re-claim nights failed",
				zap.String("room_id", roomID), zap.Error(err))
			continue
		}
		report.Reclaimed += len(missing)
	}

	if report.Reclaimed > 0 || report.Released > 0 {
		r.log.Warn("ledger drift repaired",
			zap.Int("reclaimed", report.Reclaimed),
			zap.Int("released", report.Released))
	} else {
		r.log.Debug("ledger consistent")
	}
	return report, nil
}
