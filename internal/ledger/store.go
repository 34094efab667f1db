package ledger

import (
	"context"
	"time"
)

// Store persists RoomNight state. Implementations must make Claim atomic over
// its full date set: two concurrent claims touching the same night must not
// both succeed. Callers pass dates already normalized to UTC midnight.
type Store interface {
	// GetNights returns the stored rows for [start, end), ordered by date.
	// Dates with no stored row are absent; the service synthesizes defaults.
	GetNights(ctx context.Context, roomID string, start, end time.Time) ([]*RoomNight, error)

	// SetAvailability records an administrative block (false) or unblock (true).
	SetAvailability(ctx context.Context, roomID string, date time.Time, available bool) error

	// SetPrice sets the nightly price override. nil clears the override.
	SetPrice(ctx context.Context, roomID string, date time.Time, priceCents *int64) error

	// Claim flips every date from available to claimed, all or nothing.
	// Returns *ConflictError naming the first unavailable date on failure,
	// leaving no date mutated.
	Claim(ctx context.Context, roomID string, dates []time.Time) error

	// Release flips the dates back to available. Idempotent.
	Release(ctx context.Context, roomID string, dates []time.Time) error

	// ListClaimedFrom returns every claimed (not admin-blocked) night on or
	// after the given date, across all rooms.
	ListClaimedFrom(ctx context.Context, from time.Time) ([]*RoomNight, error)
}
