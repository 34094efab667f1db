package ledger

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Invalidator drops cached availability views for a room after any write.
type Invalidator interface {
	InvalidateRoom(ctx context.Context, roomID string)
}

// Service is the calendar ledger: the authoritative record of whether each
// room-night is sellable and at what price.
type Service interface {
	// GetRange returns one entry per date in [start, end), synthesizing
	// default (available, no override) nights for dates with no stored row.
	GetRange(ctx context.Context, roomID string, start, end time.Time) ([]*RoomNight, error)

	// SetAvailability is the administrative block/unblock override.
	SetAvailability(ctx context.Context, roomID string, date time.Time, available bool) error

	// SetPrice sets a nightly price override in cents; nil clears it.
	SetPrice(ctx context.Context, roomID string, date time.Time, priceCents *int64) error

	// Claim marks every night in dates as held by a booking, all or nothing.
	Claim(ctx context.Context, roomID string, dates []time.Time) error

	// Release restores the nights to available. Idempotent.
	Release(ctx context.Context, roomID string, dates []time.Time) error

	// ClaimedNightsFrom lists booking-claimed nights on or after the date.
	ClaimedNightsFrom(ctx context.Context, from time.Time) ([]*RoomNight, error)
}

type service struct {
	store Store
	log   *zap.Logger
	inval Invalidator
}

// NewService creates the ledger service. inval may be nil when no cache is
// configured.
func NewService(store Store, log *zap.Logger, inval Invalidator) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{store: store, log: log, inval: inval}
}

func (s *service) invalidate(ctx context.Context, roomID string) {
	if s.inval != nil {
		s.inval.InvalidateRoom(ctx, roomID)
	}
}

func (s *service) GetRange(ctx context.Context, roomID string, start, end time.Time) ([]*RoomNight, error) {
	start, end = Day(start), Day(end)
	if !start.Before(end) {
		return nil, ErrInvalidRange
	}

	stored, err := s.store.GetNights(ctx, roomID, start, end)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*RoomNight, len(stored))
	for _, n := range stored {
		byDate[n.Date.Format(time.DateOnly)] = n
	}

	// One entry per date, defaults synthesized in place of missing rows.
	var result []*RoomNight
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if n, ok := byDate[d.Format(time.DateOnly)]; ok {
			result = append(result, n)
			continue
		}
		result = append(result, &RoomNight{RoomID: roomID, Date: d, IsAvailable: true})
	}
	return result, nil
}

func (s *service) SetAvailability(ctx context.Context, roomID string, date time.Time, available bool) error {
	if err := s.store.SetAvailability(ctx, roomID, Day(date), available); err != nil {
		return err
	}
	s.log.Info("availability override",
		zap.String("room_id", roomID),
		zap.String("date", Day(date).Format(time.DateOnly)),
		zap.Bool("available", available))
	s.invalidate(ctx, roomID)
	return nil
}

func (s *service) SetPrice(ctx context.Context, roomID string, date time.Time, priceCents *int64) error {
	if priceCents != nil && *priceCents < 0 {
		return ErrInvalidPrice
	}
	if err := s.store.SetPrice(ctx, roomID, Day(date), priceCents); err != nil {
		return err
	}
	s.invalidate(ctx, roomID)
	return nil
}

func (s *service) Claim(ctx context.Context, roomID string, dates []time.Time) error {
	normalized := normalize(dates)
	if err := s.store.Claim(ctx, roomID, normalized); err != nil {
		return err
	}
	s.log.Info("nights claimed", zap.String("room_id", roomID), zap.Int("nights", len(normalized)))
	s.invalidate(ctx, roomID)
	return nil
}

func (s *service) Release(ctx context.Context, roomID string, dates []time.Time) error {
	normalized := normalize(dates)
	if err := s.store.Release(ctx, roomID, normalized); err != nil {
		return err
	}
	s.log.Info("nights released", zap.String("room_id", roomID), zap.Int("nights", len(normalized)))
	s.invalidate(ctx, roomID)
	return nil
}

func (s *service) ClaimedNightsFrom(ctx context.Context, from time.Time) ([]*RoomNight, error) {
	return s.store.ListClaimedFrom(ctx, Day(from))
}

// normalize truncates to dates, dedupes and sorts so conflicts are reported
// on the earliest night.
func normalize(dates []time.Time) []time.Time {
	seen := make(map[string]bool, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := Day(d)
		key := day.Format(time.DateOnly)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
