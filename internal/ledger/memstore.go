package ledger

import (
	"context"
	"sort"
	"sync"
	"time"
)

// memRoom holds one room's calendar behind its own lock, so claims for
// different rooms never contend with each other.
type memRoom struct {
	mu     sync.Mutex
	nights map[string]*RoomNight // keyed by date in time.DateOnly format
}

// MemoryStore is an in-process Store implementation. Mutations on a room are
// serialized by a per-room mutex, which is the serializing mechanism the
// claim contract requires.
type MemoryStore struct {
	mu    sync.Mutex
	rooms map[string]*memRoom
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rooms: make(map[string]*memRoom)}
}

func (s *MemoryStore) room(roomID string) *memRoom {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		r = &memRoom{nights: make(map[string]*RoomNight)}
		s.rooms[roomID] = r
	}
	return r
}

// night returns the stored row for the date, synthesizing a default
// (available, no override) row on first touch. Caller must hold r.mu.
func (r *memRoom) night(roomID string, date time.Time) *RoomNight {
	key := date.Format(time.DateOnly)
	n, ok := r.nights[key]
	if !ok {
		now := time.Now().UTC()
		n = &RoomNight{
			RoomID:      roomID,
			Date:        date,
			IsAvailable: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		r.nights[key] = n
	}
	return n
}

func (s *MemoryStore) GetNights(ctx context.Context, roomID string, start, end time.Time) ([]*RoomNight, error) {
	r := s.room(roomID)
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*RoomNight
	for _, n := range r.nights {
		if !n.Date.Before(start) && n.Date.Before(end) {
			clone := *n
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (s *MemoryStore) SetAvailability(ctx context.Context, roomID string, date time.Time, available bool) error {
	r := s.room(roomID)
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.night(roomID, date)
	n.IsAvailable = available
	n.Blocked = !available
	n.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) SetPrice(ctx context.Context, roomID string, date time.Time, priceCents *int64) error {
	r := s.room(roomID)
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.night(roomID, date)
	n.PriceCents = priceCents
	n.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) Claim(ctx context.Context, roomID string, dates []time.Time) error {
	r := s.room(roomID)
	r.mu.Lock()
	defer r.mu.Unlock()

	// First pass: every night must be free before anything is flipped.
	for _, d := range dates {
		if n, ok := r.nights[d.Format(time.DateOnly)]; ok && !n.IsAvailable {
			return &ConflictError{RoomID: roomID, Date: d}
		}
	}

	now := time.Now().UTC()
	for _, d := range dates {
		n := r.night(roomID, d)
		n.IsAvailable = false
		n.Blocked = false
		n.UpdatedAt = now
	}
	return nil
}

func (s *MemoryStore) Release(ctx context.Context, roomID string, dates []time.Time) error {
	r := s.room(roomID)
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for _, d := range dates {
		n, ok := r.nights[d.Format(time.DateOnly)]
		if !ok || n.IsAvailable {
			continue // already available, releasing is a no-op
		}
		n.IsAvailable = true
		n.Blocked = false
		n.UpdatedAt = now
	}
	return nil
}

func (s *MemoryStore) ListClaimedFrom(ctx context.Context, from time.Time) ([]*RoomNight, error) {
	s.mu.Lock()
	roomIDs := make([]string, 0, len(s.rooms))
	for id := range s.rooms {
		roomIDs = append(roomIDs, id)
	}
	s.mu.Unlock()
	sort.Strings(roomIDs)

	var result []*RoomNight
	for _, id := range roomIDs {
		r := s.room(id)
		r.mu.Lock()
		for _, n := range r.nights {
			if n.Claimed() && !n.Date.Before(from) {
				clone := *n
				result = append(result, &clone)
			}
		}
		r.mu.Unlock()
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].RoomID != result[j].RoomID {
			return result[i].RoomID < result[j].RoomID
		}
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}
