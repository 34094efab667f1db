package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-process Repository used by tests and by the
// reconciler's unit coverage.
type MemoryRepository struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*Booking
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{bookings: make(map[string]*Booking)}
}

func (r *MemoryRepository) Create(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	b.ID = fmt.Sprintf("booking-%d", r.seq)
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *MemoryRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*Booking
	for _, b := range r.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.RoomID != "" && b.RoomID != filter.RoomID {
			continue
		}
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		clone := *b
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id string, status Status, payment PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	b.PaymentStatus = payment
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryRepository) ListActive(ctx context.Context, stayEndsAfter time.Time) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*Booking
	for _, b := range r.bookings {
		if b.Status.Active() && b.CheckOut.After(stayEndsAfter) {
			clone := *b
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].RoomID != result[j].RoomID {
			return result[i].RoomID < result[j].RoomID
		}
		return result[i].CheckIn.Before(result[j].CheckIn)
	})
	return result, nil
}
