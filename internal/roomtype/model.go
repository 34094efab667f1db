package roomtype

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("room type not found")
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidBasePrice = errors.New("base price must not be negative")
	ErrInvalidCapacity  = errors.New("capacity must be at least 1")
)

// RoomType groups rooms sharing a base price and guest capacity. The booking
// core reads base_price_cents as the nightly fallback price and capacity as
// the occupancy ceiling.
type RoomType struct {
	ID             string
	Name           string
	Description    string
	BasePriceCents int64
	Capacity       int
	CreatedAt      time.Time
}

// Filter defines parameters for listing room types.
type Filter struct {
	Page     int
	PageSize int
}
