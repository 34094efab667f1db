package room

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("room not found")
	ErrHotelRequired      = errors.New("hotel id is required")
	ErrRoomTypeRequired   = errors.New("room type id is required")
	ErrNumberRequired     = errors.New("room number is required")
	ErrHotelNotFound      = errors.New("hotel not found")
	ErrRoomTypeNotFound   = errors.New("room type not found")
	ErrNumberAlreadyTaken = errors.New("room number already exists in this hotel")
)

// Room is a bookable unit of a hotel. Capacity and BasePriceCents are joined
// from the room type: they are the reference data the booking core validates
// and prices against.
type Room struct {
	ID             string
	HotelID        string
	HotelName      string
	RoomTypeID     string
	RoomTypeName   string
	RoomNumber     string
	Floor          int
	IsActive       bool
	Capacity       int
	BasePriceCents int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Filter defines parameters for listing rooms.
type Filter struct {
	HotelID    string
	RoomTypeID string
	IsActive   *bool
	Page       int
	PageSize   int
}
