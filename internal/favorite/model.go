package favorite

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("favorite not found")
	ErrAlreadyExists = errors.New("hotel already in favorites")
	ErrHotelNotFound = errors.New("hotel not found")
)

// Favorite links a user to a hotel they bookmarked.
type Favorite struct {
	ID        string
	UserID    string
	HotelID   string
	HotelName string
	HotelCity string
	CreatedAt time.Time
}
