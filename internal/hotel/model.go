package hotel

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("hotel not found")
	ErrNameRequired    = errors.New("name is required")
	ErrInvalidStars    = errors.New("stars must be between 1 and 5")
	ErrImageNotFound   = errors.New("hotel image not found")
	ErrInvalidImage    = errors.New("file is not a valid image")
	ErrAddressRequired = errors.New("address is required")
)

type Hotel struct {
	ID          string
	Name        string
	Description string
	Address     string
	City        string
	Country     string
	Stars       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Image is a gallery photo attached to a hotel. Path and ThumbnailPath are
// relative to the configured upload directory.
type Image struct {
	ID            string
	HotelID       string
	Path          string
	ThumbnailPath string
	CreatedAt     time.Time
}

// Filter defines parameters for listing hotels.
type Filter struct {
	City     string
	Country  string
	Stars    int
	Page     int
	PageSize int
}
