package http

import (
	"time"

	"github.com/marcvidal/hotel-booking-backend/internal/hotel"
	"github.com/marcvidal/hotel-booking-backend/internal/pkg/request"
)

// ListHotelsRequest defines query parameters for listing hotels.
type ListHotelsRequest struct {
	request.ListParams
	City    string `form:"city"`
	Country string `form:"country"`
	Stars   int    `form:"stars" binding:"omitempty,min=1,max=5"`
}

type HotelResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Stars       int       `json:"stars"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewHotelResponse(h *hotel.Hotel) HotelResponse {
	return HotelResponse{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		Address:     h.Address,
		City:        h.City,
		Country:     h.Country,
		Stars:       h.Stars,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

type CreateHotelRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Stars       int    `json:"stars" binding:"required,min=1,max=5"`
}

type UpdateHotelRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Country     *string `json:"country"`
	Stars       *int    `json:"stars" binding:"omitempty,min=1,max=5"`
}

type ImageResponse struct {
	ID            string    `json:"id"`
	HotelID       string    `json:"hotel_id"`
	Path          string    `json:"path"`
	ThumbnailPath string    `json:"thumbnail_path"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewImageResponse(img *hotel.Image) ImageResponse {
	return ImageResponse{
		ID:            img.ID,
		HotelID:       img.HotelID,
		Path:          img.Path,
		ThumbnailPath: img.ThumbnailPath,
		CreatedAt:     img.CreatedAt,
	}
}
