package http

import (
	"time"

	"github.com/marcvidal/hotel-booking-backend/internal/favorite"
)

type AddFavoriteRequest struct {
	HotelID string `json:"hotel_id" binding:"required,uuid"`
}

type FavoriteResponse struct {
	ID        string    `json:"id"`
	HotelID   string    `json:"hotel_id"`
	HotelName string    `json:"hotel_name,omitempty"`
	HotelCity string    `json:"hotel_city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewFavoriteResponse(f *favorite.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:        f.ID,
		HotelID:   f.HotelID,
		HotelName: f.HotelName,
		HotelCity: f.HotelCity,
		CreatedAt: f.CreatedAt,
	}
}
