package http

import (
	"time"

	"github.com/marcvidal/hotel-booking-backend/internal/pkg/request"
	"github.com/marcvidal/hotel-booking-backend/internal/room"
)

// ListRoomsRequest defines query parameters for listing rooms.
type ListRoomsRequest struct {
	request.ListParams
	HotelID    string `form:"hotel_id" binding:"omitempty,uuid"`
	RoomTypeID string `form:"room_type_id" binding:"omitempty,uuid"`
	IsActive   *bool  `form:"is_active"`
}

type RoomResponse struct {
	ID             string    `json:"id"`
	HotelID        string    `json:"hotel_id"`
	HotelName      string    `json:"hotel_name"`
	RoomTypeID     string    `json:"room_type_id"`
	RoomTypeName   string    `json:"room_type_name"`
	RoomNumber     string    `json:"room_number"`
	Floor          int       `json:"floor"`
	IsActive       bool      `json:"is_active"`
	Capacity       int       `json:"capacity"`
	BasePriceCents int64     `json:"base_price_cents"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewRoomResponse(rm *room.Room) RoomResponse {
	return RoomResponse{
		ID:             rm.ID,
		HotelID:        rm.HotelID,
		HotelName:      rm.HotelName,
		RoomTypeID:     rm.RoomTypeID,
		RoomTypeName:   rm.RoomTypeName,
		RoomNumber:     rm.RoomNumber,
		Floor:          rm.Floor,
		IsActive:       rm.IsActive,
		Capacity:       rm.Capacity,
		BasePriceCents: rm.BasePriceCents,
		CreatedAt:      rm.CreatedAt,
		UpdatedAt:      rm.UpdatedAt,
	}
}

type CreateRoomRequest struct {
	HotelID    string `json:"hotel_id" binding:"required,uuid"`
	RoomTypeID string `json:"room_type_id" binding:"required,uuid"`
	RoomNumber string `json:"room_number" binding:"required"`
	Floor      int    `json:"floor"`
}

type UpdateRoomRequest struct {
	RoomTypeID *string `json:"room_type_id" binding:"omitempty,uuid"`
	RoomNumber *string `json:"room_number"`
	Floor      *int    `json:"floor"`
	IsActive   *bool   `json:"is_active"`
}
