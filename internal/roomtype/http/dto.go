package http

import (
	"time"

	"github.com/marcvidal/hotel-booking-backend/internal/pkg/request"
	"github.com/marcvidal/hotel-booking-backend/internal/roomtype"
)

type ListRoomTypesRequest struct {
	request.ListParams
}

type RoomTypeResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	BasePriceCents int64     `json:"base_price_cents"`
	Capacity       int       `json:"capacity"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewRoomTypeResponse(rt *roomtype.RoomType) RoomTypeResponse {
	return RoomTypeResponse{
		ID:             rt.ID,
		Name:           rt.Name,
		Description:    rt.Description,
		BasePriceCents: rt.BasePriceCents,
		Capacity:       rt.Capacity,
		CreatedAt:      rt.CreatedAt,
	}
}

type CreateRoomTypeRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	BasePriceCents int64  `json:"base_price_cents" binding:"required,min=0"`
	Capacity       int    `json:"capacity" binding:"required,min=1"`
}

type UpdateRoomTypeRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	BasePriceCents *int64  `json:"base_price_cents" binding:"omitempty,min=0"`
	Capacity       *int    `json:"capacity" binding:"omitempty,min=1"`
}
