package http

import (
	"time"

	"github.com/marcvidal/hotel-booking-backend/internal/booking"
	"github.com/marcvidal/hotel-booking-backend/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	RoomID  string `form:"room_id" binding:"omitempty,uuid"`
	HotelID string `form:"hotel_id" binding:"omitempty,uuid"`
	Status  string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	UserID  string `form:"user_id" binding:"omitempty,uuid"`
	From    string `form:"from"`
	To      string `form:"to"`
}

type BookingResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name,omitempty"`
	RoomID          string    `json:"room_id"`
	RoomNumber      string    `json:"room_number,omitempty"`
	HotelID         string    `json:"hotel_id,omitempty"`
	HotelName       string    `json:"hotel_name,omitempty"`
	CheckIn         string    `json:"check_in_date"`
	CheckOut        string    `json:"check_out_date"`
	Adults          int       `json:"adults"`
	Children        int       `json:"children"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		UserName:        b.UserName,
		RoomID:          b.RoomID,
		RoomNumber:      b.RoomNumber,
		HotelID:         b.HotelID,
		HotelName:       b.HotelName,
		CheckIn:         b.CheckIn.Format(time.DateOnly),
		CheckOut:        b.CheckOut.Format(time.DateOnly),
		Adults:          b.Adults,
		Children:        b.Children,
		TotalPriceCents: b.TotalPriceCents,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

type CreateBookingRequest struct {
	RoomID   string `json:"room_id" binding:"required,uuid"`
	CheckIn  string `json:"check_in_date" binding:"required"`
	CheckOut string `json:"check_out_date" binding:"required"`
	Adults   int    `json:"adults" binding:"required,min=1"`
	Children int    `json:"children" binding:"omitempty,min=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}
