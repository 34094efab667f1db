package http

import (
	"time"

	"github.com/marcvidal/hotel-booking-backend/internal/ledger"
)

// NightView is one calendar day in the public availability view. PriceCents
// is the effective nightly price: the override when present, the room type's
// base price otherwise.
type NightView struct {
	Date       string `json:"date"`
	Available  bool   `json:"available"`
	PriceCents int64  `json:"price_cents"`
}

type MonthResponse struct {
	RoomID string      `json:"room_id"`
	Month  string      `json:"month"`
	Nights []NightView `json:"nights"`
}

func NewMonthResponse(roomID, month string, nights []*ledger.RoomNight, basePriceCents int64) MonthResponse {
	views := make([]NightView, len(nights))
	for i, n := range nights {
		price := basePriceCents
		if n.PriceCents != nil {
			price = *n.PriceCents
		}
		views[i] = NightView{
			Date:       n.Date.Format(time.DateOnly),
			Available:  n.IsAvailable,
			PriceCents: price,
		}
	}
	return MonthResponse{RoomID: roomID, Month: month, Nights: views}
}

// OverrideRequest is the admin calendar write: block or unblock a night
// and/or set its price. ClearPrice removes an existing override.
type OverrideRequest struct {
	Date        string `json:"date" binding:"required"`
	IsAvailable *bool  `json:"is_available"`
	PriceCents  *int64 `json:"price_cents" binding:"omitempty,min=0"`
	ClearPrice  bool   `json:"clear_price"`
}
