package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcvidal/hotel-booking-backend/internal/cache"
	"github.com/marcvidal/hotel-booking-backend/internal/ledger"
	"github.com/marcvidal/hotel-booking-backend/internal/pkg/request"
	"github.com/marcvidal/hotel-booking-backend/internal/pkg/response"
	"github.com/marcvidal/hotel-booking-backend/internal/room"
)

type Handler struct {
	ledgerService ledger.Service
	roomService   room.Service
	months        *cache.AvailabilityCache
}

// NewHandler creates the availability handler. months may be nil when no
// cache is configured.
func NewHandler(ledgerService ledger.Service, roomService room.Service, months *cache.AvailabilityCache) *Handler {
	return &Handler{
		ledgerService: ledgerService,
		roomService:   roomService,
		months:        months,
	}
}

// GetMonth renders one calendar month of a room's availability and pricing.
func (h *Handler) GetMonth(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	month := c.Param("month")
	start, err := request.ParseMonth(month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, expected YYYY-MM"})
		return
	}

	ctx := c.Request.Context()

	if payload, ok := h.months.GetMonth(ctx, uri.ID, month); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	rm, err := h.roomService.GetByID(ctx, uri.ID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get room"})
		return
	}

	end := start.AddDate(0, 1, 0)
	nights, err := h.ledgerService.GetRange(ctx, rm.ID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := NewMonthResponse(rm.ID, month, nights, rm.BasePriceCents)
	payload, err := json.Marshal(resp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render availability"})
		return
	}
	h.months.SetMonth(ctx, rm.ID, month, payload)

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// Override applies an admin calendar write to a single night.
func (h *Handler) Override(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if req.IsAvailable == nil && req.PriceCents == nil && !req.ClearPrice {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}
	if req.PriceCents != nil && req.ClearPrice {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price_cents and clear_price are mutually exclusive"})
		return
	}

	date, err := request.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	ctx := c.Request.Context()

	rm, err := h.roomService.GetByID(ctx, uri.ID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get room"})
		return
	}

	if req.IsAvailable != nil {
		if err := h.ledgerService.SetAvailability(ctx, rm.ID, date, *req.IsAvailable); err != nil {
			response.Error(c, err)
			return
		}
	}
	if req.PriceCents != nil {
		if err := h.ledgerService.SetPrice(ctx, rm.ID, date, req.PriceCents); err != nil {
			response.Error(c, err)
			return
		}
	}
	if req.ClearPrice {
		if err := h.ledgerService.SetPrice(ctx, rm.ID, date, nil); err != nil {
			response.Error(c, err)
			return
		}
	}

	// Read back the stored night so the response reflects the write.
	nights, err := h.ledgerService.GetRange(ctx, rm.ID, date, date.AddDate(0, 0, 1))
	if err != nil || len(nights) != 1 {
		response.Error(c, err)
		return
	}
	n := nights[0]

	price := rm.BasePriceCents
	if n.PriceCents != nil {
		price = *n.PriceCents
	}
	c.JSON(http.StatusOK, NightView{
		Date:       n.Date.Format(time.DateOnly),
		Available:  n.IsAvailable,
		PriceCents: price,
	})
}
