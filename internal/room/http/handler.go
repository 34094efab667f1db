package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcvidal/hotel-booking-backend/internal/pkg/request"
	"github.com/marcvidal/hotel-booking-backend/internal/pkg/response"
	"github.com/marcvidal/hotel-booking-backend/internal/room"
)

type Handler struct {
	service room.Service
}

func NewHandler(service room.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := room.Filter{
		HotelID:    req.HotelID,
		RoomTypeID: req.RoomTypeID,
		IsActive:   req.IsActive,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}

	rooms, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, rm := range rooms {
		items[i] = NewRoomResponse(rm)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	rm, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get room"})
		return
	}
	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rm, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		HotelID:    req.HotelID,
		RoomTypeID: req.RoomTypeID,
		RoomNumber: req.RoomNumber,
		Floor:      req.Floor,
	})
	if err != nil {
		switch {
		case errors.Is(err, room.ErrHotelNotFound),
			errors.Is(err, room.ErrRoomTypeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, room.ErrNumberAlreadyTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, room.ErrHotelRequired),
			errors.Is(err, room.ErrRoomTypeRequired),
			errors.Is(err, room.ErrNumberRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		}
		return
	}
	c.JSON(http.StatusCreated, NewRoomResponse(rm))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rm, err := h.service.Update(c.Request.Context(), uri.ID, room.UpdateRequest{
		RoomTypeID: req.RoomTypeID,
		RoomNumber: req.RoomNumber,
		Floor:      req.Floor,
		IsActive:   req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, room.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, room.ErrRoomTypeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, room.ErrNumberAlreadyTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, room.ErrNumberRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update room"})
		}
		return
	}
	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		if errors.Is(err, room.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete room"})
		return
	}
	c.Status(http.StatusNoContent)
}
