package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcvidal/hotel-booking-backend/internal/pkg/request"
	"github.com/marcvidal/hotel-booking-backend/internal/pkg/response"
	"github.com/marcvidal/hotel-booking-backend/internal/roomtype"
)

type Handler struct {
	service roomtype.Service
}

func NewHandler(service roomtype.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListRoomTypesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	types, total, err := h.service.List(c.Request.Context(), roomtype.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list room types"})
		return
	}

	items := make([]RoomTypeResponse, len(types))
	for i, rt := range types {
		items[i] = NewRoomTypeResponse(rt)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	rt, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		if errors.Is(err, roomtype.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get room type"})
		return
	}
	c.JSON(http.StatusOK, NewRoomTypeResponse(rt))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rt, err := h.service.Create(c.Request.Context(), roomtype.CreateRequest{
		Name:           req.Name,
		Description:    req.Description,
		BasePriceCents: req.BasePriceCents,
		Capacity:       req.Capacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, roomtype.ErrNameRequired),
			errors.Is(err, roomtype.ErrInvalidBasePrice),
			errors.Is(err, roomtype.ErrInvalidCapacity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room type"})
		}
		return
	}
	c.JSON(http.StatusCreated, NewRoomTypeResponse(rt))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req UpdateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rt, err := h.service.Update(c.Request.Context(), uri.ID, roomtype.UpdateRequest{
		Name:           req.Name,
		Description:    req.Description,
		BasePriceCents: req.BasePriceCents,
		Capacity:       req.Capacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, roomtype.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room type not found"})
		case errors.Is(err, roomtype.ErrNameRequired),
			errors.Is(err, roomtype.ErrInvalidBasePrice),
			errors.Is(err, roomtype.ErrInvalidCapacity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update room type"})
		}
		return
	}
	c.JSON(http.StatusOK, NewRoomTypeResponse(rt))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		if errors.Is(err, roomtype.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete room type"})
		return
	}
	c.Status(http.StatusNoContent)
}
