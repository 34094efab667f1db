package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcvidal/hotel-booking-backend/internal/auth"
	"github.com/marcvidal/hotel-booking-backend/internal/favorite"
)

type Handler struct {
	service favorite.Service
}

func NewHandler(service favorite.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	favorites, err := h.service.ListByUser(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list favorites"})
		return
	}

	items := make([]FavoriteResponse, len(favorites))
	for i, f := range favorites {
		items[i] = NewFavoriteResponse(f)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Add(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	f, err := h.service.Add(c.Request.Context(), auth.GetUserID(c), req.HotelID)
	if err != nil {
		switch {
		case errors.Is(err, favorite.ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, favorite.ErrHotelNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add favorite"})
		}
		return
	}
	c.JSON(http.StatusCreated, NewFavoriteResponse(f))
}

func (h *Handler) Remove(c *gin.Context) {
	hotelID := c.Param("hotelID")

	if err := h.service.Remove(c.Request.Context(), auth.GetUserID(c), hotelID); err != nil {
		if errors.Is(err, favorite.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "favorite not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove favorite"})
		return
	}
	c.Status(http.StatusNoContent)
}
