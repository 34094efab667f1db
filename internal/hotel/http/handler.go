package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcvidal/hotel-booking-backend/internal/hotel"
	"github.com/marcvidal/hotel-booking-backend/internal/pkg/request"
	"github.com/marcvidal/hotel-booking-backend/internal/pkg/response"
)

// maxImageUploadBytes caps a single gallery upload at 10 MiB.
const maxImageUploadBytes = 10 << 20

type Handler struct {
	service hotel.Service
}

func NewHandler(service hotel.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListHotelsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := hotel.Filter{
		City:     req.City,
		Country:  req.Country,
		Stars:    req.Stars,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	hotels, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list hotels"})
		return
	}

	items := make([]HotelResponse, len(hotels))
	for i, ht := range hotels {
		items[i] = NewHotelResponse(ht)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	ht, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hotel not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get hotel"})
		return
	}
	c.JSON(http.StatusOK, NewHotelResponse(ht))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ht, err := h.service.Create(c.Request.Context(), hotel.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		Stars:       req.Stars,
	})
	if err != nil {
		switch {
		case errors.Is(err, hotel.ErrNameRequired),
			errors.Is(err, hotel.ErrAddressRequired),
			errors.Is(err, hotel.ErrInvalidStars):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create hotel"})
		}
		return
	}
	c.JSON(http.StatusCreated, NewHotelResponse(ht))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ht, err := h.service.Update(c.Request.Context(), uri.ID, hotel.UpdateRequest{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		Stars:       req.Stars,
	})
	if err != nil {
		switch {
		case errors.Is(err, hotel.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "hotel not found"})
		case errors.Is(err, hotel.ErrNameRequired),
			errors.Is(err, hotel.ErrAddressRequired),
			errors.Is(err, hotel.ErrInvalidStars):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update hotel"})
		}
		return
	}
	c.JSON(http.StatusOK, NewHotelResponse(ht))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hotel not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete hotel"})
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage accepts a multipart "image" file and stores it with a thumbnail.
func (h *Handler) UploadImage(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer file.Close()

	img, err := h.service.AddImage(c.Request.Context(), uri.ID, file)
	if err != nil {
		switch {
		case errors.Is(err, hotel.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "hotel not found"})
		case errors.Is(err, hotel.ErrInvalidImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		}
		return
	}
	c.JSON(http.StatusCreated, NewImageResponse(img))
}

func (h *Handler) ListImages(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	images, err := h.service.ListImages(c.Request.Context(), uri.ID)
	if err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hotel not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list images"})
		return
	}

	items := make([]ImageResponse, len(images))
	for i, img := range images {
		items[i] = NewImageResponse(img)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) DeleteImage(c *gin.Context) {
	imageID := c.Param("imageID")

	if err := h.service.DeleteImage(c.Request.Context(), imageID); err != nil {
		if errors.Is(err, hotel.ErrImageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hotel image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
		return
	}
	c.Status(http.StatusNoContent)
}
