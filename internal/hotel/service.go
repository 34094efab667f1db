package hotel

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marcvidal/hotel-booking-backend/internal/pkg/storage"
)

type CreateRequest struct {
	Name        string
	Description string
	Address     string
	City        string
	Country     string
	Stars       int
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Address     *string
	City        *string
	Country     *string
	Stars       *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Hotel, error)
	GetByID(ctx context.Context, id string) (*Hotel, error)
	List(ctx context.Context, filter Filter) ([]*Hotel, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Hotel, error)
	Delete(ctx context.Context, id string) error

	// AddImage stores the uploaded gallery photo and a thumbnail for it.
	AddImage(ctx context.Context, hotelID string, content io.Reader) (*Image, error)
	ListImages(ctx context.Context, hotelID string) ([]*Image, error)
	DeleteImage(ctx context.Context, imageID string) error
}

type service struct {
	repo      Repository
	files     storage.Storage
	processor *storage.ImageProcessor
}

func NewService(repo Repository, files storage.Storage, processor *storage.ImageProcessor) Service {
	return &service{repo: repo, files: files, processor: processor}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Hotel, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Address) == "" {
		return nil, ErrAddressRequired
	}
	if req.Stars < 1 || req.Stars > 5 {
		return nil, ErrInvalidStars
	}

	h := &Hotel{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		Stars:       req.Stars,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Hotel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Hotel, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Hotel, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		h.Name = *req.Name
	}
	if req.Description != nil {
		h.Description = *req.Description
	}
	if req.Address != nil {
		if strings.TrimSpace(*req.Address) == "" {
			return nil, ErrAddressRequired
		}
		h.Address = *req.Address
	}
	if req.City != nil {
		h.City = *req.City
	}
	if req.Country != nil {
		h.Country = *req.Country
	}
	if req.Stars != nil {
		if *req.Stars < 1 || *req.Stars > 5 {
			return nil, ErrInvalidStars
		}
		h.Stars = *req.Stars
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) AddImage(ctx context.Context, hotelID string, content io.Reader) (*Image, error) {
	if _, err := s.repo.GetByID(ctx, hotelID); err != nil {
		return nil, err
	}

	full, thumb, err := s.processor.ProcessGalleryImage(content)
	if err != nil {
		return nil, ErrInvalidImage
	}

	name := fmt.Sprintf("%d-%s", time.Now().UTC().Unix(), uuid.NewString())
	fullPath := path.Join("hotels", hotelID, name+".jpg")
	thumbPath := path.Join("hotels", hotelID, name+"_thumb.jpg")

	if err := s.files.Save(ctx, fullPath, full); err != nil {
		return nil, fmt.Errorf("save hotel image failed: %w", err)
	}
	if err := s.files.Save(ctx, thumbPath, thumb); err != nil {
		return nil, fmt.Errorf("save hotel thumbnail failed: %w", err)
	}

	img := &Image{
		HotelID:       hotelID,
		Path:          fullPath,
		ThumbnailPath: thumbPath,
	}
	if err := s.repo.AddImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *service) ListImages(ctx context.Context, hotelID string) ([]*Image, error) {
	if _, err := s.repo.GetByID(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.repo.ListImages(ctx, hotelID)
}

func (s *service) DeleteImage(ctx context.Context, imageID string) error {
	img, err := s.repo.GetImage(ctx, imageID)
	if err != nil {
		return err
	}

	// Best effort on disk; the DB row is the source of truth.
	_ = s.files.Delete(ctx, img.Path)
	_ = s.files.Delete(ctx, img.ThumbnailPath)

	return s.repo.DeleteImage(ctx, imageID)
}
