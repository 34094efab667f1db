package room

import (
	"context"
	"errors"
	"strings"

	"github.com/marcvidal/hotel-booking-backend/internal/hotel"
	"github.com/marcvidal/hotel-booking-backend/internal/roomtype"
)

type CreateRequest struct {
	HotelID    string
	RoomTypeID string
	RoomNumber string
	Floor      int
}

type UpdateRequest struct {
	RoomTypeID *string
	RoomNumber *string
	Floor      *int
	IsActive   *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Room, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo      Repository
	hotels    hotel.Service
	roomTypes roomtype.Service
}

func NewService(repo Repository, hotels hotel.Service, roomTypes roomtype.Service) Service {
	return &service{repo: repo, hotels: hotels, roomTypes: roomTypes}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if req.HotelID == "" {
		return nil, ErrHotelRequired
	}
	if req.RoomTypeID == "" {
		return nil, ErrRoomTypeRequired
	}
	if strings.TrimSpace(req.RoomNumber) == "" {
		return nil, ErrNumberRequired
	}

	if _, err := s.hotels.GetByID(ctx, req.HotelID); err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	rt, err := s.roomTypes.GetByID(ctx, req.RoomTypeID)
	if err != nil {
		if errors.Is(err, roomtype.ErrNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}

	rm := &Room{
		HotelID:    req.HotelID,
		RoomTypeID: req.RoomTypeID,
		RoomNumber: strings.TrimSpace(req.RoomNumber),
		Floor:      req.Floor,
		IsActive:   true,
	}
	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	rm.RoomTypeName = rt.Name
	rm.Capacity = rt.Capacity
	rm.BasePriceCents = rt.BasePriceCents
	return rm, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomTypeID != nil {
		if _, err := s.roomTypes.GetByID(ctx, *req.RoomTypeID); err != nil {
			if errors.Is(err, roomtype.ErrNotFound) {
				return nil, ErrRoomTypeNotFound
			}
			return nil, err
		}
		rm.RoomTypeID = *req.RoomTypeID
	}
	if req.RoomNumber != nil {
		if strings.TrimSpace(*req.RoomNumber) == "" {
			return nil, ErrNumberRequired
		}
		rm.RoomNumber = strings.TrimSpace(*req.RoomNumber)
	}
	if req.Floor != nil {
		rm.Floor = *req.Floor
	}
	if req.IsActive != nil {
		rm.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
