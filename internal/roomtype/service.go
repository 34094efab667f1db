package roomtype

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name           string
	Description    string
	BasePriceCents int64
	Capacity       int
}

type UpdateRequest struct {
	Name           *string
	Description    *string
	BasePriceCents *int64
	Capacity       *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*RoomType, error)
	GetByID(ctx context.Context, id string) (*RoomType, error)
	List(ctx context.Context, filter Filter) ([]*RoomType, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*RoomType, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*RoomType, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if req.BasePriceCents < 0 {
		return nil, ErrInvalidBasePrice
	}
	if req.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	rt := &RoomType{
		Name:           req.Name,
		Description:    req.Description,
		BasePriceCents: req.BasePriceCents,
		Capacity:       req.Capacity,
	}
	if err := s.repo.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*RoomType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*RoomType, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*RoomType, error) {
	rt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		rt.Name = *req.Name
	}
	if req.Description != nil {
		rt.Description = *req.Description
	}
	if req.BasePriceCents != nil {
		if *req.BasePriceCents < 0 {
			return nil, ErrInvalidBasePrice
		}
		rt.BasePriceCents = *req.BasePriceCents
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, ErrInvalidCapacity
		}
		rt.Capacity = *req.Capacity
	}

	if err := s.repo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
