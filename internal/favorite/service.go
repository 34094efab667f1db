package favorite

import "context"

type Service interface {
	Add(ctx context.Context, userID, hotelID string) (*Favorite, error)
	Remove(ctx context.Context, userID, hotelID string) error
	ListByUser(ctx context.Context, userID string) ([]*Favorite, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, userID, hotelID string) (*Favorite, error) {
	f := &Favorite{UserID: userID, HotelID: hotelID}
	if err := s.repo.Add(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Remove(ctx context.Context, userID, hotelID string) error {
	return s.repo.Remove(ctx, userID, hotelID)
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]*Favorite, error) {
	return s.repo.ListByUser(ctx, userID)
}
