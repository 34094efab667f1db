package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcvidal/hotel-booking-backend/internal/auth"
)

type fakeRepo struct {
	seq     int
	byEmail map[string]*User
	byID    map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]*User), byID: make(map[string]*User)}
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeRepo) Create(ctx context.Context, u *User) error {
	if _, exists := r.byEmail[u.Email]; exists {
		return ErrEmailAlreadyUsed
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now().UTC()
	clone := *u
	r.byEmail[u.Email] = &clone
	r.byID[u.ID] = &clone
	return nil
}

func (r *fakeRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	if u, ok := r.byID[id]; ok {
		u.LastLoginAt = &t
	}
	return nil
}

func newTestService() Service {
	return NewService(newFakeRepo(), auth.NewBcryptPasswordHasherWithCost(4))
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	u, err := svc.Register(ctx, RegisterRequest{
		Email:     "  Guest@Example.COM ",
		Password:  "supersecret",
		FirstName: "Ana",
		LastName:  "Moreira",
	})
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "supersecret", u.PasswordHash)

	logged, err := svc.Login(ctx, "guest@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
	assert.Equal(t, "Ana Moreira", logged.FullName())
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Register(ctx, RegisterRequest{Email: "", Password: "supersecret", FirstName: "A", LastName: "B"})
	assert.Error(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "short", FirstName: "A", LastName: "B"})
	assert.Error(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "supersecret", FirstName: " ", LastName: "B"})
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	req := RegisterRequest{Email: "dup@example.com", Password: "supersecret", FirstName: "A", LastName: "B"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Register(ctx, RegisterRequest{
		Email: "guest@example.com", Password: "supersecret", FirstName: "A", LastName: "B",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "guest@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
