package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a guest or administrator account.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
