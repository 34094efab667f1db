package ledger

import (
	"fmt"
	"net/http"
	"time"

	"github.com/marcvidal/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrInvalidRange = apperror.New(http.StatusBadRequest, "start date must be before end date")
	ErrInvalidPrice = apperror.New(http.StatusBadRequest, "price must not be negative")
)

// RoomNight is the unit of inventory: one room for one calendar date.
// A night with no stored row is available at the room type's base price.
type RoomNight struct {
	RoomID      string
	Date        time.Time // UTC midnight
	IsAvailable bool
	PriceCents  *int64 // nil means the room type base price applies
	Blocked     bool   // unavailable due to an admin block, not a booking claim
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Claimed reports whether the night is held by a booking.
func (n *RoomNight) Claimed() bool {
	return !n.IsAvailable && !n.Blocked
}

// ConflictError is returned by Claim when at least one requested night is
// already unavailable. Date is the first conflicting night in the range.
type ConflictError struct {
	RoomID string
	Date   time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %s is not available on %s", e.RoomID, e.Date.Format(time.DateOnly))
}

// Day truncates t to a UTC calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Nights expands [checkIn, checkOut) into the ordered list of occupied dates.
// The check-out date itself is not occupied.
func Nights(checkIn, checkOut time.Time) []time.Time {
	start := Day(checkIn)
	end := Day(checkOut)

	var dates []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
