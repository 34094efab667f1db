package booking

import (
	"time"

	"github.com/marcvidal/hotel-booking-backend/internal/ledger"
)

// StayRequest is a proposed stay before it touches the ledger.
type StayRequest struct {
	CheckIn  time.Time
	CheckOut time.Time
	Adults   int
	Children int
}

// ValidateStay checks a proposed stay against static constraints, in order,
// short-circuiting on the first failure:
//
//  1. check-out strictly after check-in (one night minimum)
//  2. stay length at most maxStayNights
//  3. at least one adult
//  4. adults + children within the room type capacity
//
// Pure over its inputs; the ledger is not consulted.
func ValidateStay(req StayRequest, capacity, maxStayNights int) error {
	checkIn := ledger.Day(req.CheckIn)
	checkOut := ledger.Day(req.CheckOut)

	if !checkOut.After(checkIn) {
		return ErrDateOrder
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if maxStayNights > 0 && nights > maxStayNights {
		return ErrStayTooLong
	}

	if req.Adults < 1 {
		return ErrOccupancy
	}

	if req.Adults+req.Children > capacity {
		return ErrCapacityExceeded
	}

	return nil
}
