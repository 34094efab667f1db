package booking

import (
	"errors"

	"github.com/marcvidal/hotel-booking-backend/internal/ledger"
)

// ErrEmptyRange guards against pricing zero nights. The validator's minimum
// stay rule makes this unreachable from user input; hitting it is a bug.
var ErrEmptyRange = errors.New("cannot price an empty night range")

// TotalPriceCents sums the nightly prices for a stay. Nights without a price
// override fall back to the room type's base price.
func TotalPriceCents(nights []*ledger.RoomNight, basePriceCents int64) (int64, error) {
	if len(nights) == 0 {
		return 0, ErrEmptyRange
	}

	var total int64
	for _, n := range nights {
		if n.PriceCents != nil {
			total += *n.PriceCents
			continue
		}
		total += basePriceCents
	}
	return total, nil
}
