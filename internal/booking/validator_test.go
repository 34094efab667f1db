package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestValidateStay(t *testing.T) {
	tests := []struct {
		name    string
		req     StayRequest
		wantErr error
	}{
		{
			name: "valid two night stay",
			req:  StayRequest{CheckIn: day("2025-06-01"), CheckOut: day("2025-06-03"), Adults: 2},
		},
		{
			name:    "check-out equals check-in",
			req:     StayRequest{CheckIn: day("2025-06-01"), CheckOut: day("2025-06-01"), Adults: 1},
			wantErr: ErrDateOrder,
		},
		{
			name:    "check-out before check-in",
			req:     StayRequest{CheckIn: day("2025-06-03"), CheckOut: day("2025-06-01"), Adults: 1},
			wantErr: ErrDateOrder,
		},
		{
			name:    "stay too long",
			req:     StayRequest{CheckIn: day("2025-06-01"), CheckOut: day("2025-08-01"), Adults: 1},
			wantErr: ErrStayTooLong,
		},
		{
			name: "exactly max stay is allowed",
			req:  StayRequest{CheckIn: day("2025-06-01"), CheckOut: day("2025-07-01"), Adults: 1},
		},
		{
			name:    "no adults",
			req:     StayRequest{CheckIn: day("2025-06-01"), CheckOut: day("2025-06-02"), Adults: 0, Children: 2},
			wantErr: ErrOccupancy,
		},
		{
			name:    "capacity exceeded",
			req:     StayRequest{CheckIn: day("2025-06-01"), CheckOut: day("2025-06-02"), Adults: 2, Children: 2},
			wantErr: ErrCapacityExceeded,
		},
		{
			name: "full capacity is allowed",
			req:  StayRequest{CheckIn: day("2025-06-01"), CheckOut: day("2025-06-02"), Adults: 2, Children: 1},
		},
		{
			name: "date order beats occupancy",
			req:  StayRequest{CheckIn: day("2025-06-03"), CheckOut: day("2025-06-01"), Adults: 0},
			// ordering: the date check short-circuits first
			wantErr: ErrDateOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStay(tt.req, 3, 30)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateStayZeroMaxDisablesLengthCheck(t *testing.T) {
	req := StayRequest{CheckIn: day("2025-01-01"), CheckOut: day("2025-12-31"), Adults: 1}
	assert.NoError(t, ValidateStay(req, 2, 0))
}
