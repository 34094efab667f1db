package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcvidal/hotel-booking-backend/internal/ledger"
)

func TestTotalPriceCents(t *testing.T) {
	price := func(v int64) *int64 { return &v }

	tests := []struct {
		name   string
		nights []*ledger.RoomNight
		base   int64
		want   int64
	}{
		{
			name: "base price for every night",
			nights: []*ledger.RoomNight{
				{Date: day("2025-06-01")},
				{Date: day("2025-06-02")},
			},
			base: 10000,
			want: 20000,
		},
		{
			name: "override replaces base for its night only",
			nights: []*ledger.RoomNight{
				{Date: day("2025-06-01")},
				{Date: day("2025-06-02"), PriceCents: price(15000)},
				{Date: day("2025-06-03")},
			},
			base: 10000,
			want: 35000,
		},
		{
			name: "zero override is honored",
			nights: []*ledger.RoomNight{
				{Date: day("2025-06-01"), PriceCents: price(0)},
			},
			base: 10000,
			want: 0,
		},
		{
			name:   "single night",
			nights: []*ledger.RoomNight{{Date: day("2025-06-01")}},
			base:   9950,
			want:   9950,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TotalPriceCents(tt.nights, tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTotalPriceCentsEmptyRange(t *testing.T) {
	_, err := TotalPriceCents(nil, 10000)
	assert.ErrorIs(t, err, ErrEmptyRange)
}
