package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingInvalidator struct {
	rooms []string
}

func (r *recordingInvalidator) InvalidateRoom(ctx context.Context, roomID string) {
	r.rooms = append(r.rooms, roomID)
}

func TestServiceGetRangeSynthesizesDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), nil, nil)

	start := dates("2025-06-01", 1)[0]
	end := start.AddDate(0, 0, 4)

	// One stored night in the middle, the rest must be synthesized.
	price := int64(9900)
	require.NoError(t, svc.SetPrice(ctx, "room-1", start.AddDate(0, 0, 1), &price))

	nights, err := svc.GetRange(ctx, "room-1", start, end)
	require.NoError(t, err)
	require.Len(t, nights, 4)

	for i, n := range nights {
		assert.Equal(t, start.AddDate(0, 0, i), n.Date)
		assert.True(t, n.IsAvailable)
	}
	assert.Nil(t, nights[0].PriceCents)
	require.NotNil(t, nights[1].PriceCents)
	assert.Equal(t, int64(9900), *nights[1].PriceCents)
}

func TestServiceGetRangeRejectsInvalidRange(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), nil, nil)
	day := dates("2025-06-01", 1)[0]

	_, err := svc.GetRange(ctx, "room-1", day, day)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.GetRange(ctx, "room-1", day.AddDate(0, 0, 1), day)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestServiceSetPriceRejectsNegative(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), nil, nil)

	bad := int64(-1)
	err := svc.SetPrice(ctx, "room-1", dates("2025-06-01", 1)[0], &bad)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestServiceClaimNormalizesDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewService(store, nil, nil)

	day := dates("2025-06-01", 1)[0]
	require.NoError(t, svc.Claim(ctx, "room-1", []time.Time{day, day, day.Add(3 * time.Hour)}))

	claimed, err := store.ListClaimedFrom(ctx, day)
	require.NoError(t, err)
	assert.Len(t, claimed, 1)
}

func TestServiceWritesInvalidateCache(t *testing.T) {
	ctx := context.Background()
	inval := &recordingInvalidator{}
	svc := NewService(NewMemoryStore(), nil, inval)

	day := dates("2025-06-01", 1)[0]
	price := int64(12000)

	require.NoError(t, svc.SetAvailability(ctx, "room-1", day, false))
	require.NoError(t, svc.SetAvailability(ctx, "room-1", day, true))
	require.NoError(t, svc.SetPrice(ctx, "room-1", day, &price))
	require.NoError(t, svc.Claim(ctx, "room-1", []time.Time{day}))
	require.NoError(t, svc.Release(ctx, "room-1", []time.Time{day}))

	assert.Equal(t, []string{"room-1", "room-1", "room-1", "room-1", "room-1"}, inval.rooms)
}
