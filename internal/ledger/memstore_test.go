package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dates(from string, n int) []time.Time {
	start, err := time.Parse(time.DateOnly, from)
	if err != nil {
		panic(err)
	}
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

func TestMemoryStoreClaimRelease(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	nights := dates("2025-06-01", 2)

	require.NoError(t, store.Claim(ctx, "room-1", nights))

	stored, err := store.GetNights(ctx, "room-1", nights[0], nights[1].AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, n := range stored {
		assert.False(t, n.IsAvailable)
		assert.True(t, n.Claimed())
	}

	require.NoError(t, store.Release(ctx, "room-1", nights))

	stored, err = store.GetNights(ctx, "room-1", nights[0], nights[1].AddDate(0, 0, 1))
	require.NoError(t, err)
	for _, n := range stored {
		assert.True(t, n.IsAvailable)
	}
}

func TestMemoryStoreClaimConflictReportsFirstDate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Claim(ctx, "room-1", dates("2025-06-02", 1)))

	err := store.Claim(ctx, "room-1", dates("2025-06-01", 3))
	require.Error(t, err)

	conflict, ok := err.(*ConflictError)
	require.True(t, ok)
	assert.Equal(t, "2025-06-02", conflict.Date.Format(time.DateOnly))

	// All-or-nothing: the night before the conflict must still be free.
	stored, err := store.GetNights(ctx, "room-1", dates("2025-06-01", 1)[0], dates("2025-06-02", 1)[0])
	require.NoError(t, err)
	for _, n := range stored {
		assert.True(t, n.IsAvailable)
	}
}

func TestMemoryStoreReleaseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	nights := dates("2025-06-01", 2)

	require.NoError(t, store.Claim(ctx, "room-1", nights))
	require.NoError(t, store.Release(ctx, "room-1", nights))
	require.NoError(t, store.Release(ctx, "room-1", nights))

	// Released nights can be claimed again.
	require.NoError(t, store.Claim(ctx, "room-1", nights))
}

func TestMemoryStoreAdminBlockIsNotAClaim(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	day := dates("2025-06-01", 1)[0]

	require.NoError(t, store.SetAvailability(ctx, "room-1", day, false))

	// Blocked nights reject claims.
	err := store.Claim(ctx, "room-1", []time.Time{day})
	require.Error(t, err)

	// But the orphan scan must not see them as booking-held.
	claimed, err := store.ListClaimedFrom(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, claimed)

	require.NoError(t, store.SetAvailability(ctx, "room-1", day, true))
	require.NoError(t, store.Claim(ctx, "room-1", []time.Time{day}))

	claimed, err = store.ListClaimedFrom(ctx, day)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, "room-1", claimed[0].RoomID)
}

func TestMemoryStoreConcurrentClaimSingleWinner(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	nights := dates("2025-06-01", 3)

	const claimers = 16
	var wg sync.WaitGroup
	errs := make([]error, claimers)

	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.Claim(ctx, "room-1", nights)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			var conflict *ConflictError
			assert.ErrorAs(t, err, &conflict)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestMemoryStorePriceOverrideSurvivesClaim(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	day := dates("2025-06-01", 1)[0]

	price := int64(15000)
	require.NoError(t, store.SetPrice(ctx, "room-1", day, &price))
	require.NoError(t, store.Claim(ctx, "room-1", []time.Time{day}))

	stored, err := store.GetNights(ctx, "room-1", day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.NotNil(t, stored[0].PriceCents)
	assert.Equal(t, int64(15000), *stored[0].PriceCents)
}
