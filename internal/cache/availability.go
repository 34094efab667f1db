package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const availabilityKeyPrefix = "availability:"

// AvailabilityCache stores rendered month-view availability responses per
// room. Every ledger write for a room invalidates all of that room's months.
// A nil *AvailabilityCache (or one built over a nil client) is a valid no-op
// cache.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AvailabilityCache{client: client, ttl: ttl}
}

func monthKey(roomID, month string) string {
	return fmt.Sprintf("%s%s:%s", availabilityKeyPrefix, roomID, month)
}

// GetMonth returns the cached payload for a room-month, if present.
func (c *AvailabilityCache) GetMonth(ctx context.Context, roomID, month string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, monthKey(roomID, month)).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// SetMonth stores the rendered payload for a room-month.
func (c *AvailabilityCache) SetMonth(ctx context.Context, roomID, month string, payload []byte) {
	if c == nil {
		return
	}
	_ = c.client.Set(ctx, monthKey(roomID, month), payload, c.ttl).Err()
}

// InvalidateRoom drops every cached month for the room.
func (c *AvailabilityCache) InvalidateRoom(ctx context.Context, roomID string) {
	if c == nil {
		return
	}

	pattern := availabilityKeyPrefix + roomID + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Del(ctx, iter.Val()).Err()
	}
}
