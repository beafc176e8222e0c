package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// holdTTL keeps slot claims alive long past the appointment; the key is
// released explicitly on cancellation or completion.
const holdTTL = 30 * 24 * time.Hour

// SlotHold guards appointment slots against double-booking, backed by Redis.
// Key format: slot:<technician_id>:<unix_timestamp>
type SlotHold struct {
	client *redis.Client
}

// NewSlotHold creates a SlotHold wrapping the given Redis client.
func NewSlotHold(client *redis.Client) *SlotHold {
	return &SlotHold{client: client}
}

// Hold claims the slot for the given booking code. Returns false when the
// slot is already held by another booking.
func (s *SlotHold) Hold(ctx context.Context, technicianID string, slot time.Time, code string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(technicianID, slot), code, holdTTL).Result()
	if err != nil {
		return false, fmt.Errorf("slot hold: %w", err)
	}
	return ok, nil
}

// Release frees the slot so it can be booked again.
func (s *SlotHold) Release(ctx context.Context, technicianID string, slot time.Time) error {
	if err := s.client.Del(ctx, s.key(technicianID, slot)).Err(); err != nil {
		return fmt.Errorf("slot release: %w", err)
	}
	return nil
}

func (s *SlotHold) key(technicianID string, slot time.Time) string {
	return fmt.Sprintf("slot:%s:%d", technicianID, slot.UTC().Unix())
}
