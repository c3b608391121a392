package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/medievail/skirmish/internal/persist/dson"
	"github.com/redis/go-redis/v9"
)

const liveKeyPrefix = "battle:live:"
const liveTTL = 5 * time.Minute

func liveKey(battleID string) string { return liveKeyPrefix + battleID }

// PublishTick caches the latest tick's dson-encoded state for battleID,
// overwriting any prior snapshot, with a TTL so abandoned battles expire
// rather than accumulating forever.
func (c *Client) PublishTick(ctx context.Context, battleID string, s dson.State) error {
	encoded := dson.Format(s)
	if err := c.rdb.Set(ctx, liveKey(battleID), encoded, liveTTL).Err(); err != nil {
		return fmt.Errorf("publish tick: %w", err)
	}
	return nil
}

// LatestTick returns the most recently published snapshot for battleID, or
// ok=false if none is cached (battle finished, expired, or never started).
func (c *Client) LatestTick(ctx context.Context, battleID string) (s dson.State, ok bool, err error) {
	raw, err := c.rdb.Get(ctx, liveKey(battleID)).Result()
	if errors.Is(err, redis.Nil) {
		return dson.State{}, false, nil
	}
	if err != nil {
		return dson.State{}, false, fmt.Errorf("latest tick: %w", err)
	}
	s, err = dson.Parse(raw)
	if err != nil {
		return dson.State{}, false, fmt.Errorf("latest tick: %w", err)
	}
	return s, true, nil
}

// ClearBattle removes a battle's live snapshot, e.g. once it finishes.
func (c *Client) ClearBattle(ctx context.Context, battleID string) error {
	if err := c.rdb.Del(ctx, liveKey(battleID)).Err(); err != nil {
		return fmt.Errorf("clear battle: %w", err)
	}
	return nil
}
