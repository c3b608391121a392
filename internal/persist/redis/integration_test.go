//go:build integration

package redis

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"

	"github.com/medievail/skirmish/internal/persist/dson"
	"github.com/medievail/skirmish/internal/testutil"
)

var testRDB *goredis.Client

func setup(t *testing.T) *Client {
	t.Helper()
	if testRDB == nil {
		testRDB = testutil.SetupRedis(t)
	}
	testutil.CleanupRedis(t, testRDB)
	return NewClientFromPool(testRDB)
}

func TestPublishTickRoundTrip(t *testing.T) {
	c := setup(t)
	ctx := context.Background()
	battleID := "test-battle-1"

	state := dson.State{
		Tick: 42, SizeX: 200, SizeY: 200, Seed: 7,
		Units: []dson.UnitRecord{
			{Team: 0, Type: 0, X: 1.5, Y: 2.5, HP: 90},
		},
	}

	if err := c.PublishTick(ctx, battleID, state); err != nil {
		t.Fatalf("publish tick: %v", err)
	}

	got, ok, err := c.LatestTick(ctx, battleID)
	if err != nil {
		t.Fatalf("latest tick: %v", err)
	}
	if !ok {
		t.Fatal("expected a cached snapshot")
	}
	if got.Tick != 42 || len(got.Units) != 1 {
		t.Fatalf("round-tripped state = %+v, want tick 42 with one unit", got)
	}
}

func TestLatestTickNotFound(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	_, ok, err := c.LatestTick(ctx, "nonexistent-battle")
	if err != nil {
		t.Fatalf("latest tick on missing battle: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for a battle with no cached snapshot")
	}
}

func TestClearBattleRemovesSnapshot(t *testing.T) {
	c := setup(t)
	ctx := context.Background()
	battleID := "test-battle-2"

	_ = c.PublishTick(ctx, battleID, dson.State{Tick: 1, SizeX: 10, SizeY: 10})
	if err := c.ClearBattle(ctx, battleID); err != nil {
		t.Fatalf("clear battle: %v", err)
	}

	_, ok, err := c.LatestTick(ctx, battleID)
	if err != nil {
		t.Fatalf("latest tick after clear: %v", err)
	}
	if ok {
		t.Fatal("expected no cached snapshot after ClearBattle")
	}
}
