package viewer

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medievail/skirmish/internal/persist/dson"
	"github.com/medievail/skirmish/internal/persist/redis"
	"github.com/medievail/skirmish/internal/runner"
)

// RedisPoller bridges internal/persist/redis.Client's cached live-tick
// snapshots into a Hub, for deployments where the battle and the viewer are
// separate processes. It polls one goroutine per battle ID, started the
// first time a spectator subscribes, and stops on its own once the battle
// has no more subscribers or its Redis snapshot disappears.
type RedisPoller struct {
	hub      *Hub
	client   *redis.Client
	interval time.Duration

	mu      sync.Mutex
	polling map[string]bool
}

// NewRedisPoller creates a RedisPoller. It starts no goroutines until
// EnsurePolling is called for a battle ID.
func NewRedisPoller(hub *Hub, client *redis.Client, interval time.Duration) *RedisPoller {
	return &RedisPoller{hub: hub, client: client, interval: interval, polling: make(map[string]bool)}
}

// EnsurePolling starts polling battleID if it isn't already being polled.
func (p *RedisPoller) EnsurePolling(battleID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.polling[battleID] {
		return
	}
	p.polling[battleID] = true
	go p.poll(battleID)
}

func (p *RedisPoller) poll(battleID string) {
	defer func() {
		p.mu.Lock()
		delete(p.polling, battleID)
		p.mu.Unlock()
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	lastTick := -1
	for range ticker.C {
		if p.hub.BattleSubscriberCount(battleID) == 0 {
			return
		}

		state, ok, err := p.client.LatestTick(context.Background(), battleID)
		if err != nil {
			log.Warn().Err(err).Str("battleId", battleID).Msg("polling live battle state failed")
			continue
		}
		if !ok {
			p.hub.BroadcastToBattle(battleID, WSEvent{Type: EventBattleEnded, BattleID: battleID, Data: map[string]any{}})
			return
		}
		if state.Tick == lastTick {
			continue
		}
		lastTick = state.Tick
		p.hub.BroadcastToBattle(battleID, WSEvent{Type: EventTick, BattleID: battleID, Data: snapshotFromState(state)})
	}
}

// snapshotFromState converts a polled dson.State into the same
// runner.TickSnapshot shape BroadcastSink pushes in-process, so spectator
// clients see one event schema regardless of which sink fed it.
func snapshotFromState(s dson.State) runner.TickSnapshot {
	snap := runner.TickSnapshot{Tick: s.Tick, Units: make([]runner.UnitSnapshot, 0, len(s.Units))}
	for _, u := range s.Units {
		snap.Units = append(snap.Units, runner.UnitSnapshot{Team: u.Team, Type: u.Type, X: u.X, Y: u.Y, HP: u.HP})
	}
	return snap
}
