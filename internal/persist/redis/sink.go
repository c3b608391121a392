package redis

import (
	"context"

	"github.com/medievail/skirmish/internal/persist/dson"
	"github.com/medievail/skirmish/internal/runner"
)

// Sink adapts a Client into a runner.Sink, publishing every tick's snapshot
// under battleID so the viewer can read it without coupling to the running
// battle goroutine.
type Sink struct {
	Client   *Client
	BattleID string
	SizeX    float64
	SizeY    float64
	Seed     int64
}

var _ runner.Sink = (*Sink)(nil)

// Publish implements runner.Sink. Errors are swallowed (logged by the
// caller if desired) since a dropped spectator frame must never abort the
// battle itself.
func (s *Sink) Publish(t runner.TickSnapshot) {
	state := dson.State{Tick: t.Tick, SizeX: s.SizeX, SizeY: s.SizeY, Seed: s.Seed}
	for _, u := range t.Units {
		state.Units = append(state.Units, dson.UnitRecord{
			Type: u.Type, Team: u.Team, X: u.X, Y: u.Y, HP: u.HP,
		})
	}
	_ = s.Client.PublishTick(context.Background(), s.BattleID, state)
}
