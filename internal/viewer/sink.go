package viewer

import "github.com/medievail/skirmish/internal/runner"

// BroadcastSink adapts a Hub into a runner.Sink, pushing every tick
// directly to subscribed spectator connections over WebSocket.
type BroadcastSink struct {
	Hub      *Hub
	BattleID string
}

var _ runner.Sink = (*BroadcastSink)(nil)

// Publish implements runner.Sink.
func (s *BroadcastSink) Publish(t runner.TickSnapshot) {
	s.Hub.BroadcastToBattle(s.BattleID, WSEvent{Type: EventTick, BattleID: s.BattleID, Data: t})
}
