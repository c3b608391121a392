// Package neural implements the NEURALIQ troop strategy: a per-unit order
// that scores candidate actions with a small ONNX policy network (loaded
// via gonnx, the pure-Go ONNX runtime) and falls back to a deterministic
// heuristic identical in shape when no model is available.
package neural

import (
	"log"
	"sync"

	gonnx "github.com/advancedclimatesystems/gonnx"
	"gorgonia.org/tensor"

	"github.com/medievail/skirmish/internal/model"
	"github.com/medievail/skirmish/internal/orders"
	"github.com/medievail/skirmish/internal/strategy"
)

// NumFeatures is the flat feature vector's length: for each of the three
// concrete types (Knight, Pikeman, Crossbowman) — nearest-enemy distance,
// nearest-enemy HP fraction, and 1 if an enemy of that type is in sight
// (else 0) — plus the observing unit's own HP fraction.
const NumFeatures = 3*3 + 1

// NumActions is the policy's output width: attack-nearest-Knight,
// attack-nearest-Pikeman, attack-nearest-Crossbowman, avoid-all.
const NumActions = 4

// ModelPath is the directory containing policy.onnx. Set at startup from
// the NEURALIQ_MODEL_PATH env var; empty means "never attempt to load,
// always use the heuristic fallback".
var ModelPath string

// policy wraps a loaded gonnx policy model. A nil *policy (or a policy
// whose model field is nil) always falls back to the heuristic.
type policy struct {
	model *gonnx.Model
	mu    sync.Mutex
}

// loadPolicy attempts to load policy.onnx from ModelPath. Returns nil,nil
// if ModelPath is unset (heuristic-only mode is the default, since no
// model ships with this repository).
func loadPolicy() (*policy, error) {
	if ModelPath == "" {
		return nil, nil
	}
	m, err := gonnx.NewModelFromFile(ModelPath + "/policy.onnx")
	if err != nil {
		return nil, err
	}
	return &policy{model: m}, nil
}

// run executes the policy network on features, returning NumActions
// logits, or nil if inference fails.
func (p *policy) run(features []float32) []float32 {
	if p == nil || p.model == nil {
		return nil
	}
	in := tensor.New(
		tensor.WithShape(1, NumFeatures),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(features),
	)
	p.mu.Lock()
	outputs, err := p.model.Run(gonnx.Tensors{"features": in})
	p.mu.Unlock()
	if err != nil {
		log.Printf("neural: policy run error: %v", err)
		return nil
	}
	out, ok := outputs["action_logits"]
	if !ok {
		for _, v := range outputs {
			out = v
			break
		}
	}
	if out == nil {
		return nil
	}
	switch d := out.Data().(type) {
	case []float32:
		return d
	case []float64:
		f32 := make([]float32, len(d))
		for i, v := range d {
			f32[i] = float32(v)
		}
		return f32
	default:
		return nil
	}
}

// troopStrategy installs one decideOrder per unit at priority 0. Built once
// per General via NewTroopStrategies so every unit shares the same loaded
// (or absent) policy.
type troopStrategy struct{ policy *policy }

func (s troopStrategy) Apply(r strategy.Roster, u *model.Unit) {
	_ = r.OrdersFor(u).Add(&decideOrder{decide: decide{unit: u, policy: s.policy}}, 0)
}

// NewTroopStrategies attempts to load policy.onnx from ModelPath and
// returns a troop-strategy map keyed by the three concrete types — all
// three share one troopStrategy value since the policy network is
// type-agnostic. Falls back to a nil (heuristic-only) policy on any load
// error.
func NewTroopStrategies() map[model.UnitType]strategy.TroopStrategy {
	p, err := loadPolicy()
	if err != nil {
		log.Printf("neural: NEURALIQ model load failed, falling back to heuristic: %v", err)
		p = nil
	}
	ts := troopStrategy{policy: p}
	return map[model.UnitType]strategy.TroopStrategy{
		model.Knight:      ts,
		model.Pikeman:     ts,
		model.Crossbowman: ts,
	}
}

// decide implements the neuralDecide order's one-tick logic; with a nil
// policy it runs on the heuristic alone.
type decide struct {
	unit   *model.Unit
	policy *policy
}

var _ orders.Order = (*decideOrder)(nil)

// decideOrder wraps decide to satisfy orders.Order; kept separate so decide
// itself stays a plain value usable from tests.
type decideOrder struct {
	decide
	squadID *int
}

func (d *decideOrder) Try(e orders.Engine) bool { return d.decide.try(e) }
func (d *decideOrder) Unit() *model.Unit        { return d.unit }
func (d *decideOrder) SquadID() *int            { return d.squadID }
func (d *decideOrder) String() string           { return "NeuralDecide(" + d.unit.Name + ")" }

// try scores the four candidate actions and delegates to the winner's own
// one-tick order. Delegation (not reimplementation) keeps NEURALIQ's combat
// mechanics identical to every other strategy's.
func (d decide) try(e orders.Engine) bool {
	features := encode(e, d.unit)
	logits := d.policy.run(features)
	action := argmaxOrHeuristic(logits, features)

	switch action {
	case 0:
		return orders.NewAttackNearestOmniscient(d.unit, model.Knight).Try(e)
	case 1:
		return orders.NewAttackNearestOmniscient(d.unit, model.Pikeman).Try(e)
	case 2:
		return orders.NewAttackNearestOmniscient(d.unit, model.Crossbowman).Try(e)
	default:
		return orders.NewAvoid(d.unit, model.All).Try(e)
	}
}

// encode builds the flat feature vector for one unit's current situation.
func encode(e orders.Engine, u *model.Unit) []float32 {
	features := make([]float32, NumFeatures)
	types := []model.UnitType{model.Knight, model.Pikeman, model.Crossbowman}
	for i, t := range types {
		nearest := e.NearestEnemy(u, t)
		if nearest == nil {
			features[i*3+0] = 1e6 // unreachable: effectively infinite distance
			continue
		}
		mapX, mapY := e.MapSize()
		maxDist := float32(mapX + mapY)
		dist := float32(distance(u, nearest))
		features[i*3+0] = dist / maxDist
		features[i*3+1] = float32(nearest.HP / nearest.MaxHP)
		if e.NearestEnemyInSight(u, t) != nil {
			features[i*3+2] = 1
		}
	}
	features[NumFeatures-1] = float32(u.HP / u.MaxHP)
	return features
}

func distance(a, b *model.Unit) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy // squared distance is sufficient for ranking features
}

// argmaxOrHeuristic picks the highest-scoring action from logits, or — when
// no model is loaded or inference failed — applies the same heuristic the
// model is meant to approximate: attack whichever type is nearest and
// weakest, unless this unit is critically wounded, in which case avoid.
func argmaxOrHeuristic(logits []float32, features []float32) int {
	if logits != nil {
		best, bestScore := 0, logits[0]
		for i := 1; i < len(logits) && i < NumActions; i++ {
			if logits[i] > bestScore {
				best, bestScore = i, logits[i]
			}
		}
		return best
	}

	if features[NumFeatures-1] < 0.25 {
		return 3 // avoid: this unit is critically wounded
	}
	best, bestScore := 0, float32(1e18)
	for i := 0; i < 3; i++ {
		score := features[i*3+0] * (features[i*3+1] + 0.1)
		if score < bestScore {
			best, bestScore = i, score
		}
	}
	return best
}
