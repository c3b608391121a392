package neural

import (
	"testing"

	"github.com/medievail/skirmish/internal/model"
)

func TestArgmaxOrHeuristicUsesLogitsWhenPresent(t *testing.T) {
	logits := []float32{0.1, 0.9, 0.2, 0.0}
	features := make([]float32, NumFeatures)
	features[NumFeatures-1] = 1 // full health, shouldn't matter since logits win

	got := argmaxOrHeuristic(logits, features)
	if got != 1 {
		t.Fatalf("argmaxOrHeuristic = %d, want 1 (highest logit)", got)
	}
}

func TestArgmaxOrHeuristicAvoidsWhenCriticallyWounded(t *testing.T) {
	features := make([]float32, NumFeatures)
	features[NumFeatures-1] = 0.1 // below the 0.25 threshold

	got := argmaxOrHeuristic(nil, features)
	if got != 3 {
		t.Fatalf("argmaxOrHeuristic = %d, want 3 (avoid)", got)
	}
}

func TestArgmaxOrHeuristicPicksNearestWeakestWhenHealthy(t *testing.T) {
	features := make([]float32, NumFeatures)
	features[NumFeatures-1] = 1.0
	// Knight: far and healthy. Pikeman: near and wounded. Crossbowman: far and wounded.
	features[0*3+0], features[0*3+1] = 0.9, 0.9
	features[1*3+0], features[1*3+1] = 0.1, 0.1
	features[2*3+0], features[2*3+1] = 0.9, 0.1

	got := argmaxOrHeuristic(nil, features)
	if got != 1 {
		t.Fatalf("argmaxOrHeuristic = %d, want 1 (nearest and weakest Pikeman)", got)
	}
}

func TestNewTroopStrategiesHeuristicFallbackWhenModelPathUnset(t *testing.T) {
	ModelPath = ""
	ts := NewTroopStrategies()
	for _, typ := range []model.UnitType{model.Knight, model.Pikeman, model.Crossbowman} {
		if _, ok := ts[typ]; !ok {
			t.Errorf("missing troop strategy for %v", typ)
		}
	}
}

func TestPolicyRunNilIsNoop(t *testing.T) {
	var p *policy
	if got := p.run(make([]float32, NumFeatures)); got != nil {
		t.Fatalf("nil policy.run() = %v, want nil", got)
	}
}
