package orders

import (
	"testing"

	"github.com/medievail/skirmish/internal/model"
)

// stubOrder is a minimal Order whose Try result and squad id are fixed at
// construction, enough to exercise Manager's bookkeeping without a live
// engine.
type stubOrder struct {
	base
	name    string
	tryDone bool
	calls   int
}

func (s *stubOrder) Try(e Engine) bool { s.calls++; return s.tryDone }
func (s *stubOrder) String() string    { return s.name }

func newStub(name string, done bool) *stubOrder {
	return &stubOrder{name: name, tryDone: done}
}

func TestAddRejectsDuplicatePriority(t *testing.T) {
	m := NewManager()
	if err := m.Add(newStub("a", false), 0); err != nil {
		t.Fatalf("first Add at priority 0: %v", err)
	}
	if err := m.Add(newStub("b", false), 0); err == nil {
		t.Fatal("expected an error adding a second order at the same priority")
	}
}

func TestAddOrdersByAscendingPriority(t *testing.T) {
	m := NewManager()
	_ = m.Add(newStub("second", false), 5)
	_ = m.Add(newStub("first", false), 1)
	_ = m.Add(newStub("third", false), 9)

	got := m.Orders()
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("got %d orders, want %d", len(got), len(want))
	}
	for i, o := range got {
		if o.String() != want[i] {
			t.Errorf("position %d = %q, want %q", i, o.String(), want[i])
		}
	}
}

func TestEnforceSlotAlwaysHead(t *testing.T) {
	m := NewManager()
	_ = m.Add(newStub("normal", false), 0)
	_ = m.Add(newStub("enforced", false), enforcePriority)

	got := m.Orders()
	if got[0].String() != "enforced" {
		t.Fatalf("head order = %q, want enforced order first", got[0].String())
	}
}

func TestTryOrderBlockedWhileEnforced(t *testing.T) {
	m := NewManager()
	normal := newStub("normal", false)
	enforced := newStub("enforced", false)
	_ = m.Add(normal, 0)
	_ = m.Add(enforced, enforcePriority)

	if m.TryOrder(nil, normal) {
		t.Fatal("TryOrder on a non-enforced order should be blocked while enforce slot is occupied")
	}
	if normal.calls != 0 {
		t.Fatal("blocked order's Try must not be invoked")
	}
	m.TryOrder(nil, enforced)
	if enforced.calls != 1 {
		t.Fatal("TryOrder on the enforced order itself should invoke Try")
	}
}

func TestRunOneTickOnlyRunsHeadOrder(t *testing.T) {
	m := NewManager()
	first := newStub("first", false)
	second := newStub("second", false)
	_ = m.Add(first, 0)
	_ = m.Add(second, 1)

	m.RunOneTick(nil)

	if first.calls != 1 {
		t.Fatalf("head order's Try called %d times, want 1", first.calls)
	}
	if second.calls != 0 {
		t.Fatal("non-head order's Try must not be invoked")
	}
}

func TestRunOneTickRemovesCompletedOrder(t *testing.T) {
	m := NewManager()
	done := newStub("done", true)
	_ = m.Add(done, 0)

	m.RunOneTick(nil)

	if m.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after a completed order's tick", m.Len())
	}
}

func TestRemoveSquadOrdersOnlyRemovesMatchingSquad(t *testing.T) {
	m := NewManager()
	a := &Move{base: base{unit: &model.Unit{}}, X: 1, Y: 1}
	b := &Move{base: base{unit: &model.Unit{}}, X: 2, Y: 2}
	WithSquad(a, 1)
	WithSquad(b, 2)
	_ = m.Add(a, 0)
	_ = m.Add(b, 1)

	m.RemoveSquadOrders(1)

	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after removing squad 1's orders", m.Len())
	}
	remaining := m.Orders()
	if remaining[0] != Order(b) {
		t.Fatal("squad 2's order should remain")
	}
}

func TestAddMaxPriorityAppendsAfterHighest(t *testing.T) {
	m := NewManager()
	_ = m.Add(newStub("a", false), 3)
	if err := m.AddMaxPriority(newStub("b", false)); err != nil {
		t.Fatalf("AddMaxPriority: %v", err)
	}
	got := m.Orders()
	if got[len(got)-1].String() != "b" {
		t.Fatalf("AddMaxPriority did not append last: %v", got)
	}
}

func TestFlushClearsEverything(t *testing.T) {
	m := NewManager()
	_ = m.Add(newStub("a", false), 0)
	_ = m.Add(newStub("b", false), enforcePriority)
	m.Flush()

	if m.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after Flush", m.Len())
	}
	if _, ok := m.Enforced(); ok {
		t.Fatal("Flush should clear the enforce slot too")
	}
}
