package orders

import (
	"container/list"
	"fmt"
)

const enforcePriority = -1

// node is one entry in the manager's priority-ordered list.
type node struct {
	priority int
	order    Order
}

// Manager is a unit's priority-ordered order list: a doubly-linked list of
// (priority, order) nodes in ascending priority order, plus two indices
// (priority -> list element, order -> priority) giving O(1) lookup and
// removal; Add scans the list for its insertion point.
// Priority -1 is the "enforce" slot: at most one order may occupy it, it is
// always the head of iteration, and while it is present no other order's
// Try is invoked.
type Manager struct {
	l            *list.List
	byPriority   map[int]*list.Element
	priorityOf   map[Order]int
	maxNonNegPri int
	hasMax       bool
}

// NewManager returns an empty order manager.
func NewManager() *Manager {
	return &Manager{
		l:          list.New(),
		byPriority: make(map[int]*list.Element),
		priorityOf: make(map[Order]int),
	}
}

// Add inserts order at priority. Returns an error if priority is already
// occupied. Priority -1
// always inserts at the head; non-negative priorities insert after the
// largest existing priority strictly less than the new one, preserving
// ascending order.
func (m *Manager) Add(order Order, priority int) error {
	if _, exists := m.byPriority[priority]; exists {
		return fmt.Errorf("orders: manager already has an entry at priority %d", priority)
	}
	n := &node{priority: priority, order: order}

	if priority == enforcePriority {
		el := m.l.PushFront(n)
		m.byPriority[priority] = el
		m.priorityOf[order] = priority
		return nil
	}

	var insertBefore *list.Element
	for el := m.l.Front(); el != nil; el = el.Next() {
		p := el.Value.(*node).priority
		if p == enforcePriority {
			continue
		}
		if p > priority {
			insertBefore = el
			break
		}
	}

	var el *list.Element
	if insertBefore != nil {
		el = m.l.InsertBefore(n, insertBefore)
	} else {
		el = m.l.PushBack(n)
	}
	m.byPriority[priority] = el
	m.priorityOf[order] = priority

	if priority > m.maxNonNegPri || !m.hasMax {
		m.maxNonNegPri = priority
		m.hasMax = true
	}
	return nil
}

// AddMaxPriority inserts order at the largest used non-negative priority + 1
// (or 0 if the manager has none yet).
func (m *Manager) AddMaxPriority(order Order) error {
	next := 0
	if m.hasMax {
		next = m.maxNonNegPri + 1
	}
	return m.Add(order, next)
}

// Remove deletes order from the manager, wherever it sits.
func (m *Manager) Remove(order Order) {
	priority, ok := m.priorityOf[order]
	if !ok {
		return
	}
	m.RemoveAt(priority)
}

// RemoveAt deletes whatever order occupies priority, if any.
func (m *Manager) RemoveAt(priority int) {
	el, ok := m.byPriority[priority]
	if !ok {
		return
	}
	n := el.Value.(*node)
	m.l.Remove(el)
	delete(m.byPriority, priority)
	delete(m.priorityOf, n.order)

	if m.hasMax && priority == m.maxNonNegPri {
		m.hasMax = false
		m.maxNonNegPri = 0
		if back := m.l.Back(); back != nil {
			if p := back.Value.(*node).priority; p >= 0 {
				m.maxNonNegPri = p
				m.hasMax = true
			}
		}
	}
}

// Flush clears every order.
func (m *Manager) Flush() {
	m.l.Init()
	m.byPriority = make(map[int]*list.Element)
	m.priorityOf = make(map[Order]int)
	m.maxNonNegPri = 0
	m.hasMax = false
}

// RemoveSquadOrders removes every order whose squad id is non-nil and
// equals squadID.
func (m *Manager) RemoveSquadOrders(squadID int) {
	var toRemove []Order
	for el := m.l.Front(); el != nil; el = el.Next() {
		n := el.Value.(*node)
		if sid := n.order.SquadID(); sid != nil && *sid == squadID {
			toRemove = append(toRemove, n.order)
		}
	}
	for _, o := range toRemove {
		m.Remove(o)
	}
}

// Len returns the number of orders currently held.
func (m *Manager) Len() int { return m.l.Len() }

// Enforced reports whether an enforce-slot order is present, and returns it.
func (m *Manager) Enforced() (Order, bool) {
	el, ok := m.byPriority[enforcePriority]
	if !ok {
		return nil, false
	}
	return el.Value.(*node).order, true
}

// TryOrder invokes order.Try(e) unless an enforce-slot order exists and it
// is not the passed order, in which case it returns false without calling
// Try.
func (m *Manager) TryOrder(e Engine, order Order) bool {
	if enforced, ok := m.Enforced(); ok && enforced != order {
		return false
	}
	return order.Try(e)
}

// RunOneTick invokes Try on exactly the first order in priority order
// (enforce first if present) and removes it if Try returns true. Only one
// order's Try is ever called per unit per tick, regardless of what it
// returns. If the enforce slot is occupied, only that order is ever reached.
func (m *Manager) RunOneTick(e Engine) {
	front := m.l.Front()
	if front == nil {
		return
	}
	n := front.Value.(*node)
	if n.order.Try(e) {
		m.Remove(n.order)
	}
}

// Orders returns the current orders in ascending priority order (enforce
// first if present), for inspection/testing.
func (m *Manager) Orders() []Order {
	out := make([]Order, 0, m.l.Len())
	for el := m.l.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*node).order)
	}
	return out
}

func (m *Manager) String() string {
	out := "OrderManager["
	first := true
	for el := m.l.Front(); el != nil; el = el.Next() {
		n := el.Value.(*node)
		if !first {
			out += ", "
		}
		first = false
		out += fmt.Sprintf("%d:%s", n.priority, n.order.String())
	}
	return out + "]"
}
