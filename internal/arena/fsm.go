package arena

import (
	"fmt"
	"time"
)

// GameState is a node of the round state machine.
type GameState int

const (
	StatePlaying GameState = iota
	StateWin
	StateLose
)

func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateWin:
		return "win"
	case StateLose:
		return "lose"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Action executes a side effect against the machine's context.
type Action[T any] func(ctx T)

// GuardFunc returns true if the transition should occur.
type GuardFunc[T any] func(ctx T) bool

// Transition is an automatic, guard-driven edge. A nil guard always fires.
type Transition[T any] struct {
	Target GameState
	Guard  GuardFunc[T]
}

// Node describes one state: its lifecycle actions and its outgoing edges
// in evaluation order.
type Node[T any] struct {
	State       GameState
	OnEnter     []Action[T]
	OnUpdate    []Action[T]
	OnExit      []Action[T]
	Transitions []Transition[T]
}

// Machine is a flat finite state machine with deferred transitions.
// Update may request at most one transition; Apply performs it. This lets
// the owner commit entity removals between deciding and switching.
type Machine[T any] struct {
	nodes       map[GameState]*Node[T]
	active      GameState
	pending     GameState
	hasPending  bool
	timeInState time.Duration
}

func NewMachine[T any](initial GameState, nodes ...*Node[T]) *Machine[T] {
	m := &Machine[T]{
		nodes:  make(map[GameState]*Node[T], len(nodes)),
		active: initial,
	}
	for _, n := range nodes {
		m.nodes[n.State] = n
	}
	if _, ok := m.nodes[initial]; !ok {
		panic(fmt.Sprintf("fsm: initial state %s has no node", initial))
	}
	return m
}

func (m *Machine[T]) State() GameState { return m.active }
func (m *Machine[T]) TimeInState() time.Duration { return m.timeInState }

// Pending returns the requested but not yet applied target, if any.
func (m *Machine[T]) Pending() (GameState, bool) { return m.pending, m.hasPending }

// Enter runs the enter actions of the active state. Call once at start.
func (m *Machine[T]) Enter(ctx T) {
	for _, a := range m.nodes[m.active].OnEnter {
		a(ctx)
	}
}

// Update runs the active state's per-step actions, then evaluates its
// transitions in order and requests the first whose guard holds.
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	m.timeInState += dt
	node := m.nodes[m.active]
	for _, a := range node.OnUpdate {
		a(ctx)
	}
	for _, tr := range node.Transitions {
		if tr.Guard == nil || tr.Guard(ctx) {
			m.Request(tr.Target)
			return
		}
	}
}

// Request asks for a transition to target. Requesting the active state, or
// requesting anything while a request is already pending, is a no-op and
// returns false.
func (m *Machine[T]) Request(target GameState) bool {
	if m.hasPending || target == m.active {
		return false
	}
	if _, ok := m.nodes[target]; !ok {
		panic(fmt.Sprintf("fsm: transition to unknown state %s", target))
	}
	m.pending = target
	m.hasPending = true
	return true
}

// Apply performs the pending transition, running exit actions of the old
// state and enter actions of the new one. It reports the edge taken.
func (m *Machine[T]) Apply(ctx T) (from, to GameState, ok bool) {
	if !m.hasPending {
		return m.active, m.active, false
	}
	from, to = m.active, m.pending
	m.hasPending = false
	for _, a := range m.nodes[from].OnExit {
		a(ctx)
	}
	m.active = to
	m.timeInState = 0
	for _, a := range m.nodes[to].OnEnter {
		a(ctx)
	}
	return from, to, true
}
