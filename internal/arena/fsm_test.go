package arena

import (
	"testing"
	"time"
)

type fsmProbe struct {
	calls []string
	ready bool
}

func (p *fsmProbe) record(s string) Action[*fsmProbe] {
	return func(ctx *fsmProbe) { ctx.calls = append(ctx.calls, s) }
}

func TestMachine_ApplyRunsExitThenEnter(t *testing.T) {
	p := &fsmProbe{}
	m := NewMachine(StatePlaying,
		&Node[*fsmProbe]{
			State:       StatePlaying,
			OnEnter:     []Action[*fsmProbe]{p.record("enter playing")},
			OnUpdate:    []Action[*fsmProbe]{p.record("update playing")},
			OnExit:      []Action[*fsmProbe]{p.record("exit playing")},
			Transitions: []Transition[*fsmProbe]{{Target: StateWin, Guard: func(c *fsmProbe) bool { return c.ready }}},
		},
		&Node[*fsmProbe]{
			State:   StateWin,
			OnEnter: []Action[*fsmProbe]{p.record("enter win")},
		},
	)
	m.Enter(p)
	m.Update(p, time.Second)
	if _, ok := m.Pending(); ok {
		t.Fatal("guard false, expected no pending transition")
	}
	if m.TimeInState() != time.Second {
		t.Fatalf("time in state = %v, want 1s", m.TimeInState())
	}

	p.ready = true
	m.Update(p, time.Second)
	if m.State() != StatePlaying {
		t.Fatal("transition must wait for Apply")
	}
	from, to, ok := m.Apply(p)
	if !ok || from != StatePlaying || to != StateWin {
		t.Fatalf("Apply = %s,%s,%t", from, to, ok)
	}
	if m.TimeInState() != 0 {
		t.Fatal("time in state should reset on transition")
	}

	want := []string{"enter playing", "update playing", "update playing", "exit playing", "enter win"}
	if len(p.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", p.calls, want)
	}
	for i := range want {
		if p.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", p.calls, want)
		}
	}

	if _, _, ok := m.Apply(p); ok {
		t.Fatal("second Apply without a request should do nothing")
	}
}

func TestMachine_FirstSatisfiedGuardWins(t *testing.T) {
	always := func(*fsmProbe) bool { return true }
	m := NewMachine(StatePlaying,
		&Node[*fsmProbe]{State: StatePlaying, Transitions: []Transition[*fsmProbe]{
			{Target: StateWin, Guard: always},
			{Target: StateLose, Guard: always},
		}},
		&Node[*fsmProbe]{State: StateWin},
		&Node[*fsmProbe]{State: StateLose},
	)
	m.Update(&fsmProbe{}, 0)
	if got, _ := m.Pending(); got != StateWin {
		t.Fatalf("pending = %s, want win", got)
	}
}
