package arena

import "testing"

func TestLOS_ClearPath(t *testing.T) {
	if !HasLineOfSight(Vec2{0, 0}, Vec2{100, 100}, nil) {
		t.Fatal("expected LOS with no walls")
	}
}

func TestLOS_BlockedByWall(t *testing.T) {
	walls := []Box{box(50, 0, 10, 10)}
	if HasLineOfSight(Vec2{0, 0}, Vec2{100, 0}, walls) {
		t.Fatal("expected LOS blocked by wall")
	}
}

func TestLOS_WallBesidePath(t *testing.T) {
	walls := []Box{box(50, 50, 10, 10)}
	if !HasLineOfSight(Vec2{0, 0}, Vec2{100, 0}, walls) {
		t.Fatal("expected LOS clear past a wall off the line")
	}
}

func TestLOS_WallBeyondTarget(t *testing.T) {
	walls := []Box{box(200, 0, 10, 10)}
	if !HasLineOfSight(Vec2{0, 0}, Vec2{100, 0}, walls) {
		t.Fatal("a wall beyond the target must not block")
	}
}

func TestLOS_VerticalSegment(t *testing.T) {
	walls := []Box{box(0, 50, 10, 10)}
	if HasLineOfSight(Vec2{0, 0}, Vec2{0, 100}, walls) {
		t.Fatal("expected vertical LOS blocked")
	}
	if !HasLineOfSight(Vec2{20, 0}, Vec2{20, 100}, walls) {
		t.Fatal("expected parallel vertical LOS clear")
	}
}

func TestAutopilot_ClearsDuel(t *testing.T) {
	ap := NewAutopilot()
	ap.StrafeEvery = 0
	ts := NewTestSim(
		WithTuning(quietTuning()),
		WithPlayer(0, 0),
		WithEnemy(200, 0),
		WithInput(ap),
	)
	tick := ts.RunUntil(func(ts *TestSim) bool { return ts.Sim.State() == StateWin }, 100)
	if tick < 0 {
		dumpLog(t, ts)
		t.Fatal("expected autopilot to destroy the only enemy")
	}
}

func TestAutopilot_PrefersVisibleTarget(t *testing.T) {
	ts := NewTestSim(
		WithTuning(quietTuning()),
		WithPlayer(0, 0),
		WithEnemy(100, 0),  // nearer but behind a wall
		WithEnemy(-200, 0), // farther, in the open
		WithWall(50, 0),
	)
	in := NewAutopilot().Input(ts.Sim)
	if !in.PointerOK || in.Pointer != (Vec2{-200, 0}) {
		t.Fatalf("aim = %v,%t want (-200,0)", in.Pointer, in.PointerOK)
	}
	if !in.Fire {
		t.Fatal("expected the first input to fire")
	}
}
