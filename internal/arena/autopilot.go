package arena

// Autopilot drives the player for demos and headless runs. It aims at the
// nearest enemy it has a clear shot at (or the nearest enemy when none is
// clear, hoping for a ricochet) and strafes vertically to dodge.
type Autopilot struct {
	FireEvery   int // steps between shots
	StrafeEvery int // steps before reversing strafe direction; 0 disables

	lastFire int
	up       bool
}

// NewAutopilot returns an autopilot with the stock cadence.
func NewAutopilot() *Autopilot {
	return &Autopilot{FireEvery: 20, StrafeEvery: 90, lastFire: -1 << 30}
}

func (a *Autopilot) Input(s *Sim) InputState {
	var in InputState
	p, ok := s.store.Player()
	if !ok || s.State() != StatePlaying {
		return in
	}
	pos := Transform.Get(p).Position
	target, ok := a.pickTarget(s, pos)
	if !ok {
		return in
	}
	in.Pointer, in.PointerOK = target, true

	tick := s.Tick() + 1
	if tick-a.lastFire >= a.FireEvery {
		in.Fire = true
		a.lastFire = tick
	}
	if a.StrafeEvery > 0 {
		if tick%a.StrafeEvery == 0 {
			a.up = !a.up
		}
		in.Up, in.Down = a.up, !a.up
	}
	return in
}

func (a *Autopilot) pickTarget(s *Sim, from Vec2) (Vec2, bool) {
	walls := inflate(s.store.Walls(), s.tuning.BulletHalf)
	var best, fallback Vec2
	bestD, fallbackD := -1.0, -1.0
	for _, e := range s.store.EnemyPositions() {
		d := from.Dist(e)
		if fallbackD < 0 || d < fallbackD {
			fallback, fallbackD = e, d
		}
		if HasLineOfSight(from, e, walls) && (bestD < 0 || d < bestD) {
			best, bestD = e, d
		}
	}
	switch {
	case bestD >= 0:
		return best, true
	case fallbackD >= 0:
		return fallback, true
	}
	return Vec2{}, false
}
