package arena

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/yohamta/donburi"
)

// TestSim is a headless harness around Sim used by tests and the batch
// report tool. It builds a one-off level from placement options, feeds
// scripted input, and steps with a fixed dt.
type TestSim struct {
	Sim    *Sim
	SimLog *SimLog
	Step   time.Duration

	tuning     Tuning
	placements []Placement
	levels     []Level
	input      InputSource
	logger     *slog.Logger
}

type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // tuning, arena size, step, verbose, logger
	simOptLayout                      // placements and level lists
	simOptInput
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithTuning replaces the whole tuning block.
func WithTuning(t Tuning) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.tuning = t }}
}

// WithArena sets the arena half extents.
func WithArena(halfW, halfH float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.tuning.ArenaHalfWidth = halfW
		ts.tuning.ArenaHalfHeight = halfH
	}}
}

// WithStep sets the fixed dt used by RunSteps and RunUntil.
func WithStep(d time.Duration) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.Step = d }}
}

// WithVerbose enables per-step movement entries in the event log.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.SimLog = NewSimLog(v) }}
}

// WithHarnessLogger routes the simulation's slog output.
func WithHarnessLogger(l *slog.Logger) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.logger = l }}
}

func WithPlayer(x, y float64) SimOption {
	return SimOption{simOptLayout, func(ts *TestSim) {
		ts.placements = append(ts.placements, Placement{Kind: KindPlayer, Pos: Vec2{x, y}})
	}}
}

func WithEnemy(x, y float64) SimOption {
	return SimOption{simOptLayout, func(ts *TestSim) {
		ts.placements = append(ts.placements, Placement{Kind: KindBrownTank, Pos: Vec2{x, y}})
	}}
}

func WithWall(x, y float64) SimOption {
	return SimOption{simOptLayout, func(ts *TestSim) {
		ts.placements = append(ts.placements, Placement{Kind: KindWall, Pos: Vec2{x, y}})
	}}
}

// WithLevels uses a full level sequence instead of placement options.
func WithLevels(levels ...Level) SimOption {
	return SimOption{simOptLayout, func(ts *TestSim) { ts.levels = levels }}
}

// WithInput feeds each step's input from src.
func WithInput(src InputSource) SimOption {
	return SimOption{simOptInput, func(ts *TestSim) { ts.input = src }}
}

// NewTestSim builds the harness. Placement options become a single level
// named "test"; with neither placements nor WithLevels the default
// campaign is used. Slog output is discarded unless a logger is given.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		SimLog: NewSimLog(false),
		Step:   100 * time.Millisecond,
		tuning: DefaultTuning(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, kind := range []simOptionKind{simOptInfra, simOptLayout, simOptInput} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(ts)
			}
		}
	}
	levels := ts.levels
	if levels == nil && len(ts.placements) > 0 {
		levels = []Level{{Name: "test", Placements: ts.placements}}
	}
	ts.Sim = New(ts.tuning, levels, WithSimLog(ts.SimLog), WithLogger(ts.logger))
	return ts
}

func (ts *TestSim) nextInput() InputState {
	if ts.input == nil {
		return InputState{}
	}
	return ts.input.Input(ts.Sim)
}

// RunSteps advances the simulation n steps.
func (ts *TestSim) RunSteps(n int) {
	for i := 0; i < n; i++ {
		ts.Sim.Step(ts.Step, ts.nextInput())
	}
}

// StepWith advances one step with explicit input, ignoring WithInput.
func (ts *TestSim) StepWith(in InputState) {
	ts.Sim.Step(ts.Step, in)
}

// RunUntil advances the simulation up to maxSteps, stopping early if
// predicate returns true. Returns the tick at which the predicate was
// satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxSteps int) int {
	for i := 0; i < maxSteps; i++ {
		ts.Sim.Step(ts.Step, ts.nextInput())
		if predicate(ts) {
			return ts.Sim.Tick()
		}
	}
	return -1
}

// Fire spawns a bullet through the normal firing contract, outside any
// budget check.
func (ts *TestSim) Fire(owner donburi.Entity, from, target Vec2) (donburi.Entity, bool) {
	return ts.Sim.spawnBullet(owner, from, target)
}

// PlayerEntity returns the player handle, or donburi.Null.
func (ts *TestSim) PlayerEntity() donburi.Entity {
	if p, ok := ts.Sim.store.Player(); ok {
		return p.Entity()
	}
	return donburi.Null
}

// PlayerPos returns the player's position if it exists.
func (ts *TestSim) PlayerPos() (Vec2, bool) {
	p, ok := ts.Sim.store.Player()
	if !ok {
		return Vec2{}, false
	}
	return Transform.Get(p).Position, true
}

// BulletView is a read-only copy of a bullet's state.
type BulletView struct {
	Entity   donburi.Entity
	Owner    donburi.Entity
	Pos      Vec2
	Velocity Vec2
	Ricochet RicochetData
}

// Bullet returns the state of bullet e if it still exists.
func (ts *TestSim) Bullet(e donburi.Entity) (BulletView, bool) {
	if !ts.Sim.store.Alive(e) {
		return BulletView{}, false
	}
	en := ts.Sim.store.world.Entry(e)
	if !en.HasComponent(Bullet) {
		return BulletView{}, false
	}
	return BulletView{
		Entity:   e,
		Owner:    Owner.Get(en).Entity,
		Pos:      Transform.Get(en).Position,
		Velocity: Bullet.Get(en).Velocity,
		Ricochet: *Ricochet.Get(en),
	}, true
}

// Snapshot returns a one-line description of the current state.
func (ts *TestSim) Snapshot() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "T=%03d state=%s level=%s enemies=%d bullets=%d timers=%d",
		ts.Sim.Tick(), ts.Sim.State(), ts.Sim.LevelName(),
		ts.Sim.store.EnemyCount(), ts.Sim.store.BulletCount(), ts.Sim.store.TimerCount())
	if pos, ok := ts.PlayerPos(); ok {
		fmt.Fprintf(&sb, " player=(%.1f,%.1f)", pos.X, pos.Y)
	} else {
		sb.WriteString(" player=none")
	}
	return sb.String()
}
