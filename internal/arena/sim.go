package arena

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/yohamta/donburi"
)

const (
	BannerMissionComplete  = "Mission complete!"
	BannerCampaignComplete = "Campaign complete!"
)

// Banner is the win indicator handed to the presenter.
type Banner struct {
	Text    string
	Visible bool
}

// Presenter draws one frame of the simulation.
type Presenter interface {
	DrawEntity(pos, half Vec2, sprite SpriteKey)
	SetBanner(text string, visible bool)
}

// Sim is the whole game: entity store, round state machine, and the
// process-wide values (cursor, current level) threaded through each step.
type Sim struct {
	store   *Store
	machine *Machine[*Sim]
	tuning  Tuning
	levels  []Level
	logger  *slog.Logger
	log     *SimLog

	level            int
	campaignComplete bool
	cursor           Vec2
	banner           Banner

	tick    int
	input   InputState
	stepDur time.Duration
	dt      float64 // stepDur in seconds
	labels  map[donburi.Entity]string
	serial  int
}

// Option configures a Sim at construction.
type Option func(*Sim)

// WithLogger sets the structured logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Sim) { s.logger = l }
}

// WithSimLog sets the event log. The default is an unbounded, non-verbose log.
func WithSimLog(l *SimLog) Option {
	return func(s *Sim) { s.log = l }
}

// WithStartLevel starts the campaign at index i.
func WithStartLevel(i int) Option {
	return func(s *Sim) { s.level = i }
}

// New builds a simulation and sets up the first level. An empty levels
// slice means DefaultCampaign.
func New(t Tuning, levels []Level, opts ...Option) *Sim {
	if len(levels) == 0 {
		levels = DefaultCampaign()
	}
	s := &Sim{
		store:  NewStore(t),
		tuning: t,
		levels: levels,
		labels: make(map[donburi.Entity]string),
	}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.log == nil {
		s.log = NewSimLog(false)
	}
	if s.level < 0 || s.level >= len(levels) {
		s.level = 0
	}
	s.store.SpawnCamera()
	s.machine = newRoundMachine()
	s.machine.Enter(s)
	return s
}

func newRoundMachine() *Machine[*Sim] {
	playing := &Node[*Sim]{
		State:   StatePlaying,
		OnEnter: []Action[*Sim]{(*Sim).setupLevel},
		OnUpdate: []Action[*Sim]{
			(*Sim).movePlayer,
			(*Sim).advanceBullets,
			(*Sim).cleanupBullets,
			(*Sim).resolveBulletCollisions,
			(*Sim).firePlayer,
			(*Sim).fireEnemies,
		},
		// Win is checked first so clearing the arena beats a simultaneous death.
		Transitions: []Transition[*Sim]{
			{Target: StateWin, Guard: (*Sim).enemiesCleared},
			{Target: StateLose, Guard: (*Sim).playerGone},
		},
	}
	win := &Node[*Sim]{
		State:       StateWin,
		OnEnter:     []Action[*Sim]{(*Sim).startTimer, (*Sim).showBanner},
		OnUpdate:    []Action[*Sim]{(*Sim).tickTimer},
		OnExit:      []Action[*Sim]{(*Sim).hideBanner, (*Sim).stopTimer, (*Sim).teardown, (*Sim).advanceLevel},
		Transitions: []Transition[*Sim]{{Target: StatePlaying, Guard: (*Sim).timerExpired}},
	}
	lose := &Node[*Sim]{
		State:       StateLose,
		OnEnter:     []Action[*Sim]{(*Sim).startTimer},
		OnUpdate:    []Action[*Sim]{(*Sim).tickTimer},
		OnExit:      []Action[*Sim]{(*Sim).stopTimer, (*Sim).teardown},
		Transitions: []Transition[*Sim]{{Target: StatePlaying, Guard: (*Sim).timerExpired}},
	}
	return NewMachine(StatePlaying, playing, win, lose)
}

// Step advances the simulation by dt using in as this step's input.
// Removals requested by systems are committed once all of them have run,
// and a transition chosen this step is applied after that.
func (s *Sim) Step(dt time.Duration, in InputState) {
	s.tick++
	s.input = in
	s.stepDur = dt
	s.dt = dt.Seconds()
	if in.PointerOK {
		s.cursor = in.Pointer
	}

	s.machine.Update(s, dt)
	s.commit()

	if from, to, ok := s.machine.Apply(s); ok {
		s.log.Add(s.tick, "--", CatState, KeyTransition, from.String()+" -> "+to.String(), float64(to), Vec2{})
		s.logger.Info("round state changed",
			"from", from.String(), "to", to.String(),
			"level", s.LevelName(), "tick", s.tick)
		s.commit()
	}
}

func (s *Sim) commit() {
	if s.store.Commit() == 0 {
		return
	}
	for e := range s.labels {
		if !s.store.Alive(e) {
			delete(s.labels, e)
		}
	}
}

// Present hands every visible entity and the banner to p.
func (s *Sim) Present(p Presenter) {
	s.store.drawables.Each(s.store.world, func(e *donburi.Entry) {
		p.DrawEntity(Transform.Get(e).Position, Hitbox.Get(e).Half, Sprite.Get(e).Key)
	})
	p.SetBanner(s.banner.Text, s.banner.Visible)
}

// RequestState asks the round machine for a transition, applied at the end
// of the next Step. It returns false when the request was a no-op.
func (s *Sim) RequestState(st GameState) bool { return s.machine.Request(st) }

func (s *Sim) State() GameState { return s.machine.State() }
func (s *Sim) Tick() int { return s.tick }
func (s *Sim) Cursor() Vec2 { return s.cursor }
func (s *Sim) Banner() Banner { return s.banner }
func (s *Sim) Log() *SimLog { return s.log }
func (s *Sim) Store() *Store { return s.store }
func (s *Sim) Tuning() Tuning { return s.tuning }
func (s *Sim) LevelIndex() int { return s.level }
func (s *Sim) LevelCount() int { return len(s.levels) }
func (s *Sim) LevelName() string { return s.levels[s.level].Name }
func (s *Sim) CampaignComplete() bool { return s.campaignComplete }

// Label returns the short log label of an entity, or "--".
func (s *Sim) Label(e donburi.Entity) string {
	if l, ok := s.labels[e]; ok {
		return l
	}
	return "--"
}

func (s *Sim) assignLabel(e donburi.Entity, prefix string) string {
	s.serial++
	l := fmt.Sprintf("%s%d", prefix, s.serial)
	s.labels[e] = l
	return l
}

// --- state actions ---

func (s *Sim) setupLevel() {
	lvl := s.levels[s.level]
	for _, p := range lvl.Placements {
		switch p.Kind {
		case KindPlayer:
			s.labels[s.store.SpawnPlayer(p.Pos)] = "P"
		case KindWall:
			s.assignLabel(s.store.SpawnWall(p.Pos), "W")
		case KindBrownTank:
			s.assignLabel(s.store.SpawnBrownTank(p.Pos), "E")
		}
	}
	s.log.Add(s.tick, "--", CatLevel, KeySetup, lvl.Name, float64(s.level), Vec2{})
	s.logger.Debug("level setup",
		"level", lvl.Name, "index", s.level,
		"enemies", lvl.Count(KindBrownTank), "walls", lvl.Count(KindWall))
}

func (s *Sim) teardown() { s.store.Teardown() }

func (s *Sim) startTimer() {
	if n := s.store.TimerCount(); n > 0 {
		assertf(false, "starting timer while %d exist", n)
		return
	}
	s.store.SpawnTimer(s.tuning.TerminalDuration)
}

func (s *Sim) tickTimer() {
	if t, ok := s.store.Timer(); ok {
		GameTimer.Get(t).Elapsed += s.stepDur
	}
}

func (s *Sim) stopTimer() {
	if t, ok := s.store.Timer(); ok {
		s.store.Despawn(t.Entity())
	}
}

func (s *Sim) showBanner() {
	text := BannerMissionComplete
	if s.level == len(s.levels)-1 {
		text = BannerCampaignComplete
		s.campaignComplete = true
	}
	s.banner = Banner{Text: text, Visible: true}
}

func (s *Sim) hideBanner() { s.banner = Banner{} }

// advanceLevel moves to the next level. After the last one the campaign
// holds there and the last level is replayed.
func (s *Sim) advanceLevel() {
	if s.level+1 < len(s.levels) {
		s.level++
	}
}

// --- guards ---

func (s *Sim) enemiesCleared() bool { return s.store.EnemyCount() == 0 }

func (s *Sim) playerGone() bool {
	_, ok := s.store.Player()
	return !ok
}

func (s *Sim) timerExpired() bool {
	t, ok := s.store.Timer()
	return ok && GameTimer.Get(t).Expired()
}
