// Package term plays the arena in a terminal using tcell.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/ricochet-arena/internal/arena"
)

const (
	// FrameDuration is the redraw and step interval.
	FrameDuration = 33 * time.Millisecond

	// keyHold is how long a key counts as held after its last press event.
	// Terminals report no key releases, only auto-repeat.
	keyHold = 150 * time.Millisecond

	maxStep = 100 * time.Millisecond
)

// Runner drives a simulation from terminal events and renders it as text.
type Runner struct {
	screen tcell.Screen
	sim    *arena.Sim
	logger *slog.Logger
	pilot  arena.InputSource

	grid    Grid
	keys    map[rune]time.Time
	fire    bool
	mouseOK bool
	mouse   arena.Vec2
	button  bool

	lastFrame time.Time
}

// New wraps screen and sim. pilot may be nil for human control.
func New(screen tcell.Screen, sim *arena.Sim, logger *slog.Logger, pilot arena.InputSource) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		screen: screen,
		sim:    sim,
		logger: logger,
		pilot:  pilot,
		keys:   make(map[rune]time.Time),
	}
	r.resize()
	return r
}

// resize recomputes the grid, reserving the bottom row for status.
func (r *Runner) resize() {
	w, h := r.screen.Size()
	t := r.sim.Tuning()
	r.grid = Grid{Cols: w, Rows: max(h-1, 1), HalfW: t.ArenaHalfWidth, HalfH: t.ArenaHalfHeight}
}

// Run loops until ctx is done or the player quits.
func (r *Runner) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				// Screen finalized.
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(FrameDuration)
	defer ticker.Stop()
	r.lastFrame = time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if r.handle(ev, time.Now()) {
				r.logger.Info("quit requested", "tick", r.sim.Tick())
				return nil
			}
		case now := <-ticker.C:
			dt := min(now.Sub(r.lastFrame), maxStep)
			r.lastFrame = now
			r.frame(dt, now)
		}
	}
}

// handle records one terminal event. It returns true on quit.
func (r *Runner) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			r.keys['w'] = now
		case tcell.KeyDown:
			r.keys['s'] = now
		case tcell.KeyLeft:
			r.keys['a'] = now
		case tcell.KeyRight:
			r.keys['d'] = now
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return true
			case ' ':
				r.fire = true
			case 'w', 'a', 's', 'd', 'W', 'A', 'S', 'D':
				r.keys[ev.Rune()|0x20] = now
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		down := ev.Buttons()&tcell.Button1 != 0
		if c, ok := r.pointerAt(x, y); ok {
			r.mouse, r.mouseOK = c, true
		}
		if down && !r.button {
			r.fire = true
		}
		r.button = down
	case *tcell.EventResize:
		r.screen.Sync()
		r.resize()
	}
	return false
}

func (r *Runner) pointerAt(x, y int) (arena.Vec2, bool) {
	if x < 0 || y < 0 || x >= r.grid.Cols || y >= r.grid.Rows {
		return arena.Vec2{}, false
	}
	return r.grid.World(x, y), true
}

func (r *Runner) held(k rune, now time.Time) bool {
	t, ok := r.keys[k]
	return ok && now.Sub(t) <= keyHold
}

// input assembles the step input and consumes the pending fire press.
func (r *Runner) input(now time.Time) arena.InputState {
	if r.pilot != nil {
		r.fire = false
		return r.pilot.Input(r.sim)
	}
	in := arena.InputState{
		Left:      r.held('a', now),
		Right:     r.held('d', now),
		Up:        r.held('w', now),
		Down:      r.held('s', now),
		Fire:      r.fire,
		Pointer:   r.mouse,
		PointerOK: r.mouseOK,
	}
	r.fire = false
	return in
}

// frame advances the simulation by dt and redraws.
func (r *Runner) frame(dt time.Duration, now time.Time) {
	r.sim.Step(dt, r.input(now))
	r.render()
}

func (r *Runner) render() {
	r.screen.Clear()
	p := &cellPresenter{screen: r.screen, grid: r.grid}
	r.sim.Present(p)
	if p.banner.Visible {
		p.drawBanner(p.banner.Text)
	}
	r.drawStatus()
	r.screen.Show()
}

func (r *Runner) drawStatus() {
	st := r.sim.Store()
	line := fmt.Sprintf(" L%d/%d %s | %s | enemies %d bullets %d | wasd move, click/space fire, q quit",
		r.sim.LevelIndex()+1, r.sim.LevelCount(), r.sim.LevelName(),
		r.sim.State(), st.EnemyCount(), st.BulletCount())
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)
	drawText(r.screen, 0, r.grid.Rows, line, style, r.grid.Cols)
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style, limit int) {
	i := 0
	for _, ch := range text {
		if x+i >= limit {
			return
		}
		s.SetContent(x+i, y, ch, nil, style)
		i++
	}
}
