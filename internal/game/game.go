package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/ricochet-arena/internal/arena"
	"github.com/Garsondee/ricochet-arena/internal/config"
)

const (
	// borderWidth is the frame drawn around the playfield.
	borderWidth = 24

	// maxFrameStep caps the wall-clock delta fed to the simulation so a
	// stalled frame cannot tunnel bullets through walls.
	maxFrameStep = 100 * time.Millisecond

	gridSpacing = 64
)

var speeds = []float64{0.25, 0.5, 1, 2, 4}

// Option configures a Game.
type Option func(*Game)

// WithAutopilot lets the built-in autopilot drive the player.
func WithAutopilot(on bool) Option {
	return func(g *Game) {
		if on {
			g.pilot = arena.NewAutopilot()
		}
	}
}

// WithRunID tags the copied report with a run identifier.
func WithRunID(id string) Option {
	return func(g *Game) { g.runID = id }
}

// WithLevels replaces the default campaign.
func WithLevels(levels []arena.Level) Option {
	return func(g *Game) { g.levels = levels }
}

// Game implements ebiten.Game around an arena simulation.
type Game struct {
	cfg    config.Config
	logger *slog.Logger
	sim    *arena.Sim
	levels []arena.Level
	pilot  arena.InputSource
	runID  string

	width, height         int
	gameWidth, gameHeight int
	offX, offY            int
	halfW, halfH          float64

	events    *EventPanel
	effects   Effects
	presenter screenPresenter
	seenSeq   int
	lastLevel int

	// Offscreen buffer for HUD text, rendered at 1x then blitted at hudScale.
	hudBuf     *ebiten.Image
	inspBuf    *ebiten.Image
	inspector  Inspector
	hudScale   int
	bannerFace text.Face

	showHUD    bool
	simSpeed   float64 // 0 = paused
	lastUpdate time.Time
	fpsText    string

	status      string
	statusUntil time.Time
}

// New creates a game from cfg. logger may be nil.
func New(cfg config.Config, logger *slog.Logger, opts ...Option) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Game{
		cfg:      cfg,
		logger:   logger,
		showHUD:  true,
		simSpeed: 1,
		hudScale: max(cfg.Window.Scale, 1),
	}
	for _, o := range opts {
		o(g)
	}

	g.halfW = cfg.Arena.ArenaHalfWidth
	g.halfH = cfg.Arena.ArenaHalfHeight
	g.gameWidth = int(math.Ceil(2 * g.halfW))
	g.gameHeight = int(math.Ceil(2 * g.halfH))
	g.offX, g.offY = borderWidth, borderWidth
	g.width = g.gameWidth + 2*borderWidth + logPanelWidth
	g.height = g.gameHeight + 2*borderWidth

	g.sim = arena.New(cfg.Arena, g.levels,
		arena.WithLogger(logger),
		arena.WithSimLog(arena.NewBoundedSimLog(4096)),
	)
	g.events = NewEventPanel()
	g.events.Observe(g.sim.Log().Entries())
	g.seenSeq = g.sim.Log().NextSeq()
	g.lastLevel = g.sim.LevelIndex()

	g.hudBuf = ebiten.NewImage(g.width/g.hudScale, g.height/g.hudScale)
	g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	g.bannerFace = text.NewGoXFace(basicfont.Face7x13)

	logger.Info("game ready",
		"level", g.sim.LevelName(),
		"levels", g.sim.LevelCount(),
		"autopilot", g.pilot != nil,
	)
	return g
}

// Sim exposes the running simulation.
func (g *Game) Sim() *arena.Sim { return g.sim }

// Size is the logical screen size.
func (g *Game) Size() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	now := time.Now()
	if g.lastUpdate.IsZero() {
		g.lastUpdate = now
	}
	elapsed := now.Sub(g.lastUpdate)
	g.lastUpdate = now

	if quit := g.handleInput(); quit {
		return ebiten.Termination
	}
	g.effects.Update()

	if g.simSpeed <= 0 {
		return nil
	}
	dt := time.Duration(float64(elapsed) * g.simSpeed)
	if dt > maxFrameStep {
		dt = maxFrameStep
	}
	g.sim.Step(dt, g.frameInput())
	g.observe()
	return nil
}

// observe feeds events logged since the last frame to the panel and effects.
func (g *Game) observe() {
	fresh := g.sim.Log().Since(g.seenSeq)
	g.seenSeq = g.sim.Log().NextSeq()
	if g.sim.LevelIndex() != g.lastLevel || hasSetup(fresh) {
		g.effects.Clear()
		g.lastLevel = g.sim.LevelIndex()
	}
	g.effects.Observe(fresh)
	g.events.Observe(fresh)
}

func hasSetup(entries []arena.SimLogEntry) bool {
	for _, e := range entries {
		if e.Category == arena.CatLevel && e.Key == arena.KeySetup {
			return true
		}
	}
	return false
}

// frameInput builds this frame's input from the keyboard and mouse, or from
// the autopilot when one is set.
func (g *Game) frameInput() arena.InputState {
	if g.pilot != nil {
		return g.pilot.Input(g.sim)
	}
	in := readKeys(ebiten.IsKeyPressed)
	cx, cy := ebiten.CursorPosition()
	in.Pointer, in.PointerOK = cursorToWorld(cx, cy, g.offX, g.offY, g.halfW, g.halfH)
	in.Fire = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace)
	return in
}

// readKeys maps held movement keys (WASD or arrows) to an input state.
func readKeys(pressed func(ebiten.Key) bool) arena.InputState {
	return arena.InputState{
		Left:  pressed(ebiten.KeyA) || pressed(ebiten.KeyArrowLeft),
		Right: pressed(ebiten.KeyD) || pressed(ebiten.KeyArrowRight),
		Up:    pressed(ebiten.KeyW) || pressed(ebiten.KeyArrowUp),
		Down:  pressed(ebiten.KeyS) || pressed(ebiten.KeyArrowDown),
	}
}

// handleInput processes frontend keys. It reports true when the player asked
// to quit.
func (g *Game) handleInput() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		g.simSpeed = stepSpeed(g.simSpeed, -1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		g.simSpeed = stepSpeed(g.simSpeed, +1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if g.pilot == nil {
			g.pilot = arena.NewAutopilot()
		} else {
			g.pilot = nil
		}
		g.flash(fmt.Sprintf("autopilot %s", onOff(g.pilot != nil)))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.handleInspectorClick(ebiten.CursorPosition())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := copyReport(g.report()); err != nil {
			g.logger.Warn("copy report", "err", err)
			g.flash("copy failed")
		} else {
			g.flash("report copied")
		}
	}
	return false
}

// stepSpeed moves one notch through speeds. A paused game resumes at the
// slowest (dir < 0) or normal speed.
func stepSpeed(cur float64, dir int) float64 {
	if cur <= 0 {
		if dir < 0 {
			return speeds[0]
		}
		return 1
	}
	idx := 0
	for i, s := range speeds {
		if s <= cur {
			idx = i
		}
	}
	idx += dir
	idx = max(0, min(idx, len(speeds)-1))
	return speeds[idx]
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (g *Game) flash(msg string) {
	g.status = msg
	g.statusUntil = time.Now().Add(2 * time.Second)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 16, G: 18, B: 16, A: 255})

	ox, oy := float32(g.offX), float32(g.offY)
	vector.FillRect(screen, ox, oy, float32(g.gameWidth), float32(g.gameHeight), color.RGBA{R: 32, G: 38, B: 30, A: 255}, false)
	drawGrid(screen, g.offX, g.offY, g.gameWidth, g.gameHeight, gridSpacing)

	g.presenter.begin(screen, g.offX, g.offY, g.halfW, g.halfH)
	g.sim.Present(&g.presenter)
	g.effects.Draw(screen, g.offX, g.offY, g.halfW, g.halfH)

	if g.pilot == nil && g.sim.State() == arena.StatePlaying {
		cx, cy := worldToScreen(g.sim.Cursor(), g.halfW, g.halfH)
		drawCrosshair(screen, ox+float32(cx), oy+float32(cy))
	}

	drawVignette(screen, g.offX, g.offY, g.gameWidth, g.gameHeight)
	g.drawInspector(screen)
	vector.StrokeRect(screen, ox, oy, float32(g.gameWidth), float32(g.gameHeight), 2, color.RGBA{R: 80, G: 100, B: 80, A: 255}, false)

	if g.presenter.banner.Visible {
		g.drawBanner(screen, g.presenter.banner.Text)
	}

	g.events.Draw(screen, g.width-logPanelWidth, g.height)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) drawBanner(screen *ebiten.Image, msg string) {
	const scale = 4.0
	w, h := text.Measure(msg, g.bannerFace, 0)
	x := float64(g.offX) + float64(g.gameWidth)/2 - w*scale/2
	y := float64(g.offY) + float64(g.gameHeight)/2 - h*scale/2

	vector.FillRect(screen, float32(x-16), float32(y-12), float32(w*scale+32), float32(h*scale+24), color.RGBA{R: 0, G: 0, B: 0, A: 170}, false)

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.RGBA{R: 250, G: 230, B: 120, A: 255})
	text.Draw(screen, msg, g.bannerFace, op)
}

// drawHUD renders the status panel in the top-left corner of the playfield.
// Text is drawn into hudBuf at 1x then composited onto the screen at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	g.hudBuf.Clear()

	speedStr := "1x"
	switch {
	case g.simSpeed == 0:
		speedStr = "PAUSED"
	case g.simSpeed != 1:
		speedStr = fmt.Sprintf("%gx", g.simSpeed)
	}
	if g.cfg.Window.ShowFPS && g.sim.Tick()%15 == 0 {
		g.fpsText = fmt.Sprintf("FPS %.0f", ebiten.ActualFPS())
	}

	st := g.sim.Store()
	lines := []string{
		fmt.Sprintf("Level %d/%d %s", g.sim.LevelIndex()+1, g.sim.LevelCount(), g.sim.LevelName()),
		fmt.Sprintf("State %s  Speed %s", g.sim.State(), speedStr),
		fmt.Sprintf("Enemies %d  Bullets %d", st.EnemyCount(), st.BulletCount()),
	}
	if g.cfg.Window.ShowFPS && g.fpsText != "" {
		lines = append(lines, g.fpsText)
	}
	if g.pilot != nil {
		lines = append(lines, "AUTOPILOT")
	}
	if g.status != "" && time.Now().Before(g.statusUntil) {
		lines = append(lines, g.status)
	}
	lines = append(lines, "WASD move  click fire", "P pause  ,/. speed", "Tab auto  C copy  H hud", "Right-click inspect")

	const lineH = 12
	const charW = 6
	const padX, padY = 5, 4
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	panelW := float32(maxLen*charW + padX*2)
	panelH := float32(len(lines)*lineH + padY*2)

	vector.FillRect(g.hudBuf, 2, 2, panelW, panelH, color.RGBA{R: 8, G: 10, B: 8, A: 200}, false)
	vector.StrokeRect(g.hudBuf, 2, 2, panelW, panelH, 1, color.RGBA{R: 60, G: 80, B: 60, A: 255}, false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, l, 2+padX, 2+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(g.hudScale), float64(g.hudScale))
	opts.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.hudBuf, opts)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
