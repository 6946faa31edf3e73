package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"

	"github.com/Garsondee/ricochet-arena/internal/arena"
	"github.com/Garsondee/ricochet-arena/internal/config"
)

type runStats struct {
	runIndex   int
	runID      string
	fireEvery  int
	steps      int
	finalLevel int
	levels     int
	complete   bool

	firstShotTick     int
	firstRicochetTick int
	firstKillTick     int
	firstDeathTick    int
	firstDecisionTick int

	summary arena.MatchSummary
}

type options struct {
	runs        int
	steps       int
	stepMS      int
	scenario    string
	fireEvery   int
	cadenceStep int
	configPath  string
	logLevel    string
	copy        bool
}

func main() {
	var o options
	flag.IntVar(&o.runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&o.steps, "steps", 3000, "simulation steps per run")
	flag.IntVar(&o.stepMS, "step-ms", 16, "step duration in milliseconds")
	flag.StringVar(&o.scenario, "scenario", "duel", "scenario name (duel, campaign)")
	flag.IntVar(&o.fireEvery, "fire-every", 20, "autopilot steps between shots for run 1")
	flag.IntVar(&o.cadenceStep, "cadence-step", 3, "fire-every increment between runs")
	flag.StringVar(&o.configPath, "config", "", "YAML config file (default $"+config.EnvPath+")")
	flag.StringVar(&o.logLevel, "log-level", "warn", "simulation log level")
	flag.BoolVar(&o.copy, "copy", false, "copy the report to the clipboard")
	flag.Parse()

	if err := run(os.Stdout, o); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer, o options) error {
	if o.runs <= 0 {
		return fmt.Errorf("-runs must be > 0")
	}
	if o.steps <= 0 {
		return fmt.Errorf("-steps must be > 0")
	}
	if o.stepMS <= 0 {
		return fmt.Errorf("-step-ms must be > 0")
	}
	levels, err := scenarioLevels(o.scenario)
	if err != nil {
		return err
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	cfg.Log.Level = o.logLevel
	logger, err := config.NewLogger(os.Stderr, cfg.Log)
	if err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Headless Arena Report ===\n")
	fmt.Fprintf(&sb, "scenario=%s runs=%d steps=%d step_ms=%d fire_every=%d cadence_step=%d\n\n",
		o.scenario, o.runs, o.steps, o.stepMS, o.fireEvery, o.cadenceStep)

	all := make([]runStats, 0, o.runs)
	for i := 0; i < o.runs; i++ {
		fireEvery := max(o.fireEvery+i*o.cadenceStep, 1)
		id := uuid.NewString()
		stats := runScenario(cfg.Arena, levels, runParams{
			index:     i + 1,
			id:        id,
			fireEvery: fireEvery,
			steps:     o.steps,
			step:      time.Duration(o.stepMS) * time.Millisecond,
			logger:    logger.With("run", id),
		})
		all = append(all, stats)
		printRun(&sb, stats)
	}
	printAggregate(&sb, all)

	report := sb.String()
	if _, err := io.WriteString(out, report); err != nil {
		return err
	}
	if o.copy {
		if err := clipboard.WriteAll(report); err != nil {
			return fmt.Errorf("copy report: %w", err)
		}
		fmt.Fprintln(out, "(report copied to clipboard)")
	}
	return nil
}

func scenarioLevels(name string) ([]arena.Level, error) {
	switch name {
	case "duel":
		return []arena.Level{duelLevel()}, nil
	case "campaign":
		return arena.DefaultCampaign(), nil
	default:
		return nil, fmt.Errorf("unsupported scenario %q (supported: duel, campaign)", name)
	}
}

// duelLevel pits the player against one tank across a pair of cover walls.
func duelLevel() arena.Level {
	return arena.Level{
		Name: "Duel",
		Placements: []arena.Placement{
			{Kind: arena.KindPlayer, Pos: arena.Vec2{X: -400}},
			{Kind: arena.KindBrownTank, Pos: arena.Vec2{X: 400}},
			{Kind: arena.KindWall, Pos: arena.Vec2{Y: 128}},
			{Kind: arena.KindWall, Pos: arena.Vec2{Y: -128}},
		},
	}
}

type runParams struct {
	index     int
	id        string
	fireEvery int
	steps     int
	step      time.Duration
	logger    *slog.Logger
}

func runScenario(t arena.Tuning, levels []arena.Level, p runParams) runStats {
	sim := arena.New(t, levels, arena.WithLogger(p.logger), arena.WithSimLog(arena.NewSimLog(false)))
	pilot := arena.NewAutopilot()
	pilot.FireEvery = p.fireEvery
	for i := 0; i < p.steps; i++ {
		sim.Step(p.step, pilot.Input(sim))
	}

	entries := sim.Log().Entries()
	return runStats{
		runIndex:          p.index,
		runID:             p.id,
		fireEvery:         p.fireEvery,
		steps:             p.steps,
		finalLevel:        sim.LevelIndex() + 1,
		levels:            sim.LevelCount(),
		complete:          sim.CampaignComplete(),
		firstShotTick:     firstTick(entries, arena.CatBullet, arena.KeySpawn, "owner=P"),
		firstRicochetTick: firstTick(entries, arena.CatBullet, arena.KeyRicochet, ""),
		firstKillTick:     firstTickActor(entries, arena.CatActor, arena.KeyDestroyed, "E"),
		firstDeathTick:    firstTickActor(entries, arena.CatActor, arena.KeyDestroyed, "P"),
		firstDecisionTick: firstTick(entries, arena.CatState, arena.KeyTransition, "playing ->"),
		summary:           arena.Summarize(entries),
	}
}

func firstTick(entries []arena.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func firstTickActor(entries []arena.SimLogEntry, category, key, actorPrefix string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key && strings.HasPrefix(e.Actor, actorPrefix) {
			return e.Tick
		}
	}
	return -1
}

func printRun(w io.Writer, rs runStats) {
	m := rs.summary
	fmt.Fprintf(w, "--- Run %d (id=%s fire_every=%d) ---\n", rs.runIndex, rs.runID, rs.fireEvery)
	fmt.Fprintf(w, "phase_markers: first_shot=%d first_ricochet=%d first_kill=%d first_death=%d first_decision=%d\n",
		rs.firstShotTick, rs.firstRicochetTick, rs.firstKillTick, rs.firstDeathTick, rs.firstDecisionTick)
	fmt.Fprintf(w, "rounds: total=%d wins=%d losses=%d final_level=%d/%d campaign_complete=%t\n",
		len(m.Rounds), m.Wins(), m.Losses(), rs.finalLevel, rs.levels, rs.complete)
	fmt.Fprintf(w, "shots: player=%d enemy=%d skipped=%d\n", m.PlayerShots, m.EnemyShots, m.SkippedShots)
	fmt.Fprintf(w, "bullets: ricochets=%d clashes=%d expired=%d out_of_bounds=%d\n",
		m.Ricochets, m.BulletClashes, m.ExpiredBullets, m.OutOfBounds)
	fmt.Fprintf(w, "kills: enemies=%d player_deaths=%d accuracy=%.2f\n",
		m.EnemiesDestroyed, m.PlayerDeaths, accuracy(m))
	stalemate, reason := detectStalemate(rs)
	fmt.Fprintf(w, "stalemate=%t reason=%s\n\n", stalemate, reason)
}

// accuracy is enemies destroyed per player shot.
func accuracy(m arena.MatchSummary) float64 {
	if m.PlayerShots == 0 {
		return 0
	}
	return float64(m.EnemiesDestroyed) / float64(m.PlayerShots)
}

// detectStalemate flags runs where shots were traded for a long time
// without any round being decided.
func detectStalemate(rs runStats) (bool, string) {
	m := rs.summary
	if m.Wins()+m.Losses() > 0 {
		return false, "decided"
	}
	if m.PlayerShots+m.EnemyShots == 0 {
		return true, "no_fire"
	}
	if m.ExpiredBullets+m.OutOfBounds+m.BulletClashes >= m.PlayerShots+m.EnemyShots/2 {
		return true, "undecided_all_shots_wasted"
	}
	return true, "undecided"
}

func printAggregate(w io.Writer, all []runStats) {
	if len(all) == 0 {
		return
	}
	fmt.Fprintf(w, "=== Aggregate ===\n")

	var wins, losses, stalemates int
	var shots, ricochets, kills int
	reasons := map[string]int{}
	var killTicks []int
	for _, rs := range all {
		m := rs.summary
		wins += m.Wins()
		losses += m.Losses()
		shots += m.PlayerShots
		ricochets += m.Ricochets
		kills += m.EnemiesDestroyed
		if s, reason := detectStalemate(rs); s {
			stalemates++
			reasons[reason]++
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
	}
	n := float64(len(all))
	fmt.Fprintf(w, "rounds: wins=%d losses=%d win_rate=%.2f\n", wins, losses, ratio(wins, wins+losses))
	fmt.Fprintf(w, "per_run: player_shots=%.1f ricochets=%.1f kills=%.1f\n",
		float64(shots)/n, float64(ricochets)/n, float64(kills)/n)
	fmt.Fprintf(w, "first_kill_tick: median=%d runs_with_kill=%d/%d\n", median(killTicks), len(killTicks), len(all))
	fmt.Fprintf(w, "stalemates=%d reasons=%s\n", stalemates, joinCounts(reasons))
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

func median(xs []int) int {
	if len(xs) == 0 {
		return -1
	}
	s := append([]int(nil), xs...)
	sort.Ints(s)
	return s[len(s)/2]
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%d", k, m[k]))
	}
	return strings.Join(parts, ",")
}
