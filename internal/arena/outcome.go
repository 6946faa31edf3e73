package arena

import (
	"fmt"
	"strings"
)

type RoundOutcome int

const (
	OutcomeUndecided RoundOutcome = iota
	OutcomeWin
	OutcomeLose
)

func (o RoundOutcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	case OutcomeUndecided:
		return "undecided"
	default:
		return "unknown"
	}
}

// RoundResult is one attempt at a level.
type RoundResult struct {
	Level     string
	Outcome   RoundOutcome
	StartTick int
	EndTick   int // tick the round was decided, or -1
}

// MatchSummary aggregates a run from its event log.
type MatchSummary struct {
	Rounds []RoundResult

	PlayerShots      int
	EnemyShots       int
	SkippedShots     int
	Ricochets        int
	BulletClashes    int
	ExpiredBullets   int
	OutOfBounds      int
	EnemiesDestroyed int
	PlayerDeaths     int
}

func (m MatchSummary) Wins() int   { return m.count(OutcomeWin) }
func (m MatchSummary) Losses() int { return m.count(OutcomeLose) }

func (m MatchSummary) count(o RoundOutcome) int {
	n := 0
	for _, r := range m.Rounds {
		if r.Outcome == o {
			n++
		}
	}
	return n
}

// Summarize folds event log entries into a MatchSummary. Rounds start at a
// level setup entry and are decided by the next transition out of playing.
func Summarize(entries []SimLogEntry) MatchSummary {
	var m MatchSummary
	current := -1
	for _, e := range entries {
		switch {
		case e.Category == CatLevel && e.Key == KeySetup:
			m.Rounds = append(m.Rounds, RoundResult{Level: e.Value, StartTick: e.Tick, EndTick: -1})
			current = len(m.Rounds) - 1
		case e.Category == CatState && e.Key == KeyTransition:
			if current < 0 || m.Rounds[current].Outcome != OutcomeUndecided {
				continue
			}
			switch GameState(e.NumVal) {
			case StateWin:
				m.Rounds[current].Outcome = OutcomeWin
			case StateLose:
				m.Rounds[current].Outcome = OutcomeLose
			default:
				continue
			}
			m.Rounds[current].EndTick = e.Tick
		case e.Category == CatBullet:
			switch e.Key {
			case KeySpawn:
				if e.Value == "owner=P" {
					m.PlayerShots++
				} else {
					m.EnemyShots++
				}
			case KeySpawnSkipped:
				m.SkippedShots++
			case KeyRicochet:
				m.Ricochets++
			case KeyBulletHit:
				m.BulletClashes++
			case KeyExpired:
				m.ExpiredBullets++
			case KeyOutOfBounds:
				m.OutOfBounds++
			}
		case e.Category == CatActor && e.Key == KeyDestroyed:
			if e.Actor == "P" {
				m.PlayerDeaths++
			} else {
				m.EnemiesDestroyed++
			}
		}
	}
	return m
}

// Format renders the summary as a short multi-line report.
func (m MatchSummary) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "rounds=%d wins=%d losses=%d\n", len(m.Rounds), m.Wins(), m.Losses())
	fmt.Fprintf(&sb, "shots: player=%d enemy=%d skipped=%d\n", m.PlayerShots, m.EnemyShots, m.SkippedShots)
	fmt.Fprintf(&sb, "bullets: ricochets=%d clashes=%d expired=%d out=%d\n",
		m.Ricochets, m.BulletClashes, m.ExpiredBullets, m.OutOfBounds)
	fmt.Fprintf(&sb, "kills: enemies=%d player_deaths=%d\n", m.EnemiesDestroyed, m.PlayerDeaths)
	for i, r := range m.Rounds {
		end := "-"
		if r.EndTick >= 0 {
			end = fmt.Sprintf("T=%d", r.EndTick)
		}
		fmt.Fprintf(&sb, "  round %d  %-10s %-9s start=T=%d end=%s\n", i+1, r.Level, r.Outcome, r.StartTick, end)
	}
	return sb.String()
}
