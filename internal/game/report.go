package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/ricochet-arena/internal/arena"
)

// reportTail is how many trailing ticks of the event log go into a report.
const reportTail = 300

// copyReport is swapped out in tests.
var copyReport = clipboard.WriteAll

// report builds a plain-text session report for pasting into bug reports.
func (g *Game) report() string {
	return buildReport(g.runID, g.sim)
}

func buildReport(runID string, s *arena.Sim) string {
	var sb strings.Builder
	w := func(format string, args ...any) {
		fmt.Fprintf(&sb, format, args...)
	}

	w("=== RICOCHET ARENA REPORT ===\n")
	if runID != "" {
		w("run: %s\n", runID)
	}
	w("tick: %d  state: %s\n", s.Tick(), s.State())
	w("level: %d/%d %s", s.LevelIndex()+1, s.LevelCount(), s.LevelName())
	if s.CampaignComplete() {
		w("  (campaign complete)")
	}
	w("\n")
	st := s.Store()
	w("enemies: %d  bullets: %d\n\n", st.EnemyCount(), st.BulletCount())

	w("--- summary ---\n")
	w("%s\n", arena.Summarize(s.Log().Entries()).Format())

	from := max(0, s.Tick()-reportTail)
	w("--- events (ticks %d-%d) ---\n", from, s.Tick())
	w("%s", s.Log().FormatRange(from, s.Tick()))
	return sb.String()
}
