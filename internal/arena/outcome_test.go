package arena

import (
	"strings"
	"testing"
)

func TestSummarize_DuelRound(t *testing.T) {
	ts := NewTestSim(WithPlayer(0, 0), WithEnemy(100, 0))
	ts.RunUntil(func(ts *TestSim) bool {
		return ts.SimLog.CountCategory(CatLevel, KeySetup) == 2
	}, 200)

	m := Summarize(ts.SimLog.Entries())
	if len(m.Rounds) != 2 {
		t.Fatalf("rounds = %d, want 2\n%s", len(m.Rounds), m.Format())
	}
	if m.Rounds[0].Outcome != OutcomeLose || m.Rounds[1].Outcome != OutcomeUndecided {
		t.Fatalf("outcomes = %s,%s want lose,undecided", m.Rounds[0].Outcome, m.Rounds[1].Outcome)
	}
	if m.Losses() != 1 || m.Wins() != 0 {
		t.Fatalf("wins=%d losses=%d, want 0,1", m.Wins(), m.Losses())
	}
	if m.PlayerDeaths != 1 {
		t.Fatalf("player deaths = %d, want 1", m.PlayerDeaths)
	}
	if m.EnemyShots < 1 || m.PlayerShots != 0 {
		t.Fatalf("shots player=%d enemy=%d", m.PlayerShots, m.EnemyShots)
	}
	if !strings.Contains(m.Format(), "losses=1") {
		t.Fatalf("format missing losses:\n%s", m.Format())
	}
}

func TestSimLog_BoundedKeepsNewest(t *testing.T) {
	sl := NewBoundedSimLog(3)
	for i := 0; i < 5; i++ {
		sl.Add(i, "--", CatBullet, KeySpawn, "", float64(i), Vec2{})
	}
	if n := len(sl.Entries()); n != 3 {
		t.Fatalf("entries = %d, want 3", n)
	}
	if first := sl.Entries()[0]; first.Seq != 2 {
		t.Fatalf("oldest seq = %d, want 2", first.Seq)
	}
	if got := sl.Since(4); len(got) != 1 || got[0].Tick != 4 {
		t.Fatalf("Since(4) = %v", got)
	}
	if got := sl.Since(sl.NextSeq()); len(got) != 0 {
		t.Fatalf("Since(next) = %v, want empty", got)
	}
}
