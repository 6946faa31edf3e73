package arena

import (
	"testing"

	"github.com/yohamta/donburi"
)

// quietTuning stops enemies from firing so tests control every bullet.
func quietTuning() Tuning {
	t := DefaultTuning()
	t.EnemyBulletLimit = 0
	return t
}

func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	t.Logf("\n%s", ts.SimLog.Format())
}

func TestSpawn_ZeroLengthAimSpawnsNothing(t *testing.T) {
	ts := NewTestSim(WithTuning(quietTuning()), WithPlayer(0, 0), WithEnemy(300, 200))
	owner := ts.PlayerEntity()

	if _, ok := ts.Fire(owner, Vec2{0, 0}, Vec2{0, 0}); ok {
		t.Fatal("expected no bullet for zero-length aim")
	}
	if n := ts.Sim.Store().BulletCount(); n != 0 {
		t.Fatalf("bullet count = %d, want 0", n)
	}
	if n := ts.SimLog.CountCategory(CatBullet, KeySpawn); n != 0 {
		t.Fatalf("spawn entries = %d, want 0", n)
	}
	if !ts.SimLog.HasEntry(CatBullet, KeySpawnSkipped, "") {
		t.Fatal("expected a spawn_skipped entry")
	}
}

func TestSpawn_Contract(t *testing.T) {
	ts := NewTestSim(WithTuning(quietTuning()), WithPlayer(0, 0), WithEnemy(300, 200))
	owner := ts.PlayerEntity()

	e, ok := ts.Fire(owner, Vec2{10, 10}, Vec2{10, 110})
	if !ok {
		t.Fatal("expected bullet to spawn")
	}
	b, ok := ts.Bullet(e)
	if !ok {
		t.Fatal("spawned bullet not found")
	}
	if b.Owner != owner {
		t.Fatalf("owner = %v, want %v", b.Owner, owner)
	}
	if !b.Pos.Approx(Vec2{10, 10}) {
		t.Fatalf("pos = %v, want (10,10)", b.Pos)
	}
	if !b.Velocity.Approx(Vec2{0, 150}) {
		t.Fatalf("velocity = %v, want (0,150)", b.Velocity)
	}
	if b.Ricochet.Count != 0 || b.Ricochet.Limit != 1 {
		t.Fatalf("ricochet = %+v, want count 0 limit 1", b.Ricochet)
	}
}

func TestRicochet_FirstContactReflects(t *testing.T) {
	ts := NewTestSim(
		WithTuning(quietTuning()),
		WithPlayer(-500, -300),
		WithEnemy(500, 300),
		WithWall(100, 0),
	)
	e, _ := ts.Fire(ts.PlayerEntity(), Vec2{40, 0}, Vec2{100, 0})

	ts.RunSteps(2) // x=70 overlaps the wall's left face
	b, ok := ts.Bullet(e)
	if !ok {
		dumpLog(t, ts)
		t.Fatal("expected bullet to survive its first ricochet")
	}
	if b.Ricochet.Count != 1 {
		t.Fatalf("ricochet count = %d, want 1", b.Ricochet.Count)
	}
	if !b.Velocity.Approx(Vec2{-150, 0}) {
		t.Fatalf("velocity = %v, want (-150,0)", b.Velocity)
	}
	if n := ts.SimLog.CountCategory(CatBullet, KeyRicochet); n != 1 {
		t.Fatalf("ricochet entries = %d, want 1", n)
	}
}

func TestRicochet_SecondContactDestroys(t *testing.T) {
	ts := NewTestSim(
		WithTuning(quietTuning()),
		WithPlayer(-500, -300),
		WithEnemy(500, 300),
		WithWall(100, 0),
		WithWall(-20, 0),
	)
	e, _ := ts.Fire(ts.PlayerEntity(), Vec2{40, 0}, Vec2{100, 0})

	ts.RunSteps(5)
	b, ok := ts.Bullet(e)
	if !ok {
		dumpLog(t, ts)
		t.Fatal("bullet destroyed too early")
	}
	if b.Velocity.X >= 0 {
		t.Fatalf("expected bullet heading left after first ricochet, vx=%v", b.Velocity.X)
	}

	ts.RunSteps(1) // x=10 enters the second wall's right face
	if _, ok := ts.Bullet(e); ok {
		dumpLog(t, ts)
		t.Fatal("expected bullet destroyed on second wall contact")
	}
	if !ts.SimLog.HasEntry(CatBullet, KeyExpired, "count=1") {
		t.Fatal("expected an expired entry")
	}
	if n := ts.SimLog.CountCategory(CatBullet, KeyRicochet); n != 1 {
		t.Fatalf("ricochet entries = %d, want 1", n)
	}
}

func TestRicochet_CornerCountsOnce(t *testing.T) {
	ts := NewTestSim(
		WithTuning(quietTuning()),
		WithPlayer(-500, -300),
		WithEnemy(500, 300),
		WithWall(100, 70),
		WithWall(70, 100),
	)
	// Diagonal into the inner corner touches both walls on the same step.
	e, _ := ts.Fire(ts.PlayerEntity(), Vec2{40, 40}, Vec2{100, 100})
	ts.RunUntil(func(ts *TestSim) bool {
		return ts.SimLog.CountCategory(CatBullet, KeyRicochet) > 0
	}, 20)

	b, ok := ts.Bullet(e)
	if !ok {
		dumpLog(t, ts)
		t.Fatal("expected bullet to survive the corner")
	}
	if b.Ricochet.Count != 1 {
		t.Fatalf("ricochet count = %d, want 1", b.Ricochet.Count)
	}
	if b.Velocity.X >= 0 || b.Velocity.Y >= 0 {
		t.Fatalf("velocity = %v, want both axes reflected", b.Velocity)
	}
}

func TestGraceWindow_OwnerSurvivesSpawnOverlap(t *testing.T) {
	ts := NewTestSim(WithTuning(quietTuning()), WithPlayer(0, 0), WithEnemy(500, 300))
	owner := ts.PlayerEntity()
	e, _ := ts.Fire(owner, Vec2{0, 0}, Vec2{100, 0})

	ts.RunSteps(1)
	if _, ok := ts.PlayerPos(); !ok {
		t.Fatal("owner destroyed by its own fresh bullet")
	}
	if _, ok := ts.Bullet(e); !ok {
		t.Fatal("bullet destroyed during grace window")
	}
}

func TestGraceWindow_EndsAfterRicochet(t *testing.T) {
	ts := NewTestSim(WithTuning(quietTuning()), WithPlayer(0, 0), WithEnemy(500, 300))
	e, _ := ts.Fire(ts.PlayerEntity(), Vec2{0, 0}, Vec2{100, 0})

	Ricochet.Get(ts.Sim.Store().World().Entry(e)).Count = 1
	ts.RunSteps(1)

	if _, ok := ts.PlayerPos(); ok {
		t.Fatal("expected owner destroyed after grace window")
	}
	if _, ok := ts.Bullet(e); ok {
		t.Fatal("expected bullet destroyed with its owner")
	}
}

func TestGraceWindow_RicochetBackIntoOwner(t *testing.T) {
	ts := NewTestSim(WithTuning(quietTuning()), WithPlayer(0, 0), WithEnemy(500, 300), WithWall(100, 0))
	ts.Fire(ts.PlayerEntity(), Vec2{0, 0}, Vec2{100, 0})

	tick := ts.RunUntil(func(ts *TestSim) bool {
		_, ok := ts.PlayerPos()
		return !ok
	}, 40)
	if tick < 0 {
		dumpLog(t, ts)
		t.Fatal("expected ricocheted bullet to destroy its owner")
	}
	if !ts.SimLog.HasEntry(CatBullet, KeyRicochet, "") {
		t.Fatal("expected a ricochet before the kill")
	}
	if !ts.SimLog.HasEntry(CatActor, KeyDestroyed, "") {
		t.Fatal("expected actor destroyed entry")
	}
}

func TestBullets_MutualDestruction(t *testing.T) {
	ts := NewTestSim(WithTuning(quietTuning()), WithPlayer(0, -300), WithEnemy(0, 300))
	a, _ := ts.Fire(donburi.Null, Vec2{-100, 0}, Vec2{100, 0})
	b, _ := ts.Fire(donburi.Null, Vec2{100, 0}, Vec2{-100, 0})

	ts.RunSteps(6)
	if _, ok := ts.Bullet(a); !ok {
		t.Fatal("bullets collided too early")
	}
	ts.RunSteps(1)
	_, okA := ts.Bullet(a)
	_, okB := ts.Bullet(b)
	if okA || okB {
		dumpLog(t, ts)
		t.Fatalf("expected both bullets destroyed, a=%t b=%t", okA, okB)
	}
	if n := ts.SimLog.CountCategory(CatBullet, KeyBulletHit); n != 2 {
		t.Fatalf("bullet_hit entries = %d, want 2", n)
	}
}

func TestBullets_OutOfBounds(t *testing.T) {
	ts := NewTestSim(WithTuning(quietTuning()), WithArena(100, 100), WithPlayer(0, 0), WithEnemy(-70, 70))
	e, _ := ts.Fire(ts.PlayerEntity(), Vec2{0, 0}, Vec2{1, 0})

	ts.RunSteps(6) // x=90
	if _, ok := ts.Bullet(e); !ok {
		t.Fatal("bullet removed while inside the arena")
	}
	ts.RunSteps(1) // x=105
	if _, ok := ts.Bullet(e); ok {
		t.Fatal("expected bullet removed after leaving the arena")
	}
	if !ts.SimLog.HasEntry(CatBullet, KeyOutOfBounds, "") {
		t.Fatal("expected out_of_bounds entry")
	}
}
