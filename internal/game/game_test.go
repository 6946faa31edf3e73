package game

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/ricochet-arena/internal/arena"
)

func TestWorldScreenRoundTrip(t *testing.T) {
	const hw, hh = 640.0, 360.0
	cases := []arena.Vec2{{X: 0, Y: 0}, {X: -640, Y: 360}, {X: 100, Y: -200}, {X: 639.5, Y: -359.5}}
	for _, p := range cases {
		x, y := worldToScreen(p, hw, hh)
		assert.True(t, screenToWorld(x, y, hw, hh).Approx(p), "round trip %v", p)
	}

	x, y := worldToScreen(arena.Vec2{X: -640, Y: 360}, hw, hh)
	assert.Equal(t, 0.0, x, "top-left corner maps to pixel origin")
	assert.Equal(t, 0.0, y)

	_, y = worldToScreen(arena.Vec2{Y: 100}, hw, hh)
	assert.Less(t, y, hh, "world +Y is screen up")
}

func TestCursorToWorld(t *testing.T) {
	p, ok := cursorToWorld(24+640, 24+360, 24, 24, 640, 360)
	require.True(t, ok)
	assert.True(t, p.Approx(arena.Vec2{}))

	p, ok = cursorToWorld(24+740, 24+160, 24, 24, 640, 360)
	require.True(t, ok)
	assert.True(t, p.Approx(arena.Vec2{X: 100, Y: 200}))

	_, ok = cursorToWorld(10, 10, 24, 24, 640, 360)
	assert.False(t, ok, "border is outside the playfield")
	_, ok = cursorToWorld(24+1300, 100, 24, 24, 640, 360)
	assert.False(t, ok, "event panel is outside the playfield")
}

func TestReadKeys(t *testing.T) {
	held := map[ebiten.Key]bool{ebiten.KeyA: true, ebiten.KeyArrowUp: true}
	in := readKeys(func(k ebiten.Key) bool { return held[k] })
	assert.True(t, in.Left)
	assert.True(t, in.Up)
	assert.False(t, in.Right)
	assert.False(t, in.Down)
	assert.False(t, in.Fire, "fire is edge-triggered elsewhere")
	assert.Equal(t, arena.Vec2{X: -1, Y: 1}, in.Direction())
}

func TestStepSpeed(t *testing.T) {
	assert.Equal(t, 2.0, stepSpeed(1, +1))
	assert.Equal(t, 0.5, stepSpeed(1, -1))
	assert.Equal(t, 4.0, stepSpeed(4, +1), "clamped at fastest")
	assert.Equal(t, 0.25, stepSpeed(0.25, -1), "clamped at slowest")
	assert.Equal(t, 1.0, stepSpeed(0, +1), "resume from pause")
	assert.Equal(t, 0.25, stepSpeed(0, -1))
}

func TestEffects_ObserveAndExpire(t *testing.T) {
	var fx Effects
	fx.Observe([]arena.SimLogEntry{
		{Category: arena.CatBullet, Key: arena.KeySpawn},
		{Category: arena.CatBullet, Key: arena.KeyRicochet},
		{Category: arena.CatActor, Key: arena.KeyDestroyed},
		{Category: arena.CatState, Key: arena.KeyTransition},
		{Category: arena.CatBullet, Key: arena.KeyOutOfBounds},
	})
	require.Equal(t, 3, fx.Len(), "only spawn, ricochet and destroy produce flashes")

	for i := 0; i < flashLifetime; i++ {
		fx.Update()
	}
	assert.Equal(t, 2, fx.Len(), "muzzle flash gone first")

	for i := flashLifetime; i < impactLifetime; i++ {
		fx.Update()
	}
	assert.Equal(t, 0, fx.Len())

	fx.Observe([]arena.SimLogEntry{{Category: arena.CatBullet, Key: arena.KeyBulletHit}})
	fx.Clear()
	assert.Equal(t, 0, fx.Len())
}

func TestEventPanel_RingBuffer(t *testing.T) {
	ep := NewEventPanel()
	for i := 0; i < logMaxEntries+5; i++ {
		ep.Add(i, "P", arena.CatBullet, fmt.Sprintf("msg %d", i))
	}
	recent := ep.Recent()
	require.Len(t, recent, logMaxEntries)
	assert.Equal(t, 5, recent[0].Tick, "oldest entries dropped")
	assert.Equal(t, logMaxEntries+4, recent[len(recent)-1].Tick)
}

func TestEventPanel_ObserveSkipsNoise(t *testing.T) {
	ep := NewEventPanel()
	ep.Observe([]arena.SimLogEntry{
		{Tick: 1, Actor: "B1", Category: arena.CatBullet, Key: arena.KeySpawn, Value: "owner=P"},
		{Tick: 1, Actor: "P", Category: arena.CatMove, Key: arena.KeyBlocked},
		{Tick: 2, Actor: "B1", Category: arena.CatBullet, Key: arena.KeyRicochet, Value: "count=1"},
	})
	recent := ep.Recent()
	require.Len(t, recent, 1)
	assert.Equal(t, "B1", recent[0].Label)
	assert.Equal(t, "ricochet count=1", recent[0].Message)
}

func TestBuildReport(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := arena.New(arena.DefaultTuning(), nil, arena.WithLogger(logger))
	for i := 0; i < 20; i++ {
		s.Step(100*time.Millisecond, arena.InputState{})
	}

	r := buildReport("run-1", s)
	assert.Contains(t, r, "run: run-1")
	assert.Contains(t, r, "level: 1/")
	assert.Contains(t, r, "--- summary ---")
	assert.Contains(t, r, "rounds=")
	assert.Contains(t, r, "spawn", "event tail included")
}

func TestCopyReportIsSwappable(t *testing.T) {
	var got string
	orig := copyReport
	copyReport = func(s string) error { got = s; return nil }
	t.Cleanup(func() { copyReport = orig })

	s := arena.New(arena.DefaultTuning(), nil, arena.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, copyReport(buildReport("", s)))
	assert.Contains(t, got, "RICOCHET ARENA REPORT")
	assert.NotContains(t, got, "run:")
}
