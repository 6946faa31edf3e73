package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/ricochet-arena/internal/arena"
)

const (
	flashLifetime  = 8  // frames a muzzle flash stays visible
	impactLifetime = 14 // frames an impact burst stays visible
)

type flashKind int

const (
	flashMuzzle flashKind = iota
	flashRicochet
	flashImpact
	flashExplosion
)

// Flash is a short-lived visual burst at a world position.
type Flash struct {
	pos  arena.Vec2
	kind flashKind
	age  int
}

func (f *Flash) lifetime() int {
	if f.kind == flashMuzzle {
		return flashLifetime
	}
	return impactLifetime
}

// Effects turns simulation events into flashes and ages them per frame.
type Effects struct {
	flashes []*Flash
}

// Observe spawns flashes for the given event log entries.
func (fx *Effects) Observe(entries []arena.SimLogEntry) {
	for _, e := range entries {
		var kind flashKind
		switch {
		case e.Category == arena.CatBullet && e.Key == arena.KeySpawn:
			kind = flashMuzzle
		case e.Category == arena.CatBullet && e.Key == arena.KeyRicochet:
			kind = flashRicochet
		case e.Category == arena.CatBullet && (e.Key == arena.KeyBulletHit || e.Key == arena.KeyExpired):
			kind = flashImpact
		case e.Category == arena.CatActor && e.Key == arena.KeyDestroyed:
			kind = flashExplosion
		default:
			continue
		}
		fx.flashes = append(fx.flashes, &Flash{pos: e.Pos, kind: kind})
	}
}

// Update ages and prunes flashes.
func (fx *Effects) Update() {
	kept := fx.flashes[:0]
	for _, f := range fx.flashes {
		f.age++
		if f.age < f.lifetime() {
			kept = append(kept, f)
		}
	}
	fx.flashes = kept
}

// Clear drops every flash, used when a new level is set up.
func (fx *Effects) Clear() { fx.flashes = fx.flashes[:0] }

func (fx *Effects) Len() int { return len(fx.flashes) }

// Draw renders all flashes, offset by (offX, offY).
func (fx *Effects) Draw(screen *ebiten.Image, offX, offY int, halfW, halfH float64) {
	ox, oy := float32(offX), float32(offY)
	for _, f := range fx.flashes {
		progress := float64(f.age) / float64(f.lifetime())
		alpha := uint8(255 * (1.0 - progress))
		wx, wy := worldToScreen(f.pos, halfW, halfH)
		sx, sy := ox+float32(wx), oy+float32(wy)

		switch f.kind {
		case flashMuzzle:
			// Outer glow plus bright core.
			glowR := float32(10.0) * float32(1.0-progress*0.6)
			vector.FillCircle(screen, sx, sy, glowR, color.RGBA{R: 255, G: 180, B: 40, A: uint8(float64(alpha) * 0.3)}, true)
			coreR := float32(4.0) * float32(1.0-progress*0.5)
			vector.FillCircle(screen, sx, sy, coreR, color.RGBA{R: 255, G: 255, B: 220, A: alpha}, true)
		case flashRicochet:
			r := float32(4 + 10*progress)
			vector.StrokeCircle(screen, sx, sy, r, 1.5, color.RGBA{R: 255, G: 240, B: 160, A: alpha}, true)
		case flashImpact:
			vector.FillCircle(screen, sx, sy, 6, color.RGBA{R: 255, G: 200, B: 120, A: alpha}, true)
		case flashExplosion:
			r := float32(10 + 30*progress)
			vector.FillCircle(screen, sx, sy, r, color.RGBA{R: 255, G: 120, B: 30, A: uint8(float64(alpha) * 0.5)}, true)
			vector.StrokeCircle(screen, sx, sy, r, 2, color.RGBA{R: 255, G: 220, B: 150, A: alpha}, true)
		}
	}
}
