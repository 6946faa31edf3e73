package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"

	"github.com/Garsondee/ricochet-arena/internal/arena"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at
// the HUD scale.
const (
	inspBufW  = 120
	inspBufH  = 100
	inspPad   = 4
	inspLineH = 13
)

// Inspector holds the entity picked with the right mouse button.
type Inspector struct {
	selected donburi.Entity
	active   bool
}

// handleInspectorClick selects the entity under the cursor, or clears the
// selection when nothing is there. It returns true when something was hit.
func (g *Game) handleInspectorClick(mx, my int) bool {
	p, ok := cursorToWorld(mx, my, g.offX, g.offY, g.halfW, g.halfH)
	if !ok {
		g.inspector.active = false
		return false
	}
	e, hit := g.sim.PickAt(p)
	g.inspector.selected, g.inspector.active = e, hit
	return hit
}

// drawInspector outlines the selected entity and lists its details in the
// top-right corner of the playfield.
func (g *Game) drawInspector(screen *ebiten.Image) {
	if !g.inspector.active {
		return
	}
	info, ok := g.sim.Inspect(g.inspector.selected)
	if !ok {
		// Selection despawned.
		g.inspector.active = false
		return
	}

	sx, sy := worldToScreen(info.Pos, g.halfW, g.halfH)
	x := float32(g.offX) + float32(sx)
	y := float32(g.offY) + float32(sy)
	hw, hh := float32(info.Half.X)+3, float32(info.Half.Y)+3
	vector.StrokeRect(screen, x-hw, y-hh, 2*hw, 2*hh, 1.5, color.RGBA{R: 120, G: 255, B: 160, A: 220}, false)
	if info.Kind == arena.ColliderBullet {
		end := info.Pos.Add(info.Velocity.Scale(0.5))
		ex, ey := worldToScreen(end, g.halfW, g.halfH)
		vector.StrokeLine(screen, x, y, float32(g.offX)+float32(ex), float32(g.offY)+float32(ey), 1, color.RGBA{R: 120, G: 255, B: 160, A: 160}, false)
	}

	g.inspBuf.Clear()
	vector.FillRect(g.inspBuf, 0, 0, inspBufW, inspBufH, color.RGBA{R: 8, G: 12, B: 10, A: 220}, false)
	vector.StrokeRect(g.inspBuf, 0, 0, inspBufW, inspBufH, 1, color.RGBA{R: 60, G: 110, B: 80, A: 255}, false)
	for i, line := range info.Lines() {
		ebitenutil.DebugPrintAt(g.inspBuf, line, inspPad, inspPad+i*inspLineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(g.hudScale), float64(g.hudScale))
	opts.GeoM.Translate(float64(g.offX+g.gameWidth-inspBufW*g.hudScale-8), float64(g.offY+8))
	screen.DrawImage(g.inspBuf, opts)
}
