package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/ricochet-arena/internal/arena"
)

var spriteColors = map[arena.SpriteKey]color.RGBA{
	arena.SpritePlayer:    {R: 70, G: 130, B: 220, A: 255}, // blue
	arena.SpriteBrownTank: {R: 150, G: 105, B: 60, A: 255}, // brown
	arena.SpriteWall:      {R: 90, G: 92, B: 88, A: 255},   // stone
	arena.SpriteBullet:    {R: 255, G: 235, B: 170, A: 255},
}

// screenPresenter draws simulation entities onto an ebiten image.
type screenPresenter struct {
	screen       *ebiten.Image
	offX, offY   float32
	halfW, halfH float64

	banner arena.Banner
	drawn  int
}

func (p *screenPresenter) begin(screen *ebiten.Image, offX, offY int, halfW, halfH float64) {
	p.screen = screen
	p.offX, p.offY = float32(offX), float32(offY)
	p.halfW, p.halfH = halfW, halfH
	p.drawn = 0
}

func (p *screenPresenter) DrawEntity(pos, half arena.Vec2, sprite arena.SpriteKey) {
	sx, sy := worldToScreen(pos, p.halfW, p.halfH)
	x := p.offX + float32(sx)
	y := p.offY + float32(sy)
	hw, hh := float32(half.X), float32(half.Y)
	col, ok := spriteColors[sprite]
	if !ok {
		col = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	}
	p.drawn++

	switch sprite {
	case arena.SpriteBullet:
		vector.FillCircle(p.screen, x, y, hw, col, true)
		vector.FillCircle(p.screen, x, y, hw*0.45, color.RGBA{R: 255, G: 255, B: 255, A: 230}, true)
	case arena.SpriteWall:
		vector.FillRect(p.screen, x-hw, y-hh, 2*hw, 2*hh, col, false)
		vector.StrokeRect(p.screen, x-hw, y-hh, 2*hw, 2*hh, 2, color.RGBA{R: 50, G: 52, B: 48, A: 255}, false)
		// Inner highlight line along top edge.
		vector.StrokeLine(p.screen, x-hw+2, y-hh+2, x+hw-2, y-hh+2, 1, color.RGBA{R: 130, G: 132, B: 126, A: 160}, false)
	default:
		// Tank hull with treads on both sides.
		tread := color.RGBA{R: col.R / 2, G: col.G / 2, B: col.B / 2, A: 255}
		vector.FillRect(p.screen, x-hw, y-hh, 2*hw, 2*hh, tread, false)
		vector.FillRect(p.screen, x-hw+5, y-hh+2, 2*hw-10, 2*hh-4, col, false)
		vector.FillCircle(p.screen, x, y, hw*0.4, tread, true)
	}
}

func (p *screenPresenter) SetBanner(text string, visible bool) {
	p.banner = arena.Banner{Text: text, Visible: visible}
}
