package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawGrid draws faint grid lines across the playfield.
func drawGrid(screen *ebiten.Image, offX, offY, w, h, spacing int) {
	lineCol := color.RGBA{R: 40, G: 48, B: 38, A: 255}
	ox, oy := float32(offX), float32(offY)
	for x := spacing; x < w; x += spacing {
		vector.StrokeLine(screen, ox+float32(x), oy, ox+float32(x), oy+float32(h), 1.0, lineCol, false)
	}
	for y := spacing; y < h; y += spacing {
		vector.StrokeLine(screen, ox, oy+float32(y), ox+float32(w), oy+float32(y), 1.0, lineCol, false)
	}
}

// drawVignette darkens the playfield edges with concentric translucent bands.
func drawVignette(screen *ebiten.Image, offX, offY, w, h int) {
	const layers = 6
	const step = 8
	ox, oy := float32(offX), float32(offY)
	fw, fh := float32(w), float32(h)
	for i := 0; i < layers; i++ {
		inset := float32(i * step)
		alpha := uint8(50 - i*8)
		c := color.RGBA{R: 0, G: 0, B: 0, A: alpha}
		// top
		vector.FillRect(screen, ox+inset, oy+inset, fw-inset*2, step, c, false)
		// bottom
		vector.FillRect(screen, ox+inset, oy+fh-inset-step, fw-inset*2, step, c, false)
		// left
		vector.FillRect(screen, ox+inset, oy+inset+step, step, fh-inset*2-step*2, c, false)
		// right
		vector.FillRect(screen, ox+fw-inset-step, oy+inset+step, step, fh-inset*2-step*2, c, false)
	}
}

func drawCrosshair(screen *ebiten.Image, x, y float32) {
	c := color.RGBA{R: 220, G: 240, B: 220, A: 200}
	vector.StrokeCircle(screen, x, y, 8, 1, c, true)
	vector.StrokeLine(screen, x-12, y, x-4, y, 1, c, false)
	vector.StrokeLine(screen, x+4, y, x+12, y, 1, c, false)
	vector.StrokeLine(screen, x, y-12, x, y-4, 1, c, false)
	vector.StrokeLine(screen, x, y+4, x, y+12, 1, c, false)
}
