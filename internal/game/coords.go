package game

import "github.com/Garsondee/ricochet-arena/internal/arena"

// worldToScreen maps a Y-up world point centred on the arena to Y-down
// playfield pixels with the origin at the playfield's top-left corner.
func worldToScreen(p arena.Vec2, halfW, halfH float64) (float64, float64) {
	return p.X + halfW, halfH - p.Y
}

// screenToWorld is the inverse of worldToScreen.
func screenToWorld(x, y, halfW, halfH float64) arena.Vec2 {
	return arena.Vec2{X: x - halfW, Y: halfH - y}
}

// cursorToWorld converts a window cursor position into world space. It
// reports false when the cursor is outside the playfield.
func cursorToWorld(cx, cy, offX, offY int, halfW, halfH float64) (arena.Vec2, bool) {
	x := float64(cx - offX)
	y := float64(cy - offY)
	if x < 0 || y < 0 || x > 2*halfW || y > 2*halfH {
		return arena.Vec2{}, false
	}
	return screenToWorld(x, y, halfW, halfH), true
}
