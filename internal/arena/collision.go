package arena

import "math"

// Face names the side of a box that was struck.
type Face int

const (
	FaceLeft Face = iota
	FaceRight
	FaceTop
	FaceBottom
)

func (f Face) String() string {
	switch f {
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Mirror returns the face on the opposite side.
func (f Face) Mirror() Face {
	switch f {
	case FaceLeft:
		return FaceRight
	case FaceRight:
		return FaceLeft
	case FaceTop:
		return FaceBottom
	default:
		return FaceTop
	}
}

// Probe tests box a against box b and, when they overlap, reports which
// face of b was struck. Touching edges do not count as overlap.
//
// The axis with the smaller penetration decides the face. Equal penetration
// goes to the axis with the smaller combined half extent, then to the
// horizontal axis. FaceLeft means b lies to the right of a, FaceBottom means
// b lies above a.
func Probe(a, b Box) (Face, bool) {
	dx := b.Center.X - a.Center.X
	dy := b.Center.Y - a.Center.Y
	spanX := a.Half.X + b.Half.X
	spanY := a.Half.Y + b.Half.Y
	penX := spanX - math.Abs(dx)
	penY := spanY - math.Abs(dy)
	if penX <= 0 || penY <= 0 {
		return 0, false
	}
	vertical := penY < penX || (penY == penX && spanY < spanX)
	if vertical {
		if dy > 0 {
			return FaceBottom, true
		}
		return FaceTop, true
	}
	if dx > 0 {
		return FaceLeft, true
	}
	return FaceRight, true
}

// blocks reports whether contact on face f forbids motion along dir.
func (f Face) blocks(dir Vec2) (blockX, blockY bool) {
	switch f {
	case FaceLeft:
		return dir.X > 0, false
	case FaceRight:
		return dir.X < 0, false
	case FaceTop:
		return false, dir.Y < 0
	case FaceBottom:
		return false, dir.Y > 0
	}
	return false, false
}
