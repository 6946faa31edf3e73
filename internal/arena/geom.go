package arena

import "math"

// Vec2 is a point or direction in world space. Y grows upward and the
// arena origin sits at its centre.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Approx(o Vec2) bool { return math.Abs(v.X-o.X) < 1e-9 && math.Abs(v.Y-o.Y) < 1e-9 }

// TryNormalize returns the unit vector along v. It reports false for a
// zero-length or non-finite vector, in which case the zero vector is returned.
func (v Vec2) TryNormalize() (Vec2, bool) {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec2{}, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}

// Box is an axis-aligned rectangle given by its centre and half extents.
type Box struct {
	Center Vec2
	Half   Vec2
}

func (b Box) Min() Vec2 { return b.Center.Sub(b.Half) }
func (b Box) Max() Vec2 { return b.Center.Add(b.Half) }

// Contains reports whether p lies inside b, edges included.
func (b Box) Contains(p Vec2) bool {
	return math.Abs(p.X-b.Center.X) <= b.Half.X && math.Abs(p.Y-b.Center.Y) <= b.Half.Y
}
