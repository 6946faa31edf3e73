package arena

import "math"

// HasLineOfSight returns true if the segment from a to b crosses none of
// the given boxes.
func HasLineOfSight(a, b Vec2, walls []Box) bool {
	for _, w := range walls {
		if SegmentHitsBox(a, b, w) {
			return false
		}
	}
	return true
}

// SegmentHitsBox reports whether the segment from a to b touches box.
func SegmentHitsBox(a, b Vec2, box Box) bool {
	_, hit := segmentBoxHitT(a, b, box)
	return hit
}

// segmentBoxHitT returns the first segment parameter t in [0,1] where the
// segment from o to e enters the box. The bool is false when no hit exists.
func segmentBoxHitT(o, e Vec2, box Box) (float64, bool) {
	lo, hi := box.Min(), box.Max()
	tMin, tMax := 0.0, 1.0

	slab := func(origin, delta, min, max float64) bool {
		if math.Abs(delta) < 1e-12 {
			return origin >= min && origin <= max
		}
		inv := 1.0 / delta
		t1 := (min - origin) * inv
		t2 := (max - origin) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		return tMin <= tMax
	}

	if !slab(o.X, e.X-o.X, lo.X, hi.X) || !slab(o.Y, e.Y-o.Y, lo.Y, hi.Y) {
		return 0, false
	}
	return tMin, true
}

// inflate grows every box by pad on each side.
func inflate(boxes []Box, pad float64) []Box {
	out := make([]Box, len(boxes))
	for i, b := range boxes {
		out[i] = Box{Center: b.Center, Half: b.Half.Add(Vec2{pad, pad})}
	}
	return out
}
