package arena

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func box(x, y, hw, hh float64) Box {
	return Box{Center: Vec2{x, y}, Half: Vec2{hw, hh}}
}

func TestProbe_Faces(t *testing.T) {
	tests := []struct {
		name string
		a, b Box
		want Face
	}{
		{"b to the right", box(0, 0, 10, 10), box(15, 0, 10, 10), FaceLeft},
		{"b to the left", box(0, 0, 10, 10), box(-15, 0, 10, 10), FaceRight},
		{"b above", box(0, 0, 10, 10), box(0, 15, 10, 10), FaceBottom},
		{"b below", box(0, 0, 10, 10), box(0, -15, 10, 10), FaceTop},
		{"shallow vertical wins", box(0, 0, 10, 10), box(5, 18, 10, 10), FaceBottom},
		{"shallow horizontal wins", box(0, 0, 10, 10), box(18, -5, 10, 10), FaceLeft},
		{"bullet into wide wall", box(70, 0, 6, 6), box(100, 0, 32, 32), FaceLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Probe(tt.a, tt.b)
			if !ok {
				t.Fatalf("Probe(%v, %v) reported no overlap", tt.a, tt.b)
			}
			if got != tt.want {
				t.Fatalf("Probe face = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestProbe_NoOverlap(t *testing.T) {
	cases := []struct {
		name string
		a, b Box
	}{
		{"apart", box(0, 0, 5, 5), box(50, 50, 5, 5)},
		{"touching edges", box(0, 0, 5, 5), box(10, 0, 5, 5)},
		{"touching corner", box(0, 0, 5, 5), box(10, 10, 5, 5)},
		{"overlap x only", box(0, 0, 5, 5), box(2, 20, 5, 5)},
	}
	for _, c := range cases {
		if f, ok := Probe(c.a, c.b); ok {
			t.Fatalf("%s: expected no overlap, got %s", c.name, f)
		}
	}
}

func TestProbe_EqualPenetrationPrefersNarrowerAxis(t *testing.T) {
	// Penetration is 4 on both axes; the vertical span (3+3) is narrower
	// than the horizontal span (10+10).
	a := box(0, 0, 10, 3)
	b := box(16, 2, 10, 3)
	got, ok := Probe(a, b)
	if !ok || got != FaceBottom {
		t.Fatalf("Probe = %s,%t want bottom,true", got, ok)
	}

	// Equal spans too: horizontal.
	a = box(0, 0, 5, 5)
	b = box(6, 6, 5, 5)
	got, ok = Probe(a, b)
	if !ok || got != FaceLeft {
		t.Fatalf("Probe = %s,%t want left,true", got, ok)
	}
}

func TestProbe_Containment(t *testing.T) {
	// Full containment still reports a face.
	if _, ok := Probe(box(0, 0, 2, 2), box(1, 0, 20, 20)); !ok {
		t.Fatal("expected contained box to overlap")
	}
}

func drawBox(t *rapid.T, label string) Box {
	return Box{
		Center: Vec2{
			rapid.Float64Range(-100, 100).Draw(t, label+".x"),
			rapid.Float64Range(-100, 100).Draw(t, label+".y"),
		},
		Half: Vec2{
			rapid.Float64Range(0.5, 60).Draw(t, label+".hw"),
			rapid.Float64Range(0.5, 60).Draw(t, label+".hh"),
		},
	}
}

func TestProbe_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawBox(t, "a")
		b := drawBox(t, "b")

		dx := b.Center.X - a.Center.X
		dy := b.Center.Y - a.Center.Y
		penX := a.Half.X + b.Half.X - math.Abs(dx)
		penY := a.Half.Y + b.Half.Y - math.Abs(dy)
		overlapping := penX > 0 && penY > 0

		face, ok := Probe(a, b)
		if ok != overlapping {
			t.Fatalf("Probe ok=%t, overlap=%t (penX=%v penY=%v)", ok, overlapping, penX, penY)
		}
		if !ok {
			return
		}

		horizontal := face == FaceLeft || face == FaceRight
		if horizontal && penX > penY {
			t.Fatalf("horizontal face %s with penX=%v > penY=%v", face, penX, penY)
		}
		if !horizontal && penY > penX {
			t.Fatalf("vertical face %s with penY=%v > penX=%v", face, penY, penX)
		}

		back, ok := Probe(b, a)
		if !ok {
			t.Fatal("Probe(b, a) lost the overlap")
		}
		// Zero displacement on the deciding axis has no side to mirror.
		if (horizontal && dx == 0) || (!horizontal && dy == 0) {
			return
		}
		if back != face.Mirror() {
			t.Fatalf("Probe(a,b)=%s but Probe(b,a)=%s", face, back)
		}
	})
}

func TestVec2_TryNormalize(t *testing.T) {
	if _, ok := (Vec2{}).TryNormalize(); ok {
		t.Fatal("expected zero vector to fail normalization")
	}
	if _, ok := (Vec2{math.Inf(1), 0}).TryNormalize(); ok {
		t.Fatal("expected infinite vector to fail normalization")
	}
	n, ok := Vec2{3, 4}.TryNormalize()
	if !ok || !n.Approx(Vec2{0.6, 0.8}) {
		t.Fatalf("TryNormalize = %v,%t want (0.6,0.8),true", n, ok)
	}
}
