package geom

import (
	"math"
	"testing"
)

func square() Polygon {
	return Polygon{Points: []Pt{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
}

func TestPolygonCenter(t *testing.T) {
	c := square().Center()
	if c.X != 5 || c.Y != 5 {
		t.Errorf("Center() = %v, want (5, 5)", c)
	}

	if got := (Polygon{}).Center(); got != (Pt{}) {
		t.Errorf("Center() of empty polygon = %v, want origin", got)
	}
}

func TestPolygonContains(t *testing.T) {
	tests := []struct {
		name string
		pt   Pt
		want bool
	}{
		{"inside", Pt{5, 5}, true},
		{"outside right", Pt{15, 5}, false},
		{"outside below", Pt{5, -1}, false},
		{"near corner", Pt{0.5, 9.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := square().Contains(tt.pt); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
}

func TestPolygonBounds(t *testing.T) {
	b := square().Bounds()
	if b.MinX != 0 || b.MinY != 0 || b.MaxX != 10 || b.MaxY != 10 {
		t.Errorf("Bounds() = %+v", b)
	}
	if b.Width() != 10 || b.Height() != 10 {
		t.Errorf("Width/Height = %v/%v, want 10/10", b.Width(), b.Height())
	}
}

func TestLineDistToPt(t *testing.T) {
	l := Line{A: Pt{0, 0}, B: Pt{10, 0}}

	if d := l.DistToPt(Pt{5, 3}); math.Abs(d-3) > 1e-9 {
		t.Errorf("DistToPt mid = %v, want 3", d)
	}
	if d := l.DistToPt(Pt{13, 4}); math.Abs(d-5) > 1e-9 {
		t.Errorf("DistToPt past end = %v, want 5", d)
	}

	degenerate := Line{A: Pt{1, 1}, B: Pt{1, 1}}
	if d := degenerate.DistToPt(Pt{4, 5}); math.Abs(d-5) > 1e-9 {
		t.Errorf("DistToPt degenerate = %v, want 5", d)
	}
}

func TestCircleContains(t *testing.T) {
	c := Circle{Center: Pt{0, 0}, Radius: 100}
	if !c.Contains(Pt{60, 80}) {
		t.Error("point on the rim should be contained")
	}
	if c.Contains(Pt{80, 80}) {
		t.Error("point outside should not be contained")
	}
}
