// Package geom holds the small amount of planar geometry the map tools need:
// points in map space (meters), lon/lat pairs, polygons, circles and lines.
package geom

import (
	"fmt"
	"math"
)

// Pt is a point in map space, in meters from the map's origin.
type Pt struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Dist returns the euclidean distance between two points.
func (p Pt) Dist(other Pt) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

func (p Pt) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

// LonLat is a GPS coordinate.
type LonLat struct {
	Lon float64 `yaml:"lon"`
	Lat float64 `yaml:"lat"`
}

func (ll LonLat) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", ll.Lon, ll.Lat)
}

// Bounds is an axis-aligned rectangle in map space.
type Bounds struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// EmptyBounds returns bounds that any Update will overwrite.
func EmptyBounds() Bounds {
	return Bounds{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
}

// Update grows the bounds to include p.
func (b *Bounds) Update(p Pt) {
	b.MinX = math.Min(b.MinX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MaxY = math.Max(b.MaxY, p.Y)
}

// Width of the bounds.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height of the bounds.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Contains reports whether p lies inside the bounds (inclusive).
func (b Bounds) Contains(p Pt) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Polygon is a closed ring of points. The last point is not repeated.
type Polygon struct {
	Points []Pt `yaml:"points"`
}

// Center returns the average of the polygon's vertices.
func (p Polygon) Center() Pt {
	if len(p.Points) == 0 {
		return Pt{}
	}
	var x, y float64
	for _, pt := range p.Points {
		x += pt.X
		y += pt.Y
	}
	n := float64(len(p.Points))
	return Pt{X: x / n, Y: y / n}
}

// Bounds returns the bounding box of the polygon.
func (p Polygon) Bounds() Bounds {
	b := EmptyBounds()
	for _, pt := range p.Points {
		b.Update(pt)
	}
	return b
}

// Contains uses the even-odd rule.
func (p Polygon) Contains(pt Pt) bool {
	inside := false
	n := len(p.Points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.Points[i], p.Points[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) &&
			pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Circle is a center and a radius in meters.
type Circle struct {
	Center Pt
	Radius float64
}

// Contains reports whether pt is within the circle.
func (c Circle) Contains(pt Pt) bool {
	return c.Center.Dist(pt) <= c.Radius
}

// Line is a segment between two points.
type Line struct {
	A Pt
	B Pt
}

// Length of the segment in meters.
func (l Line) Length() float64 {
	return l.A.Dist(l.B)
}

// DistToPt returns the shortest distance from pt to the segment.
func (l Line) DistToPt(pt Pt) float64 {
	dx, dy := l.B.X-l.A.X, l.B.Y-l.A.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return l.A.Dist(pt)
	}
	t := ((pt.X-l.A.X)*dx + (pt.Y-l.A.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return pt.Dist(Pt{X: l.A.X + t*dx, Y: l.A.Y + t*dy})
}
