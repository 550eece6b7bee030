// Package worldtest provides small indexed maps for tests.
package worldtest

import (
	"github.com/muurk/maptools/internal/geom"
	"github.com/muurk/maptools/internal/world"
)

func square(x, y, size float64) []geom.Pt {
	return []geom.Pt{{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size}}
}

// Montlake returns a 1km square map with three buildings, one border
// intersection on the west edge and one interior intersection.
func Montlake() *world.Map {
	m := &world.Map{
		Name: "montlake",
		City: "seattle",
		GPS: world.GPSBounds{
			MinLon: -122.31, MinLat: 47.63,
			MaxLon: -122.29, MaxLat: 47.65,
		},
		Bounds: geom.Bounds{MaxX: 1000, MaxY: 1000},
		Buildings: []world.Building{
			{ID: 1, Address: "2200 E Shelby St", Points: square(100, 100, 40)},
			{ID: 2, Points: square(500, 500, 60)},
			{ID: 3, Address: "1800 Boyer Ave", Points: square(800, 200, 30)},
		},
		Intersections: []world.Intersection{
			{ID: 1, Border: true, Points: square(0, 480, 20)},
			{ID: 2, Name: "Montlake & Shelby", Points: square(300, 300, 20)},
		},
	}
	if err := m.Index(); err != nil {
		panic(err)
	}
	return m
}
