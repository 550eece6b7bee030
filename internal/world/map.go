// Package world is the map model consumed by the dev tools: buildings and
// intersections with their outlines, the GPS frame used to project lon/lat
// input files, and the city the map belongs to.
package world

import (
	"errors"
	"fmt"
	"sort"

	"github.com/muurk/maptools/internal/geom"
)

// ObjectKind names the kind of map object an ID refers to.
type ObjectKind string

const (
	KindBuilding     ObjectKind = "building"
	KindIntersection ObjectKind = "intersection"
)

// ID identifies one object on the map.
type ID struct {
	Kind  ObjectKind
	Index int
}

func (id ID) String() string {
	return fmt.Sprintf("%s #%d", id.Kind, id.Index)
}

// ErrUnknownObject is returned when an ID does not exist on the map.
var ErrUnknownObject = errors.New("unknown map object")

// Building is a building footprint.
type Building struct {
	ID      int       `yaml:"id"`
	Address string    `yaml:"address,omitempty"`
	Points  []geom.Pt `yaml:"points"`
}

// Intersection is an intersection outline. Border intersections sit on the
// edge of the map and are where trips from outside the map enter.
type Intersection struct {
	ID     int       `yaml:"id"`
	Name   string    `yaml:"name,omitempty"`
	Border bool      `yaml:"border,omitempty"`
	Points []geom.Pt `yaml:"points"`
}

// GPSBounds is the lon/lat rectangle that maps onto the map's planar bounds.
type GPSBounds struct {
	MinLon float64 `yaml:"min_lon"`
	MinLat float64 `yaml:"min_lat"`
	MaxLon float64 `yaml:"max_lon"`
	MaxLat float64 `yaml:"max_lat"`
}

// Map is a loaded map. Call Index after decoding and before use.
type Map struct {
	Name          string         `yaml:"name"`
	City          string         `yaml:"city"`
	GPS           GPSBounds      `yaml:"gps_bounds"`
	Bounds        geom.Bounds    `yaml:"bounds"`
	Buildings     []Building     `yaml:"buildings"`
	Intersections []Intersection `yaml:"intersections"`

	buildings     map[int]int
	intersections map[int]int
}

// Index builds the lookup tables and validates the map. Bounds are derived
// from the geometry when the file leaves them empty.
func (m *Map) Index() error {
	if m.Name == "" {
		return fmt.Errorf("map has no name")
	}

	m.buildings = make(map[int]int, len(m.Buildings))
	for i, b := range m.Buildings {
		if _, dup := m.buildings[b.ID]; dup {
			return fmt.Errorf("map %s: duplicate building %d", m.Name, b.ID)
		}
		if len(b.Points) < 3 {
			return fmt.Errorf("map %s: building %d has %d points, need at least 3", m.Name, b.ID, len(b.Points))
		}
		m.buildings[b.ID] = i
	}

	m.intersections = make(map[int]int, len(m.Intersections))
	for i, in := range m.Intersections {
		if _, dup := m.intersections[in.ID]; dup {
			return fmt.Errorf("map %s: duplicate intersection %d", m.Name, in.ID)
		}
		if len(in.Points) < 3 {
			return fmt.Errorf("map %s: intersection %d has %d points, need at least 3", m.Name, in.ID, len(in.Points))
		}
		m.intersections[in.ID] = i
	}

	if m.Bounds.Width() <= 0 || m.Bounds.Height() <= 0 {
		b := geom.EmptyBounds()
		for _, bldg := range m.Buildings {
			for _, pt := range bldg.Points {
				b.Update(pt)
			}
		}
		for _, in := range m.Intersections {
			for _, pt := range in.Points {
				b.Update(pt)
			}
		}
		if b.Width() <= 0 || b.Height() <= 0 {
			return fmt.Errorf("map %s: cannot derive bounds from geometry", m.Name)
		}
		m.Bounds = b
	}

	return nil
}

// GetName returns the map's name.
func (m *Map) GetName() string {
	return m.Name
}

// CityName returns the city the map belongs to, falling back to the map name.
func (m *Map) CityName() string {
	if m.City == "" {
		return m.Name
	}
	return m.City
}

// Building looks up a building by id.
func (m *Map) Building(id int) (Building, bool) {
	i, ok := m.buildings[id]
	if !ok {
		return Building{}, false
	}
	return m.Buildings[i], true
}

// Intersection looks up an intersection by id.
func (m *Map) Intersection(id int) (Intersection, bool) {
	i, ok := m.intersections[id]
	if !ok {
		return Intersection{}, false
	}
	return m.Intersections[i], true
}

// ResolveGeometry returns the outline of an object. It is only used for
// drawing.
func (m *Map) ResolveGeometry(id ID) (geom.Polygon, error) {
	switch id.Kind {
	case KindBuilding:
		if b, ok := m.Building(id.Index); ok {
			return geom.Polygon{Points: b.Points}, nil
		}
	case KindIntersection:
		if in, ok := m.Intersection(id.Index); ok {
			return geom.Polygon{Points: in.Points}, nil
		}
	}
	return geom.Polygon{}, fmt.Errorf("%w: %s on %s", ErrUnknownObject, id, m.Name)
}

// ObjectAt returns the object under pt. Buildings win over intersections.
func (m *Map) ObjectAt(pt geom.Pt) (ID, bool) {
	for _, b := range m.Buildings {
		if (geom.Polygon{Points: b.Points}).Contains(pt) {
			return ID{Kind: KindBuilding, Index: b.ID}, true
		}
	}
	for _, in := range m.Intersections {
		if (geom.Polygon{Points: in.Points}).Contains(pt) {
			return ID{Kind: KindIntersection, Index: in.ID}, true
		}
	}
	return ID{}, false
}

// Describe returns a one-line description of an object for the on-screen
// display.
func (m *Map) Describe(id ID) string {
	switch id.Kind {
	case KindBuilding:
		if b, ok := m.Building(id.Index); ok && b.Address != "" {
			return fmt.Sprintf("%s (%s)", id, b.Address)
		}
	case KindIntersection:
		if in, ok := m.Intersection(id.Index); ok {
			if in.Border {
				return fmt.Sprintf("%s (border)", id)
			}
			if in.Name != "" {
				return fmt.Sprintf("%s (%s)", id, in.Name)
			}
		}
	}
	return id.String()
}

// BorderIntersections returns the ids of every border intersection, sorted.
func (m *Map) BorderIntersections() []int {
	var ids []int
	for _, in := range m.Intersections {
		if in.Border {
			ids = append(ids, in.ID)
		}
	}
	sort.Ints(ids)
	return ids
}

// Project converts a GPS coordinate into map space by linear interpolation
// between the GPS bounds and the planar bounds.
func (m *Map) Project(ll geom.LonLat) geom.Pt {
	g := m.GPS
	if g.MaxLon == g.MinLon || g.MaxLat == g.MinLat {
		return geom.Pt{X: ll.Lon, Y: ll.Lat}
	}
	fx := (ll.Lon - g.MinLon) / (g.MaxLon - g.MinLon)
	fy := (ll.Lat - g.MinLat) / (g.MaxLat - g.MinLat)
	return geom.Pt{
		X: m.Bounds.MinX + fx*m.Bounds.Width(),
		Y: m.Bounds.MinY + fy*m.Bounds.Height(),
	}
}

// Unproject is the inverse of Project.
func (m *Map) Unproject(pt geom.Pt) geom.LonLat {
	g := m.GPS
	if g.MaxLon == g.MinLon || g.MaxLat == g.MinLat {
		return geom.LonLat{Lon: pt.X, Lat: pt.Y}
	}
	fx := (pt.X - m.Bounds.MinX) / m.Bounds.Width()
	fy := (pt.Y - m.Bounds.MinY) / m.Bounds.Height()
	return geom.LonLat{
		Lon: g.MinLon + fx*(g.MaxLon-g.MinLon),
		Lat: g.MinLat + fy*(g.MaxLat-g.MinLat),
	}
}

// ProjectPolygon projects a ring of GPS points.
func (m *Map) ProjectPolygon(pts []geom.LonLat) geom.Polygon {
	out := make([]geom.Pt, len(pts))
	for i, ll := range pts {
		out[i] = m.Project(ll)
	}
	return geom.Polygon{Points: out}
}
