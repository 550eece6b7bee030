// Package trips holds individual trip records and the screen that pages
// through them on the map.
package trips

import (
	"fmt"
	"time"

	"github.com/muurk/maptools/internal/geom"
	"github.com/muurk/maptools/internal/world"
)

// EndpointKind says whether a trip starts or ends at a building or comes
// through a border intersection.
type EndpointKind string

const (
	AtBuilding EndpointKind = "building"
	AtBorder   EndpointKind = "border"
)

// Endpoint is one end of a trip. Border endpoints keep the original
// out-of-bounds point the trip really started or ended at.
type Endpoint struct {
	Kind EndpointKind `yaml:"kind"`
	ID   int          `yaml:"id"`
	Pt   geom.Pt      `yaml:"pt,omitempty"`
}

// ObjectID maps the endpoint onto a map object.
func (e Endpoint) ObjectID() world.ID {
	if e.Kind == AtBorder {
		return world.ID{Kind: world.KindIntersection, Index: e.ID}
	}
	return world.ID{Kind: world.KindBuilding, Index: e.ID}
}

// Polygon returns the outline of the endpoint on m.
func (e Endpoint) Polygon(m *world.Map) (geom.Polygon, error) {
	switch e.Kind {
	case AtBuilding:
	case AtBorder:
		in, ok := m.Intersection(e.ID)
		if !ok || !in.Border {
			return geom.Polygon{}, fmt.Errorf("%s is not a border on %s", e.ObjectID(), m.GetName())
		}
	default:
		return geom.Polygon{}, fmt.Errorf("unknown endpoint kind %q", e.Kind)
	}
	return m.ResolveGeometry(e.ObjectID())
}

func (e Endpoint) String() string {
	return e.ObjectID().String()
}

// Trip is one person's journey between two endpoints.
type Trip struct {
	ID       int           `yaml:"id"`
	From     Endpoint      `yaml:"from"`
	To       Endpoint      `yaml:"to"`
	DepartAt time.Duration `yaml:"depart_at"` // since midnight
	Purpose  [2]string     `yaml:"purpose"`
	Mode     string        `yaml:"mode"`
	Time     time.Duration `yaml:"trip_time"`
	Distance float64       `yaml:"trip_dist"` // meters
}

// AverageSpeed returns meters per second, or 0 for an instant trip.
func (t Trip) AverageSpeed() float64 {
	if t.Time <= 0 {
		return 0
	}
	return t.Distance / t.Time.Seconds()
}

// Summary returns the lines shown beside the map for this trip.
func (t Trip) Summary() []string {
	return []string{
		"Leave at " + FormatClock(t.DepartAt),
		fmt.Sprintf("Purpose: %s -> %s", t.Purpose[0], t.Purpose[1]),
		"Mode: " + t.Mode,
		"Trip time: " + FormatClock(t.Time),
		"Trip distance: " + FormatDistance(t.Distance),
		fmt.Sprintf("Average speed %.1f m/s", t.AverageSpeed()),
	}
}

// Validate checks the fields a loaded trip must carry.
func (t Trip) Validate() error {
	for _, e := range []Endpoint{t.From, t.To} {
		if e.Kind != AtBuilding && e.Kind != AtBorder {
			return fmt.Errorf("trip %d: unknown endpoint kind %q", t.ID, e.Kind)
		}
	}
	if t.Time < 0 || t.Distance < 0 {
		return fmt.Errorf("trip %d: negative time or distance", t.ID)
	}
	return nil
}

// Clip keeps the trips whose endpoints both exist on m, in order.
func Clip(m *world.Map, trips []Trip) []Trip {
	var kept []Trip
	for _, t := range trips {
		if _, err := t.From.Polygon(m); err != nil {
			continue
		}
		if _, err := t.To.Polygon(m); err != nil {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

// FormatClock renders a duration as h:mm:ss.
func FormatClock(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// FormatDistance renders meters, switching to km past 1000.
func FormatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return fmt.Sprintf("%.0f m", meters)
}
