// Package dataset loads imported shape datasets (points, lines and areas
// with free-form attributes) and lets the user page through them.
package dataset

import (
	"fmt"
	"sort"

	"github.com/muurk/maptools/internal/geom"
	"github.com/muurk/maptools/internal/persist"
	"github.com/muurk/maptools/internal/world"
)

// Dataset is a named collection of shapes in GPS coordinates.
type Dataset struct {
	Name   string  `yaml:"name"`
	Shapes []Shape `yaml:"shapes"`
}

// Shape is one feature of a dataset.
type Shape struct {
	Points     []geom.LonLat     `yaml:"points"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

// Validate implements persist.Validator.
func (d *Dataset) Validate() error {
	for i, s := range d.Shapes {
		if len(s.Points) == 0 {
			return fmt.Errorf("shape %d has no points", i)
		}
	}
	return nil
}

// Load reads input/<city>/datasets/<name>.yaml.
func Load(s persist.Store, city, name string) (*Dataset, error) {
	var d Dataset
	if err := s.ReadObject(persist.DatasetsDir(city), name, &d); err != nil {
		return nil, err
	}
	if d.Name == "" {
		d.Name = name
	}
	return &d, nil
}

// Projected is a shape moved into map space.
type Projected struct {
	Points     []geom.Pt
	Attributes map[string]string
}

// Project converts every shape of d onto m.
func Project(m *world.Map, d *Dataset) []Projected {
	out := make([]Projected, len(d.Shapes))
	for i, s := range d.Shapes {
		out[i] = Projected{
			Points:     m.ProjectPolygon(s.Points).Points,
			Attributes: s.Attributes,
		}
	}
	return out
}

// Describe lists the attributes as "key = value", sorted by key.
func (p Projected) Describe() []string {
	keys := make([]string, 0, len(p.Attributes))
	for k := range p.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s = %s", k, p.Attributes[k]))
	}
	return lines
}
