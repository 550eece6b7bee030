// Package scenario loads recorded scenarios and shows a summary of one.
package scenario

import (
	"fmt"
	"sort"

	"github.com/muurk/maptools/internal/persist"
	"github.com/muurk/maptools/internal/trips"
)

// Scenario is the population of a map and the trips its people take.
type Scenario struct {
	Name   string   `yaml:"scenario_name"`
	Map    string   `yaml:"map_name"`
	People []Person `yaml:"people"`
}

// Person is one member of the population.
type Person struct {
	ID    int          `yaml:"id"`
	Trips []trips.Trip `yaml:"trips"`
}

// Validate implements persist.Validator.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	if s.Map == "" {
		return fmt.Errorf("scenario %s has no map", s.Name)
	}
	for _, p := range s.People {
		for _, t := range p.Trips {
			if err := t.Validate(); err != nil {
				return fmt.Errorf("person %d: %w", p.ID, err)
			}
		}
	}
	return nil
}

// Trips returns every trip in the scenario, person by person.
func (s *Scenario) Trips() []trips.Trip {
	var all []trips.Trip
	for _, p := range s.People {
		all = append(all, p.Trips...)
	}
	return all
}

// ModeCount is the number of trips using one mode.
type ModeCount struct {
	Mode  string
	Count int
}

// TripsByMode counts trips per mode, most common first.
func (s *Scenario) TripsByMode() []ModeCount {
	counts := make(map[string]int)
	for _, t := range s.Trips() {
		counts[t.Mode]++
	}

	out := make([]ModeCount, 0, len(counts))
	for mode, n := range counts {
		out = append(out, ModeCount{Mode: mode, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Mode < out[j].Mode
	})
	return out
}

// Load reads scenarios/<mapName>/<name>.yaml. A scenario recorded for a
// different map is malformed.
func Load(s persist.Store, mapName, name string) (*Scenario, error) {
	var sc Scenario
	if err := s.ReadObject(persist.ScenariosDir(mapName), name, &sc); err != nil {
		return nil, err
	}
	if sc.Map != mapName {
		return nil, &persist.MalformedError{
			Path: persist.ScenariosDir(mapName) + "/" + name + ".yaml",
			Err:  fmt.Errorf("recorded for map %s", sc.Map),
		}
	}
	return &sc, nil
}
