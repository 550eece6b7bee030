package trips

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/maptools/internal/browser"
	"github.com/muurk/maptools/internal/geom"
	"github.com/muurk/maptools/internal/logging"
	"github.com/muurk/maptools/internal/render"
	"github.com/muurk/maptools/internal/screen"
	"github.com/muurk/maptools/internal/world"
)

const (
	endpointRadius = 100.0 // meters
	borderLine     = 25.0  // meters
)

// Visualizer pages through trips, highlighting both ends of the current one.
type Visualizer struct {
	m       *world.Map
	browser *browser.Browser[Trip]
}

// NewVisualizer clips trips to m and opens a browser over what is left. It
// fails when no trip survives clipping.
func NewVisualizer(m *world.Map, trips []Trip) (*Visualizer, error) {
	clipped := Clip(m, trips)
	logging.Info("Clipped trips",
		zap.String("map", m.GetName()),
		zap.Int("total", len(trips)),
		zap.Int("kept", len(clipped)),
	)

	b, err := browser.New(clipped, "Trips Visualizer", "Trip", browser.NewAction("quit", "esc"))
	if err != nil {
		return nil, fmt.Errorf("no trips on %s: %w", m.GetName(), err)
	}
	return &Visualizer{m: m, browser: b}, nil
}

// Name implements the screen label used in logs.
func (v *Visualizer) Name() string { return "trips" }

// Current returns the index and trip on display.
func (v *Visualizer) Current() (int, Trip) {
	return v.browser.Current()
}

// Len returns how many trips can be browsed.
func (v *Visualizer) Len() int {
	return v.browser.Len()
}

// Event implements screen.Screen.
func (v *Visualizer) Event(ctx *screen.Context, msg tea.Msg) screen.Transition {
	v.browser.Event(msg)
	if v.browser.ActionFired("quit") {
		return screen.Pop()
	}
	return screen.Keep()
}

// Draw implements screen.Screen.
func (v *Visualizer) Draw(r render.Renderer, ctx *screen.Context) {
	_, trip := v.browser.Current()

	from, errFrom := trip.From.Polygon(v.m)
	to, errTo := trip.To.Polygon(v.m)
	if errFrom == nil && errTo == nil {
		r.DrawPolygon(render.Red, from)
		r.DrawPolygon(render.Blue, to)

		// The outlines alone are hard to spot, so circle them too.
		r.DrawCircle(render.Red.WithAlpha(0.5), geom.Circle{Center: from.Center(), Radius: endpointRadius})
		r.DrawCircle(render.Blue.WithAlpha(0.5), geom.Circle{Center: to.Center(), Radius: endpointRadius})

		if trip.From.Kind == AtBorder {
			r.DrawLine(render.Red, borderLine, geom.Line{A: trip.From.Pt, B: from.Center()})
		}
		if trip.To.Kind == AtBorder {
			r.DrawLine(render.Blue, borderLine, geom.Line{A: trip.To.Pt, B: to.Center()})
		}
	}

	v.browser.Draw(r, trip.Summary())
	screen.DrawOSD(r, ctx)
}

// DrawBaselayer implements screen.Screen.
func (v *Visualizer) DrawBaselayer() screen.Baselayer {
	return screen.DefaultMap
}
