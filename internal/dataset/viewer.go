package dataset

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/maptools/internal/browser"
	"github.com/muurk/maptools/internal/geom"
	"github.com/muurk/maptools/internal/render"
	"github.com/muurk/maptools/internal/screen"
	"github.com/muurk/maptools/internal/world"
)

// Single points are too small to see, so they are drawn as circles.
const pointRadius = 10.0

// Viewer pages through the shapes of a dataset.
type Viewer struct {
	name    string
	shapes  []Projected
	browser *browser.Browser[Projected]
}

// NewViewer projects d onto m and opens a browser over its shapes.
func NewViewer(m *world.Map, d *Dataset) (*Viewer, error) {
	shapes := Project(m, d)
	b, err := browser.New(shapes, "Dataset "+d.Name, "Shape", browser.NewAction("quit", "esc"))
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", d.Name, err)
	}
	return &Viewer{name: d.Name, shapes: shapes, browser: b}, nil
}

// Name implements the screen label used in logs.
func (v *Viewer) Name() string { return "dataset(" + v.name + ")" }

// Current returns the index and shape on display.
func (v *Viewer) Current() (int, Projected) {
	return v.browser.Current()
}

// Event implements screen.Screen.
func (v *Viewer) Event(ctx *screen.Context, msg tea.Msg) screen.Transition {
	v.browser.Event(msg)
	if v.browser.ActionFired("quit") {
		return screen.Pop()
	}
	return screen.Keep()
}

func drawShape(r render.Renderer, c render.Color, pts []geom.Pt) {
	switch len(pts) {
	case 0:
	case 1:
		r.DrawCircle(c, geom.Circle{Center: pts[0], Radius: pointRadius})
	case 2:
		r.DrawLine(c, 2, geom.Line{A: pts[0], B: pts[1]})
	default:
		r.DrawPolygon(c, geom.Polygon{Points: pts})
	}
}

// Draw implements screen.Screen.
func (v *Viewer) Draw(r render.Renderer, ctx *screen.Context) {
	idx, current := v.browser.Current()
	for i, s := range v.shapes {
		if i != idx {
			drawShape(r, render.Purple.WithAlpha(0.3), s.Points)
		}
	}
	drawShape(r, render.Highlight, current.Points)

	v.browser.Draw(r, current.Describe())
	screen.DrawOSD(r, ctx)
}

// DrawBaselayer implements screen.Screen.
func (v *Viewer) DrawBaselayer() screen.Baselayer {
	return screen.DefaultMap
}
