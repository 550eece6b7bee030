// Package polygon implements the editor for named boundary polygons.
//
// Polygons are stored as Osmosis .poly files in GPS coordinates under
// input/<city>/polygons and edited in map space.
package polygon

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/maptools/internal/geom"
	"github.com/muurk/maptools/internal/logging"
	"github.com/muurk/maptools/internal/persist"
	"github.com/muurk/maptools/internal/render"
	"github.com/muurk/maptools/internal/screen"
	"github.com/muurk/maptools/internal/ui"
	"github.com/muurk/maptools/internal/world"
)

// Step is how far one arrow key press moves a point, in meters.
const Step = 10.0

const pointRadius = 8.0

type editorKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Next   key.Binding
	Add    key.Binding
	Delete key.Binding
	Rename key.Binding
	Save   key.Binding
	Back   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Add, k.Delete, k.Rename, k.Save, k.Back}
}

// FullHelp returns keybindings for the expanded help view
func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		k.ShortHelp(),
	}
}

func defaultKeyMap() editorKeyMap {
	return editorKeyMap{
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "move north")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "move south")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "move west")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "move east")),
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next point")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add point")),
		Delete: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete point")),
		Rename: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "rename")),
		Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// Editor edits one polygon in map space.
type Editor struct {
	name     string
	points   []geom.Pt
	selected int

	renaming bool
	input    textinput.Model

	keys editorKeyMap
	help help.Model
}

// NewEditor opens an editor on a copy of pts.
func NewEditor(name string, pts []geom.Pt) *Editor {
	input := textinput.New()
	input.Placeholder = "polygon name"
	input.CharLimit = 64
	input.Width = ui.PanelWidth - 4

	owned := make([]geom.Pt, len(pts))
	copy(owned, pts)

	return &Editor{
		name:   name,
		points: owned,
		input:  input,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

// Load reads input/<city>/polygons/<name>.poly and opens it projected onto m.
func Load(s persist.Store, m *world.Map, name string) (*Editor, error) {
	lls, err := s.ReadPolygon(persist.PolygonsDir(m.CityName()), name)
	if err != nil {
		return nil, err
	}
	return NewEditor(name, m.ProjectPolygon(lls).Points), nil
}

// Name implements the screen label used in logs.
func (e *Editor) Name() string { return "polygon(" + e.name + ")" }

// PolygonName returns the name the polygon will be saved under.
func (e *Editor) PolygonName() string { return e.name }

// Points returns a copy of the points being edited.
func (e *Editor) Points() []geom.Pt {
	out := make([]geom.Pt, len(e.points))
	copy(out, e.points)
	return out
}

// Event implements screen.Screen.
func (e *Editor) Event(ctx *screen.Context, msg tea.Msg) screen.Transition {
	if e.renaming {
		return e.renameEvent(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return screen.Keep()
	}

	switch {
	case key.Matches(keyMsg, e.keys.Back):
		return screen.Pop()
	case key.Matches(keyMsg, e.keys.Up):
		e.move(0, Step)
	case key.Matches(keyMsg, e.keys.Down):
		e.move(0, -Step)
	case key.Matches(keyMsg, e.keys.Left):
		e.move(-Step, 0)
	case key.Matches(keyMsg, e.keys.Right):
		e.move(Step, 0)
	case key.Matches(keyMsg, e.keys.Next):
		if len(e.points) > 0 {
			e.selected = (e.selected + 1) % len(e.points)
		}
	case key.Matches(keyMsg, e.keys.Add):
		e.add(ctx)
	case key.Matches(keyMsg, e.keys.Delete):
		e.delete()
	case key.Matches(keyMsg, e.keys.Rename):
		e.renaming = true
		e.input.SetValue(e.name)
		return screen.Keep().WithCmd(e.input.Focus())
	case key.Matches(keyMsg, e.keys.Save):
		return e.save(ctx)
	}
	return screen.Keep()
}

func (e *Editor) renameEvent(msg tea.Msg) screen.Transition {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			if v := strings.TrimSpace(e.input.Value()); v != "" {
				e.name = v
			}
			e.renaming = false
			e.input.Blur()
			return screen.Keep()
		case tea.KeyEsc:
			e.renaming = false
			e.input.Blur()
			return screen.Keep()
		}
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return screen.Keep().WithCmd(cmd)
}

func (e *Editor) move(dx, dy float64) {
	if len(e.points) == 0 {
		return
	}
	e.points[e.selected].X += dx
	e.points[e.selected].Y += dy
}

// add inserts a point after the selected one, at the cursor when the mouse
// is over the map and at the map center otherwise.
func (e *Editor) add(ctx *screen.Context) {
	var pt geom.Pt
	switch {
	case ctx.Cursor != nil:
		pt = *ctx.Cursor
	case ctx.Map != nil:
		b := ctx.Map.Bounds
		pt = geom.Pt{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
	}

	if len(e.points) == 0 {
		e.points = append(e.points, pt)
		e.selected = 0
		return
	}
	at := e.selected + 1
	e.points = append(e.points[:at], append([]geom.Pt{pt}, e.points[at:]...)...)
	e.selected = at
}

func (e *Editor) delete() {
	if len(e.points) == 0 {
		return
	}
	e.points = append(e.points[:e.selected], e.points[e.selected+1:]...)
	if e.selected >= len(e.points) && e.selected > 0 {
		e.selected--
	}
}

func (e *Editor) save(ctx *screen.Context) screen.Transition {
	if len(e.points) < 3 {
		return screen.Keep().WithNotice(fmt.Sprintf("%s needs at least 3 points to save", e.name))
	}

	lls := make([]geom.LonLat, len(e.points))
	for i, pt := range e.points {
		lls[i] = ctx.Map.Unproject(pt)
	}

	category := persist.PolygonsDir(ctx.Map.CityName())
	if err := ctx.Store.WritePolygon(category, e.name, lls); err != nil {
		logging.Warn("Polygon save failed", zap.String("name", e.name), zap.Error(err))
		return screen.Keep().WithNotice(fmt.Sprintf("Saving %s failed: %v", e.name, err))
	}

	logging.Info("Polygon saved",
		zap.String("name", e.name),
		zap.String("category", category),
		zap.Int("points", len(lls)),
	)
	return screen.Keep().WithNotice(fmt.Sprintf("Saved %s", e.name))
}

// Draw implements screen.Screen.
func (e *Editor) Draw(r render.Renderer, ctx *screen.Context) {
	if len(e.points) >= 3 {
		r.DrawPolygon(render.Purple.WithAlpha(0.5), geom.Polygon{Points: e.points})
	}
	for i, pt := range e.points {
		c := render.Highlight
		if i == e.selected {
			c = render.Selection
		}
		r.DrawCircle(c, geom.Circle{Center: pt, Radius: pointRadius})
	}

	lines := []string{
		ui.RenderTitle("Polygon Editor"),
		"Name: " + e.name,
		fmt.Sprintf("Points: %d", len(e.points)),
	}
	if len(e.points) > 0 {
		lines = append(lines, fmt.Sprintf("Selected: #%d %s", e.selected+1, e.points[e.selected]))
	}
	if e.renaming {
		lines = append(lines, "", e.input.View())
	}
	lines = append(lines, "", e.help.View(e.keys))

	r.DrawPanel(ui.RenderPanel(strings.Join(lines, "\n")))
	screen.DrawOSD(r, ctx)
}

// DrawBaselayer implements screen.Screen.
func (e *Editor) DrawBaselayer() screen.Baselayer {
	return screen.DefaultMap
}
