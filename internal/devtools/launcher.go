// Package devtools implements the dev-tools launcher: the root menu of
// maptools. Each entry either opens a tool directly or pushes a wizard that
// picks a named object first and then swaps itself for the tool.
package devtools

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/maptools/internal/dataset"
	"github.com/muurk/maptools/internal/logging"
	"github.com/muurk/maptools/internal/persist"
	"github.com/muurk/maptools/internal/polygon"
	"github.com/muurk/maptools/internal/render"
	"github.com/muurk/maptools/internal/scenario"
	"github.com/muurk/maptools/internal/screen"
	"github.com/muurk/maptools/internal/trips"
	"github.com/muurk/maptools/internal/ui"
	"github.com/muurk/maptools/internal/wizard"
)

// Button ids
const (
	Close          = "close"
	ChangeMap      = "change map"
	EditPolygon    = "edit a polygon"
	DrawPolygon    = "draw a polygon"
	LoadScenario   = "load scenario"
	ViewDataset    = "view dataset"
	VisualizeTrips = "visualize trips"
)

// NewPolygonName is the placeholder name for a polygon drawn from scratch.
const NewPolygonName = "name goes here"

type button struct {
	id     string
	hotkey key.Binding
}

func newButton(id string, keys ...string) button {
	return button{
		id:     id,
		hotkey: key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], id)),
	}
}

type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Choose}
}

// FullHelp returns keybindings for the expanded help view
func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Launcher is the dev-tools menu.
type Launcher struct {
	buttons  []button
	selected int
	keys     menuKeyMap
	help     help.Model
}

// NewLauncher creates the menu.
func NewLauncher() *Launcher {
	return &Launcher{
		buttons: []button{
			newButton(Close, "esc", "q"),
			newButton(ChangeMap, "c"),
			newButton(EditPolygon, "e"),
			newButton(DrawPolygon, "p"),
			newButton(LoadScenario, "w"),
			newButton(ViewDataset, "k"),
			newButton(VisualizeTrips, "t"),
		},
		keys: menuKeyMap{
			Up: key.NewBinding(
				key.WithKeys("up"),
				key.WithHelp("↑", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down"),
				key.WithHelp("↓", "down"),
			),
			Choose: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "choose"),
			),
		},
		help: help.New(),
	}
}

// Name implements the screen label used in logs.
func (l *Launcher) Name() string { return "devtools" }

// Event implements screen.Screen.
func (l *Launcher) Event(ctx *screen.Context, msg tea.Msg) screen.Transition {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return screen.Keep()
	}

	switch {
	case key.Matches(keyMsg, l.keys.Up):
		if l.selected > 0 {
			l.selected--
		}
		return screen.Keep()
	case key.Matches(keyMsg, l.keys.Down):
		if l.selected < len(l.buttons)-1 {
			l.selected++
		}
		return screen.Keep()
	case key.Matches(keyMsg, l.keys.Choose):
		return l.Click(ctx, l.buttons[l.selected].id)
	}

	for _, b := range l.buttons {
		if key.Matches(keyMsg, b.hotkey) {
			return l.Click(ctx, b.id)
		}
	}
	return screen.Keep()
}

// Click runs a menu entry. An id that is not on the menu is a bug.
func (l *Launcher) Click(ctx *screen.Context, id string) screen.Transition {
	logging.Debug("Launcher button", zap.String("button", id))

	switch id {
	case Close:
		return screen.Quit()

	case ChangeMap:
		return screen.Push(wizard.New("Change to which map?",
			listIn(func(*screen.Context) string { return persist.MapsDir() }),
			changeMap))

	case EditPolygon:
		return screen.Push(wizard.New("Edit which polygon?",
			listIn(func(ctx *screen.Context) string { return persist.PolygonsDir(ctx.Map.CityName()) }),
			editPolygon))

	case DrawPolygon:
		return screen.Push(polygon.NewEditor(NewPolygonName, nil))

	case LoadScenario:
		return screen.Push(wizard.New("Load which scenario?",
			listIn(func(ctx *screen.Context) string { return persist.ScenariosDir(ctx.Map.GetName()) }),
			loadScenario))

	case ViewDataset:
		return screen.Push(wizard.New("View which dataset?",
			listIn(func(ctx *screen.Context) string { return persist.DatasetsDir(ctx.Map.CityName()) }),
			viewDataset))

	case VisualizeTrips:
		return screen.Push(wizard.New("Visualize trips from which scenario?",
			listIn(func(ctx *screen.Context) string { return persist.ScenariosDir(ctx.Map.GetName()) }),
			visualizeTrips))
	}

	screen.Violation("devtools.Click", "unknown button %q", id)
	return screen.Keep()
}

// listIn lists a category that depends on the current map.
func listIn(category func(*screen.Context) string) wizard.Candidates {
	return func(ctx *screen.Context) ([]string, error) {
		return ctx.Store.ListNamedObjects(category(ctx))
	}
}

func changeMap(ctx *screen.Context, name string) (screen.Transition, error) {
	m, err := persist.LoadMap(ctx.Store, name)
	if err != nil {
		return screen.Keep(), fmt.Errorf("bad map %s: %w", name, err)
	}
	logging.Info("Map changed", zap.String("from", ctx.Map.GetName()), zap.String("to", m.GetName()))
	ctx.Map = m
	ctx.Selection = nil
	return screen.PopThenReplace(NewLauncher()), nil
}

func editPolygon(ctx *screen.Context, name string) (screen.Transition, error) {
	e, err := polygon.Load(ctx.Store, ctx.Map, name)
	if err != nil {
		return screen.Keep(), fmt.Errorf("bad polygon %s: %w", name, err)
	}
	return screen.Replace(e), nil
}

func loadScenario(ctx *screen.Context, name string) (screen.Transition, error) {
	sc, err := scenario.Load(ctx.Store, ctx.Map.GetName(), name)
	if err != nil {
		return screen.Keep(), fmt.Errorf("bad scenario %s: %w", name, err)
	}
	return screen.Replace(scenario.NewViewer(sc)), nil
}

func viewDataset(ctx *screen.Context, name string) (screen.Transition, error) {
	d, err := dataset.Load(ctx.Store, ctx.Map.CityName(), name)
	if err != nil {
		return screen.Keep(), fmt.Errorf("bad dataset %s: %w", name, err)
	}
	v, err := dataset.NewViewer(ctx.Map, d)
	if err != nil {
		return screen.Keep(), err
	}
	return screen.Replace(v), nil
}

func visualizeTrips(ctx *screen.Context, name string) (screen.Transition, error) {
	sc, err := scenario.Load(ctx.Store, ctx.Map.GetName(), name)
	if err != nil {
		return screen.Keep(), fmt.Errorf("bad scenario %s: %w", name, err)
	}
	v, err := trips.NewVisualizer(ctx.Map, sc.Trips())
	if err != nil {
		return screen.Keep(), err
	}
	return screen.Replace(v), nil
}

// Draw implements screen.Screen.
func (l *Launcher) Draw(r render.Renderer, ctx *screen.Context) {
	lines := []string{ui.RenderTitle("Dev Tools")}
	for i, b := range l.buttons {
		lines = append(lines, ui.RenderMenuItem(b.id, b.hotkey.Help().Key, i == l.selected))
	}
	lines = append(lines, "", l.help.View(l.keys))

	r.DrawPanel(ui.RenderPanel(strings.Join(lines, "\n")))
	screen.DrawOSD(r, ctx)
}

// DrawBaselayer implements screen.Screen.
func (l *Launcher) DrawBaselayer() screen.Baselayer {
	return screen.DefaultMap
}
