package scenario

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/muurk/maptools/internal/render"
	"github.com/muurk/maptools/internal/screen"
	"github.com/muurk/maptools/internal/trips"
	"github.com/muurk/maptools/internal/ui"
)

type viewerKeyMap struct {
	Trips key.Binding
	Up    key.Binding
	Down  key.Binding
	Back  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k viewerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Trips, k.Up, k.Down, k.Back}
}

// FullHelp returns keybindings for the expanded help view
func (k viewerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Viewer summarizes a scenario and opens the trip visualizer over it.
type Viewer struct {
	scenario *Scenario
	viewport viewport.Model
	keys     viewerKeyMap
	help     help.Model
}

// NewViewer creates a viewer for sc.
func NewViewer(sc *Scenario) *Viewer {
	vp := viewport.New(ui.PanelWidth, 12)
	vp.SetContent(summary(sc))

	return &Viewer{
		scenario: sc,
		viewport: vp,
		keys: viewerKeyMap{
			Trips: key.NewBinding(
				key.WithKeys("t"),
				key.WithHelp("t", "visualize trips"),
			),
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑", "scroll"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓", "scroll"),
			),
			Back: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "back"),
			),
		},
		help: help.New(),
	}
}

// Name implements the screen label used in logs.
func (v *Viewer) Name() string { return "scenario(" + v.scenario.Name + ")" }

// Scenario returns the scenario on display.
func (v *Viewer) Scenario() *Scenario { return v.scenario }

func summary(sc *Scenario) string {
	p := message.NewPrinter(language.English)
	all := sc.Trips()

	lines := []string{
		p.Sprintf("Map: %s", sc.Map),
		p.Sprintf("People: %d", len(sc.People)),
		p.Sprintf("Trips: %d", len(all)),
	}
	for _, mc := range sc.TripsByMode() {
		lines = append(lines, p.Sprintf("  %s: %d", mc.Mode, mc.Count))
	}
	return strings.Join(lines, "\n")
}

// Event implements screen.Screen.
func (v *Viewer) Event(ctx *screen.Context, msg tea.Msg) screen.Transition {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, v.keys.Back):
			return screen.Pop()
		case key.Matches(keyMsg, v.keys.Trips):
			vis, err := trips.NewVisualizer(ctx.Map, v.scenario.Trips())
			if err != nil {
				return screen.Keep().WithNotice(fmt.Sprintf("%s: %v", v.scenario.Name, err))
			}
			return screen.Push(vis)
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return screen.Keep().WithCmd(cmd)
}

// Draw implements screen.Screen.
func (v *Viewer) Draw(r render.Renderer, ctx *screen.Context) {
	content := strings.Join([]string{
		ui.RenderTitle("Scenario " + v.scenario.Name),
		v.viewport.View(),
		"",
		v.help.View(v.keys),
	}, "\n")
	r.DrawPanel(ui.RenderPanel(content))
	screen.DrawOSD(r, ctx)
}

// DrawBaselayer implements screen.Screen.
func (v *Viewer) DrawBaselayer() screen.Baselayer {
	return screen.DefaultMap
}
