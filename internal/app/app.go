// Package app hosts the screen stack inside a Bubble Tea program.
//
// The Model owns the Stack and the shared screen.Context. Each message goes
// to the top screen, the returned transition is applied, and View draws the
// stack from the top screen's baselayer upward.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/maptools/internal/geom"
	"github.com/muurk/maptools/internal/logging"
	"github.com/muurk/maptools/internal/render"
	"github.com/muurk/maptools/internal/screen"
	"github.com/muurk/maptools/internal/ui"
)

// Where the map starts inside the application container: one column of
// outer border, and the border plus the two-line header above it.
const (
	mapOriginX = 1
	mapOriginY = 3
)

// FrameSink receives a copy of every rendered frame.
type FrameSink interface {
	Publish(frame string)
}

type globalKeyMap struct {
	Quit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k globalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k globalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Model is the top-level Bubble Tea model.
type Model struct {
	stack *screen.Stack
	ctx   *screen.Context

	Width  int
	Height int

	notice string
	sink   FrameSink

	help help.Model
	keys globalKeyMap
}

// Option configures a Model.
type Option func(*Model)

// WithMirror publishes every frame to sink.
func WithMirror(sink FrameSink) Option {
	return func(m *Model) { m.sink = sink }
}

// WithSize overrides the initial terminal size.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.Width = width
		m.Height = height
	}
}

// New creates a host with root as the only screen.
func New(root screen.Screen, ctx *screen.Context, opts ...Option) Model {
	w, h := ui.GetTerminalSize()
	m := Model{
		stack:  screen.NewStack(root),
		ctx:    ctx,
		Width:  w,
		Height: h,
		help:   help.New(),
		keys: globalKeyMap{
			Quit: key.NewBinding(
				key.WithKeys("ctrl+c"),
				key.WithHelp("ctrl+c", "quit"),
			),
		},
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Stack exposes the screen stack.
func (m Model) Stack() *screen.Stack { return m.stack }

// Context exposes the shared screen context.
func (m Model) Context() *screen.Context { return m.ctx }

// Notice returns the diagnostic currently shown in the footer.
func (m Model) Notice() string { return m.notice }

func enter() tea.Msg { return screen.EnterMsg{} }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return enter
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		// Notices stay up until the next key press.
		m.notice = ""

	case tea.MouseMsg:
		m.trackMouse(msg)
	}

	t := m.stack.Top().Event(m.ctx, msg)
	return m.apply(t)
}

// apply performs one transition and schedules the follow-up work.
func (m Model) apply(t screen.Transition) (tea.Model, tea.Cmd) {
	if t.Notice != "" {
		m.notice = t.Notice
		logging.LogNotice(t.Notice)
	}

	before := m.stack.Top()
	quit := m.stack.Apply(t)
	after := m.stack.Top()

	if t.Kind != screen.KindKeep {
		logging.LogTransition(t.Kind.String(), screen.Name(before), screen.Name(after), m.stack.Len())
	}
	if quit {
		logging.Info("Session ended", zap.String("map", m.mapName()))
		return m, tea.Quit
	}

	cmds := []tea.Cmd{t.Cmd}
	if after != before {
		cmds = append(cmds, enter)
	}

	if m.sink != nil {
		m.sink.Publish(m.Frame())
	}
	return m, tea.Batch(cmds...)
}

// canvas sizes a fresh canvas to the current map area.
func (m Model) canvas() *render.Canvas {
	w, h := ui.MapArea(m.Width, m.Height)
	bounds := geom.Bounds{MaxX: 1, MaxY: 1}
	if m.ctx.Map != nil {
		bounds = m.ctx.Map.Bounds
	}
	return render.NewCanvas(w, h, bounds)
}

func (m Model) trackMouse(msg tea.MouseMsg) {
	c := m.canvas()
	x, y := msg.X-mapOriginX, msg.Y-mapOriginY
	w, h := c.Size()
	inside := x >= 0 && y >= 0 && x < w && y < h
	m.ctx.MoveCursor(c.ToWorld(x, y), inside)
}

func (m Model) mapName() string {
	if m.ctx.Map == nil {
		return ""
	}
	return m.ctx.Map.GetName()
}

// Frame renders the map area and panels without the surrounding chrome.
func (m Model) Frame() string {
	c := m.canvas()
	screens := m.stack.Screens()
	m.draw(c, screens, len(screens)-1)
	return c.Frame()
}

// draw renders screens[i] on top of whatever its baselayer asks for.
func (m Model) draw(r render.Renderer, screens []screen.Screen, i int) {
	s := screens[i]
	switch s.DrawBaselayer() {
	case screen.DefaultMap:
		DrawMap(r, m.ctx)
	case screen.PreviousScreen:
		if i > 0 {
			m.draw(r, screens, i-1)
		} else {
			DrawMap(r, m.ctx)
		}
	case screen.Custom:
	}
	s.Draw(r, m.ctx)
}

// View implements tea.Model.
func (m Model) View() string {
	footer := m.help.View(m.keys)
	if m.notice != "" {
		footer = ui.RenderNotice(m.notice)
	}
	title := m.mapName()
	if m.ctx.Map != nil && m.ctx.Map.City != "" {
		title = fmt.Sprintf("%s (%s)", title, m.ctx.Map.City)
	}
	return ui.RenderApplicationContainer(m.Frame(), title, footer, m.Width, m.Height)
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI error: %w", err)
	}
	return nil
}
