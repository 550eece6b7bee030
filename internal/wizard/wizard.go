// Package wizard implements the modal "choose one, then act" dialog used by
// the dev-tools launcher.
//
// A Wizard asks a provider for candidate names when it is presented, lets
// the user pick one from a filterable list, and hands the choice to a
// continuation that decides the stack transition. Cancelling pops the
// wizard. A continuation error pops it with a notice instead of failing.
package wizard

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/maptools/internal/logging"
	"github.com/muurk/maptools/internal/render"
	"github.com/muurk/maptools/internal/screen"
	"github.com/muurk/maptools/internal/ui"
)

// Candidates lists the choices on offer. It runs each time the wizard is
// presented or refreshed.
type Candidates func(ctx *screen.Context) ([]string, error)

// Continuation turns the chosen name into a stack transition.
type Continuation func(ctx *screen.Context, choice string) (screen.Transition, error)

const listHeight = 14

type keyMap struct {
	Choose  key.Binding
	Cancel  key.Binding
	Refresh key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
	}
}

// choiceItem is one candidate name in the list.
type choiceItem string

func (c choiceItem) FilterValue() string { return string(c) }

// choiceDelegate renders candidates one per line.
type choiceDelegate struct{}

func (d choiceDelegate) Height() int { return 1 }

func (d choiceDelegate) Spacing() int { return 0 }

func (d choiceDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d choiceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	c, ok := item.(choiceItem)
	if !ok {
		return
	}
	fmt.Fprint(w, ui.RenderMenuItem(string(c), "", index == m.Index()))
}

// Wizard is a modal chooser screen.
type Wizard struct {
	prompt     string
	candidates Candidates
	then       Continuation

	list      list.Model
	keys      keyMap
	presented bool
}

// New creates a wizard. The provider is not called until the wizard is
// presented.
func New(prompt string, candidates Candidates, then Continuation) *Wizard {
	l := list.New(nil, choiceDelegate{}, ui.PanelWidth, listHeight)
	l.Title = prompt
	l.Styles.Title = ui.TitleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	keys := defaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Choose, keys.Cancel}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Refresh}
	}

	return &Wizard{
		prompt:     prompt,
		candidates: candidates,
		then:       then,
		list:       l,
		keys:       keys,
	}
}

// Name implements the screen label used in logs.
func (w *Wizard) Name() string {
	return "wizard(" + w.prompt + ")"
}

// Prompt returns the question the wizard asks.
func (w *Wizard) Prompt() string {
	return w.prompt
}

// Choices returns the candidates currently listed.
func (w *Wizard) Choices() []string {
	items := w.list.Items()
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, string(it.(choiceItem)))
	}
	return out
}

// Event implements screen.Screen.
func (w *Wizard) Event(ctx *screen.Context, msg tea.Msg) screen.Transition {
	if _, ok := msg.(screen.EnterMsg); ok || !w.presented {
		if err := w.load(ctx); err != nil {
			return w.fail(err)
		}
		if ok {
			return screen.Keep()
		}
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		state := w.list.FilterState()
		switch {
		case key.Matches(keyMsg, w.keys.Refresh):
			if err := w.load(ctx); err != nil {
				return w.fail(err)
			}
			return screen.Keep()

		case state == list.Unfiltered && key.Matches(keyMsg, w.keys.Cancel):
			logging.Debug("Wizard cancelled", zap.String("prompt", w.prompt))
			return screen.Pop()

		case state != list.Filtering && key.Matches(keyMsg, w.keys.Choose):
			choice, ok := w.list.SelectedItem().(choiceItem)
			if !ok {
				return screen.Keep()
			}
			return w.resolve(ctx, string(choice))
		}
	}

	var cmd tea.Cmd
	w.list, cmd = w.list.Update(msg)
	return screen.Keep().WithCmd(cmd)
}

// load asks the provider for a fresh candidate list.
func (w *Wizard) load(ctx *screen.Context) error {
	w.presented = true

	names, err := w.candidates(ctx)
	if err != nil {
		return fmt.Errorf("listing choices: %w", err)
	}

	items := make([]list.Item, len(names))
	for i, n := range names {
		items[i] = choiceItem(n)
	}
	w.list.ResetFilter()
	w.list.SetItems(items)
	w.list.Select(0)

	logging.Debug("Wizard presented",
		zap.String("prompt", w.prompt),
		zap.Int("candidates", len(names)),
	)
	return nil
}

// resolve runs the continuation. Errors and panics become a notice; an
// *screen.InvariantViolation is a bug and propagates.
func (w *Wizard) resolve(ctx *screen.Context, choice string) (t screen.Transition) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var iv *screen.InvariantViolation
		if err, ok := r.(error); ok && errors.As(err, &iv) {
			panic(r)
		}
		t = w.fail(fmt.Errorf("%s: %v", choice, r))
	}()

	t, err := w.then(ctx, choice)
	if err != nil {
		return w.fail(err)
	}
	return t
}

func (w *Wizard) fail(err error) screen.Transition {
	notice := fmt.Sprintf("%s: %v", w.prompt, err)
	logging.Warn("Wizard failed",
		zap.String("prompt", w.prompt),
		zap.Error(err),
	)
	return screen.Pop().WithNotice(notice)
}

// Draw implements screen.Screen.
func (w *Wizard) Draw(r render.Renderer, ctx *screen.Context) {
	r.DrawPanel(ui.RenderModal(w.list.View()))
}

// DrawBaselayer implements screen.Screen.
func (w *Wizard) DrawBaselayer() screen.Baselayer {
	return screen.PreviousScreen
}
