// Package browser implements a paginated viewer over a fixed, non-empty
// sequence of records.
//
// A Browser owns a private copy of its records and a current index that is
// always valid. Navigation is clamped at both ends. Screens register named
// actions on top of the navigation keys and ask, once per input cycle,
// whether an action fired.
package browser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/muurk/maptools/internal/render"
	"github.com/muurk/maptools/internal/screen"
	"github.com/muurk/maptools/internal/ui"
)

// ErrNoRecords is returned when a browser is created over nothing.
var ErrNoRecords = errors.New("no records to browse")

// Direction is a one-step move.
type Direction int

const (
	Next Direction = iota
	Previous
)

// Action is a named key binding a screen wants reported back.
type Action struct {
	Name    string
	Binding key.Binding
}

// NewAction binds keys to an action name. The first key is shown in help.
func NewAction(name string, keys ...string) Action {
	return Action{
		Name: name,
		Binding: key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(keys[0], name),
		),
	}
}

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	First   key.Binding
	Last    key.Binding
	Actions []key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return append([]key.Binding{k.Prev, k.Next}, k.Actions...)
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.First, k.Last}, k.Actions}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←", "prev"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
	}
}

// Browser pages through records one at a time.
type Browser[T any] struct {
	records []T
	idx     int
	title   string
	noun    string

	actions []Action
	fired   map[string]bool

	keys  keyMap
	help  help.Model
	print *message.Printer
}

// New creates a browser positioned on the first record. It fails with
// ErrNoRecords when records is empty.
func New[T any](records []T, title, noun string, actions ...Action) (*Browser[T], error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", title, ErrNoRecords)
	}

	owned := make([]T, len(records))
	copy(owned, records)

	keys := defaultKeyMap()
	for _, a := range actions {
		keys.Actions = append(keys.Actions, a.Binding)
	}

	return &Browser[T]{
		records: owned,
		title:   title,
		noun:    noun,
		actions: actions,
		fired:   make(map[string]bool),
		keys:    keys,
		help:    help.New(),
		print:   message.NewPrinter(language.English),
	}, nil
}

// MustNew is New for callers that treat an empty collection as a bug.
func MustNew[T any](records []T, title, noun string, actions ...Action) *Browser[T] {
	b, err := New(records, title, noun, actions...)
	if err != nil {
		screen.Violation("browser.New", "%v", err)
	}
	return b
}

// Current returns the current index and record.
func (b *Browser[T]) Current() (int, T) {
	return b.idx, b.records[b.idx]
}

// Len returns the number of records.
func (b *Browser[T]) Len() int {
	return len(b.records)
}

// Advance moves one record in dir, stopping at either end.
func (b *Browser[T]) Advance(dir Direction) {
	switch dir {
	case Next:
		if b.idx < len(b.records)-1 {
			b.idx++
		}
	case Previous:
		if b.idx > 0 {
			b.idx--
		}
	}
}

// First jumps to the first record.
func (b *Browser[T]) First() { b.idx = 0 }

// Last jumps to the last record.
func (b *Browser[T]) Last() { b.idx = len(b.records) - 1 }

// Event runs one input cycle. Registered actions win over navigation keys.
// It reports whether the message was consumed.
func (b *Browser[T]) Event(msg tea.Msg) bool {
	clear(b.fired)

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}

	for _, a := range b.actions {
		if key.Matches(keyMsg, a.Binding) {
			b.fired[a.Name] = true
			return true
		}
	}

	switch {
	case key.Matches(keyMsg, b.keys.Next):
		b.Advance(Next)
	case key.Matches(keyMsg, b.keys.Prev):
		b.Advance(Previous)
	case key.Matches(keyMsg, b.keys.First):
		b.First()
	case key.Matches(keyMsg, b.keys.Last):
		b.Last()
	default:
		return false
	}
	return true
}

// ActionFired reports whether the named action matched during the most
// recent Event.
func (b *Browser[T]) ActionFired(name string) bool {
	return b.fired[name]
}

// Position renders the pagination label, e.g. "Trip 1,024/52,311".
func (b *Browser[T]) Position() string {
	return b.print.Sprintf("%s %d/%d", b.noun, b.idx+1, len(b.records))
}

// Draw renders the browser panel: title, position, overlay lines and help.
func (b *Browser[T]) Draw(r render.Renderer, overlay []string) {
	lines := []string{
		ui.RenderTitle(b.title),
		b.Position(),
	}
	if len(overlay) > 0 {
		lines = append(lines, "", strings.Join(overlay, "\n"))
	}
	lines = append(lines, "", b.help.View(b.keys))

	r.DrawPanel(ui.RenderPanel(strings.Join(lines, "\n")))
}
