package browser

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/maptools/internal/render"
	"github.com/muurk/maptools/internal/screen"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func mustBrowser(t *testing.T, records []string, actions ...Action) *Browser[string] {
	t.Helper()
	b, err := New(records, "Test", "Record", actions...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return b
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New([]string{}, "Trips Visualizer", "Trip")
	if !errors.Is(err, ErrNoRecords) {
		t.Errorf("New(empty) error = %v, want ErrNoRecords", err)
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		r := recover()
		if _, ok := r.(*screen.InvariantViolation); !ok {
			t.Errorf("MustNew(empty) panic = %#v, want *InvariantViolation", r)
		}
	}()
	MustNew[int](nil, "Test", "Record")
}

func TestAdvanceClamps(t *testing.T) {
	tests := []struct {
		name  string
		steps []Direction
		want  int
	}{
		{"previous at start stays", []Direction{Previous}, 0},
		{"next twice", []Direction{Next, Next}, 2},
		{"next past end stays", []Direction{Next, Next, Next, Next}, 2},
		{"next then previous", []Direction{Next, Next, Next, Previous}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBrowser(t, []string{"A", "B", "C"})
			for _, d := range tt.steps {
				b.Advance(d)
			}
			if idx, _ := b.Current(); idx != tt.want {
				t.Errorf("Current() index = %d, want %d", idx, tt.want)
			}
		})
	}
}

func TestSingleRecordNeverMoves(t *testing.T) {
	b := mustBrowser(t, []string{"only"})
	b.Advance(Next)
	b.Advance(Previous)
	if idx, rec := b.Current(); idx != 0 || rec != "only" {
		t.Errorf("Current() = %d, %q, want 0, only", idx, rec)
	}
}

func TestCurrentIsStable(t *testing.T) {
	b := mustBrowser(t, []string{"A", "B", "C"})
	b.Advance(Next)
	i1, r1 := b.Current()
	i2, r2 := b.Current()
	if i1 != i2 || r1 != r2 {
		t.Error("Current() should not change state")
	}
	if r1 != "B" {
		t.Errorf("Current() = %q, want B", r1)
	}
}

func TestRecordsAreCopied(t *testing.T) {
	records := []string{"A", "B"}
	b := mustBrowser(t, records)
	records[0] = "Z"
	if _, rec := b.Current(); rec != "A" {
		t.Errorf("Current() = %q, caller mutation leaked into the browser", rec)
	}
}

func TestEventNavigation(t *testing.T) {
	b := mustBrowser(t, []string{"A", "B", "C", "D"})

	steps := []struct {
		msg  tea.Msg
		want int
	}{
		{keyRight, 1},
		{keyRunes("l"), 2},
		{keyLeft, 1},
		{keyRunes("G"), 3},
		{keyRunes("n"), 3},
		{keyRunes("g"), 0},
		{tea.WindowSizeMsg{Width: 10}, 0},
	}
	for i, s := range steps {
		b.Event(s.msg)
		if idx, _ := b.Current(); idx != s.want {
			t.Fatalf("step %d: index = %d, want %d", i, idx, s.want)
		}
	}
}

func TestActionFiredOnlyInItsCycle(t *testing.T) {
	b := mustBrowser(t, []string{"A", "B"}, NewAction("quit", "esc"))

	if !b.Event(keyEsc) {
		t.Error("Event(esc) should be consumed")
	}
	if !b.ActionFired("quit") {
		t.Error("ActionFired(quit) = false after esc")
	}

	b.Event(keyRight)
	if b.ActionFired("quit") {
		t.Error("ActionFired(quit) should reset on the next cycle")
	}
	if b.ActionFired("nonexistent") {
		t.Error("unregistered action should never fire")
	}
}

func TestActionsTakePrecedence(t *testing.T) {
	b := mustBrowser(t, []string{"A", "B"}, NewAction("peek", "n"))
	b.Event(keyRunes("n"))
	if !b.ActionFired("peek") {
		t.Error("action bound to n should fire")
	}
	if idx, _ := b.Current(); idx != 0 {
		t.Errorf("index = %d, navigation should not run when an action matched", idx)
	}
}

func TestPositionUsesSeparators(t *testing.T) {
	records := make([]int, 1500)
	b, err := New(records, "Big", "Trip")
	if err != nil {
		t.Fatal(err)
	}
	b.Last()
	if got := b.Position(); got != "Trip 1,500/1,500" {
		t.Errorf("Position() = %q, want %q", got, "Trip 1,500/1,500")
	}
}

func TestDraw(t *testing.T) {
	b := mustBrowser(t, []string{"A", "B", "C"}, NewAction("quit", "esc"))
	b.Advance(Next)

	var r render.Recorder
	b.Draw(&r, []string{"Mode: Walk"})

	panels := r.Filter("panel")
	if len(panels) != 1 {
		t.Fatalf("Draw() produced %d panels, want 1", len(panels))
	}
	for _, want := range []string{"Record 2/3", "Mode: Walk", "quit"} {
		if !strings.Contains(panels[0].Text, want) {
			t.Errorf("panel missing %q:\n%s", want, panels[0].Text)
		}
	}
}
