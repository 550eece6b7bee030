package devtools

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/maptools/internal/dataset"
	"github.com/muurk/maptools/internal/persist"
	"github.com/muurk/maptools/internal/polygon"
	"github.com/muurk/maptools/internal/render"
	"github.com/muurk/maptools/internal/scenario"
	"github.com/muurk/maptools/internal/screen"
	"github.com/muurk/maptools/internal/trips"
	"github.com/muurk/maptools/internal/wizard"
	"github.com/muurk/maptools/internal/world/worldtest"
)

const riversideYAML = `scenario_name: riverside
map_name: montlake
people:
  - id: 0
    trips:
      - id: 0
        from: {kind: building, id: 1}
        to: {kind: building, id: 2}
        depart_at: 7h30m
        purpose: [Home, Work]
        mode: Walk
        trip_time: 10m
        trip_dist: 1200
`

const ballardYAML = `name: ballard
city: seattle
buildings:
  - id: 1
    points: [{x: 0, y: 0}, {x: 50, y: 0}, {x: 50, y: 50}]
`

const parcelsYAML = `name: parcels
shapes:
  - points: [{lon: -122.30, lat: 47.64}]
    attributes: {use: park}
`

const downtownPoly = `downtown
1
   -1.2300000E+02   4.7640000E+01
   -1.2229000E+02   4.7640000E+01
   -1.2229000E+02   4.7650000E+01
END
END
`

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// session drives a stack the way the host does: every key goes to the top
// screen, and a screen that becomes the top is told so.
type session struct {
	t     *testing.T
	ctx   *screen.Context
	stack *screen.Stack
	last  screen.Transition
	quit  bool
}

func newSession(t *testing.T) *session {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "maps/ballard.yaml", ballardYAML)
	writeFile(t, root, "scenarios/montlake/riverside.yaml", riversideYAML)
	writeFile(t, root, "scenarios/montlake/empty.yaml", "scenario_name: empty\nmap_name: montlake\n")
	writeFile(t, root, "input/seattle/polygons/downtown.poly", downtownPoly)
	writeFile(t, root, "input/seattle/polygons/broken_file.poly", "broken_file\n1\nnot a coordinate\nEND\nEND\n")
	writeFile(t, root, "input/seattle/datasets/parcels.yaml", parcelsYAML)

	return &session{
		t:     t,
		ctx:   &screen.Context{Map: worldtest.Montlake(), Store: persist.NewFS(root)},
		stack: screen.NewStack(NewLauncher()),
	}
}

func (s *session) send(msg tea.Msg) {
	s.t.Helper()
	top := s.stack.Top()
	s.last = s.stack.Top().Event(s.ctx, msg)
	s.quit = s.stack.Apply(s.last)
	if !s.quit && s.stack.Top() != top {
		s.stack.Apply(s.stack.Top().Event(s.ctx, screen.EnterMsg{}))
	}
}

func (s *session) press(keys ...string) {
	s.t.Helper()
	for _, k := range keys {
		switch k {
		case "esc":
			s.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "enter":
			s.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "down":
			s.send(tea.KeyMsg{Type: tea.KeyDown})
		case "up":
			s.send(tea.KeyMsg{Type: tea.KeyUp})
		default:
			s.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

func TestCancelWizardReturnsToMenu(t *testing.T) {
	s := newSession(t)
	launcher := s.stack.Top()

	s.press("w")
	if _, ok := s.stack.Top().(*wizard.Wizard); !ok || s.stack.Len() != 2 {
		t.Fatalf("after w: top = %T, len = %d", s.stack.Top(), s.stack.Len())
	}

	s.press("esc")
	if s.stack.Len() != 1 || s.stack.Top() != launcher {
		t.Errorf("after cancel: len = %d, want the original menu alone", s.stack.Len())
	}
}

func TestLoadScenarioReplacesWizard(t *testing.T) {
	s := newSession(t)
	launcher := s.stack.Top()

	s.press("w")
	w := s.stack.Top().(*wizard.Wizard)
	if got := w.Choices(); len(got) != 2 || got[0] != "empty" || got[1] != "riverside" {
		t.Fatalf("Choices() = %v", got)
	}

	s.press("down", "enter")
	screens := s.stack.Screens()
	if len(screens) != 2 || screens[0] != launcher {
		t.Fatalf("stack = %v, want [menu, viewer]", screens)
	}
	v, ok := screens[1].(*scenario.Viewer)
	if !ok || v.Scenario().Name != "riverside" {
		t.Errorf("top = %T, want the riverside viewer", screens[1])
	}
}

func TestEditBrokenPolygonPopsWithNotice(t *testing.T) {
	s := newSession(t)
	launcher := s.stack.Top()

	s.press("e")
	w := s.stack.Top().(*wizard.Wizard)
	if got := w.Choices(); len(got) != 2 || got[0] != "broken_file" {
		t.Fatalf("Choices() = %v", got)
	}

	s.press("enter")
	if s.stack.Len() != 1 || s.stack.Top() != launcher {
		t.Errorf("after bad polygon: len = %d, want menu only", s.stack.Len())
	}
	if !strings.Contains(s.last.Notice, "bad polygon broken_file") {
		t.Errorf("Notice = %q, want the bad polygon reported", s.last.Notice)
	}
}

func TestEditPolygon(t *testing.T) {
	s := newSession(t)
	s.press("e", "down", "enter")

	e, ok := s.stack.Top().(*polygon.Editor)
	if !ok || s.stack.Len() != 2 {
		t.Fatalf("top = %T, len = %d, want editor over menu", s.stack.Top(), s.stack.Len())
	}
	if e.PolygonName() != "downtown" || len(e.Points()) != 3 {
		t.Errorf("editor = %s with %d points", e.PolygonName(), len(e.Points()))
	}
}

func TestDrawPolygonPushesEmptyEditor(t *testing.T) {
	s := newSession(t)
	s.press("p")

	e, ok := s.stack.Top().(*polygon.Editor)
	if !ok || s.stack.Len() != 2 {
		t.Fatalf("top = %T, want editor pushed", s.stack.Top())
	}
	if e.PolygonName() != NewPolygonName || len(e.Points()) != 0 {
		t.Errorf("editor = %q with %d points, want a blank polygon", e.PolygonName(), len(e.Points()))
	}
}

func TestChangeMap(t *testing.T) {
	s := newSession(t)
	old := s.stack.Top()

	s.press("c", "enter")
	if s.stack.Len() != 1 {
		t.Fatalf("len = %d, want 1 after pop-then-replace", s.stack.Len())
	}
	if s.stack.Top() == old {
		t.Error("menu should be a fresh launcher")
	}
	if _, ok := s.stack.Top().(*Launcher); !ok {
		t.Errorf("top = %T, want *Launcher", s.stack.Top())
	}
	if s.ctx.Map.GetName() != "ballard" {
		t.Errorf("ctx.Map = %s, want ballard", s.ctx.Map.GetName())
	}
}

func TestViewDataset(t *testing.T) {
	s := newSession(t)
	s.press("k", "enter")
	if _, ok := s.stack.Top().(*dataset.Viewer); !ok || s.stack.Len() != 2 {
		t.Errorf("top = %T, len = %d, want dataset viewer over menu", s.stack.Top(), s.stack.Len())
	}
}

func TestVisualizeTrips(t *testing.T) {
	s := newSession(t)
	s.press("t", "down", "enter")
	if _, ok := s.stack.Top().(*trips.Visualizer); !ok {
		t.Fatalf("top = %T, want trips visualizer", s.stack.Top())
	}

	s.press("esc")
	if _, ok := s.stack.Top().(*Launcher); !ok || s.stack.Len() != 1 {
		t.Errorf("after esc: top = %T, len = %d", s.stack.Top(), s.stack.Len())
	}
}

func TestVisualizeTripsEmptyScenario(t *testing.T) {
	s := newSession(t)
	s.press("t", "enter")

	if s.stack.Len() != 1 {
		t.Errorf("len = %d, want the wizard popped", s.stack.Len())
	}
	if !strings.Contains(s.last.Notice, "no trips") {
		t.Errorf("Notice = %q, want no trips", s.last.Notice)
	}
}

func TestCloseQuits(t *testing.T) {
	s := newSession(t)
	s.press("esc")
	if !s.quit {
		t.Error("esc on the menu should quit")
	}
	if s.stack.Len() != 1 {
		t.Errorf("quit changed the stack, len = %d", s.stack.Len())
	}
}

func TestArrowsAndEnter(t *testing.T) {
	s := newSession(t)
	// close, change map, edit a polygon, draw a polygon
	s.press("down", "down", "down", "enter")
	if _, ok := s.stack.Top().(*polygon.Editor); !ok {
		t.Errorf("top = %T, want the editor from the fourth button", s.stack.Top())
	}
}

func TestUnknownButtonPanics(t *testing.T) {
	l := NewLauncher()
	defer func() {
		if _, ok := recover().(*screen.InvariantViolation); !ok {
			t.Error("unknown button should panic with *InvariantViolation")
		}
	}()
	l.Click(&screen.Context{}, "self destruct")
}

func TestDraw(t *testing.T) {
	l := NewLauncher()
	var r render.Recorder
	l.Draw(&r, &screen.Context{Map: worldtest.Montlake()})

	panel := r.Filter("panel")[0].Text
	for _, want := range []string{"Dev Tools", "load scenario", "visualize trips", "[esc]"} {
		if !strings.Contains(panel, want) {
			t.Errorf("menu missing %q", want)
		}
	}
}
