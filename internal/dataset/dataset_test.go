package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/maptools/internal/browser"
	"github.com/muurk/maptools/internal/persist"
	"github.com/muurk/maptools/internal/render"
	"github.com/muurk/maptools/internal/screen"
	"github.com/muurk/maptools/internal/world/worldtest"
)

const parcels = `name: parcels
shapes:
  - points: [{lon: -122.30, lat: 47.64}]
    attributes: {use: park, owner: city}
  - points:
      - {lon: -122.305, lat: 47.635}
      - {lon: -122.300, lat: 47.635}
      - {lon: -122.300, lat: 47.640}
    attributes: {use: residential}
  - points: [{lon: -122.31, lat: 47.63}, {lon: -122.29, lat: 47.65}]
`

func loadParcels(t *testing.T) *Dataset {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, "input", "seattle", "datasets", "parcels.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(parcels), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(persist.NewFS(root), "seattle", "parcels")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return d
}

func TestLoadAndProject(t *testing.T) {
	d := loadParcels(t)
	if len(d.Shapes) != 3 {
		t.Fatalf("Load() shapes = %d, want 3", len(d.Shapes))
	}

	shapes := Project(worldtest.Montlake(), d)
	center := shapes[0].Points[0]
	if center.X < 499 || center.X > 501 || center.Y < 499 || center.Y > 501 {
		t.Errorf("projected point = %v, want the map center", center)
	}
}

func TestLoadRejectsEmptyShape(t *testing.T) {
	d := &Dataset{Shapes: []Shape{{}}}
	if err := d.Validate(); err == nil {
		t.Error("Validate() should reject a shape without points")
	}
}

func TestDescribeSortsAttributes(t *testing.T) {
	got := Projected{Attributes: map[string]string{"use": "park", "owner": "city"}}.Describe()
	if len(got) != 2 || got[0] != "owner = city" || got[1] != "use = park" {
		t.Errorf("Describe() = %v", got)
	}
}

func TestNewViewerEmpty(t *testing.T) {
	_, err := NewViewer(worldtest.Montlake(), &Dataset{Name: "empty"})
	if !errors.Is(err, browser.ErrNoRecords) {
		t.Errorf("NewViewer() error = %v, want ErrNoRecords", err)
	}
}

func TestViewerDrawAndQuit(t *testing.T) {
	m := worldtest.Montlake()
	v, err := NewViewer(m, loadParcels(t))
	if err != nil {
		t.Fatal(err)
	}
	ctx := &screen.Context{Map: m}

	var r render.Recorder
	v.Draw(&r, ctx)
	if got := len(r.Filter("circle")); got != 1 {
		t.Errorf("drew %d circles, want 1 for the point shape", got)
	}
	if got := len(r.Filter("polygon")); got != 1 {
		t.Errorf("drew %d polygons, want 1", got)
	}
	if got := len(r.Filter("line")); got != 1 {
		t.Errorf("drew %d lines, want 1", got)
	}
	panel := r.Filter("panel")[0].Text
	if !strings.Contains(panel, "Shape 1/3") || !strings.Contains(panel, "use = park") {
		t.Errorf("panel = %q", panel)
	}

	v.Event(ctx, tea.KeyMsg{Type: tea.KeyRight})
	if idx, _ := v.Current(); idx != 1 {
		t.Errorf("Current() = %d after right, want 1", idx)
	}

	if tr := v.Event(ctx, tea.KeyMsg{Type: tea.KeyEsc}); tr.Kind != screen.KindPop {
		t.Errorf("Event(esc) = %v, want pop", tr.Kind)
	}
}
