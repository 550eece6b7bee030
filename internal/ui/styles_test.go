package ui

import (
	"strings"
	"testing"
)

func TestRenderMenuItem(t *testing.T) {
	selected := RenderMenuItem("load scenario", "w", true)
	if !strings.Contains(selected, "→") || !strings.Contains(selected, "load scenario") {
		t.Errorf("RenderMenuItem(selected) = %q", selected)
	}

	plain := RenderMenuItem("close", "esc", false)
	if strings.Contains(plain, "→") {
		t.Errorf("RenderMenuItem(unselected) = %q, should not carry the indicator", plain)
	}
	if !strings.Contains(plain, "[esc]") {
		t.Errorf("RenderMenuItem() = %q, want hotkey shown", plain)
	}
}

func TestRenderApplicationContainer(t *testing.T) {
	out := RenderApplicationContainer("body text", "montlake", "esc: back", 80, 24)

	for _, want := range []string{"MAPTOOLS", "montlake", "body text", "esc: back"} {
		if !strings.Contains(out, want) {
			t.Errorf("container missing %q", want)
		}
	}
	if lines := strings.Count(out, "\n") + 1; lines < 24 {
		t.Errorf("container has %d lines, want at least 24", lines)
	}
}

func TestMapArea(t *testing.T) {
	w, h := MapArea(120, 40)
	if w != 120-4-PanelWidth-3 || h != 33 {
		t.Errorf("MapArea(120, 40) = %d, %d", w, h)
	}

	w, h = MapArea(10, 10)
	if w < 10 || h < 5 {
		t.Errorf("MapArea() should never go below 10x5, got %d, %d", w, h)
	}
}
