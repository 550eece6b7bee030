// Package render defines the drawing contract screens use and a terminal
// implementation of it.
//
// Screens never write to the terminal directly. They describe a frame by
// calling a Renderer: map-space shapes (polygons, circles, lines) and
// pre-styled text panels. Canvas rasterizes shapes onto a character grid
// and lays the panels out beside it; Recorder keeps the calls for tests.
package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/maptools/internal/geom"
)

// Color is a terminal color plus an opacity used to pick a shading glyph.
type Color struct {
	Value lipgloss.Color
	Alpha float64
}

// RGB returns an opaque color.
func RGB(hex string) Color {
	return Color{Value: lipgloss.Color(hex), Alpha: 1}
}

// WithAlpha returns the same color at a different opacity.
func (c Color) WithAlpha(alpha float64) Color {
	c.Alpha = alpha
	return c
}

// Map palette
var (
	Red          = RGB("#FF5555")
	Blue         = RGB("#5C9DFF")
	Grass        = RGB("#1F3A1F")
	BuildingGray = RGB("#8A8A8A")
	RoadGray     = RGB("#4A4A4A")
	Highlight    = RGB("#43BF6D")
	Selection    = RGB("#FFA500")
	Purple       = RGB("#7D56F4")
)

// Renderer is what a screen draws into. Map shapes are in map-space meters.
type Renderer interface {
	// Clear fills the map area with a background color.
	Clear(c Color)
	DrawPolygon(c Color, p geom.Polygon)
	DrawCircle(c Color, circle geom.Circle)
	DrawLine(c Color, thickness float64, l geom.Line)
	// DrawPanel adds a pre-styled block of text beside the map.
	DrawPanel(content string)
	// DrawOSD sets the one-line on-screen display under the map.
	DrawOSD(text string)
}
