package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/maptools/internal/geom"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

type cell struct {
	color Color
	set   bool
}

// Canvas is a Renderer that rasterizes map shapes onto a character grid.
type Canvas struct {
	width  int
	height int
	bounds geom.Bounds
	scale  float64 // meters per cell horizontally

	cells      []cell
	background *Color
	panels     []string
	osd        string
}

// NewCanvas creates a canvas of width x height cells showing bounds. The map
// keeps its aspect ratio and is anchored to the top-left corner.
func NewCanvas(width, height int, bounds geom.Bounds) *Canvas {
	width = max(width, 1)
	height = max(height, 1)

	scale := 1.0
	if bounds.Width() > 0 && bounds.Height() > 0 {
		scale = math.Max(bounds.Width()/float64(width), bounds.Height()/(float64(height)*cellAspect))
	}

	return &Canvas{
		width:  width,
		height: height,
		bounds: bounds,
		scale:  scale,
		cells:  make([]cell, width*height),
	}
}

// Size returns the grid dimensions in cells.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// ToCell maps a point to a grid cell. North is up.
func (c *Canvas) ToCell(pt geom.Pt) (int, int, bool) {
	x := int(math.Floor((pt.X - c.bounds.MinX) / c.scale))
	y := int(math.Floor((c.bounds.MaxY - pt.Y) / (c.scale * cellAspect)))
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return x, y, false
	}
	return x, y, true
}

// ToWorld returns the map-space center of a grid cell.
func (c *Canvas) ToWorld(x, y int) geom.Pt {
	return geom.Pt{
		X: c.bounds.MinX + (float64(x)+0.5)*c.scale,
		Y: c.bounds.MaxY - (float64(y)+0.5)*c.scale*cellAspect,
	}
}

// Clear implements Renderer.
func (c *Canvas) Clear(col Color) {
	c.background = &col
	for i := range c.cells {
		c.cells[i] = cell{}
	}
}

// DrawPolygon implements Renderer. Polygons smaller than a cell still mark
// the cell holding their center.
func (c *Canvas) DrawPolygon(col Color, p geom.Polygon) {
	if len(p.Points) == 0 {
		return
	}
	marked := c.fill(col, p.Bounds(), p.Contains)
	if !marked {
		if x, y, ok := c.ToCell(p.Center()); ok {
			c.set(x, y, col)
		}
	}
}

// DrawCircle implements Renderer.
func (c *Canvas) DrawCircle(col Color, circle geom.Circle) {
	b := geom.Bounds{
		MinX: circle.Center.X - circle.Radius,
		MinY: circle.Center.Y - circle.Radius,
		MaxX: circle.Center.X + circle.Radius,
		MaxY: circle.Center.Y + circle.Radius,
	}
	if !c.fill(col, b, circle.Contains) {
		if x, y, ok := c.ToCell(circle.Center); ok {
			c.set(x, y, col)
		}
	}
}

// DrawLine implements Renderer. Lines are at least one cell wide.
func (c *Canvas) DrawLine(col Color, thickness float64, l geom.Line) {
	half := math.Max(thickness/2, c.scale/2)
	b := geom.EmptyBounds()
	b.Update(l.A)
	b.Update(l.B)
	b.MinX -= half
	b.MinY -= half
	b.MaxX += half
	b.MaxY += half
	c.fill(col, b, func(pt geom.Pt) bool {
		return l.DistToPt(pt) <= half
	})
}

// DrawPanel implements Renderer.
func (c *Canvas) DrawPanel(content string) {
	c.panels = append(c.panels, content)
}

// DrawOSD implements Renderer.
func (c *Canvas) DrawOSD(text string) {
	c.osd = text
}

// fill sets every cell in b whose center satisfies inside.
func (c *Canvas) fill(col Color, b geom.Bounds, inside func(geom.Pt) bool) bool {
	x0, y0, _ := c.ToCell(geom.Pt{X: b.MinX, Y: b.MaxY})
	x1, y1, _ := c.ToCell(geom.Pt{X: b.MaxX, Y: b.MinY})
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.width-1), min(y1, c.height-1)

	marked := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if inside(c.ToWorld(x, y)) {
				c.set(x, y, col)
				marked = true
			}
		}
	}
	return marked
}

func (c *Canvas) set(x, y int, col Color) {
	c.cells[y*c.width+x] = cell{color: col, set: true}
}

// glyph picks a shading character for an opacity.
func glyph(alpha float64) string {
	switch {
	case alpha >= 0.8:
		return "█"
	case alpha >= 0.4:
		return "▒"
	default:
		return "░"
	}
}

// MapView renders just the map grid.
func (c *Canvas) MapView() string {
	base := lipgloss.NewStyle()
	if c.background != nil {
		base = base.Background(c.background.Value)
	}

	rows := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		var b strings.Builder
		// Runs of identical cells share one style application.
		runStart := 0
		for x := 1; x <= c.width; x++ {
			if x < c.width && c.cells[y*c.width+x] == c.cells[y*c.width+runStart] {
				continue
			}
			run := c.cells[y*c.width+runStart]
			n := x - runStart
			if run.set {
				b.WriteString(base.Foreground(run.color.Value).Render(strings.Repeat(glyph(run.color.Alpha), n)))
			} else {
				b.WriteString(base.Render(strings.Repeat(" ", n)))
			}
			runStart = x
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}

// Frame renders the map with panels stacked on its right and the on-screen
// display underneath.
func (c *Canvas) Frame() string {
	view := c.MapView()
	if len(c.panels) > 0 {
		side := lipgloss.JoinVertical(lipgloss.Left, c.panels...)
		view = lipgloss.JoinHorizontal(lipgloss.Top, view, " ", side)
	}
	if c.osd != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, OSDStyle.Render(c.osd))
	}
	return view
}

// OSDStyle is used for the on-screen display line.
var OSDStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#626262")).
	Italic(true)
