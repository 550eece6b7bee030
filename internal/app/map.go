package app

import (
	"github.com/muurk/maptools/internal/geom"
	"github.com/muurk/maptools/internal/render"
	"github.com/muurk/maptools/internal/screen"
)

// DrawMap draws the current map: ground, intersections, buildings, and the
// object under the mouse highlighted.
func DrawMap(r render.Renderer, ctx *screen.Context) {
	r.Clear(render.Grass)
	m := ctx.Map
	if m == nil {
		return
	}

	for _, in := range m.Intersections {
		c := render.RoadGray
		if in.Border {
			c = render.Purple.WithAlpha(0.6)
		}
		r.DrawPolygon(c, geom.Polygon{Points: in.Points})
	}
	for _, b := range m.Buildings {
		r.DrawPolygon(render.BuildingGray, geom.Polygon{Points: b.Points})
	}

	if ctx.Selection != nil {
		if p, err := m.ResolveGeometry(*ctx.Selection); err == nil {
			r.DrawPolygon(render.Selection, p)
		}
	}
}

