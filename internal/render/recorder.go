package render

import "github.com/muurk/maptools/internal/geom"

// Op is one recorded draw call.
type Op struct {
	Kind      string // "clear", "polygon", "circle", "line", "panel", "osd"
	Color     Color
	Polygon   geom.Polygon
	Circle    geom.Circle
	Line      geom.Line
	Thickness float64
	Text      string
}

// Recorder is a Renderer that keeps every call, for tests and for headless
// runs.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Clear(c Color) {
	r.Ops = append(r.Ops, Op{Kind: "clear", Color: c})
}

func (r *Recorder) DrawPolygon(c Color, p geom.Polygon) {
	r.Ops = append(r.Ops, Op{Kind: "polygon", Color: c, Polygon: p})
}

func (r *Recorder) DrawCircle(c Color, circle geom.Circle) {
	r.Ops = append(r.Ops, Op{Kind: "circle", Color: c, Circle: circle})
}

func (r *Recorder) DrawLine(c Color, thickness float64, l geom.Line) {
	r.Ops = append(r.Ops, Op{Kind: "line", Color: c, Line: l, Thickness: thickness})
}

func (r *Recorder) DrawPanel(content string) {
	r.Ops = append(r.Ops, Op{Kind: "panel", Text: content})
}

func (r *Recorder) DrawOSD(text string) {
	r.Ops = append(r.Ops, Op{Kind: "osd", Text: text})
}

// Filter returns the recorded ops of one kind, in order.
func (r *Recorder) Filter(kind string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset drops all recorded ops.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
