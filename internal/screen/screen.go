// Package screen defines the screen stack that drives maptools.
//
// The host owns a Stack. Every tick it hands the input message to the top
// screen, which answers with a Transition; the host applies that transition
// and draws the new top. Screens never touch the stack themselves.
package screen

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/maptools/internal/geom"
	"github.com/muurk/maptools/internal/persist"
	"github.com/muurk/maptools/internal/render"
	"github.com/muurk/maptools/internal/world"
)

// Baselayer says what the host draws before the screen draws itself.
type Baselayer int

const (
	// DefaultMap draws the current map under the screen.
	DefaultMap Baselayer = iota
	// PreviousScreen draws the screen beneath first, for modal overlays.
	PreviousScreen
	// Custom leaves the whole frame to the screen.
	Custom
)

// Screen is one entry on the stack.
type Screen interface {
	Event(ctx *Context, msg tea.Msg) Transition
	Draw(r render.Renderer, ctx *Context)
	DrawBaselayer() Baselayer
}

// EnterMsg is delivered to a screen each time it becomes the top of the
// stack, including the first time.
type EnterMsg struct{}

// Context is the shared state handed to every screen.
type Context struct {
	Map   *world.Map
	Store persist.Store

	// Cursor is the map-space position of the mouse, if it is over the map.
	Cursor *geom.Pt
	// Selection is the object under the mouse, if any.
	Selection *world.ID
}

// Select sets or clears the current selection.
func (c *Context) Select(id world.ID, ok bool) {
	if !ok {
		c.Selection = nil
		return
	}
	c.Selection = &id
}

// MoveCursor records where the mouse is and what it is over.
func (c *Context) MoveCursor(pt geom.Pt, inside bool) {
	if !inside {
		c.Cursor = nil
		c.Selection = nil
		return
	}
	c.Cursor = &pt
	if c.Map != nil {
		c.Select(c.Map.ObjectAt(pt))
	}
}

// Name returns a short label for a screen, used in logs.
func Name(s Screen) string {
	if s == nil {
		return "<nil>"
	}
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}

// DrawOSD shows what is under the mouse, if anything.
func DrawOSD(r render.Renderer, ctx *Context) {
	if ctx.Map == nil || ctx.Selection == nil {
		r.DrawOSD("...")
		return
	}
	r.DrawOSD(ctx.Map.Describe(*ctx.Selection))
}
