package interact

import (
	"image"

	"github.com/cchart-go/cchart/gdi"
)

// Handler is a chart component reacting to mouse input. Points are in
// logical coordinates of dc. Each method reports whether the chart needs
// to be redrawn.
type Handler interface {
	LButtonDown(dc *gdi.DC, pt image.Point, mods Modifier) bool
	LButtonUp(dc *gdi.DC, pt image.Point, mods Modifier) bool
	LButtonDblClk(dc *gdi.DC, pt image.Point, mods Modifier) bool
	MouseMove(dc *gdi.DC, pt image.Point, mods Modifier) bool
}

// ContextMenuHandler is implemented by components that contribute to the
// context menu.
type ContextMenuHandler interface {
	ContextMenu(menu *Menu, dc *gdi.DC, pt image.Point) bool
}

// KeyDownHandler is implemented by components that react to keys.
type KeyDownHandler interface {
	KeyDown(dc *gdi.DC, key Key) bool
}

// BaseHandler implements Handler by ignoring every event. Embed it to
// implement only some methods.
type BaseHandler struct{}

// LButtonDown ignores the event.
func (BaseHandler) LButtonDown(*gdi.DC, image.Point, Modifier) bool { return false }

// LButtonUp ignores the event.
func (BaseHandler) LButtonUp(*gdi.DC, image.Point, Modifier) bool { return false }

// LButtonDblClk ignores the event.
func (BaseHandler) LButtonDblClk(*gdi.DC, image.Point, Modifier) bool { return false }

// MouseMove ignores the event.
func (BaseHandler) MouseMove(*gdi.DC, image.Point, Modifier) bool { return false }

// Plot is the chart seen by the dispatcher.
type Plot interface {
	// IsEmpty reports whether the chart has no data.
	IsEmpty() bool

	// LastClientRect is the rectangle the chart was last drawn into, in
	// logical coordinates.
	LastClientRect() image.Rectangle

	// Draw redraws the chart into rect.
	Draw(dc *gdi.DC, rect image.Rectangle)
}

// Host is the window the chart lives in.
type Host interface {
	SetCapture()
	ReleaseCapture()
	HasCapture() bool

	// ClipCursor confines the cursor to r; nil releases it.
	ClipCursor(r *image.Rectangle)
}
