package interact

import (
	"image"

	"github.com/cchart-go/cchart/gdi"
)

// MouseHook runs around the handler chain of a mouse event. It reports
// whether the chart needs a redraw, and whether processing continues.
// A pre hook returning cont == false skips the chain and the post hook.
type MouseHook func(p Plot, dc *gdi.DC, pt image.Point, mods Modifier) (needUpdate, cont bool)

// KeyHook is the MouseHook counterpart for key events. The key handlers
// always run; cont only matters to callers sharing the hook.
type KeyHook func(p Plot, dc *gdi.DC, key Key) (needUpdate, cont bool)

// Hooks holds the optional user callbacks. Nil hooks are skipped.
type Hooks struct {
	PreLButtonDown    MouseHook
	PostLButtonDown   MouseHook
	PreLButtonUp      MouseHook
	PostLButtonUp     MouseHook
	PreLButtonDblClk  MouseHook
	PostLButtonDblClk MouseHook
	PreMouseMove      MouseHook
	PostMouseMove     MouseHook
	PreKeyDown        KeyHook
	PostKeyDown       KeyHook
}

// mouse returns the pre and post hooks of a mouse event.
func (h *Hooks) mouse(kind EventKind) (pre, post MouseHook) {
	switch kind {
	case LButtonDown:
		return h.PreLButtonDown, h.PostLButtonDown
	case LButtonUp:
		return h.PreLButtonUp, h.PostLButtonUp
	case LButtonDblClk:
		return h.PreLButtonDblClk, h.PostLButtonDblClk
	case MouseMove:
		return h.PreMouseMove, h.PostMouseMove
	}
	return nil, nil
}
