package interact

import (
	"image"

	"github.com/cchart-go/cchart/gdi"
)

// Context menu commands of the default handler.
const (
	CmdRedraw = iota + 1
	CmdCancelDrag
	CmdSettings
)

// DefaultMenuItems returns the items the default handler adds to a
// context menu.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{ID: CmdRedraw, Label: "Redraw"},
		{ID: CmdCancelDrag, Label: "Cancel drag", Disabled: true},
		{ID: CmdSettings, Label: "Settings..."},
	}
}

// DefaultHandler is the last component of a chain. It tracks left-button
// drags, fills the context menu and cancels a drag on Escape.
type DefaultHandler struct {
	// Items are added to every context menu.
	Items []MenuItem

	dragging bool
	start    image.Point
	current  image.Point
}

// NewDefaultHandler returns a handler adding DefaultMenuItems.
func NewDefaultHandler() *DefaultHandler {
	return &DefaultHandler{Items: DefaultMenuItems()}
}

// Dragging reports whether a drag is in progress.
func (h *DefaultHandler) Dragging() bool {
	return h.dragging
}

// DragRect returns the rectangle spanned by the current drag.
func (h *DefaultHandler) DragRect() image.Rectangle {
	if !h.dragging {
		return image.Rectangle{}
	}
	return image.Rectangle{Min: h.start, Max: h.current}.Canon()
}

// LButtonDown starts a drag at pt.
func (h *DefaultHandler) LButtonDown(_ *gdi.DC, pt image.Point, _ Modifier) bool {
	h.dragging = true
	h.start, h.current = pt, pt
	return false
}

// LButtonUp ends a drag. It asks for a redraw when the mouse moved since
// the button went down.
func (h *DefaultHandler) LButtonUp(_ *gdi.DC, pt image.Point, _ Modifier) bool {
	if !h.dragging {
		return false
	}
	h.dragging = false
	return pt != h.start
}

// LButtonDblClk drops any drag.
func (h *DefaultHandler) LButtonDblClk(*gdi.DC, image.Point, Modifier) bool {
	h.dragging = false
	return false
}

// MouseMove extends the drag to pt. A move without the left button ends
// the drag.
func (h *DefaultHandler) MouseMove(_ *gdi.DC, pt image.Point, mods Modifier) bool {
	if !h.dragging {
		return false
	}
	if mods&ModLButton == 0 {
		// Button released outside the window.
		h.dragging = false
		return true
	}
	if pt == h.current {
		return false
	}
	h.current = pt
	return true
}

// ContextMenu appends Items after a separator. Cancel drag is enabled only
// during a drag.
func (h *DefaultHandler) ContextMenu(menu *Menu, _ *gdi.DC, _ image.Point) bool {
	menu.AppendSeparator()
	for _, it := range h.Items {
		if it.ID == CmdCancelDrag {
			it.Disabled = !h.dragging
		}
		menu.Append(it)
	}
	return false
}

// KeyDown cancels a drag on Escape.
func (h *DefaultHandler) KeyDown(_ *gdi.DC, key Key) bool {
	if key == KeyEscape && h.dragging {
		h.dragging = false
		return true
	}
	return false
}

// Command runs a context menu command and reports whether the chart needs a
// redraw.
func (h *DefaultHandler) Command(id int) bool {
	switch id {
	case CmdRedraw:
		return true
	case CmdCancelDrag:
		if h.dragging {
			h.dragging = false
			return true
		}
	}
	return false
}
