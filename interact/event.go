package interact

import (
	"fmt"
	"image"
)

// EventKind identifies an input event.
type EventKind int

const (
	LButtonDown EventKind = iota
	LButtonUp
	LButtonDblClk
	MouseMove
	MouseLeave
	ContextMenu
	KeyDown
)

var eventNames = [...]string{
	LButtonDown:   "LButtonDown",
	LButtonUp:     "LButtonUp",
	LButtonDblClk: "LButtonDblClk",
	MouseMove:     "MouseMove",
	MouseLeave:    "MouseLeave",
	ContextMenu:   "ContextMenu",
	KeyDown:       "KeyDown",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Modifier holds the mouse button and key state of a mouse event.
type Modifier uint32

// Modifier bits, valued as in the native mouse message flags.
const (
	ModLButton Modifier = 0x0001
	ModRButton Modifier = 0x0002
	ModShift   Modifier = 0x0004
	ModControl Modifier = 0x0008
	ModMButton Modifier = 0x0010
)

// Key is a virtual key code.
type Key uint32

const (
	KeyBack       Key = 0x08
	KeyTab        Key = 0x09
	KeyReturn     Key = 0x0D
	KeyEscape     Key = 0x1B
	KeySpace      Key = 0x20
	KeyArrowLeft  Key = 0x25
	KeyArrowUp    Key = 0x26
	KeyArrowRight Key = 0x27
	KeyArrowDown  Key = 0x28
	KeyDelete     Key = 0x2E
)

// Event is one input event in device coordinates.
type Event struct {
	Kind  EventKind
	Point image.Point
	Mods  Modifier

	// Key is set for KeyDown.
	Key Key

	// Menu receives items for ContextMenu.
	Menu *Menu
}

// MenuItem is one entry of a context menu.
type MenuItem struct {
	ID        int
	Label     string
	Disabled  bool
	Separator bool
}

// Menu is a context menu being populated by handlers.
type Menu struct {
	Items []MenuItem
}

// Append adds an item.
func (m *Menu) Append(item MenuItem) {
	m.Items = append(m.Items, item)
}

// AppendSeparator adds a separator unless the menu is empty or already ends
// with one.
func (m *Menu) AppendSeparator() {
	if n := len(m.Items); n == 0 || m.Items[n-1].Separator {
		return
	}
	m.Items = append(m.Items, MenuItem{Separator: true})
}

// Find returns the item with the given ID.
func (m *Menu) Find(id int) (MenuItem, bool) {
	for _, it := range m.Items {
		if !it.Separator && it.ID == id {
			return it, true
		}
	}
	return MenuItem{}, false
}
