package interact

import (
	"image"
	"log/slog"

	"github.com/cchart-go/cchart"
	"github.com/cchart-go/cchart/gdi"
)

// Chain lists the components an event is routed to, in call order.
type Chain struct {
	Mouse       []Handler
	ContextMenu []ContextMenuHandler
	Key         []KeyDownHandler
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHooks sets the initial hooks.
func WithHooks(h Hooks) Option {
	return func(d *Dispatcher) {
		d.Hooks = h
	}
}

// WithLogger sets the logger. Defaults to cchart.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// Dispatcher routes input events of one chart through its handler chain.
//
// Every handler in the chain sees the event; the results are combined, so
// one handler reporting a change is enough for a redraw. Events outside the
// last client rectangle of the plot are dropped.
//
// A Dispatcher is not safe for concurrent use; it belongs to the window's
// event loop.
type Dispatcher struct {
	// Hooks may be changed between events.
	Hooks Hooks

	plot   Plot
	host   Host
	chain  Chain
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher for plot. host may be nil when the
// chart has no window to capture the mouse for.
func NewDispatcher(plot Plot, host Host, chain Chain, opts ...Option) *Dispatcher {
	d := &Dispatcher{plot: plot, host: host, chain: chain}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Plot returns the chart the dispatcher serves.
func (d *Dispatcher) Plot() Plot {
	return d.plot
}

func (d *Dispatcher) log() *slog.Logger {
	if d.logger != nil {
		return d.logger
	}
	return cchart.Logger()
}

// inside converts pt to logical coordinates and tests it against the last
// client rectangle.
func (d *Dispatcher) inside(dc *gdi.DC, pt image.Point) (image.Point, bool) {
	lp := dc.DPtoLP(pt)
	return lp, lp.In(d.plot.LastClientRect())
}

func (d *Dispatcher) releaseMouse() {
	if d.host == nil {
		return
	}
	if d.host.HasCapture() {
		d.host.ReleaseCapture()
	}
	d.host.ClipCursor(nil)
}

// run calls the pre hook, the chain and the post hook of a mouse event.
func (d *Dispatcher) run(kind EventKind, dc *gdi.DC, pt image.Point, mods Modifier) (needUpdate bool) {
	pre, post := d.Hooks.mouse(kind)
	if pre != nil {
		upd, cont := pre(d.plot, dc, pt, mods)
		needUpdate = upd || needUpdate
		if !cont {
			d.log().Debug("interact: chain stopped by hook", "event", kind)
			return needUpdate
		}
	}

	for _, h := range d.chain.Mouse {
		var upd bool
		switch kind {
		case LButtonDown:
			upd = h.LButtonDown(dc, pt, mods)
		case LButtonUp:
			upd = h.LButtonUp(dc, pt, mods)
		case LButtonDblClk:
			upd = h.LButtonDblClk(dc, pt, mods)
		case MouseMove:
			upd = h.MouseMove(dc, pt, mods)
		}
		needUpdate = upd || needUpdate
	}

	if post != nil {
		upd, _ := post(d.plot, dc, pt, mods)
		needUpdate = upd || needUpdate
	}
	return needUpdate
}

// OnLButtonDown captures the mouse and runs the chain. Empty charts ignore
// the event.
func (d *Dispatcher) OnLButtonDown(dc *gdi.DC, pt image.Point, mods Modifier) bool {
	if d.plot.IsEmpty() {
		return false
	}
	lp, ok := d.inside(dc, pt)
	if !ok {
		return false
	}
	if d.host != nil {
		d.host.SetCapture()
	}
	return d.run(LButtonDown, dc, lp, mods)
}

// OnLButtonUp runs the chain and releases the mouse capture and cursor
// clipping on every path.
func (d *Dispatcher) OnLButtonUp(dc *gdi.DC, pt image.Point, mods Modifier) bool {
	return d.endClick(LButtonUp, dc, pt, mods)
}

// OnLButtonDblClk is OnLButtonUp for double clicks.
func (d *Dispatcher) OnLButtonDblClk(dc *gdi.DC, pt image.Point, mods Modifier) bool {
	return d.endClick(LButtonDblClk, dc, pt, mods)
}

func (d *Dispatcher) endClick(kind EventKind, dc *gdi.DC, pt image.Point, mods Modifier) bool {
	defer d.releaseMouse()

	lp, ok := d.inside(dc, pt)
	if !ok {
		return false
	}
	return d.run(kind, dc, lp, mods)
}

// OnMouseMove runs the chain for moves inside a non-empty chart.
func (d *Dispatcher) OnMouseMove(dc *gdi.DC, pt image.Point, mods Modifier) bool {
	lp, ok := d.inside(dc, pt)
	if !ok || d.plot.IsEmpty() {
		return false
	}
	return d.run(MouseMove, dc, lp, mods)
}

// OnMouseLeave never requests a redraw.
func (d *Dispatcher) OnMouseLeave(*gdi.DC, image.Point, Modifier) bool {
	return false
}

// OnContextMenu lets the context menu handlers populate menu. It has no
// hooks.
func (d *Dispatcher) OnContextMenu(menu *Menu, dc *gdi.DC, pt image.Point) bool {
	lp, ok := d.inside(dc, pt)
	if !ok {
		return false
	}
	if menu == nil {
		menu = &Menu{}
	}
	needUpdate := false
	for _, h := range d.chain.ContextMenu {
		needUpdate = h.ContextMenu(menu, dc, lp) || needUpdate
	}
	return needUpdate
}

// OnKeyDown runs the key hooks and handlers. Keys are not tested against
// the client rectangle, and the key handlers run whatever the pre hook
// answers.
func (d *Dispatcher) OnKeyDown(dc *gdi.DC, key Key) bool {
	needUpdate := false
	if pre := d.Hooks.PreKeyDown; pre != nil {
		upd, _ := pre(d.plot, dc, key)
		needUpdate = upd || needUpdate
	}
	for _, h := range d.chain.Key {
		needUpdate = h.KeyDown(dc, key) || needUpdate
	}
	if post := d.Hooks.PostKeyDown; post != nil {
		upd, _ := post(d.plot, dc, key)
		needUpdate = upd || needUpdate
	}
	return needUpdate
}

// OnEvent dispatches ev and reports whether the chart needs a redraw.
func (d *Dispatcher) OnEvent(dc *gdi.DC, ev Event) bool {
	switch ev.Kind {
	case LButtonDown:
		return d.OnLButtonDown(dc, ev.Point, ev.Mods)
	case LButtonUp:
		return d.OnLButtonUp(dc, ev.Point, ev.Mods)
	case LButtonDblClk:
		return d.OnLButtonDblClk(dc, ev.Point, ev.Mods)
	case MouseMove:
		return d.OnMouseMove(dc, ev.Point, ev.Mods)
	case MouseLeave:
		return d.OnMouseLeave(dc, ev.Point, ev.Mods)
	case ContextMenu:
		return d.OnContextMenu(ev.Menu, dc, ev.Point)
	case KeyDown:
		return d.OnKeyDown(dc, ev.Key)
	}
	return false
}

// Interactive dispatches ev and redraws the chart into its last client
// rectangle when a handler asks for it. It reports whether it redrew.
func (d *Dispatcher) Interactive(dc *gdi.DC, ev Event) bool {
	if !d.OnEvent(dc, ev) {
		return false
	}
	d.plot.Draw(dc, d.plot.LastClientRect())
	return true
}
