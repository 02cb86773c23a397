package interact

// Region identifies a hit-test region of a chart, such as an axis or a
// legend entry.
type Region int

// RegionNone means no region was hit.
const RegionNone Region = -1

// ContourComponents are the handler components of a contour-line chart.
// Nil components do nothing.
type ContourComponents struct {
	Title   Handler
	Axes    Handler
	Data    Handler
	Legend  Handler
	Default *DefaultHandler
}

// ContourLineHandler routes input of a contour-line chart. Mouse events go
// to the title, the axes, the data area and the default handler, in that
// order. The legend of a contour chart does not take mouse input. Context
// menus and keys go to the default handler only.
type ContourLineHandler struct {
	*Dispatcher

	components     ContourComponents
	lastDownRegion Region
	lastMoveRegion Region
}

// NewContourLineHandler creates the handler of a contour-line chart.
func NewContourLineHandler(plot Plot, host Host, c ContourComponents, opts ...Option) *ContourLineHandler {
	if c.Title == nil {
		c.Title = BaseHandler{}
	}
	if c.Axes == nil {
		c.Axes = BaseHandler{}
	}
	if c.Data == nil {
		c.Data = BaseHandler{}
	}
	if c.Legend == nil {
		c.Legend = BaseHandler{}
	}
	if c.Default == nil {
		c.Default = NewDefaultHandler()
	}

	chain := Chain{
		Mouse:       []Handler{c.Title, c.Axes, c.Data, c.Default},
		ContextMenu: []ContextMenuHandler{c.Default},
		Key:         []KeyDownHandler{c.Default},
	}
	return &ContourLineHandler{
		Dispatcher:     NewDispatcher(plot, host, chain, opts...),
		components:     c,
		lastDownRegion: RegionNone,
		lastMoveRegion: RegionNone,
	}
}

// Components returns the handler components.
func (h *ContourLineHandler) Components() ContourComponents {
	return h.components
}

// LastDownRegion returns the region hit by the last button press.
func (h *ContourLineHandler) LastDownRegion() Region {
	return h.lastDownRegion
}

// SetLastDownRegion records the region hit by a button press.
func (h *ContourLineHandler) SetLastDownRegion(r Region) {
	h.lastDownRegion = r
}

// LastMoveRegion returns the region under the mouse at the last move.
func (h *ContourLineHandler) LastMoveRegion() Region {
	return h.lastMoveRegion
}

// SetLastMoveRegion records the region under the mouse.
func (h *ContourLineHandler) SetLastMoveRegion(r Region) {
	h.lastMoveRegion = r
}

// ResetRegions forgets both recorded regions.
func (h *ContourLineHandler) ResetRegions() {
	h.lastDownRegion = RegionNone
	h.lastMoveRegion = RegionNone
}
