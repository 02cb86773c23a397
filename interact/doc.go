// Package interact routes mouse and keyboard input of a chart window to its
// handler components.
//
// A chart is interactive through an ordered chain of components: the title,
// the axes, the data area and a default handler each see every mouse event
// in that order, and the chart is redrawn when any of them reports a change.
// Optional pre and post hooks run before and after the chain; a pre hook
// can stop the chain.
//
//	h := interact.NewContourLineHandler(plot, host, interact.ContourComponents{
//		Data: dataHandler,
//	})
//	h.Hooks.PreLButtonDown = func(p interact.Plot, dc *gdi.DC, pt image.Point, mods interact.Modifier) (bool, bool) {
//		return false, mods&interact.ModControl == 0
//	}
//	h.Interactive(dc, interact.Event{Kind: interact.LButtonDown, Point: pt})
package interact
