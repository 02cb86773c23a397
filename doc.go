// Package cchart provides the shared plumbing of the cchart charting toolkit.
//
// # Overview
//
// cchart draws charts into device contexts modelled after a classic
// bitmap/device-context graphics API. The toolkit is split into:
//   - dib: device-independent bitmaps (header, masks, color table, bottom-up rows)
//   - gdi: devices, device contexts, palettes, BitBlt and StretchBlt
//   - fastblt: accelerated copies of high-color bitmaps onto palettized devices
//   - interact: mouse and keyboard routing for interactive chart widgets
//
// # Quick Start
//
//	dev := gdi.NewDevice(gdi.WithBitsPixel(8))
//	screen := dev.GetDC()
//	defer screen.Delete()
//
//	// Copy a large 32bpp chart bitmap held by mem onto the 8bpp screen.
//	err := fastblt.BitBlt(screen, 0, 0, 640, 480, mem, 0, 0, gdi.SRCCOPY)
//
// # Logging
//
// The toolkit is silent by default. Call [SetLogger] to route diagnostics
// from every sub-package to a [log/slog] logger.
package cchart

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
