// Package fastblt accelerates copies of high-color bitmaps onto palettized
// devices.
//
// Copying a 16, 24 or 32 bits-per-pixel bitmap onto an 8bpp device makes
// the device match every pixel against its palette. fastblt instead builds
// a 32768-entry table mapping each 15-bit RGB value to a palette index once
// per copy, converts the source rectangle to an 8bpp bitmap by table lookup
// and copies that bitmap, whose color table already equals the device
// palette.
//
// The conversion runs only when the fast path is enabled and the copied
// rectangle holds more than [DefaultThreshold] pixels. In every other case,
// and whenever conversion is not possible, the copy falls back to the plain
// gdi operation on the original source.
//
//	fastblt.SetEnabled(true)
//	err := fastblt.BitBlt(screen, 0, 0, w, h, mem, 0, 0, gdi.SRCCOPY)
package fastblt
