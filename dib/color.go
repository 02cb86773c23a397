package dib

import "image/color"

// MaxColors is the largest color table an 8bpp DIB carries.
const MaxColors = 256

// RGBQuad is one color table entry, stored blue first.
type RGBQuad struct {
	Blue, Green, Red, Reserved uint8
}

// RGBA implements color.Color. Color table entries are opaque.
func (q RGBQuad) RGBA() (r, g, b, a uint32) {
	r = uint32(q.Red)
	r |= r << 8
	g = uint32(q.Green)
	g |= g << 8
	b = uint32(q.Blue)
	b |= b << 8
	return r, g, b, 0xFFFF
}

// QuadFromColor converts any color to an RGBQuad, dropping alpha.
func QuadFromColor(c color.Color) RGBQuad {
	r, g, b, _ := c.RGBA()
	//nolint:gosec // G115: r>>8 is always in [0, 255]
	return RGBQuad{Blue: uint8(b >> 8), Green: uint8(g >> 8), Red: uint8(r >> 8)}
}

// ColorTable is the color table of a palettized DIB.
type ColorTable []RGBQuad

// Palette returns the table as a color.Palette suitable for image.Paletted
// and nearest-color matching.
func (t ColorTable) Palette() color.Palette {
	if len(t) == 0 {
		return nil
	}
	p := make(color.Palette, len(t))
	for i, q := range t {
		p[i] = color.RGBA{R: q.Red, G: q.Green, B: q.Blue, A: 0xFF}
	}
	return p
}

// Clone returns a copy of the table.
func (t ColorTable) Clone() ColorTable {
	if t == nil {
		return nil
	}
	out := make(ColorTable, len(t))
	copy(out, t)
	return out
}

// Equal reports whether two tables hold the same entries.
func (t ColorTable) Equal(o ColorTable) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if t[i] != o[i] {
			return false
		}
	}
	return true
}

// ColorTableFromPalette converts a color.Palette into a color table.
// Entries past MaxColors are dropped.
func ColorTableFromPalette(p color.Palette) ColorTable {
	n := min(len(p), MaxColors)
	t := make(ColorTable, n)
	for i := range n {
		t[i] = QuadFromColor(p[i])
	}
	return t
}

// GrayColorTable returns a 256-entry linear gray ramp.
func GrayColorTable() ColorTable {
	t := make(ColorTable, MaxColors)
	for i := range t {
		v := uint8(i)
		t[i] = RGBQuad{Blue: v, Green: v, Red: v}
	}
	return t
}
