package gdi

import (
	"image/color"

	"github.com/cchart-go/cchart/dib"
)

// PaletteEntry is one logical palette color, stored red first.
type PaletteEntry struct {
	Red, Green, Blue, Flags uint8
}

// RGBA implements color.Color.
func (e PaletteEntry) RGBA() (r, g, b, a uint32) {
	return dib.RGBQuad{Blue: e.Blue, Green: e.Green, Red: e.Red}.RGBA()
}

// Palette is a logical palette of up to 256 colors.
// A Palette is immutable once created.
type Palette struct {
	entries []PaletteEntry
	colors  color.Palette
}

// NewPalette creates a palette from 1 to 256 entries.
func NewPalette(entries []PaletteEntry) (*Palette, error) {
	if len(entries) == 0 || len(entries) > dib.MaxColors {
		return nil, ErrInvalidPalette
	}
	p := &Palette{entries: make([]PaletteEntry, len(entries))}
	copy(p.entries, entries)
	p.colors = make(color.Palette, len(entries))
	for i, e := range p.entries {
		p.colors[i] = color.RGBA{R: e.Red, G: e.Green, B: e.Blue, A: 0xFF}
	}
	return p, nil
}

// PaletteFromColors creates a palette from a color.Palette.
func PaletteFromColors(cp color.Palette) (*Palette, error) {
	entries := make([]PaletteEntry, len(cp))
	for i, c := range cp {
		q := dib.QuadFromColor(c)
		entries[i] = PaletteEntry{Red: q.Red, Green: q.Green, Blue: q.Blue}
	}
	return NewPalette(entries)
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the palette entries.
func (p *Palette) Entries() []PaletteEntry {
	out := make([]PaletteEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Entry returns entry i.
func (p *Palette) Entry(i int) PaletteEntry {
	return p.entries[i]
}

// Colors returns the palette as a color.Palette.
// The returned slice must not be modified.
func (p *Palette) Colors() color.Palette {
	return p.colors
}

// ColorTable returns the palette as a DIB color table. Palette entries are
// red-first and color table entries blue-first, so the channels swap.
func (p *Palette) ColorTable() dib.ColorTable {
	t := make(dib.ColorTable, len(p.entries))
	for i, e := range p.entries {
		t[i] = dib.RGBQuad{Blue: e.Blue, Green: e.Green, Red: e.Red}
	}
	return t
}

// Nearest returns the index of the entry closest to c.
func (p *Palette) Nearest(c color.Color) int {
	return p.colors.Index(c)
}

// DefaultPalette returns the 256-color halftone palette: a 6x6x6 color cube
// followed by 40 grays.
func DefaultPalette() *Palette {
	entries := make([]PaletteEntry, 0, dib.MaxColors)
	levels := [6]uint8{0x00, 0x33, 0x66, 0x99, 0xCC, 0xFF}
	for _, r := range levels {
		for _, g := range levels {
			for _, b := range levels {
				entries = append(entries, PaletteEntry{Red: r, Green: g, Blue: b})
			}
		}
	}
	for i := range dib.MaxColors - len(entries) {
		v := uint8((i + 1) * 255 / 41)
		entries = append(entries, PaletteEntry{Red: v, Green: v, Blue: v})
	}
	p, _ := NewPalette(entries)
	return p
}
