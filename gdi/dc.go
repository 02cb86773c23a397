package gdi

import (
	"image"
	"image/color"

	"github.com/cchart-go/cchart/dib"
)

// DC is a device context: a drawing target with a selected bitmap, palette,
// brush and viewport origin.
type DC struct {
	dev     *Device
	display bool
	bitmap  *Bitmap
	palette *Palette
	brush   color.Color
	org     image.Point
	deleted bool
}

func (dc *DC) check() error {
	if dc == nil {
		return ErrNilHandle
	}
	if dc.deleted {
		return ErrDeleted
	}
	return nil
}

// Device returns the device the DC belongs to.
func (dc *DC) Device() *Device {
	return dc.dev
}

// IsDisplay reports whether the DC draws to the device frame buffer.
func (dc *DC) IsDisplay() bool {
	return dc.display
}

// BitsPixel returns the pixel depth of the device, as GetDeviceCaps does.
func (dc *DC) BitsPixel() int {
	return dc.dev.bitsPixel
}

// Bitmap returns the selected bitmap: the stock bitmap for a fresh memory
// DC, nil for a display DC.
func (dc *DC) Bitmap() *Bitmap {
	return dc.bitmap
}

// SelectObject selects bm into a memory DC and returns the previously
// selected bitmap. Display DCs reject bitmaps with ErrDisplayDC.
func (dc *DC) SelectObject(bm *Bitmap) (*Bitmap, error) {
	if err := dc.check(); err != nil {
		return nil, err
	}
	if bm == nil {
		return nil, ErrNilHandle
	}
	if bm.deleted {
		return nil, ErrDeleted
	}
	if dc.display {
		return nil, ErrDisplayDC
	}
	if !bm.stock && bm.dev != dc.dev {
		return nil, ErrForeignDevice
	}
	if bm.owner != nil && bm.owner != dc {
		return nil, ErrBitmapInUse
	}

	prev := dc.bitmap
	if prev != nil && !prev.stock {
		prev.owner = nil
	}
	if !bm.stock {
		bm.owner = dc
	}
	dc.bitmap = bm
	return prev, nil
}

// SelectPalette selects p (nil restores the system palette) and returns the
// previously selected palette.
func (dc *DC) SelectPalette(p *Palette) *Palette {
	prev := dc.Palette()
	dc.palette = p
	return prev
}

// Palette returns the selected palette, or the system palette.
func (dc *DC) Palette() *Palette {
	if dc.palette != nil {
		return dc.palette
	}
	return dc.dev.palette
}

// SetDIBColorTable replaces color table entries of the selected 8bpp DIB
// section starting at index start and returns the number of entries set.
func (dc *DC) SetDIBColorTable(start int, colors []dib.RGBQuad) (int, error) {
	if err := dc.check(); err != nil {
		return 0, err
	}
	sec, err := dc.bitmap.Section()
	if err != nil {
		return 0, err
	}
	if sec.BitCount() != 8 || start < 0 || start >= dib.MaxColors {
		return 0, nil
	}
	n := min(len(colors), dib.MaxColors-start)
	table := sec.Colors.Clone()
	if len(table) < start+n {
		table = append(table, make(dib.ColorTable, start+n-len(table))...)
	}
	copy(table[start:], colors[:n])
	if err := sec.SetColorTable(table); err != nil {
		return 0, err
	}
	return n, nil
}

// SetBrush sets the pattern color used by pattern raster operations and
// returns the previous one. The default brush is black.
func (dc *DC) SetBrush(c color.Color) color.Color {
	prev := dc.Brush()
	dc.brush = c
	return prev
}

// Brush returns the pattern color.
func (dc *DC) Brush() color.Color {
	if dc.brush == nil {
		return color.Black
	}
	return dc.brush
}

// SetViewportOrg sets the device point that logical (0, 0) maps to and
// returns the previous origin.
func (dc *DC) SetViewportOrg(x, y int) image.Point {
	prev := dc.org
	dc.org = image.Pt(x, y)
	return prev
}

// ViewportOrg returns the viewport origin.
func (dc *DC) ViewportOrg() image.Point {
	return dc.org
}

// DPtoLP converts a device point to logical coordinates.
func (dc *DC) DPtoLP(pt image.Point) image.Point {
	return pt.Sub(dc.org)
}

// LPtoDP converts a logical point to device coordinates.
func (dc *DC) LPtoDP(pt image.Point) image.Point {
	return pt.Add(dc.org)
}

// surface returns the pixels the DC draws to.
func (dc *DC) surface() *dib.Section {
	if dc.display {
		return dc.dev.screen
	}
	return dc.bitmap.sec
}

// Delete releases the DC. The selected bitmap is deselected and may then be
// deleted or selected elsewhere.
func (dc *DC) Delete() error {
	if err := dc.check(); err != nil {
		return err
	}
	if dc.bitmap != nil && !dc.bitmap.stock {
		dc.bitmap.owner = nil
	}
	dc.bitmap = nil
	dc.deleted = true
	dc.dev.trackDC(-1)
	return nil
}
