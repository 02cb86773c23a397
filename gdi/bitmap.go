package gdi

import "github.com/cchart-go/cchart/dib"

// Bitmap is a bitmap handle.
//
// DIB sections expose their pixels through Section. Device-dependent
// bitmaps created by CreateCompatibleBitmap can be drawn to and copied from
// but not read directly.
type Bitmap struct {
	dev        *Device
	sec        *dib.Section
	dibSection bool
	stock      bool
	owner      *DC
	deleted    bool
}

// stockBitmap is the 1x1 bitmap every new memory DC starts with.
var stockBitmap = func() *Bitmap {
	sec, _ := dib.New(dib.Header{Width: 1, Height: 1, BitCount: 8}, dib.Masks{}, dib.ColorTable{{}, {Blue: 0xFF, Green: 0xFF, Red: 0xFF}})
	return &Bitmap{sec: sec, stock: true}
}()

// Section returns the DIB section backing the bitmap: its header, masks,
// color table and pixel bits. The returned section aliases the bitmap.
func (b *Bitmap) Section() (*dib.Section, error) {
	if b == nil {
		return nil, ErrNilHandle
	}
	if b.deleted {
		return nil, ErrDeleted
	}
	if !b.dibSection {
		return nil, ErrNotDIBSection
	}
	return b.sec, nil
}

// IsDIBSection reports whether the bitmap bits are directly readable.
func (b *Bitmap) IsDIBSection() bool {
	return b.dibSection
}

// IsStock reports whether b is the stock bitmap.
func (b *Bitmap) IsStock() bool {
	return b.stock
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int {
	return b.sec.Width()
}

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int {
	return b.sec.Height()
}

// BitCount returns the number of bits per pixel.
func (b *Bitmap) BitCount() int {
	return b.sec.BitCount()
}

// Selected reports whether the bitmap is currently selected into a DC.
func (b *Bitmap) Selected() bool {
	return b.owner != nil
}

// Delete releases the bitmap. A bitmap selected into a DC cannot be deleted.
func (b *Bitmap) Delete() error {
	switch {
	case b == nil:
		return ErrNilHandle
	case b.stock:
		return ErrStockObject
	case b.deleted:
		return ErrDeleted
	case b.owner != nil:
		return ErrBitmapInUse
	}
	b.deleted = true
	b.dev.trackBitmap(-1)
	return nil
}
