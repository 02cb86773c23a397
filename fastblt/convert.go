package fastblt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"github.com/cchart-go/cchart/dib"
	"github.com/cchart-go/cchart/gdi"
	"github.com/cchart-go/cchart/internal/bitmask"
	"github.com/cchart-go/cchart/internal/parallel"
)

// Reasons a region cannot be converted. Callers fall back to a plain copy.
var (
	// ErrUnreadableSource is returned when the source DC is a display DC or
	// holds a bitmap whose bits cannot be read directly.
	ErrUnreadableSource = errors.New("fastblt: source bits are not directly readable")

	// ErrNoConversionNeeded is returned when the source has 8 or fewer bits
	// per pixel, or already matches the destination device depth.
	ErrNoConversionNeeded = errors.New("fastblt: source depth needs no conversion")

	// ErrInvalidRegion is returned for a non-positive width or height.
	ErrInvalidRegion = errors.New("fastblt: invalid region")

	// ErrRegionOutOfBounds is returned when the region is not inside the
	// source bitmap.
	ErrRegionOutOfBounds = errors.New("fastblt: region outside the source bitmap")
)

// ConvertRegion converts the w x h region at logical (x, y) of the bitmap
// selected into src to a new 8bpp DIB section whose color table is the
// palette of dst.
//
// The caller owns the returned bitmap and must Delete it. No other handle
// created during the call outlives it.
func ConvertRegion(src *gdi.DC, x, y, w, h int, dst *gdi.DC) (*gdi.Bitmap, error) {
	return convertRegion(src, x, y, w, h, dst, nil)
}

// convertRegion is ConvertRegion spreading the rows over pool, when non-nil.
func convertRegion(src *gdi.DC, x, y, w, h int, dst *gdi.DC, pool *parallel.Pool) (*gdi.Bitmap, error) {
	if src == nil || dst == nil {
		return nil, gdi.ErrNilHandle
	}
	if src.IsDisplay() {
		return nil, ErrUnreadableSource
	}
	sec, err := src.Bitmap().Section()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableSource, err)
	}

	bpp := sec.BitCount()
	if bpp <= 8 || bpp == dst.BitsPixel() {
		return nil, ErrNoConversionNeeded
	}
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidRegion
	}
	origin := src.LPtoDP(image.Pt(x, y))
	region := image.Rect(origin.X, origin.Y, origin.X+w, origin.Y+h)
	if !region.In(sec.Bounds()) {
		return nil, ErrRegionOutOfBounds
	}

	dev := dst.Device()
	pal := dst.Palette()

	m, err := BuildIndexMap(dev, pal)
	if err != nil {
		return nil, err
	}
	defer release("index map", m.Release)

	out, err := dev.CreateDIBSection(dib.Header{
		Width:    w,
		Height:   h,
		BitCount: 8,
		ClrUsed:  pal.Len(),
	}, dib.Masks{}, pal.ColorTable())
	if err != nil {
		return nil, fmt.Errorf("fastblt: create 8bpp section: %w", err)
	}
	outSec, err := out.Section()
	if err != nil {
		release("8bpp section", out.Delete)
		return nil, fmt.Errorf("fastblt: create 8bpp section: %w", err)
	}

	pool.Rows(region.Dy(), minBandRows, func(y0, y1 int) {
		rasterize(outSec, sec, region, y0, y1, m)
	})
	return out, nil
}

// minBandRows is the smallest row band handed to a worker.
const minBandRows = 32

// rasterize writes the palette index of every pixel of rows [y0, y1) of
// region of src into the same rows of dst.
func rasterize(dst, src *dib.Section, region image.Rectangle, y0, y1 int, m *IndexMap) {
	lut := m.Bytes()
	w := region.Dx()
	layout := src.Layout()

	for row := y0; row < y1; row++ {
		in := src.Bits[src.RowOffset(region.Min.Y+row):]
		out := dst.Bits[dst.RowOffset(row):][:w]

		switch src.BitCount() {
		case 24:
			in = in[3*region.Min.X:]
			for i := range out {
				px := in[3*i : 3*i+3]
				out[i] = lut[bitmask.Key555(px[2], px[1], px[0])]
			}
		case 16:
			in = in[2*region.Min.X:]
			for i := range out {
				out[i] = lut[layout.Key555(uint32(binary.LittleEndian.Uint16(in[2*i:])))]
			}
		case 32:
			in = in[4*region.Min.X:]
			for i := range out {
				out[i] = lut[layout.Key555(binary.LittleEndian.Uint32(in[4*i:]))]
			}
		}
	}
}
