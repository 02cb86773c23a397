// Package dib implements device-independent bitmaps.
//
// A DIB is a pixel buffer described by a header (size, depth, compression),
// optional channel masks and an optional color table. Rows are padded to a
// 4-byte boundary and, for a positive header height, stored bottom-up: the
// first row in memory is the bottom row of the image.
//
// Supported depths are 8 bits per pixel (palette indices) and the high-color
// depths 16, 24 and 32.
package dib

import (
	"errors"

	"github.com/cchart-go/cchart/internal/bitmask"
)

// Common errors for DIB operations.
var (
	// ErrInvalidDimensions is returned when width or height is zero or negative width.
	ErrInvalidDimensions = errors.New("dib: invalid dimensions")

	// ErrUnsupportedBitCount is returned for depths other than 8, 16, 24 and 32.
	ErrUnsupportedBitCount = errors.New("dib: unsupported bit count")

	// ErrInvalidCompression is returned when BitFields is used with a depth
	// that has no masks, or the compression is unknown.
	ErrInvalidCompression = errors.New("dib: invalid compression")

	// ErrInvalidMask is returned when BitFields masks are empty, not
	// contiguous, overlapping or wider than the pixel.
	ErrInvalidMask = errors.New("dib: invalid color mask")

	// ErrDataTooSmall is returned when provided bits are smaller than required.
	ErrDataTooSmall = errors.New("dib: data buffer too small")

	// ErrColorTableTooLarge is returned for color tables over 256 entries.
	ErrColorTableTooLarge = errors.New("dib: color table larger than 256 entries")
)

// Compression identifies how pixel values are laid out.
type Compression uint32

const (
	// RGB is the default layout: 5-5-5 for 16bpp, 8-8-8 for 24 and 32bpp,
	// palette indices for 8bpp.
	RGB Compression = 0

	// BitFields means the channel layout is given by explicit masks.
	// Valid for 16 and 32bpp only.
	BitFields Compression = 3
)

// String returns the conventional name of the compression.
func (c Compression) String() string {
	switch c {
	case RGB:
		return "BI_RGB"
	case BitFields:
		return "BI_BITFIELDS"
	default:
		return "Unknown"
	}
}

// Header describes a DIB.
type Header struct {
	// Width is the image width in pixels.
	Width int

	// Height is the image height in pixels. A positive height means rows
	// are stored bottom-up, a negative height means top-down.
	Height int

	// BitCount is the number of bits per pixel.
	BitCount int

	// Compression selects the default or mask-defined channel layout.
	Compression Compression

	// ClrUsed is the number of color table entries in use; 0 means the
	// full 256 for 8bpp images.
	ClrUsed int
}

// BottomUp reports whether rows are stored bottom-up.
func (h Header) BottomUp() bool {
	return h.Height > 0
}

// AbsHeight returns the image height in rows.
func (h Header) AbsHeight() int {
	if h.Height < 0 {
		return -h.Height
	}
	return h.Height
}

// Stride returns the number of bytes per row including padding.
func (h Header) Stride() int {
	return Stride(h.Width, h.BitCount)
}

// SizeImage returns the size of the pixel data in bytes.
func (h Header) SizeImage() int {
	return h.Stride() * h.AbsHeight()
}

// BytesPerPixel returns the number of bytes per pixel.
func (h Header) BytesPerPixel() int {
	return h.BitCount / 8
}

// Validate checks the header fields.
func (h Header) Validate() error {
	if h.Width <= 0 || h.Height == 0 {
		return ErrInvalidDimensions
	}
	switch h.BitCount {
	case 8, 16, 24, 32:
	default:
		return ErrUnsupportedBitCount
	}
	switch h.Compression {
	case RGB:
	case BitFields:
		if h.BitCount != 16 && h.BitCount != 32 {
			return ErrInvalidCompression
		}
	default:
		return ErrInvalidCompression
	}
	return nil
}

// Stride returns the 4-byte aligned row size of a bitmap.
func Stride(width, bitCount int) int {
	return ((width*bitCount + 31) &^ 31) >> 3
}

// Masks holds the red, green and blue channel masks of a high-color pixel.
type Masks struct {
	Red, Green, Blue uint32
}

// DefaultMasks returns the masks implied by RGB compression:
// 5-5-5 for 16bpp and 8-8-8 for 24 and 32bpp. Other depths have no masks.
func DefaultMasks(bitCount int) Masks {
	switch bitCount {
	case 16:
		return Masks{bitmask.Red555, bitmask.Green555, bitmask.Blue555}
	case 24, 32:
		return Masks{bitmask.Red888, bitmask.Green888, bitmask.Blue888}
	default:
		return Masks{}
	}
}

// IsZero reports whether no mask is set.
func (m Masks) IsZero() bool {
	return m == Masks{}
}

// Layout returns the byte-sized channel extractors of the masks.
func (m Masks) Layout() bitmask.Layout {
	return bitmask.NewLayout(m.Red, m.Green, m.Blue)
}

// Validate checks that every mask is non-empty, contiguous, within
// bitCount bits and disjoint from the others.
func (m Masks) Validate(bitCount int) error {
	var limit uint32 = 0xFFFFFFFF
	if bitCount < 32 {
		limit = 1<<uint(bitCount) - 1
	}
	for _, v := range [...]uint32{m.Red, m.Green, m.Blue} {
		if v == 0 || v&^limit != 0 || !bitmask.IsContiguous(v) {
			return ErrInvalidMask
		}
	}
	if m.Red&m.Green != 0 || m.Red&m.Blue != 0 || m.Green&m.Blue != 0 {
		return ErrInvalidMask
	}
	return nil
}
