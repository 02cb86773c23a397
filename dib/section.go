package dib

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/cchart-go/cchart/internal/bitmask"
)

// Section is a DIB with directly addressable pixel bits.
//
// Section implements draw.Image. Coordinates passed to At, Set, Pixel and
// SetPixel are logical: y = 0 is the top row regardless of storage order.
//
// Thread safety: Section is safe for concurrent reads. Writes require
// external synchronization.
type Section struct {
	// Header describes the pixel layout.
	Header Header

	// Masks are the effective channel masks. For RGB compression these are
	// the defaults of the bit count; for BitFields the declared masks.
	Masks Masks

	// Colors is the color table of an 8bpp section.
	Colors ColorTable

	// Bits holds the pixel rows, each padded to Header.Stride().
	Bits []byte

	layout  bitmask.Layout
	palette color.Palette
}

// New allocates a zeroed section.
//
// For RGB compression masks is ignored and the defaults are used.
// For BitFields the masks must pass Masks.Validate.
// colors may be nil for high-color sections.
func New(h Header, masks Masks, colors ColorTable) (*Section, error) {
	s := &Section{Header: h, Masks: masks, Colors: colors}
	if err := s.init(); err != nil {
		return nil, err
	}
	s.Bits = make([]byte, h.SizeImage())
	return s, nil
}

// FromBits wraps existing pixel data without copying.
func FromBits(h Header, masks Masks, colors ColorTable, bits []byte) (*Section, error) {
	s := &Section{Header: h, Masks: masks, Colors: colors}
	if err := s.init(); err != nil {
		return nil, err
	}
	size := h.SizeImage()
	if len(bits) < size {
		return nil, ErrDataTooSmall
	}
	s.Bits = bits[:size]
	return s, nil
}

func (s *Section) init() error {
	if err := s.Header.Validate(); err != nil {
		return err
	}
	if len(s.Colors) > MaxColors {
		return ErrColorTableTooLarge
	}
	if s.Header.Compression == BitFields {
		if err := s.Masks.Validate(s.Header.BitCount); err != nil {
			return err
		}
	} else {
		s.Masks = DefaultMasks(s.Header.BitCount)
	}
	s.layout = s.Masks.Layout()
	s.palette = s.Colors.Palette()
	return nil
}

// Validate re-checks the header, masks and buffer size.
func (s *Section) Validate() error {
	if err := s.Header.Validate(); err != nil {
		return err
	}
	if s.Header.Compression == BitFields {
		if err := s.Masks.Validate(s.Header.BitCount); err != nil {
			return err
		}
	}
	if len(s.Colors) > MaxColors {
		return ErrColorTableTooLarge
	}
	if len(s.Bits) < s.Header.SizeImage() {
		return ErrDataTooSmall
	}
	return nil
}

// Width returns the image width in pixels.
func (s *Section) Width() int {
	return s.Header.Width
}

// Height returns the image height in pixels.
func (s *Section) Height() int {
	return s.Header.AbsHeight()
}

// BitCount returns the number of bits per pixel.
func (s *Section) BitCount() int {
	return s.Header.BitCount
}

// Stride returns the number of bytes per row including padding.
func (s *Section) Stride() int {
	return s.Header.Stride()
}

// Layout returns the channel extractors of the section's masks.
func (s *Section) Layout() bitmask.Layout {
	return s.layout
}

// SetColorTable replaces the color table, as SetDIBColorTable does.
func (s *Section) SetColorTable(t ColorTable) error {
	if len(t) > MaxColors {
		return ErrColorTableTooLarge
	}
	s.Colors = t.Clone()
	s.palette = s.Colors.Palette()
	return nil
}

// MemoryRow returns the memory row index holding logical row y.
func (s *Section) MemoryRow(y int) int {
	if s.Header.BottomUp() {
		return s.Header.AbsHeight() - 1 - y
	}
	return y
}

// RowOffset returns the byte offset of logical row y in Bits.
func (s *Section) RowOffset(y int) int {
	return s.MemoryRow(y) * s.Header.Stride()
}

// Row returns the unpadded bytes of logical row y, or nil when out of range.
func (s *Section) Row(y int) []byte {
	if y < 0 || y >= s.Height() {
		return nil
	}
	off := s.RowOffset(y)
	return s.Bits[off : off+s.Header.Width*s.Header.BytesPerPixel()]
}

// InBounds reports whether (x, y) lies within the image.
func (s *Section) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.Header.Width && y < s.Height()
}

// Pixel returns the raw value stored for (x, y): a palette index for 8bpp,
// the little-endian packed value otherwise. Out of range pixels read as 0.
func (s *Section) Pixel(x, y int) uint32 {
	if !s.InBounds(x, y) {
		return 0
	}
	return s.pixelAt(s.RowOffset(y) + x*s.Header.BytesPerPixel())
}

func (s *Section) pixelAt(off int) uint32 {
	b := s.Bits[off:]
	switch s.Header.BitCount {
	case 8:
		return uint32(b[0])
	case 16:
		return uint32(binary.LittleEndian.Uint16(b))
	case 24:
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	default:
		return binary.LittleEndian.Uint32(b)
	}
}

// SetPixel stores a raw value at (x, y). Bits above the depth are dropped.
// Out of range writes are ignored.
func (s *Section) SetPixel(x, y int, v uint32) {
	if !s.InBounds(x, y) {
		return
	}
	s.setPixelAt(s.RowOffset(y)+x*s.Header.BytesPerPixel(), v)
}

func (s *Section) setPixelAt(off int, v uint32) {
	b := s.Bits[off:]
	switch s.Header.BitCount {
	case 8:
		b[0] = byte(v)
	case 16:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 24:
		b[0], b[1], b[2] = byte(v), byte(v>>8), byte(v>>16)
	default:
		binary.LittleEndian.PutUint32(b, v)
	}
}

// ValueMask returns the bits a raw pixel value may occupy.
func (s *Section) ValueMask() uint32 {
	if s.Header.BitCount >= 32 {
		return 0xFFFFFFFF
	}
	return 1<<uint(s.Header.BitCount) - 1
}

// Bounds implements image.Image.
func (s *Section) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Header.Width, s.Height())
}

// ColorModel implements image.Image. 8bpp sections report their palette.
func (s *Section) ColorModel() color.Model {
	if s.Header.BitCount == 8 && len(s.palette) > 0 {
		return s.palette
	}
	return color.RGBAModel
}

// At implements image.Image.
func (s *Section) At(x, y int) color.Color {
	if !s.InBounds(x, y) {
		return color.RGBA{}
	}
	return s.Decode(s.Pixel(x, y))
}

// Decode converts a raw pixel value of this section to a color.
// Narrow channels are widened by bit replication so that full-intensity
// fields decode to 0xFF.
func (s *Section) Decode(v uint32) color.RGBA {
	if s.Header.BitCount == 8 {
		if int(v) < len(s.Colors) {
			q := s.Colors[v]
			return color.RGBA{R: q.Red, G: q.Green, B: q.Blue, A: 0xFF}
		}
		return color.RGBA{A: 0xFF}
	}
	return color.RGBA{
		R: widen(s.layout.Red, v),
		G: widen(s.layout.Green, v),
		B: widen(s.layout.Blue, v),
		A: 0xFF,
	}
}

func widen(c bitmask.Channel, v uint32) uint8 {
	e := c.Extract(v)
	w := uint(c.Width())
	if w == 0 || w >= 8 {
		return e
	}
	for shift := w; shift < 8; shift += w {
		e |= e >> shift
	}
	return e
}

// Set implements draw.Image.
func (s *Section) Set(x, y int, c color.Color) {
	if !s.InBounds(x, y) {
		return
	}
	s.SetPixel(x, y, s.Encode(c))
}

// Encode converts a color to the raw pixel value of this section.
// 8bpp sections return the index of the nearest color table entry.
func (s *Section) Encode(c color.Color) uint32 {
	if s.Header.BitCount == 8 {
		if len(s.palette) == 0 {
			return 0
		}
		return uint32(s.palette.Index(c))
	}
	r, g, b, _ := c.RGBA()
	return pack(s.Masks.Red, r) | pack(s.Masks.Green, g) | pack(s.Masks.Blue, b)
}

// pack places the top bits of a 16-bit channel value into mask.
func pack(mask, v16 uint32) uint32 {
	if mask == 0 {
		return 0
	}
	w := bitmask.CountSetBits(mask)
	shift := uint(bitmask.RightmostSetBit(mask))
	var field uint32
	if w <= 16 {
		field = v16 >> uint(16-w)
	} else {
		field = v16 << uint(w-16)
	}
	return field << shift & mask
}

// Clone returns a deep copy of the section.
func (s *Section) Clone() *Section {
	out := *s
	out.Bits = make([]byte, len(s.Bits))
	copy(out.Bits, s.Bits)
	out.Colors = s.Colors.Clone()
	out.palette = out.Colors.Palette()
	return &out
}

// SameFormat reports whether raw pixel values of s and o are interchangeable:
// same depth, same masks and, for 8bpp, the same color table.
func (s *Section) SameFormat(o *Section) bool {
	if s.Header.BitCount != o.Header.BitCount || s.Masks != o.Masks {
		return false
	}
	if s.Header.BitCount == 8 {
		return s.Colors.Equal(o.Colors)
	}
	return true
}

// Fill sets every pixel to c.
func (s *Section) Fill(c color.Color) {
	v := s.Encode(c)
	for y := range s.Height() {
		for x := range s.Header.Width {
			s.SetPixel(x, y, v)
		}
	}
}
