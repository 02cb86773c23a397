// Package bitmask decomposes packed-pixel color masks into byte-sized
// channel extractors.
//
// A color mask selects the bits of a 16 or 32 bit pixel that carry one
// channel. Masks wider than 8 bits are narrowed to their top 8 bits so that
// every channel extracts into a single byte.
package bitmask

import "math/bits"

// None is returned by RightmostSetBit and LeftmostSetBit for a zero mask.
const None = -1

// MaxChannelBits is the widest channel an extractor produces.
const MaxChannelBits = 8

// CountSetBits returns the number of set bits in mask.
func CountSetBits(mask uint32) int {
	return bits.OnesCount32(mask)
}

// RightmostSetBit returns the index of the lowest set bit, or None.
func RightmostSetBit(mask uint32) int {
	if mask == 0 {
		return None
	}
	return bits.TrailingZeros32(mask)
}

// LeftmostSetBit returns the index of the highest set bit, or None.
func LeftmostSetBit(mask uint32) int {
	if mask == 0 {
		return None
	}
	return 31 - bits.LeadingZeros32(mask)
}

// IsContiguous reports whether the set bits of mask form one run.
// Zero and single-bit masks are contiguous.
func IsContiguous(mask uint32) bool {
	left, right := LeftmostSetBit(mask), RightmostSetBit(mask)
	if left == right {
		return true
	}
	run := uint32(1)<<uint(left-right+1) - 1
	return mask == run<<uint(right)
}

// Normalize clears the lowest set bits of mask until at most
// MaxChannelBits remain.
func Normalize(mask uint32) uint32 {
	for CountSetBits(mask) > MaxChannelBits {
		mask &^= 1 << uint(RightmostSetBit(mask))
	}
	return mask
}

// Channel extracts one color channel from a packed pixel.
//
// The extracted value occupies the top bits of the returned byte: a 5-bit
// field becomes a byte whose low 3 bits are zero.
type Channel struct {
	Mask  uint32 // normalized mask, at most 8 bits
	Shift uint   // right shift aligning Mask to bit 0
	Pad   uint   // left shift widening the field to 8 bits
}

// NewChannel builds the extractor for mask. A zero mask yields a channel
// that always extracts 0.
func NewChannel(mask uint32) Channel {
	m := Normalize(mask)
	if m == 0 {
		return Channel{}
	}
	return Channel{
		Mask:  m,
		Shift: uint(RightmostSetBit(m)),
		Pad:   uint(MaxChannelBits - CountSetBits(m)),
	}
}

// Extract returns the channel value of pixel widened to 8 bits.
func (c Channel) Extract(pixel uint32) uint8 {
	return uint8((pixel & c.Mask) >> c.Shift << c.Pad)
}

// Width returns the number of significant bits the channel carries.
func (c Channel) Width() int {
	return CountSetBits(c.Mask)
}

// Layout is the red, green and blue extractors of one pixel format.
type Layout struct {
	Red, Green, Blue Channel
}

// NewLayout builds extractors for the three channel masks.
func NewLayout(red, green, blue uint32) Layout {
	return Layout{
		Red:   NewChannel(red),
		Green: NewChannel(green),
		Blue:  NewChannel(blue),
	}
}

// Key555 returns the 15-bit key of pixel under l.
func (l Layout) Key555(pixel uint32) uint16 {
	return Key555(l.Red.Extract(pixel), l.Green.Extract(pixel), l.Blue.Extract(pixel))
}

// Overlaps reports whether any two normalized channel masks share a bit.
func (l Layout) Overlaps() bool {
	return l.Red.Mask&l.Green.Mask != 0 ||
		l.Red.Mask&l.Blue.Mask != 0 ||
		l.Green.Mask&l.Blue.Mask != 0
}

// Key555 packs 8-bit channels into a 15-bit 5-5-5 key, red highest.
func Key555(r, g, b uint8) uint16 {
	return uint16(r>>3)<<10 | uint16(g>>3)<<5 | uint16(b>>3)
}

// Split555 returns the 8-bit channels encoded by a 15-bit key.
// The low 3 bits of each channel are zero.
func Split555(key uint16) (r, g, b uint8) {
	return uint8(key>>10&0x1F) << 3, uint8(key>>5&0x1F) << 3, uint8(key&0x1F) << 3
}

// Masks for the 5-5-5 layout.
const (
	Red555   uint32 = 0x7C00
	Green555 uint32 = 0x03E0
	Blue555  uint32 = 0x001F
)

// Masks for the 8-8-8 layout.
const (
	Red888   uint32 = 0xFF0000
	Green888 uint32 = 0x00FF00
	Blue888  uint32 = 0x0000FF
)
