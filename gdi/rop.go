package gdi

import "fmt"

// ROP is a ternary raster operation code. Bits 16-23 hold the truth table
// combining pattern (P), source (S) and destination (D) bits; the low word
// is the conventional parse string and is ignored.
//
// Raster operations act on raw pixel values in the destination format, so
// on palettized targets they combine palette indices.
type ROP uint32

// Standard raster operations.
const (
	BLACKNESS   ROP = 0x00000042 // 0
	NOTSRCERASE ROP = 0x001100A6 // ~(S | D)
	NOTSRCCOPY  ROP = 0x00330008 // ~S
	SRCERASE    ROP = 0x00440328 // S & ~D
	DSTINVERT   ROP = 0x00550009 // ~D
	PATINVERT   ROP = 0x005A0049 // P ^ D
	SRCINVERT   ROP = 0x00660046 // S ^ D
	SRCAND      ROP = 0x008800C6 // S & D
	MERGEPAINT  ROP = 0x00BB0226 // ~S | D
	MERGECOPY   ROP = 0x00C000CA // P & S
	SRCCOPY     ROP = 0x00CC0020 // S
	SRCPAINT    ROP = 0x00EE0086 // S | D
	PATCOPY     ROP = 0x00F00021 // P
	PATPAINT    ROP = 0x00FB0A09 // P | ~S | D
	WHITENESS   ROP = 0x00FF0062 // 1
)

// Code returns the truth table byte.
func (r ROP) Code() uint8 {
	return uint8(r >> 16)
}

// UsesSource reports whether the result depends on the source.
func (r ROP) UsesSource() bool {
	c := r.Code()
	return (c>>2^c)&0x33 != 0
}

// UsesPattern reports whether the result depends on the pattern brush.
func (r ROP) UsesPattern() bool {
	c := r.Code()
	return (c>>4^c)&0x0F != 0
}

// UsesDest reports whether the result depends on the destination.
func (r ROP) UsesDest() bool {
	c := r.Code()
	return (c>>1^c)&0x55 != 0
}

// Apply evaluates the operation bitwise on pattern, source and destination.
func (r ROP) Apply(p, s, d uint32) uint32 {
	switch r.Code() {
	case 0xCC:
		return s
	case 0x00:
		return 0
	case 0xFF:
		return 0xFFFFFFFF
	}

	code := r.Code()
	var out uint32
	for i := range 8 {
		if code&(1<<uint(i)) == 0 {
			continue
		}
		term := ^uint32(0)
		term &= pick(i&4 != 0, p)
		term &= pick(i&2 != 0, s)
		term &= pick(i&1 != 0, d)
		out |= term
	}
	return out
}

func pick(set bool, v uint32) uint32 {
	if set {
		return v
	}
	return ^v
}

// String returns the conventional name, or the hex code.
func (r ROP) String() string {
	switch r {
	case BLACKNESS:
		return "BLACKNESS"
	case NOTSRCERASE:
		return "NOTSRCERASE"
	case NOTSRCCOPY:
		return "NOTSRCCOPY"
	case SRCERASE:
		return "SRCERASE"
	case DSTINVERT:
		return "DSTINVERT"
	case PATINVERT:
		return "PATINVERT"
	case SRCINVERT:
		return "SRCINVERT"
	case SRCAND:
		return "SRCAND"
	case MERGEPAINT:
		return "MERGEPAINT"
	case MERGECOPY:
		return "MERGECOPY"
	case SRCCOPY:
		return "SRCCOPY"
	case SRCPAINT:
		return "SRCPAINT"
	case PATCOPY:
		return "PATCOPY"
	case PATPAINT:
		return "PATPAINT"
	case WHITENESS:
		return "WHITENESS"
	default:
		return fmt.Sprintf("ROP(%#08x)", uint32(r))
	}
}
