package dib

import (
	"errors"
	"image/color"
	"testing"
)

func TestStride(t *testing.T) {
	tests := []struct {
		width, bitCount, want int
	}{
		{1, 8, 4},
		{4, 8, 4},
		{5, 8, 8},
		{256, 8, 256},
		{3, 16, 8},
		{2, 16, 4},
		{1, 24, 4},
		{3, 24, 12},
		{5, 24, 16},
		{7, 32, 28},
	}
	for _, tt := range tests {
		if got := Stride(tt.width, tt.bitCount); got != tt.want {
			t.Errorf("Stride(%d, %d) = %d, want %d", tt.width, tt.bitCount, got, tt.want)
		}
	}
}

func TestHeaderValidate(t *testing.T) {
	tests := []struct {
		name string
		h    Header
		want error
	}{
		{"ok 8", Header{Width: 4, Height: 4, BitCount: 8}, nil},
		{"ok top-down", Header{Width: 4, Height: -4, BitCount: 24}, nil},
		{"ok bitfields 16", Header{Width: 4, Height: 4, BitCount: 16, Compression: BitFields}, nil},
		{"zero width", Header{Width: 0, Height: 4, BitCount: 8}, ErrInvalidDimensions},
		{"zero height", Header{Width: 4, Height: 0, BitCount: 8}, ErrInvalidDimensions},
		{"4bpp", Header{Width: 4, Height: 4, BitCount: 4}, ErrUnsupportedBitCount},
		{"bitfields 24", Header{Width: 4, Height: 4, BitCount: 24, Compression: BitFields}, ErrInvalidCompression},
		{"unknown compression", Header{Width: 4, Height: 4, BitCount: 8, Compression: 7}, ErrInvalidCompression},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.h.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMasksValidate(t *testing.T) {
	tests := []struct {
		name     string
		m        Masks
		bitCount int
		ok       bool
	}{
		{"555", Masks{0x7C00, 0x03E0, 0x001F}, 16, true},
		{"565", Masks{0xF800, 0x07E0, 0x001F}, 16, true},
		{"888", Masks{0xFF0000, 0xFF00, 0xFF}, 32, true},
		{"101010", Masks{0x3FF00000, 0x000FFC00, 0x000003FF}, 32, true},
		{"gap", Masks{0xB000, 0x03E0, 0x001F}, 16, false},
		{"overlap", Masks{0xFC00, 0x07E0, 0x001F}, 16, false},
		{"empty", Masks{0x7C00, 0, 0x001F}, 16, false},
		{"too wide", Masks{0x7C0000, 0x03E0, 0x001F}, 16, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate(tt.bitCount)
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidMask) {
				t.Errorf("Validate() = %v, want ErrInvalidMask", err)
			}
		})
	}
}

func TestNewRejectsMalformedBitFields(t *testing.T) {
	h := Header{Width: 2, Height: 2, BitCount: 16, Compression: BitFields}
	if _, err := New(h, Masks{0x7C00, 0x7C00, 0x001F}, nil); !errors.Is(err, ErrInvalidMask) {
		t.Errorf("New(overlapping masks) = %v, want ErrInvalidMask", err)
	}
}

func TestNewUsesDefaultMasks(t *testing.T) {
	s, err := New(Header{Width: 3, Height: 2, BitCount: 16}, Masks{0xF800, 0x07E0, 0x001F}, nil)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if s.Masks != DefaultMasks(16) {
		t.Errorf("Masks = %+v, want 5-5-5 defaults", s.Masks)
	}
	if got, want := len(s.Bits), 8*2; got != want {
		t.Errorf("len(Bits) = %d, want %d", got, want)
	}
}

func TestBottomUpStorage(t *testing.T) {
	s, err := New(Header{Width: 2, Height: 3, BitCount: 8}, Masks{}, GrayColorTable())
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	s.SetPixel(1, 0, 7) // top row lives in the last memory row

	if got := s.Bits[2*s.Stride()+1]; got != 7 {
		t.Errorf("top row byte = %d, want 7", got)
	}
	if got := s.MemoryRow(0); got != 2 {
		t.Errorf("MemoryRow(0) = %d, want 2", got)
	}

	td, err := New(Header{Width: 2, Height: -3, BitCount: 8}, Masks{}, GrayColorTable())
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	td.SetPixel(1, 0, 7)
	if got := td.Bits[1]; got != 7 {
		t.Errorf("top-down first byte = %d, want 7", got)
	}
}

func TestPixelRoundTrip(t *testing.T) {
	for _, bc := range []int{8, 16, 24, 32} {
		s, err := New(Header{Width: 5, Height: 4, BitCount: bc}, Masks{}, GrayColorTable())
		if err != nil {
			t.Fatalf("New(%d) = %v", bc, err)
		}
		want := uint32(0xA1B2C3D4) & s.ValueMask()
		s.SetPixel(4, 3, want)
		if got := s.Pixel(4, 3); got != want {
			t.Errorf("%dbpp Pixel() = %#x, want %#x", bc, got, want)
		}
		if got := s.Pixel(5, 0); got != 0 {
			t.Errorf("%dbpp out of range Pixel() = %#x, want 0", bc, got)
		}
	}
}

func TestDecodeWidensChannels(t *testing.T) {
	s, err := New(Header{Width: 1, Height: 1, BitCount: 16}, Masks{}, nil)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	tests := []struct {
		v    uint32
		want color.RGBA
	}{
		{0x7C00, color.RGBA{0xFF, 0, 0, 0xFF}},
		{0x03E0, color.RGBA{0, 0xFF, 0, 0xFF}},
		{0x001F, color.RGBA{0, 0, 0xFF, 0xFF}},
		{0x7FFF, color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}},
		{0x0000, color.RGBA{0, 0, 0, 0xFF}},
		{0x4210, color.RGBA{0x84, 0x84, 0x84, 0xFF}},
	}
	for _, tt := range tests {
		if got := s.Decode(tt.v); got != tt.want {
			t.Errorf("Decode(%#x) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestEncodeHighColor(t *testing.T) {
	s16, _ := New(Header{Width: 1, Height: 1, BitCount: 16, Compression: BitFields}, Masks{0xF800, 0x07E0, 0x001F}, nil)
	if got := s16.Encode(color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}); got != 0xFFFF {
		t.Errorf("565 Encode(white) = %#x, want 0xffff", got)
	}
	if got := s16.Encode(color.RGBA{0, 0xFF, 0, 0xFF}); got != 0x07E0 {
		t.Errorf("565 Encode(green) = %#x, want 0x07e0", got)
	}

	s32, _ := New(Header{Width: 1, Height: 1, BitCount: 32}, Masks{}, nil)
	if got := s32.Encode(color.RGBA{0x12, 0x34, 0x56, 0xFF}); got != 0x123456 {
		t.Errorf("888 Encode() = %#x, want 0x123456", got)
	}
}

func TestEncodeNearestIndex(t *testing.T) {
	table := ColorTable{{}, {Red: 0xFF}, {Green: 0xFF}, {Blue: 0xFF}}
	s, err := New(Header{Width: 1, Height: 1, BitCount: 8}, Masks{}, table)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if got := s.Encode(color.RGBA{0xF0, 0x10, 0x10, 0xFF}); got != 1 {
		t.Errorf("Encode(reddish) = %d, want 1", got)
	}
	if got := s.Encode(color.RGBA{0x10, 0x10, 0xE0, 0xFF}); got != 3 {
		t.Errorf("Encode(bluish) = %d, want 3", got)
	}
}

func TestSetColorTable(t *testing.T) {
	s, _ := New(Header{Width: 1, Height: 1, BitCount: 8}, Masks{}, nil)
	if err := s.SetColorTable(make(ColorTable, 257)); !errors.Is(err, ErrColorTableTooLarge) {
		t.Errorf("SetColorTable(257) = %v, want ErrColorTableTooLarge", err)
	}
	table := ColorTable{{Red: 1}, {Red: 2}}
	if err := s.SetColorTable(table); err != nil {
		t.Fatalf("SetColorTable() = %v", err)
	}
	table[0].Red = 9
	if s.Colors[0].Red != 1 {
		t.Error("SetColorTable did not copy the table")
	}
	if len(s.ColorModel().(color.Palette)) != 2 {
		t.Error("ColorModel() not refreshed after SetColorTable")
	}
}

func TestSameFormat(t *testing.T) {
	a, _ := New(Header{Width: 1, Height: 1, BitCount: 8}, Masks{}, GrayColorTable())
	b, _ := New(Header{Width: 9, Height: 9, BitCount: 8}, Masks{}, GrayColorTable())
	c, _ := New(Header{Width: 1, Height: 1, BitCount: 8}, Masks{}, ColorTable{{Red: 1}})
	d, _ := New(Header{Width: 1, Height: 1, BitCount: 32}, Masks{}, nil)

	if !a.SameFormat(b) {
		t.Error("equal 8bpp formats reported different")
	}
	if a.SameFormat(c) {
		t.Error("different color tables reported equal")
	}
	if a.SameFormat(d) {
		t.Error("different depths reported equal")
	}
}

func TestFromBits(t *testing.T) {
	h := Header{Width: 3, Height: 2, BitCount: 24}
	if _, err := FromBits(h, Masks{}, nil, make([]byte, 10)); !errors.Is(err, ErrDataTooSmall) {
		t.Errorf("FromBits(short) = %v, want ErrDataTooSmall", err)
	}
	bits := make([]byte, 32)
	s, err := FromBits(h, Masks{}, nil, bits)
	if err != nil {
		t.Fatalf("FromBits() = %v", err)
	}
	s.SetPixel(0, 1, 0xABCDEF)
	if bits[0] != 0xEF || bits[1] != 0xCD || bits[2] != 0xAB {
		t.Errorf("FromBits did not share storage: % x", bits[:3])
	}
}

func TestCloneIsDeep(t *testing.T) {
	s, _ := New(Header{Width: 2, Height: 2, BitCount: 8}, Masks{}, GrayColorTable())
	c := s.Clone()
	c.SetPixel(0, 0, 5)
	c.Colors[0].Red = 0x42
	if s.Pixel(0, 0) != 0 || s.Colors[0].Red != 0 {
		t.Error("Clone shares storage with the original")
	}
}
