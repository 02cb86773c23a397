package gdi

import (
	"errors"
	"image/color"
	"testing"

	"github.com/cchart-go/cchart/dib"
)

// memDC returns a memory DC holding a new DIB section and a cleanup func.
func memDC(t *testing.T, dev *Device, h dib.Header, colors dib.ColorTable) (*DC, *dib.Section) {
	t.Helper()
	dc, err := dev.CreateCompatibleDC(nil)
	if err != nil {
		t.Fatalf("CreateCompatibleDC() = %v", err)
	}
	bm, err := dev.CreateDIBSection(h, dib.Masks{}, colors)
	if err != nil {
		t.Fatalf("CreateDIBSection() = %v", err)
	}
	prev, err := dc.SelectObject(bm)
	if err != nil {
		t.Fatalf("SelectObject() = %v", err)
	}
	t.Cleanup(func() {
		_, _ = dc.SelectObject(prev)
		_ = bm.Delete()
		_ = dc.Delete()
	})
	sec, _ := bm.Section()
	return dc, sec
}

func TestBitBltSameFormat(t *testing.T) {
	dev := NewDevice(WithBitsPixel(32))
	src, ss := memDC(t, dev, dib.Header{Width: 4, Height: 4, BitCount: 32}, nil)
	dst, ds := memDC(t, dev, dib.Header{Width: 4, Height: 4, BitCount: 32}, nil)

	ss.SetPixel(1, 2, 0x00ABCDEF)
	if err := BitBlt(dst, 2, 1, 2, 2, src, 1, 2, SRCCOPY); err != nil {
		t.Fatalf("BitBlt() = %v", err)
	}
	if got := ds.Pixel(2, 1); got != 0x00ABCDEF {
		t.Errorf("Pixel(2,1) = %#x, want 0xabcdef", got)
	}
	if got := ds.Pixel(0, 0); got != 0 {
		t.Errorf("untouched Pixel(0,0) = %#x, want 0", got)
	}
}

func TestBitBltToPaletteNearest(t *testing.T) {
	dev := NewDevice()
	src, ss := memDC(t, dev, dib.Header{Width: 3, Height: 1, BitCount: 24}, nil)
	dst, ds := memDC(t, dev, dib.Header{Width: 3, Height: 1, BitCount: 8}, nil)

	ss.Set(0, 0, color.RGBA{0xFF, 0, 0, 0xFF})
	ss.Set(1, 0, color.RGBA{0x10, 0xF0, 0x08, 0xFF})
	ss.Set(2, 0, color.RGBA{0x7F, 0x7F, 0x7F, 0xFF})

	if err := BitBlt(dst, 0, 0, 3, 1, src, 0, 0, SRCCOPY); err != nil {
		t.Fatalf("BitBlt() = %v", err)
	}
	pal := dev.Palette()
	for x := range 3 {
		want := pal.Nearest(ss.At(x, 0))
		if got := int(ds.Pixel(x, 0)); got != want {
			t.Errorf("Pixel(%d,0) = %d, want nearest %d", x, got, want)
		}
	}
}

func TestBitBltToHighColor(t *testing.T) {
	dev := NewDevice(WithBitsPixel(16))
	src, ss := memDC(t, dev, dib.Header{Width: 1, Height: 1, BitCount: 8}, dib.ColorTable{{Red: 0xFF}})
	dst, ds := memDC(t, dev, dib.Header{Width: 1, Height: 1, BitCount: 16}, nil)
	ss.SetPixel(0, 0, 0)

	if err := BitBlt(dst, 0, 0, 1, 1, src, 0, 0, SRCCOPY); err != nil {
		t.Fatalf("BitBlt() = %v", err)
	}
	if got := ds.Pixel(0, 0); got != 0x7C00 {
		t.Errorf("Pixel(0,0) = %#x, want red 0x7c00", got)
	}
}

func TestBitBltRasterOps(t *testing.T) {
	dev := NewDevice(WithBitsPixel(32))
	src, ss := memDC(t, dev, dib.Header{Width: 1, Height: 1, BitCount: 32}, nil)
	dst, ds := memDC(t, dev, dib.Header{Width: 1, Height: 1, BitCount: 32}, nil)

	tests := []struct {
		rop  ROP
		want uint32
	}{
		{SRCAND, 0x00F0F000 & 0x00FF00FF},
		{SRCPAINT, 0x00F0F000 | 0x00FF00FF},
		{SRCINVERT, 0x00F0F000 ^ 0x00FF00FF},
		{DSTINVERT, ^uint32(0x00FF00FF)},
		{BLACKNESS, 0},
		{WHITENESS, 0xFFFFFFFF},
	}
	for _, tt := range tests {
		ss.SetPixel(0, 0, 0x00F0F000)
		ds.SetPixel(0, 0, 0x00FF00FF)
		if err := BitBlt(dst, 0, 0, 1, 1, src, 0, 0, tt.rop); err != nil {
			t.Fatalf("BitBlt(%v) = %v", tt.rop, err)
		}
		if got := ds.Pixel(0, 0); got != tt.want {
			t.Errorf("BitBlt(%v) pixel = %#x, want %#x", tt.rop, got, tt.want)
		}
	}
}

func TestBitBltPattern(t *testing.T) {
	dev := NewDevice(WithBitsPixel(32))
	dst, ds := memDC(t, dev, dib.Header{Width: 2, Height: 2, BitCount: 32}, nil)
	dst.SetBrush(color.RGBA{0x11, 0x22, 0x33, 0xFF})

	if err := BitBlt(dst, 0, 0, 2, 2, nil, 0, 0, PATCOPY); err != nil {
		t.Fatalf("BitBlt(PATCOPY) = %v", err)
	}
	if got := ds.Pixel(1, 1); got != 0x112233 {
		t.Errorf("Pixel(1,1) = %#x, want 0x112233", got)
	}
	if err := BitBlt(dst, 0, 0, 2, 2, nil, 0, 0, SRCCOPY); !errors.Is(err, ErrNoSource) {
		t.Errorf("BitBlt(SRCCOPY, nil src) = %v, want ErrNoSource", err)
	}
}

func TestBitBltClipsToSurfaces(t *testing.T) {
	dev := NewDevice(WithBitsPixel(32))
	src, ss := memDC(t, dev, dib.Header{Width: 2, Height: 2, BitCount: 32}, nil)
	dst, ds := memDC(t, dev, dib.Header{Width: 3, Height: 3, BitCount: 32}, nil)
	ss.Fill(color.White)

	if err := BitBlt(dst, 1, 1, 10, 10, src, 0, 0, SRCCOPY); err != nil {
		t.Fatalf("BitBlt() = %v", err)
	}
	for y := range 3 {
		for x := range 3 {
			want := uint32(0)
			if x >= 1 && y >= 1 {
				want = 0xFFFFFF
			}
			if got := ds.Pixel(x, y); got != want {
				t.Errorf("Pixel(%d,%d) = %#x, want %#x", x, y, got, want)
			}
		}
	}
}

func TestBitBltViewportOrigin(t *testing.T) {
	dev := NewDevice(WithBitsPixel(32))
	src, ss := memDC(t, dev, dib.Header{Width: 1, Height: 1, BitCount: 32}, nil)
	dst, ds := memDC(t, dev, dib.Header{Width: 4, Height: 4, BitCount: 32}, nil)
	ss.SetPixel(0, 0, 0x123456)
	dst.SetViewportOrg(2, 3)

	if err := BitBlt(dst, 0, 0, 1, 1, src, 0, 0, SRCCOPY); err != nil {
		t.Fatalf("BitBlt() = %v", err)
	}
	if got := ds.Pixel(2, 3); got != 0x123456 {
		t.Errorf("Pixel(2,3) = %#x, want 0x123456", got)
	}
}

func TestBitBltDisplayDC(t *testing.T) {
	dev := NewDevice(WithBitsPixel(32), WithScreenSize(8, 8))
	screen := dev.GetDC()
	defer screen.Delete()
	src, ss := memDC(t, dev, dib.Header{Width: 2, Height: 2, BitCount: 32}, nil)
	ss.SetPixel(1, 1, 0xFEDCBA)

	if err := BitBlt(screen, 4, 4, 2, 2, src, 0, 0, SRCCOPY); err != nil {
		t.Fatalf("BitBlt() = %v", err)
	}
	if got := dev.Screen().Pixel(5, 5); got != 0xFEDCBA {
		t.Errorf("screen Pixel(5,5) = %#x, want 0xfedcba", got)
	}
}

func TestStretchBlt(t *testing.T) {
	dev := NewDevice(WithBitsPixel(32))
	src, ss := memDC(t, dev, dib.Header{Width: 2, Height: 2, BitCount: 32}, nil)
	dst, ds := memDC(t, dev, dib.Header{Width: 4, Height: 4, BitCount: 32}, nil)
	ss.SetPixel(0, 0, 1)
	ss.SetPixel(1, 0, 2)
	ss.SetPixel(0, 1, 3)
	ss.SetPixel(1, 1, 4)

	if err := StretchBlt(dst, 0, 0, 4, 4, src, 0, 0, 2, 2, SRCCOPY); err != nil {
		t.Fatalf("StretchBlt() = %v", err)
	}
	want := [4][4]uint32{
		{1, 1, 2, 2},
		{1, 1, 2, 2},
		{3, 3, 4, 4},
		{3, 3, 4, 4},
	}
	for y := range 4 {
		for x := range 4 {
			if got := ds.Pixel(x, y); got != want[y][x] {
				t.Errorf("Pixel(%d,%d) = %d, want %d", x, y, got, want[y][x])
			}
		}
	}

	// Shrink back: every other source pixel.
	small, sms := memDC(t, dev, dib.Header{Width: 2, Height: 2, BitCount: 32}, nil)
	if err := StretchBlt(small, 0, 0, 2, 2, dst, 0, 0, 4, 4, SRCCOPY); err != nil {
		t.Fatalf("StretchBlt(shrink) = %v", err)
	}
	if sms.Pixel(1, 1) != 4 || sms.Pixel(0, 0) != 1 {
		t.Errorf("shrunk pixels = %d,%d; want 1,4", sms.Pixel(0, 0), sms.Pixel(1, 1))
	}
}

func TestStretchBltNegativeSizeDrawsNothing(t *testing.T) {
	dev := NewDevice(WithBitsPixel(32))
	src, ss := memDC(t, dev, dib.Header{Width: 2, Height: 2, BitCount: 32}, nil)
	dst, ds := memDC(t, dev, dib.Header{Width: 2, Height: 2, BitCount: 32}, nil)
	ss.SetPixel(0, 0, 7)

	tests := []struct {
		name           string
		dw, dh, sw, sh int
	}{
		{"mirrored destination width", -2, 2, 2, 2},
		{"mirrored destination height", 2, -2, 2, 2},
		{"mirrored source width", 2, 2, -2, 2},
		{"mirrored source height", 2, 2, 2, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := StretchBlt(dst, 0, 0, tt.dw, tt.dh, src, 0, 0, tt.sw, tt.sh, SRCCOPY); err != nil {
				t.Fatalf("StretchBlt() = %v", err)
			}
			for y := range 2 {
				for x := range 2 {
					if got := ds.Pixel(x, y); got != 0 {
						t.Errorf("Pixel(%d,%d) = %d, want 0", x, y, got)
					}
				}
			}
		})
	}
}

func TestBlitDeletedHandles(t *testing.T) {
	dev := NewDevice()
	a, _ := dev.CreateCompatibleDC(nil)
	b, _ := dev.CreateCompatibleDC(nil)
	_ = b.Delete()
	defer a.Delete()

	if err := BitBlt(a, 0, 0, 1, 1, b, 0, 0, SRCCOPY); !errors.Is(err, ErrDeleted) {
		t.Errorf("BitBlt(deleted src) = %v, want ErrDeleted", err)
	}
	if err := StretchBlt(b, 0, 0, 1, 1, a, 0, 0, 1, 1, SRCCOPY); !errors.Is(err, ErrDeleted) {
		t.Errorf("StretchBlt(deleted dst) = %v, want ErrDeleted", err)
	}
}

func TestBitBltDither(t *testing.T) {
	pal, _ := PaletteFromColors(color.Palette{color.Black, color.White})
	dev := NewDevice(WithPalette(pal), WithDither(true), WithScreenSize(16, 16))
	src, ss := memDC(t, dev, dib.Header{Width: 16, Height: 16, BitCount: 24}, nil)
	mem, ms := memDC(t, dev, dib.Header{Width: 16, Height: 16, BitCount: 8}, nil)
	screen := dev.GetDC()
	defer screen.Delete()
	ss.Fill(color.RGBA{0x80, 0x80, 0x80, 0xFF})

	count := func(s *dib.Section) (white int) {
		for y := range 16 {
			for x := range 16 {
				if s.Pixel(x, y) == 1 {
					white++
				}
			}
		}
		return white
	}

	if err := BitBlt(screen, 0, 0, 16, 16, src, 0, 0, SRCCOPY); err != nil {
		t.Fatalf("BitBlt() = %v", err)
	}
	// Error diffusion of mid gray over black and white gives roughly half of each.
	if white := count(dev.Screen()); white < 96 || white > 160 {
		t.Errorf("white screen pixels = %d, want about 128", white)
	}

	// Memory bitmaps get the nearest color.
	if err := BitBlt(mem, 0, 0, 16, 16, src, 0, 0, SRCCOPY); err != nil {
		t.Fatalf("BitBlt() = %v", err)
	}
	if white := count(ms); white != 256 {
		t.Errorf("white memory pixels = %d, want 256", white)
	}
}
