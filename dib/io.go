package dib

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
)

// FromImage converts img into a new bottom-up section of the given depth.
// An 8bpp conversion takes its color table from an *image.Paletted source,
// or a gray ramp otherwise.
func FromImage(img image.Image, bitCount int) (*Section, error) {
	b := img.Bounds()
	h := Header{Width: b.Dx(), Height: b.Dy(), BitCount: bitCount}

	var colors ColorTable
	if bitCount == 8 {
		if p, ok := img.(*image.Paletted); ok {
			colors = ColorTableFromPalette(p.Palette)
		} else {
			colors = GrayColorTable()
		}
	}

	s, err := New(h, Masks{}, colors)
	if err != nil {
		return nil, err
	}

	if p, ok := img.(*image.Paletted); ok && bitCount == 8 {
		for y := range h.Height {
			copy(s.Row(y), p.Pix[y*p.Stride:y*p.Stride+h.Width])
		}
		return s, nil
	}

	draw.Draw(s, s.Bounds(), img, b.Min, draw.Src)
	return s, nil
}

// Image returns a top-down copy of the section as a standard image:
// *image.Paletted for 8bpp, *image.RGBA otherwise.
func (s *Section) Image() image.Image {
	r := s.Bounds()
	if s.Header.BitCount == 8 {
		pal := s.palette
		if len(pal) == 0 {
			pal = GrayColorTable().Palette()
		}
		p := image.NewPaletted(r, pal)
		for y := range r.Dy() {
			copy(p.Pix[y*p.Stride:y*p.Stride+r.Dx()], s.Row(y))
		}
		return p
	}
	out := image.NewRGBA(r)
	for y := range r.Dy() {
		for x := range r.Dx() {
			out.SetRGBA(x, y, s.Decode(s.Pixel(x, y)))
		}
	}
	return out
}

// Decode reads a BMP stream into a section of the given depth.
// Pass 0 to keep 8bpp for palettized files and use 32bpp otherwise.
func Decode(r io.Reader, bitCount int) (*Section, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("dib: decode BMP: %w", err)
	}
	if bitCount == 0 {
		bitCount = 32
		if _, ok := img.(*image.Paletted); ok {
			bitCount = 8
		}
	}
	return FromImage(img, bitCount)
}

// Encode writes the section as a BMP stream.
func Encode(w io.Writer, s *Section) error {
	if err := bmp.Encode(w, s.Image()); err != nil {
		return fmt.Errorf("dib: encode BMP: %w", err)
	}
	return nil
}

// EncodePNG writes the section as a PNG stream.
func EncodePNG(w io.Writer, s *Section) error {
	if err := png.Encode(w, s.Image()); err != nil {
		return fmt.Errorf("dib: encode PNG: %w", err)
	}
	return nil
}

// Load reads a BMP file. See Decode for bitCount.
func Load(path string, bitCount int) (*Section, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("dib: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, bitCount)
}

// Save writes the section to path, as PNG when the extension is .png and
// as BMP otherwise.
func (s *Section) Save(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("dib: create file: %w", err)
	}

	enc := Encode
	if filepath.Ext(path) == ".png" {
		enc = EncodePNG
	}
	if err := enc(f, s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
