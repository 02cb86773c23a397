package gdi

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/cchart-go/cchart/dib"
)

// BitBlt copies a w x h rectangle from src at (sx, sy) to dst at (dx, dy),
// combining pixels with rop. Coordinates are logical. src may be nil when
// rop does not use a source. Pixels falling outside either surface are
// skipped. A non-positive w or h draws nothing.
func BitBlt(dst *DC, dx, dy, w, h int, src *DC, sx, sy int, rop ROP) error {
	return blit(dst, image.Rect(dx, dy, dx+w, dy+h), src, image.Rect(sx, sy, sx+w, sy+h), w, h, rop)
}

// StretchBlt copies the sw x sh rectangle of src at (sx, sy) into the
// dw x dh rectangle of dst at (dx, dy), scaling by nearest-neighbour
// sampling.
//
// Negative sizes do not mirror the image as they do on a native device:
// any non-positive dw, dh, sw or sh draws nothing and returns the handle
// check result.
func StretchBlt(dst *DC, dx, dy, dw, dh int, src *DC, sx, sy, sw, sh int, rop ROP) error {
	if sw <= 0 || sh <= 0 {
		return checkBlitHandles(dst, src, rop)
	}
	return blit(dst, image.Rect(dx, dy, dx+dw, dy+dh), src, image.Rect(sx, sy, sx+sw, sy+sh), dw, dh, rop)
}

func checkBlitHandles(dst, src *DC, rop ROP) error {
	if err := dst.check(); err != nil {
		return err
	}
	if !rop.UsesSource() {
		return nil
	}
	if src == nil {
		return ErrNoSource
	}
	if err := src.check(); err != nil {
		return err
	}
	if src.dev != dst.dev {
		return ErrForeignDevice
	}
	return nil
}

// blit maps every pixel of the dw x dh destination rectangle dr onto the
// source rectangle sr and combines them with rop.
func blit(dst *DC, dr image.Rectangle, src *DC, sr image.Rectangle, dw, dh int, rop ROP) error {
	if err := checkBlitHandles(dst, src, rop); err != nil {
		return err
	}
	if dw <= 0 || dh <= 0 {
		return nil
	}

	out := dst.surface()
	dr = dr.Add(dst.org)

	var conv *converted
	if rop.UsesSource() {
		sr = sr.Add(src.org)
		conv = convert(src.surface(), sr.Intersect(src.surface().Bounds()), out, dst.display && dst.dev.dither)
	}

	var pattern uint32
	if rop.UsesPattern() {
		pattern = out.Encode(dst.Brush())
	}
	valueMask := out.ValueMask()
	copyOnly := rop.Code() == SRCCOPY.Code()
	sw, sh := sr.Dx(), sr.Dy()

	for y := range dh {
		ty := dr.Min.Y + y
		if ty < 0 || ty >= out.Height() {
			continue
		}
		srcY := sr.Min.Y + y*sh/dh
		for x := range dw {
			tx := dr.Min.X + x
			if tx < 0 || tx >= out.Width() {
				continue
			}

			var s uint32
			if conv != nil {
				v, ok := conv.at(sr.Min.X+x*sw/dw, srcY)
				if !ok {
					continue
				}
				s = v
			}

			if copyOnly {
				out.SetPixel(tx, ty, s)
				continue
			}
			var d uint32
			if rop.UsesDest() {
				d = out.Pixel(tx, ty)
			}
			out.SetPixel(tx, ty, rop.Apply(pattern, s, d)&valueMask)
		}
	}

	dst.dev.log().Debug("gdi: blit",
		"dst", dr, "src", sr, "rop", rop, "dstBits", out.BitCount())
	return nil
}

// converted holds a source rectangle already translated into raw pixel
// values of the destination format.
type converted struct {
	r    image.Rectangle
	vals []uint32
}

func (c *converted) at(x, y int) (uint32, bool) {
	if !(image.Point{x, y}.In(c.r)) {
		return 0, false
	}
	return c.vals[(y-c.r.Min.Y)*c.r.Dx()+(x-c.r.Min.X)], true
}

// convert translates r of src into raw values of dst's format. Identical
// formats copy raw values, palettized targets go through nearest-color
// matching (or error diffusion), other targets re-encode each color.
func convert(src *dib.Section, r image.Rectangle, dst *dib.Section, dither bool) *converted {
	c := &converted{r: r, vals: make([]uint32, r.Dx()*r.Dy())}
	if r.Empty() {
		return c
	}

	switch {
	case src.SameFormat(dst):
		i := 0
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				c.vals[i] = src.Pixel(x, y)
				i++
			}
		}

	case dst.BitCount() == 8:
		palette := dst.Colors.Palette()
		if len(palette) == 0 {
			return c
		}
		pm := image.NewPaletted(image.Rect(0, 0, r.Dx(), r.Dy()), palette)
		var drawer xdraw.Drawer = xdraw.Src
		if dither {
			drawer = xdraw.FloydSteinberg
		}
		drawer.Draw(pm, pm.Bounds(), src, r.Min)
		i := 0
		for y := range r.Dy() {
			for _, idx := range pm.Pix[y*pm.Stride : y*pm.Stride+r.Dx()] {
				c.vals[i] = uint32(idx)
				i++
			}
		}

	default:
		i := 0
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				c.vals[i] = dst.Encode(src.Decode(src.Pixel(x, y)))
				i++
			}
		}
	}
	return c
}
