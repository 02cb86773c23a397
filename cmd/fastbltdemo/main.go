// Command fastbltdemo copies a high-color image onto a simulated 8bpp
// palettized display, with and without palette conversion.
package main

import (
	"flag"
	"image/color"
	"log"
	"log/slog"
	"os"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cchart-go/cchart"
	"github.com/cchart-go/cchart/dib"
	"github.com/cchart-go/cchart/fastblt"
	"github.com/cchart-go/cchart/gdi"
)

func main() {
	var (
		width   = flag.Int("width", 640, "source width")
		height  = flag.Int("height", 480, "source height")
		bpp     = flag.Int("bpp", 24, "source bits per pixel (16, 24 or 32)")
		scale   = flag.Int("scale", 1, "stretch factor applied to the copy")
		input   = flag.String("input", "", "optional BMP file scaled into the source")
		output  = flag.String("output", "fastblt.png", "output file (.png or .bmp)")
		plain   = flag.Bool("plain", false, "disable palette conversion")
		dither  = flag.Bool("dither", false, "dither when the display reduces colors")
		verbose = flag.Bool("v", false, "log debug output")
		lang    = flag.String("lang", "en", "language for the report")
	)
	flag.Parse()

	if *verbose {
		cchart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if *scale < 1 {
		*scale = 1
	}

	dev := gdi.NewDevice(
		gdi.WithBitsPixel(8),
		gdi.WithScreenSize(*width**scale, *height**scale),
		gdi.WithDither(*dither),
	)

	bm, err := dev.CreateDIBSection(dib.Header{Width: *width, Height: *height, BitCount: *bpp}, dib.Masks{}, nil)
	if err != nil {
		log.Fatalf("Failed to create source: %v", err)
	}
	defer bm.Delete()
	sec, err := bm.Section()
	if err != nil {
		log.Fatalf("Failed to read source: %v", err)
	}

	if *input != "" {
		img, err := dib.Load(*input, 32)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", *input, err)
		}
		xdraw.CatmullRom.Scale(sec, sec.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	} else {
		drawGradient(sec)
	}

	mem, err := dev.CreateCompatibleDC(nil)
	if err != nil {
		log.Fatalf("Failed to create DC: %v", err)
	}
	defer mem.Delete()
	if _, err := mem.SelectObject(bm); err != nil {
		log.Fatalf("Failed to select source: %v", err)
	}

	screen := dev.GetDC()
	defer screen.Delete()

	blitter := fastblt.NewBlitter(fastblt.WithEnabled(!*plain))
	start := time.Now()
	if *scale == 1 {
		err = blitter.BitBlt(screen, 0, 0, *width, *height, mem, 0, 0, gdi.SRCCOPY)
	} else {
		err = blitter.StretchBlt(screen, 0, 0, *width**scale, *height**scale, mem, 0, 0, *width, *height, gdi.SRCCOPY)
	}
	elapsed := time.Since(start)
	if err != nil {
		log.Fatalf("Copy failed: %v", err)
	}

	if err := dev.Screen().Save(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	st := blitter.Stats()
	p := message.NewPrinter(language.Make(*lang))
	p.Printf("Copied %d pixels (%d-bit source, threshold %d) in %v\n",
		*width**height, *bpp, blitter.Threshold(), elapsed.Round(time.Microsecond))
	p.Printf("Accelerated copies: %d, plain copies: %d\n", st.Accelerated, st.Fallback)
	p.Printf("Saved %s (%dx%d, %d colors)\n", *output, *width**scale, *height**scale, dev.Palette().Len())
}

// drawGradient fills s with a hue sweep over a vertical fade.
func drawGradient(s *dib.Section) {
	w, h := s.Width(), s.Height()
	for y := range h {
		v := 255 - y*255/max(h-1, 1)
		for x := range w {
			t := x * 6 * 256 / max(w, 1)
			r, g, b := hue(t)
			s.Set(x, y, color.RGBA{
				R: uint8(r * v / 255),
				G: uint8(g * v / 255),
				B: uint8(b * v / 255),
				A: 0xFF,
			})
		}
	}
}

// hue maps t in [0, 6*256) to a fully saturated color.
func hue(t int) (r, g, b int) {
	f := t % 256
	switch t / 256 {
	case 0:
		return 255, f, 0
	case 1:
		return 255 - f, 255, 0
	case 2:
		return 0, 255, f
	case 3:
		return 0, 255 - f, 255
	case 4:
		return f, 0, 255
	default:
		return 255, 0, 255 - f
	}
}
