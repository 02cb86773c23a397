package gdi

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cchart-go/cchart"
	"github.com/cchart-go/cchart/dib"
)

// Option configures a Device during creation.
//
// Example:
//
//	dev := gdi.NewDevice(gdi.WithBitsPixel(8), gdi.WithDither(true))
type Option func(*deviceOptions)

// deviceOptions holds optional configuration for Device creation.
type deviceOptions struct {
	bitsPixel int
	width     int
	height    int
	palette   *Palette
	dither    bool
	logger    *slog.Logger
}

// defaultOptions returns an 8bpp 640x480 device with the halftone palette.
func defaultOptions() deviceOptions {
	return deviceOptions{
		bitsPixel: 8,
		width:     640,
		height:    480,
	}
}

// WithBitsPixel sets the device pixel depth (8, 16, 24 or 32).
func WithBitsPixel(bpp int) Option {
	return func(o *deviceOptions) {
		o.bitsPixel = bpp
	}
}

// WithScreenSize sets the size of the device frame buffer.
func WithScreenSize(width, height int) Option {
	return func(o *deviceOptions) {
		o.width = width
		o.height = height
	}
}

// WithPalette sets the system palette. Defaults to DefaultPalette.
func WithPalette(p *Palette) Option {
	return func(o *deviceOptions) {
		o.palette = p
	}
}

// WithDither enables Floyd-Steinberg error diffusion when colors are
// reduced to the palette of the frame buffer. Copies into memory bitmaps
// always use the nearest color.
func WithDither(on bool) Option {
	return func(o *deviceOptions) {
		o.dither = on
	}
}

// WithLogger sets the logger of the device. Defaults to cchart.Logger()
// at the time of each log call.
func WithLogger(l *slog.Logger) Option {
	return func(o *deviceOptions) {
		o.logger = l
	}
}

// Stats reports handle accounting of a device.
type Stats struct {
	// LiveDCs is the number of DCs created and not yet deleted.
	LiveDCs int

	// LiveBitmaps is the number of bitmaps created and not yet deleted.
	LiveBitmaps int

	// CreatedDCs is the total number of DCs ever created.
	CreatedDCs int

	// CreatedBitmaps is the total number of bitmaps ever created.
	CreatedBitmaps int
}

// Live returns the number of outstanding handles.
func (s Stats) Live() int {
	return s.LiveDCs + s.LiveBitmaps
}

// Device is one display: a frame buffer of fixed depth and a system palette.
//
// Device methods are safe for concurrent use. DCs and bitmaps are not; each
// should be used from a single goroutine.
type Device struct {
	bitsPixel int
	palette   *Palette
	dither    bool
	logger    *slog.Logger
	screen    *dib.Section

	mu    sync.Mutex
	stats Stats
}

// NewDevice creates a device. Invalid depths fall back to 8bpp.
func NewDevice(opts ...Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch o.bitsPixel {
	case 8, 16, 24, 32:
	default:
		o.bitsPixel = 8
	}
	if o.width <= 0 {
		o.width = 1
	}
	if o.height <= 0 {
		o.height = 1
	}
	if o.palette == nil {
		o.palette = DefaultPalette()
	}

	d := &Device{
		bitsPixel: o.bitsPixel,
		palette:   o.palette,
		dither:    o.dither,
		logger:    o.logger,
	}

	var colors dib.ColorTable
	if d.bitsPixel == 8 {
		colors = d.palette.ColorTable()
	}
	// Header is valid by construction.
	d.screen, _ = dib.New(dib.Header{Width: o.width, Height: o.height, BitCount: d.bitsPixel}, dib.Masks{}, colors)

	d.log().Info("gdi: device created",
		"bitsPixel", d.bitsPixel,
		"width", o.width,
		"height", o.height,
		"paletteSize", d.palette.Len(),
		"dither", d.dither)
	return d
}

// BitsPixel returns the device pixel depth.
func (d *Device) BitsPixel() int {
	return d.bitsPixel
}

// Palette returns the system palette.
func (d *Device) Palette() *Palette {
	return d.palette
}

// Dither reports whether palette reduction uses error diffusion.
func (d *Device) Dither() bool {
	return d.dither
}

// Screen returns the device frame buffer.
func (d *Device) Screen() *dib.Section {
	return d.screen
}

// Stats returns a snapshot of the handle accounting.
func (d *Device) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

func (d *Device) log() *slog.Logger {
	if d.logger != nil {
		return d.logger
	}
	return cchart.Logger()
}

func (d *Device) trackDC(delta int) {
	d.mu.Lock()
	d.stats.LiveDCs += delta
	if delta > 0 {
		d.stats.CreatedDCs += delta
	}
	d.mu.Unlock()
}

func (d *Device) trackBitmap(delta int) {
	d.mu.Lock()
	d.stats.LiveBitmaps += delta
	if delta > 0 {
		d.stats.CreatedBitmaps += delta
	}
	d.mu.Unlock()
}

// GetDC returns a display DC drawing to the device frame buffer.
// Release it with Delete.
func (d *Device) GetDC() *DC {
	d.trackDC(1)
	return &DC{dev: d, display: true}
}

// CreateCompatibleDC creates a memory DC for the device of dc, or of d when
// dc is nil. The new DC holds the 1x1 stock bitmap until another bitmap is
// selected into it.
func (d *Device) CreateCompatibleDC(dc *DC) (*DC, error) {
	if dc != nil {
		if err := dc.check(); err != nil {
			return nil, err
		}
		if dc.dev != d {
			return nil, ErrForeignDevice
		}
	}
	d.trackDC(1)
	return &DC{dev: d, bitmap: stockBitmap}, nil
}

// CreateDIBSection creates a bitmap whose pixel bits are directly readable
// through Bitmap.Section. For 8bpp headers a nil color table defaults to
// the system palette.
func (d *Device) CreateDIBSection(h dib.Header, masks dib.Masks, colors dib.ColorTable) (*Bitmap, error) {
	if h.BitCount == 8 && colors == nil {
		colors = d.palette.ColorTable()
	}
	sec, err := dib.New(h, masks, colors)
	if err != nil {
		return nil, fmt.Errorf("gdi: create DIB section: %w", err)
	}
	d.trackBitmap(1)
	return &Bitmap{dev: d, sec: sec, dibSection: true}, nil
}

// CreateCompatibleBitmap creates a device-dependent bitmap in the format of
// the device of dc. Its bits are not directly readable.
func (d *Device) CreateCompatibleBitmap(dc *DC, width, height int) (*Bitmap, error) {
	if err := dc.check(); err != nil {
		return nil, err
	}
	if dc.dev != d {
		return nil, ErrForeignDevice
	}
	var colors dib.ColorTable
	if d.bitsPixel == 8 {
		colors = dc.Palette().ColorTable()
	}
	sec, err := dib.New(dib.Header{Width: width, Height: height, BitCount: d.bitsPixel}, dib.Masks{}, colors)
	if err != nil {
		return nil, fmt.Errorf("gdi: create compatible bitmap: %w", err)
	}
	d.trackBitmap(1)
	return &Bitmap{dev: d, sec: sec}, nil
}
