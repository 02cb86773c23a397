package fastblt

import (
	"log/slog"
	"sync/atomic"

	"github.com/cchart-go/cchart"
	"github.com/cchart-go/cchart/gdi"
	"github.com/cchart-go/cchart/internal/parallel"
)

// DefaultThreshold is the pixel count a copy must exceed to take the fast path.
const DefaultThreshold = 128000

// Option configures a Blitter during creation.
type Option func(*options)

type options struct {
	threshold int
	enabled   bool
	workers   int
	logger    *slog.Logger
}

func defaultOptions() options {
	return options{
		threshold: DefaultThreshold,
		enabled:   true,
	}
}

// WithThreshold sets the pixel count a copy must exceed to be converted.
func WithThreshold(pixels int) Option {
	return func(o *options) {
		o.threshold = pixels
	}
}

// WithEnabled sets the initial state of the fast path. Enabled by default.
func WithEnabled(on bool) Option {
	return func(o *options) {
		o.enabled = on
	}
}

// WithWorkers converts regions on n goroutines. 0 or 1 converts on the
// calling goroutine; a negative n uses GOMAXPROCS. A Blitter with workers
// must be closed.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets the logger. Defaults to cchart.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Stats counts which path copies took.
type Stats struct {
	// Accelerated is the number of copies made from a converted bitmap.
	Accelerated uint64

	// Fallback is the number of copies made from the original source.
	Fallback uint64
}

// Blitter performs copies that convert large high-color sources to the
// palette of an 8bpp destination before copying.
//
// A Blitter is safe for concurrent use as long as the DCs passed to it are
// not shared between goroutines.
type Blitter struct {
	threshold int
	logger    *slog.Logger
	pool      *parallel.Pool
	enabled   atomic.Bool

	accelerated atomic.Uint64
	fallback    atomic.Uint64
}

// NewBlitter creates a Blitter.
func NewBlitter(opts ...Option) *Blitter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	b := &Blitter{threshold: o.threshold, logger: o.logger}
	if o.workers < 0 || o.workers > 1 {
		b.pool = parallel.NewPool(o.workers)
	}
	b.enabled.Store(o.enabled)
	return b
}

// Close stops the conversion workers, if any. Copies made afterwards
// convert on the calling goroutine.
func (b *Blitter) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
}

// SetEnabled turns the fast path on or off.
func (b *Blitter) SetEnabled(on bool) {
	b.enabled.Store(on)
}

// Enabled reports whether the fast path is on.
func (b *Blitter) Enabled() bool {
	return b.enabled.Load()
}

// Threshold returns the pixel count a copy must exceed to be converted.
func (b *Blitter) Threshold() int {
	return b.threshold
}

// Stats returns the path counters.
func (b *Blitter) Stats() Stats {
	return Stats{
		Accelerated: b.accelerated.Load(),
		Fallback:    b.fallback.Load(),
	}
}

func (b *Blitter) log() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return cchart.Logger()
}

// BitBlt behaves like gdi.BitBlt. When the fast path is enabled and w*h
// exceeds the threshold, the source rectangle is first converted to the
// palette of dst and the copy is made from the converted bitmap.
func (b *Blitter) BitBlt(dst *gdi.DC, dx, dy, w, h int, src *gdi.DC, sx, sy int, rop gdi.ROP) error {
	return b.copy(src, sx, sy, w, h, dst,
		func(from *gdi.DC, fx, fy int) error {
			return gdi.BitBlt(dst, dx, dy, w, h, from, fx, fy, rop)
		})
}

// StretchBlt behaves like gdi.StretchBlt with the same fast path as BitBlt,
// applied to the sw x sh source rectangle.
func (b *Blitter) StretchBlt(dst *gdi.DC, dx, dy, dw, dh int, src *gdi.DC, sx, sy, sw, sh int, rop gdi.ROP) error {
	b.log().Debug("fastblt: stretch source", "x", sx, "y", sy, "width", sw, "height", sh)

	return b.copy(src, sx, sy, sw, sh, dst,
		func(from *gdi.DC, fx, fy int) error {
			return gdi.StretchBlt(dst, dx, dy, dw, dh, from, fx, fy, sw, sh, rop)
		})
}

// copy runs op against a converted copy of the source region when the fast
// path applies, and against the original source otherwise.
func (b *Blitter) copy(src *gdi.DC, sx, sy, w, h int, dst *gdi.DC, op func(from *gdi.DC, fx, fy int) error) error {
	if !b.Enabled() || w*h <= b.threshold || src == nil || dst == nil {
		b.fallback.Add(1)
		return op(src, sx, sy)
	}

	bm, err := convertRegion(src, sx, sy, w, h, dst, b.pool)
	if err != nil {
		b.log().Debug("fastblt: conversion skipped", "reason", err)
		b.fallback.Add(1)
		return op(src, sx, sy)
	}
	defer release("converted bitmap", bm.Delete)

	hdc, err := dst.Device().CreateCompatibleDC(dst)
	if err != nil {
		b.fallback.Add(1)
		return op(src, sx, sy)
	}
	defer release("converted bitmap DC", hdc.Delete)

	if _, err := hdc.SelectObject(bm); err != nil {
		b.fallback.Add(1)
		return op(src, sx, sy)
	}

	b.accelerated.Add(1)
	b.log().Debug("fastblt: accelerated copy", "pixels", w*h, "srcBits", src.Bitmap().BitCount())
	return op(hdc, 0, 0)
}

// defaultBlitter backs the package-level fast-path switch and copies.
var defaultBlitter = NewBlitter()

// Default returns the Blitter used by the package-level functions.
func Default() *Blitter {
	return defaultBlitter
}

// SetEnabled turns the package-wide fast path on or off.
// It is meant to be set once during start-up.
func SetEnabled(on bool) {
	defaultBlitter.SetEnabled(on)
}

// Enabled reports whether the package-wide fast path is on.
func Enabled() bool {
	return defaultBlitter.Enabled()
}

// BitBlt copies through the default Blitter.
func BitBlt(dst *gdi.DC, dx, dy, w, h int, src *gdi.DC, sx, sy int, rop gdi.ROP) error {
	return defaultBlitter.BitBlt(dst, dx, dy, w, h, src, sx, sy, rop)
}

// StretchBlt copies through the default Blitter.
func StretchBlt(dst *gdi.DC, dx, dy, dw, dh int, src *gdi.DC, sx, sy, sw, sh int, rop gdi.ROP) error {
	return defaultBlitter.StretchBlt(dst, dx, dy, dw, dh, src, sx, sy, sw, sh, rop)
}
