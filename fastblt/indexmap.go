package fastblt

import (
	"encoding/binary"
	"fmt"

	"github.com/cchart-go/cchart"
	"github.com/cchart-go/cchart/dib"
	"github.com/cchart-go/cchart/gdi"
	"github.com/cchart-go/cchart/internal/bitmask"
)

// IndexMapSize is the number of entries of an index map: one per 15-bit
// RGB value.
const IndexMapSize = 1 << 15

// The gradient bitmap holds every 15-bit value once, row after row.
const (
	gradientWidth  = 256
	gradientHeight = IndexMapSize / gradientWidth
)

// IndexMap maps 15-bit 5-5-5 RGB keys to palette indices.
//
// The table lives in the pixel bits of an 8bpp DIB section owned by the
// map; Release frees it.
type IndexMap struct {
	bm    *gdi.Bitmap
	index []byte
}

// BuildIndexMap builds the index map of pal on dev. A nil palette selects
// the device palette.
//
// The device does the color matching: a 256x128 16bpp bitmap whose pixel i
// holds the value i is copied onto an 8bpp bitmap carrying pal as its color
// table, after which the 8bpp bits are the table itself.
func BuildIndexMap(dev *gdi.Device, pal *gdi.Palette) (m *IndexMap, err error) {
	if pal == nil {
		pal = dev.Palette()
	}

	srcBM, err := dev.CreateDIBSection(dib.Header{
		Width:       gradientWidth,
		Height:      gradientHeight,
		BitCount:    16,
		Compression: dib.BitFields,
	}, dib.Masks{Red: bitmask.Red555, Green: bitmask.Green555, Blue: bitmask.Blue555}, nil)
	if err != nil {
		return nil, fmt.Errorf("fastblt: index map source: %w", err)
	}
	defer release("index map source", srcBM.Delete)

	srcSec, err := srcBM.Section()
	if err != nil {
		return nil, fmt.Errorf("fastblt: index map source: %w", err)
	}
	for i := range IndexMapSize {
		binary.LittleEndian.PutUint16(srcSec.Bits[2*i:], uint16(i))
	}

	dstBM, err := dev.CreateDIBSection(dib.Header{
		Width:    gradientWidth,
		Height:   gradientHeight,
		BitCount: 8,
		ClrUsed:  pal.Len(),
	}, dib.Masks{}, pal.ColorTable())
	if err != nil {
		return nil, fmt.Errorf("fastblt: index map target: %w", err)
	}
	defer func() {
		if err != nil {
			release("index map target", dstBM.Delete)
		}
	}()

	hdcSrc, err := dev.CreateCompatibleDC(nil)
	if err != nil {
		return nil, fmt.Errorf("fastblt: index map source DC: %w", err)
	}
	defer release("index map source DC", hdcSrc.Delete)

	hdcDst, err := dev.CreateCompatibleDC(nil)
	if err != nil {
		return nil, fmt.Errorf("fastblt: index map target DC: %w", err)
	}
	defer release("index map target DC", hdcDst.Delete)

	if _, err = hdcSrc.SelectObject(srcBM); err != nil {
		return nil, fmt.Errorf("fastblt: select index map source: %w", err)
	}
	if _, err = hdcDst.SelectObject(dstBM); err != nil {
		return nil, fmt.Errorf("fastblt: select index map target: %w", err)
	}

	if err = gdi.BitBlt(hdcDst, 0, 0, gradientWidth, gradientHeight, hdcSrc, 0, 0, gdi.SRCCOPY); err != nil {
		return nil, fmt.Errorf("fastblt: build index map: %w", err)
	}

	dstSec, err := dstBM.Section()
	if err != nil {
		return nil, fmt.Errorf("fastblt: index map target: %w", err)
	}
	return &IndexMap{bm: dstBM, index: dstSec.Bits[:IndexMapSize]}, nil
}

// Bytes returns the raw table, indexed by 15-bit key.
func (m *IndexMap) Bytes() []byte {
	return m.index
}

// Lookup returns the palette index of a 15-bit key. Bit 15 is ignored.
func (m *IndexMap) Lookup(key uint16) uint8 {
	return m.index[key&(IndexMapSize-1)]
}

// Bitmap returns the bitmap backing the table.
func (m *IndexMap) Bitmap() *gdi.Bitmap {
	return m.bm
}

// Release frees the bitmap backing the table. The map must not be used
// afterwards. Release on a nil or released map is a no-op.
func (m *IndexMap) Release() error {
	if m == nil || m.bm == nil {
		return nil
	}
	err := m.bm.Delete()
	m.bm = nil
	m.index = nil
	return err
}

// release runs del and logs a failure.
func release(what string, del func() error) {
	if err := del(); err != nil {
		cchart.Logger().Warn("fastblt: release failed", "object", what, "err", err)
	}
}
