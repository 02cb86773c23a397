package gdi

import "errors"

// Errors returned by device, DC and bitmap operations.
var (
	// ErrDeleted is returned when a handle is used or deleted after Delete.
	ErrDeleted = errors.New("gdi: handle already deleted")

	// ErrNilHandle is returned when a nil DC or bitmap is passed.
	ErrNilHandle = errors.New("gdi: nil handle")

	// ErrDisplayDC is returned when selecting a bitmap into a display DC.
	ErrDisplayDC = errors.New("gdi: cannot select a bitmap into a display DC")

	// ErrBitmapInUse is returned when a bitmap is selected into another DC,
	// or deleted while selected.
	ErrBitmapInUse = errors.New("gdi: bitmap selected into another DC")

	// ErrNotDIBSection is returned when querying pixel bits of a
	// device-dependent or stock bitmap.
	ErrNotDIBSection = errors.New("gdi: bitmap is not a DIB section")

	// ErrStockObject is returned when deleting a stock object.
	ErrStockObject = errors.New("gdi: cannot delete a stock object")

	// ErrForeignDevice is returned when mixing handles of different devices.
	ErrForeignDevice = errors.New("gdi: handle belongs to another device")

	// ErrNoSource is returned when a raster operation needs a source DC
	// and none was given.
	ErrNoSource = errors.New("gdi: raster operation requires a source")

	// ErrInvalidPalette is returned for empty palettes or palettes over 256 entries.
	ErrInvalidPalette = errors.New("gdi: invalid palette")
)
