// Package gdi is an in-process model of a bitmap/device-context graphics API.
//
// A [Device] stands for one display with a fixed pixel depth and a system
// palette. Drawing happens through device contexts ([DC]): the display DC
// returned by [Device.GetDC] renders to the device frame buffer, memory DCs
// created by [Device.CreateCompatibleDC] render into whichever [Bitmap] is
// selected into them.
//
// Every DC and bitmap is a handle that must be released with Delete. The
// device counts live handles, see [Device.Stats].
//
// Example:
//
//	dev := gdi.NewDevice(gdi.WithBitsPixel(8), gdi.WithScreenSize(800, 600))
//	screen := dev.GetDC()
//	defer screen.Delete()
//
//	mem, _ := dev.CreateCompatibleDC(screen)
//	defer mem.Delete()
//	bm, _ := dev.CreateDIBSection(dib.Header{Width: 64, Height: 64, BitCount: 32}, dib.Masks{}, nil)
//	defer bm.Delete()
//	prev, _ := mem.SelectObject(bm)
//	defer mem.SelectObject(prev)
//
//	_ = gdi.BitBlt(screen, 10, 10, 64, 64, mem, 0, 0, gdi.SRCCOPY)
//
// Color reduction into palettized targets uses golang.org/x/image/draw:
// nearest palette entry by default, Floyd-Steinberg error diffusion when the
// device is created with [WithDither].
package gdi
