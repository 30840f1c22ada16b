// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureFormat describes the size and WebGPU format of a Texture.
// If Layers > 1, all must be the same size.
type TextureFormat struct {
	// Size of image
	Size image.Point

	// Texture format: RGBA8UnormSrgb is default
	Format wgpu.TextureFormat

	// number of samples. set higher for RenderTexture rendering
	// but otherwise default of 1
	Samples int

	// number of layers for texture arrays
	Layers int
}

func (im *TextureFormat) Defaults() {
	im.Format = wgpu.TextureFormatRGBA8UnormSrgb
	im.Samples = 1
	im.Layers = 1
}

// String returns human-readable version of format
func (im *TextureFormat) String() string {
	return fmt.Sprintf("Size: %v  Format: %s  MultiSample: %d  Layers: %d", im.Size, TextureFormatNames[im.Format], im.Samples, im.Layers)
}

// IsStdRGBA returns true if image format is the standard
// wgpu.TextureFormatRGBA8UnormSrgb
// which is compatible with go image.RGBA format.
func (im *TextureFormat) IsStdRGBA() bool {
	return im.Format == wgpu.TextureFormatRGBA8UnormSrgb
}

// IsRGBAUnorm returns true if image format is the
// wgpu.TextureFormatRGBA8Unorm format
// which is compatible with go image.RGBA format with colorspace conversion.
func (im *TextureFormat) IsRGBAUnorm() bool {
	return im.Format == wgpu.TextureFormatRGBA8Unorm
}

// IsSRGB returns true if the format is one of the sRGB colorspace
// formats, where stored values are gamma corrected.
func (im *TextureFormat) IsSRGB() bool {
	switch im.Format {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}

// SetSize sets the width, height
func (im *TextureFormat) SetSize(w, h int) {
	im.Size = image.Point{X: w, Y: h}
}

// SetFormat sets the format using standard [Types]
func (im *TextureFormat) SetFormat(ft Types) {
	im.Format = ft.TextureFormat()
}

// SetMultisample sets the number of multisampling to decrease aliasing
// 4 is typically sufficient.  Values must be power of 2.
func (im *TextureFormat) SetMultisample(nsamp int) {
	im.Samples = nsamp
}

func (im *TextureFormat) Extent3D() wgpu.Extent3D {
	ex := wgpu.Extent3D{
		Width:              uint32(im.Size.X),
		Height:             uint32(im.Size.Y),
		DepthOrArrayLayers: uint32(im.Layers),
	}
	return ex
}

// Aspect returns the aspect ratio X / Y
func (im *TextureFormat) Aspect() float32 {
	if im.Size.Y > 0 {
		return float32(im.Size.X) / float32(im.Size.Y)
	}
	return 1.3
}

// BytesPerPixel returns number of bytes required to represent
// one Pixel (in Host memory at least).  TODO only works
// for known formats -- need to add more as needed.
func (im *TextureFormat) BytesPerPixel() int {
	bpp := TextureFormatSizes[im.Format]
	if bpp > 0 {
		return bpp
	}
	slog.Error("gpu.TextureFormat:BytesPerPixel() format not yet supported", "format", im.Format)
	return 0
}

// LayerByteSize returns number of bytes required to represent one layer of
// image in Host memory.  TODO only works
// for known formats -- need to add more as needed.
func (im *TextureFormat) LayerByteSize() int {
	return im.BytesPerPixel() * im.Size.X * im.Size.Y
}

// TotalByteSize returns total number of bytes required to represent all layers of
// images in Host memory.  TODO only works
// for known formats -- need to add more as needed.
func (im *TextureFormat) TotalByteSize() int {
	return im.LayerByteSize() * im.Layers
}

// Stride returns number of bytes per image row.  TODO only works
// for known formats -- need to add more as needed.
func (im *TextureFormat) Stride() int {
	return im.BytesPerPixel() * im.Size.X
}

//////////////////////////////////////////////////////////////////////

// TextureBufferDims represents the sizes required in Buffer to
// represent a texture of a given size.
type TextureBufferDims struct {
	Width           uint64
	Height          uint64
	UnpaddedRowSize uint64
	PaddedRowSize   uint64
}

func (td *TextureBufferDims) Set(size image.Point) {
	td.Width = uint64(size.X)
	td.Height = uint64(size.Y)
	const bytesPerPixel = 4 // unsafe.Sizeof(uint32(0))
	td.UnpaddedRowSize = uint64(td.Width * bytesPerPixel)
	align := uint64(wgpu.CopyBytesPerRowAlignment)
	padding := (align - td.UnpaddedRowSize%align) % align
	td.PaddedRowSize = td.UnpaddedRowSize + padding
}

// PaddedSize returns the total padded size of data
func (td *TextureBufferDims) PaddedSize() uint64 {
	return td.PaddedRowSize * td.Height
}

// HasNoPadding returns true if the Unpadded and Padded row sizes
// are the same.
func (td *TextureBufferDims) HasNoPadding() bool {
	return td.UnpaddedRowSize == td.PaddedRowSize
}
