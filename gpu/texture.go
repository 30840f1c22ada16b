// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"

	"cogentcore.org/gpulearn/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Texture represents a WebGPU Texture with an associated TextureView.
// The WebGPU Texture is in device memory, in an optimized format.
type Texture struct {

	// Name of the texture, e.g., same as Value name if used that way.
	// This is helpful for debugging. Is auto-set to filename if loaded from
	// a file and otherwise empty.
	Name string

	// Format & size of texture
	Format TextureFormat

	// number of mip levels allocated: 1 = no mipmaps.
	mipLevels int

	// WebGPU texture handle, in device memory
	texture *wgpu.Texture `display:"-"`

	// WebGPU texture view
	view *wgpu.TextureView `display:"-"`

	// readBuffer for reading back the texture, see ConfigReadBuffer.
	readBuffer *wgpu.Buffer `display:"-"`

	// readBufferDims has the padded row sizes for the readBuffer.
	readBufferDims TextureBufferDims

	// keep track of device for destroying view
	device Device `display:"-"`
}

func NewTexture(dev *Device) *Texture {
	tx := &Texture{}
	tx.device = *dev
	tx.Format.Defaults()
	return tx
}

// CreateTexture creates the texture based on current settings,
// and a view of that texture.  Calls release first.
func (tx *Texture) CreateTexture(usage wgpu.TextureUsage) error {
	tx.ReleaseTexture()

	sz := tx.Format.Size
	size := wgpu.Extent3D{
		Width:              uint32(sz.X),
		Height:             uint32(sz.Y),
		DepthOrArrayLayers: uint32(tx.Format.Layers),
	}
	t, err := tx.device.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         tx.Name,
		Size:          size,
		MipLevelCount: uint32(max(1, tx.mipLevels)),
		SampleCount:   uint32(tx.Format.Samples),
		Dimension:     wgpu.TextureDimension2D,
		Format:        tx.Format.Format,
		Usage:         usage,
	})
	if errors.Log(err) != nil {
		return err
	}
	tx.texture = t
	vw, err := t.CreateView(nil)
	if errors.Log(err) != nil {
		return err
	}
	tx.view = vw
	return nil
}

// https://eliemichel.github.io/LearnWebGPU/advanced-techniques/headless.html

// ConfigRenderTexture configures this texture as a render target
// frame for an offscreen [RenderTexture], using given format.
// Frames are always single-sampled: multisampling is handled by
// the separate Render Multi texture, which is resolved into the frame.
// The usage also enables sampling the frame as a texture in a shader,
// and copying it to other textures or a read buffer.
func (tx *Texture) ConfigRenderTexture(dev *Device, imgFmt *TextureFormat) error {
	tx.device = *dev
	nfmt := *imgFmt
	nfmt.Samples = 1
	if tx.texture != nil && tx.Format == nfmt {
		return nil
	}
	tx.Format = nfmt
	return tx.CreateTexture(wgpu.TextureUsageRenderAttachment |
		wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopySrc)
}

// ConfigDepth configures this texture as a depth texture
// using given depth texture format, and other format information
// from the given render texture format.
// If current texture is identical format, does not recreate.
func (tx *Texture) ConfigDepth(dev *Device, depthType Types, imgFmt *TextureFormat) error {
	tx.device = *dev
	nfmt := *imgFmt
	nfmt.Format = depthType.TextureFormat()
	if tx.texture != nil && tx.Format == nfmt {
		return nil
	}
	tx.Format = nfmt
	return tx.CreateTexture(wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding)
}

// ConfigMulti configures this texture as a mutisampling texture
// using format.
func (tx *Texture) ConfigMulti(dev *Device, imgFmt *TextureFormat) error {
	tx.device = *dev
	if tx.texture != nil && tx.Format == *imgFmt {
		return nil
	}
	tx.Format = *imgFmt
	return tx.CreateTexture(wgpu.TextureUsageRenderAttachment)
}

// ConfigReadBuffer configures a read buffer for this texture,
// for reading the texture data back to the CPU, e.g., for
// offscreen render output.  Rows are padded out to the required
// 256 byte alignment, which is handled in [Texture.ReadGoImage].
func (tx *Texture) ConfigReadBuffer() error {
	tx.readBufferDims.Set(tx.Format.Size)
	sz := tx.readBufferDims.PaddedSize()
	if tx.readBuffer != nil {
		tx.readBuffer.Release()
		tx.readBuffer = nil
	}
	buf, err := tx.device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            tx.Name + "_read",
		Size:             sz,
		Usage:            wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if errors.Log(err) != nil {
		return err
	}
	tx.readBuffer = buf
	return nil
}

// CopyToReadBuffer adds a command to the given command encoder
// to copy this texture to its read buffer, which must have been
// configured with [Texture.ConfigReadBuffer].
// Insert this after the render pass End, before submitting.
func (tx *Texture) CopyToReadBuffer(cmd *wgpu.CommandEncoder) error {
	if tx.readBuffer == nil {
		return errors.Log(fmt.Errorf("gpu.Texture CopyToReadBuffer %s: ConfigReadBuffer must be called first", tx.Name))
	}
	td := &tx.readBufferDims
	return cmd.CopyTextureToBuffer(
		tx.texture.AsImageCopy(),
		&wgpu.ImageCopyBuffer{
			Buffer: tx.readBuffer,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(td.PaddedRowSize),
				RowsPerImage: uint32(td.Height),
			},
		},
		&wgpu.Extent3D{
			Width:              uint32(td.Width),
			Height:             uint32(td.Height),
			DepthOrArrayLayers: 1,
		})
}

// CopyToTexture adds a command to the given command encoder to copy
// this texture to the given destination texture, e.g., the current
// window texture of a [Surface], which must have the same size and
// format, and the CopyDst usage.
func (tx *Texture) CopyToTexture(cmd *wgpu.CommandEncoder, dst *wgpu.Texture, dstSize image.Point) error {
	if tx.Format.Size != dstSize {
		return errors.Log(fmt.Errorf("gpu.Texture CopyToTexture %s: destination size %v != source size %v", tx.Name, dstSize, tx.Format.Size))
	}
	return cmd.CopyTextureToTexture(
		tx.texture.AsImageCopy(),
		dst.AsImageCopy(),
		&wgpu.Extent3D{
			Width:              uint32(tx.Format.Size.X),
			Height:             uint32(tx.Format.Size.Y),
			DepthOrArrayLayers: 1,
		})
}

// ReadGoImage reads the texture data back from the GPU into a
// standard Go image, via the read buffer, which must have been
// copied into via [Texture.CopyToReadBuffer] in commands already
// submitted to the device.
func (tx *Texture) ReadGoImage() (*image.RGBA, error) {
	if !(tx.Format.IsStdRGBA() || tx.Format.IsRGBAUnorm()) {
		return nil, errors.Log(fmt.Errorf("gpu.Texture ReadGoImage %s: only RGBA8 formats supported, not: %s", tx.Name, TextureFormatNames[tx.Format.Format]))
	}
	td := &tx.readBufferDims
	err := BufferReadSync(&tx.device, int(td.PaddedSize()), tx.readBuffer)
	if err != nil {
		return nil, err
	}
	data := tx.readBuffer.GetMappedRange(0, uint(td.PaddedSize()))
	if data == nil {
		return nil, errors.Log(fmt.Errorf("gpu.Texture ReadGoImage %s: read buffer is not mapped", tx.Name))
	}
	img := image.NewRGBA(image.Rect(0, 0, int(td.Width), int(td.Height)))
	if td.HasNoPadding() {
		copy(img.Pix, data)
	} else {
		for y := range int(td.Height) {
			so := y * int(td.PaddedRowSize)
			do := y * img.Stride
			copy(img.Pix[do:do+img.Stride], data[so:so+int(td.UnpaddedRowSize)])
		}
	}
	tx.readBuffer.Unmap()
	return img, nil
}

// ReleaseView destroys any existing view
func (tx *Texture) ReleaseView() {
	if tx.view == nil {
		return
	}
	tx.view.Release()
	tx.view = nil
}

// ReleaseTexture frees device memory version of texture that we own
func (tx *Texture) ReleaseTexture() {
	tx.ReleaseView()
	if tx.texture == nil {
		return
	}
	tx.texture.Release()
	tx.texture = nil
}

// Release destroys any existing view and texture, and the
// read buffer if present.
func (tx *Texture) Release() {
	tx.ReleaseTexture()
	if tx.readBuffer != nil {
		tx.readBuffer.Release()
		tx.readBuffer = nil
	}
}

// SetNil sets everything to nil, for shared texture
func (tx *Texture) SetNil() {
	tx.view = nil
	tx.texture = nil
	tx.readBuffer = nil
}
