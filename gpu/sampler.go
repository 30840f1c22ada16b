// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"cogentcore.org/gpulearn/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Sampler represents a WebGPU texture sampler, defining how a texture
// is accessed in a shader: wrapping modes and filtering.
type Sampler struct {
	Name string

	// UMode is the wrapping mode in the horizontal (U = X) direction.
	UMode SamplerModes

	// VMode is the wrapping mode in the vertical (V = Y) direction.
	VMode SamplerModes

	// sampler is the WebGPU sampler handle.
	sampler *wgpu.Sampler `display:"-"`
}

func (sm *Sampler) Defaults() {
	sm.UMode = Repeat
	sm.VMode = Repeat
}

// Config configures the sampler on device, using linear filtering
// between texels and across mip levels.  Any existing sampler
// is released first, so this can be called after changing settings.
func (sm *Sampler) Config(dev *Device) error {
	sm.Release()
	samp, err := dev.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         sm.Name,
		AddressModeU:  sm.UMode.Mode(),
		AddressModeV:  sm.VMode.Mode(),
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		Compare:       wgpu.CompareFunctionUndefined,
		MaxAnisotropy: 1,
	})
	if errors.Log(err) != nil {
		return err
	}
	sm.sampler = samp
	return nil
}

func (sm *Sampler) Release() {
	if sm.sampler == nil {
		return
	}
	sm.sampler.Release()
	sm.sampler = nil
}

// SamplerModes are the wrapping modes for a texture sampler,
// identifying what happens when texture coordinates go outside of 0..1.
type SamplerModes int32

const (
	// Repeat the texture when going beyond the texture dimensions.
	Repeat SamplerModes = iota

	// Like Repeat, but inverts the coordinates to mirror the texture
	// when going beyond the dimensions.
	MirroredRepeat

	// Take the edge color when sampling beyond the dimensions.
	ClampToEdge
)

func (sm SamplerModes) Mode() wgpu.AddressMode {
	return WebGPUSamplerModes[sm]
}

var WebGPUSamplerModes = map[SamplerModes]wgpu.AddressMode{
	Repeat:         wgpu.AddressModeRepeat,
	MirroredRepeat: wgpu.AddressModeMirrorRepeat,
	ClampToEdge:    wgpu.AddressModeClampToEdge,
}

// TextureSample supplements a Texture with a Sampler, for
// SampledTexture variables that are sampled in shader code.
// It is the Texture element of the corresponding [Value].
type TextureSample struct {
	Texture

	// Sampler defines how the texture is sampled in the shader.
	// Set the sampler parameters prior to setting the texture image.
	Sampler Sampler
}

func NewTextureSample(dev *Device) *TextureSample {
	tx := &TextureSample{}
	tx.device = *dev
	tx.Format.Defaults()
	tx.Sampler.Defaults()
	return tx
}

// SetFromGoImage sets the texture from the given Go image, at given
// layer, allocating a full chain of mip levels which are generated
// by successive downscaling of the image.
// The Sampler also needs to be configured, via [Sampler.Config]:
// this is handled automatically in the [Value.SetFromGoImage] version.
func (tx *TextureSample) SetFromGoImage(img image.Image, layer int) error {
	rimg := ImageToRGBA(img)
	sz := rimg.Rect.Size()

	tx.Format.Size = sz
	tx.Format.Format = wgpu.TextureFormatRGBA8UnormSrgb
	tx.Format.Layers = 1
	tx.mipLevels = NumMipLevels(sz.X, sz.Y)

	err := tx.CreateTexture(wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst)
	if err != nil {
		return err
	}
	mips := MipImages(rimg, tx.mipLevels)
	for mi, mimg := range mips {
		msz := mimg.Rect.Size()
		err := tx.device.Queue.WriteTexture(
			&wgpu.ImageCopyTexture{
				Aspect:   wgpu.TextureAspectAll,
				Texture:  tx.texture,
				MipLevel: uint32(mi),
				Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
			},
			mimg.Pix,
			&wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  4 * uint32(msz.X),
				RowsPerImage: uint32(msz.Y),
			},
			&wgpu.Extent3D{
				Width:              uint32(msz.X),
				Height:             uint32(msz.Y),
				DepthOrArrayLayers: 1,
			})
		if errors.Log(err) != nil {
			return err
		}
	}
	return nil
}

// Release destroys the sampler and the texture.
func (tx *TextureSample) Release() {
	tx.Sampler.Release()
	tx.Texture.Release()
}
