// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"image/color"

	"cogentcore.org/gpulearn/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Render manages the WebGPU render pass settings for a render target,
// holding the depth buffer if one is used, and the multisampled texture
// for Format.Samples > 1, which is resolved into the target at the end
// of each pass. Each [Renderer] (Surface, RenderTexture) has a Render,
// which the GraphicsSystem uses for all of its rendering.
type Render struct {

	// Format has the image format information for the target texture,
	// including the number of multisampling samples.
	Format TextureFormat

	// DepthFormat is the format of the depth buffer, e.g., [Depth32].
	// Set to [UndefinedType] for no depth buffer.
	DepthFormat Types

	// Depth is the depth buffer texture, present if DepthFormat
	// is not [UndefinedType].
	Depth Texture

	// Multi is the multisampled render texture, used as the actual
	// render target when Format.Samples > 1.
	Multi Texture

	// ClearColor is the color to clear the target to at the start of
	// a clearing render pass. Defaults to [color.Black].
	// The value is converted to linear space for sRGB target formats,
	// so the stored pixels match the given color.
	ClearColor color.Color

	// ClearDepth is the depth value to clear the depth buffer to
	// at the start of a clearing render pass. Defaults to 1.
	ClearDepth float32

	// ClearStencil is the stencil value to clear to.
	ClearStencil uint32

	device Device
}

// Config configures the render for the given device and target format,
// with the given depth buffer format ([UndefinedType] = no depth buffer).
// The depth and multisampling textures are allocated at Format.Size.
func (rd *Render) Config(dev *Device, imgFmt *TextureFormat, depthFmt Types) error {
	rd.device = *dev
	rd.Format = *imgFmt
	rd.DepthFormat = depthFmt
	if rd.ClearColor == nil {
		rd.ClearColor = color.Black
		rd.ClearDepth = 1
		rd.ClearStencil = 0
	}
	var errs []error
	if rd.DepthFormat != UndefinedType {
		errs = append(errs, rd.Depth.ConfigDepth(dev, rd.DepthFormat, &rd.Format))
	}
	if rd.Format.Samples > 1 {
		errs = append(errs, rd.Multi.ConfigMulti(dev, &rd.Format))
	}
	return errors.Join(errs...)
}

// SetSize sets the size of the render target, reallocating the
// depth and multisampling textures as needed.
func (rd *Render) SetSize(sz image.Point) error {
	if rd.Format.Size == sz {
		return nil
	}
	fm := rd.Format
	fm.Size = sz
	return rd.Config(&rd.device, &fm, rd.DepthFormat)
}

// clearValue returns the WebGPU clear color value for ClearColor,
// converted to linear space for sRGB target formats.
func (rd *Render) clearValue() wgpu.Color {
	r, g, b, a := rd.ClearColor.RGBA()
	fr := float32(r) / 0xffff
	fg := float32(g) / 0xffff
	fb := float32(b) / 0xffff
	fa := float32(a) / 0xffff
	if rd.Format.IsSRGB() {
		fr, fg, fb = SRGBToLinear(fr, fg, fb)
	}
	return wgpu.Color{R: float64(fr), G: float64(fg), B: float64(fb), A: float64(fa)}
}

// BeginRenderPass adds commands to the given command encoder to begin
// a render pass targeting the given texture view, clearing it first
// to the ClearColor (and depth buffer to ClearDepth).
// See [Render.BeginRenderPassNoClear] to load the prior contents.
func (rd *Render) BeginRenderPass(cmd *wgpu.CommandEncoder, view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	return rd.beginRenderPass(cmd, view, wgpu.LoadOpClear)
}

// BeginRenderPassNoClear adds commands to the given command encoder
// to begin a render pass targeting the given texture view, loading
// the prior contents instead of clearing.
func (rd *Render) BeginRenderPassNoClear(cmd *wgpu.CommandEncoder, view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	return rd.beginRenderPass(cmd, view, wgpu.LoadOpLoad)
}

func (rd *Render) beginRenderPass(cmd *wgpu.CommandEncoder, view *wgpu.TextureView, loadOp wgpu.LoadOp) *wgpu.RenderPassEncoder {
	ca := wgpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     loadOp,
		ClearValue: rd.clearValue(),
		StoreOp:    wgpu.StoreOpStore,
	}
	if rd.Format.Samples > 1 && rd.Multi.view != nil {
		ca.View = rd.Multi.view
		ca.ResolveTarget = view
	}
	rpd := &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{ca},
	}
	if rd.DepthFormat != UndefinedType && rd.Depth.view != nil {
		rpd.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:              rd.Depth.view,
			DepthClearValue:   rd.ClearDepth,
			DepthLoadOp:       loadOp,
			DepthStoreOp:      wgpu.StoreOpStore,
			StencilClearValue: rd.ClearStencil,
			StencilLoadOp:     loadOp,
			StencilStoreOp:    wgpu.StoreOpStore,
		}
	}
	return cmd.BeginRenderPass(rpd)
}

func (rd *Render) Release() {
	rd.Depth.Release()
	rd.Multi.Release()
}
