// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"cogentcore.org/gpulearn/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Surface manages the WebGPU surface for an actual on-screen window,
// including the format and presentation of the current window texture.
// It implements the [Renderer] interface.
type Surface struct {

	// Format has the current surface image format and dimensions.
	// The Size values here are the definitive size of the surface.
	Format TextureFormat

	// render helper for this surface, owns the depth buffer
	// and multisampling texture if used.
	render Render

	// GPU for this surface.
	GPU *GPU

	// device is the device for this surface, which we own.
	// Each window surface has its own device, configured for the surface.
	device *Device

	// WebGPU handle for the window surface, from [GLFWCreateWindow]
	// or other OS-specific window logic.
	surface *wgpu.Surface

	// WebGPU configuration for the surface, re-applied when
	// the window is resized.
	config wgpu.SurfaceConfiguration

	// current texture and its view, from [Surface.GetCurrentTexture],
	// released in [Surface.Present].
	curTexture *wgpu.Texture
	curView    *wgpu.TextureView
}

// NewSurface returns a new Surface for the given [wgpu.Surface] handle
// of an actual window, at the given initial size, with the given number
// of multisampling samples (1 = no multisampling) and depth buffer
// format ([UndefinedType] = no depth buffer).
// The surface creates and owns its own [Device], which can be shared
// with offscreen [RenderTexture]s.
func NewSurface(gp *GPU, wsurf *wgpu.Surface, size image.Point, samples int, depthFmt Types) *Surface {
	sf := &Surface{}
	errors.Log(sf.init(gp, wsurf, size, samples, depthFmt))
	return sf
}

func (sf *Surface) init(gp *GPU, ws *wgpu.Surface, size image.Point, samples int, depthFmt Types) error {
	sf.GPU = gp
	sf.surface = ws
	dev, err := NewDevice(gp)
	if err != nil {
		return err
	}
	sf.device = dev
	caps := ws.GetCapabilities(gp.Adapter)
	format := caps.Formats[0]
	for _, f := range caps.Formats {
		tf := TextureFormat{Format: f}
		if tf.IsSRGB() {
			format = f
			break
		}
	}
	sf.Format.Size = size
	sf.Format.Format = format
	sf.Format.SetMultisample(samples)
	sf.Format.Layers = 1
	// CopyDst so offscreen frames can be copied onto the window texture.
	sf.config = wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopyDst,
		Format:      format,
		Width:       uint32(size.X),
		Height:      uint32(size.Y),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	ws.Configure(gp.Adapter, dev.Device, &sf.config)
	return sf.render.Config(dev, &sf.Format, depthFmt)
}

// Device returns the device for this surface, which it owns.
func (sf *Surface) Device() *Device { return sf.device }

// Render returns the Render for this surface.
func (sf *Surface) Render() *Render { return &sf.render }

// GetCurrentTexture returns a TextureView to the current surface
// window texture to render to, or an error if not available.
// The texture is presented and released in [Surface.Present],
// which must be called when rendering is done.
func (sf *Surface) GetCurrentTexture() (*wgpu.TextureView, error) {
	tx, err := sf.surface.GetCurrentTexture()
	if err != nil {
		// surface can be lost or outdated after a resize:
		// reconfigure and try again once.
		sf.reconfig()
		tx, err = sf.surface.GetCurrentTexture()
		if err != nil {
			return nil, errors.Log(err)
		}
	}
	sf.curTexture = tx
	view, err := tx.CreateView(nil)
	if err != nil {
		return nil, errors.Log(err)
	}
	sf.curView = view
	return view, nil
}

// CurrentTexture returns the current surface window texture from the
// last [Surface.GetCurrentTexture] call, e.g., as the destination for
// copying an offscreen frame onto the window.
func (sf *Surface) CurrentTexture() *wgpu.Texture {
	return sf.curTexture
}

// Present presents the current surface texture to the window,
// and releases it. Called at the end of [GraphicsSystem.EndRenderPass].
func (sf *Surface) Present() {
	sf.surface.Present()
	if sf.curView != nil {
		sf.curView.Release()
		sf.curView = nil
	}
	if sf.curTexture != nil {
		sf.curTexture.Release()
		sf.curTexture = nil
	}
}

// SetSize sets the size of the surface, called on window resize.
// Reconfigures the surface to the new size and reallocates the
// depth and multisampling textures, unless the size is unchanged
// or zero (minimized window).
func (sf *Surface) SetSize(sz image.Point) error {
	if sz == (image.Point{}) || sf.Format.Size == sz {
		return nil
	}
	err := sf.render.SetSize(sz)
	if err != nil {
		return err
	}
	sf.Format.Size = sz
	sf.reconfig()
	return nil
}

// reconfig reconfigures the surface at the current Format.Size.
func (sf *Surface) reconfig() {
	sf.config.Width = uint32(sf.Format.Size.X)
	sf.config.Height = uint32(sf.Format.Size.Y)
	sf.surface.Configure(sf.GPU.Adapter, sf.device.Device, &sf.config)
}

func (sf *Surface) Release() {
	sf.render.Release()
	if sf.surface != nil {
		sf.surface.Release()
		sf.surface = nil
	}
	if sf.device != nil {
		sf.device.Release()
		sf.device = nil
	}
	sf.GPU = nil
}
