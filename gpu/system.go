// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// System provides the general interface for a [GraphicsSystem],
// which manages pipelines and their variables.
type System interface {
	// Vars represents all the data variables used by the system,
	// with one Var for each resource that is made visible to the shader,
	// indexed by Group (@group) and Binding (@binding).
	// Each Var has Value(s) containing specific instance values.
	Vars() *Vars

	// Device is the logical device for this system,
	// from the Renderer.
	Device() *Device

	// GPU is our GPU device, which has properties
	// and alignment factors.
	GPU() *GPU

	// Render returns the Render object managing the render pass
	// parameters for the system's Renderer.
	Render() *Render
}

// Renderer is the interface for a render target, which is
// either a [Surface] for an actual window, or an offscreen
// [RenderTexture].
type Renderer interface {
	// Render returns the Render object, which manages the
	// render pass, depth buffer, and multisampling texture.
	Render() *Render

	// Device returns the device used by this renderer.
	// A Surface owns its own device, whereas a RenderTexture
	// can use a shared device, e.g., from a Surface.
	Device() *Device

	// GetCurrentTexture returns a TextureView to the texture
	// to render into, or an error if not available.
	GetCurrentTexture() (*wgpu.TextureView, error)

	// SetSize sets the size of the render target,
	// e.g., when the window is resized.
	SetSize(size image.Point) error

	// Present presents the rendered texture, e.g., to the window,
	// releasing the current texture. It is a no-op for an
	// offscreen RenderTexture.
	Present()

	// Release releases the renderer resources.
	// Any GraphicsSystem using this renderer must be released first.
	Release()
}
