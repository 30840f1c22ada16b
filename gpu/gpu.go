// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu implements WebGPU graphics rendering, with Surface and
// RenderTexture render targets, a GraphicsSystem managing a collection
// of GraphicsPipelines, and Vars / Values for shader variables.
package gpu

import (
	"fmt"

	"cogentcore.org/gpulearn/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Debug is a global flag for turning on debug mode.
// Settings this to true prints extensive diagnostic information
// about the vars and pipelines during configuration.
var Debug = false

// GPU represents the GPU hardware.
type GPU struct {
	// Instance represents the WebGPU system overall.
	Instance *wgpu.Instance

	// Adapter represents the specific physical GPU hardware being used.
	Adapter *wgpu.Adapter

	// AppName is the name of the application, passed to [GPU.Config].
	AppName string

	// Limits are the supported limits of the adapter, which contain
	// the alignment factors needed for allocating buffers.
	Limits wgpu.SupportedLimits
}

// NewGPU returns a new GPU with the WebGPU instance created.
// Call [GPU.Config] to request the adapter before any further use.
func NewGPU() *GPU {
	gp := &GPU{}
	gp.Instance = wgpu.CreateInstance(nil)
	return gp
}

// Config configures the GPU for the given application name,
// requesting the adapter (the physical GPU hardware) and
// gathering its limits. It returns an error if no suitable
// adapter is available.
func (gp *GPU) Config(name string) error {
	gp.AppName = name
	adapter, err := gp.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return errors.Log(fmt.Errorf("gpu.GPU.Config: no adapter available: %w", err))
	}
	gp.Adapter = adapter
	gp.Limits = adapter.GetLimits()
	if Debug {
		fmt.Println(gp.PropertiesString())
	}
	return nil
}

// Release releases GPU resources: call after everything else has been
// released.
func (gp *GPU) Release() {
	if gp.Adapter != nil {
		gp.Adapter.Release()
		gp.Adapter = nil
	}
	if gp.Instance != nil {
		gp.Instance.Release()
		gp.Instance = nil
	}
}

// PropertiesString returns a listing of the key adapter limits,
// which is printed during Config when [Debug] is on.
func (gp *GPU) PropertiesString() string {
	lm := &gp.Limits.Limits
	s := fmt.Sprintf("gpu: %s adapter limits:\n", gp.AppName)
	s += fmt.Sprintf("\tMaxTextureDimension2D:           %d\n", lm.MaxTextureDimension2D)
	s += fmt.Sprintf("\tMaxBindGroups:                   %d\n", lm.MaxBindGroups)
	s += fmt.Sprintf("\tMaxBufferSize:                   %d\n", lm.MaxBufferSize)
	s += fmt.Sprintf("\tMinUniformBufferOffsetAlignment: %d\n", lm.MinUniformBufferOffsetAlignment)
	s += fmt.Sprintf("\tMinStorageBufferOffsetAlignment: %d\n", lm.MinStorageBufferOffsetAlignment)
	return s
}

// NoDisplayGPU returns a GPU and Device usable without any
// display surface, for offscreen rendering and testing.
func NoDisplayGPU() (*GPU, *Device, error) {
	gp := NewGPU()
	if err := gp.Config("nodisplay"); err != nil {
		return nil, nil, err
	}
	dev, err := NewDevice(gp)
	return gp, dev, err
}
