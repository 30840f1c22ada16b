// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/gpulearn/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Device holds the logical Device and its associated Queue.
// A Surface creates and owns its own Device, while a RenderTexture
// can use a shared existing Device.
type Device struct {
	// Device is the logical device, created from the adapter.
	Device *wgpu.Device

	// Queue is the command submission queue for this device.
	Queue *wgpu.Queue
}

// NewDevice returns a new device for given GPU, with its Queue.
func NewDevice(gpu *GPU) (*Device, error) {
	wdev, err := gpu.Adapter.RequestDevice(nil)
	if err != nil {
		return nil, errors.Log(err)
	}
	dev := &Device{Device: wdev}
	dev.Queue = wdev.GetQueue()
	return dev, nil
}

// WaitDone waits until the device is done with all submitted work.
func (dv *Device) WaitDone() {
	if dv.Device == nil {
		return
	}
	dv.Device.Poll(true, nil)
}

func (dv *Device) Release() {
	if dv.Device == nil {
		return
	}
	dv.Device.Poll(true, nil)
	dv.Queue.Release()
	dv.Device.Release()
	dv.Device = nil
	dv.Queue = nil
}
