// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"os"
	"time"

	"cogentcore.org/gpulearn/base/errors"
	"cogentcore.org/gpulearn/base/iox/tomlx"
	"cogentcore.org/gpulearn/base/logx"
)

// Scene is a self-contained rendering example, given a [Surface]
// to configure itself on and then drawn once per frame until the
// window closes. [RunWindow] drives the lifecycle. All hooks run
// on the main thread; none are ever called concurrently.
type Scene interface {
	// Init configures all GPU state for rendering to the given surface:
	// systems, pipelines, shaders, and values. It is called exactly once,
	// before the first Draw.
	Init(sf *Surface) error

	// Draw renders one frame to the surface. It is never called before
	// Init has returned without error, nor after Release.
	Draw() error

	// Release frees all GPU state created in Init. It is called exactly
	// once when the window is closing, before the surface and GPU
	// themselves are released.
	Release()
}

// WindowOptions are the options for the window and surface created
// by [RunWindow].
type WindowOptions struct {
	// Title is the window title.
	Title string

	// Size is the size of the window in pixels. Default is 800x600.
	Size image.Point

	// Samples is the number of samples to use for multisample
	// antialiasing. 1 = no multisampling, 4 = the max supported.
	// Default is 1.
	Samples int

	// Depth configures a 32 bit floating point depth buffer for the
	// surface, needed for scenes drawing overlapping 3D geometry.
	Depth bool
}

// NewWindowOptions returns default options with the given title.
func NewWindowOptions(title string) *WindowOptions {
	wo := &WindowOptions{}
	wo.Defaults()
	wo.Title = title
	return wo
}

// Defaults sets default option values.
func (wo *WindowOptions) Defaults() {
	wo.Title = "gpulearn"
	wo.Size = image.Point{X: 800, Y: 600}
	wo.Samples = 1
}

// Open loads options from the given TOML file, overriding the current
// values. A missing file is not an error, so examples run unconfigured
// by default but can be adjusted by dropping a file next to the binary.
func (wo *WindowOptions) Open(fname string) error {
	if _, err := os.Stat(fname); os.IsNotExist(err) {
		return nil
	}
	return tomlx.Open(wo, fname)
}

// depthFormat returns the surface depth buffer format for the options.
func (wo *WindowOptions) depthFormat() Types {
	if wo.Depth {
		return Depth32
	}
	return UndefinedType
}

// sceneRunner sequences the [Scene] lifecycle hooks for [RunWindow],
// enforcing the ordering contract: Init exactly once before the first
// Frame, no Frame after Release, Release at most once, and one surface
// reconfiguration per resize event. It holds no GPU or window state of
// its own, so the sequencing can be tested directly.
type sceneRunner struct {
	init    func() error
	draw    func() error
	release func()
	resize  func(size image.Point) error

	initialized bool
	released    bool
}

// Init runs the scene init hook. Calling it a second time is an error
// and does not run the hook again.
func (sr *sceneRunner) Init() error {
	if sr.initialized {
		return errors.New("gpu.Scene: Init called twice")
	}
	if err := sr.init(); err != nil {
		return err
	}
	sr.initialized = true
	return nil
}

// Frame draws one frame, which is only valid between a successful
// Init and Release.
func (sr *sceneRunner) Frame() error {
	if !sr.initialized {
		return errors.New("gpu.Scene: Draw before Init")
	}
	if sr.released {
		return errors.New("gpu.Scene: Draw after Release")
	}
	return sr.draw()
}

// Release runs the scene release hook once. It does nothing if Init
// never succeeded: the scene owns cleanup of its own failed setup.
func (sr *sceneRunner) Release() {
	if !sr.initialized || sr.released {
		return
	}
	sr.released = true
	sr.release()
}

// Resize forwards one window resize event to one surface
// reconfiguration. Events arriving after Release are dropped.
func (sr *sceneRunner) Resize(size image.Point) {
	if sr.released || sr.resize == nil {
		return
	}
	errors.Log(sr.resize(size))
}

// RunWindow opens a window with the given options, configures the GPU
// and a [Surface] for it, and drives the [Scene] lifecycle until the
// window closes: Init once, Draw each frame at a 60 FPS tick, Release
// on the way out. The escape key and the window close button both end
// the loop, returning nil. Resize events reconfigure the surface as
// they arrive. Setup and per-frame errors end the loop and are
// returned wrapped.
// IMPORTANT: must be called on the main initial thread, so callers
// must lock it with runtime.LockOSThread in init.
func RunWindow(opts *WindowOptions, sc Scene) error {
	logx.UseDefault()
	if opts == nil {
		opts = &WindowOptions{}
		opts.Defaults()
	}
	gp := NewGPU()
	if err := gp.Config(opts.Title); err != nil {
		return fmt.Errorf("gpu.RunWindow: %w", err)
	}
	var resize func(size image.Point)
	sp, terminate, pollEvents, size, err := GLFWCreateWindow(gp, opts.Size, opts.Title, &resize)
	if err != nil {
		gp.Release()
		return fmt.Errorf("gpu.RunWindow: window creation failed: %w", err)
	}
	sf := NewSurface(gp, sp, size, opts.Samples, opts.depthFormat())

	sr := &sceneRunner{
		init:    func() error { return sc.Init(sf) },
		draw:    sc.Draw,
		release: sc.Release,
		resize:  sf.SetSize,
	}
	resize = sr.Resize

	if err := sr.Init(); err != nil {
		sf.Release()
		gp.Release()
		terminate()
		return fmt.Errorf("gpu.RunWindow: scene init failed: %w", err)
	}

	destroy := func() {
		sr.Release()
		sf.Release()
		gp.Release()
		terminate()
	}

	var drawErr error
	exitC := make(chan struct{}, 2)

	fpsDelay := time.Second / 60
	fpsTicker := time.NewTicker(fpsDelay)
	for {
		select {
		case <-exitC:
			fpsTicker.Stop()
			destroy()
			if drawErr != nil {
				return fmt.Errorf("gpu.RunWindow: draw failed: %w", drawErr)
			}
			return nil
		case <-fpsTicker.C:
			if !pollEvents() {
				exitC <- struct{}{}
				continue
			}
			if err := sr.Frame(); err != nil {
				drawErr = err
				exitC <- struct{}{}
			}
		}
	}
}
