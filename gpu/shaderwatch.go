// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"cogentcore.org/gpulearn/base/errors"
	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher watches WGSL shader source files for changes, so
// examples can rebuild their pipelines live while a shader is edited.
// File events only set a pending flag: the render loop calls
// [ShaderWatcher.Pending] or [ShaderWatcher.CheckRebuild] once per
// frame and performs the rebuild there, because pipelines and the
// device are single-threaded. The containing directories are watched
// instead of the files themselves, to keep events flowing across
// editors that save by writing a temp file and renaming it over the
// original.
type ShaderWatcher struct {
	watcher *fsnotify.Watcher

	// absolute paths of the watched files.
	files map[string]bool

	// directories added to the underlying watcher.
	dirs map[string]bool

	mu      sync.Mutex
	pending atomic.Bool
}

// NewShaderWatcher returns a watcher monitoring the given shader files.
// Call [ShaderWatcher.Close] when done with it.
func NewShaderWatcher(files ...string) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Log(fmt.Errorf("gpu.NewShaderWatcher: %w", err))
	}
	sw := &ShaderWatcher{watcher: w, files: make(map[string]bool), dirs: make(map[string]bool)}
	go sw.monitor()
	for _, f := range files {
		if err := sw.Add(f); err != nil {
			sw.Close()
			return nil, err
		}
	}
	return sw, nil
}

// Add adds a shader file to the watched set.
func (sw *ShaderWatcher) Add(fname string) error {
	ap, err := filepath.Abs(fname)
	if err != nil {
		return errors.Log(err)
	}
	dir := filepath.Dir(ap)
	sw.mu.Lock()
	sw.files[ap] = true
	add := !sw.dirs[dir]
	sw.dirs[dir] = true
	sw.mu.Unlock()
	if add {
		if err := sw.watcher.Add(dir); err != nil {
			return errors.Log(fmt.Errorf("gpu.ShaderWatcher.Add %s: %w", fname, err))
		}
	}
	return nil
}

// Pending reports whether any watched file has changed since the last
// call, clearing the flag.
func (sw *ShaderWatcher) Pending() bool {
	return sw.pending.Swap(false)
}

// CheckRebuild runs the given rebuild function if any watched file has
// changed since the last check. Call once per frame from the render
// loop. Rebuild errors are returned so the caller can keep drawing
// with the previous pipeline; the next file change triggers another
// rebuild attempt.
func (sw *ShaderWatcher) CheckRebuild(rebuild func() error) error {
	if !sw.Pending() {
		return nil
	}
	return rebuild()
}

// Close stops watching and releases the underlying watcher.
func (sw *ShaderWatcher) Close() error {
	return sw.watcher.Close()
}

// monitor marks changes to watched files as pending, until the
// watcher is closed.
func (sw *ShaderWatcher) monitor() {
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			switch {
			case event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create ||
				event.Op&fsnotify.Rename == fsnotify.Rename:
				if sw.isWatched(event.Name) {
					sw.pending.Store(true)
				}
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("gpu.ShaderWatcher: " + err.Error())
		}
	}
}

func (sw *ShaderWatcher) isWatched(fname string) bool {
	ap, err := filepath.Abs(fname)
	if err != nil {
		return false
	}
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.files[ap]
}
