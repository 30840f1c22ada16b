// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/gpulearn/base/errors"
	"github.com/stretchr/testify/assert"
)

func TestSceneRunnerOrder(t *testing.T) {
	var calls []string
	sr := &sceneRunner{
		init:    func() error { calls = append(calls, "init"); return nil },
		draw:    func() error { calls = append(calls, "draw"); return nil },
		release: func() { calls = append(calls, "release") },
	}

	assert.Error(t, sr.Frame())

	assert.NoError(t, sr.Init())
	assert.Error(t, sr.Init())

	assert.NoError(t, sr.Frame())
	assert.NoError(t, sr.Frame())

	sr.Release()
	sr.Release()

	assert.Error(t, sr.Frame())

	assert.Equal(t, []string{"init", "draw", "draw", "release"}, calls)
}

func TestSceneRunnerInitError(t *testing.T) {
	initErr := errors.New("no adapter")
	released := false
	sr := &sceneRunner{
		init:    func() error { return initErr },
		draw:    func() error { return nil },
		release: func() { released = true },
	}
	assert.ErrorIs(t, sr.Init(), initErr)
	assert.Error(t, sr.Frame())
	sr.Release()
	assert.False(t, released) // a scene whose Init failed cleans up itself
}

func TestSceneRunnerResize(t *testing.T) {
	var got []image.Point
	sr := &sceneRunner{
		init:    func() error { return nil },
		draw:    func() error { return nil },
		release: func() {},
		resize:  func(size image.Point) error { got = append(got, size); return nil },
	}
	assert.NoError(t, sr.Init())

	sizes := []image.Point{{800, 600}, {1024, 768}, {640, 480}}
	for _, sz := range sizes {
		sr.Resize(sz)
	}
	assert.Equal(t, sizes, got)

	sr.Release()
	sr.Resize(image.Point{300, 200})
	assert.Equal(t, sizes, got)
}

func TestWindowOptions(t *testing.T) {
	wo := NewWindowOptions("test")
	assert.Equal(t, "test", wo.Title)
	assert.Equal(t, image.Point{800, 600}, wo.Size)
	assert.Equal(t, 1, wo.Samples)
	assert.Equal(t, UndefinedType, wo.depthFormat())
	wo.Depth = true
	assert.Equal(t, Depth32, wo.depthFormat())

	assert.NoError(t, wo.Open(filepath.Join(t.TempDir(), "missing.toml")))
	assert.Equal(t, "test", wo.Title)

	optsToml := `Title = "other"
Samples = 4

[Size]
X = 1024
Y = 768
`
	fn := filepath.Join(t.TempDir(), "options.toml")
	assert.NoError(t, os.WriteFile(fn, []byte(optsToml), 0666))
	assert.NoError(t, wo.Open(fn))
	assert.Equal(t, "other", wo.Title)
	assert.Equal(t, 4, wo.Samples)
	assert.Equal(t, image.Point{1024, 768}, wo.Size)
}
