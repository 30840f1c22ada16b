// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tomlx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testConfig struct {
	Title   string
	Size    testSize
	VSync   bool
	Samples int
}

type testSize struct {
	Width  int
	Height int
}

func TestSaveOpen(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "config.toml")

	cfg := &testConfig{Title: "drawtri", Size: testSize{1024, 768}, VSync: true, Samples: 4}
	err := Save(cfg, fn)
	assert.NoError(t, err)

	got := &testConfig{}
	err = Open(got, fn)
	assert.NoError(t, err)
	assert.Equal(t, cfg, got)

	err = Open(got, filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestOpenFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	over := filepath.Join(dir, "override.toml")

	assert.NoError(t, Save(&testConfig{Title: "base", Samples: 1}, base))
	assert.NoError(t, Save(&testConfig{Title: "override", Samples: 4}, over))

	got := &testConfig{}
	err := OpenFiles(got, base, over)
	assert.NoError(t, err)
	assert.Equal(t, "override", got.Title)
	assert.Equal(t, 4, got.Samples)
}

func TestReadBytes(t *testing.T) {
	got := &testConfig{}
	err := ReadBytes(got, []byte("Title = \"quad\"\nVSync = false\n"))
	assert.NoError(t, err)
	assert.Equal(t, "quad", got.Title)

	b, err := WriteBytes(got)
	assert.NoError(t, err)
	assert.Contains(t, string(b), "Title = 'quad'")
}
