// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/gpulearn/base/errors"
	"github.com/stretchr/testify/assert"
)

func TestShaderWatcher(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "tri.wgsl")
	assert.NoError(t, os.WriteFile(fn, []byte("// v1\n"), 0666))

	sw, err := NewShaderWatcher(fn)
	assert.NoError(t, err)
	defer sw.Close()

	assert.False(t, sw.Pending())

	assert.NoError(t, os.WriteFile(fn, []byte("// v2\n"), 0666))
	assert.Eventually(t, sw.Pending, time.Second, 5*time.Millisecond)
	assert.False(t, sw.Pending())

	// changes to other files in the same directory are not ours
	other := filepath.Join(dir, "other.wgsl")
	assert.NoError(t, os.WriteFile(other, []byte("// x\n"), 0666))
	time.Sleep(100 * time.Millisecond)
	assert.False(t, sw.Pending())

	rebuilt := 0
	assert.NoError(t, os.WriteFile(fn, []byte("// v3\n"), 0666))
	assert.Eventually(t, func() bool {
		errors.Log(sw.CheckRebuild(func() error { rebuilt++; return nil }))
		return rebuilt == 1
	}, time.Second, 5*time.Millisecond)
}

func TestShaderWatcherRebuildError(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "tri.wgsl")
	assert.NoError(t, os.WriteFile(fn, []byte("// v1\n"), 0666))

	sw, err := NewShaderWatcher(fn)
	assert.NoError(t, err)
	defer sw.Close()

	boom := errors.New("shader compile failed")
	assert.NoError(t, os.WriteFile(fn, []byte("// broken\n"), 0666))
	assert.Eventually(t, func() bool {
		return sw.CheckRebuild(func() error { return boom }) != nil
	}, time.Second, 5*time.Millisecond)

	// error consumed the pending flag: the caller keeps the previous
	// pipeline until the next change
	assert.NoError(t, sw.CheckRebuild(func() error { t.Error("rebuild without change"); return nil }))
}
