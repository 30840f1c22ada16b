// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestIncludeFS(t *testing.T) {
	fsys := fstest.MapFS{
		"camera.wgsl":        {Data: []byte("struct Camera {\n\tview: mat4x4<f32>,\n}")},
		"shaders/noise.wgsl": {Data: []byte("fn noise(p: vec2<f32>) -> f32 {\n\treturn 0.5;\n}")},
	}

	code := `#include "camera.wgsl"
#include "noise.wgsl"
@vertex
fn vs_main() {}
`
	got := IncludeFS(fsys, "shaders", code)
	assert.Contains(t, got, "struct Camera {")
	assert.Contains(t, got, "fn noise(p: vec2<f32>) -> f32 {")
	// original include lines stay, commented out, for line accounting
	assert.Contains(t, got, `// #include "camera.wgsl"`)
	assert.Contains(t, got, "@vertex")

	// camera comes before noise, both before the main code
	ci := strings.Index(got, "struct Camera")
	ni := strings.Index(got, "fn noise")
	vi := strings.Index(got, "@vertex")
	assert.Less(t, ci, ni)
	assert.Less(t, ni, vi)

	// missing includes are logged and left as is
	missing := IncludeFS(fsys, "shaders", `#include "nope.wgsl"`)
	assert.Contains(t, missing, `#include "nope.wgsl"`)
}

func TestIncludeFSNested(t *testing.T) {
	fsys := fstest.MapFS{
		"types.wgsl": {Data: []byte("struct Light {\n\tcolor: vec3<f32>,\n}")},
		"lights.wgsl": {Data: []byte(`#include "types.wgsl"
fn shade(l: Light) -> vec3<f32> {
	return l.color;
}`)},
	}

	code := `#include "types.wgsl"
#include "lights.wgsl"
@fragment
fn fs_main() {}
`
	got := IncludeFS(fsys, "", code)
	assert.Contains(t, got, "fn shade(l: Light)")
	// types.wgsl is pulled in by both, but only expanded once
	assert.Equal(t, 1, strings.Count(got, "struct Light {"))
	assert.Equal(t, 2, strings.Count(got, `// #include "types.wgsl"`))

	ti := strings.Index(got, "struct Light")
	si := strings.Index(got, "fn shade")
	assert.Less(t, ti, si)
}
