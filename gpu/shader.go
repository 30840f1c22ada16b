// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"io/fs"
	"os"
	"path"

	"cogentcore.org/gpulearn/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Shader manages a single WGSL shader program, which can have
// multiple distinct entry points: see [ShaderEntry].
type Shader struct {
	Name string

	// module is the compiled shader module.
	module *wgpu.ShaderModule `display:"-"`

	device Device
}

// NewShader returns a new Shader with given name, for given device.
// The shader code must be set using OpenFile, OpenFileFS or OpenCode.
func NewShader(name string, dev *Device) *Shader {
	sh := &Shader{Name: name}
	sh.device = *dev
	return sh
}

// OpenFile opens WGSL shader code from given file.
func (sh *Shader) OpenFile(fname string) error {
	b, err := os.ReadFile(fname)
	if err != nil {
		return errors.Log(err)
	}
	return sh.OpenCode(string(b))
}

// OpenFileFS opens WGSL shader code from given file in the
// given filesystem, e.g., an embed.FS, processing any
// #include "file" statements against that filesystem.
func (sh *Shader) OpenFileFS(fsys fs.FS, fname string) error {
	b, err := fs.ReadFile(fsys, fname)
	if err != nil {
		return errors.Log(err)
	}
	return sh.OpenCode(IncludeFS(fsys, path.Dir(fname), string(b)))
}

// OpenCode compiles the given WGSL shader code.
// If compilation fails, the error is returned and any previously
// compiled module is retained, so a running pipeline keeps
// using the last good version.
func (sh *Shader) OpenCode(code string) error {
	module, err := sh.device.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          sh.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
	if err != nil {
		return errors.Log(fmt.Errorf("gpu.Shader.OpenCode %s: %w", sh.Name, err))
	}
	sh.Release()
	sh.module = module
	return nil
}

// Release destroys the shader module.
func (sh *Shader) Release() {
	if sh.module == nil {
		return
	}
	sh.module.Release()
	sh.module = nil
}

// ShaderEntry is an entry point into a given [Shader]:
// a function to call within it, for a given type of shader stage.
type ShaderEntry struct {
	// Shader has the code.
	Shader *Shader

	// Type of shader entry point.
	Type ShaderTypes

	// Entry is the function name to call, e.g., "vs_main".
	Entry string
}

// NewShaderEntry returns a new ShaderEntry for given shader,
// type and entry function name.
func NewShaderEntry(sh *Shader, typ ShaderTypes, entry string) *ShaderEntry {
	se := &ShaderEntry{Shader: sh, Type: typ, Entry: entry}
	return se
}

// ShaderTypes is a list of GPU shader types.
type ShaderTypes int32

const (
	UnknownShader ShaderTypes = iota
	VertexShader
	FragmentShader
	ComputeShader
)

// ShaderStageFlags maps ShaderTypes into wgpu.ShaderStage flags.
var ShaderStageFlags = map[ShaderTypes]wgpu.ShaderStage{
	UnknownShader:  wgpu.ShaderStageNone,
	VertexShader:   wgpu.ShaderStageVertex,
	FragmentShader: wgpu.ShaderStageFragment,
	ComputeShader:  wgpu.ShaderStageCompute,
}
