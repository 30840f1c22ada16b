// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// VarRoles are the functional roles of variables.
type VarRoles int32

const (
	UndefVarRole VarRoles = iota

	// Vertex is vertex shader input data: mesh geometry points, normals, etc.
	// These are bound separately via VertexGroup, not in bind groups.
	Vertex

	// Index is for indexes to access to Vertex data, also in VertexGroup.
	Index

	// Push is push constants, NOT CURRENTLY SUPPORTED in WebGPU.
	Push

	// Uniform is read-only general purpose data, with a more limited capacity.
	Uniform

	// Storage is read-write general purpose data, with larger capacity.
	Storage

	// StorageTexture is read-write storage-based texture data.
	StorageTexture

	// SampledTexture is a Texture + Sampler that is sampled in a shader.
	// A TextureSample is managed for each Value of this role, and two
	// sequential bindings are used: texture, then sampler.
	SampledTexture

	VarRolesN
)

var varRolesNames = []string{"UndefVarRole", "Vertex", "Index", "Push",
	"Uniform", "Storage", "StorageTexture", "SampledTexture", "VarRolesN"}

func (vr VarRoles) String() string {
	if vr < 0 || vr > VarRolesN {
		return "VarRoles(invalid)"
	}
	return varRolesNames[vr]
}

// IsDynamic returns true if role has a dynamic size, i.e., Vertex
// or Index, where the buffer size is determined by the data set.
func (vr VarRoles) IsDynamic() bool {
	return vr == Vertex || vr == Index
}

// BufferUsages returns the BufferUsage for buffers of this role.
func (vr VarRoles) BufferUsages() wgpu.BufferUsage {
	return RoleBufferUsages[vr]
}

// RoleBufferUsages maps VarRoles into buffer usage flags.
var RoleBufferUsages = map[VarRoles]wgpu.BufferUsage{
	Vertex:  wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	Index:   wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	Uniform: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	Storage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc,
}

// bindingType returns the BufferBindingType for this role,
// for BindGroupLayout entries.  Storage is read-only because
// that is the only mode available to vertex and fragment shaders.
func (vr VarRoles) bindingType() wgpu.BufferBindingType {
	if vr == Storage {
		return wgpu.BufferBindingTypeReadOnlyStorage
	}
	return wgpu.BufferBindingTypeUniform
}
