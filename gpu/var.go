// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Var specifies a variable used in a pipeline, accessed in shader programs.
// A Var represents a type of input or output into the GPU program,
// including things like Vertex arrays, transformation matricies (Uniforms),
// and Textures.
// There are one or more corresponding Value items for each Var, which represent
// the actual value of the variable: Var only represents the type-level info.
// Each Var belongs to a VarGroup, and its Binding location is allocated within
// that, and these numbers are used in WGSL shader via @group and @binding to
// refer to the variables.
type Var struct {
	// variable name
	Name string

	// Type of data in variable.  Note that there are strict contraints
	// on the alignment of fields within structs: if you can keep all fields
	// at 4 byte increments, that works, but otherwise larger fields trigger
	// a 16 byte alignment constraint.
	Type Types

	// ArrayN is the number of elements if this is a fixed array.
	// Use 1 if singular element, and 0 if a variable-sized array,
	// where each Value can have its own specific size.
	ArrayN int

	// Role of variable: Vertex is configured separately in the VertexGroup,
	// and everything else is configured in a BindGroup.
	// Note: Push is not yet supported.
	Role VarRoles

	// VertexInstance is whether this Vertex role variable is indexed
	// per instance, instead of per vertex.
	VertexInstance bool

	// bit flags for set of shaders that this variable is used in,
	// determined by the shader args passed to the Add method.
	Shaders wgpu.ShaderStage `edit:"-"`

	// Group binding for this variable, indicated by @group in WGSL shader.
	Group int

	// Binding number for this variable, indicated by @binding in WGSL shader.
	// These are automatically assigned sequentially within Group.
	// A SampledTexture takes two bindings: texture, then sampler.
	Binding int `edit:"-"`

	// SizeOf is the size in bytes of one element (not array size).
	// Note that arrays in Uniform require 16 byte alignment for each element,
	// so if using arrays, it is best to work within that constraint.
	SizeOf int

	// DynamicOffset indicates to use dynamic offsets within a
	// Uniform or Storage buffer Value, where one buffer holds DynamicN
	// elements, and the offset for the current element is set via
	// the SetDynamicIndex methods.
	DynamicOffset bool

	// Values is the the array of Values allocated for this variable.
	// Each value has its own corresponding Buffer or Texture.
	// The currently-active value is specified in Values.Current,
	// and this is what will be used in rendering.
	Values Values

	// vertexTypes are the interleaved attribute types for a Struct
	// type Vertex role variable, set via [Var.SetVertexTypes].
	vertexTypes []Types

	// alignBytes is the alignment increment from our VarGroup.
	alignBytes int

	// our parent VarGroup, for bind group update notification.
	vgroup *VarGroup
}

func (vr *Var) init(vg *VarGroup, name string, typ Types, arrayN int, role VarRoles, shaders ...ShaderTypes) {
	vr.Name = name
	vr.Type = typ
	vr.ArrayN = arrayN
	vr.Role = role
	vr.SizeOf = typ.Bytes()
	vr.Group = vg.Group
	vr.alignBytes = vg.alignBytes
	vr.vgroup = vg
	vr.Shaders = 0
	for _, sh := range shaders {
		vr.Shaders |= ShaderStageFlags[sh]
	}
}

func (vr *Var) String() string {
	typ := vr.Type.String()
	if vr.ArrayN > 1 {
		if vr.ArrayN > 10000 {
			typ = fmt.Sprintf("%s[0x%X]", typ, vr.ArrayN)
		} else {
			typ = fmt.Sprintf("%s[%d]", typ, vr.ArrayN)
		}
	}
	s := fmt.Sprintf("%d:\t%s\t%s\t(size: %d)\tValues: %d", vr.Binding, vr.Name, typ, vr.SizeOf, len(vr.Values.Values))
	return s
}

// SetVertexTypes sets interleaved vertex attribute types for a
// [Struct] type Vertex role variable, where one buffer holds all
// of the attributes for each vertex, instead of one buffer per
// attribute.  Each type becomes one attribute in order, with offsets
// accumulating by type size, and sequential shader @location numbers
// starting at the variable Binding.
// The variable SizeOf, which is the buffer stride, is set to the
// total size of one interleaved record.
func (vr *Var) SetVertexTypes(types ...Types) {
	vr.vertexTypes = types
	sz := 0
	for _, tp := range types {
		sz += tp.Bytes()
	}
	vr.SizeOf = sz
}

// MemSize returns the memory allocation size for one Value
// of this variable, in bytes.
func (vr *Var) MemSize() int {
	n := vr.ArrayN
	if n == 0 {
		n = 1
	}
	switch {
	case vr.Role >= StorageTexture:
		return 0
	case n == 1 || vr.Role < Uniform:
		return vr.SizeOf * n
	case vr.Role == Uniform:
		sz := MemSizeAlign(vr.SizeOf, 16)
		return sz * n
	default:
		return vr.SizeOf * n
	}
}

// SetNValues sets specified number of Values for this var.
// If the number changes, any existing values are released.
func (vr *Var) SetNValues(dev *Device, nvals int) {
	if vr.Values.SetN(vr, dev, nvals) {
		vr.valuesUpdated()
	}
}

// SetCurrentValue sets the Current Value index, which is
// the Value that will be used in rendering, via BindGroup.
func (vr *Var) SetCurrentValue(curr int) {
	if vr.Values.Current == curr {
		return
	}
	vr.Values.SetCurrentValue(curr)
	vr.valuesUpdated()
}

// valuesUpdated notifies our group that the bind group
// must be rebuilt, e.g., after a Value buffer was recreated.
func (vr *Var) valuesUpdated() {
	if vr.vgroup != nil {
		vr.vgroup.valuesUpdated()
	}
}

// bindGroupEntry returns the BindGroupEntry values for the
// Current Value of this variable.
func (vr *Var) bindGroupEntry() []wgpu.BindGroupEntry {
	return vr.Values.bindGroupEntry(vr)
}

// Release destroys all the Values made for this Var.
func (vr *Var) Release() {
	vr.Values.Release()
}
