// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestMemSizeAlign(t *testing.T) {
	assert.Equal(t, 16, MemSizeAlign(12, 16))
	assert.Equal(t, 16, MemSizeAlign(16, 16))
	assert.Equal(t, 32, MemSizeAlign(17, 16))
	assert.Equal(t, 256, MemSizeAlign(100, 256))
	assert.Equal(t, 3, MemSizeAlign(3, 1))
}

func TestVarMemSize(t *testing.T) {
	uvg := &VarGroup{Group: 0, Role: Uniform, alignBytes: 256}
	// uniform array elements align to 16 bytes
	uv := uvg.Add("Colors", Float32Vector3, 4, FragmentShader)
	assert.Equal(t, 64, uv.MemSize())

	vvg := &VarGroup{Group: VertexGroup, Role: Vertex, alignBytes: 1}
	pv := vvg.Add("Pos", Float32Vector3, 0, VertexShader)
	assert.Equal(t, 12, pv.MemSize())

	svg := &VarGroup{Group: 1, Role: Storage, alignBytes: 256}
	sv := svg.Add("Data", Float32Vector3, 4, VertexShader)
	assert.Equal(t, 48, sv.MemSize())
}

func TestVarNotFound(t *testing.T) {
	vg := &VarGroup{Group: 0, Role: Uniform, alignBytes: 1}
	vg.Add("Camera", Struct, 1, VertexShader)

	vr, err := vg.VarByNameTry("Camera")
	assert.NoError(t, err)
	assert.NotNil(t, vr)

	_, err = vg.VarByNameTry("Kamera")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "not found")
	}

	_, err = vg.ValueByNameTry("Kamera", "any")
	assert.Error(t, err)
}

func TestCurrentValue(t *testing.T) {
	vg := &VarGroup{Group: 0, Role: Uniform, alignBytes: 1}
	vr := vg.AddStruct("Model", 64, 1, VertexShader)
	vr.SetNValues(&Device{}, 3)
	assert.Len(t, vr.Values.Values, 3)
	assert.Equal(t, vr.Values.Values[0], vr.Values.CurrentValue())

	nup := vg.bindGroupUpdateCount
	vr.SetCurrentValue(2)
	assert.Equal(t, vr.Values.Values[2], vr.Values.CurrentValue())
	assert.Equal(t, nup+1, vg.bindGroupUpdateCount)

	vr.SetCurrentValue(2) // no-op
	assert.Equal(t, nup+1, vg.bindGroupUpdateCount)

	assert.Nil(t, vr.Values.SetCurrentValue(3))
}

func TestVertexLayout(t *testing.T) {
	vg := &VarGroup{Group: VertexGroup, Role: Vertex, alignBytes: 1}
	pos := vg.Add("Pos", Float32Vector3, 0, VertexShader)
	clr := vg.Add("Color", Float32Vector4, 0, VertexShader)
	idx := vg.Add("Index", Uint16, 0, VertexShader)
	idx.Role = Index

	assert.NoError(t, vg.Config(&Device{}))
	assert.Equal(t, 0, pos.Binding)
	assert.Equal(t, 1, clr.Binding)

	vbl := vg.vertexLayout()
	if assert.Len(t, vbl, 2) {
		assert.Equal(t, uint64(12), vbl[0].ArrayStride)
		assert.Equal(t, uint64(16), vbl[1].ArrayStride)
		assert.Equal(t, uint32(0), vbl[0].Attributes[0].ShaderLocation)
		assert.Equal(t, uint32(1), vbl[1].Attributes[0].ShaderLocation)
	}
}

func TestVertexInterleaved(t *testing.T) {
	vg := &VarGroup{Group: VertexGroup, Role: Vertex, alignBytes: 1}
	vtx := vg.Add("VertexIn", Struct, 0, VertexShader)
	vtx.SetVertexTypes(Float32Vector3, Float32Vector4, Float32Vector2)
	assert.Equal(t, 36, vtx.SizeOf)

	idx := vg.Add("Index", Uint32, 0, VertexShader)
	idx.Role = Index

	assert.NoError(t, vg.Config(&Device{}))
	assert.Equal(t, 0, vtx.Binding)

	vbl := vg.vertexLayout()
	if assert.Len(t, vbl, 1) {
		assert.Equal(t, uint64(36), vbl[0].ArrayStride)
		if assert.Len(t, vbl[0].Attributes, 3) {
			assert.Equal(t, uint64(0), vbl[0].Attributes[0].Offset)
			assert.Equal(t, uint64(12), vbl[0].Attributes[1].Offset)
			assert.Equal(t, uint64(28), vbl[0].Attributes[2].Offset)
			assert.Equal(t, uint32(0), vbl[0].Attributes[0].ShaderLocation)
			assert.Equal(t, uint32(1), vbl[0].Attributes[1].ShaderLocation)
			assert.Equal(t, uint32(2), vbl[0].Attributes[2].ShaderLocation)
			assert.Equal(t, wgpu.VertexFormatFloat32x4, vbl[0].Attributes[1].Format)
		}
	}
}

func TestGroupRoleValidation(t *testing.T) {
	vg := &VarGroup{Group: VertexGroup, Role: Vertex, alignBytes: 1}
	vg.Add("Pos", Float32Vector3, 0, VertexShader)
	uv := vg.Add("Camera", Struct, 1, VertexShader)
	uv.Role = Uniform
	assert.Error(t, vg.Config(&Device{}))

	ug := &VarGroup{Group: 0, Role: Uniform, alignBytes: 1}
	vv := ug.Add("Pos", Float32Vector3, 0, VertexShader)
	vv.Role = Vertex
	assert.Error(t, ug.Config(&Device{}))
}

func TestSetFromBytesErrors(t *testing.T) {
	vg := &VarGroup{Group: 0, Role: Uniform, alignBytes: 256}
	vr := vg.Add("Color", Float32Vector4, 1, FragmentShader)
	vl := NewValue(vr, &Device{}, 0)

	err := vl.SetFromBytes(wgpu.ToBytes([]float32{1, 2, 3}))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "Size passed: 12 != Size expected 16")
	}

	err = vl.SetDynamicFromBytes(0, wgpu.ToBytes([]float32{1, 2, 3, 4}))
	assert.Error(t, err) // not a dynamic offset variable
}

func TestDynamicStaging(t *testing.T) {
	vg := &VarGroup{Group: 0, Role: Uniform, alignBytes: 256}
	vr := vg.AddStruct("Model", 64, 1, VertexShader)
	vr.DynamicOffset = true
	vl := NewValue(vr, &Device{}, 0)
	assert.Equal(t, 64, vl.VarSize)
	assert.Equal(t, 256, vl.AlignVarSize)

	vl.DynamicN = 3
	assert.Equal(t, 768, vl.MemSize())

	vals := make([]float32, 16)
	for i := range vals {
		vals[i] = float32(i)
	}
	assert.NoError(t, SetDynamicValueFrom(vl, 1, vals))
	assert.Equal(t, 768, len(vl.dynamicBuffer))
	assert.Equal(t, wgpu.ToBytes(vals), vl.dynamicBuffer[256:256+64])

	err := SetDynamicValueFrom(vl, 3, vals)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "Index: 3 >= DynamicN: 3")
	}

	err = SetDynamicValueFrom(vl, 0, vals[:8])
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "Size passed: 32 != Size expected 64")
	}

	err = vl.SetFromBytes(wgpu.ToBytes(vals))
	assert.Error(t, err) // dynamic offset values use SetDynamicValueFrom

	vl.SetDynamicIndex(2)
	assert.Equal(t, 2, vl.DynamicIndex)
	assert.Nil(t, vl.SetDynamicIndex(5))
}

func TestIndexFormats(t *testing.T) {
	assert.Equal(t, wgpu.IndexFormatUint16, Uint16.IndexType())
	assert.Equal(t, wgpu.IndexFormatUint32, Uint32.IndexType())
}

func TestValueToBytesSize(t *testing.T) {
	// one vertex value of k elements of size s is exactly k*s bytes
	vals := []float32{
		-0.5, -0.5, 0.0,
		0.5, -0.5, 0.0,
		0.0, 0.5, 0.0}
	b := wgpu.ToBytes(vals)
	assert.Equal(t, 9*4, len(b))

	idxs := []uint32{0, 1, 2, 0, 2, 3}
	assert.Equal(t, 6*4, len(wgpu.ToBytes(idxs)))

	vg := &VarGroup{Group: VertexGroup, Role: Vertex, alignBytes: 1}
	vr := vg.Add("Pos", Float32Vector3, 0, VertexShader)
	vl := NewValue(vr, &Device{}, 0)
	vl.DynamicN = 3
	assert.Equal(t, len(b), vl.MemSize())
}
