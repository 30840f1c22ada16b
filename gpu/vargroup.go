// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log"

	"cogentcore.org/gpulearn/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// VertexGroup is the group number for Vertex and Index variables,
// which have special treatment outside of the standard @group bindings.
const VertexGroup = -2

// VarGroup contains a group of [Var] variables, all accessed via the
// same @group number in WGSL shaders.  All vars in a group should be
// updated at the same time scale, as everything in a group is bound
// together.
type VarGroup struct {
	// name is optional, for documentation.
	Name string

	// variables in order added, with sequential Binding numbers.
	Vars []*Var

	// map of vars by name.  Names must be unique.
	VarMap map[string]*Var

	// Group number, as in @group.  VertexGroup = -2.
	Group int

	// Role for all variables in this group.  Vertex group vars can
	// individually be set to Index role after adding.
	Role VarRoles

	// map of vars by their role, updated in Config.
	RoleMap map[VarRoles][]*Var

	// number of Values per variable, as set by SetNValues.
	nValues int

	// incremented when any Value buffer or texture is recreated,
	// so pipelines know to rebuild their bind groups.
	bindGroupUpdateCount int

	// alignment requirement in bytes for DynamicOffset values.
	alignBytes int

	device Device
}

// Add adds a new variable of given type and array size,
// used in given shaders.  The Role is that of the group.
func (vg *VarGroup) Add(name string, typ Types, arrayN int, shaders ...ShaderTypes) *Var {
	vr := &Var{}
	vr.init(vg, name, typ, arrayN, vg.Role, shaders...)
	vg.addVar(vr)
	return vr
}

// AddStruct adds a new struct variable of given total size in bytes,
// and array size, used in given shaders.
func (vg *VarGroup) AddStruct(name string, size int, arrayN int, shaders ...ShaderTypes) *Var {
	vr := &Var{}
	vr.init(vg, name, Struct, arrayN, vg.Role, shaders...)
	vr.SizeOf = size
	vg.addVar(vr)
	return vr
}

func (vg *VarGroup) addVar(vr *Var) {
	if vg.VarMap == nil {
		vg.VarMap = make(map[string]*Var)
	}
	vg.Vars = append(vg.Vars, vr)
	vg.VarMap[vr.Name] = vr
}

// VarByName returns Var by name, logging an error if not found.
func (vg *VarGroup) VarByName(name string) *Var {
	return errors.Log1(vg.VarByNameTry(name))
}

// VarByNameTry returns Var by name, returning error if not found
func (vg *VarGroup) VarByNameTry(name string) (*Var, error) {
	vr, ok := vg.VarMap[name]
	if !ok {
		err := fmt.Errorf("gpu.VarGroup: variable named %s not found in group %d %s", name, vg.Group, vg.Name)
		if Debug {
			log.Println(err)
		}
		return nil, err
	}
	return vr, nil
}

// ValueByNameTry returns value by first looking up variable name,
// then value name, returning error if not found
func (vg *VarGroup) ValueByNameTry(varName, valName string) (*Value, error) {
	vr, err := vg.VarByNameTry(varName)
	if err != nil {
		return nil, err
	}
	return vr.Values.ValueByNameTry(valName)
}

// SetNValues sets the number of Values for all vars in this group.
// Vars within a group must have the same number of values, as they
// are all bound together.
func (vg *VarGroup) SetNValues(nvals int) {
	vg.nValues = nvals
	for _, vr := range vg.Vars {
		vr.SetNValues(&vg.device, nvals)
	}
}

// IndexVar returns the Index role variable within this group,
// nil if none.
func (vg *VarGroup) IndexVar() *Var {
	if rl, has := vg.RoleMap[Index]; has && len(rl) == 1 {
		return rl[0]
	}
	for _, vr := range vg.Vars {
		if vr.Role == Index {
			return vr
		}
	}
	return nil
}

// Config must be called after all variables have been added.
// It assigns sequential Binding numbers and builds the RoleMap,
// and validates the group contents.
func (vg *VarGroup) Config(dev *Device) error {
	vg.device = *dev
	vg.RoleMap = make(map[VarRoles][]*Var)
	var cerr error
	bnum := 0
	for _, vr := range vg.Vars {
		if vg.Group == VertexGroup && vr.Role > Index {
			cerr = fmt.Errorf("gpu.VarGroup.Config: vertex group vars must have Vertex or Index roles, not: %s for var: %s", vr.Role, vr.Name)
			errors.Log(cerr)
		}
		if vg.Group >= 0 && vr.Role <= Index {
			cerr = fmt.Errorf("gpu.VarGroup.Config: Vertex or Index vars must be located in the VertexGroup, not group: %d for var: %s", vg.Group, vr.Name)
			errors.Log(cerr)
		}
		vg.RoleMap[vr.Role] = append(vg.RoleMap[vr.Role], vr)
		if vr.Role == Index {
			continue
		}
		vr.Binding = bnum
		switch {
		case vr.Role == SampledTexture:
			bnum += 2 // texture and sampler
		case len(vr.vertexTypes) > 0:
			bnum += len(vr.vertexTypes) // one @location per attribute
		default:
			bnum++
		}
	}
	return cerr
}

// BindGroupUpdateCount returns the current bind group update counter,
// which pipelines use to determine if cached bind groups are stale.
func (vg *VarGroup) BindGroupUpdateCount() int {
	return vg.bindGroupUpdateCount
}

// valuesUpdated is called whenever a Value buffer or texture is
// recreated, invalidating existing bind groups.
func (vg *VarGroup) valuesUpdated() {
	vg.bindGroupUpdateCount++
}

// vertexLayout returns the WebGPU vertex buffer layouts for the
// Vertex role variables in this group: each variable gets its own
// separate buffer slot, with @location(s) given by the var Binding.
// An interleaved Struct variable produces one attribute per entry
// in its vertex types, all within the one buffer.
func (vg *VarGroup) vertexLayout() []wgpu.VertexBufferLayout {
	var vbl []wgpu.VertexBufferLayout
	for _, vr := range vg.Vars {
		if vr.Role != Vertex {
			continue
		}
		step := wgpu.VertexStepModeVertex
		if vr.VertexInstance {
			step = wgpu.VertexStepModeInstance
		}
		var attrs []wgpu.VertexAttribute
		if len(vr.vertexTypes) > 0 {
			off := uint64(0)
			for i, tp := range vr.vertexTypes {
				attrs = append(attrs, wgpu.VertexAttribute{
					Format:         tp.VertexFormat(),
					Offset:         off,
					ShaderLocation: uint32(vr.Binding + i),
				})
				off += uint64(tp.Bytes())
			}
		} else {
			attrs = []wgpu.VertexAttribute{{
				Format:         vr.Type.VertexFormat(),
				Offset:         0,
				ShaderLocation: uint32(vr.Binding),
			}}
		}
		vbl = append(vbl, wgpu.VertexBufferLayout{
			ArrayStride: uint64(vr.SizeOf),
			StepMode:    step,
			Attributes:  attrs,
		})
	}
	return vbl
}

// usedVars returns the vars to include in bind groups: the subset of
// the given used vars belonging to this group, otherwise all group vars.
// The used list can span groups, e.g., coming from a pipeline.
func (vg *VarGroup) usedVars(used ...*Var) []*Var {
	if len(used) == 0 {
		return vg.Vars
	}
	var gu []*Var
	for _, vr := range used {
		if vr.Group == vg.Group {
			gu = append(gu, vr)
		}
	}
	if len(gu) == 0 {
		return vg.Vars
	}
	return gu
}

// bindLayout returns a BindGroupLayout for this group, for the
// given subset of used vars (all if empty).
// The caller is responsible for releasing the layout.
func (vg *VarGroup) bindLayout(vs *Vars, used ...*Var) (*wgpu.BindGroupLayout, error) {
	var entries []wgpu.BindGroupLayoutEntry
	for _, vr := range vg.usedVars(used...) {
		if vr.Role == SampledTexture {
			entries = append(entries,
				wgpu.BindGroupLayoutEntry{
					Binding:    uint32(vr.Binding),
					Visibility: vr.Shaders,
					Texture: wgpu.TextureBindingLayout{
						Multisampled:  false,
						ViewDimension: wgpu.TextureViewDimension2D,
						SampleType:    wgpu.TextureSampleTypeFloat,
					},
				},
				wgpu.BindGroupLayoutEntry{
					Binding:    uint32(vr.Binding + 1),
					Visibility: vr.Shaders,
					Sampler: wgpu.SamplerBindingLayout{
						Type: wgpu.SamplerBindingTypeFiltering,
					},
				})
			continue
		}
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    uint32(vr.Binding),
			Visibility: vr.Shaders,
			Buffer: wgpu.BufferBindingLayout{
				Type:             vr.Role.bindingType(),
				HasDynamicOffset: vr.DynamicOffset,
				MinBindingSize:   0,
			},
		})
	}
	bgl, err := vg.device.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   vg.Name,
		Entries: entries,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	return bgl, nil
}

// bindGroup returns a new BindGroup for the Current values of the
// given subset of used vars (all if empty).
func (vg *VarGroup) bindGroup(vs *Vars, used ...*Var) (*wgpu.BindGroup, error) {
	bgl, err := vg.bindLayout(vs, used...)
	if err != nil {
		return nil, err
	}
	defer bgl.Release()
	var entries []wgpu.BindGroupEntry
	for _, vr := range vg.usedVars(used...) {
		entries = append(entries, vr.bindGroupEntry()...)
	}
	bg, err := vg.device.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   vg.Name,
		Layout:  bgl,
		Entries: entries,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	return bg, nil
}

// dynamicOffsets returns the current dynamic offsets for
// DynamicOffset vars, in binding order, for the SetBindGroup call.
func (vg *VarGroup) dynamicOffsets(used ...*Var) []uint32 {
	var offs []uint32
	for _, vr := range vg.usedVars(used...) {
		if vr.DynamicOffset {
			offs = append(offs, vr.Values.dynamicOffset())
		}
	}
	return offs
}

// Release destroys all the vars and values in this group.
func (vg *VarGroup) Release() {
	for _, vr := range vg.Vars {
		vr.Release()
	}
	vg.Vars = nil
	vg.VarMap = nil
	vg.RoleMap = nil
}
