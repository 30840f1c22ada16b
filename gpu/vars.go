// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log"
	"strings"

	"cogentcore.org/gpulearn/base/indent"

	"github.com/cogentcore/webgpu/wgpu"
)

// Vars are all the variables that are used by a pipeline,
// organized into Groups (optionally including the special VertexGroup).
// Vars are allocated to bindings sequentially in the order added.
type Vars struct {
	// map of Groups, by group number: VertexGroup is -2,
	// rest are added incrementally.
	Groups map[int]*VarGroup

	// map of vars by different roles across all Groups, updated in Config(),
	// after all vars added.
	RoleMap map[VarRoles][]*Var

	// true if a VertexGroup has been added
	hasVertex bool `edit:"-"`

	sys System

	device Device
}

func (vs *Vars) Release() {
	for _, vg := range vs.Groups {
		vg.Release()
	}
}

// AddVertexGroup adds a new Vertex Group.
// This is a special Group holding Vertex, Index vars
func (vs *Vars) AddVertexGroup() *VarGroup {
	if vs.Groups == nil {
		vs.Groups = make(map[int]*VarGroup)
	}
	vg := &VarGroup{Name: "Vertex", Group: VertexGroup, Role: Vertex, alignBytes: 1, device: vs.device}
	vs.Groups[VertexGroup] = vg
	vs.hasVertex = true
	return vg
}

// VertexGroup returns the Vertex Group -- a special Group holding Vertex, Index vars
func (vs *Vars) VertexGroup() *VarGroup {
	return vs.Groups[VertexGroup]
}

// AddGroup adds a new non-Vertex Group for holding data for given Role
// (Uniform, Storage, etc).
// Groups are automatically numbered sequentially in order added.
// Name is optional and just provides documentation.
// Important limit: there can only be a maximum of 4 Groups!
func (vs *Vars) AddGroup(role VarRoles, name ...string) *VarGroup {
	if vs.Groups == nil {
		vs.Groups = make(map[int]*VarGroup)
	}
	idx := vs.NGroups()
	if idx >= 4 {
		panic("gpu.AddGroup: there is a hard limit of 4 on the number of VarGroups imposed by the WebGPU system, on Web platforms!")
	}
	vg := &VarGroup{Group: idx, Role: role, device: vs.device}
	if len(name) == 1 {
		vg.Name = name[0]
	}
	vg.alignBytes = 1
	if role == Uniform {
		vg.alignBytes = int(vs.sys.GPU().Limits.Limits.MinUniformBufferOffsetAlignment)
	} else if role == Storage {
		vg.alignBytes = int(vs.sys.GPU().Limits.Limits.MinStorageBufferOffsetAlignment)
	}
	vs.Groups[idx] = vg
	return vg
}

// Config must be called after all variables have been added.
// Configures all Groups and also does validation, returning error
// does DescLayout too, so all ready for Pipeline config.
func (vs *Vars) Config(dev *Device) error {
	ns := vs.NGroups()
	var cerr error
	vs.RoleMap = make(map[VarRoles][]*Var)
	for gi := vs.StartGroup(); gi < ns; gi++ {
		vg := vs.Groups[gi]
		if vg == nil {
			continue
		}
		err := vg.Config(dev)
		if err != nil {
			cerr = err
		}
		for ri, rl := range vg.RoleMap {
			vs.RoleMap[ri] = append(vs.RoleMap[ri], rl...)
		}
	}
	vs.bindLayout(dev)
	return cerr
}

// StringDoc returns info on variables
func (vs *Vars) StringDoc() string {
	ispc := 4
	var sb strings.Builder
	ns := vs.NGroups()
	for gi := vs.StartGroup(); gi < ns; gi++ {
		vg := vs.Groups[gi]
		if vg == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("Group: %d %s\n", vg.Group, vg.Name))

		for ri := Vertex; ri < VarRolesN; ri++ {
			rl, has := vg.RoleMap[ri]
			if !has || len(rl) == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("%sRole: %s\n", indent.Spaces(1, ispc), ri.String()))
			for _, vr := range rl {
				sb.WriteString(fmt.Sprintf("%sVar: %s\n", indent.Spaces(2, ispc), vr.String()))
			}
		}
	}
	return sb.String()
}

// NGroups returns the number of regular non-VertexGroup groups
func (vs *Vars) NGroups() int {
	if vs.hasVertex {
		return len(vs.Groups) - 1
	}
	return len(vs.Groups)
}

// StartGroup returns the starting group to use for iterating groups
func (vs *Vars) StartGroup() int {
	if vs.hasVertex {
		return VertexGroup
	}
	return 0
}

// GroupTry returns group by index, returning nil and error if not found
func (vs *Vars) GroupTry(group int) (*VarGroup, error) {
	vg, has := vs.Groups[group]
	if !has {
		err := fmt.Errorf("gpu.Vars:GroupTry gp number %d not found", group)
		if Debug {
			log.Println(err)
		}
		return nil, err
	}
	return vg, nil
}

// VertexLayout returns WebGPU vertex layout, for VertexGroup only!
func (vs *Vars) VertexLayout() []wgpu.VertexBufferLayout {
	if vs.hasVertex {
		return vs.Groups[VertexGroup].vertexLayout()
	}
	return nil
}

// bindLayout returns a fresh slice of BindGroupLayouts for all of
// the non-Vertex groups, for the given subset of used vars
// (all if empty).  The caller is responsible for releasing them.
func (vs *Vars) bindLayout(dev *Device, used ...*Var) []*wgpu.BindGroupLayout {
	ngp := vs.NGroups()
	if ngp == 0 {
		return nil
	}
	var lays []*wgpu.BindGroupLayout
	for gi := 0; gi < ngp; gi++ { // auto-skips vertex, push
		vg := vs.Groups[gi]
		if vg == nil {
			continue
		}
		vgl, err := vg.bindLayout(vs, used...)
		if err != nil {
			continue
		}
		lays = append(lays, vgl)
	}
	return lays
}
