// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/gpulearn/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// GraphicsPipeline is a Pipeline specifically for the Graphics stack.
// In this context, each pipeline could handle a different
// class of materials (textures, Phong lighting, etc).
// There must be two shader-names
type GraphicsPipeline struct {
	Pipeline

	// Primitive has various settings for graphics primitives,
	// e.g., TriangleList
	Primitive wgpu.PrimitiveState

	// Multisample holds the multisampled render parameters.
	// The Count is updated automatically in Config to match the
	// Render Format Samples of the system Renderer.
	Multisample wgpu.MultisampleState

	// AlphaBlend determines whether to do 1 - source alpha blending,
	// or no blending, where the new color overwrites the old.
	AlphaBlend bool

	// renderPipeline is the configured, instantiated WebGPU pipeline.
	renderPipeline *wgpu.RenderPipeline

	// layout is the pipeline layout for the renderPipeline,
	// released along with it.
	layout *wgpu.PipelineLayout
}

// NewGraphicsPipeline returns a new GraphicsPipeline
// as part of the given GraphicsSystem.
func NewGraphicsPipeline(name string, sy System) *GraphicsPipeline {
	pl := &GraphicsPipeline{}
	pl.Name = name
	pl.System = sy
	pl.SetGraphicsDefaults()
	return pl
}

// BindPipeline binds this pipeline as the one to use for next commands in
// the given render pass, configuring it first if needed.
// This also calls BindAllGroups, to bind the Current Value for all variables,
// excluding Vertex level variables: use BindVertex for that.
// Be sure to set the desired Current value prior to calling.
func (pl *GraphicsPipeline) BindPipeline(rp *wgpu.RenderPassEncoder) error {
	if pl.renderPipeline == nil {
		err := pl.Config(false)
		if err != nil {
			return err
		}
	}
	rp.SetPipeline(pl.renderPipeline)
	pl.BindAllGroups(rp)
	return nil
}

// BindAllGroups binds the Current Value for all variables across all
// variable groups, as the Value to use by shader.
// Automatically called in BindPipeline at start of render for pipeline.
// Be sure to set Current index to correct value before calling!
func (pl *GraphicsPipeline) BindAllGroups(rp *wgpu.RenderPassEncoder) {
	vs := pl.Vars()
	ngp := vs.NGroups()
	for gi := range ngp {
		pl.BindGroup(rp, gi)
	}
}

// BindGroup binds the Current Value for all variables in given
// variable group, as the Value to use by shader.
// Be sure to set Current index to correct value before calling!
func (pl *GraphicsPipeline) BindGroup(rp *wgpu.RenderPassEncoder, group int) error {
	vs := pl.Vars()
	vg, err := vs.GroupTry(group)
	if err != nil {
		return err
	}
	bg, dynOffs, err := pl.bindGroup(vg)
	if err != nil {
		return err
	}
	rp.SetBindGroup(uint32(vg.Group), bg, dynOffs)
	return nil
}

// BindDrawIndexed binds the Current Value for all VertexGroup variables,
// as the vertex data, and then does a DrawIndexed call.
func (pl *GraphicsPipeline) BindDrawIndexed(rp *wgpu.RenderPassEncoder) {
	pl.BindVertex(rp)
	pl.DrawIndexed(rp)
}

// BindDrawVertex binds the Current Value for all VertexGroup variables,
// as the vertex data, and then does a Draw call with no index buffer,
// using the number of elements in the (first) vertex value.
func (pl *GraphicsPipeline) BindDrawVertex(rp *wgpu.RenderPassEncoder) {
	pl.BindVertex(rp)
	pl.Draw(rp)
}

// BindVertex binds the Current Value for all VertexGroup variables,
// as the vertex data to use for the next DrawIndexed or Draw call.
// The buffer slots match the order of the vertex variables,
// as in the pipeline vertex layout.
func (pl *GraphicsPipeline) BindVertex(rp *wgpu.RenderPassEncoder) {
	vs := pl.Vars()
	vg := vs.Groups[VertexGroup]
	if vg == nil {
		return
	}
	slot := 0
	for _, vr := range vg.Vars {
		vl := vr.Values.CurrentValue()
		if vr.Role == Index {
			if vl.buffer != nil {
				rp.SetIndexBuffer(vl.buffer, vr.Type.IndexType(), 0, wgpu.WholeSize)
			}
			continue
		}
		if vl.buffer != nil {
			rp.SetVertexBuffer(uint32(slot), vl.buffer, 0, wgpu.WholeSize)
		}
		slot++
	}
}

// DrawIndexed does an indexed draw call, using the number of elements
// in the current Index variable value. Requires prior BindVertex call.
func (pl *GraphicsPipeline) DrawIndexed(rp *wgpu.RenderPassEncoder) {
	vs := pl.Vars()
	vg := vs.Groups[VertexGroup]
	if vg == nil {
		return
	}
	ix := vg.IndexVar()
	if ix == nil {
		return
	}
	iv := ix.Values.CurrentValue()
	rp.DrawIndexed(uint32(iv.DynamicN), 1, 0, 0, 0)
}

// Draw does a non-indexed draw call, using the minimum number of
// elements across the current Vertex variable values.
// Requires prior BindVertex call.
func (pl *GraphicsPipeline) Draw(rp *wgpu.RenderPassEncoder) {
	vs := pl.Vars()
	vg := vs.Groups[VertexGroup]
	if vg == nil {
		return
	}
	n := 0
	for _, vr := range vg.Vars {
		if vr.Role != Vertex {
			continue
		}
		vn := vr.Values.CurrentValue().DynamicN
		if n == 0 || vn < n {
			n = vn
		}
	}
	if n == 0 {
		return
	}
	rp.Draw(uint32(n), 1, 0, 0)
}

// VertexEntry returns the [ShaderEntry] for [VertexShader].
// Can be nil if no vertex shader defined.
func (pl *GraphicsPipeline) VertexEntry() *ShaderEntry {
	return pl.EntryByType(VertexShader)
}

// FragmentEntry returns the [ShaderEntry] for [FragmentShader].
// Can be nil if no fragment shader defined.
func (pl *GraphicsPipeline) FragmentEntry() *ShaderEntry {
	return pl.EntryByType(FragmentShader)
}

// Config is called once all the Set* options have been set
// and the shaders have been loaded.
// The parent GraphicsSystem has already done what it can for its config.
// The rebuild flag indicates whether an existing pipeline should
// be rebuilt, e.g., after a shader is reloaded.
func (pl *GraphicsPipeline) Config(rebuild bool) error {
	if pl.renderPipeline != nil {
		if !rebuild {
			return nil
		}
		pl.ReleasePipeline() // starting over: note: requires keeping shaders around
	}
	rd := pl.System.Render()
	pl.SetMultisample(rd.Format.Samples)
	lay, err := pl.bindLayout()
	if err != nil {
		return err
	}
	pd := &wgpu.RenderPipelineDescriptor{
		Label:       pl.Name,
		Layout:      lay,
		Primitive:   pl.Primitive,
		Multisample: pl.Multisample,
	}
	ve := pl.VertexEntry()
	if ve != nil {
		pd.Vertex = wgpu.VertexState{
			Module:     ve.Shader.module,
			EntryPoint: ve.Entry,
			Buffers:    pl.Vars().VertexLayout(),
		}
	}
	fe := pl.FragmentEntry()
	if fe != nil {
		blend := &BlendStatePremultiplied
		if !pl.AlphaBlend {
			blend = &wgpu.BlendStateReplace
		}
		pd.Fragment = &wgpu.FragmentState{
			Module:     fe.Shader.module,
			EntryPoint: fe.Entry,
			Targets: []wgpu.ColorTargetState{{
				Format:    rd.Format.Format,
				Blend:     blend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		}
	}
	if rd.DepthFormat != UndefinedType {
		pd.DepthStencil = &wgpu.DepthStencilState{
			Format:            rd.DepthFormat.TextureFormat(),
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare:     wgpu.CompareFunctionAlways,
				FailOp:      wgpu.StencilOperationKeep,
				DepthFailOp: wgpu.StencilOperationKeep,
				PassOp:      wgpu.StencilOperationKeep,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare:     wgpu.CompareFunctionAlways,
				FailOp:      wgpu.StencilOperationKeep,
				DepthFailOp: wgpu.StencilOperationKeep,
				PassOp:      wgpu.StencilOperationKeep,
			},
			StencilReadMask:  0xFFFFFFFF,
			StencilWriteMask: 0xFFFFFFFF,
		}
	}
	rpl, err := pl.System.Device().Device.CreateRenderPipeline(pd)
	if errors.Log(err) != nil {
		lay.Release()
		return err
	}
	pl.layout = lay
	pl.renderPipeline = rpl
	return nil
}

func (pl *GraphicsPipeline) Release() {
	pl.releaseShaders()
	pl.ReleasePipeline()
}

// ReleasePipeline releases the instantiated WebGPU pipeline and its
// layout, retaining the shaders and settings so it can be rebuilt.
func (pl *GraphicsPipeline) ReleasePipeline() {
	if pl.layout != nil {
		pl.layout.Release()
		pl.layout = nil
	}
	if pl.renderPipeline != nil {
		pl.renderPipeline.Release()
		pl.renderPipeline = nil
	}
}

////////////////////////////////////////////////////
// Set graphics options

// SetGraphicsDefaults configures all the default settings for a
// graphics rendering pipeline.
func (pl *GraphicsPipeline) SetGraphicsDefaults() *GraphicsPipeline {
	pl.SetTopology(TriangleList, false)
	pl.SetFrontFace(wgpu.FrontFaceCCW)
	pl.SetCullMode(wgpu.CullModeBack)
	pl.SetAlphaBlend(true)
	pl.SetMultisample(1)
	return pl
}

// SetTopology sets the topology of vertex position data.
// TriangleList is the default.
// Also for Strip modes, restartEnable allows restarting a new
// strip by inserting a ??
func (pl *GraphicsPipeline) SetTopology(topo Topologies, restartEnable bool) *GraphicsPipeline {
	pl.Primitive.Topology = topo.Primitive()
	return pl
}

// SetFrontFace sets the winding order for what counts as a front face.
func (pl *GraphicsPipeline) SetFrontFace(face wgpu.FrontFace) *GraphicsPipeline {
	pl.Primitive.FrontFace = face
	return pl
}

// SetCullMode sets the face culling mode.
func (pl *GraphicsPipeline) SetCullMode(mode wgpu.CullMode) *GraphicsPipeline {
	pl.Primitive.CullMode = mode
	return pl
}

// SetMultisample sets the number of multisampling samples.
func (pl *GraphicsPipeline) SetMultisample(ms int) *GraphicsPipeline {
	pl.Multisample.Count = uint32(max(1, ms))
	pl.Multisample.Mask = 0xFFFFFFFF
	pl.Multisample.AlphaToCoverageEnabled = false
	return pl
}

// SetLineWidth sets the rendering line width -- 1 is default.
// Not currently supported in WebGPU.
func (pl *GraphicsPipeline) SetLineWidth(lineWidth float32) {
}

// SetAlphaBlend determines the alpha (transparency) blending function:
// either 1-source alpha (alphaBlend) or no blending:
// new color overwrites old.  Default is alphaBlend = true.
func (pl *GraphicsPipeline) SetAlphaBlend(alphaBlend bool) *GraphicsPipeline {
	pl.AlphaBlend = alphaBlend
	return pl
}

// BlendStatePremultiplied is the blend state for premultiplied alpha:
// source + (1 - source alpha) * destination.
var BlendStatePremultiplied = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

// Topologies are the different vertex topology
type Topologies int32

const (
	PointList Topologies = iota
	LineList
	LineStrip
	TriangleList
	TriangleStrip
)

func (tp Topologies) Primitive() wgpu.PrimitiveTopology {
	return WebGPUTopologies[tp]
}

var WebGPUTopologies = map[Topologies]wgpu.PrimitiveTopology{
	PointList:     wgpu.PrimitiveTopologyPointList,
	LineList:      wgpu.PrimitiveTopologyLineList,
	LineStrip:     wgpu.PrimitiveTopologyLineStrip,
	TriangleList:  wgpu.PrimitiveTopologyTriangleList,
	TriangleStrip: wgpu.PrimitiveTopologyTriangleStrip,
}
