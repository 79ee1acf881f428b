package gpu

import (
	"unsafe"

	"github.com/gekko3d/modeler/rt/core"
	"github.com/gekko3d/modeler/rt/shaders"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// LineVertex matches the WGSL VertexInput of lines.wgsl.
type LineVertex struct {
	Pos   [3]float32
	Color [4]float32
}

const cameraUniformSize = 64

// DepthRemap maps GL clip depth [-1,1] to the [0,1] range WebGPU expects.
var DepthRemap = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// ViewProjection returns the clip transform uploaded to the line shader.
func ViewProjection(view, proj mgl32.Mat4) mgl32.Mat4 {
	return DepthRemap.Mul4(proj).Mul4(view)
}

// BuildLineVertices flattens segments and point markers into a line list.
// Each marker becomes three short axis-aligned segments.
func BuildLineVertices(lines []core.LineSegment, points []core.PointMarker) []LineVertex {
	out := make([]LineVertex, 0, 2*len(lines)+6*len(points))
	push := func(l core.LineSegment) {
		out = append(out,
			LineVertex{Pos: l.From, Color: l.Color},
			LineVertex{Pos: l.To, Color: l.Color},
		)
	}
	for _, l := range lines {
		push(l)
	}
	for _, p := range points {
		for _, l := range core.MarkerLines(p) {
			push(l)
		}
	}
	return out
}

// LinePass draws the overlay: grid, model edges, vertex markers and gizmo.
type LinePass struct {
	Pipeline     *wgpu.RenderPipeline
	BindGroup    *wgpu.BindGroup
	CameraBuffer *wgpu.Buffer
	VertexBuffer *wgpu.Buffer
	VertexCap    uint32
	VertexCount  uint32
	Device       *wgpu.Device
}

func NewLinePass(device *wgpu.Device, format wgpu.TextureFormat) (*LinePass, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "LineShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.LinesWGSL},
	})
	if err != nil {
		return nil, err
	}

	bgl, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "LineCameraBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: cameraUniformSize,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return nil, err
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "LinePipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(LineVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	cameraBuffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "LineCameraBuffer",
		Size:  cameraUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "LineCameraBG",
		Layout: bgl,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: cameraBuffer, Size: cameraUniformSize},
		},
	})
	if err != nil {
		return nil, err
	}

	return &LinePass{
		Pipeline:     pipeline,
		BindGroup:    bindGroup,
		CameraBuffer: cameraBuffer,
		Device:       device,
	}, nil
}

// Update uploads the camera and this frame's vertices, growing the vertex
// buffer when needed.
func (p *LinePass) Update(queue *wgpu.Queue, viewProj mgl32.Mat4, vertices []LineVertex) error {
	queue.WriteBuffer(p.CameraBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&viewProj[0])), cameraUniformSize))

	p.VertexCount = uint32(len(vertices))
	if len(vertices) == 0 {
		return nil
	}

	stride := uint64(unsafe.Sizeof(LineVertex{}))
	if p.VertexBuffer == nil || p.VertexCap < p.VertexCount {
		if p.VertexBuffer != nil {
			p.VertexBuffer.Release()
		}
		p.VertexCap = p.VertexCount + 1024
		buf, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "LineVertexBuffer",
			Size:  uint64(p.VertexCap) * stride,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.VertexBuffer, p.VertexCap, p.VertexCount = nil, 0, 0
			return err
		}
		p.VertexBuffer = buf
	}

	size := uint64(len(vertices)) * stride
	queue.WriteBuffer(p.VertexBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), size))
	return nil
}

func (p *LinePass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.VertexBuffer == nil || p.VertexCount == 0 {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.VertexBuffer, 0, p.VertexBuffer.GetSize())
	pass.Draw(p.VertexCount, 1, 0, 0)
}

func (p *LinePass) Release() {
	if p.VertexBuffer != nil {
		p.VertexBuffer.Release()
		p.VertexBuffer = nil
	}
	if p.CameraBuffer != nil {
		p.CameraBuffer.Release()
		p.CameraBuffer = nil
	}
	if p.BindGroup != nil {
		p.BindGroup.Release()
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
	}
}
