package wgpurender

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/skinplay"
)

func parseFormat(name string) wgpu.VertexFormat {
	switch name {
	case "float":
		return wgpu.VertexFormatFloat32
	case "float2":
		return wgpu.VertexFormatFloat32x2
	case "float3":
		return wgpu.VertexFormatFloat32x3
	case "float4":
		return wgpu.VertexFormatFloat32x4
	default:
		panic("unsupported vertex layout format: " + name)
	}
}

func vertexBufferLayout(attrs skinplay.VertexAttributes) wgpu.VertexBufferLayout {
	attributes := make([]wgpu.VertexAttribute, 0, len(attrs.Attributes))
	for _, a := range attrs.Attributes {
		attributes = append(attributes, wgpu.VertexAttribute{
			ShaderLocation: a.Location,
			Offset:         a.Offset,
			Format:         parseFormat(a.Format),
		})
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: attrs.Stride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attributes,
	}
}
