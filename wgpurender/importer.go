package wgpurender

import (
	"context"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/skinplay"
)

// Importer uploads a skinned scene and its texture and returns a SkinnedModel.
type Importer struct {
	Gpu    *GpuState
	Logger skinplay.Logger
}

func (im Importer) Import(ctx context.Context, scene *skinplay.SceneDescription, texture *skinplay.TextureAsset) (skinplay.ModelResource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if scene.JointCount <= 0 {
		return nil, fmt.Errorf("scene %s: joint count %d", scene.Name, scene.JointCount)
	}
	logger := skinplay.NewNopLogger()
	if im.Logger != nil {
		logger = im.Logger.Named("wgpu")
	}
	gpu := im.Gpu
	layout := scene.Mesh.Layout()

	// handles created so far are released on any error return
	var created releaseStack
	defer created.release()

	pipeline, err := createSkinningPipeline(scene.Name, scene.JointCount, layout, gpu)
	if err != nil {
		return nil, err
	}
	created.push(pipeline)

	vertexBuf, err := gpu.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    scene.Name + " vertices",
		Contents: wgpu.ToBytes(scene.Mesh.Vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("vertex buffer: %w", err)
	}
	created.push(vertexBuf)
	indexBuf, err := gpu.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    scene.Name + " indices",
		Contents: wgpu.ToBytes(scene.Mesh.Indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		return nil, fmt.Errorf("index buffer: %w", err)
	}
	created.push(indexBuf)

	uniformSize := uint64(uniformBlockFloats(scene.JointCount) * 4)
	uniformBuf, err := gpu.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: scene.Name + " uniforms",
		Size:  uniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("uniform buffer: %w", err)
	}
	created.push(uniformBuf)

	textureView, err := createTextureFromAsset(texture, gpu)
	if err != nil {
		return nil, err
	}
	created.push(textureView)
	sampler, err := gpu.Device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("sampler: %w", err)
	}
	created.push(sampler)

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	defer bindGroupLayout.Release()
	bindGroup, err := gpu.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: uniformBuf, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: textureView},
			{Binding: 2, Sampler: sampler},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("bind group: %w", err)
	}

	created.keep()

	logger.Debugf("Uploaded %s: %d vertices, %d indices, %d byte uniform block",
		scene.Name, len(scene.Mesh.Vertices), len(scene.Mesh.Indices), uniformSize)

	return &SkinnedModel{
		name:          scene.Name,
		gpu:           gpu,
		jointCount:    scene.JointCount,
		attributes:    layout,
		pipeline:      pipeline,
		vertexBuffer:  vertexBuf,
		indexBuffer:   indexBuf,
		uniformBuffer: uniformBuf,
		textureView:   textureView,
		sampler:       sampler,
		bindGroup:     bindGroup,
		logger:        logger,
	}, nil
}

func createSkinningPipeline(name string, jointCount int, layout skinplay.VertexAttributes, gpu *GpuState) (*wgpu.RenderPipeline, error) {
	shader, err := gpu.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          name + " skinning",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: skinningShader(jointCount)},
	})
	if err != nil {
		return nil, fmt.Errorf("shader module: %w", err)
	}
	defer shader.Release()

	pipeline, err := gpu.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: name + " pipeline",
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexBufferLayout(layout)},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    gpu.SurfaceConfig.Format,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render pipeline: %w", err)
	}
	return pipeline, nil
}

func createTextureFromAsset(txAsset *skinplay.TextureAsset, gpu *GpuState) (*wgpu.TextureView, error) {
	textureExtent := wgpu.Extent3D{
		Width:              txAsset.Width,
		Height:             txAsset.Height,
		DepthOrArrayLayers: 1,
	}
	texture, err := gpu.Device.CreateTexture(&wgpu.TextureDescriptor{
		Size:          textureExtent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormat(txAsset.Format),
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	defer texture.Release()

	textureView, err := texture.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("texture view: %w", err)
	}

	err = gpu.Queue.WriteTexture(
		texture.AsImageCopy(),
		txAsset.Texels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  txAsset.Width * 4,
			RowsPerImage: txAsset.Height,
		},
		&textureExtent,
	)
	if err != nil {
		textureView.Release()
		return nil, fmt.Errorf("write texture: %w", err)
	}
	return textureView, nil
}
