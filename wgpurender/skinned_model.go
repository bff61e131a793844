package wgpurender

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/skinplay"
)

// SkinnedModel is the GPU-resident model: buffers, texture, pipeline and the
// bind group that ties the per-frame uniform block to them.
type SkinnedModel struct {
	name       string
	gpu        *GpuState
	jointCount int
	attributes skinplay.VertexAttributes

	pipeline      *wgpu.RenderPipeline
	vertexBuffer  *wgpu.Buffer
	indexBuffer   *wgpu.Buffer
	uniformBuffer *wgpu.Buffer
	textureView   *wgpu.TextureView
	sampler       *wgpu.Sampler
	bindGroup     *wgpu.BindGroup

	logger skinplay.Logger
}

// UseProgram checks the pipeline is live; wgpu binds pipelines per pass, so
// there is no global program state to switch.
func (m *SkinnedModel) UseProgram() error {
	if m.pipeline == nil {
		return errors.New("skinned model: pipeline released")
	}
	m.logger.Debugf("%s: skinning pipeline active for %d joints", m.name, m.jointCount)
	return nil
}

func (m *SkinnedModel) Attributes() skinplay.VertexAttributes {
	return m.attributes
}

// Draw uploads the frame's uniform block and renders the model into the next
// swapchain image.
func (m *SkinnedModel) Draw(call skinplay.DrawCall) error {
	if call.Uniforms.JointCount() != m.jointCount {
		return fmt.Errorf("%s: uniforms carry %d joints, pipeline expects %d", m.name, call.Uniforms.JointCount(), m.jointCount)
	}
	gpu := m.gpu

	if err := gpu.Queue.WriteBuffer(m.uniformBuffer, 0, wgpu.ToBytes(PackUniforms(call.Uniforms))); err != nil {
		return fmt.Errorf("write uniforms: %w", err)
	}

	// every handle acquired for this frame is released when Draw returns
	var frame releaseStack
	defer frame.release()

	nextTexture, err := gpu.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	frame.push(nextTexture)
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("surface view: %w", err)
	}
	frame.push(view)

	encoder, err := gpu.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("command encoder: %w", err)
	}
	frame.push(encoder)

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1.0},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            gpu.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
	frame.push(renderPass)

	renderPass.SetPipeline(m.pipeline)
	renderPass.SetBindGroup(0, m.bindGroup, nil)
	renderPass.SetVertexBuffer(0, m.vertexBuffer, 0, wgpu.WholeSize)
	renderPass.SetIndexBuffer(m.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	renderPass.DrawIndexed(call.Attributes.IndexCount, 1, 0, 0, 0)

	if err := renderPass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	frame.push(cmdBuffer)

	gpu.Queue.Submit(cmdBuffer)
	gpu.Surface.Present()
	return nil
}

func (m *SkinnedModel) Release() {
	m.bindGroup.Release()
	m.sampler.Release()
	m.textureView.Release()
	m.uniformBuffer.Release()
	m.indexBuffer.Release()
	m.vertexBuffer.Release()
	m.pipeline.Release()
}
