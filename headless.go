package skinplay

import (
	"context"
	"sync/atomic"
)

// HeadlessImporter builds models that accept draw calls without a GPU. It
// backs the -headless host mode and reports progress through the logger.
type HeadlessImporter struct {
	Logger Logger
	// LogEvery logs one in every LogEvery draws at debug level.
	LogEvery uint64
}

func (h HeadlessImporter) Import(ctx context.Context, scene *SceneDescription, texture *TextureAsset) (ModelResource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := componentLogger(h.Logger, "headless")
	every := h.LogEvery
	if every == 0 {
		every = 60
	}
	return &HeadlessModel{
		name:       scene.Name,
		attributes: scene.Mesh.Layout(),
		logger:     logger,
		every:      every,
	}, nil
}

type HeadlessModel struct {
	name       string
	attributes VertexAttributes
	logger     Logger
	every      uint64
	draws      atomic.Uint64
	last       atomic.Pointer[FrameUniforms]
}

func (m *HeadlessModel) log() Logger {
	if m.logger == nil {
		return NewNopLogger()
	}
	return m.logger
}

func (m *HeadlessModel) UseProgram() error {
	m.log().Debugf("%s: program bound (%d attributes, stride %d)", m.name, len(m.attributes.Attributes), m.attributes.Stride)
	return nil
}

func (m *HeadlessModel) Attributes() VertexAttributes {
	return m.attributes
}

func (m *HeadlessModel) Draw(call DrawCall) error {
	n := m.draws.Add(1)
	u := call.Uniforms
	m.last.Store(&u)
	if m.every > 0 && n%m.every == 0 && u.JointCount() > 0 {
		m.log().Debugf("%s: draw %d, %d joints, root rotation %v", m.name, n, u.JointCount(), u.BoneRotations[0])
	}
	return nil
}

func (m *HeadlessModel) Draws() uint64 {
	return m.draws.Load()
}

// LastUniforms returns the uniforms of the most recent draw.
func (m *HeadlessModel) LastUniforms() (FrameUniforms, bool) {
	u := m.last.Load()
	if u == nil {
		return FrameUniforms{}, false
	}
	return *u, true
}
