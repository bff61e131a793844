package wgpurender

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/skinplay"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUniforms_Layout(t *testing.T) {
	u := skinplay.FrameUniforms{
		UseLighting:      true,
		AmbientColor:     mgl32.Vec3{1, 0.9, 0.9},
		LightDirection:   mgl32.Vec3{1, 0, 0},
		DirectionalColor: mgl32.Vec3{1, 0, 0},
		ModelView:        mgl32.Translate3D(0, 0, -27),
		Projection:       mgl32.Ident4(),
		BoneRotations:    []mgl32.Vec4{{0, 0, 0, 1}, {1, 2, 3, 4}},
		BoneTranslations: []mgl32.Vec4{{5, 6, 7, 8}, {9, 10, 11, 12}},
	}

	packed := PackUniforms(u)
	require.Len(t, packed, uniformBlockFloats(2))

	assert.Equal(t, float32(-27), packed[14])
	assert.Equal(t, []float32{1, 0.9, 0.9, 1}, packed[32:36])
	assert.Equal(t, []float32{1, 0, 0, 0}, packed[36:40])
	assert.Equal(t, []float32{0, 0, 0, 1, 1, 2, 3, 4}, packed[44:52])
	assert.Equal(t, []float32{5, 6, 7, 8, 9, 10, 11, 12}, packed[52:60])

	u.UseLighting = false
	assert.Equal(t, float32(0), PackUniforms(u)[35])
}

func TestSkinningShader_SizedForJoints(t *testing.T) {
	src := skinningShader(18)
	assert.NotContains(t, src, "JOINT_COUNT")
	assert.True(t, strings.Contains(src, "18"))
}

func TestVertexBufferLayout(t *testing.T) {
	layout := vertexBufferLayout(skinplay.VertexLayoutOf(skinplay.SkinnedVertex{}))
	assert.Equal(t, uint64(64), layout.ArrayStride)
	require.Len(t, layout.Attributes, 5)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, layout.Attributes[2].Format)
	assert.Equal(t, uint64(24), layout.Attributes[2].Offset)
	assert.Panics(t, func() { parseFormat("half3") })
}
