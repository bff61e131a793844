package skinplay

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names read by the skinning shader.
const (
	UniformUseLighting       = "uUseLighting"
	UniformAmbientColor      = "uAmbientColor"
	UniformLightingDirection = "uLightingDirection"
	UniformDirectionalColor  = "uDirectionalColor"
	UniformModelView         = "uMVMatrix"
	UniformProjection        = "uPMatrix"
)

// BoneRotationUniform names joint i's rotation slot.
func BoneRotationUniform(i int) string {
	return fmt.Sprintf("boneRotQuaternions%d", i)
}

// BoneTranslationUniform names joint i's translation slot.
func BoneTranslationUniform(i int) string {
	return fmt.Sprintf("boneTransQuaternions%d", i)
}

type Camera struct {
	ModelView  mgl32.Mat4
	Projection mgl32.Mat4
}

// PerspectiveCamera places the model at offset in view space and projects
// with a perspective frustum.
func PerspectiveCamera(fovy, aspect, near, far float32, offset mgl32.Vec3) Camera {
	return Camera{
		ModelView:  mgl32.Translate3D(offset[0], offset[1], offset[2]),
		Projection: mgl32.Perspective(fovy, aspect, near, far),
	}
}

type Lighting struct {
	UseLighting bool
	Ambient     mgl32.Vec3
	// Direction must be normalized.
	Direction        mgl32.Vec3
	DirectionalColor mgl32.Vec3
}

// FrameUniforms is the per-frame shader input. It is rebuilt every frame and
// never retained.
type FrameUniforms struct {
	UseLighting      bool
	AmbientColor     mgl32.Vec3
	LightDirection   mgl32.Vec3
	DirectionalColor mgl32.Vec3
	ModelView        mgl32.Mat4
	Projection       mgl32.Mat4
	BoneRotations    []mgl32.Vec4
	BoneTranslations []mgl32.Vec4
}

func (u FrameUniforms) JointCount() int {
	return len(u.BoneRotations)
}

// Named flattens the uniforms into the shader's name -> value table.
func (u FrameUniforms) Named() map[string]any {
	named := make(map[string]any, 6+2*len(u.BoneRotations))
	named[UniformUseLighting] = u.UseLighting
	named[UniformAmbientColor] = u.AmbientColor
	named[UniformLightingDirection] = u.LightDirection
	named[UniformDirectionalColor] = u.DirectionalColor
	named[UniformModelView] = u.ModelView
	named[UniformProjection] = u.Projection
	for i := range u.BoneRotations {
		named[BoneRotationUniform(i)] = u.BoneRotations[i]
		named[BoneTranslationUniform(i)] = u.BoneTranslations[i]
	}
	return named
}

// UniformBuilder assembles FrameUniforms for a skeleton of JointCount joints.
type UniformBuilder struct {
	JointCount int
}

// Build splits every joint's dual quaternion into its rotation and translation
// slots. A pose whose length is not JointCount means the clip and skeleton do
// not belong together; that panics.
func (b UniformBuilder) Build(pose JointPose, camera Camera, lighting Lighting) FrameUniforms {
	if len(pose) != b.JointCount {
		panic(fmt.Sprintf("pose has %d joints, skeleton binds %d", len(pose), b.JointCount))
	}

	u := FrameUniforms{
		UseLighting:      lighting.UseLighting,
		AmbientColor:     lighting.Ambient,
		LightDirection:   lighting.Direction,
		DirectionalColor: lighting.DirectionalColor,
		ModelView:        camera.ModelView,
		Projection:       camera.Projection,
		BoneRotations:    make([]mgl32.Vec4, len(pose)),
		BoneTranslations: make([]mgl32.Vec4, len(pose)),
	}
	for i, dq := range pose {
		u.BoneRotations[i] = dq.Rotation()
		u.BoneTranslations[i] = dq.Translation()
	}
	return u
}
