package wgpurender

import (
	"github.com/gekko3d/skinplay"
)

// uniform block: mv, proj (16 floats each), ambient, light_dir, dir_color
// (vec4 each), then JOINT_COUNT rotation and JOINT_COUNT translation vec4s.
const uniformHeaderFloats = 16 + 16 + 4 + 4 + 4

func uniformBlockFloats(jointCount int) int {
	return uniformHeaderFloats + 8*jointCount
}

// PackUniforms lays FrameUniforms out in the shader's uniform block order.
// Matrices are column-major, as mgl32 stores them and WGSL reads them.
func PackUniforms(u skinplay.FrameUniforms) []float32 {
	out := make([]float32, 0, uniformBlockFloats(u.JointCount()))
	out = append(out, u.ModelView[:]...)
	out = append(out, u.Projection[:]...)

	var lit float32
	if u.UseLighting {
		lit = 1
	}
	out = append(out, u.AmbientColor[0], u.AmbientColor[1], u.AmbientColor[2], lit)
	out = append(out, u.LightDirection[0], u.LightDirection[1], u.LightDirection[2], 0)
	out = append(out, u.DirectionalColor[0], u.DirectionalColor[1], u.DirectionalColor[2], 0)

	for _, r := range u.BoneRotations {
		out = append(out, r[:]...)
	}
	for _, t := range u.BoneTranslations {
		out = append(out, t[:]...)
	}
	return out
}
