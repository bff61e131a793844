package skinplay

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DualQuat encodes a rigid rotation+translation. Real is the rotation; Dual is
// half the translation (as a pure quaternion) multiplied by the rotation.
type DualQuat struct {
	Real mgl32.Quat
	Dual mgl32.Quat
}

func IdentityDualQuat() DualQuat {
	return DualQuat{Real: mgl32.QuatIdent(), Dual: mgl32.Quat{}}
}

// DualQuatFromRotationTranslation builds a dual quaternion from a unit rotation and a translation.
func DualQuatFromRotationTranslation(rot mgl32.Quat, t mgl32.Vec3) DualQuat {
	rot = rot.Normalize()
	return DualQuat{
		Real: rot,
		Dual: mgl32.Quat{W: 0, V: t}.Mul(rot).Scale(0.5),
	}
}

// DualQuatFromMat4 converts a rigid (rotation + translation, no scale) matrix.
func DualQuatFromMat4(m mgl32.Mat4) DualQuat {
	return DualQuatFromRotationTranslation(mgl32.Mat4ToQuat(m), m.Col(3).Vec3())
}

// Rotation returns the real part as the [x y z w] vector the skinning shader reads.
func (dq DualQuat) Rotation() mgl32.Vec4 {
	return quatToVec4(dq.Real)
}

// Translation returns the dual part as an [x y z w] vector.
func (dq DualQuat) Translation() mgl32.Vec4 {
	return quatToVec4(dq.Dual)
}

// Components returns the 8 components: rotation xyzw followed by translation xyzw.
func (dq DualQuat) Components() [8]float32 {
	r, d := dq.Rotation(), dq.Translation()
	return [8]float32{r[0], r[1], r[2], r[3], d[0], d[1], d[2], d[3]}
}

// TranslationVec recovers the translation vector: 2 * dual * conj(real).
func (dq DualQuat) TranslationVec() mgl32.Vec3 {
	return dq.Dual.Scale(2).Mul(dq.Real.Conjugate()).V
}

func (dq DualQuat) Mul(other DualQuat) DualQuat {
	return DualQuat{
		Real: dq.Real.Mul(other.Real),
		Dual: dq.Real.Mul(other.Dual).Add(dq.Dual.Mul(other.Real)),
	}
}

func (dq DualQuat) Scale(s float32) DualQuat {
	return DualQuat{Real: dq.Real.Scale(s), Dual: dq.Dual.Scale(s)}
}

func (dq DualQuat) Add(other DualQuat) DualQuat {
	return DualQuat{Real: dq.Real.Add(other.Real), Dual: dq.Dual.Add(other.Dual)}
}

// Normalize divides both parts by the length of the real part.
func (dq DualQuat) Normalize() DualQuat {
	l := dq.Real.Len()
	if l == 0 {
		return dq
	}
	return dq.Scale(1 / l)
}

// TransformPoint applies the rigid transform to p.
func (dq DualQuat) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return dq.Real.Rotate(p).Add(dq.TranslationVec())
}

func (dq DualQuat) ToMat4() mgl32.Mat4 {
	t := dq.TranslationVec()
	return mgl32.Translate3D(t[0], t[1], t[2]).Mul4(dq.Real.Mat4())
}

// Blend linearly interpolates two dual quaternions. b is flipped onto a's
// hemisphere first so the blend takes the short way round. t <= 0 returns a and
// t >= 1 returns b unchanged.
func Blend(a, b DualQuat, t float32) DualQuat {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	if a.Real.Dot(b.Real) < 0 {
		b = b.Scale(-1)
	}
	return a.Scale(1 - t).Add(b.Scale(t))
}

// ApproxEqual compares component-wise with an absolute tolerance.
func (dq DualQuat) ApproxEqual(other DualQuat, epsilon float32) bool {
	a, b := dq.Components(), other.Components()
	for i := range a {
		if mgl32.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}

func quatToVec4(q mgl32.Quat) mgl32.Vec4 {
	return mgl32.Vec4{q.V[0], q.V[1], q.V[2], q.W}
}
