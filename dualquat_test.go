package skinplay

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDualQuatFromMat4_RoundTrip(t *testing.T) {
	m := mgl32.Translate3D(1, -2, 3).Mul4(mgl32.HomogRotate3DY(0.7)).Mul4(mgl32.HomogRotate3DX(-0.3))
	dq := DualQuatFromMat4(m)

	assertMat4InDelta(t, m, dq.ToMat4(), 1e-5)
	assert.InDelta(t, 1, dq.Real.Len(), 1e-6)
	assertVec3InDelta(t, mgl32.Vec3{1, -2, 3}, dq.TranslationVec(), 1e-5)
}

func TestDualQuat_TransformPointMatchesMatrix(t *testing.T) {
	m := mgl32.Translate3D(0, 5, 0).Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(90)))
	dq := DualQuatFromMat4(m)

	p := mgl32.Vec3{1, 0, 0}
	want := m.Mul4x1(p.Vec4(1)).Vec3()
	assertVec3InDelta(t, want, dq.TransformPoint(p), 1e-5)
}

func TestDualQuat_RotationAndTranslationHalves(t *testing.T) {
	dq := DualQuat{
		Real: mgl32.Quat{W: 4, V: mgl32.Vec3{1, 2, 3}},
		Dual: mgl32.Quat{W: 8, V: mgl32.Vec3{5, 6, 7}},
	}
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 4}, dq.Rotation())
	assert.Equal(t, mgl32.Vec4{5, 6, 7, 8}, dq.Translation())
	assert.Equal(t, [8]float32{1, 2, 3, 4, 5, 6, 7, 8}, dq.Components())
}

func TestDualQuat_Mul(t *testing.T) {
	a := mgl32.Translate3D(1, 0, 0).Mul4(mgl32.HomogRotate3DY(0.4))
	b := mgl32.Translate3D(0, 2, 0).Mul4(mgl32.HomogRotate3DX(1.1))

	got := DualQuatFromMat4(a).Mul(DualQuatFromMat4(b)).ToMat4()
	assertMat4InDelta(t, a.Mul4(b), got, 1e-5)
}

func TestBlend_Endpoints(t *testing.T) {
	a := DualQuatFromMat4(mgl32.Translate3D(1, 2, 3))
	b := DualQuatFromMat4(mgl32.Translate3D(3, 2, 1).Mul4(mgl32.HomogRotate3DY(1)))

	assert.Equal(t, a, Blend(a, b, 0))
	assert.Equal(t, b, Blend(a, b, 1))
	assert.Equal(t, a, Blend(a, b, -0.5))
}

func TestBlend_Midpoint(t *testing.T) {
	a := DualQuatFromRotationTranslation(mgl32.QuatIdent(), mgl32.Vec3{0, 0, 0})
	b := DualQuatFromRotationTranslation(mgl32.QuatIdent(), mgl32.Vec3{2, 4, 0})

	mid := Blend(a, b, 0.5)
	assertVec3InDelta(t, mgl32.Vec3{1, 2, 0}, mid.TranslationVec(), 1e-6)
}

func TestBlend_TakesShortestPath(t *testing.T) {
	a := DualQuatFromMat4(mgl32.HomogRotate3DY(0.2))
	b := DualQuatFromMat4(mgl32.HomogRotate3DY(0.6))

	direct := Blend(a, b, 0.5)
	flipped := Blend(a, b.Scale(-1), 0.5)
	assert.True(t, direct.ApproxEqual(flipped, 1e-6))
	assert.Greater(t, flipped.Real.W, float32(0))
}

func TestDualQuat_NormalizeKeepsTransform(t *testing.T) {
	dq := DualQuatFromMat4(mgl32.Translate3D(1, 2, 3).Mul4(mgl32.HomogRotate3DZ(0.5)))
	scaled := dq.Scale(3).Normalize()
	assert.True(t, scaled.ApproxEqual(dq, 1e-6))

	zero := DualQuat{}
	assert.Equal(t, zero, zero.Normalize())
}

func TestIdentityDualQuat(t *testing.T) {
	id := IdentityDualQuat()
	assert.Equal(t, mgl32.Ident4(), id.ToMat4())
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, id.TransformPoint(mgl32.Vec3{4, 5, 6}))
}

func TestDualQuat_ApproxEqualNearZero(t *testing.T) {
	a := DualQuat{Real: mgl32.Quat{W: 1, V: mgl32.Vec3{-4.37e-08, 0, 0}}}
	b := DualQuat{Real: mgl32.Quat{W: 1, V: mgl32.Vec3{-1.19e-07, 0, 0}}}
	assert.True(t, a.ApproxEqual(b, 1e-6))
	assert.False(t, a.ApproxEqual(IdentityDualQuat().Scale(2), 1e-6))
}
