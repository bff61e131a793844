package skinplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProceduralRig_Defaults(t *testing.T) {
	opts := DefaultRigOptions()
	rig, err := ProceduralRig(opts)
	require.NoError(t, err)

	rings := opts.JointCount*opts.RingsPerJoint + 1
	assert.Len(t, rig.Mesh.Vertices, rings*(opts.Segments+1))
	assert.Len(t, rig.Mesh.Indices, (rings-1)*opts.Segments*6)
	for _, idx := range rig.Mesh.Indices {
		require.Less(t, int(idx), len(rig.Mesh.Vertices))
	}
	for i, v := range rig.Mesh.Vertices {
		assert.InDelta(t, 1, v.Weights[0]+v.Weights[1], 1e-5, "vertex %d", i)
		assert.Less(t, int(v.Joints[1]), opts.JointCount)
	}

	assert.Len(t, rig.Keyframes, opts.KeyframeCount)
	tracks, err := ConvertKeyframes(rig.Keyframes)
	require.NoError(t, err)
	assert.Equal(t, opts.KeyframeCount, tracks.Len())
	assert.Equal(t, opts.JointCount, tracks.JointCount())
	assert.NoError(t, AnimationClip{Range: [2]int{6, 17}}.Validate(tracks))
}

func TestProceduralRig_RestPoseKeepsBindPosition(t *testing.T) {
	opts := DefaultRigOptions()
	opts.SwayDegrees = 0
	rig, err := ProceduralRig(opts)
	require.NoError(t, err)

	tracks, err := ConvertKeyframes(rig.Keyframes)
	require.NoError(t, err)
	for j, dq := range tracks.Poses[0] {
		assert.True(t, dq.ApproxEqual(IdentityDualQuat(), 1e-5), "joint %d: %v", j, dq)
	}
}

func TestProceduralRig_InvalidOptions(t *testing.T) {
	opts := DefaultRigOptions()
	opts.Segments = 2
	_, err := ProceduralRig(opts)
	assert.Error(t, err)

	opts = DefaultRigOptions()
	opts.Segments = 1000
	opts.RingsPerJoint = 100
	_, err = ProceduralRig(opts)
	assert.ErrorContains(t, err, "16-bit")
}

func TestRig_Scene(t *testing.T) {
	rig, err := ProceduralRig(DefaultRigOptions())
	require.NoError(t, err)
	scene := rig.Scene("tube", 18)
	assert.Equal(t, "tube", scene.Name)
	assert.Same(t, rig.Mesh, scene.Mesh)
	assert.Equal(t, 18, scene.JointCount)
}
