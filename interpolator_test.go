package skinplay

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sceneClip() AnimationClip {
	return AnimationClip{Range: [2]int{6, 17}}
}

func TestKeyframeInterpolator_StartOfClipIsExactKeyframe(t *testing.T) {
	tracks := linearTracks(24, 18, 0.25)
	interp := NewKeyframeInterpolator(18)

	pose, err := interp.Sample(0, sceneClip(), tracks)
	require.NoError(t, err)
	assert.Equal(t, tracks.PoseAt(6), pose)
}

func TestKeyframeInterpolator_BlendsBracketingKeyframes(t *testing.T) {
	tracks := linearTracks(24, 3, 0.25)
	interp := NewKeyframeInterpolator(3)

	pose, err := interp.Sample(0.125, sceneClip(), tracks)
	require.NoError(t, err)
	require.Len(t, pose, 3)
	for j, dq := range pose {
		assertVec3InDelta(t, mgl32.Vec3{6.5, float32(j), 0}, dq.TranslationVec(), 1e-5)
	}
}

func TestKeyframeInterpolator_LoopsOverClipDuration(t *testing.T) {
	tracks := linearTracks(24, 1, 0.25)
	interp := NewKeyframeInterpolator(1)

	// duration of [6,17] is 11 * 0.25 = 2.75s
	first, err := interp.Sample(0.125, sceneClip(), tracks)
	require.NoError(t, err)
	wrapped, err := interp.Sample(2.875, sceneClip(), tracks)
	require.NoError(t, err)
	assert.True(t, first[0].ApproxEqual(wrapped[0], 1e-6))

	atEnd, err := interp.Sample(2.75, sceneClip(), tracks)
	require.NoError(t, err)
	assert.Equal(t, tracks.PoseAt(6), atEnd)
}

func TestKeyframeInterpolator_NoLoopHoldsLastKeyframe(t *testing.T) {
	tracks := linearTracks(24, 2, 0.25)
	clip := sceneClip()
	clip.NoLoop = true

	pose, err := NewKeyframeInterpolator(2).Sample(10, clip, tracks)
	require.NoError(t, err)
	assert.Equal(t, tracks.PoseAt(17), pose)
}

func TestKeyframeInterpolator_StartTimeOffset(t *testing.T) {
	tracks := linearTracks(24, 1, 0.25)
	clip := sceneClip()
	clip.StartTime = 5

	before, err := NewKeyframeInterpolator(1).Sample(3, clip, tracks)
	require.NoError(t, err)
	assert.Equal(t, tracks.PoseAt(6), before)

	pose, err := NewKeyframeInterpolator(1).Sample(5.25, clip, tracks)
	require.NoError(t, err)
	assertVec3InDelta(t, mgl32.Vec3{7, 0, 0}, pose[0].TranslationVec(), 1e-5)
}

func TestKeyframeInterpolator_Deterministic(t *testing.T) {
	tracks := linearTracks(24, 18, 0.25)
	interp := NewKeyframeInterpolator(18)

	for _, now := range []float64{0, 0.01, 1.337, 2.74, 9.99} {
		a, err := interp.Sample(now, sceneClip(), tracks)
		require.NoError(t, err)
		b, err := interp.Sample(now, sceneClip(), tracks)
		require.NoError(t, err)
		assert.Equal(t, a, b, "t=%v", now)
	}
}

func TestKeyframeInterpolator_MissingJoint(t *testing.T) {
	tracks := linearTracks(24, 4, 0.25)
	tracks.Poses[7] = tracks.Poses[7][:2]

	_, err := NewKeyframeInterpolator(4).Sample(0.1, sceneClip(), tracks)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingJoint))

	var missing *MissingJointError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, 2, missing.Joint)
	assert.Equal(t, 7, missing.Keyframe)
}

func TestKeyframeInterpolator_NilJointsSamplesFirstKeyframe(t *testing.T) {
	tracks := linearTracks(24, 5, 0.25)
	pose, err := (&KeyframeInterpolator{}).Sample(0, sceneClip(), tracks)
	require.NoError(t, err)
	assert.Len(t, pose, 5)
}

func TestKeyframeInterpolator_SubsetOfJoints(t *testing.T) {
	tracks := linearTracks(24, 5, 0.25)
	pose, err := (&KeyframeInterpolator{Joints: []int{4, 1}}).Sample(0, sceneClip(), tracks)
	require.NoError(t, err)
	require.Len(t, pose, 2)
	assert.Equal(t, tracks.Poses[6][4], pose[0])
	assert.Equal(t, tracks.Poses[6][1], pose[1])
}

func TestKeyframeInterpolator_InvalidClip(t *testing.T) {
	tracks := linearTracks(10, 1, 0.25)

	_, err := NewKeyframeInterpolator(1).Sample(0, sceneClip(), tracks)
	assert.ErrorIs(t, err, ErrInvalidClip)

	_, err = NewKeyframeInterpolator(1).Sample(0, sceneClip(), nil)
	assert.ErrorIs(t, err, ErrNoKeyframes)
}

func TestAnimationClip_Validate(t *testing.T) {
	tracks := linearTracks(24, 1, 0.25)
	tests := []struct {
		name  string
		clip  AnimationClip
		valid bool
	}{
		{"scene clip", sceneClip(), true},
		{"single keyframe", AnimationClip{Range: [2]int{3, 3}}, true},
		{"reversed", AnimationClip{Range: [2]int{5, 2}}, false},
		{"negative", AnimationClip{Range: [2]int{-1, 2}}, false},
		{"past end", AnimationClip{Range: [2]int{0, 24}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.clip.Validate(tracks)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidClip)
			}
		})
	}
	assert.Equal(t, 2.75, sceneClip().Duration(tracks))
}
