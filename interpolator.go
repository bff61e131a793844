package skinplay

import (
	"math"
	"sort"
)

// JointPose holds one dual quaternion per joint, in skeleton joint order.
type JointPose []DualQuat

// PoseInterpolator samples the skeleton pose for an absolute playback time.
// Implementations must return exactly one entry per requested joint or an error;
// they must not fill gaps with identity transforms.
type PoseInterpolator interface {
	Sample(currentTime float64, clip AnimationClip, tracks *KeyframeTracks) (JointPose, error)
}

// KeyframeInterpolator blends the two keyframes that bracket the clip-local
// time. Joints lists the joint indices to sample; nil samples every joint of
// the clip's first keyframe.
type KeyframeInterpolator struct {
	Joints []int
}

func NewKeyframeInterpolator(jointCount int) *KeyframeInterpolator {
	return &KeyframeInterpolator{Joints: allJoints(jointCount)}
}

func (ki *KeyframeInterpolator) Sample(currentTime float64, clip AnimationClip, tracks *KeyframeTracks) (JointPose, error) {
	if err := clip.Validate(tracks); err != nil {
		return nil, err
	}

	lower, upper := clip.Range[0], clip.Range[1]
	keyTime := tracks.Times[lower] + clipLocalTime(currentTime, clip, tracks)

	// last keyframe in range whose time is <= keyTime
	span := tracks.Times[lower : upper+1]
	k := lower + sort.Search(len(span), func(i int) bool { return span[i] > keyTime }) - 1
	if k < lower {
		k = lower
	}
	next := k
	var frac float32
	if k < upper {
		next = k + 1
		frac = float32((keyTime - tracks.Times[k]) / (tracks.Times[next] - tracks.Times[k]))
	}

	joints := ki.Joints
	if joints == nil {
		joints = allJoints(len(tracks.Poses[lower]))
	}

	pose := make(JointPose, len(joints))
	for i, j := range joints {
		from, err := jointAt(tracks, k, j)
		if err != nil {
			return nil, err
		}
		to, err := jointAt(tracks, next, j)
		if err != nil {
			return nil, err
		}
		pose[i] = Blend(from, to, frac)
	}
	return pose, nil
}

// clipLocalTime maps absolute time onto [0, duration] of the clip. Looping
// clips wrap with a floored modulo; NoLoop clips hold the end.
func clipLocalTime(currentTime float64, clip AnimationClip, tracks *KeyframeTracks) float64 {
	local := currentTime - clip.StartTime
	if local <= 0 {
		return 0
	}
	duration := clip.Duration(tracks)
	if duration <= 0 {
		return 0
	}
	if clip.NoLoop {
		return math.Min(local, duration)
	}
	return math.Mod(local, duration)
}

func jointAt(tracks *KeyframeTracks, k, joint int) (DualQuat, error) {
	if joint < 0 || joint >= len(tracks.Poses[k]) {
		return DualQuat{}, &MissingJointError{Joint: joint, Keyframe: k, Time: tracks.Times[k]}
	}
	return tracks.Poses[k][joint], nil
}

func allJoints(n int) []int {
	joints := make([]int, n)
	for i := range joints {
		joints[i] = i
	}
	return joints
}
