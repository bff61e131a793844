package skinplay

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// KeyframeTracks is the session's immutable keyframe data: Poses[k][j] is
// joint j's dual quaternion at Times[k]. Times is strictly increasing.
type KeyframeTracks struct {
	Times []float64
	Poses [][]DualQuat
}

// JointCount reports the joint count of the first keyframe.
func (t *KeyframeTracks) JointCount() int {
	if t == nil || len(t.Poses) == 0 {
		return 0
	}
	return len(t.Poses[0])
}

func (t *KeyframeTracks) Len() int {
	return len(t.Times)
}

// PoseAt returns a copy of the pose authored at keyframe k.
func (t *KeyframeTracks) PoseAt(k int) JointPose {
	return slices.Clone(JointPose(t.Poses[k]))
}

// ConvertKeyframes turns per-joint rigid matrices keyed by time (seconds, as
// decimal strings) into dual-quaternion tracks sorted by time. Keyframes with
// fewer joints than others are kept as-is; sampling a joint they lack fails.
func ConvertKeyframes(raw map[string][]mgl32.Mat4) (*KeyframeTracks, error) {
	if len(raw) == 0 {
		return nil, ErrNoKeyframes
	}

	type keyed struct {
		time   float64
		joints []mgl32.Mat4
	}
	frames := make([]keyed, 0, len(raw))
	for key, joints := range raw {
		t, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return nil, fmt.Errorf("keyframe time %q: %w", key, err)
		}
		frames = append(frames, keyed{time: t, joints: joints})
	}
	slices.SortFunc(frames, func(a, b keyed) int {
		switch {
		case a.time < b.time:
			return -1
		case a.time > b.time:
			return 1
		}
		return 0
	})

	tracks := &KeyframeTracks{
		Times: make([]float64, len(frames)),
		Poses: make([][]DualQuat, len(frames)),
	}
	for k, f := range frames {
		if k > 0 && f.time == frames[k-1].time {
			return nil, fmt.Errorf("duplicate keyframe time %v", f.time)
		}
		tracks.Times[k] = f.time
		pose := make([]DualQuat, len(f.joints))
		for j, m := range f.joints {
			pose[j] = DualQuatFromMat4(m)
		}
		tracks.Poses[k] = pose
	}
	return tracks, nil
}
