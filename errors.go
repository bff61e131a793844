package skinplay

import (
	"errors"
	"fmt"
)

var (
	ErrNoKeyframes  = errors.New("no keyframes")
	ErrInvalidClip  = errors.New("invalid animation clip")
	ErrMissingJoint = errors.New("missing joint keyframe data")
)

// MissingJointError reports a joint the keyframe tracks have no data for.
type MissingJointError struct {
	Joint    int
	Keyframe int
	Time     float64
}

func (e *MissingJointError) Error() string {
	return fmt.Sprintf("joint %d has no data in keyframe %d (t=%.4fs)", e.Joint, e.Keyframe, e.Time)
}

func (e *MissingJointError) Unwrap() error {
	return ErrMissingJoint
}
