package skinplay

import (
	"fmt"
)

// AnimationClip selects the keyframe sub-range that is played and the absolute
// time the clip started at. A clip is fixed for a playback session.
type AnimationClip struct {
	Range     [2]int
	StartTime float64
	// NoLoop holds the final keyframe instead of wrapping around.
	NoLoop bool
}

// Validate checks the clip's range against the tracks it will be sampled from.
func (c AnimationClip) Validate(tracks *KeyframeTracks) error {
	if tracks == nil || len(tracks.Times) == 0 {
		return ErrNoKeyframes
	}
	if len(tracks.Poses) != len(tracks.Times) {
		return fmt.Errorf("%w: %d keyframe times but %d poses", ErrNoKeyframes, len(tracks.Times), len(tracks.Poses))
	}
	lo, hi := c.Range[0], c.Range[1]
	if lo < 0 || hi < lo || hi >= len(tracks.Times) {
		return fmt.Errorf("%w: range [%d,%d] outside keyframes [0,%d]", ErrInvalidClip, lo, hi, len(tracks.Times)-1)
	}
	return nil
}

// Duration is the length of the clip's local timeline in seconds.
func (c AnimationClip) Duration(tracks *KeyframeTracks) float64 {
	return tracks.Times[c.Range[1]] - tracks.Times[c.Range[0]]
}
