package skinplay

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// linearTracks builds n keyframes spaced `spacing` seconds apart. Joint j of
// keyframe k is an identity rotation translated by (k, j, 0), so blends are
// easy to predict.
func linearTracks(n, joints int, spacing float64) *KeyframeTracks {
	tracks := &KeyframeTracks{
		Times: make([]float64, n),
		Poses: make([][]DualQuat, n),
	}
	for k := 0; k < n; k++ {
		tracks.Times[k] = float64(k) * spacing
		pose := make([]DualQuat, joints)
		for j := range pose {
			pose[j] = DualQuatFromRotationTranslation(mgl32.QuatIdent(), mgl32.Vec3{float32(k), float32(j), 0})
		}
		tracks.Poses[k] = pose
	}
	return tracks
}

type eventLog struct {
	events []string
}

func (l *eventLog) add(e string) {
	if l != nil {
		l.events = append(l.events, e)
	}
}

// recordingResource is a ModelResource that remembers every draw.
type recordingResource struct {
	log        *eventLog
	programs   int
	draws      []DrawCall
	programErr error
	drawErr    error
}

func (r *recordingResource) UseProgram() error {
	r.log.add("program")
	r.programs++
	return r.programErr
}

func (r *recordingResource) Attributes() VertexAttributes {
	return VertexAttributes{Stride: 64, IndexCount: 3}
}

func (r *recordingResource) Draw(call DrawCall) error {
	r.log.add("draw")
	if r.drawErr != nil {
		return r.drawErr
	}
	r.draws = append(r.draws, call)
	return nil
}

// stubInterpolator maps time t to a pose whose every joint is translated by
// (t, 0, 0).
type stubInterpolator struct {
	log    *eventLog
	joints int
	times  []float64
	err    error
}

func (s *stubInterpolator) Sample(currentTime float64, clip AnimationClip, tracks *KeyframeTracks) (JointPose, error) {
	s.log.add("sample")
	s.times = append(s.times, currentTime)
	if s.err != nil {
		return nil, s.err
	}
	pose := make(JointPose, s.joints)
	for i := range pose {
		pose[i] = DualQuatFromRotationTranslation(mgl32.QuatIdent(), mgl32.Vec3{float32(currentTime), 0, 0})
	}
	return pose, nil
}

var errStub = errors.New("stub failure")

func assertVec3InDelta(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "component %d: got %v want %v", i, got, want)
	}
}

func assertMat4InDelta(t *testing.T, want, got mgl32.Mat4, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "element %d: got %v want %v", i, got, want)
	}
}
