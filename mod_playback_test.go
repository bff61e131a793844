package skinplay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gateOpener struct {
	gate  *ReadinessGate
	res   ModelResource
	after uint64
}

func (m gateOpener) Install(app *App, cmd *Commands) {
	app.UseSystem(System(func(t *Time) {
		if t.Frame == m.after {
			m.gate.Open(m.res)
		}
	}).InStage(PreRender).RunAlways())
}

func buildPlaybackApp(t *testing.T, gate *ReadinessGate, res ModelResource, openAfter uint64) *App {
	t.Helper()
	ctrl := NewPlaybackController(1)
	return NewAppBuilder().
		UseStates(AwaitingResource, Ready).
		UseModule(
			LoggingModule{Logger: NewDefaultLogger("test", false)},
			TimeModule{},
			PlaybackModule{
				Options: RenderDriverOptions{
					Controller: ctrl,
					Clip:       sceneClip(),
					Tracks:     linearTracks(24, 18, 0.25),
					Gate:       gate,
				},
				Speed: NewSpeedControl(ctrl, 0, 2, 0.01),
			},
			gateOpener{gate: gate, res: res, after: openAfter},
		).
		Build()
}

func TestPlaybackModule_TransitionsWhenGateOpens(t *testing.T) {
	gate := NewReadinessGate()
	res := &recordingResource{}
	app := buildPlaybackApp(t, gate, res, 3)

	deltas := []float64{16, 16, 16, 16, 16}
	require.NoError(t, app.Run(context.Background(), ManualScheduler{Deltas: deltas}))

	assert.Equal(t, Ready, app.State())
	driver, ok := GetResource[RenderDriver](app)
	require.True(t, ok)
	assert.Equal(t, Ready, driver.State())
	assert.InDelta(t, 0.08, driver.Elapsed(), 1e-9)
	assert.Equal(t, uint64(5), driver.Frames())
	assert.Equal(t, 1, res.programs)
	assert.Len(t, res.draws, 3)
}

func TestPlaybackModule_StaysAwaitingWithoutResource(t *testing.T) {
	app := buildPlaybackApp(t, NewReadinessGate(), &recordingResource{}, 1000)

	for i := 0; i < 10; i++ {
		app.Step(100)
	}

	assert.Equal(t, AwaitingResource, app.State())
	driver, _ := GetResource[RenderDriver](app)
	assert.InDelta(t, 1.0, driver.Elapsed(), 1e-9)
	assert.Zero(t, driver.Draws())
}

func TestPlaybackModule_SpeedControlDrivesClock(t *testing.T) {
	gate := NewReadinessGate()
	app := buildPlaybackApp(t, gate, &recordingResource{}, 1)

	speed, ok := GetResource[SpeedControl](app)
	require.True(t, ok)
	speed.Input(0.5)

	app.Step(1000)
	driver, _ := GetResource[RenderDriver](app)
	assert.InDelta(t, 0.5, driver.Elapsed(), 1e-9)
}

func TestPlaybackModule_InstalledTwicePanics(t *testing.T) {
	assert.PanicsWithValue(t, "renderer skinned-playback already installed (1 joints); cannot install skinned-playback", func() {
		NewAppBuilder().
			UseModule(
				TimeModule{},
				PlaybackModule{Options: RenderDriverOptions{Clip: sceneClip(), Tracks: linearTracks(24, 1, 1), Gate: NewReadinessGate()}},
				PlaybackModule{Options: RenderDriverOptions{Clip: sceneClip(), Tracks: linearTracks(24, 1, 1), Gate: NewReadinessGate()}},
			).
			Build()
	})
}

func TestPlaybackModule_InvalidOptionsPanic(t *testing.T) {
	assert.Panics(t, func() {
		NewAppBuilder().UseModule(TimeModule{}, PlaybackModule{}).Build()
	})
}

func TestPlaybackModule_RequiresTimeModule(t *testing.T) {
	assert.PanicsWithValue(t, "renderer skinned-playback needs the Time resource; install TimeModule first", func() {
		NewAppBuilder().
			UseModule(PlaybackModule{Options: RenderDriverOptions{Clip: sceneClip(), Tracks: linearTracks(24, 1, 1), Gate: NewReadinessGate()}}).
			Build()
	})
}

func TestPlaybackModule_TagsRenderer(t *testing.T) {
	app := buildPlaybackApp(t, NewReadinessGate(), &recordingResource{}, 1000)
	tag, ok := GetResource[RendererTag](app)
	require.True(t, ok)
	assert.Equal(t, RendererTag{Name: "skinned-playback", Joints: 18}, *tag)
}
