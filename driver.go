package skinplay

import (
	"errors"
	"fmt"
)

type RenderDriverOptions struct {
	Controller   *PlaybackController
	Clip         AnimationClip
	Tracks       *KeyframeTracks
	Interpolator PoseInterpolator
	JointCount   int
	Camera       Camera
	Lighting     Lighting
	Gate         *ReadinessGate
	Logger       Logger
}

// RenderDriver owns the per-frame sequence: advance the clock, then (once the
// model is bound) sample the pose, build uniforms and draw.
//
// The driver starts in AwaitingResource and moves to Ready exactly once, on the
// first tick that finds the gate open.
type RenderDriver struct {
	state    State
	clock    *PlaybackClock
	clip     AnimationClip
	tracks   *KeyframeTracks
	interp   PoseInterpolator
	uniforms UniformBuilder
	camera   Camera
	lighting Lighting
	gate     *ReadinessGate
	resource ModelResource
	logger   Logger

	frames  uint64
	draws   uint64
	skipped uint64
}

func NewRenderDriver(opts RenderDriverOptions) (*RenderDriver, error) {
	if opts.Gate == nil {
		return nil, errors.New("render driver: readiness gate is required")
	}
	if err := opts.Clip.Validate(opts.Tracks); err != nil {
		return nil, fmt.Errorf("render driver: %w", err)
	}
	if opts.JointCount <= 0 {
		opts.JointCount = opts.Tracks.JointCount()
	}
	if opts.Interpolator == nil {
		opts.Interpolator = NewKeyframeInterpolator(opts.JointCount)
	}
	opts.Logger = componentLogger(opts.Logger, "driver")

	return &RenderDriver{
		state:    AwaitingResource,
		clock:    NewPlaybackClock(opts.Controller),
		clip:     opts.Clip,
		tracks:   opts.Tracks,
		interp:   opts.Interpolator,
		uniforms: UniformBuilder{JointCount: opts.JointCount},
		camera:   opts.Camera,
		lighting: opts.Lighting,
		gate:     opts.Gate,
		logger:   opts.Logger,
	}, nil
}

// Tick runs one frame. The clock always advances, even before the model is
// ready, so playback does not jump when loading finishes. A pose that cannot be
// sampled skips the draw and returns the error.
func (d *RenderDriver) Tick(deltaMs float64) error {
	now := d.clock.Advance(deltaMs)
	d.frames++

	if d.state == AwaitingResource {
		res := d.gate.Resource()
		if res == nil {
			return nil
		}
		if err := d.bind(res); err != nil {
			return err
		}
	}

	pose, err := d.interp.Sample(now, d.clip, d.tracks)
	if err != nil {
		d.skipped++
		return fmt.Errorf("frame %d: sample pose at %.3fs: %w", d.frames, now, err)
	}

	uniforms := d.uniforms.Build(pose, d.camera, d.lighting)
	if err := d.resource.Draw(DrawCall{Attributes: d.resource.Attributes(), Uniforms: uniforms}); err != nil {
		return fmt.Errorf("frame %d: draw: %w", d.frames, err)
	}
	d.draws++
	return nil
}

func (d *RenderDriver) bind(res ModelResource) error {
	if err := res.UseProgram(); err != nil {
		return fmt.Errorf("bind model: %w", err)
	}
	d.resource = res
	d.state = Ready
	d.logger.Infof("Model bound after %d frames (t=%.3fs)", d.frames, d.clock.Elapsed())
	return nil
}

func (d *RenderDriver) State() State {
	return d.state
}

func (d *RenderDriver) Elapsed() float64 {
	return d.clock.Elapsed()
}

func (d *RenderDriver) Controller() *PlaybackController {
	return d.clock.Controller()
}

func (d *RenderDriver) Frames() uint64 {
	return d.frames
}

func (d *RenderDriver) Draws() uint64 {
	return d.draws
}

func (d *RenderDriver) Skipped() uint64 {
	return d.skipped
}
