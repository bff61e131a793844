package skinplay

import (
	"math"
	"sync/atomic"
)

// PlaybackController holds the live playback-speed multiplier. It is written by
// the speed control surface and read once per frame by the clock; the value is
// a single 64-bit word so no lock is needed.
type PlaybackController struct {
	speedBits atomic.Uint64
}

func NewPlaybackController(speed float64) *PlaybackController {
	c := &PlaybackController{}
	c.SetSpeed(speed)
	return c
}

// SetSpeed stores the multiplier as reported. Range enforcement belongs to the
// control surface (see SpeedControl); negative or non-finite values break the
// clock's monotonicity.
func (c *PlaybackController) SetSpeed(multiplier float64) {
	c.speedBits.Store(math.Float64bits(multiplier))
}

func (c *PlaybackController) Speed() float64 {
	return math.Float64frombits(c.speedBits.Load())
}

// PlaybackClock accumulates simulation time from frame deltas scaled by the
// controller's speed. It is never reset during a session.
type PlaybackClock struct {
	elapsedSeconds float64
	controller     *PlaybackController
}

func NewPlaybackClock(controller *PlaybackController) *PlaybackClock {
	if controller == nil {
		controller = NewPlaybackController(1)
	}
	return &PlaybackClock{controller: controller}
}

// Advance adds deltaMs*speed/1000 seconds and returns the new elapsed time.
func (c *PlaybackClock) Advance(deltaMs float64) float64 {
	c.elapsedSeconds += deltaMs * c.controller.Speed() / 1000
	return c.elapsedSeconds
}

func (c *PlaybackClock) Elapsed() float64 {
	return c.elapsedSeconds
}

func (c *PlaybackClock) Controller() *PlaybackController {
	return c.controller
}
