package skinplay

import (
	"fmt"
	"math"
)

// SpeedControl is the playback-speed control surface: it clamps raw input to
// [Min, Max], snaps it to Step, and forwards it to the controller.
type SpeedControl struct {
	Min  float64
	Max  float64
	Step float64

	controller *PlaybackController
}

func NewSpeedControl(controller *PlaybackController, min, max, step float64) *SpeedControl {
	return &SpeedControl{
		Min:        min,
		Max:        max,
		Step:       step,
		controller: controller,
	}
}

// Input applies a raw slider value and returns the speed actually set.
func (s *SpeedControl) Input(value float64) float64 {
	if math.IsNaN(value) {
		return s.controller.Speed()
	}
	if s.Step > 0 {
		value = s.Min + math.Round((value-s.Min)/s.Step)*s.Step
	}
	value = math.Max(s.Min, math.Min(s.Max, value))

	s.controller.SetSpeed(value)
	return value
}

// Nudge moves the current speed by the given number of steps.
func (s *SpeedControl) Nudge(steps int) float64 {
	return s.Input(s.controller.Speed() + float64(steps)*s.Step)
}

func (s *SpeedControl) Speed() float64 {
	return s.controller.Speed()
}

// Label renders the speed the way the demo's readout shows it.
func (s *SpeedControl) Label() string {
	return fmt.Sprintf("Playback Speed: %.0f%%", s.controller.Speed()*100)
}
