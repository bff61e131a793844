package wgpurender

import (
	"context"
	"time"

	"github.com/gekko3d/skinplay"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// GlfwScheduler issues one frame per window refresh, measuring deltas with the
// GLFW timer. Presenting with FIFO blocks on vsync; frames that present nothing
// (model still loading) are paced to MinFrameTime instead.
type GlfwScheduler struct {
	Window       *Window
	MinFrameTime time.Duration
}

func (s GlfwScheduler) Run(ctx context.Context, frame skinplay.FrameFunc) error {
	minFrame := s.MinFrameTime
	if minFrame <= 0 {
		minFrame = time.Second / 60
	}

	last := glfw.GetTime()
	for !s.Window.ShouldClose() {
		if ctx.Err() != nil {
			return nil
		}
		glfw.PollEvents()

		now := glfw.GetTime()
		deltaMs := (now - last) * 1000
		last = now
		if !frame(deltaMs) {
			return nil
		}

		if spent := time.Duration((glfw.GetTime() - now) * float64(time.Second)); spent < minFrame {
			glfw.WaitEventsTimeout((minFrame - spent).Seconds())
		}
	}
	return nil
}
