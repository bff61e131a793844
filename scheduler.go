package skinplay

import (
	"context"
	"time"
)

// FrameFunc is invoked once per display refresh with the wall-clock delta in
// milliseconds. Returning false stops the scheduler.
type FrameFunc func(deltaMs float64) bool

// Scheduler issues frame callbacks until the context ends or the frame
// function asks to stop.
type Scheduler interface {
	Run(ctx context.Context, frame FrameFunc) error
}

// TickerScheduler paces frames with a time.Ticker; used by headless hosts.
type TickerScheduler struct {
	Interval time.Duration
}

func (s TickerScheduler) Run(ctx context.Context, frame FrameFunc) error {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			delta := now.Sub(last)
			last = now
			if !frame(float64(delta) / float64(time.Millisecond)) {
				return nil
			}
		}
	}
}

// ManualScheduler replays a fixed list of deltas.
type ManualScheduler struct {
	Deltas []float64
}

func (s ManualScheduler) Run(ctx context.Context, frame FrameFunc) error {
	for _, delta := range s.Deltas {
		if ctx.Err() != nil {
			return nil
		}
		if !frame(delta) {
			return nil
		}
	}
	return nil
}
