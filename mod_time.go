package skinplay

import (
	"time"
)

// Time carries the wall-clock frame delta handed in by the scheduler. It is not
// scaled by the playback speed; PlaybackClock does that.
type Time struct {
	DeltaMs float64
	Dt      time.Duration
	Total   time.Duration
	Frame   uint64
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{})
}

func (t *Time) advance(deltaMs float64) {
	t.DeltaMs = deltaMs
	t.Dt = time.Duration(deltaMs * float64(time.Millisecond))
	t.Total += t.Dt
	t.Frame++
}
