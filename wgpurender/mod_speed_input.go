package wgpurender

import (
	"fmt"

	"github.com/gekko3d/skinplay"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// SpeedInputModule maps keys onto the playback speed control and shows the
// current speed in the window title.
//
//	Up/Right   +10 steps
//	Down/Left  -10 steps
//	0          reset to 100%
type SpeedInputModule struct {
	Window *Window
	Title  string
}

const nudgeSteps = 10

func (m SpeedInputModule) Install(app *skinplay.App, cmd *skinplay.Commands) {
	speed, ok := skinplay.GetResource[skinplay.SpeedControl](app)
	if !ok {
		panic("SpeedInputModule requires a SpeedControl resource; install PlaybackModule with Speed first")
	}

	m.Window.glfw.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		switch key {
		case glfw.KeyUp, glfw.KeyRight:
			speed.Nudge(nudgeSteps)
		case glfw.KeyDown, glfw.KeyLeft:
			speed.Nudge(-nudgeSteps)
		case glfw.Key0, glfw.KeyKP0:
			speed.Input(1)
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		}
	})

	cmd.AddResources(&speedTitle{window: m.Window, title: m.Title})
	app.UseSystem(
		skinplay.System(speedTitleSystem).
			InStage(skinplay.PostRender).
			RunAlways(),
	)
}

type speedTitle struct {
	window *Window
	title  string
}

func speedTitleSystem(t *speedTitle, speed *skinplay.SpeedControl, driver *skinplay.RenderDriver) {
	status := speed.Label()
	if driver.State() != skinplay.Ready {
		status += " (loading)"
	}
	t.window.SetTitle(fmt.Sprintf("%s - %s", t.title, status))
}
