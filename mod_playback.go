package skinplay

// PlaybackModule builds the render driver and schedules it in the Render stage.
// Install it after TimeModule.
type PlaybackModule struct {
	Options RenderDriverOptions
	// Speed, when set, is installed as the control surface resource.
	Speed *SpeedControl
}

func (m PlaybackModule) Install(app *App, cmd *Commands) {
	opts := m.Options
	if opts.Logger == nil {
		opts.Logger = app.Logger()
	}
	if opts.Controller == nil {
		opts.Controller = NewPlaybackController(1)
	}
	driver, err := NewRenderDriver(opts)
	if err != nil {
		panic(err)
	}
	claimRenderer(app, "skinned-playback", driver.uniforms.JointCount)

	cmd.AddResources(driver, driver.Controller())
	if m.Speed != nil {
		cmd.AddResources(m.Speed)
	}

	app.UseSystem(
		System(renderSystem).
			InStage(Render).
			RunAlways(),
	)
	if app.stateful {
		app.UseSystem(
			System(modelReadySystem).
				InStage(PostRender).
				InState(OnEnter(Ready)),
		)
	}
}

func renderSystem(t *Time, driver *RenderDriver, cmd *Commands) {
	before := driver.State()
	if err := driver.Tick(t.DeltaMs); err != nil {
		driver.logger.Warnf("Frame skipped: %v", err)
	}
	if before != Ready && driver.State() == Ready && cmd.app.stateful {
		cmd.ChangeState(Ready)
	}
}

func modelReadySystem(driver *RenderDriver, cmd *Commands) {
	cmd.Logger().Infof("Entered %v at t=%.3fs, speed %.2f", Ready, driver.Elapsed(), driver.Controller().Speed())
}
