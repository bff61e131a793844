package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/gekko3d/skinplay"
	"github.com/gekko3d/skinplay/wgpurender"
)

// GLFW requires the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML or YAML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	headless := flag.Bool("headless", false, "run without a window or GPU")
	duration := flag.Duration("duration", 0, "stop after this long (headless runs default to 5s)")
	flag.Parse()

	if err := run(*configPath, *debug, *headless, *duration); err != nil {
		fmt.Fprintf(os.Stderr, "skinplay: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, debug, headless bool, duration time.Duration) error {
	cfg := skinplay.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = skinplay.LoadConfig(configPath); err != nil {
			return err
		}
	}
	logger := skinplay.NewDefaultLogger("skinplay", cfg.Debug || debug)

	rig, err := skinplay.ProceduralRig(cfg.Assets.Rig)
	if err != nil {
		return err
	}
	// keyframes are converted once, before playback starts
	tracks, err := skinplay.ConvertKeyframes(rig.Keyframes)
	if err != nil {
		return err
	}
	jointCount := cfg.Assets.Rig.JointCount

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if headless && duration == 0 {
		duration = 5 * time.Second
	}
	if duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	controller := skinplay.NewPlaybackController(cfg.Speed.Initial)
	speed := skinplay.NewSpeedControl(controller, cfg.Speed.Min, cfg.Speed.Max, cfg.Speed.Step)
	gate := skinplay.NewReadinessGate()

	var (
		importer  skinplay.ModelImporter
		scheduler skinplay.Scheduler
		modules   []skinplay.Module
	)
	if headless {
		importer = skinplay.HeadlessImporter{Logger: logger}
		scheduler = skinplay.TickerScheduler{Interval: time.Second / 60}
	} else {
		win, err := wgpurender.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
		if err != nil {
			return fmt.Errorf("window: %w", err)
		}
		defer win.Destroy()
		gpu, err := wgpurender.NewGpuState(win)
		if err != nil {
			return err
		}
		defer gpu.Release()

		importer = wgpurender.Importer{Gpu: gpu, Logger: logger}
		scheduler = wgpurender.GlfwScheduler{Window: win}
		modules = append(modules, wgpurender.SpeedInputModule{Window: win, Title: cfg.Window.Title})
	}

	assets := skinplay.NewAssetServer()
	app := skinplay.NewAppBuilder().
		UseStates(skinplay.AwaitingResource, skinplay.Ready).
		UseModule(
			skinplay.LoggingModule{Logger: logger},
			skinplay.TimeModule{},
			skinplay.AssetServerModule{Server: assets},
			skinplay.PlaybackModule{
				Options: skinplay.RenderDriverOptions{
					Controller: controller,
					Clip:       cfg.AnimationClip(),
					Tracks:     tracks,
					JointCount: jointCount,
					Camera:     cfg.CameraSetup(),
					Lighting:   cfg.LightingSetup(),
					Gate:       gate,
				},
				Speed: speed,
			},
		).
		UseModule(modules...).
		Build()

	loader := &skinplay.Loader{
		Assets:   assets,
		Importer: importer,
		Scene: func(context.Context) (*skinplay.SceneDescription, error) {
			return rig.Scene("procedural-rig", jointCount), nil
		},
		TexturePath: cfg.Assets.TexturePath,
		Logger:      logger,
	}
	go func() {
		if err := loader.Load(ctx, gate); err != nil {
			logger.Errorf("%v; model will not be drawn", err)
		}
	}()

	if err := app.Run(ctx, scheduler); err != nil {
		return err
	}

	if driver, ok := skinplay.GetResource[skinplay.RenderDriver](app); ok {
		logger.Infof("Played %.2fs over %d frames: %d drawn, %d skipped",
			driver.Elapsed(), driver.Frames(), driver.Draws(), driver.Skipped())
	}
	return nil
}
