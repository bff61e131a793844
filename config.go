package skinplay

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Debug    bool           `toml:"debug" yaml:"debug"`
	Window   WindowConfig   `toml:"window" yaml:"window"`
	Assets   AssetConfig    `toml:"assets" yaml:"assets"`
	Clip     ClipConfig     `toml:"clip" yaml:"clip"`
	Camera   CameraConfig   `toml:"camera" yaml:"camera"`
	Lighting LightingConfig `toml:"lighting" yaml:"lighting"`
	Speed    SpeedConfig    `toml:"speed" yaml:"speed"`
}

type WindowConfig struct {
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	Title  string `toml:"title" yaml:"title"`
}

type AssetConfig struct {
	TexturePath string     `toml:"texture" yaml:"texture"`
	Rig         RigOptions `toml:"rig" yaml:"rig"`
}

type ClipConfig struct {
	Range     [2]int  `toml:"range" yaml:"range"`
	StartTime float64 `toml:"start_time" yaml:"start_time"`
	NoLoop    bool    `toml:"no_loop" yaml:"no_loop"`
}

type CameraConfig struct {
	FovY   float32    `toml:"fovy" yaml:"fovy"`
	Near   float32    `toml:"near" yaml:"near"`
	Far    float32    `toml:"far" yaml:"far"`
	Offset [3]float32 `toml:"offset" yaml:"offset"`
}

type LightingConfig struct {
	Enabled          bool       `toml:"enabled" yaml:"enabled"`
	Ambient          [3]float32 `toml:"ambient" yaml:"ambient"`
	Direction        [3]float32 `toml:"direction" yaml:"direction"`
	DirectionalColor [3]float32 `toml:"directional_color" yaml:"directional_color"`
}

type SpeedConfig struct {
	Initial float64 `toml:"initial" yaml:"initial"`
	Min     float64 `toml:"min" yaml:"min"`
	Max     float64 `toml:"max" yaml:"max"`
	Step    float64 `toml:"step" yaml:"step"`
}

// DefaultConfig reproduces the cowboy demo: a 400x400 surface, the model 27
// units in front of the camera, clip [6,17] over 18 joints, red key light.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 400, Height: 400, Title: "skinplay"},
		Assets: AssetConfig{Rig: DefaultRigOptions()},
		Clip:   ClipConfig{Range: [2]int{6, 17}},
		Camera: CameraConfig{
			FovY:   math.Pi / 4,
			Near:   0.1,
			Far:    100,
			Offset: [3]float32{0, 0, -27},
		},
		Lighting: LightingConfig{
			Enabled:          true,
			Ambient:          [3]float32{1, 0.9, 0.9},
			Direction:        [3]float32{1, 0, 0},
			DirectionalColor: [3]float32{1, 0, 0},
		},
		Speed: SpeedConfig{Initial: 1, Min: 0, Max: 2, Step: 0.01},
	}
}

// LoadConfig overlays a TOML or YAML file (chosen by extension) on DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("config %s: unsupported format %q", path, filepath.Ext(path))
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Assets.Rig.JointCount <= 0 {
		errs = append(errs, fmt.Errorf("joint count %d", c.Assets.Rig.JointCount))
	}
	if c.Clip.Range[0] < 0 || c.Clip.Range[1] < c.Clip.Range[0] || c.Clip.Range[1] >= c.Assets.Rig.KeyframeCount {
		errs = append(errs, fmt.Errorf("clip range %v outside %d keyframes", c.Clip.Range, c.Assets.Rig.KeyframeCount))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera depth range [%v,%v]", c.Camera.Near, c.Camera.Far))
	}
	if c.Speed.Min < 0 || c.Speed.Max < c.Speed.Min {
		errs = append(errs, fmt.Errorf("speed range [%v,%v]", c.Speed.Min, c.Speed.Max))
	}
	if c.Speed.Initial < c.Speed.Min || c.Speed.Initial > c.Speed.Max {
		errs = append(errs, fmt.Errorf("initial speed %v outside [%v,%v]", c.Speed.Initial, c.Speed.Min, c.Speed.Max))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c Config) AnimationClip() AnimationClip {
	return AnimationClip{Range: c.Clip.Range, StartTime: c.Clip.StartTime, NoLoop: c.Clip.NoLoop}
}

func (c Config) CameraSetup() Camera {
	aspect := float32(c.Window.Width) / float32(c.Window.Height)
	return PerspectiveCamera(c.Camera.FovY, aspect, c.Camera.Near, c.Camera.Far, mgl32.Vec3(c.Camera.Offset))
}

func (c Config) LightingSetup() Lighting {
	dir := mgl32.Vec3(c.Lighting.Direction)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Lighting{
		UseLighting:      c.Lighting.Enabled,
		Ambient:          mgl32.Vec3(c.Lighting.Ambient),
		Direction:        dir,
		DirectionalColor: mgl32.Vec3(c.Lighting.DirectionalColor),
	}
}
