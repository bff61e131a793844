package skinplay

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// RigOptions shapes the procedural skinned tube: a chain of JointCount joints
// stacked along +Y, each JointLength tall, swaying over KeyframeCount samples.
type RigOptions struct {
	JointCount       int     `toml:"joints" yaml:"joints"`
	JointLength      float32 `toml:"joint_length" yaml:"joint_length"`
	Radius           float32 `toml:"radius" yaml:"radius"`
	Segments         int     `toml:"segments" yaml:"segments"`
	RingsPerJoint    int     `toml:"rings_per_joint" yaml:"rings_per_joint"`
	KeyframeCount    int     `toml:"keyframes" yaml:"keyframes"`
	KeyframeInterval float64 `toml:"keyframe_interval" yaml:"keyframe_interval"`
	SwayDegrees      float32 `toml:"sway_degrees" yaml:"sway_degrees"`
}

func DefaultRigOptions() RigOptions {
	return RigOptions{
		JointCount:       18,
		JointLength:      1,
		Radius:           1.2,
		Segments:         16,
		RingsPerJoint:    4,
		KeyframeCount:    24,
		KeyframeInterval: 1.0 / 12,
		SwayDegrees:      9,
	}
}

// Rig is a skinned mesh plus the raw per-joint keyframe matrices that animate it.
type Rig struct {
	Mesh      *SkinnedMesh
	Keyframes map[string][]mgl32.Mat4
}

func (r *Rig) Scene(name string, jointCount int) *SceneDescription {
	return &SceneDescription{Name: name, Mesh: r.Mesh, JointCount: jointCount}
}

func ProceduralRig(opts RigOptions) (*Rig, error) {
	if opts.JointCount <= 0 || opts.Segments < 3 || opts.RingsPerJoint <= 0 || opts.KeyframeCount <= 0 {
		return nil, fmt.Errorf("procedural rig: invalid options %+v", opts)
	}
	rings := opts.JointCount*opts.RingsPerJoint + 1
	if rings*(opts.Segments+1) > math.MaxUint16 {
		return nil, fmt.Errorf("procedural rig: %d vertices exceed 16-bit indices", rings*(opts.Segments+1))
	}

	return &Rig{
		Mesh:      tubeMesh(opts, rings),
		Keyframes: swayKeyframes(opts),
	}, nil
}

func rigBase(opts RigOptions) float32 {
	return -float32(opts.JointCount) * opts.JointLength / 2
}

func tubeMesh(opts RigOptions, rings int) *SkinnedMesh {
	base := rigBase(opts)
	height := float32(opts.JointCount) * opts.JointLength
	mesh := &SkinnedMesh{}

	for ring := 0; ring < rings; ring++ {
		v := float32(ring) / float32(rings-1)
		y := base + v*height

		f := (y - base) / opts.JointLength
		j0 := int(f)
		if j0 >= opts.JointCount {
			j0 = opts.JointCount - 1
		}
		u := f - float32(j0)
		j1 := j0 + 1
		if j1 >= opts.JointCount {
			j1 = j0
			u = 0
		}

		for s := 0; s <= opts.Segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(opts.Segments)
			cx, cz := float32(math.Cos(theta)), float32(math.Sin(theta))
			mesh.Vertices = append(mesh.Vertices, SkinnedVertex{
				Position: mgl32.Vec3{opts.Radius * cx, y, opts.Radius * cz},
				Normal:   mgl32.Vec3{cx, 0, cz},
				UV:       mgl32.Vec2{float32(s) / float32(opts.Segments), v},
				Joints:   mgl32.Vec4{float32(j0), float32(j1), 0, 0},
				Weights:  mgl32.Vec4{1 - u, u, 0, 0},
			})
		}
	}

	stride := opts.Segments + 1
	for ring := 0; ring < rings-1; ring++ {
		for s := 0; s < opts.Segments; s++ {
			a := uint16(ring*stride + s)
			b := uint16((ring+1)*stride + s)
			mesh.Indices = append(mesh.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return mesh
}

// swayKeyframes animates each joint with a phase-shifted sway and returns the
// skinning matrices (animated world * inverse bind) keyed by time.
func swayKeyframes(opts RigOptions) map[string][]mgl32.Mat4 {
	base := rigBase(opts)
	amp := mgl32.DegToRad(opts.SwayDegrees)
	period := float64(opts.KeyframeCount) * opts.KeyframeInterval

	keyframes := make(map[string][]mgl32.Mat4, opts.KeyframeCount)
	for k := 0; k < opts.KeyframeCount; k++ {
		t := float64(k) * opts.KeyframeInterval
		joints := make([]mgl32.Mat4, opts.JointCount)

		world := mgl32.Translate3D(0, base, 0)
		for j := 0; j < opts.JointCount; j++ {
			if j > 0 {
				world = world.Mul4(mgl32.Translate3D(0, opts.JointLength, 0))
			}
			phase := 2*math.Pi*t/period + float64(j)*0.35
			a := amp * float32(math.Sin(phase))
			world = world.Mul4(mgl32.HomogRotate3DZ(a)).Mul4(mgl32.HomogRotate3DX(a / 2))

			bindY := base + float32(j)*opts.JointLength
			joints[j] = world.Mul4(mgl32.Translate3D(0, -bindY, 0))
		}
		keyframes[strconv.FormatFloat(t, 'f', -1, 64)] = joints
	}
	return keyframes
}

// CheckerTexture registers a size x size two-tone checkerboard.
func (server *AssetServer) CheckerTexture(size, cells int, a, b color.RGBA) *TextureAsset {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := size / cells
	if cell == 0 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
	return server.CreateTexture(img.Pix, uint32(size), uint32(size), TextureFormatRGBA8Unorm)
}
