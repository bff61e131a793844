package skinplay

import (
	"context"
	"fmt"
	"image/color"

	"golang.org/x/sync/errgroup"
)

// SceneSource produces the scene description to import.
type SceneSource func(ctx context.Context) (*SceneDescription, error)

// Loader fetches the texture and the scene concurrently, uploads them through
// the importer and opens the gate. A failed load leaves the gate closed; there
// is no retry.
type Loader struct {
	Assets   *AssetServer
	Importer ModelImporter
	Scene    SceneSource
	// TexturePath is decoded from disk; when empty a checkerboard is generated.
	TexturePath string
	Logger      Logger
}

func (l *Loader) Load(ctx context.Context, gate *ReadinessGate) error {
	logger := componentLogger(l.Logger, "loader")
	if gate == nil {
		return fmt.Errorf("loader: readiness gate is required")
	}
	if l.Importer == nil || l.Scene == nil {
		return fmt.Errorf("loader: importer and scene source are required")
	}
	assets := l.Assets
	if assets == nil {
		assets = NewAssetServer()
	}

	var (
		texture *TextureAsset
		scene   *SceneDescription
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if l.TexturePath == "" {
			texture = assets.CheckerTexture(256, 8, color.RGBA{R: 230, G: 200, B: 160, A: 255}, color.RGBA{R: 120, G: 80, B: 50, A: 255})
			return nil
		}
		tex, err := assets.LoadTexture(l.TexturePath)
		if err != nil {
			return err
		}
		texture = tex
		return nil
	})
	g.Go(func() error {
		s, err := l.Scene(gctx)
		if err != nil {
			return fmt.Errorf("scene: %w", err)
		}
		if s == nil || s.Mesh == nil {
			return fmt.Errorf("scene: no mesh")
		}
		if s.Mesh.Id == "" {
			assets.AddMesh(s.Mesh)
		}
		scene = s
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Errorf("Model load failed: %v", err)
		return fmt.Errorf("load model: %w", err)
	}

	resource, err := l.Importer.Import(ctx, scene, texture)
	if err != nil {
		logger.Errorf("Model import failed: %v", err)
		return fmt.Errorf("import %s: %w", scene.Name, err)
	}

	if gate.Open(resource) {
		logger.Infof("Model %s ready (%d vertices, %d indices, texture %dx%d)",
			scene.Name, len(scene.Mesh.Vertices), len(scene.Mesh.Indices), texture.Width, texture.Height)
	} else {
		logger.Warnf("Model %s loaded after the gate was already open; ignoring", scene.Name)
	}
	return nil
}
