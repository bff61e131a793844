package skinplay

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

type AssetId string

type TextureFormat uint32

const (
	TextureFormatR8Uint     TextureFormat = 0x00000003
	TextureFormatRGBA8Unorm TextureFormat = 0x00000012
	TextureFormatRGBA8Uint  TextureFormat = 0x00000015
)

type TextureAsset struct {
	Id     AssetId
	Texels []uint8
	Width  uint32
	Height uint32
	Format TextureFormat
}

// SkinnedVertex is the interleaved vertex the skinning shader consumes. Joints
// holds up to four joint indices (as floats) and Weights their blend weights.
type SkinnedVertex struct {
	Position mgl32.Vec3 `skinplay:"layout" format:"float3" location:"0"`
	Normal   mgl32.Vec3 `skinplay:"layout" format:"float3" location:"1"`
	UV       mgl32.Vec2 `skinplay:"layout" format:"float2" location:"2"`
	Joints   mgl32.Vec4 `skinplay:"layout" format:"float4" location:"3"`
	Weights  mgl32.Vec4 `skinplay:"layout" format:"float4" location:"4"`
}

type SkinnedMesh struct {
	Id       AssetId
	Vertices []SkinnedVertex
	Indices  []uint16
}

// Layout returns the mesh's vertex attribute bindings.
func (m *SkinnedMesh) Layout() VertexAttributes {
	layout := VertexLayoutOf(SkinnedVertex{})
	layout.IndexCount = uint32(len(m.Indices))
	return layout
}

// AssetServer owns decoded textures and meshes. Loads may run on loader
// goroutines while the frame loop reads, so access is locked.
type AssetServer struct {
	mu       sync.RWMutex
	textures map[AssetId]*TextureAsset
	meshes   map[AssetId]*SkinnedMesh
}

func NewAssetServer() *AssetServer {
	return &AssetServer{
		textures: make(map[AssetId]*TextureAsset),
		meshes:   make(map[AssetId]*SkinnedMesh),
	}
}

type AssetServerModule struct {
	Server *AssetServer
}

func (m AssetServerModule) Install(app *App, cmd *Commands) {
	server := m.Server
	if server == nil {
		server = NewAssetServer()
	}
	app.addResources(server)
}

func (server *AssetServer) CreateTexture(texels []uint8, texWidth uint32, texHeight uint32, format TextureFormat) *TextureAsset {
	tex := &TextureAsset{
		Id:     makeAssetId(),
		Texels: texels,
		Width:  texWidth,
		Height: texHeight,
		Format: format,
	}

	server.mu.Lock()
	server.textures[tex.Id] = tex
	server.mu.Unlock()

	return tex
}

// LoadTexture decodes a PNG, JPEG, BMP or WebP file into an RGBA8 texture.
func (server *AssetServer) LoadTexture(filename string) (*TextureAsset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer file.Close()

	tex, err := server.DecodeTexture(file)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", filename, err)
	}
	return tex, nil
}

func (server *AssetServer) DecodeTexture(r io.Reader) (*TextureAsset, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	bounds := img.Bounds()
	rgbaImg, ok := img.(*image.RGBA)
	if !ok || bounds.Min != (image.Point{}) {
		rgbaImg = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgbaImg, rgbaImg.Bounds(), img, bounds.Min, draw.Src)
	}

	return server.CreateTexture(rgbaImg.Pix, uint32(bounds.Dx()), uint32(bounds.Dy()), TextureFormatRGBA8Unorm), nil
}

func (server *AssetServer) Texture(id AssetId) (*TextureAsset, bool) {
	server.mu.RLock()
	defer server.mu.RUnlock()
	tex, ok := server.textures[id]
	return tex, ok
}

// AddMesh registers the mesh and assigns it an id.
func (server *AssetServer) AddMesh(mesh *SkinnedMesh) AssetId {
	mesh.Id = makeAssetId()

	server.mu.Lock()
	server.meshes[mesh.Id] = mesh
	server.mu.Unlock()

	return mesh.Id
}

func (server *AssetServer) Mesh(id AssetId) (*SkinnedMesh, bool) {
	server.mu.RLock()
	defer server.mu.RUnlock()
	mesh, ok := server.meshes[id]
	return mesh, ok
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
