package skinplay

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
)

// ModelResource is a GPU-resident model ready to draw.
type ModelResource interface {
	// UseProgram binds the model's shader program. Called once, when the
	// driver binds the resource.
	UseProgram() error
	Attributes() VertexAttributes
	Draw(call DrawCall) error
}

type DrawCall struct {
	Attributes VertexAttributes
	Uniforms   FrameUniforms
}

// ModelImporter uploads a scene and its texture to the GPU.
type ModelImporter interface {
	Import(ctx context.Context, scene *SceneDescription, texture *TextureAsset) (ModelResource, error)
}

// SceneDescription is what the importer needs to build a ModelResource.
type SceneDescription struct {
	Name       string
	Mesh       *SkinnedMesh
	JointCount int
}

type VertexAttribute struct {
	Name     string
	Location uint32
	Format   string
	Offset   uint64
}

// VertexAttributes describes the interleaved vertex layout of a model.
type VertexAttributes struct {
	Stride     uint64
	Attributes []VertexAttribute
	IndexCount uint32
}

// VertexLayoutOf reads the vertex layout from struct tags:
//
//	Position mgl32.Vec3 `skinplay:"layout" format:"float3" location:"0"`
//
// Untagged fields still take up space in the stride.
func VertexLayoutOf(vertexType any) VertexAttributes {
	t := reflect.TypeOf(vertexType)
	if t.Kind() != reflect.Struct {
		panic("Vertex must be a struct")
	}

	var layout VertexAttributes
	var offset uint64

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Tag.Get("skinplay") == "layout" {
			location, err := strconv.Atoi(field.Tag.Get("location"))
			if err != nil {
				panic(fmt.Sprintf("vertex field %s: bad location: %v", field.Name, err))
			}
			layout.Attributes = append(layout.Attributes, VertexAttribute{
				Name:     field.Name,
				Location: uint32(location),
				Format:   field.Tag.Get("format"),
				Offset:   offset,
			})
		}

		offset += uint64(field.Type.Size())
	}
	layout.Stride = offset

	return layout
}
