package input

import "github.com/achilleasa/hybris/types"

// A mesh vertex as emitted by a mesh reader. A zero Normal marks a missing normal.
type Vertex struct {
	Position types.Vec3
	Normal   types.Vec3
	UV       types.Vec2
}

// A triangle primitive
type Triangle struct {
	Vertices [3]types.Vec3
	Normals  [3]types.Vec3
	UVs      [3]types.Vec2

	center types.Vec3
}

// Assemble a triangle from three consecutive vertices. Vertex normals are
// used when all three are present; otherwise all vertices share the face normal.
func NewTriangle(v [3]Vertex) Triangle {
	tri := Triangle{
		Vertices: [3]types.Vec3{v[0].Position, v[1].Position, v[2].Position},
		UVs:      [3]types.Vec2{v[0].UV, v[1].UV, v[2].UV},
	}

	if !v[0].Normal.IsZero() && !v[1].Normal.IsZero() && !v[2].Normal.IsZero() {
		for i := 0; i < 3; i++ {
			tri.Normals[i] = v[i].Normal.Normalize()
		}
	} else {
		e01 := tri.Vertices[1].Sub(tri.Vertices[0])
		e02 := tri.Vertices[2].Sub(tri.Vertices[0])
		faceNormal := e01.Cross(e02).Normalize()
		tri.Normals = [3]types.Vec3{faceNormal, faceNormal, faceNormal}
	}

	tri.center = tri.Vertices[0].Add(tri.Vertices[1]).Add(tri.Vertices[2]).Mul(1.0 / 3.0)
	return tri
}

// Get the triangle centroid.
func (tri *Triangle) Center() types.Vec3 {
	return tri.center
}

// Get the triangle AABB.
func (tri *Triangle) BBox() types.BBox {
	box := types.EmptyBBox()
	tri.GrowBBox(&box)
	return box
}

// Extend box so it includes all triangle vertices.
func (tri *Triangle) GrowBBox(box *types.BBox) {
	box.Grow(tri.Vertices[0])
	box.Grow(tri.Vertices[1])
	box.Grow(tri.Vertices[2])
}

// Group a vertex stream into triangles. The stream length must be a multiple of 3.
func Triangulate(vertices []Vertex) []Triangle {
	tris := make([]Triangle, 0, len(vertices)/3)
	for i := 0; i+2 < len(vertices); i += 3 {
		tris = append(tris, NewTriangle([3]Vertex{vertices[i], vertices[i+1], vertices[i+2]}))
	}
	return tris
}

// Material parameters as defined by a scene description. Nil fields fall
// back to the selected preset.
type Material struct {
	Name   string
	Preset string

	Albedo          *types.Vec3
	Absorption      *types.Vec3
	Smoothness      *float32
	Emission        *float32
	RefractiveIndex *float32
}

// A placement of a model inside the scene.
type Placement struct {
	// Path to the mesh resource.
	ModelPath string

	Position types.Vec3

	// Rotation angles in degrees; applied X first, then Y, then Z.
	Rotation types.Vec3
	Scale    types.Vec3

	// Name of the material applied to the placed model.
	Material string
}

// The scene contains all elements that are processed by the scene compiler.
type Scene struct {
	// The split strategy requested by the scene description (may be empty).
	Split string

	Materials []*Material
	Objects   []*Placement
}

// Create a new scene.
func NewScene() *Scene {
	return &Scene{
		Materials: make([]*Material, 0),
		Objects:   make([]*Placement, 0),
	}
}
