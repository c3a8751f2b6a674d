package input

import (
	"testing"

	"github.com/achilleasa/hybris/types"
)

func TestTriangleFaceNormalFallback(t *testing.T) {
	type spec struct {
		normals   [3]types.Vec3
		expNormal [3]types.Vec3
	}
	faceNormal := types.Vec3{0, 0, 1}
	specs := []spec{
		// no normals
		{[3]types.Vec3{}, [3]types.Vec3{faceNormal, faceNormal, faceNormal}},
		// partial normals
		{[3]types.Vec3{{0, 1, 0}, {0, 1, 0}, {}}, [3]types.Vec3{faceNormal, faceNormal, faceNormal}},
		// vertex normals get normalized
		{[3]types.Vec3{{0, 3, 0}, {2, 0, 0}, {0, 0, -5}}, [3]types.Vec3{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}}},
	}

	for index, s := range specs {
		tri := NewTriangle([3]Vertex{
			{Position: types.Vec3{0, 0, 0}, Normal: s.normals[0]},
			{Position: types.Vec3{2, 0, 0}, Normal: s.normals[1]},
			{Position: types.Vec3{0, 2, 0}, Normal: s.normals[2]},
		})
		for v := 0; v < 3; v++ {
			if !tri.Normals[v].ApproxEqual(s.expNormal[v], 1e-6) {
				t.Fatalf("[spec %d] expected normal %d to be %v; got %v", index, v, s.expNormal[v], tri.Normals[v])
			}
		}
	}
}

func TestTriangleCenterAndBBox(t *testing.T) {
	tri := NewTriangle([3]Vertex{
		{Position: types.Vec3{0, 0, 0}},
		{Position: types.Vec3{3, 0, 0}},
		{Position: types.Vec3{0, 3, 6}},
	})

	expCenter := types.Vec3{1, 1, 2}
	if !tri.Center().ApproxEqual(expCenter, 1e-6) {
		t.Fatalf("expected centroid to be %v; got %v", expCenter, tri.Center())
	}

	expBBox := types.BBox{Min: types.Vec3{0, 0, 0}, Max: types.Vec3{3, 3, 6}}
	if tri.BBox() != expBBox {
		t.Fatalf("expected bbox to be %v; got %v", expBBox, tri.BBox())
	}
}

func TestTriangulate(t *testing.T) {
	vertices := make([]Vertex, 6)
	for i := range vertices {
		vertices[i].Position = types.Vec3{float32(i), float32(i % 2), 0}
	}

	tris := Triangulate(vertices)
	if len(tris) != 2 {
		t.Fatalf("expected 2 triangles; got %d", len(tris))
	}
	if tris[1].Vertices[0] != vertices[3].Position {
		t.Fatalf("expected second triangle to start at vertex 3; got %v", tris[1].Vertices[0])
	}
}
