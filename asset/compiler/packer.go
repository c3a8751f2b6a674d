package compiler

import (
	"github.com/achilleasa/hybris/asset/scene"
	"github.com/achilleasa/hybris/types"
	"github.com/google/uuid"
)

// Pack the store contents into a new buffer set. Pack never modifies the
// store and packing the same store twice yields identical buffers (apart
// from their generation id).
func Pack(store *Store) *scene.Buffers {
	out := &scene.Buffers{
		Generation:    uuid.New(),
		Instances:     make([]scene.Instance, len(store.Instances)),
		InstanceCount: uint32(len(store.Instances)),
		BvhNodes:      make([]scene.BvhNode, len(store.Nodes)),
		VertexList:    make([]types.Vec4, 3*len(store.Triangles)),
		NormalList:    make([]types.Vec4, 3*len(store.Triangles)),
		UvList:        make([]types.Vec2, 3*len(store.Triangles)),
		Materials:     make([]scene.Material, len(store.Materials)),
	}

	for index, rec := range store.Instances {
		objectIndex, placed := rec.Slot.ObjectIndex()
		if !placed {
			panic("compiler: template prototype found in the scene instance list")
		}

		out.Instances[index] = scene.Instance{
			Min:              rec.Box.Min,
			Max:              rec.Box.Max,
			ObjectIndex:      objectIndex,
			LeftChild:        rec.LeftChild,
			RightChild:       rec.RightChild,
			TriangleStart:    rec.TriangleStart,
			TriangleCount:    rec.TriangleCount,
			MaterialIndex:    rec.MaterialIndex,
			InverseTransform: rec.Transform.Inv(),
		}
	}

	copy(out.BvhNodes, store.Nodes)
	copy(out.Materials, store.Materials)

	// Convert Vec3 to Vec4 which is required for proper alignment inside gpu buffers
	for triIndex := range store.Triangles {
		tri := &store.Triangles[triIndex]
		for v := 0; v < 3; v++ {
			out.VertexList[3*triIndex+v] = tri.Vertices[v].Vec4(0)
			out.NormalList[3*triIndex+v] = tri.Normals[v].Vec4(0)
			out.UvList[3*triIndex+v] = tri.UVs[v]
		}
	}

	return out
}
