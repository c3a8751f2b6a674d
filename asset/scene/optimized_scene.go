package scene

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/achilleasa/hybris/types"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
)

// Bvh nodes reference a contiguous range of triangles. Interior nodes point to
// their L/R child nodes; leaf nodes set both child indices to -1 and the
// triangle range holds the primitives that must be tested by the tracer.
// Interior nodes still record the (larger) range covered by their subtree.
type BvhNode struct {
	Min       types.Vec3
	LeftChild int32

	Max        types.Vec3
	RightChild int32

	TriangleStart uint32
	TriangleCount uint32
	_             [2]uint32
}

// Create a leaf node for a triangle range.
func NewLeaf(bbox types.BBox, start, count uint32) BvhNode {
	return BvhNode{
		Min:           bbox.Min,
		Max:           bbox.Max,
		LeftChild:     -1,
		RightChild:    -1,
		TriangleStart: start,
		TriangleCount: count,
	}
}

// Returns true if this is a leaf node.
func (n *BvhNode) IsLeaf() bool {
	return n.LeftChild < 0 && n.RightChild < 0
}

// Get bounding box.
func (n *BvhNode) BBox() types.BBox {
	return types.BBox{Min: n.Min, Max: n.Max}
}

// Set bounding box.
func (n *BvhNode) SetBBox(bbox types.BBox) {
	n.Min = bbox.Min
	n.Max = bbox.Max
}

// Set left and right child node indices.
func (n *BvhNode) SetChildNodes(left, right int32) {
	n.LeftChild = left
	n.RightChild = right
}

// Add offsets to the child node indices and the triangle range. Leaf child
// indices are left untouched.
func (n *BvhNode) OffsetIndices(nodeOffset int32, triangleOffset uint32) {
	n.TriangleStart += triangleOffset
	if n.IsLeaf() {
		return
	}

	n.LeftChild += nodeOffset
	n.RightChild += nodeOffset
}

// An Instance positions a model inside the scene. The tracer scans the
// instance list linearly; each entry's child indices point to the root
// children of the model BVH which are shared by all instances of the same model.
type Instance struct {
	// World-space bounds.
	Min         types.Vec3
	ObjectIndex uint32

	Max       types.Vec3
	LeftChild int32

	RightChild int32

	// Full triangle range of the model; used when the model root is a leaf.
	TriangleStart uint32
	TriangleCount uint32

	MaterialIndex uint32

	// World to object space transformation.
	InverseTransform types.Mat4
}

// Surface material parameters.
type Material struct {
	Albedo     types.Vec3
	Smoothness float32

	Emission        float32
	RefractiveIndex float32
	_               [2]float32

	Absorption types.Vec3
	_          float32
}

// The packed buffer set consumed by the tracer.
type Buffers struct {
	// A unique id assigned each time the buffers are packed.
	Generation uuid.UUID

	Instances     []Instance
	InstanceCount uint32

	BvhNodes []BvhNode

	// Triangle attributes; 3 consecutive entries per triangle.
	VertexList []types.Vec4
	NormalList []types.Vec4
	UvList     []types.Vec2

	Materials []Material
}

// Get the number of packed triangles.
func (b *Buffers) TriangleCount() int {
	return len(b.VertexList) / 3
}

// Build a tabular representation of buffer statistics.
func (b *Buffers) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Buffer", "Entries", "Size"})
	table.Append([]string{"Instances", fmt.Sprint(len(b.Instances)), fmtSize(b.Instances)})
	table.Append([]string{"BVH nodes", fmt.Sprint(len(b.BvhNodes)), fmtSize(b.BvhNodes)})
	table.Append([]string{"Vertices", fmt.Sprint(len(b.VertexList)), fmtSize(b.VertexList)})
	table.Append([]string{"Normals", fmt.Sprint(len(b.NormalList)), fmtSize(b.NormalList)})
	table.Append([]string{"UVs", fmt.Sprint(len(b.UvList)), fmtSize(b.UvList)})
	table.Append([]string{"Materials", fmt.Sprint(len(b.Materials)), fmtSize(b.Materials)})
	table.SetFooter([]string{"Total", fmt.Sprintf("%d tris", b.TriangleCount()), strings.TrimLeft(fmtSize(b.Instances, b.BvhNodes, b.VertexList, b.NormalList, b.UvList, b.Materials), " ")})

	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32 = 0.0
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
