package scene

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/achilleasa/hybris/types"
)

func TestElementSizes(t *testing.T) {
	type spec struct {
		name    string
		value   interface{}
		expSize int
	}

	specs := []spec{
		{"BvhNode", BvhNode{}, SizeofBvhNode},
		{"Instance", Instance{}, SizeofInstance},
		{"Material", Material{}, SizeofMaterial},
		{"Vec4", types.Vec4{}, SizeofVec4},
		{"Vec2", types.Vec2{}, SizeofVec2},
	}

	for _, s := range specs {
		if got := binary.Size(s.value); got != s.expSize {
			t.Fatalf("expected packed %s size to be %d; got %d", s.name, s.expSize, got)
		}
	}
}

func TestEncodeBvhNode(t *testing.T) {
	node := NewLeaf(types.BBox{Min: types.Vec3{-1, -2, -3}, Max: types.Vec3{1, 2, 3}}, 7, 2)
	b := &Buffers{BvhNodes: []BvhNode{node, node}}

	enc, err := b.Encode()
	if err != nil {
		t.Fatal(err)
	}

	if len(enc.BvhNodes) != 2*SizeofBvhNode {
		t.Fatalf("expected encoded node buffer to be %d bytes; got %d", 2*SizeofBvhNode, len(enc.BvhNodes))
	}

	data := enc.BvhNodes[SizeofBvhNode:]
	if got := math.Float32frombits(binary.LittleEndian.Uint32(data[4:8])); got != -2 {
		t.Fatalf("expected min.y to be -2; got %f", got)
	}
	if got := int32(binary.LittleEndian.Uint32(data[12:16])); got != -1 {
		t.Fatalf("expected left child to be -1; got %d", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(data[24:28])); got != 3 {
		t.Fatalf("expected max.z to be 3; got %f", got)
	}
	if got := binary.LittleEndian.Uint32(data[32:36]); got != 7 {
		t.Fatalf("expected triangle start to be 7; got %d", got)
	}
	if got := binary.LittleEndian.Uint32(data[36:40]); got != 2 {
		t.Fatalf("expected triangle count to be 2; got %d", got)
	}
}

func TestEncodeEmptyBuffers(t *testing.T) {
	enc, err := (&Buffers{}).Encode()
	if err != nil {
		t.Fatal(err)
	}
	if enc.Len() != 0 {
		t.Fatalf("expected empty buffers to encode to 0 bytes; got %d", enc.Len())
	}
}

func TestOffsetIndices(t *testing.T) {
	leaf := NewLeaf(types.BBox{}, 2, 1)
	leaf.OffsetIndices(10, 100)
	if leaf.LeftChild != -1 || leaf.RightChild != -1 || leaf.TriangleStart != 102 {
		t.Fatalf("expected leaf to keep -1 children and shift its triangle start; got %+v", leaf)
	}

	interior := NewLeaf(types.BBox{}, 0, 4)
	interior.SetChildNodes(0, 1)
	interior.OffsetIndices(10, 100)
	if interior.LeftChild != 10 || interior.RightChild != 11 || interior.TriangleStart != 100 {
		t.Fatalf("expected interior node indices to be shifted; got %+v", interior)
	}
}

func TestStats(t *testing.T) {
	b := &Buffers{
		Instances:  make([]Instance, 2),
		BvhNodes:   make([]BvhNode, 4),
		VertexList: make([]types.Vec4, 6),
	}

	if b.TriangleCount() != 2 {
		t.Fatalf("expected triangle count to be 2; got %d", b.TriangleCount())
	}
	if out := b.Stats(); len(out) == 0 {
		t.Fatal("expected non-empty stats table")
	}
}
