package compiler

import (
	"fmt"

	"github.com/achilleasa/hybris/asset/scene"
	"github.com/achilleasa/hybris/types"
)

// An ObjectSlot identifies what an instance record stands for: the
// object-space prototype of a model template or a placed scene object.
type ObjectSlot struct {
	placed bool
	index  uint32
}

// The slot of a template prototype.
func TemplateSlot() ObjectSlot {
	return ObjectSlot{}
}

// The slot of the scene object with the given index.
func PlacedSlot(objectIndex uint32) ObjectSlot {
	return ObjectSlot{placed: true, index: objectIndex}
}

func (s ObjectSlot) IsTemplate() bool {
	return !s.placed
}

// Get the scene object index. The second return value is false for
// template slots.
func (s ObjectSlot) ObjectIndex() (uint32, bool) {
	return s.index, s.placed
}

func (s ObjectSlot) String() string {
	if !s.placed {
		return "template"
	}
	return fmt.Sprintf("object %d", s.index)
}

// An InstanceRecord places the BVH of a model template in the scene. Child
// node indices and the triangle range are absolute and shared with every
// other record built from the same template.
type InstanceRecord struct {
	Box  types.BBox
	Slot ObjectSlot

	LeftChild  int32
	RightChild int32

	TriangleStart uint32
	TriangleCount uint32

	MaterialIndex uint32

	// Object to world transformation.
	Transform types.Mat4
}

// Returns true if the model root is a leaf and the record references the
// model triangles directly.
func (r *InstanceRecord) IsLeaf() bool {
	return r.LeftChild < 0 && r.RightChild < 0
}

// Get the record root as a BVH node.
func (r *InstanceRecord) RootNode() scene.BvhNode {
	node := scene.NewLeaf(r.Box, r.TriangleStart, r.TriangleCount)
	node.SetChildNodes(r.LeftChild, r.RightChild)
	return node
}

// The Assembler turns model templates into placed instance records.
type Assembler struct {
	store *Store
}

func NewAssembler(store *Store) *Assembler {
	return &Assembler{store: store}
}

// Place a copy of the template prototype in the scene, append it to the
// store instance list and return it. The world box is calculated by
// transforming the 8 corners of the template box. The template itself is
// never modified.
func (a *Assembler) Place(tpl *Template, transform types.Mat4, objectIndex, materialIndex uint32) InstanceRecord {
	rec := tpl.Prototype
	rec.Box = tpl.Prototype.Box.Transform(transform)
	rec.Slot = PlacedSlot(objectIndex)
	rec.MaterialIndex = materialIndex
	rec.Transform = transform

	a.store.Instances = append(a.store.Instances, rec)
	return rec
}
