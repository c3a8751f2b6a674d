package bvh

import (
	"fmt"

	"github.com/achilleasa/hybris/asset/compiler/input"
	"github.com/achilleasa/hybris/asset/scene"
)

// Verify the structural invariants of the tree against the (reordered)
// triangle list it was built from.
func (t *Tree) Validate(tris []input.Triangle) error {
	visited, err := Validate(t.Root, t.Nodes, tris)
	if err != nil {
		return err
	}
	if visited != len(t.Nodes) {
		return fmt.Errorf("bvh: %d of %d nodes are unreachable from the root", len(t.Nodes)-visited, len(t.Nodes))
	}
	return nil
}

// Walk the hierarchy below root and verify that:
//   - each node is either a leaf (no children, non-empty range) or an interior
//     node whose children are stored as an adjacent pair
//   - the children of a node split its triangle range into two contiguous parts
//   - node bounds contain the bounds of their children and leaf bounds
//     contain the vertices of their triangles
//   - every triangle in the root range is referenced by exactly one leaf.
//
// Indices stored in root and nodes must be absolute offsets into nodes and
// tris. Validate returns the number of visited nodes (excluding root).
func Validate(root scene.BvhNode, nodes []scene.BvhNode, tris []input.Triangle) (int, error) {
	rootEnd := int(root.TriangleStart) + int(root.TriangleCount)
	if root.TriangleCount == 0 || rootEnd > len(tris) {
		return 0, fmt.Errorf("bvh: root range [%d, %d) is invalid for %d triangles", root.TriangleStart, rootEnd, len(tris))
	}

	v := &validator{
		nodes:       nodes,
		tris:        tris,
		seenNodes:   make(map[int32]bool),
		coveredTris: make([]bool, len(tris)),
	}
	if err := v.visit(root, "root"); err != nil {
		return 0, err
	}

	for i := int(root.TriangleStart); i < rootEnd; i++ {
		if !v.coveredTris[i] {
			return 0, fmt.Errorf("bvh: triangle %d is not referenced by any leaf", i)
		}
	}

	return len(v.seenNodes), nil
}

type validator struct {
	nodes       []scene.BvhNode
	tris        []input.Triangle
	seenNodes   map[int32]bool
	coveredTris []bool
}

func (v *validator) visit(node scene.BvhNode, name string) error {
	first, count := int(node.TriangleStart), int(node.TriangleCount)
	if count == 0 || first+count > len(v.tris) {
		return fmt.Errorf("bvh: node %s has invalid triangle range [%d, %d)", name, first, first+count)
	}

	if node.IsLeaf() {
		bbox := node.BBox()
		for i := first; i < first+count; i++ {
			if v.coveredTris[i] {
				return fmt.Errorf("bvh: triangle %d is referenced by more than one leaf", i)
			}
			v.coveredTris[i] = true

			if !bbox.Contains(v.tris[i].BBox()) {
				return fmt.Errorf("bvh: leaf %s bounds %v do not contain triangle %d", name, bbox, i)
			}
		}
		return nil
	}

	if node.LeftChild < 0 || node.RightChild < 0 {
		return fmt.Errorf("bvh: node %s has a single child (%d, %d)", name, node.LeftChild, node.RightChild)
	}
	if node.RightChild != node.LeftChild+1 || int(node.RightChild) >= len(v.nodes) {
		return fmt.Errorf("bvh: node %s has invalid child indices (%d, %d)", name, node.LeftChild, node.RightChild)
	}

	left, right := v.nodes[node.LeftChild], v.nodes[node.RightChild]
	if int(left.TriangleStart) != first ||
		int(right.TriangleStart) != first+int(left.TriangleCount) ||
		left.TriangleCount+right.TriangleCount != node.TriangleCount {
		return fmt.Errorf("bvh: children of node %s do not partition its range [%d, %d)", name, first, first+count)
	}

	for _, childIndex := range []int32{node.LeftChild, node.RightChild} {
		if v.seenNodes[childIndex] {
			return fmt.Errorf("bvh: node %d is referenced more than once", childIndex)
		}
		v.seenNodes[childIndex] = true

		child := v.nodes[childIndex]
		if !node.BBox().Contains(child.BBox()) {
			return fmt.Errorf("bvh: node %s bounds %v do not contain child %d bounds %v", name, node.BBox(), childIndex, child.BBox())
		}
		if err := v.visit(child, fmt.Sprint(childIndex)); err != nil {
			return err
		}
	}

	return nil
}
