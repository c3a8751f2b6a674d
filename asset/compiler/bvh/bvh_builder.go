package bvh

import (
	"fmt"
	"time"

	"github.com/achilleasa/hybris/asset/compiler/input"
	"github.com/achilleasa/hybris/asset/scene"
	"github.com/achilleasa/hybris/log"
	"github.com/achilleasa/hybris/types"
)

// Ranges with this many triangles or less always become leafs.
const maxLeafTriangles = 2

// A SplitStrategy decides how a node's triangle range is partitioned.
type SplitStrategy interface {
	// Reorder tris in place so the first leftCount entries belong to the
	// left child. Returning ok = false keeps the node as a leaf.
	Partition(tris []input.Triangle, bbox types.BBox) (leftCount int, ok bool)
}

// Build statistics.
type Stats struct {
	Nodes       int
	Leafs       int
	MaxDepth    int
	MaxLeafSize int
}

// A BVH for a single model. The root node is kept separately from the node
// list; its child indices (and all indices stored in Nodes) are local
// offsets into Nodes.
type Tree struct {
	Root  scene.BvhNode
	Nodes []scene.BvhNode
	Stats Stats
}

type builder struct {
	tris     []input.Triangle
	nodes    []scene.BvhNode
	strategy SplitStrategy
	stats    Stats
}

// Construct a BVH over tris which are physically reordered so that each node
// references a contiguous sub-range. The root node is bounded by rootBBox;
// child node bounds are calculated from the actual triangle vertices.
//
// Child nodes are appended in pairs and their indices are the node list length
// at the time of insertion; the left subtree is fully built before the right one.
func Build(tris []input.Triangle, rootBBox types.BBox, strategy SplitStrategy) *Tree {
	logger := log.New("bvh builder")
	b := &builder{
		tris:     tris,
		nodes:    make([]scene.BvhNode, 0, 2*len(tris)),
		strategy: strategy,
	}

	start := time.Now()
	root := b.partition(scene.NewLeaf(rootBBox, 0, uint32(len(tris))), 0)
	logger.Debugf(
		"BVH tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		b.stats.MaxDepth, b.stats.Nodes, b.stats.Leafs,
	)

	return &Tree{
		Root:  root,
		Nodes: b.nodes,
		Stats: b.stats,
	}
}

// Partition the triangle range referenced by node and return the node with
// its child indices populated.
func (b *builder) partition(node scene.BvhNode, depth int) scene.BvhNode {
	b.stats.Nodes++
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}

	first, count := int(node.TriangleStart), int(node.TriangleCount)
	if count <= maxLeafTriangles {
		return b.createLeaf(node)
	}

	leftCount, ok := b.strategy.Partition(b.tris[first:first+count], node.BBox())
	if !ok {
		return b.createLeaf(node)
	}
	if leftCount < 0 || leftCount > count {
		panic(fmt.Sprintf("bvh: split strategy returned left count %d for a range of %d triangles", leftCount, count))
	}

	// All centroids ended up on the same side; splitting would recurse forever
	if leftCount == 0 || leftCount == count {
		return b.createLeaf(node)
	}

	left := scene.NewLeaf(b.rangeBBox(first, leftCount), uint32(first), uint32(leftCount))
	right := scene.NewLeaf(b.rangeBBox(first+leftCount, count-leftCount), uint32(first+leftCount), uint32(count-leftCount))

	leftIndex := int32(len(b.nodes))
	b.nodes = append(b.nodes, left, right)
	node.SetChildNodes(leftIndex, leftIndex+1)

	// The recursive calls may grow (and reallocate) the node list so the
	// results must be stored after each call returns.
	left = b.partition(left, depth+1)
	b.nodes[leftIndex] = left
	right = b.partition(right, depth+1)
	b.nodes[leftIndex+1] = right

	return node
}

func (b *builder) createLeaf(node scene.BvhNode) scene.BvhNode {
	node.SetChildNodes(-1, -1)
	b.stats.Leafs++
	if int(node.TriangleCount) > b.stats.MaxLeafSize {
		b.stats.MaxLeafSize = int(node.TriangleCount)
	}
	return node
}

// Calculate the bounds of a triangle range from its vertices.
func (b *builder) rangeBBox(first, count int) types.BBox {
	return trianglesBBox(b.tris[first : first+count])
}

func trianglesBBox(tris []input.Triangle) types.BBox {
	box := types.EmptyBBox()
	for i := range tris {
		tris[i].GrowBBox(&box)
	}
	return box
}

// Reorder tris so that triangles whose centroid lies below splitPoint along
// axis come first. Returns the number of such triangles.
func partitionByCentroid(tris []input.Triangle, axis types.Axis, splitPoint float32) int {
	i, j := 0, len(tris)-1
	for i <= j {
		if tris[i].Center()[axis] < splitPoint {
			i++
		} else {
			tris[i], tris[j] = tris[j], tris[i]
			j--
		}
	}
	return i
}
