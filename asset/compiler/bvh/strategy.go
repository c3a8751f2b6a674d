package bvh

import (
	"errors"
	"sort"

	"github.com/achilleasa/hybris/asset/compiler/input"
	"github.com/achilleasa/hybris/types"
)

var (
	// Split at the midpoint of the node bbox along its longest axis.
	MedianSplit SplitStrategy = medianSplit{}

	// Split at the triangle centroid that minimizes the surface area heuristic.
	SurfaceAreaHeuristic SplitStrategy = surfaceAreaHeuristic{}

	ErrUnknownStrategy = errors.New("bvh: unknown split strategy")
)

// Lookup a split strategy by name ("median" or "sah"). An empty name selects
// the median split.
func StrategyByName(name string) (SplitStrategy, error) {
	switch name {
	case "", "median":
		return MedianSplit, nil
	case "sah":
		return SurfaceAreaHeuristic, nil
	}
	return nil, ErrUnknownStrategy
}

type medianSplit struct{}

// Partition tris by comparing their centroids against the bbox midpoint on
// the longest bbox axis. The midpoint of the bbox is used instead of the
// median centroid so no sorting is required.
func (medianSplit) Partition(tris []input.Triangle, bbox types.BBox) (int, bool) {
	axis := bbox.LongestAxis()
	splitPoint := (bbox.Min[axis] + bbox.Max[axis]) * 0.5
	return partitionByCentroid(tris, axis, splitPoint), true
}

func (medianSplit) String() string {
	return "median"
}

type surfaceAreaHeuristic struct{}

// Evaluate a split candidate at every distinct triangle centroid along each
// axis and pick the one with the lowest cost (lower is better):
//
// left count * left BBOX area + right count * right BBOX area
//
// The best candidate must beat the cost of not splitting at all
// (count * node BBOX area); otherwise the node becomes a leaf.
func (surfaceAreaHeuristic) Partition(tris []input.Triangle, bbox types.BBox) (int, bool) {
	count := len(tris)
	bestCost := float32(count) * bbox.Area()
	bestAxis := types.XAxis
	var bestSplitPoint float32
	found := false

	order := make([]int, count)
	rightBBoxes := make([]types.BBox, count+1)
	for axis := types.XAxis; axis <= types.ZAxis; axis++ {
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			return tris[order[a]].Center()[axis] < tris[order[b]].Center()[axis]
		})

		// rightBBoxes[k] bounds the triangles order[k:]
		rightBBoxes[count] = types.EmptyBBox()
		for k := count - 1; k >= 0; k-- {
			rightBBoxes[k] = rightBBoxes[k+1]
			tris[order[k]].GrowBBox(&rightBBoxes[k])
		}

		// A candidate at centroid c sends every triangle with a centroid < c
		// to the left; only the first of a run of equal centroids yields a
		// distinct split.
		leftBBox := types.EmptyBBox()
		for k := 1; k < count; k++ {
			tris[order[k-1]].GrowBBox(&leftBBox)
			splitPoint := tris[order[k]].Center()[axis]
			if splitPoint == tris[order[k-1]].Center()[axis] {
				continue
			}

			cost := float32(k)*leftBBox.Area() + float32(count-k)*rightBBoxes[k].Area()
			if cost < bestCost {
				bestCost = cost
				bestAxis = axis
				bestSplitPoint = splitPoint
				found = true
			}
		}
	}

	if !found {
		return 0, false
	}

	return partitionByCentroid(tris, bestAxis, bestSplitPoint), true
}

func (surfaceAreaHeuristic) String() string {
	return "sah"
}
