package types

import (
	"fmt"
	"math"
)

type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

func (a Axis) String() string {
	switch a {
	case XAxis:
		return "x"
	case YAxis:
		return "y"
	case ZAxis:
		return "z"
	}
	return "invalid"
}

// An axis-aligned bounding box.
type BBox struct {
	Min Vec3
	Max Vec3
}

// Create an inverted box that any call to Grow will collapse onto the grown point.
func EmptyBBox() BBox {
	return BBox{
		Min: Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Returns true if Min exceeds Max along any axis.
func (b BBox) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extend the box so it includes point p.
func (b *BBox) Grow(p Vec3) {
	b.Min = MinVec3(b.Min, p)
	b.Max = MaxVec3(b.Max, p)
}

// Return the smallest box enclosing both b and other.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		Min: MinVec3(b.Min, other.Min),
		Max: MaxVec3(b.Max, other.Max),
	}
}

// Get the box side lengths.
func (b BBox) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}

// Get the box center.
func (b BBox) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Select the axis with the largest extent. Ties resolve to the lower axis.
func (b BBox) LongestAxis() Axis {
	e := b.Extent()
	axis := XAxis
	if e[1] > e[axis] {
		axis = YAxis
	}
	if e[2] > e[axis] {
		axis = ZAxis
	}
	return axis
}

// Get the box surface area. Empty boxes have zero area.
func (b BBox) Area() float32 {
	if b.IsEmpty() {
		return 0
	}
	e := b.Extent()
	return 2 * (e[0]*e[1] + e[1]*e[2] + e[2]*e[0])
}

// Returns true if other lies entirely inside b (boundaries included).
func (b BBox) Contains(other BBox) bool {
	for i := 0; i < 3; i++ {
		if other.Min[i] < b.Min[i] || other.Max[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Expand every axis with zero extent by amount on both sides.
func (b BBox) PadZeroExtent(amount float32) BBox {
	e := b.Extent()
	for i := 0; i < 3; i++ {
		if e[i] == 0 {
			b.Min[i] -= amount
			b.Max[i] += amount
		}
	}
	return b
}

// Enumerate the 8 box corners.
func (b BBox) Corners() [8]Vec3 {
	var corners [8]Vec3
	for i := 0; i < 8; i++ {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<uint(axis)) == 0 {
				corners[i][axis] = b.Min[axis]
			} else {
				corners[i][axis] = b.Max[axis]
			}
		}
	}
	return corners
}

// Transform all 8 corners by m and return the box enclosing them.
func (b BBox) Transform(m Mat4) BBox {
	out := EmptyBBox()
	for _, c := range b.Corners() {
		out.Grow(m.MulPoint(c))
	}
	return out
}

// Check whether two boxes are equal within eps.
func (b BBox) ApproxEqual(other BBox, eps float32) bool {
	return b.Min.ApproxEqual(other.Min, eps) && b.Max.ApproxEqual(other.Max, eps)
}

func (b BBox) String() string {
	return fmt.Sprintf("[%v - %v]", b.Min, b.Max)
}
