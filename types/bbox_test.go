package types

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestLongestAxis(t *testing.T) {
	type spec struct {
		box     BBox
		expAxis Axis
	}

	specs := []spec{
		{BBox{Vec3{0, 0, 0}, Vec3{3, 1, 1}}, XAxis},
		{BBox{Vec3{0, 0, 0}, Vec3{1, 3, 1}}, YAxis},
		{BBox{Vec3{0, 0, 0}, Vec3{1, 1, 3}}, ZAxis},
		// Ties favor the earlier axis
		{BBox{Vec3{0, 0, 0}, Vec3{2, 2, 2}}, XAxis},
		{BBox{Vec3{0, 0, 0}, Vec3{1, 2, 2}}, YAxis},
		{BBox{Vec3{-1, -5, 0}, Vec3{1, -3, 1}}, XAxis},
	}

	for index, s := range specs {
		if got := s.box.LongestAxis(); got != s.expAxis {
			t.Fatalf("[spec %d] expected longest axis to be %s; got %s", index, s.expAxis, got)
		}
	}
}

func TestGrow(t *testing.T) {
	box := EmptyBBox()
	if !box.IsEmpty() {
		t.Fatal("expected seed box to be empty")
	}

	box.Grow(Vec3{1, 2, 3})
	if box.Min != (Vec3{1, 2, 3}) || box.Max != (Vec3{1, 2, 3}) {
		t.Fatalf("expected box to collapse onto the first point; got %v", box)
	}

	box.Grow(Vec3{-1, 5, 0})
	expBox := BBox{Vec3{-1, 2, 0}, Vec3{1, 5, 3}}
	if box != expBox {
		t.Fatalf("expected box to be %v; got %v", expBox, box)
	}
}

func TestArea(t *testing.T) {
	box := BBox{Vec3{0, 0, 0}, Vec3{1, 2, 3}}
	var expArea float32 = 2 * (1*2 + 2*3 + 3*1)
	if got := box.Area(); got != expArea {
		t.Fatalf("expected area to be %f; got %f", expArea, got)
	}

	if got := EmptyBBox().Area(); got != 0 {
		t.Fatalf("expected empty box area to be 0; got %f", got)
	}
}

func TestContains(t *testing.T) {
	outer := BBox{Vec3{-1, -1, -1}, Vec3{1, 1, 1}}
	if !outer.Contains(outer) {
		t.Fatal("expected box to contain itself")
	}
	if !outer.Contains(BBox{Vec3{0, 0, 0}, Vec3{0.5, 1, 0.5}}) {
		t.Fatal("expected box to contain inner box")
	}
	if outer.Contains(BBox{Vec3{0, 0, 0}, Vec3{0.5, 1.01, 0.5}}) {
		t.Fatal("expected box not to contain overlapping box")
	}
}

func TestPadZeroExtent(t *testing.T) {
	flat := BBox{Vec3{-1, 0, -1}, Vec3{1, 0, 1}}
	padded := flat.PadZeroExtent(1)

	expBox := BBox{Vec3{-1, -1, -1}, Vec3{1, 1, 1}}
	if padded != expBox {
		t.Fatalf("expected padded box to be %v; got %v", expBox, padded)
	}
}

func TestTransformIdentity(t *testing.T) {
	box := BBox{Vec3{-0.5, -1, 2}, Vec3{0.5, 3, 4}}
	out := box.Transform(Ident4())
	if !out.ApproxEqual(box, 1e-6) {
		t.Fatalf("expected identity transform to preserve box %v; got %v", box, out)
	}
}

func TestTransformCoversRotatedCorners(t *testing.T) {
	box := BBox{Vec3{-1, -1, -1}, Vec3{1, 1, 1}}
	out := box.Transform(Transform4(Vec3{}, Vec3{0, 0, 45}, Vec3{1, 1, 1}))

	sqrt2 := math32.Sqrt(2)
	expBox := BBox{Vec3{-sqrt2, -sqrt2, -1}, Vec3{sqrt2, sqrt2, 1}}
	if !out.ApproxEqual(expBox, 1e-5) {
		t.Fatalf("expected rotated box to be %v; got %v", expBox, out)
	}

	// Transforming only min/max would under-cover the rotated box
	naive := BBox{}
	naive.Min = Transform4(Vec3{}, Vec3{0, 0, 45}, Vec3{1, 1, 1}).MulPoint(box.Min)
	naive.Max = Transform4(Vec3{}, Vec3{0, 0, 45}, Vec3{1, 1, 1}).MulPoint(box.Max)
	if out.ApproxEqual(BBox{MinVec3(naive.Min, naive.Max), MaxVec3(naive.Min, naive.Max)}, 1e-5) {
		t.Fatal("expected 8-corner transform to differ from min/max transform")
	}
}
