package types

import "testing"

func TestNormalize(t *testing.T) {
	type spec struct {
		in  Vec3
		exp Vec3
	}
	specs := []spec{
		{Vec3{3, 0, 4}, Vec3{0.6, 0, 0.8}},
		{Vec3{0, -2, 0}, Vec3{0, -1, 0}},
		{Vec3{}, Vec3{}},
	}

	for index, s := range specs {
		if got := s.in.Normalize(); !got.ApproxEqual(s.exp, 1e-6) {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
	}
}

func TestCrossAndDot(t *testing.T) {
	x, y := Vec3{1, 0, 0}, Vec3{0, 1, 0}
	if got := x.Cross(y); got != (Vec3{0, 0, 1}) {
		t.Fatalf("expected x cross y to be +z; got %v", got)
	}
	if got := x.Dot(y); got != 0 {
		t.Fatalf("expected orthogonal vectors to have a zero dot product; got %f", got)
	}
	if got := (Vec3{1, 2, 3}).Dot(Vec3{4, 5, 6}); got != 32 {
		t.Fatalf("expected dot product 32; got %f", got)
	}
}

func TestMinMaxVec3(t *testing.T) {
	a, b := Vec3{1, 5, -3}, Vec3{2, -1, 0}
	if got := MinVec3(a, b); got != (Vec3{1, -1, -3}) {
		t.Fatalf("expected componentwise min (1, -1, -3); got %v", got)
	}
	if got := MaxVec3(a, b); got != (Vec3{2, 5, 0}) {
		t.Fatalf("expected componentwise max (2, 5, 0); got %v", got)
	}
}
