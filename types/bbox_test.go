package types

import "testing"

func TestEmptyBBox(t *testing.T) {
	b := EmptyBBox()
	if !b.IsEmpty() {
		t.Fatal("expected empty bbox to report IsEmpty()")
	}
	if area := b.HalfArea(); area != 0 {
		t.Fatalf("expected empty bbox half area to be 0; got %f", area)
	}

	b.ExtendPoint(XYZ(1, 2, 3))
	if b.IsEmpty() {
		t.Fatal("expected bbox extended by a point not to be empty")
	}
	if b.Min != b.Max || b.Min != XYZ(1, 2, 3) {
		t.Fatalf("expected degenerate bbox at (1, 2, 3); got %v", b)
	}
}

func TestBBoxHalfArea(t *testing.T) {
	type spec struct {
		bbox    BBox
		expArea float32
	}

	specs := []spec{
		{BBox{XYZ(0, 0, 0), XYZ(1, 1, 1)}, 3},
		{BBox{XYZ(0, 0, 0), XYZ(2, 3, 4)}, 26},
		{BBox{XYZ(-1, -1, -1), XYZ(-1, -1, -1)}, 0},
		{BBox{XYZ(0, 0, 0), XYZ(5, 2, 0)}, 10},
	}

	for index, s := range specs {
		if area := s.bbox.HalfArea(); area != s.expArea {
			t.Fatalf("[spec %d] expected half area %f; got %f", index, s.expArea, area)
		}
	}
}

func TestBBoxUnionAndContains(t *testing.T) {
	a := BBox{XYZ(0, 0, 0), XYZ(1, 1, 1)}
	b := BBox{XYZ(2, -1, 0), XYZ(3, 0, 4)}

	u := a.Union(b)
	expBBox := BBox{XYZ(0, -1, 0), XYZ(3, 1, 4)}
	if u != expBBox {
		t.Fatalf("expected union to be %v; got %v", expBBox, u)
	}

	if !u.Contains(a) || !u.Contains(b) {
		t.Fatal("expected union to contain both boxes")
	}
	if a.Contains(b) {
		t.Fatal("expected a not to contain b")
	}
	if !a.Contains(EmptyBBox()) {
		t.Fatal("expected any box to contain the empty box")
	}

	if c := u.Center(); c != XYZ(1.5, 0, 2) {
		t.Fatalf("expected center (1.5, 0, 2); got %v", c)
	}
}

func TestBBoxFromPoints(t *testing.T) {
	b := BBoxFromPoints(XYZ(1, 5, -2), XYZ(-1, 0, 3), XYZ(0, 2, 0))
	expBBox := BBox{XYZ(-1, 0, -2), XYZ(1, 5, 3)}
	if b != expBBox {
		t.Fatalf("expected %v; got %v", expBBox, b)
	}
}
