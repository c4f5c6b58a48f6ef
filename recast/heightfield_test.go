package recast

import "testing"

func TestCreateHeightfield(t *testing.T) {
	bmin, bmax := CalcBounds([]float32{1, 2, 3, 0, 2, 6}, 2)
	cellSize := float32(1.5)
	cellHeight := float32(2)

	w, h := CalcGridSize(bmin, bmax, cellSize)

	hf := NewHeightfield()
	if !hf.Create(w, h, bmin, bmax, cellSize, cellHeight) {
		t.Fatalf("Create should return true")
	}

	if hf.Width != w || hf.Height != h {
		t.Fatalf("hf dims = (%d, %d), want (%d, %d)", hf.Width, hf.Height, w, h)
	}
	if hf.BMin != bmin || hf.BMax != bmax {
		t.Fatalf("hf bounds not stored as given")
	}
	if hf.Cs != cellSize || hf.Ch != cellHeight {
		t.Fatalf("hf cell size/height not stored as given")
	}
	if hf.ColumnHead(0, 0) != nilSpan {
		t.Fatalf("a freshly created heightfield should have empty columns")
	}
}

func TestCreateHeightfieldZeroSize(t *testing.T) {
	hf := NewHeightfield()
	if hf.Create(0, 0, [3]float32{}, [3]float32{}, 1, 1) {
		t.Fatalf("Create with zero width*height should fail")
	}
}

func TestAddSpanNonOverlapping(t *testing.T) {
	hf := NewHeightfield()
	hf.Create(1, 1, [3]float32{}, [3]float32{0, 10, 0}, 1, 1)

	hf.addSpan(0, 0, 5, 8, WalkableArea, 1)
	hf.addSpan(0, 0, 0, 2, WalkableArea, 1)

	i := hf.ColumnHead(0, 0)
	if i == nilSpan {
		t.Fatalf("column should not be empty")
	}
	s := hf.SpanAt(i)
	if s.Min != 0 || s.Max != 2 {
		t.Fatalf("bottom span should be [0,2), got [%d,%d)", s.Min, s.Max)
	}
	n := hf.NextSpan(i)
	if n == nilSpan {
		t.Fatalf("expected a second span stacked above the first")
	}
	s2 := hf.SpanAt(n)
	if s2.Min != 5 || s2.Max != 8 {
		t.Fatalf("top span should be [5,8), got [%d,%d)", s2.Min, s2.Max)
	}
}

func TestAddSpanMerge(t *testing.T) {
	hf := NewHeightfield()
	hf.Create(1, 1, [3]float32{}, [3]float32{0, 10, 0}, 1, 1)

	hf.addSpan(0, 0, 0, 4, NullArea, 1)
	hf.addSpan(0, 0, 3, 6, WalkableArea, 1)

	i := hf.ColumnHead(0, 0)
	s := hf.SpanAt(i)
	if s.Min != 0 || s.Max != 6 {
		t.Fatalf("overlapping spans should merge into [0,6), got [%d,%d)", s.Min, s.Max)
	}
	if hf.NextSpan(i) != nilSpan {
		t.Fatalf("expected exactly one span after merging")
	}
}
