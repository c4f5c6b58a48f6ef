package recast

import "testing"

func newTestHeightfield(t *testing.T, w, h int32) *Heightfield {
	t.Helper()
	hf := NewHeightfield()
	if !hf.Create(w, h, [3]float32{}, [3]float32{float32(w), 20, float32(h)}, 1, 1) {
		t.Fatalf("could not create heightfield")
	}
	return hf
}

func TestFilterWalkableLowHeightSpans(t *testing.T) {
	hf := newTestHeightfield(t, 1, 1)
	hf.addSpan(0, 0, 0, 2, WalkableArea, 1)
	hf.addSpan(0, 0, 3, 5, WalkableArea, 1) // only 1 cell of headroom above the first span

	ctx := NewContext(false)
	FilterWalkableLowHeightSpans(ctx, 3, hf)

	i := hf.ColumnHead(0, 0)
	s := hf.SpanAt(i)
	if s.Area != NullArea {
		t.Fatalf("span with insufficient headroom should be marked unwalkable")
	}
}

func TestFilterWalkableLowHeightSpansSufficientClearance(t *testing.T) {
	hf := newTestHeightfield(t, 1, 1)
	hf.addSpan(0, 0, 0, 2, WalkableArea, 1)
	hf.addSpan(0, 0, 10, 12, WalkableArea, 1) // 8 cells of headroom, plenty

	ctx := NewContext(false)
	FilterWalkableLowHeightSpans(ctx, 3, hf)

	i := hf.ColumnHead(0, 0)
	s := hf.SpanAt(i)
	if s.Area != WalkableArea {
		t.Fatalf("span with sufficient headroom should remain walkable")
	}
}

func TestFilterLowHangingWalkableObstacles(t *testing.T) {
	hf := newTestHeightfield(t, 1, 1)
	hf.addSpan(0, 0, 0, 2, WalkableArea, 1)
	hf.addSpan(0, 0, 3, 4, NullArea, 1) // a 1-cell curb just above the walkable span, within walkableClimb

	ctx := NewContext(false)
	FilterLowHangingWalkableObstacles(ctx, 2, hf)

	i := hf.ColumnHead(0, 0)
	n := hf.NextSpan(i)
	if n == nilSpan {
		t.Fatalf("expected two spans in the column")
	}
	if hf.SpanAt(n).Area != WalkableArea {
		t.Fatalf("a low obstacle within walkableClimb should inherit the walkable area below it")
	}
}
