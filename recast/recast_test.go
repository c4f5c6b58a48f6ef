package recast

import "testing"

func TestiMin(t *testing.T) {
	ttable := []struct {
		a, b, res int32
	}{
		{1, 2, 1},
		{2, 1, 1},
		{1, 1, 1},
	}

	for _, tt := range ttable {
		got := iMin(tt.a, tt.b)
		if got != tt.res {
			t.Fatalf("iMin(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.res)
		}
	}
}

func TestiMax(t *testing.T) {
	ttable := []struct {
		a, b, res int32
	}{
		{1, 2, 2},
		{2, 1, 2},
		{1, 1, 1},
	}

	for _, tt := range ttable {
		got := iMax(tt.a, tt.b)
		if got != tt.res {
			t.Fatalf("iMax(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.res)
		}
	}
}

func TestiAbs(t *testing.T) {
	ttable := []struct {
		a, res int32
	}{
		{-1, 1},
		{1, 1},
		{0, 0},
	}

	for _, tt := range ttable {
		got := iAbs(tt.a)
		if got != tt.res {
			t.Fatalf("iAbs(%v) = %v, want %v", tt.a, got, tt.res)
		}
	}
}

func TestCalcBounds(t *testing.T) {
	verts := []float32{
		1, 2, 3,
		0, 2, 6,
	}
	bmin, bmax := CalcBounds(verts, 2)

	want := [3]float32{0, 2, 3}
	if bmin != want {
		t.Fatalf("bmin = %v, want %v", bmin, want)
	}
	want = [3]float32{1, 2, 6}
	if bmax != want {
		t.Fatalf("bmax = %v, want %v", bmax, want)
	}
}

func TestCalcGridSize(t *testing.T) {
	bmin, bmax := CalcBounds([]float32{1, 2, 3, 0, 2, 6}, 2)
	cellSize := float32(1.5)

	w, h := CalcGridSize(bmin, bmax, cellSize)
	if w != 1 {
		t.Fatalf("width should be 1, got %v", w)
	}
	if h != 2 {
		t.Fatalf("height should be 2, got %v", h)
	}
}

func TestMarkWalkableTriangles(t *testing.T) {
	walkableSlopeAngle := float32(45)
	verts := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 0, -1,
	}
	walkableTri := []int32{0, 1, 2}
	unwalkableTri := []int32{0, 2, 1}
	nt := int32(1)
	areas := []uint8{NullArea}

	t.Run("one walkable triangle", func(t *testing.T) {
		areas[0] = NullArea
		MarkWalkableTriangles(walkableSlopeAngle, verts, walkableTri, nt, areas)
		if areas[0] != WalkableArea {
			t.Fatalf("areas[0] should be WalkableArea, got %v", areas[0])
		}
	})

	t.Run("one non-walkable triangle", func(t *testing.T) {
		areas[0] = NullArea
		MarkWalkableTriangles(walkableSlopeAngle, verts, unwalkableTri, nt, areas)
		if areas[0] != NullArea {
			t.Fatalf("areas[0] should be NullArea, got %v", areas[0])
		}
	})

	t.Run("non-walkable triangle area ids are not modified", func(t *testing.T) {
		areas[0] = 42
		MarkWalkableTriangles(walkableSlopeAngle, verts, unwalkableTri, nt, areas)
		if areas[0] != 42 {
			t.Fatalf("areas[0] should be untouched at 42, got %v", areas[0])
		}
	})

	t.Run("slopes equal to the max slope are unwalkable", func(t *testing.T) {
		areas[0] = NullArea
		MarkWalkableTriangles(0, verts, walkableTri, nt, areas)
		if areas[0] != NullArea {
			t.Fatalf("areas[0] should be NullArea, got %v", areas[0])
		}
	})
}

func TestClearUnwalkableTriangles(t *testing.T) {
	walkableSlopeAngle := float32(45)
	verts := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 0, -1,
	}
	unwalkableTri := []int32{0, 2, 1}
	areas := []uint8{WalkableArea}

	ClearUnwalkableTriangles(walkableSlopeAngle, verts, unwalkableTri, 1, areas)
	if areas[0] != NullArea {
		t.Fatalf("areas[0] should have been cleared to NullArea, got %v", areas[0])
	}
}

func TestGetSetCon(t *testing.T) {
	var s CompactSpan
	for dir := int32(0); dir < 4; dir++ {
		SetCon(&s, dir, int32(dir+1))
	}
	for dir := int32(0); dir < 4; dir++ {
		if got := GetCon(&s, dir); got != int32(dir+1) {
			t.Fatalf("GetCon(dir=%d) = %d, want %d", dir, got, dir+1)
		}
	}
}

func TestGetDirForOffset(t *testing.T) {
	for dir := int32(0); dir < 4; dir++ {
		x := GetDirOffsetX(dir)
		y := GetDirOffsetY(dir)
		if got := GetDirForOffset(x, y); got != dir {
			t.Fatalf("GetDirForOffset(%d, %d) = %d, want %d", x, y, got, dir)
		}
	}
}
