package pdf

import "testing"

func gridBlock(text string, x0, y0, x1, y1, fontSize float64) TextBlock {
	return TextBlock{Text: text, BBox: Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}, FontSize: fontSize, Kind: BlockParagraph}
}

func TestGridBasedDetector_DetectsTwoByTwoGrid(t *testing.T) {
	blocks := []TextBlock{
		gridBlock("Name", 0, 100, 40, 112, 14),
		gridBlock("Age", 100, 100, 140, 112, 14),
		gridBlock("Alice", 0, 80, 40, 92, 10),
		gridBlock("30", 100, 80, 140, 92, 10),
	}

	tables, consumed := GridBasedDetector{}.Detect(blocks)
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}
	tbl := tables[0]
	if !tbl.HasHeader {
		t.Fatalf("expected HasHeader true (header row font size differs)")
	}
	if len(tbl.Rows) != 2 || len(tbl.Rows[0]) != 2 {
		t.Fatalf("rows = %+v, want 2x2", tbl.Rows)
	}
	if tbl.Rows[0][0] != "Name" || tbl.Rows[1][1] != "30" {
		t.Fatalf("rows = %+v, unexpected content", tbl.Rows)
	}
	for i, c := range consumed {
		if !c {
			t.Fatalf("block %d not marked consumed", i)
		}
	}
}

func TestGridBasedDetector_IgnoresNonGridBlocks(t *testing.T) {
	blocks := []TextBlock{
		gridBlock("Just a paragraph of prose.", 72, 700, 400, 714, 12),
	}
	tables, consumed := GridBasedDetector{}.Detect(blocks)
	if tables != nil {
		t.Fatalf("got %d tables, want 0", len(tables))
	}
	if consumed[0] {
		t.Fatalf("single block should not be consumed")
	}
}

func TestClusterCoords_GroupsNearbyValues(t *testing.T) {
	got := clusterCoords([]float64{10, 10.5, 50, 51, 100}, 2)
	want := []float64{10, 50, 100}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
