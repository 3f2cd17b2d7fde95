package pdf

import "testing"

func TestRuleBasedAnalyzer_ClassifiesHeadingAndParagraph(t *testing.T) {
	lines := []Line{
		{text: "Chapter One", bbox: Rect{X0: 72, Y0: 700, X1: 300, Y1: 720}, fontSize: 24},
		{text: "This is the body text of the chapter.", bbox: Rect{X0: 72, Y0: 650, X1: 400, Y1: 664}, fontSize: 12},
	}

	blocks := RuleBasedAnalyzer{}.Analyze(lines, 612, 792, defaultHeadingBuckets)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Kind != BlockHeading {
		t.Fatalf("block 0 kind = %v, want BlockHeading", blocks[0].Kind)
	}
	if blocks[0].HeadingLevel != 1 {
		t.Fatalf("block 0 heading level = %d, want 1", blocks[0].HeadingLevel)
	}
	if blocks[1].Kind != BlockParagraph {
		t.Fatalf("block 1 kind = %v, want BlockParagraph", blocks[1].Kind)
	}
}

func TestRuleBasedAnalyzer_ClassifiesHeaderAndFooterByPosition(t *testing.T) {
	lines := []Line{
		{text: "Running Title", bbox: Rect{X0: 72, Y0: 760, X1: 300, Y1: 772}, fontSize: 10},
		{text: "Body paragraph text goes here.", bbox: Rect{X0: 72, Y0: 400, X1: 400, Y1: 414}, fontSize: 10},
		{text: "Page 1", bbox: Rect{X0: 280, Y0: 30, X1: 320, Y1: 42}, fontSize: 10},
	}

	blocks := RuleBasedAnalyzer{}.Analyze(lines, 612, 792, defaultHeadingBuckets)
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}

	var sawHeader, sawFooter, sawParagraph bool
	for _, b := range blocks {
		switch b.Kind {
		case BlockHeader:
			sawHeader = true
		case BlockFooter:
			sawFooter = true
		case BlockParagraph:
			sawParagraph = true
		}
	}
	if !sawHeader || !sawFooter || !sawParagraph {
		t.Fatalf("blocks = %+v, want one each of header, footer, paragraph", blocks)
	}
}

func TestRuleBasedAnalyzer_ClassifiesListItem(t *testing.T) {
	lines := []Line{
		{text: "- first bullet point in the list", bbox: Rect{X0: 72, Y0: 500, X1: 300, Y1: 514}, fontSize: 11},
	}
	blocks := RuleBasedAnalyzer{}.Analyze(lines, 612, 792, defaultHeadingBuckets)
	if len(blocks) != 1 || blocks[0].Kind != BlockListItem {
		t.Fatalf("blocks = %+v, want single BlockListItem", blocks)
	}
}

func TestRuleBasedAnalyzer_EmptyInputYieldsNoBlocks(t *testing.T) {
	blocks := RuleBasedAnalyzer{}.Analyze(nil, 612, 792, defaultHeadingBuckets)
	if blocks != nil {
		t.Fatalf("blocks = %+v, want nil", blocks)
	}
}

func TestDetectColumns_FindsGapBetweenTwoColumns(t *testing.T) {
	lines := []Line{
		{bbox: Rect{X0: 40, X1: 250}},
		{bbox: Rect{X0: 350, X1: 560}},
	}
	boundaries := detectColumns(lines, 612)
	if len(boundaries) == 0 {
		t.Fatalf("expected at least one column boundary, got none")
	}
	for _, b := range boundaries {
		if b <= 250 || b >= 350 {
			t.Fatalf("boundary %v not between the two columns", b)
		}
	}
}

func TestHeadingLevel_RatioBuckets(t *testing.T) {
	tests := []struct {
		fontSize, bodySize float64
		want               int
	}{
		{24, 12, 1},
		{17, 12, 2},
		{14, 12, 3},
		{12, 12, 0},
	}
	for _, tt := range tests {
		if got := headingLevel(tt.fontSize, tt.bodySize, defaultHeadingBuckets); got != tt.want {
			t.Errorf("headingLevel(%v, %v) = %d, want %d", tt.fontSize, tt.bodySize, got, tt.want)
		}
	}
}
