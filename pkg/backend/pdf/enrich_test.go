package pdf

import "testing"

func TestEnrichBlocks_DetectsCodeByMonospaceRun(t *testing.T) {
	blocks := []TextBlock{
		{Text: "func main() {", FontName: "Courier", Kind: BlockParagraph},
		{Text: "fmt.Println(\"hi\")", FontName: "Courier", Kind: BlockParagraph},
		{Text: "}", FontName: "Courier", Kind: BlockParagraph},
	}
	enrichments := enrichBlocks(blocks)
	for i, e := range enrichments {
		if e != enrichCode {
			t.Errorf("block %d enrichment = %v, want enrichCode", i, e)
		}
	}
}

func TestEnrichBlocks_DetectsCodeBySyntaxRegardlessOfFont(t *testing.T) {
	blocks := []TextBlock{
		{Text: "class Widget { renderSomething() => doWork(); }", FontName: "Helvetica", Kind: BlockParagraph},
	}
	enrichments := enrichBlocks(blocks)
	if enrichments[0] != enrichCode {
		t.Fatalf("enrichment = %v, want enrichCode", enrichments[0])
	}
}

func TestEnrichBlocks_DetectsFormulaByMathDensity(t *testing.T) {
	blocks := []TextBlock{
		{Text: "x^2 + y^2 = z^2 ± 1", FontName: "Helvetica", Kind: BlockParagraph},
	}
	enrichments := enrichBlocks(blocks)
	if enrichments[0] != enrichFormula {
		t.Fatalf("enrichment = %v, want enrichFormula", enrichments[0])
	}
}

func TestEnrichBlocks_LeavesOrdinaryProseAlone(t *testing.T) {
	blocks := []TextBlock{
		{Text: "This is an ordinary sentence of body prose.", FontName: "Helvetica", Kind: BlockParagraph},
	}
	enrichments := enrichBlocks(blocks)
	if enrichments[0] != enrichNone {
		t.Fatalf("enrichment = %v, want enrichNone", enrichments[0])
	}
}

func TestEnrichBlocks_SkipsNonParagraphBlocks(t *testing.T) {
	blocks := []TextBlock{
		{Text: "func main() {", FontName: "Courier", Kind: BlockHeading},
	}
	enrichments := enrichBlocks(blocks)
	if enrichments[0] != enrichNone {
		t.Fatalf("enrichment = %v, want enrichNone for non-paragraph block", enrichments[0])
	}
}

func TestIsFormulaDense_RequiresMinimumLength(t *testing.T) {
	if isFormulaDense("=+") {
		t.Fatalf("expected short string to be rejected regardless of density")
	}
}
