package pdf

import (
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
)

// enrichment is the stage 7 classification (enrichCode, enrichFormula)
// layered on top of stage 3's BlockKind, recorded separately so a
// misclassified Paragraph can still be promoted without disturbing the
// heading/list/header/footer decisions stage 3 already made.
type enrichment int

const (
	enrichNone enrichment = iota
	enrichCode
	enrichFormula
)

// codeSyntax matches common programming syntax: any brace, a semicolon at
// the end of the text, an "=>" arrow, or the keyword func, def or class.
var codeSyntax = regexp2.MustCompile(`(?:\{|\}|;\s*$|=>|\bfunc\b|\bdef\b|\bclass\b)`, regexp2.None)

const monospaceLineThreshold = 3

// enrichBlocks applies spec.md's stage 7 heuristics in place: runs of
// monospace-font lines or blocks matching common code syntax become code
// blocks; blocks with a high density of math symbols become formulas. List
// items are already classified in stage 3 (layout.go's listMarker).
func enrichBlocks(blocks []TextBlock) []enrichment {
	out := make([]enrichment, len(blocks))

	monoRun := 0
	for i, b := range blocks {
		if b.Kind != BlockParagraph {
			monoRun = 0
			continue
		}
		if isMonospaceFont(b.FontName) {
			monoRun++
		} else {
			monoRun = 0
		}
		matched, _ := codeSyntax.MatchString(b.Text)
		if monoRun >= monospaceLineThreshold {
			for j := i - monoRun + 1; j <= i; j++ {
				out[j] = enrichCode
			}
			continue
		}
		if matched {
			out[i] = enrichCode
			continue
		}
		if isFormulaDense(b.Text) {
			out[i] = enrichFormula
		}
	}
	return out
}

func isMonospaceFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "mono") || strings.Contains(lower, "courier") || strings.Contains(lower, "consolas")
}

var mathSymbols = "+-*/=<>∑∏∫√±≤≥≠∞αβγδθλμπσ^_"

// isFormulaDense reports whether text's ratio of math-symbol runes to
// total non-space runes exceeds a third, the density spec.md's stage 7
// describes for formula detection.
func isFormulaDense(text string) bool {
	total, math := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if strings.ContainsRune(mathSymbols, r) {
			math++
		}
	}
	if total < 4 {
		return false
	}
	return float64(math)/float64(total) >= 0.34
}
