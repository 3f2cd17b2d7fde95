package pdf

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dslipak/pdf"
)

// Rect is an axis-aligned bounding box in PDF page-point coordinates.
type Rect struct{ X0, Y0, X1, Y1 float64 }

// Width and Height return the box's extents.
func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// BlockKind tags the role stage 3 assigned a TextBlock.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockListItem
	BlockHeader
	BlockFooter
)

// TextBlock is one line-grouped, classified span of page text (spec.md §4.2
// PDF backend, stages 2-3): "text blocks with bounding boxes, font info,
// reading order, and a rule-based block type".
type TextBlock struct {
	Text         string
	BBox         Rect
	FontName     string
	FontSize     float64
	ReadingOrder int
	ColumnID     int
	Kind         BlockKind
	HeadingLevel int // valid only when Kind == BlockHeading
}

// Line is one row of same-baseline glyph runs, the intermediate unit between
// raw character extraction and a classified TextBlock.
type Line struct {
	text     string
	bbox     Rect
	fontSize float64
	fontName string
}

// extractLines groups a page's character stream into visual lines, rounding
// the Y baseline to absorb sub-point jitter within one row of text.
func extractLines(content pdf.Content) []Line {
	type bucket struct {
		chars []pdf.Text
	}
	buckets := map[int]*bucket{}
	var keys []int
	for _, ch := range content.Text {
		key := int(ch.Y + 0.5)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
			keys = append(keys, key)
		}
		b.chars = append(b.chars, ch)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	lines := make([]Line, 0, len(keys))
	for _, k := range keys {
		chars := buckets[k].chars
		sort.Slice(chars, func(i, j int) bool { return chars[i].X < chars[j].X })

		var sb strings.Builder
		minX, maxX := chars[0].X, chars[0].X
		minY, maxY := chars[0].Y, chars[0].Y
		fontSizeCounts := map[float64]int{}
		var lastFont string
		for _, ch := range chars {
			sb.WriteString(ch.S)
			if ch.X < minX {
				minX = ch.X
			}
			right := ch.X + ch.W
			if right > maxX {
				maxX = right
			}
			if ch.Y < minY {
				minY = ch.Y
			}
			top := ch.Y + ch.FontSize
			if top > maxY {
				maxY = top
			}
			fontSizeCounts[ch.FontSize]++
			lastFont = ch.Font
		}
		lines = append(lines, Line{
			text:     sb.String(),
			bbox:     Rect{X0: minX, Y0: minY, X1: maxX, Y1: maxY},
			fontSize: modeFontSize(fontSizeCounts),
			fontName: lastFont,
		})
	}
	return lines
}

func modeFontSize(counts map[float64]int) float64 {
	best, bestCount := 0.0, -1
	for size, n := range counts {
		if n > bestCount {
			best, bestCount = size, n
		}
	}
	return best
}

// LayoutAnalyzer turns a page's grouped lines into classified, ordered
// TextBlocks. RuleBasedAnalyzer is the only implementation docling ships;
// the interface exists so callers can plug in a different heuristic without
// touching the rest of the PDF backend.
type LayoutAnalyzer interface {
	Analyze(lines []Line, pageWidth, pageHeight float64, headingBuckets []float64) []TextBlock
}

// RuleBasedAnalyzer implements spec.md's rule-based layout analysis: column
// detection via a whitespace-gap projection, reading order left-to-right
// across columns then top-to-bottom within a column, and block
// classification from font-size buckets plus header/footer position and a
// leading-bullet/ordinal regex for list items.
type RuleBasedAnalyzer struct{}

var listMarker = regexp.MustCompile(`^\s*([-*•‣◦]|\d+[.)]|\(\d+\)|[a-zA-Z][.)])\s+`)

func (RuleBasedAnalyzer) Analyze(lines []Line, pageWidth, pageHeight float64, headingBuckets []float64) []TextBlock {
	if len(lines) == 0 {
		return nil
	}

	columns := detectColumns(lines, pageWidth)
	bodySize := medianFontSize(lines)

	var withColumn []orderedLine
	for _, l := range lines {
		withColumn = append(withColumn, orderedLine{line: l, column: columnOf(l.bbox, columns)})
	}
	sort.SliceStable(withColumn, func(i, j int) bool {
		if withColumn[i].column != withColumn[j].column {
			return withColumn[i].column < withColumn[j].column
		}
		return withColumn[i].line.bbox.Y1 > withColumn[j].line.bbox.Y1
	})

	blocks := groupIntoParagraphs(withColumn)

	for i := range blocks {
		b := &blocks[i]
		b.ReadingOrder = i
		classify(b, bodySize, pageHeight, headingBuckets)
	}
	return blocks
}

// detectColumns returns the X boundaries of contiguous text-bearing regions:
// the middle of every vertical gap of at least 5% of the page width that no
// line's bounding box crosses and that has text on both sides (the page
// margins are not boundaries).
func detectColumns(lines []Line, pageWidth float64) []float64 {
	if pageWidth <= 0 {
		return nil
	}
	const buckets = 200
	occupied := make([]bool, buckets)
	for _, l := range lines {
		start := int(l.bbox.X0 / pageWidth * buckets)
		end := int(l.bbox.X1 / pageWidth * buckets)
		for i := clamp(start, 0, buckets-1); i <= clamp(end, 0, buckets-1); i++ {
			occupied[i] = true
		}
	}
	gapMin := int(0.05 * buckets)
	var boundaries []float64
	gapStart := -1
	for i, occ := range occupied {
		if !occ {
			if gapStart == -1 {
				gapStart = i
			}
			continue
		}
		if gapStart > 0 && i-gapStart >= gapMin {
			mid := (gapStart + i) / 2
			boundaries = append(boundaries, float64(mid)/buckets*pageWidth)
		}
		gapStart = -1
	}
	return boundaries
}

func columnOf(b Rect, boundaries []float64) int {
	mid := (b.X0 + b.X1) / 2
	col := 0
	for _, x := range boundaries {
		if mid > x {
			col++
		}
	}
	return col
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// medianFontSize estimates the page's body text size as the most frequently
// occurring line font size, since body text repeats far more often than
// headings; ties break toward the smaller size, which body text usually is.
func medianFontSize(lines []Line) float64 {
	counts := map[float64]int{}
	for _, l := range lines {
		if l.fontSize > 0 {
			counts[l.fontSize]++
		}
	}
	if len(counts) == 0 {
		return 1
	}
	best, bestCount := 0.0, -1
	for size, n := range counts {
		if n > bestCount || (n == bestCount && size < best) {
			best, bestCount = size, n
		}
	}
	return best
}

// orderedLine pairs a grouped line with the column it was assigned to.
type orderedLine struct {
	line   Line
	column int
}

// groupIntoParagraphs merges column-ordered, top-to-bottom lines into blocks
// separated by a vertical gap exceeding 1.5x the incoming line's height.
func groupIntoParagraphs(ordered []orderedLine) []TextBlock {
	var blocks []TextBlock
	var cur *TextBlock
	var curCol = -1
	var lastY1 float64

	flush := func() {
		if cur != nil {
			blocks = append(blocks, *cur)
			cur = nil
		}
	}

	for _, a := range ordered {
		gap := lastY1 - a.line.bbox.Y1
		sameParagraph := cur != nil && a.column == curCol && gap >= 0 && gap <= 1.5*lineHeight(a.line)
		if sameParagraph {
			cur.Text += " " + a.line.text
			if a.line.bbox.X0 < cur.BBox.X0 {
				cur.BBox.X0 = a.line.bbox.X0
			}
			if a.line.bbox.X1 > cur.BBox.X1 {
				cur.BBox.X1 = a.line.bbox.X1
			}
			cur.BBox.Y0 = a.line.bbox.Y0
		} else {
			flush()
			cur = &TextBlock{
				Text:     a.line.text,
				BBox:     a.line.bbox,
				FontName: a.line.fontName,
				FontSize: a.line.fontSize,
				ColumnID: a.column,
			}
			curCol = a.column
		}
		lastY1 = a.line.bbox.Y0
	}
	flush()
	return blocks
}

func lineHeight(l Line) float64 {
	h := l.bbox.Height()
	if h <= 0 {
		return l.fontSize
	}
	return h
}

func classify(b *TextBlock, bodySize, pageHeight float64, headingBuckets []float64) {
	switch {
	case pageHeight > 0 && b.BBox.Y0 >= pageHeight*0.92:
		b.Kind = BlockHeader
	case pageHeight > 0 && b.BBox.Y1 <= pageHeight*0.08:
		b.Kind = BlockFooter
	case listMarker.MatchString(b.Text):
		b.Kind = BlockListItem
	case bodySize > 0 && headingLevel(b.FontSize, bodySize, headingBuckets) > 0:
		b.Kind = BlockHeading
		b.HeadingLevel = headingLevel(b.FontSize, bodySize, headingBuckets)
	default:
		b.Kind = BlockParagraph
	}
}

// headingLevel maps a block's font-size ratio against the body text size
// into a heading level via headingBuckets (descending thresholds, e.g.
// {1.8, 1.4, 1.15} for levels 1, 2, 3), or 0 if it isn't a heading.
func headingLevel(fontSize, bodySize float64, headingBuckets []float64) int {
	if bodySize <= 0 {
		return 0
	}
	ratio := fontSize / bodySize
	for i, threshold := range headingBuckets {
		if ratio >= threshold {
			return i + 1
		}
	}
	return 0
}
