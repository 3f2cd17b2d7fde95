package pdf

import "sort"

// TableRegion is a detected grid of TextBlocks (spec.md §4.2 PDF backend,
// stage 4: "grid-based table detection").
type TableRegion struct {
	BBox      Rect
	Rows      [][]string
	HasHeader bool
	RowSpans  [][]int
	ColSpans  [][]int
}

// TableDetector finds table-shaped regions among a page's TextBlocks.
// GridBasedDetector is the only implementation docling ships.
type TableDetector interface {
	Detect(blocks []TextBlock) (tables []TableRegion, consumed []bool)
}

// GridBasedDetector implements spec.md's grid-based detection: blocks whose
// edges align (within a tolerance) into at least 2 rows and 2 columns form a
// table. Every cell gets a row span and column span of 1; a block covering
// several grid cells is not detected as a merged cell. The first row is a
// header when the font size of its first block differs from that of the
// first block in the next non-empty row.
type GridBasedDetector struct{ Tolerance float64 }

const defaultGridTolerance = 2.0

func (d GridBasedDetector) Detect(blocks []TextBlock) ([]TableRegion, []bool) {
	tol := d.Tolerance
	if tol <= 0 {
		tol = defaultGridTolerance
	}
	consumed := make([]bool, len(blocks))

	rowKeys := clusterCoords(blockAttr(blocks, func(b TextBlock) float64 { return b.BBox.Y0 }), tol)
	reverseFloats(rowKeys) // PDF Y increases upward; row 0 must be the topmost row
	colKeys := clusterCoords(blockAttr(blocks, func(b TextBlock) float64 { return b.BBox.X0 }), tol)
	if len(rowKeys) < 2 || len(colKeys) < 2 {
		return nil, consumed
	}

	grid := make(map[[2]int]int) // (row,col) -> block index
	var minX, minY, maxX, maxY float64
	first := true
	for i, b := range blocks {
		r := nearestIndex(rowKeys, b.BBox.Y0, tol)
		c := nearestIndex(colKeys, b.BBox.X0, tol)
		if r < 0 || c < 0 {
			continue
		}
		grid[[2]int{r, c}] = i
		if first {
			minX, minY, maxX, maxY = b.BBox.X0, b.BBox.Y0, b.BBox.X1, b.BBox.Y1
			first = false
		} else {
			minX = minF(minX, b.BBox.X0)
			minY = minF(minY, b.BBox.Y0)
			maxX = maxF(maxX, b.BBox.X1)
			maxY = maxF(maxY, b.BBox.Y1)
		}
	}
	if len(grid) < 4 {
		return nil, consumed
	}

	rows := make([][]string, len(rowKeys))
	rowSpans := make([][]int, len(rowKeys))
	colSpans := make([][]int, len(rowKeys))
	for r := range rowKeys {
		rows[r] = make([]string, len(colKeys))
		rowSpans[r] = make([]int, len(colKeys))
		colSpans[r] = make([]int, len(colKeys))
		for c := range colKeys {
			rowSpans[r][c] = 1
			colSpans[r][c] = 1
			if idx, ok := grid[[2]int{r, c}]; ok {
				rows[r][c] = blocks[idx].Text
				consumed[idx] = true
			}
		}
	}

	hasHeader := len(rows) > 1 && rowFontSizeDiffers(blocks, grid, rowKeys, colKeys)

	return []TableRegion{{
		BBox:      Rect{X0: minX, Y0: minY, X1: maxX, Y1: maxY},
		Rows:      rows,
		HasHeader: hasHeader,
		RowSpans:  rowSpans,
		ColSpans:  colSpans,
	}}, consumed
}

func rowFontSizeDiffers(blocks []TextBlock, grid map[[2]int]int, rowKeys, colKeys []float64) bool {
	headerSize, bodySize := -1.0, -1.0
	for c := range colKeys {
		if idx, ok := grid[[2]int{0, c}]; ok {
			headerSize = blocks[idx].FontSize
			break
		}
	}
	for r := 1; r < len(rowKeys); r++ {
		for c := range colKeys {
			if idx, ok := grid[[2]int{r, c}]; ok {
				bodySize = blocks[idx].FontSize
				break
			}
		}
		if bodySize >= 0 {
			break
		}
	}
	return headerSize >= 0 && bodySize >= 0 && headerSize != bodySize
}

func blockAttr(blocks []TextBlock, f func(TextBlock) float64) []float64 {
	out := make([]float64, len(blocks))
	for i, b := range blocks {
		out[i] = f(b)
	}
	return out
}

// clusterCoords groups nearby coordinate values (within tol) and returns one
// representative value per cluster, sorted ascending.
func clusterCoords(values []float64, tol float64) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	var clusters []float64
	for _, v := range sorted {
		if len(clusters) == 0 || v-clusters[len(clusters)-1] > tol {
			clusters = append(clusters, v)
		}
	}
	return clusters
}

func reverseFloats(vs []float64) {
	for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
		vs[i], vs[j] = vs[j], vs[i]
	}
}

func nearestIndex(keys []float64, v, tol float64) int {
	for i, k := range keys {
		if abs(k-v) <= tol {
			return i
		}
	}
	return -1
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
