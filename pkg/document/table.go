package document

// TableData is the payload of a Table node.
type TableData struct {
	Headers  []string
	Rows     [][]TableCell
	HasHeader bool
	Caption   *string
}

// TableCell is one cell of a TableData row. Colspan and Rowspan default to 1
// (a cell occupying exactly one grid position) and must never be <1.
type TableCell struct {
	Content    string
	Formatting *Formatting
	Colspan    int
	Rowspan    int
}

// NewCell constructs a TableCell with Colspan and Rowspan defaulted to 1.
func NewCell(content string) TableCell {
	return TableCell{Content: content, Colspan: 1, Rowspan: 1}
}

// GridWidth returns the number of grid columns the table occupies once every
// row's colspans are summed, or -1 if rows disagree (a caller can use this
// to detect the invariant violation spec.md §8 property 3 names before
// building pending-rowspan bookkeeping for a full grid expansion).
func (t TableData) GridWidth() int {
	width := -1
	for _, row := range t.Rows {
		w := 0
		for _, cell := range row {
			span := cell.Colspan
			if span < 1 {
				span = 1
			}
			w += span
		}
		if width == -1 {
			width = w
		} else if w != width {
			return -1
		}
	}
	return width
}
