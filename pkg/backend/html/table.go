package html

import (
	"strconv"
	"strings"

	"github.com/kaidoc/docling/internal/docctx"
	"github.com/kaidoc/docling/pkg/document"
	xhtml "golang.org/x/net/html"
)

// convertTable folds an HTML <table> into a document.Table node. Malformed
// input -- rows with fewer cells than the widest row -- is tolerated by
// padding with empty cells and recording a warning, rather than failing the
// whole conversion (spec.md §7 "Partial" status).
func (w *worker) convertTable(n *xhtml.Node) *document.Node {
	var headers []string
	hasHeader := false
	var rows [][]document.TableCell

	var walkRows func(*xhtml.Node, bool)
	walkRows = func(section *xhtml.Node, inHead bool) {
		for c := section.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xhtml.ElementNode {
				continue
			}
			switch c.Data {
			case "thead":
				walkRows(c, true)
			case "tbody", "tfoot":
				walkRows(c, false)
			case "tr":
				cells, headerRow := w.convertRow(c)
				if inHead || headerRow {
					if !hasHeader {
						hasHeader = true
						for _, cell := range cells {
							headers = append(headers, cell.Content)
						}
						continue
					}
				}
				rows = append(rows, cells)
			}
		}
	}
	walkRows(n, false)

	width := 0
	if len(headers) > 0 {
		width = len(headers)
	}
	for _, row := range rows {
		if rw := rowWidth(row); rw > width {
			width = rw
		}
	}

	for i, row := range rows {
		rw := rowWidth(row)
		switch {
		case rw < width:
			for rw < width {
				row = append(row, document.NewCell(""))
				rw++
			}
			docctx.Warn(w.ctx, "table row padded to the column count")
			rows[i] = row
		case rw > width:
			for rw > width && len(row) > 0 {
				last := row[len(row)-1]
				span := last.Colspan
				if span < 1 {
					span = 1
				}
				if span > rw-width {
					last.Colspan = span - (rw - width)
					row[len(row)-1] = last
					break
				}
				row = row[:len(row)-1]
				rw -= span
			}
			rows[i] = row
		}
	}

	return document.NewTable(document.TableData{
		Headers:   headers,
		Rows:      rows,
		HasHeader: hasHeader,
	})
}

// rowWidth sums row's cells' colspans (unset or non-positive counts as 1),
// matching the grid-width calculation validateTable (pkg/document/validate.go)
// uses to check the "every row has the same width after expanding spans"
// invariant.
func rowWidth(row []document.TableCell) int {
	w := 0
	for _, cell := range row {
		span := cell.Colspan
		if span < 1 {
			span = 1
		}
		w += span
	}
	return w
}

// convertRow folds one <tr> into its cells. headerRow reports whether every
// cell in the row is a <th>, the heuristic used to detect a header row that
// isn't wrapped in an explicit <thead>.
func (w *worker) convertRow(tr *xhtml.Node) ([]document.TableCell, bool) {
	var cells []document.TableCell
	allTh := true
	any := false
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xhtml.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		any = true
		if c.Data != "th" {
			allTh = false
		}
		cell := document.NewCell(strings.TrimSpace(plainText(c)))
		if span := attr(c, "colspan"); span != "" {
			if v, err := strconv.Atoi(span); err == nil && v > 0 {
				cell.Colspan = v
			}
		}
		if span := attr(c, "rowspan"); span != "" {
			if v, err := strconv.Atoi(span); err == nil && v > 0 {
				cell.Rowspan = v
			}
		}
		cells = append(cells, cell)
	}
	return cells, any && allTh
}
