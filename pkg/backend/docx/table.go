package docx

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/kaidoc/docling/pkg/document"
)

type rawCell struct {
	content  string
	gridSpan int
	vMerge   string // "", "restart", or "continue"
	rowspan  int
}

// convertTable folds a <w:tbl> into a Table node. Column merges (gridSpan)
// map onto TableCell.Colspan directly; row merges (vMerge) are resolved in a
// second pass that counts consecutive "continue" cells following a
// "restart" cell at the same column offset, so the per-row grid width the
// document model requires (document.TableData.GridWidth) stays consistent
// even though every continuation row still carries its own (empty) cell.
func (w *worker) convertTable(dec *xml.Decoder, start xml.StartElement) (*document.Node, error) {
	content, err := drainElement(dec)
	if err != nil {
		return nil, err
	}
	inner := xml.NewDecoder(bytes.NewReader(content))

	var rows [][]rawCell
	for {
		tok, err := inner.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "tr" {
			continue
		}
		row, err := w.convertRow(inner, se)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	resolveRowMerges(rows)

	data := document.TableData{Rows: make([][]document.TableCell, len(rows))}
	for i, row := range rows {
		cells := make([]document.TableCell, len(row))
		for j, rc := range row {
			span := rc.rowspan
			if span < 1 {
				span = 1
			}
			cells[j] = document.TableCell{Content: rc.content, Colspan: rc.gridSpan, Rowspan: span}
		}
		data.Rows[i] = cells
	}
	return document.NewTable(data), nil
}

func resolveRowMerges(rows [][]rawCell) {
	for i := range rows {
		colStart := 0
		for j := range rows[i] {
			cell := &rows[i][j]
			if cell.vMerge == "restart" {
				span := 1
				for k := i + 1; k < len(rows); k++ {
					cs := 0
					matched := false
					for _, c2 := range rows[k] {
						if cs == colStart {
							matched = c2.vMerge == "continue"
							break
						}
						cs += c2.gridSpan
					}
					if !matched {
						break
					}
					span++
				}
				cell.rowspan = span
			}
			colStart += cell.gridSpan
		}
	}
}

func (w *worker) convertRow(dec *xml.Decoder, start xml.StartElement) ([]rawCell, error) {
	content, err := drainElement(dec)
	if err != nil {
		return nil, err
	}
	inner := xml.NewDecoder(bytes.NewReader(content))
	var cells []rawCell
	for {
		tok, err := inner.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "tc" {
			continue
		}
		cell, err := w.convertCell(inner, se)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
	return cells, nil
}

func (w *worker) convertCell(dec *xml.Decoder, start xml.StartElement) (rawCell, error) {
	content, err := drainElement(dec)
	if err != nil {
		return rawCell{}, err
	}
	cell := rawCell{gridSpan: 1}
	inner := xml.NewDecoder(bytes.NewReader(content))

	var textLines []string
	root := document.NewSection()
	cellWorker := &worker{rels: w.rels, numbering: w.numbering}

	for {
		tok, err := inner.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rawCell{}, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "tcPr":
			readTcPr(inner, &cell)
		case "p":
			if err := cellWorker.convertParagraph(inner, se, root); err != nil {
				return rawCell{}, err
			}
		default:
			inner.Skip()
		}
	}
	for _, child := range root.Children {
		if text := strings.TrimSpace(child.PlainText()); text != "" {
			textLines = append(textLines, text)
		}
	}
	cell.content = strings.Join(textLines, "\n")
	return cell, nil
}

func readTcPr(dec *xml.Decoder, cell *rawCell) {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "gridSpan":
				if v, err := strconv.Atoi(attrVal(t, "val")); err == nil && v > 0 {
					cell.gridSpan = v
				}
				dec.Skip()
			case "vMerge":
				val := attrVal(t, "val")
				if val == "" {
					val = "continue"
				}
				cell.vMerge = val
				dec.Skip()
			default:
				depth++
			}
		case xml.EndElement:
			if depth == 0 {
				return
			}
			depth--
		}
	}
}
