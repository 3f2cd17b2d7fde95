package pdf

import (
	"github.com/kaidoc/docling/pkg/document"
)

// mapPage folds one page's classified blocks, tables, and images into a
// Document subtree (spec.md §4.2 PDF backend, stage 8). Text blocks are
// appended in reading order; all of the page's tables follow them, then all
// of its images, so a table or image is not placed at its reading-order
// position among the text. Header/footer blocks are not appended to the tree; they're recorded on the
// page's own section node as metadata instead.
func mapPage(pageSection *document.Node, blocks []TextBlock, enrichments []enrichment, tables []TableRegion, tableConsumed []bool, images []ImageRegion) {
	var headers, footers []string

	for i, b := range blocks {
		if tableConsumed != nil && i < len(tableConsumed) && tableConsumed[i] {
			continue
		}
		switch b.Kind {
		case BlockHeader:
			headers = append(headers, b.Text)
			continue
		case BlockFooter:
			footers = append(footers, b.Text)
			continue
		}

		var node *document.Node
		switch {
		case enrichments != nil && i < len(enrichments) && enrichments[i] == enrichCode:
			node = document.NewCodeBlock(nil)
			node.AppendChild(document.NewText(document.TextItem{Content: b.Text}))
		case enrichments != nil && i < len(enrichments) && enrichments[i] == enrichFormula:
			node = document.NewFormula()
			node.AppendChild(document.NewText(document.TextItem{Content: b.Text}))
		case b.Kind == BlockHeading:
			node = document.NewHeading(clampHeadingLevel(b.HeadingLevel))
			node.AppendChild(document.NewText(document.TextItem{Content: b.Text}))
		case b.Kind == BlockListItem:
			node = document.NewListItem()
			node.AppendChild(document.NewText(document.TextItem{Content: b.Text}))
		default:
			node = document.NewParagraph()
			node.AppendChild(document.NewText(document.TextItem{Content: b.Text}))
		}
		pageSection.AppendChild(node)
	}

	for _, t := range tables {
		pageSection.AppendChild(document.NewTable(toTableData(t)))
	}

	for _, img := range images {
		node := document.NewImage()
		node.Metadata.Extra["width"] = img.Width
		node.Metadata.Extra["height"] = img.Height
		node.Metadata.Extra["format"] = img.Format
		node.Metadata.Extra["dpi"] = img.DPI
		node.Metadata.Extra["image_type"] = imageKindString(img.Kind)
		pageSection.AppendChild(node)
	}

	if len(headers) > 0 {
		pageSection.Metadata.Extra["headers"] = headers
	}
	if len(footers) > 0 {
		pageSection.Metadata.Extra["footers"] = footers
	}
}

func clampHeadingLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

func toTableData(t TableRegion) document.TableData {
	data := document.TableData{HasHeader: t.HasHeader}
	start := 0
	if t.HasHeader && len(t.Rows) > 0 {
		data.Headers = t.Rows[0]
		start = 1
	}
	for r := start; r < len(t.Rows); r++ {
		row := make([]document.TableCell, len(t.Rows[r]))
		for c, content := range t.Rows[r] {
			cell := document.NewCell(content)
			if t.RowSpans != nil && r < len(t.RowSpans) && c < len(t.RowSpans[r]) {
				cell.Rowspan = t.RowSpans[r][c]
			}
			if t.ColSpans != nil && r < len(t.ColSpans) && c < len(t.ColSpans[r]) {
				cell.Colspan = t.ColSpans[r][c]
			}
			row[c] = cell
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

func imageKindString(k ImageKind) string {
	switch k {
	case ImagePhoto:
		return "Photo"
	case ImageDiagram:
		return "Diagram"
	case ImageLogo:
		return "Logo"
	case ImageChart:
		return "Chart"
	default:
		return "Unknown"
	}
}
