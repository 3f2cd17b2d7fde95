package serialize

import "github.com/kaidoc/docling/pkg/document"

// ToPlainText concatenates every TextItem.Content in reading order separated
// by single newlines; tables are flattened cell-by-cell with tab separators,
// per spec.md §6 "Plain text export".
func ToPlainText(doc *document.Document) string {
	var lines []string
	doc.Root.Walk(func(n *document.Node) bool {
		switch {
		case n.Kind == document.KindTable && n.Table != nil:
			lines = append(lines, flattenTable(*n.Table))
			return false
		case n.Kind == document.KindText && n.Text != nil:
			lines = append(lines, n.Text.Content)
		}
		return true
	})
	return joinNonEmpty(lines, "\n")
}

func flattenTable(t document.TableData) string {
	var rows []string
	if t.HasHeader && len(t.Headers) > 0 {
		rows = append(rows, joinTab(t.Headers))
	}
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = c.Content
		}
		rows = append(rows, joinTab(cells))
	}
	return joinNonEmpty(rows, "\n")
}

func joinTab(cells []string) string {
	out := ""
	for i, c := range cells {
		if i > 0 {
			out += "\t"
		}
		out += c
	}
	return out
}

func joinNonEmpty(items []string, sep string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += sep
		}
		out += item
	}
	return out
}
