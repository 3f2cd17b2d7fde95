package chunker

import (
	"strings"

	"github.com/kaidoc/docling/pkg/document"
)

// leafText renders the body text of a leaf structural node: plain
// concatenated text for most kinds, a tab/newline-flattened grid for Table
// (mirroring the flattening pkg/serialize uses for ToPlainText, since a
// chunk's text must stand on its own without the tree around it).
func leafText(n *document.Node) string {
	if n.Kind == document.KindTable && n.Table != nil {
		return flattenTable(*n.Table)
	}
	return n.PlainText()
}

func flattenTable(t document.TableData) string {
	var rows []string
	if t.HasHeader && len(t.Headers) > 0 {
		rows = append(rows, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = c.Content
		}
		rows = append(rows, strings.Join(cells, "\t"))
	}
	return strings.Join(rows, "\n")
}

// mergedListText joins every ListItem descendant's own text with newlines,
// used when a HierarchicalChunker is configured to keep a List as one chunk
// instead of one chunk per ListItem.
func mergedListText(n *document.Node) string {
	var items []string
	for _, c := range n.Children {
		if c.Kind == document.KindListItem {
			items = append(items, c.PlainText())
		}
	}
	return strings.Join(items, "\n")
}

func captionFor(n *document.Node) *string {
	if n.Kind == document.KindTable && n.Table != nil {
		return n.Table.Caption
	}
	return nil
}

func runeLen(s string) int { return len([]rune(s)) }
