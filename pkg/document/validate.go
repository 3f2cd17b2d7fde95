package document

import (
	"unicode/utf8"

	"github.com/kaidoc/docling/pkg/docerr"
)

// Validate walks doc's tree and returns the first invariant violation found
// (spec.md §8, properties 1-4), or nil if the tree is well-formed. It is
// meant for backend authors and tests, not for the hot conversion path.
func Validate(doc *Document) error {
	if doc.Root == nil {
		return docerr.New(docerr.KindInvalidFile, "document has no root node")
	}
	if doc.Root.Kind != KindDocument {
		return docerr.New(docerr.KindInvalidFile, "root node kind is %s, want Document", doc.Root.Kind)
	}
	if doc.Root.Metadata.Depth != 0 {
		return docerr.New(docerr.KindInvalidFile, "root node depth is %d, want 0", doc.Root.Metadata.Depth)
	}
	return validateNode(doc.Root)
}

func validateNode(n *Node) error {
	for i, c := range n.Children {
		if c.Metadata.Depth != n.Metadata.Depth+1 {
			return docerr.New(docerr.KindInvalidFile,
				"node %s at sibling %d has depth %d, want %d", c.Kind, i, c.Metadata.Depth, n.Metadata.Depth+1)
		}
		if c.Metadata.Index != i {
			return docerr.New(docerr.KindInvalidFile,
				"node %s has sibling index %d, want %d", c.Kind, c.Metadata.Index, i)
		}
		if err := validatePayload(c); err != nil {
			return err
		}
		if err := validateNode(c); err != nil {
			return err
		}
	}
	return validatePayload(n)
}

func validatePayload(n *Node) error {
	switch n.Kind {
	case KindHeading:
		if n.HeadingLevel < 1 || n.HeadingLevel > 6 {
			return docerr.New(docerr.KindInvalidFile, "heading level %d out of range 1..6", n.HeadingLevel)
		}
	case KindText:
		if n.Text == nil {
			return docerr.New(docerr.KindInvalidFile, "Text node has nil TextItem payload")
		}
		if err := validateText(*n.Text); err != nil {
			return err
		}
	case KindTable:
		if n.Table == nil {
			return docerr.New(docerr.KindInvalidFile, "Table node has nil TableData payload")
		}
		if err := validateTable(*n.Table); err != nil {
			return err
		}
	default:
		if n.Text != nil {
			return docerr.New(docerr.KindInvalidFile, "%s node carries a TextItem payload", n.Kind)
		}
		if n.Table != nil {
			return docerr.New(docerr.KindInvalidFile, "%s node carries a TableData payload", n.Kind)
		}
	}
	return nil
}

func validateText(item TextItem) error {
	if !utf8.ValidString(item.Content) {
		return docerr.New(docerr.KindInvalidFile, "text content is not valid UTF-8")
	}
	for _, r := range item.Content {
		if r == 0 {
			return docerr.New(docerr.KindInvalidFile, "text content contains a NUL byte")
		}
	}
	return nil
}

func validateTable(t TableData) error {
	width := -1
	if t.HasHeader {
		width = len(t.Headers)
	}
	for i, row := range t.Rows {
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
			return docerr.New(docerr.KindInvalidFile, "table row %d has grid width %d, want %d", i, w, width)
		}
	}
	return nil
}
