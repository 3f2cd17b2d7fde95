package document

import "time"

// Format tags the source format a Document was converted from. Defined here
// (rather than imported from pkg/input) so pkg/document has no dependency on
// the detection layer; pkg/input.Format values convert to this type 1:1.
type Format string

const (
	FormatMarkdown Format = "Markdown"
	FormatHTML     Format = "HTML"
	FormatCSV      Format = "CSV"
	FormatDOCX     Format = "DOCX"
	FormatPDF      Format = "PDF"
	FormatUnknown  Format = "Unknown"
)

// Metadata describes the document as a whole.
type Metadata struct {
	Origin         string
	Format         Format
	PageCount      *int
	ConversionTime time.Time
	Extra          map[string]any
}

// Document pairs Metadata with the root Node of the unified tree.
type Document struct {
	Metadata Metadata
	Root     *Node
}

// New constructs an empty Document for origin/format, with a fresh Document
// root node and an initialized extension map.
func New(origin string, format Format) *Document {
	return &Document{
		Metadata: Metadata{
			Origin:         origin,
			Format:         format,
			ConversionTime: time.Now().UTC(),
			Extra:          map[string]any{},
		},
		Root: NewDocumentRoot(),
	}
}

// NodeCount returns the total number of nodes in the tree, root included.
func (d *Document) NodeCount() int {
	count := 0
	d.Root.Walk(func(*Node) bool { count++; return true })
	return count
}
