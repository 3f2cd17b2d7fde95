package document

// Kind tags the variant a Node represents. It is the discriminant of the
// NodeType tagged union from spec.md §3: parameterized variants (Heading,
// List, CodeBlock) carry their parameter as a sibling field on Node rather
// than as a separate type, which keeps the tree allocation-light and avoids
// an interface-per-node-type hierarchy.
type Kind int

const (
	KindDocument Kind = iota
	KindSection
	KindHeading
	KindParagraph
	KindList
	KindListItem
	KindTable
	KindCodeBlock
	KindBlockquote
	KindHorizontalRule
	KindText
	KindImage
	KindFormula
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "Document"
	case KindSection:
		return "Section"
	case KindHeading:
		return "Heading"
	case KindParagraph:
		return "Paragraph"
	case KindList:
		return "List"
	case KindListItem:
		return "ListItem"
	case KindTable:
		return "Table"
	case KindCodeBlock:
		return "CodeBlock"
	case KindBlockquote:
		return "Blockquote"
	case KindHorizontalRule:
		return "HorizontalRule"
	case KindText:
		return "Text"
	case KindImage:
		return "Image"
	case KindFormula:
		return "Formula"
	default:
		return "Unknown"
	}
}

// Node is one element of the unified document tree. Its payload fields are
// exclusive by Kind: Text is populated only for KindText, Table only for
// KindTable, HeadingLevel only for
// KindHeading, ListOrdered only for KindList, CodeLanguage only for
// KindCodeBlock. All other types carry no payload — their meaning is their
// Kind tag plus their Children.
type Node struct {
	Kind Kind

	// HeadingLevel is valid (1..6) only when Kind == KindHeading.
	HeadingLevel int
	// ListOrdered is valid only when Kind == KindList.
	ListOrdered bool
	// CodeLanguage is the fenced code block's info string; nil means absent.
	// Valid only when Kind == KindCodeBlock.
	CodeLanguage *string

	// Text carries the node's text content and inline formatting. Populated
	// for KindText and is the only field that varies inside a text-bearing
	// leaf's payload.
	Text *TextItem
	// Table carries the node's tabular data. Populated only for KindTable.
	Table *TableData

	Children []*Node
	Metadata NodeMetadata

	parent *Node
}

// SourcePosition is a backend-reported location in the original input.
type SourcePosition struct {
	Line   int
	Column int
}

// NodeMetadata records structural bookkeeping plus an open extension map used
// for backend-specific facts that don't warrant their own Node field (PDF
// header/footer flags, DOCX image dimensions, and so on).
type NodeMetadata struct {
	Depth    int
	Index    int
	Position *SourcePosition
	Extra    map[string]any
}

func newNode(kind Kind) *Node {
	return &Node{Kind: kind, Children: nil, Metadata: NodeMetadata{Extra: map[string]any{}}}
}

// NewDocumentRoot constructs the synthetic Document root node (depth 0).
func NewDocumentRoot() *Node {
	return newNode(KindDocument)
}

// NewSection constructs a Section container node.
func NewSection() *Node { return newNode(KindSection) }

// NewHeading constructs a Heading node at the given level (1..6).
func NewHeading(level int) *Node {
	n := newNode(KindHeading)
	n.HeadingLevel = level
	return n
}

// NewParagraph constructs a Paragraph container node.
func NewParagraph() *Node { return newNode(KindParagraph) }

// NewList constructs a List node; ordered distinguishes <ol> from <ul>.
func NewList(ordered bool) *Node {
	n := newNode(KindList)
	n.ListOrdered = ordered
	return n
}

// NewListItem constructs a ListItem container node.
func NewListItem() *Node { return newNode(KindListItem) }

// NewTable constructs a Table node carrying data.
func NewTable(data TableData) *Node {
	n := newNode(KindTable)
	n.Table = &data
	return n
}

// NewCodeBlock constructs a CodeBlock node. language is nil when the fence
// has no info string.
func NewCodeBlock(language *string) *Node {
	n := newNode(KindCodeBlock)
	n.CodeLanguage = language
	return n
}

// NewBlockquote constructs a Blockquote container node.
func NewBlockquote() *Node { return newNode(KindBlockquote) }

// NewHorizontalRule constructs a HorizontalRule leaf node.
func NewHorizontalRule() *Node { return newNode(KindHorizontalRule) }

// NewText constructs a Text leaf node carrying item.
func NewText(item TextItem) *Node {
	n := newNode(KindText)
	n.Text = &item
	return n
}

// NewImage constructs an Image node; dimensions and source part name belong
// in Metadata.Extra (e.g. "width", "height", "format", "dpi", "part").
func NewImage() *Node { return newNode(KindImage) }

// NewFormula constructs a Formula node; its rendered form is typically a
// Text child.
func NewFormula() *Node { return newNode(KindFormula) }

// Parent returns the node's parent, or nil for the document root.
func (n *Node) Parent() *Node { return n.parent }

// AppendChild appends child to n.Children, wiring child.parent and
// recomputing child.Metadata.Depth / Index (and the Depth of every node
// already below child) so the tree invariants in spec.md §8 hold
// immediately after the call. Not safe for concurrent use on the same
// parent.
func (n *Node) AppendChild(child *Node) {
	child.parent = n
	child.Metadata.Depth = n.Metadata.Depth + 1
	child.Metadata.Index = len(n.Children)
	n.Children = append(n.Children, child)
	child.Walk(func(m *Node) bool {
		for _, c := range m.Children {
			c.Metadata.Depth = m.Metadata.Depth + 1
		}
		return true
	})
}

// Walk performs a pre-order depth-first traversal, calling visit for every
// node including n itself. Traversal stops early if visit returns false.
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// HeadingPath returns the title of every Heading ancestor of n (its own Text
// children, not content nested under it), most-shallow first; n itself is
// never included. Backends
// lay headings out as flat siblings rather than nesting content under them,
// so this only returns a non-empty path for a node a backend chose to nest
// under a Heading directly; pkg/chunker tracks the reading-order heading
// path itself instead of relying on this method.
func (n *Node) HeadingPath() []string {
	var levels []*Node
	for p := n.parent; p != nil; p = p.parent {
		if p.Kind == KindHeading {
			levels = append(levels, p)
		}
	}
	out := make([]string, 0, len(levels))
	for i := len(levels) - 1; i >= 0; i-- {
		var title string
		for _, c := range levels[i].Children {
			if c.Kind == KindText && c.Text != nil {
				title += c.Text.Content
			}
		}
		out = append(out, title)
	}
	return out
}

// PlainText concatenates the text content of every Text descendant of n (or
// n itself if n is a Text node), in reading order, separated by nothing.
func (n *Node) PlainText() string {
	var out string
	n.Walk(func(m *Node) bool {
		if m.Kind == KindText && m.Text != nil {
			out += m.Text.Content
		}
		return true
	})
	return out
}
