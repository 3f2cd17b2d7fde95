// Package serialize implements the three export formats spec.md §6
// describes: canonical round-trippable JSON, lossy Markdown export, and
// plain-text export. Grounded on the teacher's header package (the one
// other place in chunky that turned structured data into a stable, typed
// wire shape), generalized from YAML frontmatter fields to the full Node
// tagged union.
package serialize

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kaidoc/docling/pkg/docerr"
	"github.com/kaidoc/docling/pkg/document"
)

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonNodeMetadata struct {
	Depth    int            `json:"depth"`
	Index    int            `json:"index"`
	Position *jsonPosition  `json:"position,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

type jsonNode struct {
	NodeType json.RawMessage     `json:"node_type"`
	Text     *document.TextItem  `json:"text,omitempty"`
	Table    *document.TableData `json:"table,omitempty"`
	Children []*jsonNode         `json:"children"`
	Metadata jsonNodeMetadata    `json:"metadata"`
}

type jsonMetadata struct {
	Origin         string         `json:"origin"`
	Format         string         `json:"format"`
	PageCount      *int           `json:"page_count"`
	ConversionTime time.Time      `json:"conversion_time"`
	Extra          map[string]any `json:"extra"`
}

type jsonDocument struct {
	Metadata jsonMetadata `json:"metadata"`
	Root     *jsonNode    `json:"root"`
}

// ToJSON encodes doc into spec.md §6's canonical JSON form: tagged node
// variants (Heading, List, CodeBlock) serialize as a single-key object
// carrying their parameter, every other variant as a bare string.
func ToJSON(doc *document.Document) ([]byte, error) {
	root, err := nodeToJSON(doc.Root)
	if err != nil {
		return nil, docerr.Wrap(docerr.KindSerializationError, err, "encoding document")
	}
	jd := jsonDocument{
		Metadata: jsonMetadata{
			Origin:         doc.Metadata.Origin,
			Format:         string(doc.Metadata.Format),
			PageCount:      doc.Metadata.PageCount,
			ConversionTime: doc.Metadata.ConversionTime,
			Extra:          doc.Metadata.Extra,
		},
		Root: root,
	}
	data, err := json.Marshal(jd)
	if err != nil {
		return nil, docerr.Wrap(docerr.KindSerializationError, err, "encoding document")
	}
	return data, nil
}

// FromJSON decodes data produced by ToJSON back into a Document. The tree
// is rebuilt via Node.AppendChild, so Metadata.Depth/Index on the result
// reflect the reconstructed structure rather than whatever was encoded.
func FromJSON(data []byte) (*document.Document, error) {
	var jd jsonDocument
	if err := json.Unmarshal(data, &jd); err != nil {
		return nil, docerr.Wrap(docerr.KindSerializationError, err, "decoding document")
	}
	if jd.Root == nil {
		return nil, docerr.New(docerr.KindSerializationError, "decoding document: missing root")
	}
	root, err := nodeFromJSON(jd.Root)
	if err != nil {
		return nil, docerr.Wrap(docerr.KindSerializationError, err, "decoding document")
	}
	doc := &document.Document{
		Metadata: document.Metadata{
			Origin:         jd.Metadata.Origin,
			Format:         document.Format(jd.Metadata.Format),
			PageCount:      jd.Metadata.PageCount,
			ConversionTime: jd.Metadata.ConversionTime,
			Extra:          jd.Metadata.Extra,
		},
		Root: root,
	}
	if doc.Metadata.Extra == nil {
		doc.Metadata.Extra = map[string]any{}
	}
	return doc, nil
}

func nodeToJSON(n *document.Node) (*jsonNode, error) {
	nodeType, err := marshalNodeType(n)
	if err != nil {
		return nil, err
	}
	jn := &jsonNode{
		NodeType: nodeType,
		Text:     n.Text,
		Table:    n.Table,
		Children: make([]*jsonNode, 0, len(n.Children)),
		Metadata: jsonNodeMetadata{
			Depth: n.Metadata.Depth,
			Index: n.Metadata.Index,
		},
	}
	if n.Metadata.Position != nil {
		jn.Metadata.Position = &jsonPosition{Line: n.Metadata.Position.Line, Column: n.Metadata.Position.Column}
	}
	if len(n.Metadata.Extra) > 0 {
		jn.Metadata.Extra = n.Metadata.Extra
	}
	for _, c := range n.Children {
		jc, err := nodeToJSON(c)
		if err != nil {
			return nil, err
		}
		jn.Children = append(jn.Children, jc)
	}
	return jn, nil
}

func marshalNodeType(n *document.Node) (json.RawMessage, error) {
	switch n.Kind {
	case document.KindHeading:
		return json.Marshal(map[string]any{"Heading": map[string]any{"level": n.HeadingLevel}})
	case document.KindList:
		return json.Marshal(map[string]any{"List": map[string]any{"ordered": n.ListOrdered}})
	case document.KindCodeBlock:
		return json.Marshal(map[string]any{"CodeBlock": map[string]any{"language": n.CodeLanguage}})
	default:
		return json.Marshal(n.Kind.String())
	}
}

func nodeFromJSON(jn *jsonNode) (*document.Node, error) {
	n, err := unmarshalNodeType(jn.NodeType)
	if err != nil {
		return nil, err
	}
	n.Text = jn.Text
	n.Table = jn.Table
	if jn.Metadata.Position != nil {
		n.Metadata.Position = &document.SourcePosition{Line: jn.Metadata.Position.Line, Column: jn.Metadata.Position.Column}
	}
	if jn.Metadata.Extra != nil {
		n.Metadata.Extra = jn.Metadata.Extra
	}
	for _, jc := range jn.Children {
		child, err := nodeFromJSON(jc)
		if err != nil {
			return nil, err
		}
		n.AppendChild(child)
	}
	return n, nil
}

func unmarshalNodeType(raw json.RawMessage) (*document.Node, error) {
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil {
		return nodeForBareKind(bare)
	}

	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(raw, &tagged); err != nil {
		return nil, fmt.Errorf("node_type is neither a string nor a tagged object: %w", err)
	}
	if len(tagged) != 1 {
		return nil, fmt.Errorf("tagged node_type must carry exactly one key, got %d", len(tagged))
	}
	for tag, payload := range tagged {
		switch tag {
		case "Heading":
			var p struct {
				Level int `json:"level"`
			}
			if err := json.Unmarshal(payload, &p); err != nil {
				return nil, fmt.Errorf("decoding Heading payload: %w", err)
			}
			return document.NewHeading(p.Level), nil
		case "List":
			var p struct {
				Ordered bool `json:"ordered"`
			}
			if err := json.Unmarshal(payload, &p); err != nil {
				return nil, fmt.Errorf("decoding List payload: %w", err)
			}
			return document.NewList(p.Ordered), nil
		case "CodeBlock":
			var p struct {
				Language *string `json:"language"`
			}
			if err := json.Unmarshal(payload, &p); err != nil {
				return nil, fmt.Errorf("decoding CodeBlock payload: %w", err)
			}
			return document.NewCodeBlock(p.Language), nil
		default:
			return nil, fmt.Errorf("unknown tagged node_type %q", tag)
		}
	}
	panic("unreachable")
}

func nodeForBareKind(kind string) (*document.Node, error) {
	switch kind {
	case "Document":
		return document.NewDocumentRoot(), nil
	case "Section":
		return document.NewSection(), nil
	case "Paragraph":
		return document.NewParagraph(), nil
	case "ListItem":
		return document.NewListItem(), nil
	case "Blockquote":
		return document.NewBlockquote(), nil
	case "HorizontalRule":
		return document.NewHorizontalRule(), nil
	case "Text":
		return document.NewText(document.TextItem{}), nil
	case "Table":
		return document.NewTable(document.TableData{}), nil
	case "Image":
		return document.NewImage(), nil
	case "Formula":
		return document.NewFormula(), nil
	default:
		return nil, fmt.Errorf("unknown node_type %q", kind)
	}
}
