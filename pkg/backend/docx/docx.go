// Package docx implements the WordprocessingML backend (spec.md §4.2 "DOCX
// backend"): open the OOXML ZIP container, locate word/document.xml and its
// relationships, and walk the body XML token by token -- the same
// recursive-descent "walk a markup tree and fold into document.Node"
// approach pkg/backend/markdown and pkg/backend/html use for their own
// source formats, applied here to WordprocessingML instead of an AST or an
// HTML DOM.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"strings"

	"github.com/kaidoc/docling/internal/docctx"
	"github.com/kaidoc/docling/internal/xlog"
	"github.com/kaidoc/docling/pkg/docerr"
	"github.com/kaidoc/docling/pkg/document"
	"github.com/kaidoc/docling/pkg/input"
)

// Backend is the DOCX backend implementation.
type Backend struct{}

// New constructs a DOCX Backend.
func New() *Backend { return &Backend{} }

func (*Backend) SupportedFormats() []input.Format {
	return []input.Format{input.FormatDOCX}
}

func (*Backend) IsValid(ctx context.Context, in *input.Descriptor) bool {
	raw, err := in.Bytes()
	if err != nil {
		return false
	}
	_, err = zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	return err == nil
}

func (b *Backend) Convert(ctx context.Context, in *input.Descriptor) (*document.Document, error) {
	raw, err := in.Bytes()
	if err != nil {
		return nil, docerr.Wrap(docerr.KindFileNotFound, err, "reading %s", in.Name()).WithPath(in.Name())
	}
	ctx = docctx.WithOrigin(ctx, docctx.Origin{Path: in.Name(), Format: string(input.FormatDOCX)})
	logger := xlog.From(ctx)

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, docerr.Wrap(docerr.KindInvalidFile, err, "%s is not a valid ZIP archive", in.Name()).WithPath(in.Name())
	}

	bodyXML, err := readPart(zr, "word/document.xml")
	if err != nil {
		return nil, docerr.Wrap(docerr.KindParseError, err, "%s is missing word/document.xml", in.Name()).WithPath(in.Name())
	}

	rels, _ := readRelationships(zr, "word/_rels/document.xml.rels")
	numbering, _ := readNumbering(zr, "word/numbering.xml")

	doc := document.New(in.Name(), input.FormatDOCX)
	w := &worker{rels: rels, numbering: numbering}
	if err := w.convertBody(bodyXML, doc.Root); err != nil {
		return nil, docerr.Wrap(docerr.KindParseError, err, "walking body of %s", in.Name()).WithPath(in.Name())
	}

	logger.Debug("docx backend converted document", "node_count", doc.NodeCount())
	return doc, nil
}

func readPart(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// relationship maps an r:id used by hyperlinks and drawings to its target.
type relationship struct {
	Type   string
	Target string
}

func readRelationships(zr *zip.Reader, name string) (map[string]relationship, error) {
	data, err := readPart(zr, name)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Relationships []struct {
			ID     string `xml:"Id,attr"`
			Type   string `xml:"Type,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	out := make(map[string]relationship, len(doc.Relationships))
	for _, r := range doc.Relationships {
		out[r.ID] = relationship{Type: r.Type, Target: r.Target}
	}
	return out, nil
}

// readNumbering records whether each numId is ordered, per spec.md's "ordered
// if the numbering format is decimal, unordered otherwise".
func readNumbering(zr *zip.Reader, name string) (map[string]bool, error) {
	data, err := readPart(zr, name)
	if err != nil {
		return nil, err
	}
	var doc struct {
		AbstractNums []struct {
			AbstractNumID string `xml:"abstractNumId,attr"`
			Lvl           []struct {
				NumFmt struct {
					Val string `xml:"val,attr"`
				} `xml:"numFmt"`
			} `xml:"lvl"`
		} `xml:"abstractNum"`
		Nums []struct {
			NumID       string `xml:"numId,attr"`
			AbstractNum struct {
				Val string `xml:"val,attr"`
			} `xml:"abstractNumId"`
		} `xml:"num"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	decimalByAbstract := map[string]bool{}
	for _, an := range doc.AbstractNums {
		ordered := false
		if len(an.Lvl) > 0 {
			ordered = an.Lvl[0].NumFmt.Val == "decimal"
		}
		decimalByAbstract[an.AbstractNumID] = ordered
	}
	out := map[string]bool{}
	for _, n := range doc.Nums {
		out[n.NumID] = decimalByAbstract[n.AbstractNum.Val]
	}
	return out, nil
}

func headingLevelFromStyle(style string) (int, bool) {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	s = strings.TrimPrefix(s, "heading")
	if len(s) != 1 || s[0] < '1' || s[0] > '6' {
		return 0, false
	}
	return int(s[0] - '0'), true
}

type worker struct {
	rels      map[string]relationship
	numbering map[string]bool

	openList   *document.Node
	openListID string
}

func (w *worker) convertBody(data []byte, root *document.Node) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "document", "body":
			// Wrapper elements: keep reading into their children.
		case "p":
			if err := w.convertParagraph(dec, se, root); err != nil {
				return err
			}
		case "tbl":
			w.openList = nil
			table, err := w.convertTable(dec, se)
			if err != nil {
				return err
			}
			root.AppendChild(table)
		default:
			if err := dec.Skip(); err != nil {
				return err
			}
		}
	}
}

type paragraphProps struct {
	style string
	numID string
}

func (w *worker) readParagraphProps(dec *xml.Decoder) (paragraphProps, error) {
	var props paragraphProps
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return props, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pStyle":
				props.style = attrVal(t, "val")
				if err := dec.Skip(); err != nil {
					return props, err
				}
			case "numId":
				props.numID = attrVal(t, "val")
				if err := dec.Skip(); err != nil {
					return props, err
				}
			default:
				depth++
			}
		case xml.EndElement:
			if depth == 0 {
				return props, nil
			}
			depth--
		}
	}
}

func (w *worker) convertParagraph(dec *xml.Decoder, start xml.StartElement, root *document.Node) error {
	var props paragraphProps
	var node *document.Node

	content, err := drainElement(dec)
	if err != nil {
		return err
	}
	inner := xml.NewDecoder(bytes.NewReader(content))
	for {
		tok, err := inner.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local == "pPr" {
			props, err = w.readParagraphProps(inner)
			if err != nil {
				return err
			}
			continue
		}
		if node == nil {
			node = w.startParagraphNode(props, root)
		}
		if err := w.convertInline(inner, se, node); err != nil {
			return err
		}
	}
	if node == nil {
		node = w.startParagraphNode(props, root)
	}
	return nil
}

// startParagraphNode decides whether this paragraph becomes a Heading, a
// ListItem inside the currently open List, or a plain Paragraph, and wires
// it into the tree accordingly.
func (w *worker) startParagraphNode(props paragraphProps, root *document.Node) *document.Node {
	if level, ok := headingLevelFromStyle(props.style); ok {
		w.openList = nil
		h := document.NewHeading(level)
		root.AppendChild(h)
		return h
	}
	if props.numID != "" {
		if w.openList == nil || w.openListID != props.numID {
			w.openList = document.NewList(w.numbering[props.numID])
			w.openListID = props.numID
			root.AppendChild(w.openList)
		}
		item := document.NewListItem()
		w.openList.AppendChild(item)
		return item
	}
	w.openList = nil
	p := document.NewParagraph()
	root.AppendChild(p)
	return p
}

func (w *worker) convertInline(dec *xml.Decoder, se xml.StartElement, parent *document.Node) error {
	switch se.Name.Local {
	case "r":
		return w.convertRun(dec, nil, parent)
	case "hyperlink":
		rid := attrVal(se, "id")
		var link *string
		if rel, ok := w.rels[rid]; ok {
			link = &rel.Target
		}
		content, err := drainElement(dec)
		if err != nil {
			return err
		}
		inner := xml.NewDecoder(bytes.NewReader(content))
		for {
			tok, err := inner.Token()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			if rse, ok := tok.(xml.StartElement); ok && rse.Name.Local == "r" {
				if err := w.convertRun(inner, link, parent); err != nil {
					return err
				}
			}
		}
	default:
		return dec.Skip()
	}
}

func (w *worker) convertRun(dec *xml.Decoder, link *string, parent *document.Node) error {
	content, err := drainElement(dec)
	if err != nil {
		return err
	}
	inner := xml.NewDecoder(bytes.NewReader(content))
	fmtFlags := &document.Formatting{Link: link}
	for {
		tok, err := inner.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "rPr":
			w.readRunProps(inner, fmtFlags)
		case "t":
			var text string
			if err := inner.DecodeElement(&text, &se); err != nil {
				return err
			}
			var f *document.Formatting
			if !fmtFlags.IsZero() {
				copyF := *fmtFlags
				f = &copyF
			}
			parent.AppendChild(document.NewText(document.TextItem{Content: text, Formatting: f}))
		case "tab":
			parent.AppendChild(document.NewText(document.TextItem{Content: "\t"}))
			inner.Skip()
		case "br":
			parent.AppendChild(document.NewText(document.TextItem{Content: "\n"}))
			inner.Skip()
		case "drawing":
			img := document.NewImage()
			if name := firstBlipTarget(content, w.rels); name != "" {
				img.Metadata.Extra["part"] = name
			}
			parent.AppendChild(img)
			inner.Skip()
		default:
			inner.Skip()
		}
	}
}

func (w *worker) readRunProps(dec *xml.Decoder, f *document.Formatting) {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		switch t := tok.(type) {
		case xml.StartElement:
			val := attrVal(t, "val")
			on := val != "false" && val != "0"
			switch t.Name.Local {
			case "b":
				f.Bold = on
			case "i":
				f.Italic = on
			case "u":
				f.Underline = val != "none" && val != ""
			case "strike":
				f.Strikethrough = on
			}
			dec.Skip()
		case xml.EndElement:
			if depth == 0 {
				return
			}
			depth--
		}
	}
}

// firstBlipTarget scans a <w:drawing> subtree for the first <a:blip r:embed>
// reference and resolves it against rels. blip is nested several levels
// under drawing (inline/anchor > graphic > graphicData > pic > blipFill), so
// a token scan is simpler than mirroring that whole element hierarchy.
func firstBlipTarget(drawingXML []byte, rels map[string]relationship) string {
	dec := xml.NewDecoder(bytes.NewReader(drawingXML))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "blip" {
			embed := attrVal(se, "embed")
			if rel, ok := rels[embed]; ok {
				return rel.Target
			}
			return ""
		}
	}
	return ""
}

func attrVal(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// drainElement reads the remainder of the element whose StartElement has
// already been consumed by the caller's Token() call, returning the raw
// bytes of its content (the element's own start and end tags are not
// included) so it can be re-decoded with a fresh *xml.Decoder.
func drainElement(dec *xml.Decoder) ([]byte, error) {
	depth := 1
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if err := enc.EncodeToken(t.Copy()); err != nil {
				return nil, err
			}
		case xml.EndElement:
			depth--
			if depth == 0 {
				break
			}
			if err := enc.EncodeToken(t); err != nil {
				return nil, err
			}
		default:
			if err := enc.EncodeToken(xml.CopyToken(tok)); err != nil {
				return nil, err
			}
		}
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
