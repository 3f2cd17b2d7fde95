package chunker

import (
	"context"
	"iter"

	"github.com/kaidoc/docling/pkg/document"
)

// Chunker turns a Document into a lazily-produced sequence of Chunks. The
// returned iter.Seq computes each Chunk on demand as the caller ranges over
// it, mirroring the teacher's pull-based traverseUnits/Chunks split: nothing
// beyond the current chunk is built until the caller asks for more.
type Chunker interface {
	Chunk(ctx context.Context, doc *document.Document) iter.Seq[Chunk]
	Contextualize(c Chunk) string
}

// isLeafStructural reports whether k is a chunk boundary by itself (spec.md
// §4.4: "each leaf-level structural element becomes one chunk").
func isLeafStructural(k document.Kind) bool {
	switch k {
	case document.KindHeading, document.KindParagraph, document.KindCodeBlock,
		document.KindBlockquote, document.KindTable, document.KindListItem:
		return true
	default:
		return false
	}
}

// isContainer is the set of Kind values the traversal descends through
// without emitting a chunk of their own.
func isContainer(k document.Kind) bool {
	switch k {
	case document.KindDocument, document.KindSection:
		return true
	default:
		return false
	}
}
