// Package chunker implements the Chunker abstraction (spec.md §4.4): turning
// a document.Document into a lazy sequence of token-budgeted Chunks, grounded
// on the teacher's pkg/chunker (traverse.go's pre-order traversal, chunk.go's
// greedy chunkBuilder, options.go's functional-options builder), generalized
// from a flat Markdown section tree to the unified document.Node tree and
// from "accumulate body under one YAML frontmatter header" to "accumulate
// leaf structural elements under a heading path".
package chunker

import "strings"

// Chunk is a contiguous, contextualizable span of document text.
type Chunk struct {
	// Text is the chunk's own content, excluding heading/caption context.
	Text string
	// Headings is the path of ancestor Heading texts, most-shallow first.
	Headings []string
	// Caption is set for chunks built from a captioned Table; nil otherwise.
	Caption *string
	// Index is this chunk's sequential position, 0-based.
	Index int
	// StartOffset and EndOffset are character offsets into the document's
	// flattened text.
	StartOffset int
	EndOffset   int
}

// Contextualize renders c the way spec.md §4.4 defines: each heading on its
// own line, the optional caption, then the chunk text, newline-joined. It is
// the shared implementation both HierarchicalChunker and HybridChunker
// expose through their Contextualize method.
func Contextualize(c Chunk) string {
	lines := make([]string, 0, len(c.Headings)+2)
	lines = append(lines, c.Headings...)
	if c.Caption != nil {
		lines = append(lines, *c.Caption)
	}
	lines = append(lines, c.Text)
	return strings.Join(lines, "\n")
}

func sameHeadingPath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameCaption(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
