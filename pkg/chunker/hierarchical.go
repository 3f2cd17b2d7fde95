package chunker

import (
	"context"
	"iter"

	"github.com/kaidoc/docling/pkg/document"
)

// HierarchicalChunker assigns one Chunk per leaf structural element (spec.md
// §4.4), generalizing the teacher's traverseUnits explicit-stack pre-order
// walk from tokenizer.TokenizedSection to document.Node.
type HierarchicalChunker struct {
	mergeListItems bool
}

// HierarchicalOption configures a HierarchicalChunker.
type HierarchicalOption func(*HierarchicalChunker)

// WithMergeListItems controls whether a List's items are emitted as one
// chunk (true, the default) or one chunk per ListItem (false).
func WithMergeListItems(merge bool) HierarchicalOption {
	return func(h *HierarchicalChunker) { h.mergeListItems = merge }
}

// NewHierarchicalChunker builds a HierarchicalChunker with MergeListItems
// defaulting to true.
func NewHierarchicalChunker(opts ...HierarchicalOption) *HierarchicalChunker {
	h := &HierarchicalChunker{mergeListItems: true}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Contextualize implements Chunker.
func (h *HierarchicalChunker) Contextualize(c Chunk) string { return Contextualize(c) }

// Chunk implements Chunker. The returned sequence walks doc.Root lazily:
// each call into yield computes exactly the chunk it hands back, and the
// walk halts immediately if the caller stops ranging or ctx is canceled.
func (h *HierarchicalChunker) Chunk(ctx context.Context, doc *document.Document) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		cursor := 0
		index := 0

		// Backends lay headings out as flat siblings in reading order rather
		// than nesting content under them, so the chunker tracks the active
		// heading path itself: a heading's text enters the path for every
		// node that follows it, in reading order, until a heading at the
		// same or shallower level supersedes it.
		var stack []headingFrame

		emit := func(n *document.Node, text string) bool {
			start := cursor
			end := start + runeLen(text)
			cursor = end
			c := Chunk{
				Text:        text,
				Headings:    headingPath(stack),
				Caption:     captionFor(n),
				Index:       index,
				StartOffset: start,
				EndOffset:   end,
			}
			index++
			return yield(c)
		}

		var walk func(n *document.Node) bool
		walk = func(n *document.Node) bool {
			if ctx.Err() != nil {
				return false
			}
			switch {
			case n.Kind == document.KindHeading:
				text := leafText(n)
				for len(stack) > 0 && stack[len(stack)-1].level >= n.HeadingLevel {
					stack = stack[:len(stack)-1]
				}
				ok := emit(n, text)
				stack = pushHeading(stack, n.HeadingLevel, text)
				return ok
			case n.Kind == document.KindList && h.mergeListItems:
				return emit(n, mergedListText(n))
			case isContainer(n.Kind) || n.Kind == document.KindList:
				for _, child := range n.Children {
					if !walk(child) {
						return false
					}
				}
				return true
			case isLeafStructural(n.Kind):
				return emit(n, leafText(n))
			default:
				return true
			}
		}

		walk(doc.Root)
	}
}

// headingFrame is one entry of the active heading stack.
type headingFrame struct {
	level int
	text  string
}

// pushHeading pops every frame at level >= the new heading's level (it is
// no longer an ancestor in reading order) before appending the new one.
func pushHeading(stack []headingFrame, level int, text string) []headingFrame {
	for len(stack) > 0 && stack[len(stack)-1].level >= level {
		stack = stack[:len(stack)-1]
	}
	return append(stack, headingFrame{level: level, text: text})
}

func headingPath(stack []headingFrame) []string {
	if len(stack) == 0 {
		return nil
	}
	out := make([]string, len(stack))
	for i, f := range stack {
		out[i] = f.text
	}
	return out
}
