package chunker

import (
	"context"
	"iter"

	"github.com/kaidoc/docling/pkg/docerr"
	"github.com/kaidoc/docling/pkg/document"
	"github.com/kaidoc/docling/pkg/tokenizer"
)

// hybridConfig is validated by NewHybridChunker the way the teacher's
// options.go validates chunkDocumentParams before chunkDocument runs.
type hybridConfig struct {
	tokenizer      tokenizer.Tokenizer
	maxTokens      int
	mergeListItems bool
}

// HybridOption configures a HybridChunker.
type HybridOption func(*hybridConfig)

// WithHybridTokenizer sets the tokenizer used to measure contextualized
// chunks against the token budget. Required.
func WithHybridTokenizer(t tokenizer.Tokenizer) HybridOption {
	return func(cfg *hybridConfig) { cfg.tokenizer = t }
}

// WithHybridMaxTokens sets the per-chunk token budget. Required, must be >0.
func WithHybridMaxTokens(n int) HybridOption {
	return func(cfg *hybridConfig) { cfg.maxTokens = n }
}

// WithHybridMergeListItems controls the underlying hierarchical pass's list
// handling, same semantics as WithMergeListItems. Default true.
func WithHybridMergeListItems(merge bool) HybridOption {
	return func(cfg *hybridConfig) { cfg.mergeListItems = merge }
}

// HybridChunker runs the three-pass algorithm from spec.md §4.4: hierarchical
// chunking, then splitting any chunk whose contextualized form exceeds the
// token budget, then merging adjacent peers that share a heading path and
// caption back together while the merge still fits the budget.
type HybridChunker struct {
	cfg hybridConfig
}

// NewHybridChunker validates opts and builds a HybridChunker, mirroring the
// teacher's New(opts...) (Chunker, error) default-then-validate pattern.
func NewHybridChunker(opts ...HybridOption) (*HybridChunker, error) {
	cfg := hybridConfig{mergeListItems: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxTokens <= 0 {
		return nil, docerr.New(docerr.KindInvalidConfig, "hybrid chunker requires a positive max token budget")
	}
	if cfg.tokenizer == nil {
		return nil, docerr.New(docerr.KindInvalidConfig, "hybrid chunker requires a tokenizer")
	}
	return &HybridChunker{cfg: cfg}, nil
}

// Contextualize implements Chunker.
func (h *HybridChunker) Contextualize(c Chunk) string { return Contextualize(c) }

// Chunk implements Chunker. Unlike HierarchicalChunker's fully lazy walk, the
// split and merge passes need lookahead across the whole pass-1 output (a
// merge must know whether the next chunk matches; a split must exhaust the
// oversized chunk's own content) so this implementation materializes pass 1
// before producing the final sequence. The returned iter.Seq still streams
// its results one at a time to the caller.
func (h *HybridChunker) Chunk(ctx context.Context, doc *document.Document) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		base := NewHierarchicalChunker(WithMergeListItems(h.cfg.mergeListItems))

		var pass1 []Chunk
		for c := range base.Chunk(ctx, doc) {
			pass1 = append(pass1, c)
		}
		if ctx.Err() != nil {
			return
		}

		pass2 := h.split(pass1)
		pass3 := h.merge(pass2)

		for i, c := range pass3 {
			c.Index = i
			if !yield(c) {
				return
			}
		}
	}
}

// split implements pass 2: any chunk whose contextualized form exceeds the
// budget is broken into smaller chunks sharing its heading path and caption.
func (h *HybridChunker) split(chunks []Chunk) []Chunk {
	var out []Chunk
	for _, c := range chunks {
		fits := func(body string) bool {
			candidate := c
			candidate.Text = body
			return h.cfg.tokenizer.CountTokens(Contextualize(candidate)) <= h.cfg.maxTokens
		}
		if fits(c.Text) {
			out = append(out, c)
			continue
		}

		pieces := splitToFit(c.Text, fits)
		cursor := c.StartOffset
		for _, p := range pieces {
			start := cursor
			end := start + runeLen(p)
			cursor = end
			out = append(out, Chunk{
				Text:        p,
				Headings:    c.Headings,
				Caption:     c.Caption,
				StartOffset: start,
				EndOffset:   end,
			})
		}
	}
	return out
}

// merge implements pass 3: adjacent chunks sharing a heading path and
// caption are folded back together as long as the merged, contextualized
// result still fits the budget. A single forward fold handles chains of more
// than two mergeable peers in one pass.
func (h *HybridChunker) merge(chunks []Chunk) []Chunk {
	var out []Chunk
	var cur *Chunk
	for i := range chunks {
		next := chunks[i]
		if cur == nil {
			c := next
			cur = &c
			continue
		}
		if sameHeadingPath(cur.Headings, next.Headings) && sameCaption(cur.Caption, next.Caption) {
			merged := Chunk{
				Text:        cur.Text + "\n" + next.Text,
				Headings:    cur.Headings,
				Caption:     cur.Caption,
				StartOffset: cur.StartOffset,
				EndOffset:   next.EndOffset,
			}
			if h.cfg.tokenizer.CountTokens(Contextualize(merged)) <= h.cfg.maxTokens {
				cur = &merged
				continue
			}
		}
		out = append(out, *cur)
		c := next
		cur = &c
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}
