package chunker

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// sentenceBoundary splits after a sentence-ending punctuation mark followed
// by whitespace. RE2 (the stdlib regexp engine) cannot express the lookbehind
// this needs, which is why the hybrid splitter reaches for regexp2 instead of
// hand-rolling a scanner; see DESIGN.md.
var sentenceBoundary = regexp2.MustCompile(`(?<=[.!?])\s+`, regexp2.None)

// splitSentences breaks text at sentence boundaries, returning text whole
// when no boundary is found.
func splitSentences(text string) []string {
	var out []string
	last := 0
	m, _ := sentenceBoundary.FindStringMatch(text)
	for m != nil {
		start := m.Index
		end := m.Index + m.Length
		out = append(out, text[last:start])
		last = end
		m, _ = sentenceBoundary.FindNextMatch(m)
	}
	out = append(out, text[last:])
	return nonEmptyTrimmed(out)
}

func nonEmptyTrimmed(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitToFit reduces text into the smallest number of pieces such that fits
// accepts each one, falling back sentence -> word -> codepoint so it always
// makes progress (spec.md §4.4: "splitting falls back through word and then
// character boundaries if necessary"). fits is handed a candidate body text
// and decides whether contextualize(candidate) stays within budget.
func splitToFit(text string, fits func(string) bool) []string {
	if fits(text) {
		return []string{text}
	}

	if sentences := splitSentences(text); len(sentences) > 1 {
		return packUnits(sentences, fits)
	}

	if words := strings.Fields(text); len(words) > 1 {
		return packUnits(words, fits)
	}

	return splitRunes([]rune(text), fits)
}

// packUnits greedily joins units with single spaces while the joined
// candidate still fits, recursing into splitToFit for any single unit that
// doesn't fit on its own (mirrors the teacher's chunkBuilder.appendUnit
// jumbo-unit special case, generalized to an arbitrary unit list instead of
// one token stream).
func packUnits(units []string, fits func(string) bool) []string {
	var out []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}

	for _, u := range units {
		candidate := u
		if cur.Len() > 0 {
			candidate = cur.String() + " " + u
		}
		if fits(candidate) {
			if cur.Len() > 0 {
				cur.WriteString(" ")
			}
			cur.WriteString(u)
			continue
		}
		flush()
		if fits(u) {
			cur.WriteString(u)
		} else {
			out = append(out, splitToFit(u, fits)...)
		}
	}
	flush()
	return out
}

// splitRunes is the last-resort fallback: binary-search the largest rune
// prefix that fits, emit it, and repeat over the remainder.
func splitRunes(runes []rune, fits func(string) bool) []string {
	var out []string
	start := 0
	for start < len(runes) {
		lo, hi := start+1, len(runes)
		best := start + 1
		for lo <= hi {
			mid := (lo + hi) / 2
			if fits(string(runes[start:mid])) {
				best = mid
				lo = mid + 1
			} else {
				hi = mid - 1
			}
		}
		out = append(out, string(runes[start:best]))
		start = best
	}
	return out
}
