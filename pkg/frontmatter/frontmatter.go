// Package frontmatter extracts a leading YAML block from Markdown source and
// serializes extension maps back to YAML for Markdown export. It is the
// surviving half of the teacher's frontmatter handling, repurposed: instead
// of feeding a chunk-header generator, the extracted map now populates
// document.Metadata.Extra, and Serialize is used by pkg/serialize's Markdown
// exporter to re-emit a front block.
package frontmatter

import (
	"bytes"
	"strings"

	adrg "github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Extract parses a leading "---\n...\n---\n" YAML block off markdown, if
// present, and returns the map plus the remaining body bytes. A document
// with no frontmatter returns an empty, non-nil map and the original bytes.
func Extract(markdown []byte) (map[string]any, []byte, error) {
	var fm map[string]any
	body, err := adrg.Parse(bytes.NewReader(markdown), &fm)
	if err != nil {
		return nil, nil, err
	}
	if fm == nil {
		fm = map[string]any{}
	}
	return fm, body, nil
}

// Serialize renders m as a "---\n...\n---\n" YAML block. An empty map
// serializes to the empty string so callers can skip emitting an empty
// front block.
func Serialize(m map[string]any) (string, error) {
	if len(m) == 0 {
		return "", nil
	}
	body, err := yaml.Marshal(m)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(bytes.TrimRight(body, "\n"))
	b.WriteString("\n---\n")
	return b.String(), nil
}
