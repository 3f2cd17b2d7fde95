package main

import (
	"fmt"
	"os"
)

// Options is the unified configuration for both CLI flags and .doclingrc,
// adapted from cmd/chunky's ChunkyOptions: one struct Kong parses flags
// into and yaml.v3 marshals to and from the config file.
type Options struct {
	OutDir    string   `yaml:"outDir" help:"Output directory for results" short:"o" default:"."`
	Format    string   `yaml:"format" help:"Export format for convert: json, markdown, or text" short:"f" default:"json"`
	Chunker   string   `yaml:"chunker" help:"Chunking strategy: hierarchical or hybrid" short:"c" default:"hybrid"`
	Budget    int      `yaml:"budget" help:"Token budget per chunk" short:"b" default:"512"`
	Tokenizer string   `yaml:"tokenizer" help:"Tokenizer: char, word, or a tiktoken encoding name" short:"t" default:"o200k_base"`
	Strict    bool     `yaml:"strict" help:"Fail when a chunk exceeds the token budget" short:"s"`
	NoMerge   bool     `yaml:"noMerge" help:"Emit one chunk per list item instead of merging"`
	DryRun    bool     `yaml:"dryRun" help:"Print results without writing files" short:"d"`
	Verbose   bool     `yaml:"verbose" help:"Show effective configuration" short:"v"`
	Files     []string `yaml:"files,omitempty" json:"-" kong:"-"`
}

// Validate rejects option combinations no backend or chunker would accept,
// the same role ChunkyOptions.Validate plays before chunking ever starts.
func (o *Options) Validate() error {
	if o.Budget < 100 {
		return fmt.Errorf("budget must be at least 100, got %d", o.Budget)
	}
	switch o.Format {
	case "json", "markdown", "text":
	default:
		return fmt.Errorf("format must be one of json, markdown, text, got %q", o.Format)
	}
	switch o.Chunker {
	case "hierarchical", "hybrid":
	default:
		return fmt.Errorf("chunker must be hierarchical or hybrid, got %q", o.Chunker)
	}
	return nil
}

// Print writes the effective configuration and matched file list to stderr,
// adapted from ChunkyOptions.Print minus the gchalk coloring: spec.md's
// Non-goals rule color output out of this CLI.
func (o *Options) Print(root string, files []string) {
	fmt.Fprintf(os.Stderr, "Effective configuration\n")
	fmt.Fprintf(os.Stderr, "  Project root: %s\n", root)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", o.OutDir)
	fmt.Fprintf(os.Stderr, "  Format:       %s\n", o.Format)
	fmt.Fprintf(os.Stderr, "  Chunker:      %s\n", o.Chunker)
	fmt.Fprintf(os.Stderr, "  Budget:       %d\n", o.Budget)
	fmt.Fprintf(os.Stderr, "  Tokenizer:    %s\n", o.Tokenizer)
	fmt.Fprintf(os.Stderr, "  Strict:       %t\n", o.Strict)
	fmt.Fprintf(os.Stderr, "Files (%d total):\n", len(files))
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "  (none matched)")
		return
	}
	for _, f := range files {
		fmt.Fprintf(os.Stderr, "  - %s\n", f)
	}
}
