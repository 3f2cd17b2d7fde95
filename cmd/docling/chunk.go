package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/kaidoc/docling/pkg/chunker"
	"github.com/kaidoc/docling/pkg/input"
	"github.com/kaidoc/docling/pkg/pipeline"
	"github.com/kaidoc/docling/pkg/tokenizer"
)

// ChunkCmd converts matched files and splits each resulting Document into
// token-budgeted chunks, the CLI's counterpart to cmd/chunky/run.go's
// RunCmd, split here into a separate convert/chunk pair of subcommands.
type ChunkCmd struct {
	Options

	Files []string `arg:"" optional:"" help:"File globs to chunk"`
}

// Run executes the chunk command.
func (c *ChunkCmd) Run() error {
	c.Options.Files = c.Files

	projectRoot, foundConfig, err := FindProjectRoot()
	if err != nil {
		return err
	}

	configOpts := &Options{}
	if foundConfig {
		configOpts, err = LoadConfig(projectRoot)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	opts := MergeOptions(configOpts, &c.Options)
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	files, err := ExpandGlobs(projectRoot, opts.Files)
	if err != nil {
		return fmt.Errorf("failed to expand globs: %w", err)
	}
	sort.Strings(files)

	if opts.Verbose {
		opts.Print(projectRoot, files)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no files matched")
		return nil
	}

	tok, err := createTokenizer(opts.Tokenizer, opts.Budget)
	if err != nil {
		return err
	}
	c2, err := newChunker(opts, tok)
	if err != nil {
		return err
	}

	absOutDir := opts.OutDir
	if !filepath.IsAbs(absOutDir) {
		absOutDir = filepath.Join(projectRoot, absOutDir)
	}
	if !opts.DryRun {
		if err := os.MkdirAll(absOutDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	p := newPipeline()
	ctx := context.Background()
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("chunking"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)

	var failures []string
	var jumboCount int
	for _, file := range files {
		absPath := filepath.Join(projectRoot, file)
		res := p.Convert(ctx, input.FromPath(absPath))
		bar.Add(1)

		if res.Status == pipeline.StatusFailure {
			failures = append(failures, fmt.Sprintf("%s: %v", file, res.Errors))
			continue
		}

		index := 0
		for chunk := range c2.Chunk(ctx, res.Document) {
			text := c2.Contextualize(chunk)
			if tok.CountTokens(text) > opts.Budget {
				jumboCount++
				if opts.Verbose {
					fmt.Fprintf(os.Stderr, "warning: %s chunk %d exceeds budget (%d tokens)\n", file, chunk.Index, tok.CountTokens(text))
				}
			}

			if opts.DryRun {
				fmt.Println(text)
				fmt.Println()
				continue
			}
			outPath := filepath.Join(absOutDir, chunkFilename(file, index))
			if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			index++
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d file(s) failed to convert:\n%s", len(failures), strings.Join(failures, "\n"))
	}
	if jumboCount > 0 && opts.Strict {
		return fmt.Errorf("strict mode enabled: %d chunk(s) exceeded the token budget", jumboCount)
	}
	return nil
}

// newChunker builds the configured chunking strategy, generalizing
// cmd/chunky/run.go's single hard-coded chunker.New call into a choice
// between the two Chunker implementations.
func newChunker(opts *Options, tok tokenizer.Tokenizer) (chunker.Chunker, error) {
	merge := !opts.NoMerge
	if opts.Chunker == "hierarchical" {
		return chunker.NewHierarchicalChunker(chunker.WithMergeListItems(merge)), nil
	}
	return chunker.NewHybridChunker(
		chunker.WithHybridTokenizer(tok),
		chunker.WithHybridMaxTokens(opts.Budget),
		chunker.WithHybridMergeListItems(merge),
	)
}

var chunkFileSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// chunkFilename derives a deterministic, collision-resistant output filename
// for one chunk: an 8-character hash of the source file's directory, its
// sanitized base name, and the chunk's zero-padded index -- the same shape
// as cmd/chunky/output.go's generateChunkFilename.
func chunkFilename(sourcePath string, index int) string {
	dirHash := sha256.Sum256([]byte(filepath.Dir(sourcePath)))
	hashPrefix := hex.EncodeToString(dirHash[:])[:8]

	base := filepath.Base(sourcePath)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	base = strings.Trim(chunkFileSanitizer.ReplaceAllString(base, "_"), "_")

	return fmt.Sprintf("%s_%s.%03d.md", hashPrefix, base, index)
}
