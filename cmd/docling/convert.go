package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/kaidoc/docling/pkg/input"
	"github.com/kaidoc/docling/pkg/pipeline"
	"github.com/kaidoc/docling/pkg/serialize"
)

// ConvertCmd converts matched files into the unified Document representation
// and exports each as JSON, Markdown, or plain text.
type ConvertCmd struct {
	Options

	Files []string `arg:"" optional:"" help:"File globs to convert"`
}

// Run executes the convert command: resolve the project root and config,
// merge in CLI flags, expand globs, then process every matched file in
// turn, the same shape cmd/chunky/run.go's RunCmd.Run follows.
func (c *ConvertCmd) Run() error {
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
		progressbar.OptionSetDescription("converting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)

	var failures []string
	for _, file := range files {
		absPath := filepath.Join(projectRoot, file)
		res := p.Convert(ctx, input.FromPath(absPath))
		bar.Add(1)

		if res.Status == pipeline.StatusFailure {
			failures = append(failures, fmt.Sprintf("%s: %v", file, res.Errors))
			continue
		}
		if len(res.Warnings) > 0 && opts.Verbose {
			for _, w := range res.Warnings {
				fmt.Fprintf(os.Stderr, "warning: %s: %s\n", file, w)
			}
		}

		out, ext, err := renderDocument(res, opts.Format)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", file, err))
			continue
		}

		if opts.DryRun {
			fmt.Println(out)
			continue
		}
		outPath := filepath.Join(absOutDir, convertedFilename(file, ext))
		if err := os.WriteFile(outPath, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d file(s) failed to convert:\n%s", len(failures), strings.Join(failures, "\n"))
	}
	return nil
}

// renderDocument exports res.Document in the requested format, returning the
// rendered text and the file extension it should be written under.
func renderDocument(res *pipeline.Result, format string) (string, string, error) {
	switch format {
	case "markdown":
		return serialize.ToMarkdown(res.Document), "md", nil
	case "text":
		return serialize.ToPlainText(res.Document), "txt", nil
	default:
		data, err := serialize.ToJSON(res.Document)
		if err != nil {
			return "", "", err
		}
		return string(data), "json", nil
	}
}

// convertedFilename derives the output filename for a converted source
// file, keeping its base name and swapping in the export extension.
func convertedFilename(sourcePath, ext string) string {
	base := filepath.Base(sourcePath)
	if e := filepath.Ext(base); e != "" {
		base = base[:len(base)-len(e)]
	}
	return base + "." + ext
}
