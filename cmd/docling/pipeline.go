package main

import (
	"github.com/kaidoc/docling/pkg/backend/csv"
	"github.com/kaidoc/docling/pkg/backend/docx"
	"github.com/kaidoc/docling/pkg/backend/html"
	"github.com/kaidoc/docling/pkg/backend/markdown"
	"github.com/kaidoc/docling/pkg/backend/pdf"
	"github.com/kaidoc/docling/pkg/pipeline"
)

// newPipeline builds the Pipeline with every backend the module ships
// registered, the CLI's equivalent of cmd/chunky/run.go's single
// hard-coded Markdown-only chunker.New.
func newPipeline() *pipeline.Pipeline {
	return pipeline.NewDefault(
		markdown.New(),
		html.New(),
		csv.New(),
		docx.New(),
		pdf.New(),
	)
}
