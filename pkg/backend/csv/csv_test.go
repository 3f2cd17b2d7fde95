package csv

import (
	"context"
	"strings"
	"testing"

	"github.com/kaidoc/docling/internal/docctx"
	"github.com/kaidoc/docling/pkg/document"
	"github.com/kaidoc/docling/pkg/input"
)

func TestConvert_HeaderDetectedAndRowsMapped(t *testing.T) {
	src := "name,age\nalice,30\nbob,25\n"
	d := input.FromBytes([]byte(src), "people.csv")

	doc, err := New().Convert(context.Background(), d)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if err := document.Validate(doc); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if len(doc.Root.Children) != 1 || doc.Root.Children[0].Kind != document.KindTable {
		t.Fatalf("expected single Table root child, got %+v", doc.Root.Children)
	}
	table := doc.Root.Children[0].Table
	if !table.HasHeader {
		t.Fatalf("expected header to be detected")
	}
	if got := table.Headers; len(got) != 2 || got[0] != "name" || got[1] != "age" {
		t.Fatalf("headers = %v", got)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(table.Rows))
	}
	if table.Rows[0][0].Content != "alice" {
		t.Fatalf("row 0 cell 0 = %q", table.Rows[0][0].Content)
	}
}

func TestConvert_AllNumericFirstRowIsNotHeader(t *testing.T) {
	src := "1,2\n3,4\n"
	d := input.FromBytes([]byte(src), "nums.csv")
	doc, err := New().Convert(context.Background(), d)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	table := doc.Root.Children[0].Table
	if table.HasHeader {
		t.Fatalf("all-numeric first row should not be treated as a header")
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
}

func TestConvert_ShortRowPaddedLongRowTruncated(t *testing.T) {
	src := "a,b,c\n1,2\n3,4,5,6\n"
	d := input.FromBytes([]byte(src), "ragged.csv")

	ctx := docctx.WithWarnings(context.Background())
	doc, err := New().Convert(ctx, d)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	table := doc.Root.Children[0].Table
	if table.GridWidth() != 3 {
		t.Fatalf("grid width = %d, want 3", table.GridWidth())
	}
	if table.Rows[0][2].Content != "" {
		t.Fatalf("padded cell should be empty, got %q", table.Rows[0][2].Content)
	}
	if len(table.Rows[1]) != 3 {
		t.Fatalf("truncated row should have 3 cells, got %d", len(table.Rows[1]))
	}

	warnings := docctx.Warnings(ctx)
	var sawPad, sawTrunc bool
	for _, w := range warnings {
		if strings.Contains(w, "padded") {
			sawPad = true
		}
		if strings.Contains(w, "truncated") {
			sawTrunc = true
		}
	}
	if !sawPad || !sawTrunc {
		t.Fatalf("expected both padding and truncation warnings, got %v", warnings)
	}
}

func TestConvert_EmptyInputProducesEmptyRoot(t *testing.T) {
	d := input.FromBytes([]byte(""), "empty.csv")
	doc, err := New().Convert(context.Background(), d)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if len(doc.Root.Children) != 0 {
		t.Fatalf("expected zero children, got %d", len(doc.Root.Children))
	}
}
