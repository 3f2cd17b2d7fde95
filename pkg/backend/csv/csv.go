// Package csv implements the CSV backend (spec.md §4.2 "CSV backend"): rows
// become a single Table node, with a header-detection heuristic and
// row-length tolerance grounded on the same "tolerate and warn" posture as
// pkg/backend/html.
package csv

import (
	"bytes"
	"context"
	stdcsv "encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/kaidoc/docling/internal/docctx"
	"github.com/kaidoc/docling/internal/xlog"
	"github.com/kaidoc/docling/pkg/docerr"
	"github.com/kaidoc/docling/pkg/document"
	"github.com/kaidoc/docling/pkg/input"
)

// Backend is the CSV backend implementation.
type Backend struct{}

// New constructs a CSV Backend.
func New() *Backend { return &Backend{} }

func (*Backend) SupportedFormats() []input.Format {
	return []input.Format{input.FormatCSV}
}

func (*Backend) IsValid(ctx context.Context, in *input.Descriptor) bool { return true }

func (b *Backend) Convert(ctx context.Context, in *input.Descriptor) (*document.Document, error) {
	raw, err := in.Bytes()
	if err != nil {
		return nil, docerr.Wrap(docerr.KindFileNotFound, err, "reading %s", in.Name()).WithPath(in.Name())
	}
	ctx = docctx.WithOrigin(ctx, docctx.Origin{Path: in.Name(), Format: string(input.FormatCSV)})
	logger := xlog.From(ctx)

	r := stdcsv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, docerr.Wrap(docerr.KindParseError, err, "parsing %s", in.Name()).WithPath(in.Name())
		}
		records = append(records, rec)
	}

	doc := document.New(in.Name(), input.FormatCSV)
	if len(records) == 0 {
		return doc, nil
	}

	hasHeader := looksLikeHeader(records[0])
	var headers []string
	dataRows := records
	if hasHeader {
		headers = records[0]
		dataRows = records[1:]
	}

	width := len(headers)
	if width == 0 {
		for _, rec := range dataRows {
			if len(rec) > width {
				width = len(rec)
			}
		}
	}

	rows := make([][]document.TableCell, 0, len(dataRows))
	for _, rec := range dataRows {
		cells := make([]document.TableCell, len(rec))
		for i, v := range rec {
			cells[i] = document.NewCell(v)
		}
		switch {
		case len(cells) < width:
			for len(cells) < width {
				cells = append(cells, document.NewCell(""))
			}
			docctx.Warn(ctx, "csv row padded with empty cells to header length")
		case width > 0 && len(cells) > width:
			cells = cells[:width]
			docctx.Warn(ctx, "csv row truncated to header length")
		}
		rows = append(rows, cells)
	}

	table := document.NewTable(document.TableData{
		Headers:   headers,
		Rows:      rows,
		HasHeader: hasHeader,
	})
	doc.Root.AppendChild(table)

	logger.Debug("csv backend converted document", "rows", len(rows), "has_header", hasHeader)
	return doc, nil
}

// looksLikeHeader reports whether every field of row is non-numeric, the
// heuristic spec.md §4.2 specifies for detecting an implicit header row.
func looksLikeHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	for _, field := range row {
		trimmed := strings.TrimSpace(field)
		if trimmed == "" {
			continue
		}
		if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return false
		}
	}
	return true
}
