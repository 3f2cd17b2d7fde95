package pdf

import (
	"context"
	"unicode"

	"github.com/kaidoc/docling/internal/docctx"
	"github.com/kaidoc/docling/pkg/ocr"
)

// looksScanned applies spec.md's heuristic for stage 6: a page with fewer
// than 20 non-whitespace characters of extracted text and at least one
// page-sized image is presumed to be a scan rather than genuinely empty.
func looksScanned(blocks []TextBlock, images []ImageRegion, pageWidth, pageHeight float64) bool {
	nonSpace := 0
	for _, b := range blocks {
		for _, r := range b.Text {
			if !unicode.IsSpace(r) {
				nonSpace++
			}
		}
	}
	if nonSpace >= 20 {
		return false
	}
	for _, img := range images {
		if img.BBox.Width() >= pageWidth*0.9 && img.BBox.Height() >= pageHeight*0.9 {
			return true
		}
	}
	return false
}

// ocrBlocks runs engine over a rasterized page bitmap and converts each
// recognized word into a TextBlock, feeding back into layout/table
// detection the same way genuinely extracted text would (spec.md: "each
// word becomes a TextBlock ... feeds back into stages 3-4").
func ocrBlocks(engine ocr.Engine, bitmap []byte, language string) ([]TextBlock, float64, error) {
	result, err := engine.Recognize(bitmap, language)
	if err != nil {
		return nil, 0, err
	}
	blocks := make([]TextBlock, 0, len(result.Words))
	for _, w := range result.Words {
		blocks = append(blocks, TextBlock{
			Text: w.Text,
			BBox: Rect{X0: w.X, Y0: w.Y, X1: w.X + w.W, Y1: w.Y + w.H},
			Kind: BlockParagraph,
		})
	}
	return blocks, result.Confidence(), nil
}

// warnScannedWithoutOCR records the documented fallback: a page looks
// scanned but OCR is disabled, so its body stays empty.
func warnScannedWithoutOCR(ctx context.Context) {
	docctx.Warn(ctx, "page appears scanned but OCR is disabled; body left empty")
}
