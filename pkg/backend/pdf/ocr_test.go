package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/kaidoc/docling/pkg/ocr"
)

func TestLooksScanned_TrueForSparseTextWithFullPageImage(t *testing.T) {
	blocks := []TextBlock{{Text: "1"}}
	images := []ImageRegion{{BBox: Rect{X0: 0, Y0: 0, X1: 612, Y1: 792}}}
	if !looksScanned(blocks, images, 612, 792) {
		t.Fatalf("expected scanned page to be detected")
	}
}

func TestLooksScanned_FalseWithEnoughText(t *testing.T) {
	blocks := []TextBlock{{Text: "This page already has plenty of real extracted text content."}}
	images := []ImageRegion{{BBox: Rect{X0: 0, Y0: 0, X1: 612, Y1: 792}}}
	if looksScanned(blocks, images, 612, 792) {
		t.Fatalf("expected page with substantial text not to be flagged scanned")
	}
}

func TestLooksScanned_FalseWithoutFullPageImage(t *testing.T) {
	blocks := []TextBlock{{Text: ""}}
	images := []ImageRegion{{BBox: Rect{X0: 0, Y0: 0, X1: 40, Y1: 40}}}
	if looksScanned(blocks, images, 612, 792) {
		t.Fatalf("expected small image not to trigger scanned detection")
	}
}

type stubOCREngine struct {
	result ocr.Result
	err    error
}

func (s stubOCREngine) Recognize(bitmap []byte, language string) (ocr.Result, error) {
	return s.result, s.err
}

func TestOCRBlocks_ConvertsWordsToTextBlocks(t *testing.T) {
	engine := stubOCREngine{result: ocr.Result{Words: []ocr.Word{
		{Text: "Hello", X: 10, Y: 20, W: 30, H: 12, Confidence: 0.9},
		{Text: "World", X: 50, Y: 20, W: 30, H: 12, Confidence: 0.8},
	}}}

	blocks, confidence, err := ocrBlocks(engine, []byte("bitmap"), "eng")
	if err != nil {
		t.Fatalf("ocrBlocks() error: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Text != "Hello" || blocks[0].Kind != BlockParagraph {
		t.Fatalf("block 0 = %+v, want Hello/BlockParagraph", blocks[0])
	}
	if confidence <= 0 {
		t.Fatalf("confidence = %v, want > 0", confidence)
	}
}

func TestOCRBlocks_PropagatesEngineError(t *testing.T) {
	engine := stubOCREngine{err: errors.New("ocr engine unavailable")}
	_, _, err := ocrBlocks(engine, []byte("bitmap"), "eng")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestWarnScannedWithoutOCR_DoesNotPanic(t *testing.T) {
	warnScannedWithoutOCR(context.Background())
}
