package pdf

import (
	"github.com/dslipak/pdf"
	"github.com/kaidoc/docling/pkg/docerr"
)

const (
	defaultPageWidth  = 612.0 // US Letter, points
	defaultPageHeight = 792.0
)

// pageBox reads the page's MediaBox, falling back to US Letter when it is
// absent or malformed (PDF allows MediaBox to be inherited from the Pages
// tree in ways dslipak/pdf does not always resolve for a leaf Page value).
func pageBox(page pdf.Page) (width, height float64) {
	mb := page.V.Key("MediaBox")
	if mb.Len() == 4 {
		x0 := mb.Index(0).Float64()
		y0 := mb.Index(1).Float64()
		x1 := mb.Index(2).Float64()
		y1 := mb.Index(3).Float64()
		if x1 > x0 && y1 > y0 {
			return x1 - x0, y1 - y0
		}
	}
	return defaultPageWidth, defaultPageHeight
}

// extractImages lists the Image XObjects referenced from the page's
// resource dictionary (spec.md §4.2 PDF backend, stage 5). Placement
// (bounding box) is not tracked through the content stream's CTM, so each
// region is reported at the XObject's intrinsic pixel size positioned at the
// page origin; callers that need exact placement should post-process the
// page's raw content stream themselves. Bitmap bytes are never populated
// here, matching the "off by default" contract.
func extractImages(page pdf.Page, pageWidth, pageHeight float64) []ImageRegion {
	xobjects := page.V.Key("Resources").Key("XObject")
	names := xobjects.Keys()
	if len(names) == 0 {
		return nil
	}

	out := make([]ImageRegion, 0, len(names))
	for _, name := range names {
		obj := xobjects.Key(name)
		if obj.Key("Subtype").Name() != "Image" {
			continue
		}
		w := int(obj.Key("Width").Int64())
		h := int(obj.Key("Height").Int64())
		bbox := Rect{X0: 0, Y0: 0, X1: float64(w), Y1: float64(h)}
		out = append(out, ImageRegion{
			BBox:   bbox,
			Kind:   classifyImage(bbox, pageWidth, pageHeight),
			Width:  w,
			Height: h,
			Format: imageFormatFromFilter(obj.Key("Filter").Name()),
		})
	}
	return out
}

func imageFormatFromFilter(filter string) string {
	switch filter {
	case "DCTDecode":
		return "jpeg"
	case "JPXDecode":
		return "jp2"
	case "CCITTFaxDecode":
		return "tiff"
	default:
		return "raw"
	}
}

// rasterize is the OCR input step. docling ships no rasterizer and no Backend
// Option supplies one, so this always returns a KindOcrError rather than
// fabricating a bitmap.
func rasterize(page pdf.Page, dpi int) ([]byte, error) {
	return nil, docerr.New(docerr.KindOcrError, "no PDF rasterizer is configured (DPI=%d); OCR requires one to be wired in", dpi)
}
