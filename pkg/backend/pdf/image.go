package pdf

// ImageKind classifies an extracted image region (spec.md §4.2 PDF backend,
// stage 5).
type ImageKind int

const (
	ImageUnknown ImageKind = iota
	ImagePhoto
	ImageDiagram
	ImageLogo
	ImageChart
)

// ImageRegion is one detected embedded image. Bitmap is nil unless the
// backend was configured to retain raw bytes (off by default: most callers
// only need the bounding box and classification for the Document tree).
type ImageRegion struct {
	BBox   Rect
	Kind   ImageKind
	Width  int
	Height int
	Format string
	DPI    int
	Bitmap []byte
}

// classifyImage applies the cheap heuristics spec.md allows: small,
// near-square images are logos; very large images spanning most of the page
// are photos; anything wide-and-short with a low size is treated as a chart;
// everything else is a diagram. pageWidth/pageHeight are in PDF points.
func classifyImage(bbox Rect, pageWidth, pageHeight float64) ImageKind {
	w, h := bbox.Width(), bbox.Height()
	if w <= 0 || h <= 0 || pageWidth <= 0 || pageHeight <= 0 {
		return ImageUnknown
	}
	area := w * h
	pageArea := pageWidth * pageHeight
	ratio := area / pageArea

	switch {
	case ratio >= 0.5:
		return ImagePhoto
	case ratio <= 0.02 && w <= h*2 && h <= w*2:
		return ImageLogo
	case w/h >= 1.3 && ratio < 0.3:
		return ImageChart
	default:
		return ImageDiagram
	}
}
