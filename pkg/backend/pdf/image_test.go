package pdf

import "testing"

func TestClassifyImage(t *testing.T) {
	pageW, pageH := 612.0, 792.0
	tests := []struct {
		name string
		bbox Rect
		want ImageKind
	}{
		{"full page photo", Rect{X0: 0, Y0: 0, X1: 612, Y1: 792}, ImagePhoto},
		{"small square logo", Rect{X0: 0, Y0: 0, X1: 40, Y1: 40}, ImageLogo},
		{"wide short chart", Rect{X0: 0, Y0: 0, X1: 300, Y1: 100}, ImageChart},
		{"mid-size diagram", Rect{X0: 0, Y0: 0, X1: 300, Y1: 300}, ImageDiagram},
		{"degenerate zero size", Rect{X0: 0, Y0: 0, X1: 0, Y1: 0}, ImageUnknown},
	}
	for _, tt := range tests {
		if got := classifyImage(tt.bbox, pageW, pageH); got != tt.want {
			t.Errorf("%s: classifyImage() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestImageFormatFromFilter(t *testing.T) {
	tests := map[string]string{
		"DCTDecode":      "jpeg",
		"JPXDecode":      "jp2",
		"CCITTFaxDecode": "tiff",
		"FlateDecode":    "raw",
		"":               "raw",
	}
	for filter, want := range tests {
		if got := imageFormatFromFilter(filter); got != want {
			t.Errorf("imageFormatFromFilter(%q) = %q, want %q", filter, got, want)
		}
	}
}
