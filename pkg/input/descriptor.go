// Package input implements InputDescriptor construction and format detection
// (spec.md §3 "InputDescriptor", §4.1 "Format detection").
package input

import (
	"bytes"
	"os"
	"strings"

	"github.com/kaidoc/docling/pkg/document"
)

// Format is a detected or caller-supplied input format tag.
type Format = document.Format

const (
	FormatMarkdown = document.FormatMarkdown
	FormatHTML     = document.FormatHTML
	FormatCSV      = document.FormatCSV
	FormatDOCX     = document.FormatDOCX
	FormatPDF      = document.FormatPDF
	FormatUnknown  = document.FormatUnknown
)

// Descriptor is an immutable handle wrapping either a file path or an
// in-memory byte slice, plus the format it was detected (or told) to be.
type Descriptor struct {
	path   string
	bytes  []byte
	name   string
	format Format
}

// FromPath constructs a Descriptor for a filesystem path. Format is detected
// from the extension first; if that fails, the file is read and sniffed by
// magic bytes, the same two-strategy order FromBytes uses. A read failure
// during the magic-byte fallback leaves the format Unknown rather than
// surfacing an error here -- Convert reports it as an unsupported format.
func FromPath(path string) *Descriptor {
	d := &Descriptor{path: path, name: path}
	d.format = detectExtension(path)
	if d.format == FormatUnknown {
		if data, err := d.Bytes(); err == nil {
			d.format = detectMagic(data)
		}
	}
	return d
}

// FromBytes constructs a Descriptor that owns an in-memory byte slice. name
// is a synthetic origin string (e.g. "clipboard.md") used in Metadata.Origin
// and log messages.
func FromBytes(data []byte, name string) *Descriptor {
	d := &Descriptor{bytes: data, name: name}
	d.format = detectExtension(name)
	if d.format == FormatUnknown {
		d.format = detectMagic(data)
	}
	return d
}

// WithFormat returns a copy of d with format forced to f. Used when neither
// extension nor magic-byte detection succeeds and the caller supplies an
// explicit tag (spec.md §4.1 "detection fails closed").
func (d *Descriptor) WithFormat(f Format) *Descriptor {
	c := *d
	c.format = f
	return &c
}

// Name is the logical path or synthetic name of the input.
func (d *Descriptor) Name() string { return d.name }

// Format is the detected or forced format tag.
func (d *Descriptor) Format() Format { return d.format }

// IsPath reports whether the descriptor wraps a filesystem path rather than
// in-memory bytes.
func (d *Descriptor) IsPath() bool { return d.path != "" }

// Path returns the wrapped filesystem path, or "" if the descriptor wraps
// in-memory bytes.
func (d *Descriptor) Path() string { return d.path }

// Bytes returns the full content of the input, reading the underlying file
// exactly once and caching the result if the descriptor wraps a path.
func (d *Descriptor) Bytes() ([]byte, error) {
	if d.bytes != nil {
		return d.bytes, nil
	}
	data, err := os.ReadFile(d.path)
	if err != nil {
		return nil, err
	}
	d.bytes = data
	return data, nil
}

// Size returns the input's byte length without necessarily reading it fully
// into memory beyond what Bytes already cached.
func (d *Descriptor) Size() (int64, error) {
	if d.bytes != nil {
		return int64(len(d.bytes)), nil
	}
	fi, err := os.Stat(d.path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func detectExtension(name string) Format {
	ext := strings.ToLower(name)
	if i := strings.LastIndexByte(ext, '.'); i >= 0 {
		ext = ext[i+1:]
	} else {
		return FormatUnknown
	}
	switch ext {
	case "md", "markdown":
		return FormatMarkdown
	case "html", "htm":
		return FormatHTML
	case "csv":
		return FormatCSV
	case "docx":
		return FormatDOCX
	case "pdf":
		return FormatPDF
	default:
		return FormatUnknown
	}
}

var docxMagic = []byte{0x50, 0x4B, 0x03, 0x04}

func detectMagic(data []byte) Format {
	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return FormatPDF
	}
	if bytes.HasPrefix(data, docxMagic) && bytes.Contains(firstN(data, 4096), []byte("[Content_Types].xml")) {
		return FormatDOCX
	}
	lower := bytes.ToLower(firstN(data, 512))
	if bytes.Contains(lower, []byte("<!doctype")) || bytes.Contains(lower, []byte("<html")) || bytes.Contains(lower, []byte("<body")) {
		return FormatHTML
	}
	return FormatUnknown
}

func firstN(data []byte, n int) []byte {
	if len(data) < n {
		return data
	}
	return data[:n]
}

// Detect returns d's format when it is already known (from the extension or
// WithFormat); otherwise it sniffs the magic bytes of d's content. d is not
// mutated. Callers that want the result applied should chain WithFormat.
func Detect(d *Descriptor) (Format, error) {
	if d.format != FormatUnknown {
		return d.format, nil
	}
	data, err := d.Bytes()
	if err != nil {
		return FormatUnknown, err
	}
	return detectMagic(data), nil
}
