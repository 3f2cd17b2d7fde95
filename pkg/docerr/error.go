// Package docerr defines the tagged error taxonomy every docling operation
// surfaces instead of panicking or returning bare errors.
package docerr

import (
	"errors"
	"fmt"
)

// Kind tags the category of failure a docling operation produced.
type Kind int

const (
	// KindUnknown is the zero value and should never be returned deliberately.
	KindUnknown Kind = iota
	// KindFileNotFound means a backend opened a path that does not exist.
	KindFileNotFound
	// KindUnsupportedFormat means no backend is registered for the detected format.
	KindUnsupportedFormat
	// KindInvalidFile means a structural check failed before parsing began.
	KindInvalidFile
	// KindParseError means the parser rejected the input outright.
	KindParseError
	// KindEncryptionError means a PDF password was missing or wrong.
	KindEncryptionError
	// KindPermissionDenied means a PDF's extract-content permission is off.
	KindPermissionDenied
	// KindOcrError means the external OCR engine failed for a page.
	KindOcrError
	// KindInvalidConfig means a chunker (or backend) builder failed validation.
	KindInvalidConfig
	// KindSerializationError means JSON encoding or decoding failed.
	KindSerializationError
)

func (k Kind) String() string {
	switch k {
	case KindFileNotFound:
		return "FileNotFound"
	case KindUnsupportedFormat:
		return "UnsupportedFormat"
	case KindInvalidFile:
		return "InvalidFile"
	case KindParseError:
		return "ParseError"
	case KindEncryptionError:
		return "EncryptionError"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindOcrError:
		return "OcrError"
	case KindInvalidConfig:
		return "InvalidConfig"
	case KindSerializationError:
		return "SerializationError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every fallible docling
// operation. It carries a Kind, a human-readable message, and, when
// available, the originating path and a byte/char offset.
type Error struct {
	Kind    Kind
	Message string
	Path    string
	Offset  *int
	Cause   error
}

func (e *Error) Error() string {
	if e.Path != "" {
		if e.Offset != nil {
			return fmt.Sprintf("%s: %s (path=%s offset=%d)", e.Kind, e.Message, e.Path, *e.Offset)
		}
		return fmt.Sprintf("%s: %s (path=%s)", e.Kind, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an *Error with the given kind and formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error that chains an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// WithPath returns a copy of e with Path set.
func (e *Error) WithPath(path string) *Error {
	c := *e
	c.Path = path
	return &c
}

// WithOffset returns a copy of e with Offset set.
func (e *Error) WithOffset(offset int) *Error {
	c := *e
	c.Offset = &offset
	return &c
}

// Is reports whether err is a *Error of the given Kind, unwrapping as needed.
func Is(err error, kind Kind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// KindOf returns the Kind of err if it is (or wraps) a *Error, else KindUnknown.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
