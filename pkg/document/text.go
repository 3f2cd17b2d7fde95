package document

// TextItem is the payload of Text (and other text-bearing) nodes: a run of
// content plus optional inline formatting.
type TextItem struct {
	Content    string
	Formatting *Formatting
}

// Formatting records additive inline styling: any subset of the boolean
// flags may be true at once, and Link is independent of all of them.
type Formatting struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Code          bool
	Link          *string
}

// IsZero reports whether f carries no formatting at all, so callers can
// collapse it to a nil *Formatting.
func (f *Formatting) IsZero() bool {
	if f == nil {
		return true
	}
	return !f.Bold && !f.Italic && !f.Underline && !f.Strikethrough && !f.Code && f.Link == nil
}

// Merge returns the union of f and other: a flag is true in the result if
// it was true in either input. Used when nested inline spans (e.g. bold
// inside a link) need to be flattened onto a single TextItem.
func (f *Formatting) Merge(other *Formatting) *Formatting {
	if f.IsZero() {
		return other
	}
	if other.IsZero() {
		return f
	}
	out := &Formatting{
		Bold:          f.Bold || other.Bold,
		Italic:        f.Italic || other.Italic,
		Underline:     f.Underline || other.Underline,
		Strikethrough: f.Strikethrough || other.Strikethrough,
		Code:          f.Code || other.Code,
		Link:          f.Link,
	}
	if out.Link == nil {
		out.Link = other.Link
	}
	return out
}
