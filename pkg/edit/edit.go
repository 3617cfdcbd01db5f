// Package edit provides byte-offset text edits and the single-pass apply
// logic used to rewrite source buffers.
package edit

// TextEdit replaces the bytes in [Start, End) with Text.
type TextEdit struct {
	// Start is the byte index where the edit begins (inclusive).
	Start int

	// End is the byte index where the edit ends (exclusive).
	End int

	// Text is the replacement text.
	Text string
}

// Len returns the number of bytes the edit removes.
func (e TextEdit) Len() int {
	return e.End - e.Start
}

// Overlaps reports whether two edits touch the same byte range.
// Pure insertions at the boundary of another edit do not overlap.
func (e TextEdit) Overlaps(other TextEdit) bool {
	return e.Start < other.End && other.Start < e.End
}

// Builder accumulates text edits for a single buffer.
type Builder struct {
	Edits []TextEdit
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		Edits: make([]TextEdit, 0),
	}
}

// Replace adds an edit that replaces bytes [start, end) with text.
func (b *Builder) Replace(start, end int, text string) {
	b.Edits = append(b.Edits, TextEdit{
		Start: start,
		End:   end,
		Text:  text,
	})
}

// Insert adds an edit that inserts text at the given offset.
func (b *Builder) Insert(offset int, text string) {
	b.Replace(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *Builder) Delete(start, end int) {
	b.Replace(start, end, "")
}
