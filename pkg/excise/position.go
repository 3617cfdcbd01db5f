package excise

import "sort"

// Position is a 1-based line and column in the original buffer. Column
// counts bytes, not runes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// LineIndex maps byte offsets in a buffer to line/column positions.
// Diagnostics always report positions in the original buffer, never the
// edited one.
type LineIndex struct {
	content []byte
	starts  []int
}

// NewLineIndex builds a line index for content. It handles both LF and
// CRLF line endings.
func NewLineIndex(content []byte) *LineIndex {
	starts := []int{0}
	for idx, ch := range content {
		if ch == '\n' {
			starts = append(starts, idx+1)
		}
	}
	return &LineIndex{content: content, starts: starts}
}

// LineCount returns the number of lines in the buffer.
func (x *LineIndex) LineCount() int {
	return len(x.starts)
}

// PositionAt converts a byte offset to a 1-based position. Offsets at or
// past the end of the buffer clamp to the last line.
func (x *LineIndex) PositionAt(offset int) Position {
	if offset < 0 {
		return Position{}
	}
	if offset > len(x.content) {
		offset = len(x.content)
	}

	// First line whose start is past the offset; the line containing it
	// is the one before.
	idx := sort.Search(len(x.starts), func(i int) bool {
		return x.starts[i] > offset
	}) - 1

	return Position{Line: idx + 1, Column: offset - x.starts[idx] + 1}
}

// LineStart returns the byte offset of the start of a 1-based line.
func (x *LineIndex) LineStart(line int) (int, bool) {
	if line < 1 || line > len(x.starts) {
		return 0, false
	}
	return x.starts[line-1], true
}

// Line returns the content of a 1-based line, excluding the newline.
// Returns nil when the line number is out of range.
func (x *LineIndex) Line(line int) []byte {
	if line < 1 || line > len(x.starts) {
		return nil
	}
	start := x.starts[line-1]
	end := len(x.content)
	if line < len(x.starts) {
		end = x.starts[line] - 1
	}
	if end > start && x.content[end-1] == '\r' {
		end--
	}
	return x.content[start:end]
}
