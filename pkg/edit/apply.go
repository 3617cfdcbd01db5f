package edit

import "bytes"

// Apply applies a sorted, non-overlapping slice of edits to content and
// returns a new buffer. The input buffer is never modified; callers should
// run Prepare first to establish ordering and absence of conflicts.
func Apply(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	// Size the output up front: len(input) - removed + inserted.
	delta := 0
	for _, e := range edits {
		delta += len(e.Text) - e.Len()
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.Start])
		out.WriteString(e.Text)
		cursor = e.End
	}
	out.Write(content[cursor:])

	return out.Bytes()
}
