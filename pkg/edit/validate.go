package edit

import (
	"fmt"
	"sort"
)

// ValidationError describes an edit whose range does not fit the buffer.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

// ConflictError describes two edits touching the same region.
type ConflictError struct {
	First  TextEdit
	Second TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End,
		e.Second.Start, e.Second.End)
}

// Validate checks that every edit has a well-formed range for a buffer of
// the given length. Returns the first problem found, or nil.
func Validate(edits []TextEdit, bufLen int) error {
	for _, e := range edits {
		if e.Start < 0 {
			return &ValidationError{Edit: e, Message: "start offset is negative"}
		}
		if e.End < e.Start {
			return &ValidationError{Edit: e, Message: "end offset is before start offset"}
		}
		if e.End > bufLen {
			return &ValidationError{
				Edit:    e,
				Message: fmt.Sprintf("end offset %d exceeds buffer length %d", e.End, bufLen),
			}
		}
	}
	return nil
}

// Sort orders edits by start offset, then by end offset, producing a
// deterministic application order.
func Sort(edits []TextEdit) {
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].Start != edits[j].Start {
			return edits[i].Start < edits[j].Start
		}
		return edits[i].End < edits[j].End
	})
}

// DetectConflicts checks a sorted slice for overlapping edits.
// Edits must be sorted with Sort before calling.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		prev := edits[i-1]
		curr := edits[i]
		if curr.Start < prev.End {
			return &ConflictError{First: prev, Second: curr}
		}
	}
	return nil
}

// Prepare validates, sorts, and conflict-checks a slice of edits, returning
// a new sorted slice ready for Apply. The input slice is not modified.
func Prepare(edits []TextEdit, bufLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}

	if err := Validate(edits, bufLen); err != nil {
		return nil, err
	}

	result := make([]TextEdit, len(edits))
	copy(result, edits)
	Sort(result)

	if err := DetectConflicts(result); err != nil {
		return nil, err
	}

	return result, nil
}
