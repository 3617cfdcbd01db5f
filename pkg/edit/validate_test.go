package edit_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/excise/pkg/edit"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edits   []edit.TextEdit
		bufLen  int
		wantErr bool
	}{
		{
			name:    "empty edits",
			edits:   nil,
			bufLen:  10,
			wantErr: false,
		},
		{
			name: "valid edit",
			edits: []edit.TextEdit{
				{Start: 0, End: 5, Text: "x"},
			},
			bufLen:  10,
			wantErr: false,
		},
		{
			name: "edit at exact buffer end",
			edits: []edit.TextEdit{
				{Start: 5, End: 10, Text: ""},
			},
			bufLen:  10,
			wantErr: false,
		},
		{
			name: "negative start",
			edits: []edit.TextEdit{
				{Start: -1, End: 5, Text: ""},
			},
			bufLen:  10,
			wantErr: true,
		},
		{
			name: "end before start",
			edits: []edit.TextEdit{
				{Start: 5, End: 3, Text: ""},
			},
			bufLen:  10,
			wantErr: true,
		},
		{
			name: "end past buffer",
			edits: []edit.TextEdit{
				{Start: 0, End: 11, Text: ""},
			},
			bufLen:  10,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := edit.Validate(tt.edits, tt.bufLen)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSort(t *testing.T) {
	t.Parallel()

	edits := []edit.TextEdit{
		{Start: 10, End: 12},
		{Start: 0, End: 5},
		{Start: 0, End: 3},
		{Start: 7, End: 8},
	}

	edit.Sort(edits)

	want := []edit.TextEdit{
		{Start: 0, End: 3},
		{Start: 0, End: 5},
		{Start: 7, End: 8},
		{Start: 10, End: 12},
	}

	for i := range want {
		if edits[i] != want[i] {
			t.Errorf("Sort()[%d] = %+v, want %+v", i, edits[i], want[i])
		}
	}
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	t.Run("no conflicts", func(t *testing.T) {
		t.Parallel()

		edits := []edit.TextEdit{
			{Start: 0, End: 5},
			{Start: 5, End: 10},
		}
		if err := edit.DetectConflicts(edits); err != nil {
			t.Errorf("DetectConflicts() = %v, want nil", err)
		}
	})

	t.Run("overlapping edits", func(t *testing.T) {
		t.Parallel()

		edits := []edit.TextEdit{
			{Start: 0, End: 6},
			{Start: 5, End: 10},
		}
		err := edit.DetectConflicts(edits)
		if err == nil {
			t.Fatal("DetectConflicts() = nil, want ConflictError")
		}

		var conflict *edit.ConflictError
		if !errors.As(err, &conflict) {
			t.Errorf("DetectConflicts() error type = %T, want *ConflictError", err)
		}
	})
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	t.Run("sorts and returns a copy", func(t *testing.T) {
		t.Parallel()

		edits := []edit.TextEdit{
			{Start: 6, End: 8, Text: "b"},
			{Start: 0, End: 2, Text: "a"},
		}

		prepared, err := edit.Prepare(edits, 10)
		if err != nil {
			t.Fatalf("Prepare() error: %v", err)
		}

		if prepared[0].Start != 0 || prepared[1].Start != 6 {
			t.Errorf("Prepare() not sorted: %+v", prepared)
		}

		// Input order untouched.
		if edits[0].Start != 6 {
			t.Error("Prepare() modified input slice")
		}
	})

	t.Run("rejects conflicting edits", func(t *testing.T) {
		t.Parallel()

		edits := []edit.TextEdit{
			{Start: 0, End: 6},
			{Start: 5, End: 10},
		}
		if _, err := edit.Prepare(edits, 10); err == nil {
			t.Error("Prepare() = nil error, want conflict")
		}
	})
}

func TestOverlaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b edit.TextEdit
		want bool
	}{
		{
			name: "disjoint",
			a:    edit.TextEdit{Start: 0, End: 5},
			b:    edit.TextEdit{Start: 5, End: 10},
			want: false,
		},
		{
			name: "overlapping",
			a:    edit.TextEdit{Start: 0, End: 6},
			b:    edit.TextEdit{Start: 5, End: 10},
			want: true,
		},
		{
			name: "contained",
			a:    edit.TextEdit{Start: 0, End: 10},
			b:    edit.TextEdit{Start: 3, End: 4},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}
