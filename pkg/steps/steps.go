// Package steps provides pure mutation operations over an ordered step
// sequence. Every operation returns a new sequence and leaves its input
// untouched, so a draft can always be compared against the last-saved
// snapshot.
package steps

import (
	"errors"

	"github.com/stepflow/stepflow/pkg/models"
)

// ErrIndexOutOfRange indicates an operation targeted an index outside the
// sequence. It marks a programming-invariant violation: callers get the
// original sequence back unchanged.
var ErrIndexOutOfRange = errors.New("step index out of range")

// InsertAt inserts step so it becomes the element at index; subsequent
// elements shift right. Valid indices are 0 through len(seq) inclusive.
func InsertAt(seq []models.Step, index int, step models.Step) ([]models.Step, error) {
	if index < 0 || index > len(seq) {
		return seq, ErrIndexOutOfRange
	}

	out := make([]models.Step, 0, len(seq)+1)
	out = append(out, seq[:index]...)
	out = append(out, step)
	out = append(out, seq[index:]...)

	return out, nil
}

// RemoveAt deletes the element at index.
func RemoveAt(seq []models.Step, index int) ([]models.Step, error) {
	if index < 0 || index >= len(seq) {
		return seq, ErrIndexOutOfRange
	}

	out := make([]models.Step, 0, len(seq)-1)
	out = append(out, seq[:index]...)
	out = append(out, seq[index+1:]...)

	return out, nil
}

// DuplicateAt copies the element at index, assigns the copy a fresh id, and
// inserts it immediately after the original. All other ids are preserved.
func DuplicateAt(seq []models.Step, index int) ([]models.Step, error) {
	if index < 0 || index >= len(seq) {
		return seq, ErrIndexOutOfRange
	}

	dup := seq[index]
	dup.ID = models.NewStepID()

	if dup.Screenshot != nil {
		shot := *dup.Screenshot
		dup.Screenshot = &shot
	}

	return InsertAt(seq, index+1, dup)
}

// UpdateFieldAt applies a single field patch to the element at index, leaving
// its id and all other fields unchanged.
func UpdateFieldAt(seq []models.Step, index int, patch Patch) ([]models.Step, error) {
	if index < 0 || index >= len(seq) {
		return seq, ErrIndexOutOfRange
	}

	out := models.CloneSteps(seq)
	patch.apply(&out[index])

	return out, nil
}

// Count returns the number of steps, as reported in the preview descriptor.
func Count(seq []models.Step) int {
	return len(seq)
}
