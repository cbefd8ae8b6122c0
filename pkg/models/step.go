package models

import (
	"strconv"
	"sync/atomic"
	"time"
)

// StepKind discriminates step variants. There is a single variant today; the
// tag is persisted so future kinds do not break existing documents.
type StepKind string

const StepKindStep StepKind = "STEP"

// Screenshot is a weak reference to an externally stored asset. The document
// does not own the asset's lifecycle.
type Screenshot struct {
	URL string `json:"url"`
}

// Step is one ordered item of a workflow document.
type Step struct {
	ID          string      `json:"id"`
	Kind        StepKind    `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Screenshot  *Screenshot `json:"screenshot,omitempty"`
}

// CloneSteps returns a copy of the sequence. Screenshot pointers are copied so
// neither sequence can observe mutations through the other.
func CloneSteps(items []Step) []Step {
	if items == nil {
		return nil
	}

	out := make([]Step, len(items))
	copy(out, items)

	for i := range out {
		if out[i].Screenshot != nil {
			shot := *out[i].Screenshot
			out[i].Screenshot = &shot
		}
	}

	return out
}

var lastStepID int64

// NewStepID generates a time-based step identifier. Collisions within one
// editing session are avoided by bumping past the previous value when two
// steps are created in the same millisecond.
func NewStepID() string {
	for {
		last := atomic.LoadInt64(&lastStepID)

		next := time.Now().UnixMilli()
		if next <= last {
			next = last + 1
		}

		if atomic.CompareAndSwapInt64(&lastStepID, last, next) {
			return "step-" + strconv.FormatInt(next, 10)
		}
	}
}

// NewStep returns a fresh empty step, as inserted by the "add step" action.
func NewStep() Step {
	return Step{
		ID:   NewStepID(),
		Kind: StepKindStep,
	}
}
