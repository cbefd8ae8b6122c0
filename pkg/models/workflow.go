// Package models defines the core domain models for step-based workflow documents.
package models

import "time"

// Meta is the derived social-preview cache stored alongside a workflow.
// It is regenerated on every save and never hand-edited.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"` // preview descriptor URL
}

// Workflow represents a titled document composed of an ordered sequence of steps.
type Workflow struct {
	ID          string    `json:"id"`
	UID         string    `json:"uid"` // client-assigned, stable part of the public locator
	Slug        string    `json:"slug"`
	Title       string    `json:"title"       validate:"omitempty,min=3"`
	Description string    `json:"description"`
	Items       []Step    `json:"items"` // presentation order is semantically meaningful
	Meta        Meta      `json:"meta"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Locator returns the public address of the workflow: derived slug plus
// immutable uid. The uid is the authoritative lookup key; the slug is cosmetic.
func (w *Workflow) Locator() string {
	return w.Slug + "-" + w.UID
}

// Clone returns a deep copy of the workflow so a draft can be mutated without
// touching the last-saved snapshot.
func (w *Workflow) Clone() *Workflow {
	clone := *w
	clone.Items = CloneSteps(w.Items)

	return &clone
}
