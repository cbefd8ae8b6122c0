// Package draft owns the editable document lifecycle: the Viewing, Editing,
// Saving, and Error states, the draft snapshot, dirty tracking, and the save
// pipeline of validation, slug derivation, preview descriptor regeneration,
// and the atomic commit.
package draft

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/stepflow/stepflow/pkg/assets"
	"github.com/stepflow/stepflow/pkg/identity"
	"github.com/stepflow/stepflow/pkg/models"
	"github.com/stepflow/stepflow/pkg/otelhelper"
	"github.com/stepflow/stepflow/pkg/persistence"
	"github.com/stepflow/stepflow/pkg/preview"
	"github.com/stepflow/stepflow/pkg/steps"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// State is the controller's position in the edit lifecycle.
type State string

const (
	// StateViewing is read-only: mutations are silently ignored.
	StateViewing State = "viewing"
	// StateEditing permits mutations; nothing is persisted yet.
	StateEditing State = "editing"
	// StateSaving is transient while a commit is in flight; mutations are
	// blocked.
	StateSaving State = "saving"
	// StateError is the transient post-commit-failure state; the controller
	// settles back into StateEditing with the draft intact.
	StateError State = "error"
)

var (
	// ErrNotOwner indicates the acting identity does not own the document, so
	// the Viewing to Editing transition is refused.
	ErrNotOwner = errors.New("document is editable only by its owner")

	// ErrValidationFailed indicates the draft failed save validation; storage
	// was never contacted.
	ErrValidationFailed = errors.New("title must be at least 3 characters")

	// ErrCommitFailed indicates the storage write failed. The draft is
	// preserved verbatim and the save may be retried.
	ErrCommitFailed = errors.New("failed to save workflow")

	// ErrSaveInFlight indicates a save is already running.
	ErrSaveInFlight = errors.New("a save is already in progress")
)

// titleMinLength applies only to non-empty titles: a draft may keep an empty
// title indefinitely.
const titleMinLength = 3

// Controller exclusively owns one document's draft value. It is not safe for
// concurrent use; a single editing session drives it.
type Controller struct {
	persistence persistence.Persistence
	uploader    *assets.Uploader
	user        *identity.User
	origin      string
	now         func() time.Time

	state State
	saved *models.Workflow
	draft *models.Workflow
	dirty bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock substitutes the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController wraps a persisted document for one acting identity. The
// controller starts in StateViewing.
func NewController(
	p persistence.Persistence,
	uploader *assets.Uploader,
	user *identity.User,
	origin string,
	doc *models.Workflow,
	opts ...Option,
) *Controller {
	c := &Controller{
		persistence: p,
		uploader:    uploader,
		user:        user,
		origin:      origin,
		now:         time.Now,
		state:       StateViewing,
		saved:       doc.Clone(),
		draft:       doc.Clone(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Dirty reports whether the draft has unsaved mutations.
func (c *Controller) Dirty() bool {
	return c.dirty
}

// Document returns a copy of the current snapshot: the draft while editing,
// the last-saved document otherwise. Callers never get a handle they could
// mutate through.
func (c *Controller) Document() *models.Workflow {
	return c.draft.Clone()
}

// Edit transitions Viewing to Editing. Only the document's owner may edit.
func (c *Controller) Edit() error {
	switch c.state {
	case StateEditing:
		return nil
	case StateSaving:
		return ErrSaveInFlight
	}

	if !c.user.Owns(c.draft.UserID) {
		return ErrNotOwner
	}

	c.state = StateEditing

	return nil
}

// SetTitle updates the draft title. Ignored outside Editing.
func (c *Controller) SetTitle(title string) {
	if c.state != StateEditing {
		return
	}

	c.draft.Title = title
	c.dirty = true
}

// SetDescription updates the draft description. Ignored outside Editing.
func (c *Controller) SetDescription(description string) {
	if c.state != StateEditing {
		return
	}

	c.draft.Description = description
	c.dirty = true
}

// InsertStep inserts a fresh empty step at index. Ignored outside Editing.
func (c *Controller) InsertStep(index int) error {
	return c.mutateItems(func(items []models.Step) ([]models.Step, error) {
		return steps.InsertAt(items, index, models.NewStep())
	})
}

// RemoveStep deletes the step at index. Ignored outside Editing.
func (c *Controller) RemoveStep(index int) error {
	return c.mutateItems(func(items []models.Step) ([]models.Step, error) {
		return steps.RemoveAt(items, index)
	})
}

// DuplicateStep copies the step at index under a fresh id, placing the copy
// right after the original. Ignored outside Editing.
func (c *Controller) DuplicateStep(index int) error {
	return c.mutateItems(func(items []models.Step) ([]models.Step, error) {
		return steps.DuplicateAt(items, index)
	})
}

// UpdateStep applies a single-field patch to the step at index. Ignored
// outside Editing.
func (c *Controller) UpdateStep(index int, patch steps.Patch) error {
	return c.mutateItems(func(items []models.Step) ([]models.Step, error) {
		return steps.UpdateFieldAt(items, index, patch)
	})
}

// ReplaceItems swaps the whole draft sequence, for callers that assembled the
// sequence elsewhere. Ignored outside Editing.
func (c *Controller) ReplaceItems(items []models.Step) {
	if c.state != StateEditing {
		return
	}

	c.draft.Items = models.CloneSteps(items)
	c.dirty = true
}

func (c *Controller) mutateItems(op func([]models.Step) ([]models.Step, error)) error {
	if c.state != StateEditing {
		return nil
	}

	items, err := op(c.draft.Items)
	if err != nil {
		return err
	}

	c.draft.Items = items
	c.dirty = true

	return nil
}

// AttachScreenshot runs the asset pipeline for the step at index and writes
// the resulting locator into the draft. On any pipeline failure the step is
// left exactly as it was.
func (c *Controller) AttachScreenshot(ctx context.Context, index int, raw []byte) error {
	if c.state != StateEditing {
		return nil
	}

	if index < 0 || index >= len(c.draft.Items) {
		return steps.ErrIndexOutOfRange
	}

	shot, err := c.uploader.Attach(ctx, c.draft.UserID, c.draft.UID, index, raw)
	if err != nil {
		return err
	}

	return c.UpdateStep(index, steps.SetScreenshot{URL: shot.URL})
}

// SaveResult reports the outcome of a successful commit.
type SaveResult struct {
	Document *models.Workflow
	// Locator is the document's public locator after the save. When
	// LocatorChanged is set, the caller must redirect to it: the old locator
	// no longer resolves by slug.
	Locator        string
	LocatorChanged bool
}

// Save validates the draft, derives the slug and preview descriptor, and
// commits everything as one write. On failure the draft is preserved verbatim
// and the controller settles back into StateEditing.
func (c *Controller) Save(ctx context.Context) (*SaveResult, error) {
	switch c.state {
	case StateSaving:
		return nil, ErrSaveInFlight
	case StateEditing:
	default:
		return nil, fmt.Errorf("cannot save from %s state", c.state)
	}

	if c.draft.Title != "" && utf8.RuneCountInString(c.draft.Title) < titleMinLength {
		return nil, ErrValidationFailed
	}

	c.state = StateSaving

	ctx, span := otelhelper.StartSpan(ctx, otel.Tracer("stepflow.draft"), "draft.save",
		attribute.String(otelhelper.DocumentIDKey, c.saved.ID),
		attribute.String(otelhelper.DocumentUIDKey, c.saved.UID),
		attribute.Int("stepflow.document.steps", steps.Count(c.draft.Items)),
	)
	defer span.End()

	slug := c.saved.Slug
	if c.draft.Title != c.saved.Title {
		slug = models.DeriveSlug(c.draft.Title)
	}

	savedAt := c.now().UTC()

	descriptor := preview.NewDescriptor(
		c.draft.Title,
		savedAt,
		steps.Count(c.draft.Items),
		c.user.Name,
		c.user.AvatarURL,
	)

	update := persistence.DocumentUpdate{
		Title:       c.draft.Title,
		Description: c.draft.Description,
		Slug:        slug,
		Items:       c.draft.Items,
		Meta: models.Meta{
			Title:       c.draft.Title,
			Description: c.draft.Description,
			Image:       descriptor.URL(c.origin),
		},
		UpdatedAt: savedAt,
	}

	updated, err := c.persistence.UpdateDocument(ctx, c.saved.ID, update)
	if err != nil {
		otelhelper.SetError(span, err)

		// Saving -> Error -> Editing: the draft survives untouched so no
		// edits are lost.
		c.state = StateError
		c.state = StateEditing

		return nil, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	previousLocator := c.saved.Locator()

	c.saved = updated.Clone()
	c.draft = updated.Clone()
	c.dirty = false
	c.state = StateViewing

	return &SaveResult{
		Document:       updated,
		Locator:        updated.Locator(),
		LocatorChanged: updated.Locator() != previousLocator,
	}, nil
}
