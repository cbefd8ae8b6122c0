package draft

import (
	"context"
	"fmt"
	"time"

	"github.com/stepflow/stepflow/pkg/identity"
	"github.com/stepflow/stepflow/pkg/models"
	"github.com/stepflow/stepflow/pkg/persistence"
	"github.com/stepflow/stepflow/pkg/preview"
)

// CreateDocument persists a new workflow for the acting identity: a fresh
// uid, the default title with its derived slug, an empty step sequence, and a
// zero-step preview descriptor. The record exists before the user ever opens
// the editor.
func CreateDocument(ctx context.Context, p persistence.Persistence, user *identity.User, origin string) (*models.Workflow, error) {
	return createDocument(ctx, p, user, origin, time.Now)
}

func createDocument(
	ctx context.Context,
	p persistence.Persistence,
	user *identity.User,
	origin string,
	now func() time.Time,
) (*models.Workflow, error) {
	if user == nil || user.ID == "" {
		return nil, identity.ErrUnauthenticated
	}

	createdAt := now().UTC()
	descriptor := preview.NewDescriptor(models.DefaultTitle, createdAt, 0, user.Name, user.AvatarURL)

	doc := &models.Workflow{
		UID:    models.NewUID(),
		Title:  models.DefaultTitle,
		Slug:   models.DeriveSlug(models.DefaultTitle),
		Items:  []models.Step{},
		UserID: user.ID,
		Meta: models.Meta{
			Title: models.DefaultTitle,
			Image: descriptor.URL(origin),
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	if err := p.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}

	return doc, nil
}

// DeleteDocument removes a persisted workflow by storage identity. Stored
// screenshot assets are weak references and are not reclaimed here.
func DeleteDocument(ctx context.Context, p persistence.Persistence, id string) error {
	if err := p.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("failed to delete workflow: %w", err)
	}

	return nil
}
