// Package persistence provides the data storage abstraction for workflow
// documents.
package persistence

import (
	"context"
	"time"

	"github.com/stepflow/stepflow/pkg/models"
)

// DocumentUpdate is the payload of a save commit. It is applied as one
// logical write: either every field lands or none does, so a reader can never
// observe items saved with stale meta.
type DocumentUpdate struct {
	Title       string
	Description string
	Slug        string
	Items       []models.Step
	Meta        models.Meta
	UpdatedAt   time.Time
}

type Persistence interface {
	CreateDocument(ctx context.Context, doc *models.Workflow) error
	UpdateDocument(ctx context.Context, id string, update DocumentUpdate) (*models.Workflow, error)
	DeleteDocument(ctx context.Context, id string) error
	GetDocumentByUID(ctx context.Context, uid string) (*models.Workflow, error)
	ListDocumentsByOwner(ctx context.Context, ownerID string) ([]*models.Workflow, error)
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
