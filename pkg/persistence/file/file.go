// Package file provides file-based persistence for workflow documents. It
// backs local development and tests; production deployments use postgresql.
package file

import (
	"context"
	"os"
	"strings"

	"github.com/stepflow/stepflow/pkg/models"
	"github.com/stepflow/stepflow/pkg/persistence"
)

// Persistence implements the persistence.Persistence interface using the file
// system.
type Persistence struct {
	repo *DocumentRepository
}

// NewPersistence creates a new instance of Persistence with the specified
// root directory.
func NewPersistence(root string) persistence.Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		repo: NewDocumentRepository(cleanRoot),
	}
}

// Close performs any necessary cleanup. For file-based persistence, there is
// nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck verifies the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.repo.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (fp *Persistence) CreateDocument(ctx context.Context, doc *models.Workflow) error {
	return fp.repo.Create(ctx, doc)
}

func (fp *Persistence) UpdateDocument(ctx context.Context, id string, update persistence.DocumentUpdate) (*models.Workflow, error) {
	return fp.repo.Update(ctx, id, update)
}

func (fp *Persistence) DeleteDocument(ctx context.Context, id string) error {
	return fp.repo.Delete(ctx, id)
}

func (fp *Persistence) GetDocumentByUID(ctx context.Context, uid string) (*models.Workflow, error) {
	return fp.repo.GetByUID(ctx, uid)
}

func (fp *Persistence) ListDocumentsByOwner(ctx context.Context, ownerID string) ([]*models.Workflow, error) {
	return fp.repo.ListByOwner(ctx, ownerID)
}
