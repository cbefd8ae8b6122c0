package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/stepflow/stepflow/pkg/models"
	"github.com/stepflow/stepflow/pkg/persistence"
)

// DocumentRepository stores each document as a JSON file named by its uid.
type DocumentRepository struct {
	root string
}

func NewDocumentRepository(root string) *DocumentRepository {
	return &DocumentRepository{root: root}
}

func (r *DocumentRepository) documentsDir() string {
	return path.Join(r.root, "documents")
}

func (r *DocumentRepository) documentPath(uid string) string {
	return path.Join(r.documentsDir(), uid+".json")
}

func (r *DocumentRepository) Create(_ context.Context, doc *models.Workflow) error {
	if doc.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate document ID: %w", err)
		}

		doc.ID = id.String()
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}

	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = now
	}

	if _, err := os.Stat(r.documentPath(doc.UID)); err == nil {
		return persistence.NewDocumentError("Create", doc.UID, persistence.ErrDocumentAlreadyExists)
	}

	return r.write(doc)
}

func (r *DocumentRepository) Update(ctx context.Context, id string, update persistence.DocumentUpdate) (*models.Workflow, error) {
	doc, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doc.Title = update.Title
	doc.Description = update.Description
	doc.Slug = update.Slug
	doc.Items = models.CloneSteps(update.Items)
	doc.Meta = update.Meta
	doc.UpdatedAt = update.UpdatedAt

	if err := r.write(doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	doc, err := r.getByID(ctx, id)
	if err != nil {
		return err
	}

	if err := os.Remove(r.documentPath(doc.UID)); err != nil {
		return persistence.NewDocumentError("Delete", id, err)
	}

	return nil
}

func (r *DocumentRepository) GetByUID(_ context.Context, uid string) (*models.Workflow, error) {
	data, err := os.ReadFile(r.documentPath(uid))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.NewDocumentError("GetByUID", uid, persistence.ErrDocumentNotFound)
		}

		return nil, persistence.NewDocumentError("GetByUID", uid, err)
	}

	var doc models.Workflow
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, persistence.NewDocumentError("GetByUID", uid, err)
	}

	return &doc, nil
}

func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Workflow, error) {
	docs, err := r.all(ctx)
	if err != nil {
		return nil, err
	}

	owned := make([]*models.Workflow, 0, len(docs))

	for _, doc := range docs {
		if doc.UserID == ownerID {
			owned = append(owned, doc)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].UpdatedAt.After(owned[j].UpdatedAt)
	})

	return owned, nil
}

func (r *DocumentRepository) getByID(ctx context.Context, id string) (*models.Workflow, error) {
	docs, err := r.all(ctx)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if doc.ID == id {
			return doc, nil
		}
	}

	return nil, persistence.NewDocumentError("GetByID", id, persistence.ErrDocumentNotFound)
}

func (r *DocumentRepository) all(ctx context.Context) ([]*models.Workflow, error) {
	if _, err := os.Stat(r.documentsDir()); os.IsNotExist(err) {
		return nil, nil
	}

	root := os.DirFS(r.documentsDir())

	files, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list document files: %w", err)
	}

	docs := make([]*models.Workflow, 0, len(files))

	for _, file := range files {
		uid := file[:len(file)-len(filepath.Ext(file))]

		doc, err := r.GetByUID(ctx, uid)
		if err != nil {
			return nil, err
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

func (r *DocumentRepository) write(doc *models.Workflow) error {
	if err := os.MkdirAll(r.documentsDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create documents directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", doc.UID, err)
	}

	if err := os.WriteFile(r.documentPath(doc.UID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", doc.UID, err)
	}

	return nil
}
