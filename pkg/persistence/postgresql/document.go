package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stepflow/stepflow/pkg/models"
	"github.com/stepflow/stepflow/pkg/persistence"
)

// DocumentRepository handles workflow document database operations.
type DocumentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(db *sql.DB, logger *slog.Logger) *DocumentRepository {
	return &DocumentRepository{db: db, logger: logger}
}

const documentColumns = `
	id
  , uid
  , slug
  , title
  , description
  , items
  , meta
  , user_id
  , created_at
  , updated_at
`

func (r *DocumentRepository) Create(ctx context.Context, doc *models.Workflow) error {
	now := time.Now().UTC()

	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}

	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = now
	}

	if doc.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate document ID: %w", err)
		}

		doc.ID = id.String()
	}

	itemsJSON, err := json.Marshal(doc.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}

	metaJSON, err := json.Marshal(doc.Meta)
	if err != nil {
		return fmt.Errorf("failed to marshal meta: %w", err)
	}

	query := `
		INSERT INTO workflows (id, uid, slug, title, description, items, meta, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.db.ExecContext(ctx, query,
		doc.ID,
		doc.UID,
		doc.Slug,
		doc.Title,
		doc.Description,
		itemsJSON,
		metaJSON,
		doc.UserID,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return persistence.NewDocumentError("Create", doc.UID, persistence.ErrDocumentAlreadyExists)
		}

		return persistence.NewDocumentError("Create", doc.UID, err)
	}

	return nil
}

// Update applies a save commit as a single UPDATE so partial application is
// never observable.
func (r *DocumentRepository) Update(ctx context.Context, id string, update persistence.DocumentUpdate) (*models.Workflow, error) {
	itemsJSON, err := json.Marshal(update.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal items: %w", err)
	}

	metaJSON, err := json.Marshal(update.Meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal meta: %w", err)
	}

	query := `
		UPDATE workflows
		SET title = $2
		  , description = $3
		  , slug = $4
		  , items = $5
		  , meta = $6
		  , updated_at = $7
		WHERE id = $1
		RETURNING ` + documentColumns

	row := r.db.QueryRowContext(ctx, query,
		id,
		update.Title,
		update.Description,
		update.Slug,
		itemsJSON,
		metaJSON,
		update.UpdatedAt,
	)

	doc, err := r.scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewDocumentError("Update", id, persistence.ErrDocumentNotFound)
		}

		return nil, persistence.NewDocumentError("Update", id, err)
	}

	return doc, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM workflows WHERE id = $1", id)
	if err != nil {
		return persistence.NewDocumentError("Delete", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return persistence.NewDocumentError("Delete", id, persistence.ErrDocumentNotFound)
	}

	return nil
}

func (r *DocumentRepository) GetByUID(ctx context.Context, uid string) (*models.Workflow, error) {
	query := `SELECT ` + documentColumns + ` FROM workflows WHERE uid = $1`

	doc, err := r.scanDocument(r.db.QueryRowContext(ctx, query, uid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewDocumentError("GetByUID", uid, persistence.ErrDocumentNotFound)
		}

		return nil, persistence.NewDocumentError("GetByUID", uid, err)
	}

	return doc, nil
}

func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Workflow, error) {
	query := `SELECT ` + documentColumns + ` FROM workflows WHERE user_id = $1 ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	docs := make([]*models.Workflow, 0)

	for rows.Next() {
		doc, err := r.scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *DocumentRepository) scanDocument(row rowScanner) (*models.Workflow, error) {
	var (
		doc       models.Workflow
		itemsJSON []byte
		metaJSON  []byte
	)

	err := row.Scan(
		&doc.ID,
		&doc.UID,
		&doc.Slug,
		&doc.Title,
		&doc.Description,
		&itemsJSON,
		&metaJSON,
		&doc.UserID,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &doc.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items: %w", err)
	}

	if err := json.Unmarshal(metaJSON, &doc.Meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meta: %w", err)
	}

	return &doc, nil
}
