// Package postgresql provides PostgreSQL persistence for workflow documents.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	// Registers the postgres driver.
	_ "github.com/lib/pq"
	"github.com/stepflow/stepflow/pkg/models"
	"github.com/stepflow/stepflow/pkg/persistence"
	"github.com/stepflow/stepflow/pkg/persistence/sqlbase"
)

// Persistence implements the persistence layer for PostgreSQL.
type Persistence struct {
	db   *sql.DB
	repo *DocumentRepository
}

// NewPersistence creates a new PostgreSQL persistence layer and runs pending
// migrations.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())

	err = migrationManager.RunMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		db:   database,
		repo: NewDocumentRepository(database, logger),
	}, nil
}

// Close closes the database connection.
func (p *Persistence) Close(_ context.Context) error {
	if p.db != nil {
		err := p.db.Close()
		if err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

func (p *Persistence) CreateDocument(ctx context.Context, doc *models.Workflow) error {
	return p.repo.Create(ctx, doc)
}

func (p *Persistence) UpdateDocument(ctx context.Context, id string, update persistence.DocumentUpdate) (*models.Workflow, error) {
	return p.repo.Update(ctx, id, update)
}

func (p *Persistence) DeleteDocument(ctx context.Context, id string) error {
	return p.repo.Delete(ctx, id)
}

func (p *Persistence) GetDocumentByUID(ctx context.Context, uid string) (*models.Workflow, error) {
	return p.repo.GetByUID(ctx, uid)
}

func (p *Persistence) ListDocumentsByOwner(ctx context.Context, ownerID string) ([]*models.Workflow, error) {
	return p.repo.ListByOwner(ctx, ownerID)
}
