package services

import (
	"context"
	"fmt"

	"github.com/stepflow/stepflow/pkg/assets"
	"github.com/stepflow/stepflow/pkg/draft"
	"github.com/stepflow/stepflow/pkg/identity"
	"github.com/stepflow/stepflow/pkg/models"
	"github.com/stepflow/stepflow/pkg/persistence"
)

// Document orchestrates workflow document operations. Each save request gets
// its own draft controller so the commit pipeline always runs against the
// freshest persisted snapshot.
type Document struct {
	persistence persistence.Persistence
	uploader    *assets.Uploader
	origin      string
}

// NewDocument creates a new document service. origin is the public base URL
// embedded into preview descriptor links.
func NewDocument(p persistence.Persistence, uploader *assets.Uploader, origin string) *Document {
	return &Document{
		persistence: p,
		uploader:    uploader,
		origin:      origin,
	}
}

// HealthCheck checks the health of the persistence layer.
func (s *Document) HealthCheck(ctx context.Context) (string, bool) {
	if s.persistence == nil {
		return "Persistence layer not initialized", false
	}

	if err := s.persistence.HealthCheck(ctx); err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// List returns the owner's documents, most recently updated first.
func (s *Document) List(ctx context.Context, ownerID string) ([]*models.Workflow, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}

	docs, err := s.persistence.ListDocumentsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	return docs, nil
}

// Create persists a fresh untitled workflow owned by user.
func (s *Document) Create(ctx context.Context, user *identity.User) (*models.Workflow, error) {
	return draft.CreateDocument(ctx, s.persistence, user, s.origin)
}

// GetByLocator resolves a document from its public locator. Only the uid part
// is authoritative: a stale slug still resolves.
func (s *Document) GetByLocator(ctx context.Context, locator string) (*models.Workflow, error) {
	if locator == "" {
		return nil, ErrLocatorRequired
	}

	doc, err := s.persistence.GetDocumentByUID(ctx, models.ParseLocator(locator))
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// SaveRequest is the draft content submitted for a save.
type SaveRequest struct {
	Title       string
	Description string
	Items       []models.Step
}

// Save runs the full save pipeline for the document at locator on behalf of
// user: ownership gate, validation, slug and descriptor derivation, atomic
// commit.
func (s *Document) Save(ctx context.Context, user *identity.User, locator string, req SaveRequest) (*draft.SaveResult, error) {
	doc, err := s.GetByLocator(ctx, locator)
	if err != nil {
		return nil, err
	}

	controller := draft.NewController(s.persistence, s.uploader, user, s.origin, doc)
	if err := controller.Edit(); err != nil {
		return nil, err
	}

	controller.SetTitle(req.Title)
	controller.SetDescription(req.Description)
	controller.ReplaceItems(req.Items)

	return controller.Save(ctx)
}

// AttachScreenshot uploads a screenshot for one step of the document at
// locator and returns the stored asset's locator. The document itself is not
// persisted; the returned URL lands in the items of a later save.
func (s *Document) AttachScreenshot(ctx context.Context, user *identity.User, locator string, index int, raw []byte) (*models.Screenshot, error) {
	doc, err := s.GetByLocator(ctx, locator)
	if err != nil {
		return nil, err
	}

	if !user.Owns(doc.UserID) {
		return nil, draft.ErrNotOwner
	}

	return s.uploader.Attach(ctx, doc.UserID, doc.UID, index, raw)
}

// Delete removes the document at locator. Screenshot assets are weak
// references and stay behind.
func (s *Document) Delete(ctx context.Context, user *identity.User, locator string) error {
	doc, err := s.GetByLocator(ctx, locator)
	if err != nil {
		return err
	}

	if !user.Owns(doc.UserID) {
		return draft.ErrNotOwner
	}

	return draft.DeleteDocument(ctx, s.persistence, doc.ID)
}
