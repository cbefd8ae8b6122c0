package file

import (
	"testing"
	"time"

	"github.com/stepflow/stepflow/pkg/models"
	"github.com/stepflow/stepflow/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocument(uid, owner string) *models.Workflow {
	return &models.Workflow{
		UID:    uid,
		Title:  models.DefaultTitle,
		Slug:   models.DeriveSlug(models.DefaultTitle),
		UserID: owner,
		Items:  []models.Step{},
	}
}

func TestPersistence_CreateAndGetByUID(t *testing.T) {
	t.Parallel()

	p := NewPersistence(t.TempDir())

	doc := newTestDocument("abc123def456", "user-1")
	require.NoError(t, p.CreateDocument(t.Context(), doc))
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.CreatedAt.IsZero())

	fetched, err := p.GetDocumentByUID(t.Context(), "abc123def456")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, fetched.ID)
	assert.Equal(t, "Untitled-workflow", fetched.Slug)
}

func TestPersistence_Create_DuplicateUID(t *testing.T) {
	t.Parallel()

	p := NewPersistence(t.TempDir())

	require.NoError(t, p.CreateDocument(t.Context(), newTestDocument("abc123def456", "user-1")))

	err := p.CreateDocument(t.Context(), newTestDocument("abc123def456", "user-1"))
	assert.ErrorIs(t, err, persistence.ErrDocumentAlreadyExists)
}

func TestPersistence_GetByUID_NotFound(t *testing.T) {
	t.Parallel()

	p := NewPersistence(t.TempDir())

	_, err := p.GetDocumentByUID(t.Context(), "missing")
	assert.ErrorIs(t, err, persistence.ErrDocumentNotFound)
}

func TestPersistence_Update(t *testing.T) {
	t.Parallel()

	p := NewPersistence(t.TempDir())

	doc := newTestDocument("abc123def456", "user-1")
	require.NoError(t, p.CreateDocument(t.Context(), doc))

	savedAt := time.Now().UTC()
	updated, err := p.UpdateDocument(t.Context(), doc.ID, persistence.DocumentUpdate{
		Title: "My Guide",
		Slug:  "My-Guide",
		Items: []models.Step{
			{ID: "step-1", Kind: models.StepKindStep, Title: "First"},
		},
		Meta:      models.Meta{Title: "My Guide"},
		UpdatedAt: savedAt,
	})
	require.NoError(t, err)

	assert.Equal(t, "My Guide", updated.Title)
	assert.Equal(t, "abc123def456", updated.UID)

	fetched, err := p.GetDocumentByUID(t.Context(), "abc123def456")
	require.NoError(t, err)
	assert.Equal(t, "My-Guide", fetched.Slug)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "step-1", fetched.Items[0].ID)
}

func TestPersistence_Update_NotFound(t *testing.T) {
	t.Parallel()

	p := NewPersistence(t.TempDir())

	_, err := p.UpdateDocument(t.Context(), "missing-id", persistence.DocumentUpdate{})
	assert.ErrorIs(t, err, persistence.ErrDocumentNotFound)
}

func TestPersistence_Delete(t *testing.T) {
	t.Parallel()

	p := NewPersistence(t.TempDir())

	doc := newTestDocument("abc123def456", "user-1")
	require.NoError(t, p.CreateDocument(t.Context(), doc))
	require.NoError(t, p.DeleteDocument(t.Context(), doc.ID))

	_, err := p.GetDocumentByUID(t.Context(), doc.UID)
	assert.ErrorIs(t, err, persistence.ErrDocumentNotFound)

	err = p.DeleteDocument(t.Context(), doc.ID)
	assert.ErrorIs(t, err, persistence.ErrDocumentNotFound)
}

func TestPersistence_ListByOwner(t *testing.T) {
	t.Parallel()

	p := NewPersistence(t.TempDir())

	first := newTestDocument("aaa111aaa111", "user-1")
	first.UpdatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, p.CreateDocument(t.Context(), first))

	second := newTestDocument("bbb222bbb222", "user-1")
	second.UpdatedAt = time.Now().UTC()
	require.NoError(t, p.CreateDocument(t.Context(), second))

	other := newTestDocument("ccc333ccc333", "user-2")
	require.NoError(t, p.CreateDocument(t.Context(), other))

	docs, err := p.ListDocumentsByOwner(t.Context(), "user-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Most recently updated first.
	assert.Equal(t, "bbb222bbb222", docs[0].UID)
	assert.Equal(t, "aaa111aaa111", docs[1].UID)
}
