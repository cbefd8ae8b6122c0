package preview

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDescriptor() Descriptor {
	return NewDescriptor(
		"My Guide",
		time.Date(2026, time.March, 7, 15, 4, 5, 0, time.UTC),
		3,
		"Ada Lovelace",
		"https://cdn.example/avatar.png",
	)
}

func TestNewDescriptor(t *testing.T) {
	t.Parallel()

	d := testDescriptor()

	assert.Equal(t, "My Guide", d.Title)
	assert.Equal(t, "07 March 2026", d.UpdatedAt)
	assert.Equal(t, "3", d.Steps)
	assert.Equal(t, "Ada Lovelace", d.AuthorName)
	assert.Equal(t, "https://cdn.example/avatar.png", d.AuthorAvatar)
}

func TestDescriptor_Encode(t *testing.T) {
	t.Parallel()

	encoded := testDescriptor().Encode()

	assert.Equal(t,
		"title=My+Guide&updatedAt=07+March+2026&steps=3"+
			"&authorName=Ada+Lovelace&authorAvatar=https%3A%2F%2Fcdn.example%2Favatar.png",
		encoded)
}

func TestDescriptor_Encode_Deterministic(t *testing.T) {
	t.Parallel()

	d := testDescriptor()
	first := d.Encode()

	for range 10 {
		assert.Equal(t, first, d.Encode())
	}
}

func TestDescriptor_URL(t *testing.T) {
	t.Parallel()

	d := testDescriptor()

	assert.Equal(t, "https://stepflow.example"+BasePath+"?"+d.Encode(), d.URL("https://stepflow.example"))
	assert.Equal(t, "https://stepflow.example"+BasePath+"?"+d.Encode(), d.URL("https://stepflow.example/"))
}

func TestFormatUpdatedAt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "01 January 2026", FormatUpdatedAt(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "31 December 2025", FormatUpdatedAt(time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC)))
}

func TestCardRenderer_Render(t *testing.T) {
	t.Parallel()

	renderer := NewCardRenderer()

	payload, err := renderer.Render(t.Context(), testDescriptor())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(payload))
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, CanvasWidth, bounds.Dx())
	assert.Equal(t, CanvasHeight, bounds.Dy())
}

func TestCardRenderer_Deterministic(t *testing.T) {
	t.Parallel()

	renderer := NewCardRenderer()
	d := testDescriptor()

	first, err := renderer.Render(t.Context(), d)
	require.NoError(t, err)

	second, err := renderer.Render(t.Context(), d)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCardRenderer_DistinctDocumentsDiffer(t *testing.T) {
	t.Parallel()

	renderer := NewCardRenderer()

	a, err := renderer.Render(t.Context(), testDescriptor())
	require.NoError(t, err)

	other := testDescriptor()
	other.Title = "Another Guide"

	b, err := renderer.Render(t.Context(), other)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
