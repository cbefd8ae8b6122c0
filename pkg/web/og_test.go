package web_test

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stepflow/stepflow/pkg/preview"
	"github.com/stepflow/stepflow/pkg/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCache struct {
	entries map[string][]byte
	gets    int
	sets    int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: map[string][]byte{}}
}

func (c *recordingCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.gets++
	payload, ok := c.entries[key]

	return payload, ok, nil
}

func (c *recordingCache) Set(_ context.Context, key string, payload []byte) error {
	c.sets++
	c.entries[key] = payload

	return nil
}

func setupPreviewApp(t *testing.T, cache preview.Cache) *fiber.App {
	t.Helper()

	handlers := web.NewPreviewHandlers(preview.NewCardRenderer(), cache, slog.Default())
	app := fiber.New()
	app.Get("/og", handlers.RenderPreview)

	return app
}

func TestPreviewHandlers_RenderPreview(t *testing.T) {
	t.Parallel()

	app := setupPreviewApp(t, preview.NoopCache{})

	target := "/og?title=My+Guide&updatedAt=07+March+2026&steps=3&authorName=Ada&authorAvatar="
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "public, immutable, no-transform, max-age=31536000", resp.Header.Get("Cache-Control"))

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, preview.CanvasWidth, img.Bounds().Dx())
	assert.Equal(t, preview.CanvasHeight, img.Bounds().Dy())
}

func TestPreviewHandlers_RenderPreview_CacheHit(t *testing.T) {
	t.Parallel()

	cache := newRecordingCache()
	app := setupPreviewApp(t, cache)

	target := "/og?title=Cached&updatedAt=07+March+2026&steps=1&authorName=Ada&authorAvatar="

	first, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, first.StatusCode)

	firstPayload, err := io.ReadAll(first.Body)
	require.NoError(t, err)

	second, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, second.StatusCode)

	secondPayload, err := io.ReadAll(second.Body)
	require.NoError(t, err)

	assert.Equal(t, firstPayload, secondPayload)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 2, cache.gets)
}
