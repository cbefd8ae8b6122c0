package web

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/stepflow/stepflow/pkg/preview"
)

// PreviewHandlers serves the rasterization endpoint the descriptor URLs
// point at. Rendering is deterministic, so rendered payloads are cached under
// the descriptor's canonical encoding and served with an immutable cache
// policy.
type PreviewHandlers struct {
	renderer preview.Renderer
	cache    preview.Cache
	logger   *slog.Logger
}

func NewPreviewHandlers(renderer preview.Renderer, cache preview.Cache, logger *slog.Logger) *PreviewHandlers {
	return &PreviewHandlers{
		renderer: renderer,
		cache:    cache,
		logger:   logger,
	}
}

func (h *PreviewHandlers) RenderPreview(c fiber.Ctx) error {
	d := preview.Descriptor{
		Title:        c.Query("title"),
		UpdatedAt:    c.Query("updatedAt"),
		Steps:        c.Query("steps"),
		AuthorName:   c.Query("authorName"),
		AuthorAvatar: c.Query("authorAvatar"),
	}

	key := d.Encode()

	if payload, ok, err := h.cache.Get(c.Context(), key); err != nil {
		h.logger.Warn("Preview cache read failed", "error", err)
	} else if ok {
		return h.send(c, payload)
	}

	payload, err := h.renderer.Render(c.Context(), d)
	if err != nil {
		return internalError(c, err)
	}

	if err := h.cache.Set(c.Context(), key, payload); err != nil {
		h.logger.Warn("Preview cache write failed", "error", err)
	}

	return h.send(c, payload)
}

func (h *PreviewHandlers) send(c fiber.Ctx, payload []byte) error {
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, immutable, no-transform, max-age=31536000")

	return c.Send(payload)
}
