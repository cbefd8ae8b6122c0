package cmd

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/stepflow/stepflow/pkg/preview"
)

// NewPreviewCache creates the rendered-preview cache. An empty Redis URL
// drops caching entirely; every preview request renders.
func NewPreviewCache(logger *slog.Logger, redisURL string) preview.Cache {
	if redisURL == "" {
		return preview.NoopCache{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		panic(err)
	}

	logger.Info("Initializing preview cache", "addr", opts.Addr)

	return preview.NewRedisCache(redis.NewClient(opts))
}
