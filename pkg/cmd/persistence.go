// Package cmd provides shared construction helpers for the command line
// entrypoints.
package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/stepflow/stepflow/pkg/persistence"
	"github.com/stepflow/stepflow/pkg/persistence/file"
	"github.com/stepflow/stepflow/pkg/persistence/postgresql"
)

// NewPersistence selects the persistence backend from the database URL
// scheme. A postgres URL gets the SQL backend; anything else is treated as a
// directory for file persistence.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) persistence.Persistence {
	switch parseProvider(databaseURL) {
	case "postgres", "postgresql":
		p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			panic(err)
		}

		return p
	default:
		return file.NewPersistence(databaseURL)
	}
}

func parseProvider(databaseURL string) string {
	provider, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	return provider
}
