package main

import (
	"context"
	"os"

	"github.com/stepflow/stepflow/pkg/cmd"
	"github.com/stepflow/stepflow/pkg/log"
	"github.com/stepflow/stepflow/pkg/otelhelper"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9091

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "stepflow-api",
		Usage:                 "Author and share step-by-step workflow guides",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL for persistence",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "Public origin embedded into preview and asset URLs",
				Value:   "http://localhost:9091",
				Sources: cli.EnvVars("BASE_URL"),
			},
			&cli.StringFlag{
				Name:    "storage-type",
				Usage:   "Screenshot storage backend (local, s3)",
				Value:   "local",
				Sources: cli.EnvVars("STORAGE_TYPE"),
			},
			&cli.StringFlag{
				Name:    "storage-local-dir",
				Usage:   "Directory for local screenshot storage",
				Value:   "./data/uploads",
				Sources: cli.EnvVars("STORAGE_LOCAL_DIR"),
			},
			&cli.StringFlag{
				Name:    "storage-public-url",
				Usage:   "Public base URL under which stored screenshots are served",
				Sources: cli.EnvVars("STORAGE_PUBLIC_URL"),
			},
			&cli.StringFlag{
				Name:    "s3-region",
				Usage:   "AWS region for S3 screenshot storage",
				Sources: cli.EnvVars("S3_REGION", "AWS_REGION"),
			},
			&cli.StringFlag{
				Name:    "s3-bucket",
				Usage:   "S3 bucket for screenshot storage",
				Sources: cli.EnvVars("S3_BUCKET"),
			},
			&cli.StringFlag{
				Name:    "s3-endpoint",
				Usage:   "Custom S3 endpoint, e.g. for MinIO",
				Sources: cli.EnvVars("S3_ENDPOINT"),
			},
			&cli.StringFlag{
				Name:    "s3-access-key",
				Usage:   "Static S3 access key; falls back to the default AWS chain",
				Sources: cli.EnvVars("S3_ACCESS_KEY"),
			},
			&cli.StringFlag{
				Name:    "s3-secret-key",
				Usage:   "Static S3 secret key; falls back to the default AWS chain",
				Sources: cli.EnvVars("S3_SECRET_KEY"),
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "Redis URL for the rendered-preview cache; empty disables caching",
				Sources: cli.EnvVars("REDIS_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Stepflow API")

			if _, err := otelhelper.NewTracer(ctx, "stepflow-api"); err != nil {
				logger.WarnContext(ctx, "Tracing disabled", "error", err)
			}

			persistence := cmd.NewPersistence(ctx, logger, command.String("database-url"))

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			store, err := cmd.NewAssetStore(ctx, logger, cmd.StorageConfig{
				Type:           command.String("storage-type"),
				LocalBaseDir:   command.String("storage-local-dir"),
				LocalPublicURL: command.String("storage-public-url"),
				S3Region:       command.String("s3-region"),
				S3Bucket:       command.String("s3-bucket"),
				S3Endpoint:     command.String("s3-endpoint"),
				S3AccessKey:    command.String("s3-access-key"),
				S3SecretKey:    command.String("s3-secret-key"),
				S3PublicURL:    command.String("storage-public-url"),
			})
			if err != nil {
				return err
			}

			cache := cmd.NewPreviewCache(logger, command.String("redis-url"))

			api := NewAPI(
				logger,
				persistence,
				store,
				cache,
				command.String("base-url"),
			)

			if err := api.Start(command.Int("port")); err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
