package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stepflow/stepflow/pkg/assets"
)

// StorageConfig selects and configures the asset store backend.
type StorageConfig struct {
	Type string

	LocalBaseDir   string
	LocalPublicURL string

	S3Region    string
	S3Bucket    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}

// NewAssetStore creates the screenshot store from configuration.
func NewAssetStore(ctx context.Context, logger *slog.Logger, cfg StorageConfig) (assets.Store, error) {
	switch cfg.Type {
	case "local":
		logger.Info("Initializing local asset storage", "dir", cfg.LocalBaseDir)

		return assets.NewLocalStore(cfg.LocalBaseDir, cfg.LocalPublicURL)
	case "s3":
		logger.Info("Initializing S3 asset storage", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)

		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.S3Region),
		}

		if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
			creds := credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")
			opts = append(opts, awsconfig.WithCredentialsProvider(creds))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.S3Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			}
			o.UsePathStyle = true
		})

		return assets.NewS3Store(client, cfg.S3Bucket, cfg.S3PublicURL), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
