package assets

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store implements Store on S3-compatible object storage.
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string // base URL under which bucket objects are served
}

func NewS3Store(client *s3.Client, bucket, publicURL string) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func (s *S3Store) Put(ctx context.Context, key string, payload []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.publicURL + "/" + key, nil
}
