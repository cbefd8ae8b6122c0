// Package assets implements the screenshot attachment pipeline: client image
// normalization, durable storage, and the per-step upload discipline.
package assets

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
)

// MaxUploadBytes is the input size ceiling, enforced before any compression
// work is done.
const MaxUploadBytes = 2 * 1024 * 1024

// jpegQuality is the fixed recompression target (0.8 on a 0-1 scale).
const jpegQuality = 80

// ErrTooLarge indicates the raw upload exceeded MaxUploadBytes. The upload is
// rejected outright, never truncated.
var ErrTooLarge = errors.New("image exceeds maximum upload size")

// Normalize enforces the size ceiling and recompresses the image to bounded
// JPEG. It returns the normalized payload and its file extension.
func Normalize(raw []byte) ([]byte, string, error) {
	if len(raw) > MaxUploadBytes {
		return nil, "", ErrTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, "", fmt.Errorf("failed to recompress image: %w", err)
	}

	return buf.Bytes(), "jpeg", nil
}
