package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/stepflow/stepflow/pkg/models"
	"github.com/stepflow/stepflow/pkg/otelhelper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ErrUploadFailed indicates the store rejected the normalized asset. The
// owning step is left unchanged and the caller may retry.
var ErrUploadFailed = errors.New("asset upload failed")

// ErrStepBusy indicates an upload for the same step is already in flight.
// At most one upload may target a given step index at a time; uploads to
// different indices proceed independently.
var ErrStepBusy = errors.New("an upload for this step is already in flight")

type busyKey struct {
	doc   string
	index int
}

// Uploader runs the attachment pipeline: size check, recompression, key
// derivation, and the overwrite-safe put. It tracks per-step busy state so a
// second upload cannot race the first for the same step.
type Uploader struct {
	store Store
	now   func() time.Time

	mu   sync.Mutex
	busy map[busyKey]bool
}

func NewUploader(store Store) *Uploader {
	return &Uploader{
		store: store,
		now:   time.Now,
		busy:  make(map[busyKey]bool),
	}
}

// Busy reports whether an upload for the given step is in flight.
func (u *Uploader) Busy(docUID string, index int) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.busy[busyKey{doc: docUID, index: index}]
}

// Attach normalizes and stores a raw image for one step of a document and
// returns the locator to write into the step's screenshot field. On any
// failure nothing is attached: the caller's step stays as it was.
func (u *Uploader) Attach(ctx context.Context, ownerID, docUID string, index int, raw []byte) (*models.Screenshot, error) {
	key := busyKey{doc: docUID, index: index}

	u.mu.Lock()
	if u.busy[key] {
		u.mu.Unlock()

		return nil, ErrStepBusy
	}

	u.busy[key] = true
	u.mu.Unlock()

	defer func() {
		u.mu.Lock()
		delete(u.busy, key)
		u.mu.Unlock()
	}()

	ctx, span := otelhelper.StartSpan(ctx, otel.Tracer("stepflow.assets"), "assets.attach",
		attribute.String(otelhelper.DocumentUIDKey, docUID),
		attribute.Int(otelhelper.StepIndexKey, index),
	)
	defer span.End()

	normalized, ext, err := Normalize(raw)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	objectKey := fmt.Sprintf("%s/img-%d.%s", ownerID, u.now().UnixMilli(), ext)

	url, err := u.store.Put(ctx, objectKey, normalized, "image/"+ext)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	return &models.Screenshot{URL: url}, nil
}
