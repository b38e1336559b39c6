package operation

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/operation"
	"github.com/BruksfildServices01/salon-scheduler/internal/imaging"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	maxPhotoWidth     = 1280
	maxPhotosPerEntry = 10
)

var ErrTooManyPhotos = errors.New("photo limit reached")

// PhotoStore persists an encoded photo and returns its public URL.
type PhotoStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type AttachPhotoInput struct {
	TenantID    uint
	ActorID     uint
	OperationID uint
	Image       io.Reader
}

type AttachPhoto struct {
	query operation.Query
	store PhotoStore
	audit audit.Sink
}

func NewAttachPhoto(query operation.Query, store PhotoStore, sink audit.Sink) *AttachPhoto {
	return &AttachPhoto{query: query, store: store, audit: sink}
}

func (uc *AttachPhoto) Execute(ctx context.Context, in AttachPhotoInput) (*models.Operation, error) {
	op, err := uc.query.GetOperation(ctx, in.TenantID, in.OperationID)
	if err != nil {
		return nil, err
	}
	if len(op.Photos) >= maxPhotosPerEntry {
		return nil, ErrTooManyPhotos
	}

	data, err := imaging.ToWebP(in.Image, maxPhotoWidth)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tenants/%d/operations/%d/%s.webp", in.TenantID, op.ID, uuid.NewString())
	url, err := uc.store.Put(ctx, key, imaging.ContentType, data)
	if err != nil {
		return nil, err
	}

	op.Photos = append(op.Photos, url)
	if err := uc.query.SavePhotos(ctx, op); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		UserID:   &in.ActorID,
		Action:   "operation_photo_added",
		Entity:   "operation",
		EntityID: &op.ID,
		Metadata: map[string]string{"url": url},
	})

	return op, nil
}
