package database

import (
	"context"
	"errors"

	"imageservice/internal/model"
)

// ErrNotFound is returned when a lookup matches no image row.
var ErrNotFound = errors.New("image not found")

// Database defines the metadata-store interface for image records.
// Rows are immutable once written: there is no update operation.
type Database interface {
	CreateImage(ctx context.Context, img *model.Image) error
	GetImage(ctx context.Context, id string) (*model.Image, error)
	GetImageByURL(ctx context.Context, url string) (*model.Image, error)

	// ListImagesByParent returns all rows owned by parentID in insertion
	// order. A parent with no rows yields an empty slice, not an error.
	ListImagesByParent(ctx context.Context, parentID string) ([]*model.Image, error)

	DeleteImage(ctx context.Context, id string) error
	// DeleteImages removes all rows matching ids and returns how many
	// were actually deleted. Missing ids are not an error.
	DeleteImages(ctx context.Context, ids []string) (int64, error)

	CountImages(ctx context.Context) (int, error)

	Close() error
}
