package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"imageservice/internal/database"
	"imageservice/internal/imageproc"
	"imageservice/internal/model"
	"imageservice/internal/pagination"
	"imageservice/internal/storage"
)

// iconPrefix is the fixed key prefix under which static icons live.
const iconPrefix = "icons/"

// Service coordinates the metadata store and the blob store. It owns the
// sequencing of every dual-write and holds no state of its own, so a single
// instance is safe for concurrent use.
type Service struct {
	db      database.Database
	store   storage.Storage
	timeout time.Duration
}

// New creates a Service. backendTimeout bounds each individual blob-store or
// database round trip; zero disables the bound.
func New(db database.Database, store storage.Storage, backendTimeout time.Duration) *Service {
	return &Service{db: db, store: store, timeout: backendTimeout}
}

// Upload is one file of an upload batch.
type Upload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// BulkDeleteResult reports the per-item outcome of a parent-scoped delete.
type BulkDeleteResult struct {
	Deleted []string            `json:"deleted"`
	Failed  []BulkDeleteFailure `json:"failed"`
}

// BulkDeleteFailure names one image that could not be fully removed.
type BulkDeleteFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// callCtx bounds a single backend round trip.
func (s *Service) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// storageKey derives the blob key for an uploaded file. The same filename
// re-uploaded for the same parent produces the same key, so the new payload
// overwrites the old one.
func storageKey(filename, parentID string) string {
	return filename + "-" + parentID
}

// Save stores each file in input order: blob put first, then one metadata
// row, committed immediately so concurrent readers see files as they land.
// A failure aborts the batch but does not roll back files already committed
// in earlier iterations.
func (s *Service) Save(ctx context.Context, imageType model.ImageType, parentID string, files []Upload) (*model.Asset, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files in request", ErrUpload)
	}

	contents := make([][]byte, 0, len(files))
	names := make([]string, 0, len(files))

	for _, f := range files {
		data, err := io.ReadAll(f.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrUpload, f.Filename, err)
		}

		key := storageKey(f.Filename, parentID)

		contentType := f.ContentType
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}

		putCtx, cancel := s.callCtx(ctx)
		url, err := s.store.Put(putCtx, key, bytes.NewReader(data), int64(len(data)), contentType)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%w: storing %s: %v", ErrUpload, key, err)
		}

		info := imageproc.Inspect(data)

		img := &model.Image{
			ID:             uuid.New().String(),
			StorageKey:     key,
			URL:            url,
			ParentEntityID: parentID,
			ImageType:      imageType,
			FileSize:       int64(len(data)),
			Width:          info.Width,
			Height:         info.Height,
			Uploaded:       time.Now().UTC(),
		}

		dbCtx, cancel := s.callCtx(ctx)
		err = s.db.CreateImage(dbCtx, img)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("recording %s: %w", key, err)
		}

		contents = append(contents, data)
		names = append(names, key)
	}

	// The response carries the original request bytes, not a re-read
	// from the blob store.
	return &model.Asset{
		ImageType:      imageType,
		ParentEntityID: parentID,
		Files:          assembleFiles(contents, names),
	}, nil
}

// GetByID returns the single image with the given id.
func (s *Service) GetByID(ctx context.Context, id string) (*model.Asset, error) {
	dbCtx, cancel := s.callCtx(ctx)
	img, err := s.db.GetImage(dbCtx, id)
	cancel()
	if err != nil {
		return nil, mapLookupErr(err, "image "+id)
	}
	return s.assetFromRecord(ctx, img)
}

// GetByURL returns the single image with the given public URL.
func (s *Service) GetByURL(ctx context.Context, url string) (*model.Asset, error) {
	dbCtx, cancel := s.callCtx(ctx)
	img, err := s.db.GetImageByURL(dbCtx, url)
	cancel()
	if err != nil {
		return nil, mapLookupErr(err, "image at "+url)
	}
	return s.assetFromRecord(ctx, img)
}

// assetFromRecord fetches the blob for a single metadata row and wraps both
// into a one-file asset.
func (s *Service) assetFromRecord(ctx context.Context, img *model.Image) (*model.Asset, error) {
	getCtx, cancel := s.callCtx(ctx)
	data, err := s.store.Get(getCtx, img.StorageKey)
	cancel()
	if err != nil {
		return nil, mapLookupErr(err, "blob "+img.StorageKey)
	}

	return &model.Asset{
		ImageType:      img.ImageType,
		ParentEntityID: img.ParentEntityID,
		Files:          assembleFiles([][]byte{data}, []string{img.StorageKey}),
	}, nil
}

// GetByParent returns every image owned by parentID, in upload order, as one
// asset. All rows must share a single image type; a mixed-type parent fails
// with ErrMixedTypes rather than silently reporting the first row's type.
func (s *Service) GetByParent(ctx context.Context, parentID string) (*model.Asset, error) {
	dbCtx, cancel := s.callCtx(ctx)
	images, err := s.db.ListImagesByParent(dbCtx, parentID)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("listing images for parent %s: %w", parentID, err)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("parent %s: %w", parentID, ErrNotFound)
	}

	imageType := images[0].ImageType
	for _, img := range images[1:] {
		if img.ImageType != imageType {
			return nil, fmt.Errorf("parent %s has %s and %s: %w",
				parentID, imageType, img.ImageType, ErrMixedTypes)
		}
	}

	contents := make([][]byte, 0, len(images))
	names := make([]string, 0, len(images))
	for _, img := range images {
		getCtx, cancel := s.callCtx(ctx)
		data, err := s.store.Get(getCtx, img.StorageKey)
		cancel()
		if err != nil {
			return nil, mapLookupErr(err, "blob "+img.StorageKey)
		}
		contents = append(contents, data)
		names = append(names, img.StorageKey)
	}

	return &model.Asset{
		ImageType:      imageType,
		ParentEntityID: parentID,
		Files:          assembleFiles(contents, names),
	}, nil
}

// GetManyByParent fetches one asset per parent id, in the order given, and
// slices the result into the requested page. Any single parent failing fails
// the whole call; there is no best-effort mode here.
func (s *Service) GetManyByParent(ctx context.Context, parentIDs []string, pageNumber, pageSize int) (pagination.Page[*model.Asset], error) {
	assets := make([]*model.Asset, 0, len(parentIDs))
	for _, parentID := range parentIDs {
		asset, err := s.GetByParent(ctx, parentID)
		if err != nil {
			return pagination.Page[*model.Asset]{}, err
		}
		assets = append(assets, asset)
	}
	return pagination.Paginate(assets, pageNumber, pageSize), nil
}

// DeleteByID removes the metadata row, then the blob. A blob-delete failure
// after the row is gone leaves an orphan blob; it is logged and the delete
// still reports success, since the image is no longer reachable.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	dbCtx, cancel := s.callCtx(ctx)
	img, err := s.db.GetImage(dbCtx, id)
	cancel()
	if err != nil {
		return mapLookupErr(err, "image "+id)
	}

	dbCtx, cancel = s.callCtx(ctx)
	err = s.db.DeleteImage(dbCtx, id)
	cancel()
	if err != nil {
		return mapLookupErr(err, "image "+id)
	}

	delCtx, cancel := s.callCtx(ctx)
	err = s.store.Delete(delCtx, img.StorageKey)
	cancel()
	if err != nil {
		slog.Warn("orphan blob left behind", "key", img.StorageKey, "error", err)
	}
	return nil
}

// DeleteByParent removes every image owned by parentID, best effort: each
// row is handled independently and one failure does not stop the rest. A
// parent with no images is a silent success.
func (s *Service) DeleteByParent(ctx context.Context, parentID string) (*BulkDeleteResult, error) {
	dbCtx, cancel := s.callCtx(ctx)
	images, err := s.db.ListImagesByParent(dbCtx, parentID)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("listing images for parent %s: %w", parentID, err)
	}

	result := &BulkDeleteResult{Deleted: []string{}, Failed: []BulkDeleteFailure{}}
	for _, img := range images {
		dbCtx, cancel := s.callCtx(ctx)
		err := s.db.DeleteImage(dbCtx, img.ID)
		cancel()
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			slog.Error("bulk delete: metadata delete failed", "id", img.ID, "error", err)
			result.Failed = append(result.Failed, BulkDeleteFailure{ID: img.ID, Reason: err.Error()})
			continue
		}

		delCtx, cancel := s.callCtx(ctx)
		err = s.store.Delete(delCtx, img.StorageKey)
		cancel()
		if err != nil {
			slog.Error("bulk delete: orphan blob left behind", "id", img.ID, "key", img.StorageKey, "error", err)
			result.Failed = append(result.Failed, BulkDeleteFailure{ID: img.ID, Reason: err.Error()})
			continue
		}

		result.Deleted = append(result.Deleted, img.ID)
	}
	return result, nil
}

// ListIcons returns every SVG stored under the icons/ prefix. Individual
// fetch failures are logged and skipped; only a failed listing or a fully
// empty prefix fails the call.
func (s *Service) ListIcons(ctx context.Context) ([]model.File, error) {
	listCtx, cancel := s.callCtx(ctx)
	keys, err := s.store.List(listCtx, iconPrefix)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("listing icons: %w", err)
	}
	if len(keys) == 0 {
		return nil, ErrNoIcons
	}

	icons := []model.File{}
	for _, key := range keys {
		if !strings.HasSuffix(key, ".svg") {
			slog.Debug("skipping non-SVG icon", "key", key)
			continue
		}

		getCtx, cancel := s.callCtx(ctx)
		data, err := s.store.Get(getCtx, key)
		cancel()
		if err != nil {
			slog.Error("failed to fetch icon", "key", key, "error", err)
			continue
		}

		icons = append(icons, model.File{Name: path.Base(key), Data: data})
	}
	return icons, nil
}

// Count returns the total number of image records.
func (s *Service) Count(ctx context.Context) (int, error) {
	dbCtx, cancel := s.callCtx(ctx)
	defer cancel()
	return s.db.CountImages(dbCtx)
}

// mapLookupErr folds the store-level not-found sentinels into the service
// taxonomy and wraps everything else untouched.
func mapLookupErr(err error, what string) error {
	if errors.Is(err, database.ErrNotFound) || errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}
