package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"imageservice/internal/model"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements Database backed by SQLite.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (or creates) an SQLite database at dsn and runs migrations.
// For in-memory use pass "file::memory:?cache=shared".
func NewSQLiteDB(dsn string) (*SQLiteDB, error) {
	if !strings.Contains(dsn, "?") {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	} else if !strings.Contains(dsn, "_journal_mode") {
		dsn += "&_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// CreateImage inserts one image row. Re-uploading the same filename for the
// same parent produces the same URL; that row is replaced rather than
// duplicated (overwrite semantics, matching the blob store).
func (s *SQLiteDB) CreateImage(ctx context.Context, img *model.Image) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO images (id, storage_key, url, parent_entity_id, image_type, file_size, width, height, uploaded)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			id = excluded.id,
			parent_entity_id = excluded.parent_entity_id,
			image_type = excluded.image_type,
			file_size = excluded.file_size,
			width = excluded.width,
			height = excluded.height,
			uploaded = excluded.uploaded`,
		img.ID, img.StorageKey, img.URL, img.ParentEntityID, string(img.ImageType),
		img.FileSize, img.Width, img.Height, img.Uploaded.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert image: %w", err)
	}
	return nil
}

func (s *SQLiteDB) GetImage(ctx context.Context, id string) (*model.Image, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, storage_key, url, parent_entity_id, image_type, file_size, width, height, uploaded
		FROM images WHERE id = ?`,
		id,
	)
	return scanImage(row)
}

func (s *SQLiteDB) GetImageByURL(ctx context.Context, url string) (*model.Image, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, storage_key, url, parent_entity_id, image_type, file_size, width, height, uploaded
		FROM images WHERE url = ?`,
		url,
	)
	return scanImage(row)
}

func (s *SQLiteDB) ListImagesByParent(ctx context.Context, parentID string) ([]*model.Image, error) {
	// rowid order is insertion order, which is the order uploads committed.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, storage_key, url, parent_entity_id, image_type, file_size, width, height, uploaded
		FROM images WHERE parent_entity_id = ?
		ORDER BY rowid ASC`,
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list images by parent: %w", err)
	}
	defer rows.Close()

	return scanImages(rows)
}

func (s *SQLiteDB) DeleteImage(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return checkRowsAffected(res)
}

func (s *SQLiteDB) DeleteImages(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM images WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("delete images: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteDB) CountImages(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count images: %w", err)
	}
	return count, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func scanImage(row scannable) (*model.Image, error) {
	img := &model.Image{}
	var imageType, uploadedStr string

	err := row.Scan(&img.ID, &img.StorageKey, &img.URL, &img.ParentEntityID,
		&imageType, &img.FileSize, &img.Width, &img.Height, &uploadedStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan image: %w", err)
	}

	img.ImageType = model.ImageType(imageType)
	img.Uploaded, _ = time.Parse(time.RFC3339Nano, uploadedStr)
	return img, nil
}

func scanImages(rows *sql.Rows) ([]*model.Image, error) {
	var images []*model.Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func checkRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
