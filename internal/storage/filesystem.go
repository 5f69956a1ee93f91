package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Compile-time check that FileSystem implements Storage.
var _ Storage = (*FileSystem)(nil)

// FileSystem implements Storage on the local filesystem. A blob with key k
// lives at <basePath>/k, so keys may contain slashes ("icons/heart.svg").
// Public URLs point at the service's own /files/ delivery route.
type FileSystem struct {
	basePath string
	baseURL  string
}

// NewFileSystem creates a FileSystem storage rooted at basePath. baseURL is
// the externally visible address of this service, used to build blob URLs.
func NewFileSystem(basePath, baseURL string) *FileSystem {
	return &FileSystem{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// keyPath resolves key inside basePath, rejecting traversal outside it.
func (f *FileSystem) keyPath(key string) (string, error) {
	path := filepath.Join(f.basePath, filepath.FromSlash(key))
	if !strings.HasPrefix(path, filepath.Clean(f.basePath)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return path, nil
}

// Put writes data to disk using atomic write (temp file + rename) and
// returns the blob URL. The contentType and size hints are not persisted;
// Head re-derives them from the file itself.
func (f *FileSystem) Put(ctx context.Context, key string, data io.Reader, size int64, contentType string) (string, error) {
	path, err := f.keyPath(key)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	// Write to a temp file in the same directory for atomic rename.
	tmp, err := os.CreateTemp(dir, "upload-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// Clean up the temp file on any error path.
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing data: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	// Rename succeeded; prevent deferred cleanup from removing the final file.
	tmpPath = ""

	return f.URL(key), nil
}

func (f *FileSystem) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := f.keyPath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

// Delete removes the blob file. It is idempotent: deleting a missing key
// returns no error.
func (f *FileSystem) Delete(ctx context.Context, key string) error {
	path, err := f.keyPath(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing file %s: %w", path, err)
	}
	return nil
}

func (f *FileSystem) Head(ctx context.Context, key string) (*ObjectInfo, error) {
	path, err := f.keyPath(key)
	if err != nil {
		return nil, err
	}

	st, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("stat file %s: %w", path, err)
	}

	info := &ObjectInfo{
		Key:          key,
		Size:         st.Size(),
		LastModified: st.ModTime(),
	}

	// Sniff the content type from the first bytes of the file.
	fh, err := os.Open(path)
	if err == nil {
		buf := make([]byte, 512)
		n, _ := fh.Read(buf)
		fh.Close()
		if n > 0 {
			info.ContentType = http.DetectContentType(buf[:n])
		}
	}

	return info, nil
}

func (f *FileSystem) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(f.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(f.basePath, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("listing %s: %w", prefix, err)
	}
	return keys, nil
}

func (f *FileSystem) URL(key string) string {
	return f.baseURL + "/files/" + key
}

// EnsureBucket creates the base directory if needed.
func (f *FileSystem) EnsureBucket(ctx context.Context) error {
	if err := os.MkdirAll(f.basePath, 0755); err != nil {
		return fmt.Errorf("creating storage root %s: %w", f.basePath, err)
	}
	return nil
}
