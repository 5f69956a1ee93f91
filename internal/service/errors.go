package service

import "errors"

var (
	// ErrNotFound covers a missing metadata row, a missing blob, and a
	// parent entity that owns no images.
	ErrNotFound = errors.New("image not found")

	// ErrUpload covers failures while reading or storing an uploaded file.
	ErrUpload = errors.New("upload failed")

	// ErrNoIcons means the icons/ prefix holds no objects at all.
	ErrNoIcons = errors.New("no icons configured")

	// ErrMixedTypes means one parent entity owns images of differing
	// types, which violates the single-type-per-parent invariant.
	ErrMixedTypes = errors.New("parent owns images of mixed types")
)
