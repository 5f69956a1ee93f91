package model

import (
	"fmt"
	"time"
)

// ImageType classifies what kind of asset an image record holds.
type ImageType string

const (
	ImageTypeAvatar         ImageType = "AVATAR"
	ImageTypePostAttachment ImageType = "POST_ATTACHMENT"
	ImageTypeIcon           ImageType = "ICON"
)

// ParseImageType validates s against the known image types.
func ParseImageType(s string) (ImageType, error) {
	switch ImageType(s) {
	case ImageTypeAvatar, ImageTypePostAttachment, ImageTypeIcon:
		return ImageType(s), nil
	}
	return "", fmt.Errorf("unknown image type %q", s)
}

// Image is one stored image: a metadata row plus the blob it points at.
// StorageKey and URL are derived from the original filename and the parent
// entity id at upload time and never change afterwards.
type Image struct {
	ID             string    `json:"id"`
	StorageKey     string    `json:"storageKey"`
	URL            string    `json:"url"`
	ParentEntityID string    `json:"parentEntityId"`
	ImageType      ImageType `json:"imageType"`
	FileSize       int64     `json:"fileSize"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	Uploaded       time.Time `json:"uploaded"`
}

// File is a (bytes, filename) pair as delivered to callers.
// Data is base64-encoded in JSON responses.
type File struct {
	Name string `json:"filename"`
	Data []byte `json:"bytes"`
}

// Asset is the outward-facing aggregate for one or more images that share a
// parent entity. It is assembled fresh per request and never persisted.
type Asset struct {
	ImageType      ImageType `json:"imageType"`
	ParentEntityID string    `json:"parentEntityId"`
	Files          []File    `json:"files"`
}
