// Package media stores binary course assets (thumbnails, chapter videos)
// on an external media host and removes them again on a best-effort basis.
package media

import (
	"context"
	"errors"
	"io"
)

// Kind selects the media host's resource type
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

var (
	ErrNotConfigured = errors.New("media storage is not configured")
	ErrUploadFailed  = errors.New("failed to upload file")
	ErrDeleteFailed  = errors.New("failed to delete file")
)

// UploadOptions describes where and how an asset is stored
type UploadOptions struct {
	Folder   string
	Filename string
	Kind     Kind
}

// Asset is the handle returned by a successful upload
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Format   string `json:"format"`
	Bytes    int    `json:"bytes"`
}

// Storage is the media host contract. src is rewound before every attempt,
// so callers can pass multipart files directly.
type Storage interface {
	Upload(ctx context.Context, src io.ReadSeeker, opts UploadOptions) (*Asset, error)
	// Delete removes an asset. Deleting an asset that no longer exists succeeds.
	Delete(ctx context.Context, publicID string, kind Kind) error
}

// Disabled is used when no media host credentials are configured
type Disabled struct{}

func (Disabled) Upload(context.Context, io.ReadSeeker, UploadOptions) (*Asset, error) {
	return nil, ErrNotConfigured
}

func (Disabled) Delete(context.Context, string, Kind) error {
	return ErrNotConfigured
}
