// Package mediatest provides an in-memory media.Storage that records every
// call and can be told to fail specific uploads or deletions.
package mediatest

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"learnhub/internal/media"
)

// Upload is a recorded successful upload
type Upload struct {
	PublicID string
	URL      string
	Folder   string
	Filename string
	Kind     media.Kind
	Content  []byte
}

// Storage is a fake media host
type Storage struct {
	mu sync.Mutex

	uploads     []Upload
	deleted     []string
	live        map[string]bool
	failDelete  map[string]error
	failUploads map[string]error
	failAfter   int
	failErr     error
	seq         int
}

// New creates an empty fake
func New() *Storage {
	return &Storage{
		live:        map[string]bool{},
		failDelete:  map[string]error{},
		failUploads: map[string]error{},
		failAfter:   -1,
	}
}

// FailDelete makes deleting publicID return err
func (s *Storage) FailDelete(publicID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failDelete[publicID] = err
}

// FailUpload makes uploads with the given filename return err
func (s *Storage) FailUpload(filename string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failUploads[filename] = err
}

// FailUploadsAfter lets n uploads succeed and fails every later one with err
func (s *Storage) FailUploadsAfter(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAfter = n
	s.failErr = err
}

// Upload implements media.Storage
func (s *Storage) Upload(ctx context.Context, src io.ReadSeeker, opts media.UploadOptions) (*media.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	content, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failUploads[opts.Filename]; err != nil {
		return nil, fmt.Errorf("%w: %v", media.ErrUploadFailed, err)
	}
	if s.failAfter >= 0 && len(s.uploads) >= s.failAfter {
		return nil, fmt.Errorf("%w: %v", media.ErrUploadFailed, s.failErr)
	}

	s.seq++
	publicID := fmt.Sprintf("%s/asset-%03d", opts.Folder, s.seq)
	up := Upload{
		PublicID: publicID,
		URL:      "https://media.test/" + publicID,
		Folder:   opts.Folder,
		Filename: opts.Filename,
		Kind:     opts.Kind,
		Content:  content,
	}
	s.uploads = append(s.uploads, up)
	s.live[publicID] = true

	return &media.Asset{URL: up.URL, PublicID: publicID, Format: "bin", Bytes: len(content)}, nil
}

// Delete implements media.Storage
func (s *Storage) Delete(_ context.Context, publicID string, _ media.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failDelete[publicID]; err != nil {
		return fmt.Errorf("%w: %v", media.ErrDeleteFailed, err)
	}
	s.deleted = append(s.deleted, publicID)
	delete(s.live, publicID)
	return nil
}

// Seed registers an existing remote asset
func (s *Storage) Seed(publicID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live[publicID] = true
}

// Uploads returns recorded uploads in call order
func (s *Storage) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Upload{}, s.uploads...)
}

// Deleted returns deleted public ids, sorted
func (s *Storage) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]string{}, s.deleted...)
	sort.Strings(out)
	return out
}

// Live returns public ids that were uploaded or seeded and not deleted, sorted
func (s *Storage) Live() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.live))
	for id := range s.live {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

var _ media.Storage = (*Storage)(nil)
