package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"acc-portal/internal/domain/media"
	"acc-portal/internal/domain/validation"
	"acc-portal/internal/storage"
	"acc-portal/internal/store"
)

// ObjectStore is the subset of storage.Storage the upload service needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error)
	Name() string
}

// UploadRepository records stored uploads.
type UploadRepository interface {
	Create(ctx context.Context, u *media.Upload) error
	GetByKey(ctx context.Context, key string) (media.Upload, error)
	List(ctx context.Context) ([]media.Upload, error)
}

type UploadService struct {
	objects  ObjectStore
	repo     UploadRepository
	maxBytes int64
}

func NewUploadService(objects ObjectStore, repo UploadRepository, maxBytes int64) *UploadService {
	return &UploadService{objects: objects, repo: repo, maxBytes: maxBytes}
}

type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	UploadedBy  string
}

// MaxBytes is the largest accepted upload.
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Save stores an image and records it.
func (s *UploadService) Save(ctx context.Context, in UploadInput) (media.Upload, error) {
	ct := strings.ToLower(strings.TrimSpace(in.ContentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if !media.IsImage(ct) {
		return media.Upload{}, validation.New("file", "only JPEG, PNG, GIF, WebP and AVIF images are allowed")
	}
	if in.Size <= 0 {
		return media.Upload{}, validation.New("file", "file is empty")
	}
	if s.maxBytes > 0 && in.Size > s.maxBytes {
		return media.Upload{}, validation.Newf("file", "must be at most %d bytes", s.maxBytes)
	}

	key := media.NewKey(ct)
	if err := s.objects.Put(ctx, key, io.LimitReader(in.Body, in.Size), in.Size, ct); err != nil {
		return media.Upload{}, err
	}

	u := media.Upload{
		Key:         key,
		URL:         media.PublicURL(key),
		Filename:    in.Filename,
		ContentType: ct,
		Size:        in.Size,
		Backend:     s.objects.Name(),
	}
	if in.UploadedBy != "" {
		by := in.UploadedBy
		u.UploadedBy = &by
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return media.Upload{}, err
	}
	return u, nil
}

// Open streams a stored object. Unknown keys report store.ErrNotFound.
func (s *UploadService) Open(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	if err := media.ValidateKey(key); err != nil {
		return nil, storage.ObjectInfo{}, store.ErrNotFound
	}
	rc, info, err := s.objects.Get(ctx, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, storage.ObjectInfo{}, store.ErrNotFound
	}
	return rc, info, err
}

func (s *UploadService) List(ctx context.Context) ([]media.Upload, error) {
	return s.repo.List(ctx)
}
