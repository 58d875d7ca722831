package store

import (
	"context"

	"acc-portal/internal/domain/media"

	"gorm.io/gorm"
)

type UploadRepository struct {
	t table[media.Upload]
}

func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{t: table[media.Upload]{db: db, order: "created_at DESC"}}
}

func (r *UploadRepository) Create(ctx context.Context, u *media.Upload) error {
	return r.t.create(ctx, u)
}

func (r *UploadRepository) GetByKey(ctx context.Context, key string) (media.Upload, error) {
	return r.t.first(ctx, where("key = ?", key))
}

func (r *UploadRepository) List(ctx context.Context) ([]media.Upload, error) {
	return r.t.list(ctx)
}
