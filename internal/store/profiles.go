package store

import (
	"context"

	"acc-portal/internal/domain/content"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	t table[content.Profile]
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{t: table[content.Profile]{db: db, order: "created_at ASC"}}
}

func (r *ProfileRepository) List(ctx context.Context) ([]content.Profile, error) {
	return r.t.list(ctx)
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (content.Profile, error) {
	return r.t.get(ctx, id)
}

func (r *ProfileRepository) Create(ctx context.Context, v *content.Profile) error {
	return r.t.create(ctx, v)
}

func (r *ProfileRepository) Update(ctx context.Context, v *content.Profile) error {
	return r.t.update(ctx, v.ID, v)
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	return r.t.count(ctx)
}
