package store

import (
	"context"

	"acc-portal/internal/domain/content"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	t table[content.Category]
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{t: table[content.Category]{db: db, order: "name ASC"}}
}

func (r *CategoryRepository) List(ctx context.Context) ([]content.Category, error) {
	return r.t.list(ctx)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (content.Category, error) {
	return r.t.get(ctx, id)
}

// GetBySlug returns the category with its articles, newest first.
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (content.Category, error) {
	return r.t.first(ctx, where("slug = ?", slug), func(db *gorm.DB) *gorm.DB {
		return db.Preload("Articles", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		})
	})
}

func (r *CategoryRepository) Create(ctx context.Context, c *content.Category) error {
	return r.t.create(ctx, c)
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	return r.t.count(ctx)
}
