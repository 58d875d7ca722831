package store

import (
	"context"

	"acc-portal/internal/domain/content"

	"gorm.io/gorm"
)

type ArticleRepository struct {
	t table[content.Article]
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{t: table[content.Article]{db: db, order: "created_at DESC"}}
}

func (r *ArticleRepository) List(ctx context.Context) ([]content.Article, error) {
	return r.t.list(ctx, preload("Category"))
}

func (r *ArticleRepository) ListPublished(ctx context.Context) ([]content.Article, error) {
	return r.t.list(ctx, preload("Category"), where("is_published = ?", true))
}

func (r *ArticleRepository) GetByID(ctx context.Context, id string) (content.Article, error) {
	return r.t.get(ctx, id, preload("Category"))
}

func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (content.Article, error) {
	return r.t.first(ctx, preload("Category"), where("slug = ?", slug))
}

func (r *ArticleRepository) Create(ctx context.Context, a *content.Article) error {
	return r.t.create(ctx, a)
}

func (r *ArticleRepository) Update(ctx context.Context, a *content.Article) error {
	return r.t.update(ctx, a.ID, a)
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *ArticleRepository) Count(ctx context.Context) (int64, error) {
	return r.t.count(ctx)
}
