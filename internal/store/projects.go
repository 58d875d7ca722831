package store

import (
	"context"

	"acc-portal/internal/domain/content"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	t table[content.Project]
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{t: table[content.Project]{db: db, order: "created_at DESC"}}
}

func (r *ProjectRepository) List(ctx context.Context) ([]content.Project, error) {
	return r.t.list(ctx)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (content.Project, error) {
	return r.t.get(ctx, id)
}

func (r *ProjectRepository) Create(ctx context.Context, v *content.Project) error {
	return r.t.create(ctx, v)
}

func (r *ProjectRepository) Update(ctx context.Context, v *content.Project) error {
	return r.t.update(ctx, v.ID, v)
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	return r.t.count(ctx)
}
