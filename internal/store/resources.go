package store

import (
	"context"
	"strings"

	"acc-portal/internal/domain/content"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	t table[content.Resource]
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{t: table[content.Resource]{db: db}}
}

// List returns one page of resources, newest first, plus the total number
// of matching rows.
func (r *ResourceRepository) List(ctx context.Context, q content.ResourceQuery) ([]content.Resource, int64, error) {
	q.Normalize()

	filter := func(db *gorm.DB) *gorm.DB {
		if q.Type != "" {
			db = db.Where("type = ?", q.Type)
		}
		if q.Search != "" {
			like := "%" + escapeLike(q.Search) + "%"
			db = db.Where("(title ILIKE ? OR content ILIKE ?)", like, like)
		}
		return db
	}

	total, err := r.t.count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := []content.Resource{}
	err = r.t.db.WithContext(ctx).
		Scopes(filter).
		Order("created_at DESC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&out).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return out, total, nil
}

// ListByType returns every resource of type t, oldest first.
func (r *ResourceRepository) ListByType(ctx context.Context, t content.ResourceType) ([]content.Resource, error) {
	out := []content.Resource{}
	err := r.t.db.WithContext(ctx).
		Where("type = ?", t).
		Order("created_at ASC").
		Order("id ASC").
		Find(&out).Error
	return out, translate(err)
}

func (r *ResourceRepository) GetByID(ctx context.Context, id string) (content.Resource, error) {
	return r.t.get(ctx, id)
}

func (r *ResourceRepository) Create(ctx context.Context, res *content.Resource) error {
	return r.t.create(ctx, res)
}

func (r *ResourceRepository) Update(ctx context.Context, res *content.Resource) error {
	return r.t.update(ctx, res.ID, res)
}

func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *ResourceRepository) CountByType(ctx context.Context, t content.ResourceType) (int64, error) {
	return r.t.count(ctx, where("type = ?", t))
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
