package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// table holds the CRUD plumbing shared by the entity repositories.
type table[T any] struct {
	db    *gorm.DB
	order string
}

type scope = func(*gorm.DB) *gorm.DB

func (t table[T]) list(ctx context.Context, scopes ...scope) ([]T, error) {
	out := []T{}
	q := t.db.WithContext(ctx).Scopes(scopes...)
	if t.order != "" {
		q = q.Order(t.order)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (t table[T]) get(ctx context.Context, id string, scopes ...scope) (T, error) {
	var out T
	// Postgres rejects malformed uuids with a syntax error; treat them as absent.
	if _, err := uuid.Parse(id); err != nil {
		return out, ErrNotFound
	}
	err := t.db.WithContext(ctx).Scopes(scopes...).Where("id = ?", id).First(&out).Error
	return out, translate(err)
}

func (t table[T]) first(ctx context.Context, scopes ...scope) (T, error) {
	var out T
	err := t.db.WithContext(ctx).Scopes(scopes...).First(&out).Error
	return out, translate(err)
}

func (t table[T]) create(ctx context.Context, v *T) error {
	return translate(t.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error)
}

// update writes every column of v to the row with the given id.
func (t table[T]) update(ctx context.Context, id string, v *T) error {
	res := t.db.WithContext(ctx).
		Model(v).
		Where("id = ?", id).
		Select("*").
		Omit(clause.Associations, "id", "created_at").
		Updates(v)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (t table[T]) delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (t table[T]) count(ctx context.Context, scopes ...scope) (int64, error) {
	var n int64
	err := t.db.WithContext(ctx).Model(new(T)).Scopes(scopes...).Count(&n).Error
	return n, translate(err)
}

func where(query string, args ...any) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

func preload(assoc string) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(assoc)
	}
}
