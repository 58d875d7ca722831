package store

import (
	"context"

	"acc-portal/internal/domain/contact"

	"gorm.io/gorm"
)

type ContactRepository struct {
	t table[contact.Message]
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{t: table[contact.Message]{db: db, order: "created_at DESC"}}
}

func (r *ContactRepository) Create(ctx context.Context, m *contact.Message) error {
	return r.t.create(ctx, m)
}

func (r *ContactRepository) List(ctx context.Context) ([]contact.Message, error) {
	return r.t.list(ctx)
}

func (r *ContactRepository) MarkForwarded(ctx context.Context, id string) error {
	res := r.t.db.WithContext(ctx).
		Model(&contact.Message{}).
		Where("id = ?", id).
		Update("forwarded", true)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
