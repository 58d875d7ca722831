package store

import (
	"context"

	"acc-portal/internal/domain/content"

	"gorm.io/gorm"
)

type EventRepository struct {
	t table[content.Event]
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{t: table[content.Event]{db: db, order: "date ASC, created_at ASC"}}
}

func (r *EventRepository) List(ctx context.Context) ([]content.Event, error) {
	return r.t.list(ctx)
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (content.Event, error) {
	return r.t.get(ctx, id)
}

func (r *EventRepository) Create(ctx context.Context, v *content.Event) error {
	return r.t.create(ctx, v)
}

func (r *EventRepository) Update(ctx context.Context, v *content.Event) error {
	return r.t.update(ctx, v.ID, v)
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	return r.t.count(ctx)
}
