package store

import (
	"context"

	"acc-portal/internal/domain/users"

	"gorm.io/gorm"
)

type UserRepository struct {
	t table[users.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{t: table[users.User]{db: db, order: "created_at ASC"}}
}

func (r *UserRepository) List(ctx context.Context) ([]users.User, error) {
	return r.t.list(ctx)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.t.get(ctx, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.t.first(ctx, where("email = ?", email))
}

func (r *UserRepository) GetByGoogleSub(ctx context.Context, sub string) (users.User, error) {
	return r.t.first(ctx, where("google_sub = ?", sub))
}

func (r *UserRepository) Create(ctx context.Context, u *users.User) error {
	return r.t.create(ctx, u)
}

func (r *UserRepository) Update(ctx context.Context, u *users.User) error {
	return r.t.update(ctx, u.ID, u)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}
