package services

import (
	"context"

	"acc-portal/internal/domain/content"
	"acc-portal/internal/events"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]content.Category, error)
	GetByID(ctx context.Context, id string) (content.Category, error)
	GetBySlug(ctx context.Context, slug string) (content.Category, error)
	Create(ctx context.Context, c *content.Category) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type CategoryService struct {
	repo   CategoryRepository
	events events.Notifier
}

func NewCategoryService(repo CategoryRepository, n events.Notifier) *CategoryService {
	return &CategoryService{repo: repo, events: n}
}

func (s *CategoryService) List(ctx context.Context) ([]content.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (content.Category, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *CategoryService) Create(ctx context.Context, c content.Category) (content.Category, error) {
	c.ID = ""
	c.Articles = nil
	c.Normalize()
	if err := c.Validate(); err != nil {
		return content.Category{}, err
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return content.Category{}, err
	}
	s.events.Notify(ctx, events.Change{Entity: "category", Action: events.Created, ID: c.ID})
	return c, nil
}

// Delete removes the category; its articles keep existing without one.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Notify(ctx, events.Change{Entity: "category", Action: events.Deleted, ID: id})
	return nil
}

func (s *CategoryService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
