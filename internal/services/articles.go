package services

import (
	"context"

	"acc-portal/internal/domain/content"
	"acc-portal/internal/events"
)

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	List(ctx context.Context) ([]content.Article, error)
	ListPublished(ctx context.Context) ([]content.Article, error)
	GetByID(ctx context.Context, id string) (content.Article, error)
	GetBySlug(ctx context.Context, slug string) (content.Article, error)
	Create(ctx context.Context, a *content.Article) error
	Update(ctx context.Context, a *content.Article) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// ArticleService encapsulates article use-cases.
type ArticleService struct {
	repo   ArticleRepository
	events events.Notifier
}

func NewArticleService(repo ArticleRepository, n events.Notifier) *ArticleService {
	return &ArticleService{repo: repo, events: n}
}

// List returns every article, newest first, with its category.
func (s *ArticleService) List(ctx context.Context) ([]content.Article, error) {
	return s.repo.List(ctx)
}

func (s *ArticleService) ListPublished(ctx context.Context) ([]content.Article, error) {
	return s.repo.ListPublished(ctx)
}

func (s *ArticleService) Get(ctx context.Context, id string) (content.Article, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ArticleService) GetBySlug(ctx context.Context, slug string) (content.Article, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *ArticleService) Create(ctx context.Context, a content.Article) (content.Article, error) {
	a.ID = ""
	a.Category = nil
	a.Normalize()
	if err := a.Validate(); err != nil {
		return content.Article{}, err
	}
	if err := s.repo.Create(ctx, &a); err != nil {
		return content.Article{}, err
	}
	s.events.Notify(ctx, events.Change{Entity: "article", Action: events.Created, ID: a.ID})
	return s.reload(ctx, a)
}

func (s *ArticleService) Update(ctx context.Context, id string, p content.ArticlePatch) (content.Article, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return content.Article{}, err
	}
	p.Apply(&a)
	a.Category = nil
	a.Normalize()
	if err := a.Validate(); err != nil {
		return content.Article{}, err
	}
	if err := s.repo.Update(ctx, &a); err != nil {
		return content.Article{}, err
	}
	s.events.Notify(ctx, events.Change{Entity: "article", Action: events.Updated, ID: a.ID})
	return s.reload(ctx, a)
}

func (s *ArticleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Notify(ctx, events.Change{Entity: "article", Action: events.Deleted, ID: id})
	return nil
}

func (s *ArticleService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// reload fetches the stored row so relations are populated; it falls back
// to the written value if the read fails.
func (s *ArticleService) reload(ctx context.Context, a content.Article) (content.Article, error) {
	fresh, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return a, nil
	}
	return fresh, nil
}
