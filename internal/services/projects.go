package services

import (
	"context"

	"acc-portal/internal/domain/content"
	"acc-portal/internal/events"
)

type ProjectRepository interface {
	List(ctx context.Context) ([]content.Project, error)
	GetByID(ctx context.Context, id string) (content.Project, error)
	Create(ctx context.Context, v *content.Project) error
	Update(ctx context.Context, v *content.Project) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type ProjectService struct {
	repo   ProjectRepository
	events events.Notifier
}

func NewProjectService(repo ProjectRepository, n events.Notifier) *ProjectService {
	return &ProjectService{repo: repo, events: n}
}

func (s *ProjectService) List(ctx context.Context) ([]content.Project, error) {
	return s.repo.List(ctx)
}

func (s *ProjectService) Get(ctx context.Context, id string) (content.Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProjectService) Create(ctx context.Context, v content.Project) (content.Project, error) {
	v.ID = ""
	v.Normalize()
	if err := v.Validate(); err != nil {
		return content.Project{}, err
	}
	if err := s.repo.Create(ctx, &v); err != nil {
		return content.Project{}, err
	}
	s.events.Notify(ctx, events.Change{Entity: "project", Action: events.Created, ID: v.ID})
	return v, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, p content.ProjectPatch) (content.Project, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return content.Project{}, err
	}
	p.Apply(&v)
	v.Normalize()
	if err := v.Validate(); err != nil {
		return content.Project{}, err
	}
	if err := s.repo.Update(ctx, &v); err != nil {
		return content.Project{}, err
	}
	s.events.Notify(ctx, events.Change{Entity: "project", Action: events.Updated, ID: v.ID})
	return v, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Notify(ctx, events.Change{Entity: "project", Action: events.Deleted, ID: id})
	return nil
}

func (s *ProjectService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
