package services

import (
	"context"

	"acc-portal/internal/domain/content"
	"acc-portal/internal/events"
)

type ProfileRepository interface {
	List(ctx context.Context) ([]content.Profile, error)
	GetByID(ctx context.Context, id string) (content.Profile, error)
	Create(ctx context.Context, v *content.Profile) error
	Update(ctx context.Context, v *content.Profile) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type ProfileService struct {
	repo   ProfileRepository
	events events.Notifier
}

func NewProfileService(repo ProfileRepository, n events.Notifier) *ProfileService {
	return &ProfileService{repo: repo, events: n}
}

func (s *ProfileService) List(ctx context.Context) ([]content.Profile, error) {
	return s.repo.List(ctx)
}

func (s *ProfileService) Get(ctx context.Context, id string) (content.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProfileService) Create(ctx context.Context, v content.Profile) (content.Profile, error) {
	v.ID = ""
	v.Normalize()
	if err := v.Validate(); err != nil {
		return content.Profile{}, err
	}
	if err := s.repo.Create(ctx, &v); err != nil {
		return content.Profile{}, err
	}
	s.events.Notify(ctx, events.Change{Entity: "profile", Action: events.Created, ID: v.ID})
	return v, nil
}

func (s *ProfileService) Update(ctx context.Context, id string, p content.ProfilePatch) (content.Profile, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return content.Profile{}, err
	}
	p.Apply(&v)
	v.Normalize()
	if err := v.Validate(); err != nil {
		return content.Profile{}, err
	}
	if err := s.repo.Update(ctx, &v); err != nil {
		return content.Profile{}, err
	}
	s.events.Notify(ctx, events.Change{Entity: "profile", Action: events.Updated, ID: v.ID})
	return v, nil
}

func (s *ProfileService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Notify(ctx, events.Change{Entity: "profile", Action: events.Deleted, ID: id})
	return nil
}

func (s *ProfileService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
