package services

import (
	"context"

	"acc-portal/internal/domain/content"
	"acc-portal/internal/events"
)

type EventRepository interface {
	List(ctx context.Context) ([]content.Event, error)
	GetByID(ctx context.Context, id string) (content.Event, error)
	Create(ctx context.Context, v *content.Event) error
	Update(ctx context.Context, v *content.Event) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type EventService struct {
	repo   EventRepository
	events events.Notifier
}

func NewEventService(repo EventRepository, n events.Notifier) *EventService {
	return &EventService{repo: repo, events: n}
}

func (s *EventService) List(ctx context.Context) ([]content.Event, error) {
	return s.repo.List(ctx)
}

func (s *EventService) Get(ctx context.Context, id string) (content.Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EventService) Create(ctx context.Context, v content.Event) (content.Event, error) {
	v.ID = ""
	v.Normalize()
	if err := v.Validate(); err != nil {
		return content.Event{}, err
	}
	if err := s.repo.Create(ctx, &v); err != nil {
		return content.Event{}, err
	}
	s.events.Notify(ctx, events.Change{Entity: "event", Action: events.Created, ID: v.ID})
	return v, nil
}

func (s *EventService) Update(ctx context.Context, id string, p content.EventPatch) (content.Event, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return content.Event{}, err
	}
	p.Apply(&v)
	v.Normalize()
	if err := v.Validate(); err != nil {
		return content.Event{}, err
	}
	if err := s.repo.Update(ctx, &v); err != nil {
		return content.Event{}, err
	}
	s.events.Notify(ctx, events.Change{Entity: "event", Action: events.Updated, ID: v.ID})
	return v, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Notify(ctx, events.Change{Entity: "event", Action: events.Deleted, ID: id})
	return nil
}

func (s *EventService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
