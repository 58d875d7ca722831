package services

import (
	"context"

	"acc-portal/internal/domain/content"
	"acc-portal/internal/domain/sections"
	"acc-portal/internal/events"

	"gorm.io/datatypes"
)

type ResourceRepository interface {
	List(ctx context.Context, q content.ResourceQuery) ([]content.Resource, int64, error)
	ListByType(ctx context.Context, t content.ResourceType) ([]content.Resource, error)
	GetByID(ctx context.Context, id string) (content.Resource, error)
	Create(ctx context.Context, r *content.Resource) error
	Update(ctx context.Context, r *content.Resource) error
	Delete(ctx context.Context, id string) error
	CountByType(ctx context.Context, t content.ResourceType) (int64, error)
}

type ResourceService struct {
	repo   ResourceRepository
	events events.Notifier
}

func NewResourceService(repo ResourceRepository, n events.Notifier) *ResourceService {
	return &ResourceService{repo: repo, events: n}
}

// List returns a page of resources and its paging metadata.
func (s *ResourceService) List(ctx context.Context, q content.ResourceQuery) ([]content.Resource, content.PageMeta, error) {
	q.Normalize()
	if q.Type != "" && !q.Type.Valid() {
		return []content.Resource{}, content.NewPageMeta(0, q), nil
	}
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, content.PageMeta{}, err
	}
	return items, content.NewPageMeta(total, q), nil
}

func (s *ResourceService) Get(ctx context.Context, id string) (content.Resource, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ResourceService) Create(ctx context.Context, r content.Resource) (content.Resource, error) {
	r.ID = ""
	r.Normalize()
	if err := r.Validate(); err != nil {
		return content.Resource{}, err
	}
	if err := s.checkSection(ctx, &r, true); err != nil {
		return content.Resource{}, err
	}
	if err := s.repo.Create(ctx, &r); err != nil {
		return content.Resource{}, err
	}
	s.events.Notify(ctx, events.Change{Entity: entityFor(r.Type), Action: events.Created, ID: r.ID})
	return r, nil
}

func (s *ResourceService) Update(ctx context.Context, id string, p content.ResourcePatch) (content.Resource, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return content.Resource{}, err
	}
	p.Apply(&r)
	r.Normalize()
	if err := r.Validate(); err != nil {
		return content.Resource{}, err
	}
	if err := s.checkSection(ctx, &r, false); err != nil {
		return content.Resource{}, err
	}
	if err := s.repo.Update(ctx, &r); err != nil {
		return content.Resource{}, err
	}
	s.events.Notify(ctx, events.Change{Entity: entityFor(r.Type), Action: events.Updated, ID: r.ID})
	return r, nil
}

func (s *ResourceService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Notify(ctx, events.Change{Entity: "resource", Action: events.Deleted, ID: id})
	return nil
}

// checkSection validates SECTION rows and rewrites their metadata in the
// canonical section form. New sections without an order go last on their
// page.
func (s *ResourceService) checkSection(ctx context.Context, r *content.Resource, placeLast bool) error {
	if r.Type != content.ResourceSection {
		return nil
	}
	sec, err := sectionFromResource(*r)
	if err != nil {
		return err
	}
	if placeLast && sec.Order <= 0 {
		rows, err := s.repo.ListByType(ctx, content.ResourceSection)
		if err != nil {
			return err
		}
		existing := make([]sections.Section, len(rows))
		for i, row := range rows {
			existing[i] = sections.FromResource(row)
		}
		sec.Order = sections.NextOrder(existing, sec.Page)
	}
	meta, err := sec.Metadata()
	if err != nil {
		return err
	}
	r.Metadata = datatypes.JSON(meta)
	return nil
}

// entityFor reports section resources as sections so page caches drop.
func entityFor(t content.ResourceType) string {
	if t == content.ResourceSection {
		return "section"
	}
	return "resource"
}
