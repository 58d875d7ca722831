package services

import (
	"context"
	"encoding/json"
	"fmt"

	"acc-portal/internal/domain/content"
	"acc-portal/internal/domain/sections"
	"acc-portal/internal/domain/site"
	"acc-portal/internal/domain/validation"
	"acc-portal/internal/events"
	"acc-portal/internal/store"

	"gorm.io/datatypes"
)

// SectionService stores page-builder sections as SECTION resources.
type SectionService struct {
	repo   ResourceRepository
	events events.Notifier
}

func NewSectionService(repo ResourceRepository, n events.Notifier) *SectionService {
	return &SectionService{repo: repo, events: n}
}

type sectionRow struct {
	section  sections.Section
	resource content.Resource
}

func (s *SectionService) load(ctx context.Context) ([]sectionRow, error) {
	rows, err := s.repo.ListByType(ctx, content.ResourceSection)
	if err != nil {
		return nil, err
	}
	out := make([]sectionRow, len(rows))
	for i, r := range rows {
		out[i] = sectionRow{section: sections.FromResource(r), resource: r}
	}
	return out, nil
}

func onlySections(rows []sectionRow) []sections.Section {
	out := make([]sections.Section, len(rows))
	for i, r := range rows {
		out[i] = r.section
	}
	return out
}

// List returns every section grouped by page in navigation order, each
// page's sections in display order.
func (s *SectionService) List(ctx context.Context) ([]sections.Section, error) {
	rows, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	all := onlySections(rows)

	out := make([]sections.Section, 0, len(all))
	for _, p := range site.Pages {
		out = append(out, sections.ForPage(all, p)...)
	}
	// Sections stored with a page this build does not know go last.
	for _, sec := range all {
		if !sec.Page.Valid() {
			out = append(out, sec)
		}
	}
	return out, nil
}

// ListPage returns the sections of one page in display order.
func (s *SectionService) ListPage(ctx context.Context, page site.Page) ([]sections.Section, error) {
	rows, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return sections.ForPage(onlySections(rows), page), nil
}

func (s *SectionService) getRow(ctx context.Context, id string) (content.Resource, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return content.Resource{}, err
	}
	if r.Type != content.ResourceSection {
		return content.Resource{}, store.ErrNotFound
	}
	return r, nil
}

func (s *SectionService) Get(ctx context.Context, id string) (sections.Section, error) {
	r, err := s.getRow(ctx, id)
	if err != nil {
		return sections.Section{}, err
	}
	return sections.FromResource(r), nil
}

// Create validates in and stores it. Without a positive order the section
// goes last on its page.
func (s *SectionService) Create(ctx context.Context, in sections.Input) (sections.Section, error) {
	sec, err := in.Build()
	if err != nil {
		return sections.Section{}, err
	}
	if sec.Order <= 0 {
		rows, err := s.load(ctx)
		if err != nil {
			return sections.Section{}, err
		}
		sec.Order = sections.NextOrder(onlySections(rows), sec.Page)
	}

	meta, err := sec.Metadata()
	if err != nil {
		return sections.Section{}, err
	}
	r := content.Resource{
		Title:       sec.Title,
		Slug:        site.SectionSlug(),
		Type:        content.ResourceSection,
		Metadata:    datatypes.JSON(meta),
		IsPublished: true,
	}
	if err := s.repo.Create(ctx, &r); err != nil {
		return sections.Section{}, fmt.Errorf("create section: %w", err)
	}
	sec.ID = r.ID
	s.events.Notify(ctx, events.Change{Entity: "section", Action: events.Created, ID: sec.ID})
	return sec, nil
}

func (s *SectionService) Update(ctx context.Context, id string, p sections.Patch) (sections.Section, error) {
	r, err := s.getRow(ctx, id)
	if err != nil {
		return sections.Section{}, err
	}
	sec := sections.FromResource(r)
	if err := p.Apply(&sec); err != nil {
		return sections.Section{}, err
	}
	if err := s.save(ctx, r, sec); err != nil {
		return sections.Section{}, err
	}
	s.events.Notify(ctx, events.Change{Entity: "section", Action: events.Updated, ID: sec.ID})
	return sec, nil
}

func (s *SectionService) Delete(ctx context.Context, id string) error {
	if _, err := s.getRow(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Notify(ctx, events.Change{Entity: "section", Action: events.Deleted, ID: id})
	return nil
}

// Reorder rewrites the orders of page's sections to 1..n following ids.
// Rows are written one by one; a failure part way leaves earlier writes in
// place.
func (s *SectionService) Reorder(ctx context.Context, page site.Page, ids []string) ([]sections.Section, error) {
	if !page.Valid() {
		return nil, validationPage(page)
	}
	rows, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]sectionRow, len(rows))
	for _, r := range rows {
		byID[r.section.ID] = r
	}

	current := sections.ForPage(onlySections(rows), page)
	next, err := sections.Reorder(current, ids)
	if err != nil {
		return nil, err
	}
	for _, sec := range next {
		row := byID[sec.ID]
		if row.section.Order == sec.Order {
			continue
		}
		if err := s.save(ctx, row.resource, sec); err != nil {
			return nil, err
		}
	}
	s.events.Notify(ctx, events.Change{Entity: "section", Action: events.Reordered, ID: string(page)})
	return next, nil
}

// Move shifts one section up (dir < 0) or down (dir > 0) on its page.
func (s *SectionService) Move(ctx context.Context, id string, dir int) ([]sections.Section, error) {
	sec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	page, err := s.ListPage(ctx, sec.Page)
	if err != nil {
		return nil, err
	}
	step := 1
	if dir < 0 {
		step = -1
	}
	ids, err := sections.Move(page, id, step)
	if err != nil {
		return nil, err
	}
	return s.Reorder(ctx, sec.Page, ids)
}

func (s *SectionService) Count(ctx context.Context) (int64, error) {
	return s.repo.CountByType(ctx, content.ResourceSection)
}

func (s *SectionService) save(ctx context.Context, r content.Resource, sec sections.Section) error {
	meta, err := sec.Metadata()
	if err != nil {
		return err
	}
	r.Title = sec.Title
	r.Metadata = datatypes.JSON(meta)
	if err := s.repo.Update(ctx, &r); err != nil {
		return fmt.Errorf("update section %s: %w", sec.ID, err)
	}
	return nil
}

// sectionFromResource validates the metadata of a SECTION row written
// through the generic resource API with the rules of the section API. The
// row's title wins over the metadata's.
func sectionFromResource(r content.Resource) (sections.Section, error) {
	var in sections.Input
	if len(r.Metadata) > 0 {
		if err := json.Unmarshal(r.Metadata, &in); err != nil {
			return sections.Section{}, validation.New("metadata", "must be a section object")
		}
	}
	in.Title = r.Title
	return in.Build()
}
