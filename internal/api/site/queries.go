package siteapi

import (
	"context"
	"fmt"

	"acc-portal/internal/domain/content"
	"acc-portal/internal/domain/sections"
	"acc-portal/internal/domain/site"
	"acc-portal/internal/render"

	"golang.org/x/sync/errgroup"
)

type ArticleSource interface {
	ListPublished(ctx context.Context) ([]content.Article, error)
	GetBySlug(ctx context.Context, slug string) (content.Article, error)
}

type ProjectSource interface {
	List(ctx context.Context) ([]content.Project, error)
}

type ProfileSource interface {
	List(ctx context.Context) ([]content.Profile, error)
}

type SectionSource interface {
	ListPage(ctx context.Context, page site.Page) ([]sections.Section, error)
}

// Sources groups everything a public page reads.
type Sources struct {
	Articles ArticleSource
	Projects ProjectSource
	Profiles ProfileSource
	Sections SectionSource
}

// views loads the page's sections and the collections they draw on, then
// resolves them.
func (s Sources) views(ctx context.Context, page site.Page) ([]render.View, error) {
	var (
		list []sections.Section
		coll render.Collections
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		list, err = s.Sections.ListPage(ctx, page)
		return wrap("sections", err)
	})
	g.Go(func() (err error) {
		coll.Articles, err = s.Articles.ListPublished(ctx)
		return wrap("articles", err)
	})
	g.Go(func() (err error) {
		coll.Projects, err = s.Projects.List(ctx)
		return wrap("projects", err)
	})
	g.Go(func() (err error) {
		coll.Profiles, err = s.Profiles.List(ctx)
		return wrap("profiles", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return render.ResolveAll(list, coll), nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("load %s: %w", what, err)
	}
	return nil
}
