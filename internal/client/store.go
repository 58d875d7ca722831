package client

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"acc-portal/internal/domain/content"
	"acc-portal/internal/domain/sections"
	"acc-portal/internal/domain/site"

	"golang.org/x/sync/errgroup"
)

// State is where a collection is in its request cycle.
type State int

const (
	Idle State = iota
	Loading
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

// Collection is one API collection mirrored in memory. Items only change
// after the server has accepted a request.
type Collection[T any] struct {
	client *Client
	path   string
	id     func(T) string

	mu    sync.RWMutex
	items []T
	state State
	err   error
}

func newCollection[T any](c *Client, path string, id func(T) string) *Collection[T] {
	return &Collection[T]{client: c, path: path, id: id}
}

// Items returns a copy of the current items.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// State returns the current state and the error of the last failed
// request, if the collection is in Error.
func (c *Collection[T]) State() (State, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state, c.err
}

func (c *Collection[T]) begin() {
	c.mu.Lock()
	c.state = Loading
	c.mu.Unlock()
}

// finish records the outcome of a request. On success apply mutates the
// items under the lock.
func (c *Collection[T]) finish(err error, apply func([]T) []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state, c.err = Error, err
		return
	}
	if apply != nil {
		c.items = apply(c.items)
	}
	c.state, c.err = Success, nil
}

// Fetch replaces the items with the server's list.
func (c *Collection[T]) Fetch(ctx context.Context) error {
	c.begin()
	var list []T
	err := c.client.get(ctx, c.path, &list)
	c.finish(err, func([]T) []T { return list })
	return err
}

// Create posts in (a T or an input type the endpoint accepts) and appends
// the stored item.
func (c *Collection[T]) Create(ctx context.Context, in any) (T, error) {
	c.begin()
	var v T
	err := c.client.do(ctx, http.MethodPost, c.path, in, &v)
	c.finish(err, func(items []T) []T { return append(items, v) })
	return v, err
}

// Update patches the item and swaps in the server's version.
func (c *Collection[T]) Update(ctx context.Context, id string, patch any) (T, error) {
	c.begin()
	var v T
	err := c.client.do(ctx, http.MethodPatch, c.path+"/"+url.PathEscape(id), patch, &v)
	c.finish(err, func(items []T) []T {
		for i := range items {
			if c.id(items[i]) == id {
				items[i] = v
				return items
			}
		}
		return append(items, v)
	})
	return v, err
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.begin()
	err := c.client.do(ctx, http.MethodDelete, c.path+"/"+url.PathEscape(id), nil, nil)
	c.finish(err, func(items []T) []T {
		out := items[:0]
		for _, it := range items {
			if c.id(it) != id {
				out = append(out, it)
			}
		}
		return out
	})
	return err
}

// Store holds every content collection the site is built from.
type Store struct {
	client *Client

	Articles   *Collection[content.Article]
	Categories *Collection[content.Category]
	Events     *Collection[content.Event]
	Profiles   *Collection[content.Profile]
	Projects   *Collection[content.Project]
	Sections   *Collection[sections.Section]
}

func NewStore(c *Client) *Store {
	return &Store{
		client:     c,
		Articles:   newCollection(c, "/articles", func(a content.Article) string { return a.ID }),
		Categories: newCollection(c, "/categories", func(cat content.Category) string { return cat.ID }),
		Events:     newCollection(c, "/events", func(e content.Event) string { return e.ID }),
		Profiles:   newCollection(c, "/profiles", func(p content.Profile) string { return p.ID }),
		Projects:   newCollection(c, "/projects", func(p content.Project) string { return p.ID }),
		Sections:   newCollection(c, "/sections", func(s sections.Section) string { return s.ID }),
	}
}

func (s *Store) Client() *Client {
	return s.client
}

// Load fetches every collection concurrently. A failing collection does
// not stop the others; the first error is returned and each collection
// keeps its own state.
func (s *Store) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.Articles.Fetch(ctx) })
	g.Go(func() error { return s.Categories.Fetch(ctx) })
	g.Go(func() error { return s.Events.Fetch(ctx) })
	g.Go(func() error { return s.Profiles.Fetch(ctx) })
	g.Go(func() error { return s.Projects.Fetch(ctx) })
	g.Go(func() error { return s.Sections.Fetch(ctx) })
	return g.Wait()
}

// SectionsFor returns the loaded sections of page in display order.
func (s *Store) SectionsFor(page site.Page) []sections.Section {
	return sections.ForPage(s.Sections.Items(), page)
}

// ReorderSections sends the new order for page and replaces that page's
// sections with the server's result.
func (s *Store) ReorderSections(ctx context.Context, page site.Page, ids []string) ([]sections.Section, error) {
	c := s.Sections
	c.begin()
	var list []sections.Section
	in := struct {
		Page site.Page `json:"page"`
		IDs  []string  `json:"ids"`
	}{page, ids}
	err := s.client.do(ctx, http.MethodPut, c.path+"/reorder", in, &list)
	c.finish(err, func(items []sections.Section) []sections.Section {
		out := make([]sections.Section, 0, len(items))
		for _, it := range items {
			if it.Page != page {
				out = append(out, it)
			}
		}
		return append(out, list...)
	})
	return list, err
}
