package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"acc-portal/internal/domain/content"
	"acc-portal/internal/domain/sections"
	"acc-portal/internal/domain/site"
)

type fakeAPI struct {
	mu       sync.Mutex
	articles []content.Article
	sections []map[string]any
	token    string
	failing  map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		articles: []content.Article{{ID: "a1", Title: "First"}, {ID: "a2", Title: "Second"}},
		sections: []map[string]any{
			{"id": "s2", "title": "Stats", "type": "stats", "page": "home", "order": 2, "sourceType": "latest"},
			{"id": "s1", "title": "Hero", "type": "hero", "page": "home", "order": 1, "sourceType": "latest"},
			{"id": "s3", "title": "Team", "type": "profiles", "page": "about", "order": 1, "sourceType": "profiles"},
		},
		token:   "good-token",
		failing: map[string]int{},
	}
}

func (f *fakeAPI) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	guard := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+f.token {
				write(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
				return
			}
			next(w, r)
		}
	}
	list := func(name string, v func() any) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if code := f.failing[name]; code != 0 {
				write(w, code, map[string]string{"error": name + " unavailable"})
				return
			}
			write(w, http.StatusOK, v())
		}
	}

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["password"] != "admin123" {
			write(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
			return
		}
		write(w, http.StatusOK, map[string]any{
			"access_token": f.token,
			"user":         map[string]any{"id": "u1", "email": in["email"], "role": "admin"},
		})
	})
	mux.HandleFunc("GET /api/articles", list("articles", func() any { return f.articles }))
	mux.HandleFunc("GET /api/categories", list("categories", func() any { return []content.Category{} }))
	mux.HandleFunc("GET /api/events", list("events", func() any { return []content.Event{} }))
	mux.HandleFunc("GET /api/profiles", list("profiles", func() any { return []content.Profile{} }))
	mux.HandleFunc("GET /api/projects", list("projects", func() any { return []content.Project{} }))
	mux.HandleFunc("GET /api/sections", list("sections", func() any { return f.sections }))
	mux.HandleFunc("POST /api/articles", guard(func(w http.ResponseWriter, r *http.Request) {
		var a content.Article
		_ = json.NewDecoder(r.Body).Decode(&a)
		a.ID = "a3"
		write(w, http.StatusCreated, a)
	}))
	mux.HandleFunc("PATCH /api/articles/{id}", guard(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "missing" {
			write(w, http.StatusNotFound, map[string]string{"error": "Not found"})
			return
		}
		var p map[string]string
		_ = json.NewDecoder(r.Body).Decode(&p)
		write(w, http.StatusOK, content.Article{ID: r.PathValue("id"), Title: p["title"]})
	}))
	mux.HandleFunc("DELETE /api/articles/{id}", guard(func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, map[string]bool{"deleted": true})
	}))
	mux.HandleFunc("PUT /api/sections/reorder", guard(func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, []map[string]any{
			{"id": "s2", "title": "Stats", "type": "stats", "page": "home", "order": 1, "sourceType": "latest"},
			{"id": "s1", "title": "Hero", "type": "hero", "page": "home", "order": 2, "sourceType": "latest"},
		})
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadFillsEveryCollection(t *testing.T) {
	api := newFakeAPI()
	srv := api.server(t)
	s := NewStore(New(srv.URL+"/api", nil))

	if st, _ := s.Articles.State(); st != Idle {
		t.Fatalf("expected idle before load, got %s", st)
	}
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := len(s.Articles.Items()); got != 2 {
		t.Fatalf("expected 2 articles, got %d", got)
	}
	if st, err := s.Sections.State(); st != Success || err != nil {
		t.Fatalf("expected sections success, got %s %v", st, err)
	}
}

func TestLoadKeepsPerCollectionErrors(t *testing.T) {
	api := newFakeAPI()
	api.failing["events"] = http.StatusInternalServerError
	srv := api.server(t)
	s := NewStore(New(srv.URL+"/api", nil))

	err := s.Load(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500 api error, got %v", err)
	}
	if st, err := s.Events.State(); st != Error || err == nil {
		t.Fatalf("expected events in error, got %s %v", st, err)
	}
	if st, _ := s.Articles.State(); st != Success {
		t.Fatalf("expected articles to load anyway, got %s", st)
	}
}

func TestSectionsForOrdersByPage(t *testing.T) {
	srv := newFakeAPI().server(t)
	s := NewStore(New(srv.URL+"/api", nil))
	if err := s.Sections.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	home := s.SectionsFor(site.PageHome)
	if len(home) != 2 || home[0].ID != "s1" || home[1].ID != "s2" {
		t.Fatalf("unexpected home sections: %+v", home)
	}
	if about := s.SectionsFor(site.PageAbout); len(about) != 1 || about[0].Type != sections.TypeProfiles {
		t.Fatalf("unexpected about sections: %+v", about)
	}
}

func TestMutationsNeedToken(t *testing.T) {
	srv := newFakeAPI().server(t)
	c := New(srv.URL+"/api", nil)
	s := NewStore(c)
	ctx := context.Background()
	if err := s.Articles.Fetch(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	c.SetToken("stale")
	_, err := s.Articles.Create(ctx, content.Article{Title: "Nope"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if c.Token() != "" {
		t.Fatalf("expected token cleared after 401")
	}
	if got := len(s.Articles.Items()); got != 2 {
		t.Fatalf("expected items untouched after failure, got %d", got)
	}
}

func TestCRUDUpdatesStateAfterSuccess(t *testing.T) {
	srv := newFakeAPI().server(t)
	c := New(srv.URL+"/api", nil)
	s := NewStore(c)
	ctx := context.Background()

	u, err := c.Login(ctx, "admin@admin.com", "admin123")
	if err != nil || u.Email != "admin@admin.com" {
		t.Fatalf("login: %v %+v", err, u)
	}
	if err := s.Articles.Fetch(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	created, err := s.Articles.Create(ctx, content.Article{Title: "Third"})
	if err != nil || created.ID != "a3" {
		t.Fatalf("create: %v %+v", err, created)
	}
	if _, err := s.Articles.Update(ctx, "a1", map[string]string{"title": "Renamed"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.Articles.Delete(ctx, "a2"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	items := s.Articles.Items()
	if len(items) != 2 || items[0].Title != "Renamed" || items[1].ID != "a3" {
		t.Fatalf("unexpected items: %+v", items)
	}

	_, err = s.Articles.Update(ctx, "missing", map[string]string{"title": "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if st, _ := s.Articles.State(); st != Error {
		t.Fatalf("expected error state, got %s", st)
	}
	if len(s.Articles.Items()) != 2 {
		t.Fatalf("failed update must not change items")
	}
}

func TestReorderSectionsReplacesPage(t *testing.T) {
	srv := newFakeAPI().server(t)
	c := New(srv.URL+"/api", nil)
	c.SetToken("good-token")
	s := NewStore(c)
	ctx := context.Background()
	if err := s.Sections.Fetch(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if _, err := s.ReorderSections(ctx, site.PageHome, []string{"s2", "s1"}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	home := s.SectionsFor(site.PageHome)
	if len(home) != 2 || home[0].ID != "s2" {
		t.Fatalf("unexpected order: %+v", home)
	}
	if len(s.SectionsFor(site.PageAbout)) != 1 {
		t.Fatalf("other pages must be kept")
	}
}
