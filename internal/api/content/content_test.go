package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domain "acc-portal/internal/domain/content"
	"acc-portal/internal/domain/validation"
	"acc-portal/internal/store"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memArticles struct {
	rows []domain.Article
}

func (m *memArticles) List(context.Context) ([]domain.Article, error) { return m.rows, nil }

func (m *memArticles) Get(_ context.Context, id string) (domain.Article, error) {
	for _, a := range m.rows {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Article{}, store.ErrNotFound
}

func (m *memArticles) GetBySlug(_ context.Context, slug string) (domain.Article, error) {
	for _, a := range m.rows {
		if a.Slug == slug {
			return a, nil
		}
	}
	return domain.Article{}, store.ErrNotFound
}

func (m *memArticles) Create(_ context.Context, a domain.Article) (domain.Article, error) {
	if strings.TrimSpace(a.Title) == "" {
		return domain.Article{}, validation.New("title", "is required")
	}
	a.ID = "a-" + a.Slug
	m.rows = append(m.rows, a)
	return a, nil
}

func (m *memArticles) Update(ctx context.Context, id string, p domain.ArticlePatch) (domain.Article, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			p.Apply(&m.rows[i])
			return m.rows[i], nil
		}
	}
	return domain.Article{}, store.ErrNotFound
}

func (m *memArticles) Delete(_ context.Context, id string) error {
	for i, a := range m.rows {
		if a.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func articleRouter(svc ArticleService) *gin.Engine {
	h := NewArticleHandler(svc)
	r := gin.New()
	r.GET("/articles", h.List)
	r.GET("/articles/slug/:slug", h.GetBySlug)
	r.GET("/articles/:id", h.Get)
	r.POST("/articles", h.Create)
	r.PATCH("/articles/:id", h.Update)
	r.DELETE("/articles/:id", h.Delete)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestArticleLifecycle(t *testing.T) {
	r := articleRouter(&memArticles{})

	w := do(r, http.MethodGet, "/articles", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("empty list: %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, "/articles", `{"title":"Zero Trust","slug":"zero-trust","content":"<p>x</p>"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var created domain.Article
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = do(r, http.MethodGet, "/articles/slug/zero-trust", "")
	if w.Code != http.StatusOK {
		t.Fatalf("by slug: %d", w.Code)
	}

	w = do(r, http.MethodPatch, "/articles/"+created.ID, `{"featured":true}`)
	var patched domain.Article
	_ = json.Unmarshal(w.Body.Bytes(), &patched)
	if w.Code != http.StatusOK || !patched.Featured || patched.Title != "Zero Trust" {
		t.Fatalf("patch: %d %+v", w.Code, patched)
	}

	w = do(r, http.MethodDelete, "/articles/"+created.ID, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"deleted":true`) {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/articles/"+created.ID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: %d", w.Code)
	}
	w = do(r, http.MethodDelete, "/articles/"+created.ID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: %d", w.Code)
	}
}

func TestArticleCreateErrors(t *testing.T) {
	r := articleRouter(&memArticles{})

	if w := do(r, http.MethodPost, "/articles", `{"title":`); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: %d", w.Code)
	}
	w := do(r, http.MethodPost, "/articles", `{"title":"  "}`)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), `"field":"title"`) {
		t.Fatalf("validation: %d %s", w.Code, w.Body.String())
	}
}

type memResources struct {
	lastQuery domain.ResourceQuery
}

func (m *memResources) List(_ context.Context, q domain.ResourceQuery) ([]domain.Resource, domain.PageMeta, error) {
	m.lastQuery = q
	q.Normalize()
	return nil, domain.NewPageMeta(0, q), nil
}

func (m *memResources) Get(context.Context, string) (domain.Resource, error) {
	return domain.Resource{}, store.ErrNotFound
}

func (m *memResources) Create(_ context.Context, r domain.Resource) (domain.Resource, error) {
	return r, nil
}

func (m *memResources) Update(context.Context, string, domain.ResourcePatch) (domain.Resource, error) {
	return domain.Resource{}, store.ErrNotFound
}

func (m *memResources) Delete(context.Context, string) error { return store.ErrNotFound }

func TestResourceListEnvelope(t *testing.T) {
	svc := &memResources{}
	h := NewResourceHandler(svc)
	r := gin.New()
	r.GET("/resources", h.List)

	w := do(r, http.MethodGet, "/resources?page=x&limit=500&search=%20zero%20&type=section", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if svc.lastQuery.Page != 0 || svc.lastQuery.Limit != 500 || svc.lastQuery.Search != "zero" || svc.lastQuery.Type != domain.ResourceSection {
		t.Fatalf("unexpected query %+v", svc.lastQuery)
	}

	var body struct {
		Data []domain.Resource `json:"data"`
		Meta domain.PageMeta   `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data == nil || body.Meta.Page != 1 || body.Meta.Limit != domain.MaxResourceLimit {
		t.Fatalf("unexpected envelope %s", w.Body.String())
	}
}
