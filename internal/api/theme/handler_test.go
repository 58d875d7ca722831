package theme

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"acc-portal/internal/events"
	domain "acc-portal/internal/theme"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recorder struct {
	changes []events.Change
}

func (r *recorder) Notify(_ context.Context, c events.Change) {
	r.changes = append(r.changes, c)
}

func newRouter(t *testing.T) (*gin.Engine, *domain.Store, *recorder) {
	t.Helper()
	store, err := domain.Open(filepath.Join(t.TempDir(), "theme.yaml"))
	if err != nil {
		t.Fatalf("open theme: %v", err)
	}
	rec := &recorder{}
	h := NewHandler(store, rec)
	r := gin.New()
	r.GET("/theme", h.Get)
	r.PUT("/theme", h.Update)
	return r, store, rec
}

func TestGetReturnsDefaults(t *testing.T) {
	r, _, _ := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/theme", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got domain.Config
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != domain.Default() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestUpdateMergesAndNotifies(t *testing.T) {
	r, store, rec := newRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/theme", strings.NewReader(`{"primaryColor":"#ff0000"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	got := store.Get()
	if got.PrimaryColor != "#ff0000" || got.SecondaryColor != domain.Default().SecondaryColor {
		t.Fatalf("unexpected theme: %+v", got)
	}
	if len(rec.changes) != 1 || rec.changes[0].Entity != "theme" {
		t.Fatalf("expected one theme change, got %+v", rec.changes)
	}
}

func TestUpdateRejectsInvalidValues(t *testing.T) {
	r, store, rec := newRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/theme", strings.NewReader(`{"borderRadius":"1rem; color: red"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "borderRadius") {
		t.Fatalf("expected field in body, got %s", w.Body.String())
	}
	if store.Get() != domain.Default() {
		t.Fatalf("theme must be unchanged")
	}
	if len(rec.changes) != 0 {
		t.Fatalf("no change should be announced")
	}
}
