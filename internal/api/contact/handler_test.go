package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domain "acc-portal/internal/domain/contact"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memInbox struct {
	saved []domain.Message
}

func (m *memInbox) Submit(_ context.Context, msg domain.Message) (domain.Message, error) {
	msg.Normalize()
	if err := msg.Validate(); err != nil {
		return domain.Message{}, err
	}
	msg.ID = "m1"
	m.saved = append(m.saved, msg)
	return msg, nil
}

func (m *memInbox) List(context.Context) ([]domain.Message, error) { return m.saved, nil }

func newRouter(inbox *memInbox) *gin.Engine {
	h := NewHandler(inbox)
	r := gin.New()
	r.POST("/contact", h.Submit)
	r.GET("/contact", h.List)
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitStoresMessage(t *testing.T) {
	inbox := &memInbox{}
	r := newRouter(inbox)

	w := post(r, `{"name":"Ada","email":"Ada@Example.com","subject":"Hi","message":"Hello there"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["id"] != "m1" {
		t.Fatalf("expected id in response, got %v", body)
	}
	if len(inbox.saved) != 1 || inbox.saved[0].Email != "ada@example.com" {
		t.Fatalf("unexpected saved messages: %+v", inbox.saved)
	}
}

func TestSubmitValidation(t *testing.T) {
	cases := []struct {
		name, body, field string
	}{
		{"missing name", `{"email":"a@b.co","message":"x"}`, "name"},
		{"bad email", `{"name":"A","email":"nope","message":"x"}`, "email"},
		{"empty message", `{"name":"A","email":"a@b.co","message":"   "}`, "message"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := post(newRouter(&memInbox{}), tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var body map[string]string
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if body["field"] != tc.field {
				t.Fatalf("expected field %q, got %v", tc.field, body)
			}
		})
	}
}

func TestSubmitRejectsBrokenJSON(t *testing.T) {
	w := post(newRouter(&memInbox{}), `{"name":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestListNeverReturnsNull(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(&memInbox{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contact", nil))
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", w.Body.String())
	}
}
