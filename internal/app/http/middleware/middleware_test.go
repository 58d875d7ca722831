package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"acc-portal/internal/auth"
	"acc-portal/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var issuer = auth.NewIssuer("test-secret", time.Hour)

func tokenFor(t *testing.T, role users.Role) string {
	t.Helper()
	tok, err := issuer.Issue(users.User{ID: "u-1", Email: "x@acc.org", Role: role})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return tok
}

func protectedRouter(roles ...users.Role) *gin.Engine {
	r := gin.New()
	r.GET("/p", AuthMiddleware(issuer), RequireRole(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(KeyUserID)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := protectedRouter(users.RoleAdmin, users.RoleEditor)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"malformed", "Token abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"viewer", "Bearer " + tokenFor(t, users.RoleViewer), http.StatusForbidden},
		{"editor", "Bearer " + tokenFor(t, users.RoleEditor), http.StatusOK},
		{"admin", "Bearer " + tokenFor(t, users.RoleAdmin), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/p", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("got %d, want %d: %s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	r.POST("/echo", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, "application/json", b)
	})

	body := `{"title":"<script>x</script>Tom & Jerry","content":"<p>keep</p>","password":"a<b>c",` +
		`"sourceConfig":{"items":[{"label":"<b>Bold</b>"}]},"order":2}`
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}

	var got struct {
		Title        string `json:"title"`
		Content      string `json:"content"`
		Password     string `json:"password"`
		SourceConfig struct {
			Items []struct {
				Label string `json:"label"`
			} `json:"items"`
		} `json:"sourceConfig"`
		Order int `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "Tom & Jerry" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Content != "<p>keep</p>" || got.Password != "a<b>c" {
		t.Errorf("raw keys altered: %q %q", got.Content, got.Password)
	}
	if got.SourceConfig.Items[0].Label != "Bold" {
		t.Errorf("nested label = %q", got.SourceConfig.Items[0].Label)
	}
	if got.Order != 2 {
		t.Errorf("order = %d", got.Order)
	}
}

func TestStripMarkupDoesNotRevealEncodedTags(t *testing.T) {
	policy := bluemonday.StrictPolicy()
	cases := []struct{ in, want string }{
		{"Tom & Jerry", "Tom & Jerry"},
		{"<b>Bold</b> move", "Bold move"},
		{"&lt;script&gt;alert(1)&lt;/script&gt;Hi", "Hi"},
		{"&amp;lt;img src=x onerror=alert(1)&amp;gt;ok", "ok"},
	}
	for _, tc := range cases {
		got := stripMarkup(policy, tc.in)
		if got != tc.want {
			t.Errorf("stripMarkup(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if strings.ContainsAny(got, "<>") {
			t.Errorf("stripMarkup(%q) kept markup: %q", tc.in, got)
		}
	}
}

func TestSanitizeInputRejectsMalformedJSON(t *testing.T) {
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	r.POST("/echo", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"title":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", w.Code)
	}
}

func TestConsoleGuard(t *testing.T) {
	r := gin.New()
	r.GET("/admin", ConsoleGuard(issuer, "/admin/login", "/admin", false), func(c *gin.Context) {
		c.String(http.StatusOK, "dashboard")
	})

	t.Run("no cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/admin/login" {
			t.Fatalf("got %d %q", w.Code, w.Header().Get("Location"))
		}
	})

	t.Run("invalid cookie is cleared", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: ConsoleCookie, Value: "junk"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("got %d", w.Code)
		}
		if !strings.Contains(w.Header().Get("Set-Cookie"), ConsoleCookie+"=;") {
			t.Fatalf("cookie not cleared: %q", w.Header().Get("Set-Cookie"))
		}
	})

	t.Run("viewer is refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: ConsoleCookie, Value: tokenFor(t, users.RoleViewer)})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("got %d", w.Code)
		}
	})

	t.Run("editor passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: ConsoleCookie, Value: tokenFor(t, users.RoleEditor)})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK || w.Body.String() != "dashboard" {
			t.Fatalf("got %d %q", w.Code, w.Body.String())
		}
	})
}
