// Package admin is the server-rendered management console mounted under
// /admin.
package admin

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"acc-portal/internal/app/http/middleware"
	"acc-portal/internal/auth"
	"acc-portal/internal/domain/sections"
	"acc-portal/internal/domain/site"
	"acc-portal/internal/domain/users"
	"acc-portal/internal/domain/validation"
	"acc-portal/internal/services"
	"acc-portal/internal/store"
	"acc-portal/internal/theme"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	BasePath  = "/admin"
	LoginPath = BasePath + "/login"
)

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (users.User, error)
}

type StatsSource interface {
	Stats(ctx context.Context) (services.Stats, error)
}

type SectionService interface {
	ListPage(ctx context.Context, page site.Page) ([]sections.Section, error)
	Get(ctx context.Context, id string) (sections.Section, error)
	Create(ctx context.Context, in sections.Input) (sections.Section, error)
	Update(ctx context.Context, id string, p sections.Patch) (sections.Section, error)
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, id string, dir int) ([]sections.Section, error)
}

type ThemeSource interface {
	Get() theme.Config
}

type ThemeEditor interface {
	Save(ctx context.Context, p theme.Patch) (theme.Config, error)
}

type Deps struct {
	Users       Authenticator
	Issuer      *auth.Issuer
	Stats       StatsSource
	Sections    SectionService
	Theme       ThemeSource
	ThemeEditor ThemeEditor
	Entities    []Entity
	// Secure marks the session cookie Secure (HTTPS deployments).
	Secure bool
}

type Console struct {
	deps     Deps
	pages    map[string]*template.Template
	entities map[string]Entity
}

var pageNames = []string{"login", "dashboard", "sections", "section_form", "entities", "entity_form", "theme"}

func New(deps Deps) (*Console, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse console template %s: %w", name, err)
		}
		pages[name] = t
	}
	entities := make(map[string]Entity, len(deps.Entities))
	for _, e := range deps.Entities {
		entities[e.Name] = e
	}
	return &Console{deps: deps, pages: pages, entities: entities}, nil
}

// Register mounts the console on r. Everything except the login form sits
// behind the session guard.
func (h *Console) Register(r gin.IRouter) {
	g := r.Group(BasePath)
	g.GET("/login", h.LoginForm)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)

	guarded := g.Group("")
	guarded.Use(middleware.ConsoleGuard(h.deps.Issuer, LoginPath, BasePath, h.deps.Secure))
	guarded.GET("", h.Dashboard)
	guarded.GET("/sections", h.Sections)
	guarded.GET("/sections/new", h.NewSection)
	guarded.POST("/sections", h.CreateSection)
	guarded.GET("/sections/:id/edit", h.EditSection)
	guarded.POST("/sections/:id", h.UpdateSection)
	guarded.POST("/sections/:id/move", h.MoveSection)
	guarded.POST("/sections/:id/delete", h.DeleteSection)
	guarded.GET("/theme", h.ThemeForm)
	guarded.POST("/theme", h.SaveTheme)
	guarded.GET("/content/:entity", h.EntityList)
	guarded.GET("/content/:entity/new", h.NewEntityForm)
	guarded.POST("/content/:entity", h.CreateEntity)
	guarded.GET("/content/:entity/:id/edit", h.EditEntityForm)
	guarded.POST("/content/:entity/:id", h.UpdateEntity)
	guarded.POST("/content/:entity/:id/delete", h.DeleteEntity)
}

type layoutData struct {
	Title    string
	User     *auth.Claims
	Notice   string
	Error    string
	Entities []Entity
	Data     any
}

var notices = map[string]string{
	"created":   "Saved.",
	"updated":   "Changes saved.",
	"deleted":   "Deleted.",
	"moved":     "Order updated.",
	"theme":     "Theme updated.",
	"loggedout": "You have been signed out.",
	"expired":   "Your session has expired. Please sign in again.",
}

func (h *Console) render(c *gin.Context, status int, page, title string, data any, errMsg string) {
	claims, _ := middleware.Claims(c)
	d := layoutData{
		Title:    title,
		User:     claims,
		Notice:   notices[c.Query("notice")],
		Error:    errMsg,
		Entities: h.deps.Entities,
		Data:     data,
	}
	if c.Query("expired") == "1" {
		d.Notice = notices["expired"]
	}
	t, ok := h.pages[page]
	if !ok {
		c.String(http.StatusInternalServerError, "unknown page")
		return
	}
	var buf strings.Builder
	if err := t.ExecuteTemplate(&buf, "layout", d); err != nil {
		log.Printf("❌ Console render %s: %v", page, err)
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}
	c.Data(status, "text/html; charset=utf-8", []byte(buf.String()))
}

// fail renders err on the error page appropriate to its kind.
func (h *Console) fail(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		h.render(c, http.StatusBadRequest, "dashboard", "Dashboard", nil, verr.Error())
	case errors.Is(err, store.ErrNotFound):
		h.render(c, http.StatusNotFound, "dashboard", "Dashboard", nil, "That item no longer exists.")
	default:
		log.Printf("❌ Console %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		h.render(c, http.StatusInternalServerError, "dashboard", "Dashboard", nil, "Something went wrong.")
	}
}

func redirect(c *gin.Context, path, notice string) {
	if notice != "" {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		path += sep + "notice=" + notice
	}
	c.Redirect(http.StatusSeeOther, path)
}

// GET /admin/login
func (h *Console) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login", "Sign in", nil, "")
}

// POST /admin/login
func (h *Console) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	u, err := h.deps.Users.Authenticate(c.Request.Context(), email, c.PostForm("password"))
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("❌ Console login for %s: %v", email, err)
		}
		h.render(c, http.StatusUnauthorized, "login", "Sign in", gin.H{"Email": email}, "Invalid email or password.")
		return
	}
	if u.Role != users.RoleAdmin && u.Role != users.RoleEditor {
		h.render(c, http.StatusForbidden, "login", "Sign in", gin.H{"Email": email}, "This account cannot use the console.")
		return
	}

	token, err := h.deps.Issuer.Issue(u)
	if err != nil {
		log.Printf("❌ Issuing console token: %v", err)
		h.render(c, http.StatusInternalServerError, "login", "Sign in", nil, "Something went wrong.")
		return
	}
	middleware.SetConsoleCookie(c, token, int(h.deps.Issuer.TTL().Seconds()), BasePath, h.deps.Secure)
	log.Printf("✅ Console login: %s", u.Email)
	c.Redirect(http.StatusSeeOther, BasePath)
}

// POST /admin/logout
func (h *Console) Logout(c *gin.Context) {
	middleware.ClearConsoleCookie(c, BasePath, h.deps.Secure)
	redirect(c, LoginPath, "loggedout")
}

// GET /admin
func (h *Console) Dashboard(c *gin.Context) {
	stats, err := h.deps.Stats.Stats(c.Request.Context())
	if err != nil {
		log.Printf("⚠️ Dashboard stats: %v", err)
		h.render(c, http.StatusOK, "dashboard", "Dashboard", nil, "Statistics are unavailable right now.")
		return
	}
	h.render(c, http.StatusOK, "dashboard", "Dashboard", stats, "")
}

func isAdmin(c *gin.Context) bool {
	claims, ok := middleware.Claims(c)
	return ok && claims.Role == users.RoleAdmin
}
