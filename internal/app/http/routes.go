package routes

import (
	"net/http"
	"strings"

	adminapi "acc-portal/internal/api/admin"
	authapi "acc-portal/internal/api/auth"
	contactapi "acc-portal/internal/api/contact"
	contentapi "acc-portal/internal/api/content"
	donationsapi "acc-portal/internal/api/donations"
	sectionsapi "acc-portal/internal/api/sections"
	siteapi "acc-portal/internal/api/site"
	themeapi "acc-portal/internal/api/theme"
	uploadsapi "acc-portal/internal/api/uploads"
	usersapi "acc-portal/internal/api/users"
	"acc-portal/internal/app/http/middleware"
	"acc-portal/internal/auth"
	"acc-portal/internal/domain/content"
	"acc-portal/internal/domain/site"
	"acc-portal/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// Handlers is everything the router mounts. Google and Donations are nil
// when their integrations are not configured.
type Handlers struct {
	Auth       *authapi.Handler
	Google     *authapi.Google
	Articles   *contentapi.ArticleHandler
	Categories *contentapi.CategoryHandler
	Events     *contentapi.CRUD[content.Event, content.EventPatch]
	Profiles   *contentapi.CRUD[content.Profile, content.ProfilePatch]
	Projects   *contentapi.CRUD[content.Project, content.ProjectPatch]
	Resources  *contentapi.ResourceHandler
	Sections   *sectionsapi.Handler
	Users      *usersapi.Handler
	Uploads    *uploadsapi.Handler
	Theme      *themeapi.Handler
	Contact    *contactapi.Handler
	Donations  *donationsapi.Handler
	Site       *siteapi.Handler
	Console    *adminapi.Console
}

func RegisterRoutes(r *gin.Engine, prefix string, issuer *auth.Issuer, h Handlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Stripe signs the raw body, so the webhook stays outside the
	// sanitising group.
	if h.Donations != nil {
		r.POST(prefix+"/webhooks/stripe", h.Donations.StripeWebhook)
	}
	r.GET("/uploads/*key", h.Uploads.Serve)

	api := r.Group(prefix)
	api.Use(middleware.SanitizeAndCleanInputMiddleware())

	editors := middleware.RequireRole(users.RoleAdmin, users.RoleEditor)
	admins := middleware.RequireRole(users.RoleAdmin)

	// Public
	api.POST("/auth/login", h.Auth.Login)
	if h.Google != nil {
		api.GET("/auth/google", h.Google.Start)
		api.GET("/auth/google/callback", h.Google.Callback)
	}
	api.GET("/articles", h.Articles.List)
	api.GET("/articles/slug/:slug", h.Articles.GetBySlug)
	api.GET("/articles/:id", h.Articles.Get)
	api.GET("/categories", h.Categories.List)
	api.GET("/categories/:slug", h.Categories.GetBySlug)
	api.GET("/events", h.Events.List)
	api.GET("/events/:id", h.Events.Get)
	api.GET("/profiles", h.Profiles.List)
	api.GET("/profiles/:id", h.Profiles.Get)
	api.GET("/projects", h.Projects.List)
	api.GET("/projects/:id", h.Projects.Get)
	api.GET("/resources", h.Resources.List)
	api.GET("/resources/:id", h.Resources.Get)
	api.GET("/sections", h.Sections.List)
	api.GET("/sections/:id", h.Sections.Get)
	api.GET("/pages/:page", h.Site.PageJSON)
	api.GET("/theme", h.Theme.Get)
	api.POST("/contact", h.Contact.Submit)
	if h.Donations != nil {
		api.POST("/donations/checkout", h.Donations.Checkout)
	}

	// Authenticated
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(issuer))
	authed.GET("/auth/me", h.Auth.Me)
	authed.POST("/auth/change-password", h.Auth.ChangePassword)

	// Admins and editors
	edit := authed.Group("")
	edit.Use(editors)
	edit.POST("/articles", h.Articles.Create)
	edit.PATCH("/articles/:id", h.Articles.Update)
	edit.POST("/categories", h.Categories.Create)
	edit.POST("/events", h.Events.Create)
	edit.PATCH("/events/:id", h.Events.Update)
	edit.POST("/profiles", h.Profiles.Create)
	edit.PATCH("/profiles/:id", h.Profiles.Update)
	edit.POST("/resources", h.Resources.Create)
	edit.PATCH("/resources/:id", h.Resources.Update)
	edit.POST("/sections", h.Sections.Create)
	edit.PUT("/sections/reorder", h.Sections.Reorder)
	edit.PATCH("/sections/:id", h.Sections.Update)
	edit.DELETE("/sections/:id", h.Sections.Delete)
	edit.GET("/users", h.Users.List)
	edit.GET("/users/:id", h.Users.Get)
	edit.POST("/uploads", h.Uploads.Upload)
	edit.GET("/contact", h.Contact.List)

	// Admins only
	admin := authed.Group("")
	admin.Use(admins)
	admin.DELETE("/articles/:id", h.Articles.Delete)
	admin.DELETE("/categories/:id", h.Categories.Delete)
	admin.DELETE("/events/:id", h.Events.Delete)
	admin.DELETE("/profiles/:id", h.Profiles.Delete)
	admin.POST("/projects", h.Projects.Create)
	admin.PATCH("/projects/:id", h.Projects.Update)
	admin.DELETE("/projects/:id", h.Projects.Delete)
	admin.DELETE("/resources/:id", h.Resources.Delete)
	admin.POST("/users", h.Users.Create)
	admin.PATCH("/users/:id", h.Users.Update)
	admin.DELETE("/users/:id", h.Users.Delete)
	admin.PUT("/theme", h.Theme.Update)
	if h.Donations != nil {
		admin.GET("/donations", h.Donations.List)
	}

	// Server-rendered console and public site
	h.Console.Register(r)
	for _, p := range site.Pages {
		r.GET(p.Path(), h.Site.Page(p))
	}
	r.GET("/blog/:slug", h.Site.Article)
	r.POST("/contact/send", h.Site.SendContact)

	r.NoRoute(func(c *gin.Context) {
		if prefix != "" && strings.HasPrefix(c.Request.URL.Path, prefix+"/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		h.Site.NotFound(c)
	})
}
