// Package app wires configuration, storage and handlers into a running
// server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"acc-portal/config"
	"acc-portal/database"
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
	routes "acc-portal/internal/app/http"
	"acc-portal/internal/auth"
	"acc-portal/internal/domain/content"
	"acc-portal/internal/events"
	"acc-portal/internal/infra/mail"
	"acc-portal/internal/infra/stripe"
	"acc-portal/internal/mq"
	"acc-portal/internal/render"
	"acc-portal/internal/services"
	"acc-portal/internal/storage"
	"acc-portal/internal/store"
	"acc-portal/internal/theme"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Server is a fully wired instance. Build it with New and start it with
// Run.
type Server struct {
	cfg     config.Config
	db      *gorm.DB
	mq      *mq.MQ
	theme   *theme.Store
	channel string
	site    *siteapi.Handler
	engine  *gin.Engine
}

// New opens every backing service and builds the router.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	s, err := build(ctx, cfg, db)
	if err != nil {
		database.Close(db)
		return nil, err
	}
	return s, nil
}

func build(ctx context.Context, cfg config.Config, db *gorm.DB) (*Server, error) {
	objects, err := storage.Open(ctx, cfg.Uploads)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Upload storage: %s (%s)", objects.Name(), objects.Bucket())

	broker, err := mq.Open(ctx, cfg.MQ)
	if err != nil {
		return nil, err
	}
	themes, err := theme.Open(cfg.ThemeFile)
	if err != nil {
		_ = broker.Close()
		return nil, fmt.Errorf("open theme: %w", err)
	}
	renderer, err := render.New()
	if err != nil {
		_ = broker.Close()
		return nil, err
	}

	channel := cfg.MQ.PubSubTopic
	if channel == "" {
		channel = events.DefaultChannel
	}
	notifier := events.NewPublisher(broker, channel)
	issuer := auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	secure := strings.HasPrefix(cfg.PublicURL, "https://")

	articles := services.NewArticleService(store.NewArticleRepository(db), notifier)
	categories := services.NewCategoryService(store.NewCategoryRepository(db), notifier)
	eventSvc := services.NewEventService(store.NewEventRepository(db), notifier)
	profiles := services.NewProfileService(store.NewProfileRepository(db), notifier)
	projects := services.NewProjectService(store.NewProjectRepository(db), notifier)
	resourceRepo := store.NewResourceRepository(db)
	resources := services.NewResourceService(resourceRepo, notifier)
	sectionSvc := services.NewSectionService(resourceRepo, notifier)
	userSvc := services.NewUserService(store.NewUserRepository(db))
	uploads := services.NewUploadService(objects, store.NewUploadRepository(db), cfg.Uploads.MaxBytes)
	dashboard := services.NewDashboardService(articles, sectionSvc, eventSvc, categories)

	var mailer services.Mailer
	if cfg.SMTP.Enabled() {
		mailer = mail.NewSMTP(cfg.SMTP)
	}
	contactSvc := services.NewContactService(store.NewContactRepository(db), mailer, cfg.ContactInbox)

	themeHandler := themeapi.NewHandler(themes, notifier)
	siteHandler := siteapi.NewHandler(siteapi.Sources{
		Articles: articles,
		Projects: projects,
		Profiles: profiles,
		Sections: sectionSvc,
	}, themes, contactSvc, renderer)

	console, err := adminapi.New(adminapi.Deps{
		Users:       userSvc,
		Issuer:      issuer,
		Stats:       dashboard,
		Sections:    sectionSvc,
		Theme:       themes,
		ThemeEditor: themeHandler,
		Entities:    consoleEntities(articles, categories, eventSvc, profiles, projects),
		Secure:      secure,
	})
	if err != nil {
		_ = broker.Close()
		return nil, err
	}

	h := routes.Handlers{
		Auth:       authapi.NewHandler(userSvc, issuer),
		Articles:   contentapi.NewArticleHandler(articles),
		Categories: contentapi.NewCategoryHandler(categories),
		Events:     contentapi.NewCRUD[content.Event, content.EventPatch](eventSvc),
		Profiles:   contentapi.NewCRUD[content.Profile, content.ProfilePatch](profiles),
		Projects:   contentapi.NewCRUD[content.Project, content.ProjectPatch](projects),
		Resources:  contentapi.NewResourceHandler(resources),
		Sections:   sectionsapi.NewHandler(sectionSvc),
		Users:      usersapi.NewHandler(userSvc),
		Uploads:    uploadsapi.NewHandler(uploads),
		Theme:      themeHandler,
		Contact:    contactapi.NewHandler(contactSvc),
		Site:       siteHandler,
		Console:    console,
	}
	if cfg.Google.Enabled() {
		h.Google = authapi.NewGoogle(cfg.Google, userSvc, issuer, secure)
	}
	if cfg.Stripe.Enabled() {
		donations := services.NewDonationService(store.NewDonationRepository(db), stripe.NewCheckout(cfg.Stripe), cfg.Stripe.Currency)
		h.Donations = donationsapi.NewHandler(donations)
	}

	return &Server{
		cfg:     cfg,
		db:      db,
		mq:      broker,
		theme:   themes,
		channel: channel,
		site:    siteHandler,
		engine:  NewEngine(cfg, issuer, h),
	}, nil
}

// NewEngine builds the gin engine with CORS and every route.
func NewEngine(cfg config.Config, issuer *auth.Issuer, h routes.Handlers) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.RegisterRoutes(r, cfg.APIPrefix, issuer, h)
	return r
}

func consoleEntities(articles *services.ArticleService, categories *services.CategoryService, evs *services.EventService, profiles *services.ProfileService, projects *services.ProjectService) []adminapi.Entity {
	categoryOptions := func(ctx context.Context) ([]adminapi.Option, error) {
		list, err := categories.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]adminapi.Option, len(list))
		for i, c := range list {
			out[i] = adminapi.Option{Value: c.ID, Label: c.Name}
		}
		return out, nil
	}
	image := adminapi.Field{Name: "imageUrl", Label: "Image URL", Kind: adminapi.FieldURL}

	projectEntity := adminapi.NewEntity[content.Project, content.ProjectPatch]("projects", "Projects", projects, []adminapi.Field{
		{Name: "title", Label: "Title", Required: true},
		{Name: "description", Label: "Description", Kind: adminapi.FieldTextarea, Required: true},
		{Name: "status", Label: "Status", Kind: adminapi.FieldSelect, Options: options(content.ProjectOngoing, content.ProjectCompleted, content.ProjectUpcoming)},
		image,
		{Name: "link", Label: "Link", Kind: adminapi.FieldURL},
	}, func(p content.Project) adminapi.Row {
		return adminapi.Row{ID: p.ID, Title: p.Title, Detail: string(p.Status)}
	})
	projectEntity.AdminWrite = true

	return []adminapi.Entity{
		adminapi.NewEntity[content.Article, content.ArticlePatch]("articles", "Articles", articles, []adminapi.Field{
			{Name: "title", Label: "Title", Required: true},
			{Name: "slug", Label: "Slug (blank to derive from the title)", KeepIfBlank: true},
			{Name: "format", Label: "Format", Kind: adminapi.FieldSelect, Options: options(content.FormatHTML, content.FormatMarkdown)},
			{Name: "content", Label: "Content", Kind: adminapi.FieldTextarea, Required: true},
			{Name: "excerpt", Label: "Excerpt", Kind: adminapi.FieldTextarea},
			image,
			{Name: "date", Label: "Date"},
			{Name: "categoryId", Label: "Category", Kind: adminapi.FieldSelect, Options: []adminapi.Option{{Value: "", Label: "None"}}, LoadOptions: categoryOptions},
			{Name: "featured", Label: "Featured", Kind: adminapi.FieldCheckbox},
			{Name: "isPublished", Label: "Published", Kind: adminapi.FieldCheckbox},
		}, func(a content.Article) adminapi.Row {
			state := "Draft"
			if a.IsPublished {
				state = "Published"
			}
			return adminapi.Row{ID: a.ID, Title: a.Title, Detail: state}
		}),
		adminapi.NewEntity[content.Event, content.EventPatch]("events", "Events", evs, []adminapi.Field{
			{Name: "title", Label: "Title", Required: true},
			{Name: "date", Label: "Date", Required: true},
			{Name: "time", Label: "Time"},
			{Name: "location", Label: "Location", Required: true},
			{Name: "type", Label: "Type", Kind: adminapi.FieldSelect, Options: options(content.EventInPerson, content.EventOnline)},
			{Name: "description", Label: "Description", Kind: adminapi.FieldTextarea},
			image,
			{Name: "registrationLink", Label: "Registration link", Kind: adminapi.FieldURL},
		}, func(e content.Event) adminapi.Row {
			return adminapi.Row{ID: e.ID, Title: e.Title, Detail: e.Date + " · " + e.Location}
		}),
		adminapi.NewEntity[content.Profile, content.ProfilePatch]("profiles", "Profiles", profiles, []adminapi.Field{
			{Name: "name", Label: "Name", Required: true},
			{Name: "role", Label: "Role", Required: true},
			{Name: "type", Label: "Type", Kind: adminapi.FieldSelect, Options: options(content.ProfileStaff, content.ProfileBoard, content.ProfileVolunteer, content.ProfileIntern)},
			{Name: "bio", Label: "Bio", Kind: adminapi.FieldTextarea, Required: true},
			image,
		}, func(p content.Profile) adminapi.Row {
			return adminapi.Row{ID: p.ID, Title: p.Name, Detail: p.Role + " · " + string(p.Type)}
		}),
		projectEntity,
	}
}

func options[S ~string](values ...S) []adminapi.Option {
	out := make([]adminapi.Option, len(values))
	for i, v := range values {
		out[i] = adminapi.Option{Value: string(v), Label: string(v)}
	}
	return out
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is cancelled. Alongside the listener it drops
// the page cache on content changes and reloads the theme file when it is
// edited on disk.
func (s *Server) Run(ctx context.Context) error {
	defer database.Close(s.db)
	defer s.mq.Close()

	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := events.Subscribe(ctx, s.mq, s.channel, s.site.Invalidate)
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("content events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return s.theme.Watch(ctx, func(theme.Config) {
			s.site.Invalidate(events.Change{Entity: "theme", Action: events.Updated})
		})
	})
	g.Go(func() error {
		log.Printf("🚀 Listening on :%s", s.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Println("Shutting down…")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
