package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"acc-portal/internal/domain/content"
	"acc-portal/internal/domain/sections"
	"acc-portal/internal/domain/site"
	"acc-portal/internal/domain/users"
	"acc-portal/internal/events"
	"acc-portal/internal/services"
	"acc-portal/internal/store"

	"gorm.io/gorm"
)

const (
	SeedAdminEmail    = "admin@admin.com"
	SeedAdminPassword = "admin123"
)

// Seed loads the starter content. Running it twice changes nothing except
// resetting the admin password.
func Seed(ctx context.Context, db *gorm.DB) error {
	s := newSeeder(db)
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"admin user", s.seedAdmin},
		{"categories", s.seedCategories},
		{"articles", s.seedArticles},
		{"projects", s.seedProjects},
		{"events", s.seedEvents},
		{"profiles", s.seedProfiles},
		{"sections", s.seedSections},
	}
	for _, st := range steps {
		if err := st.fn(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", st.name, err)
		}
	}
	log.Println("✅ Seeding complete")
	return nil
}

type seeder struct {
	users      *services.UserService
	userRepo   *store.UserRepository
	categories *services.CategoryService
	articles   *services.ArticleService
	projects   *services.ProjectService
	events     *services.EventService
	profiles   *services.ProfileService
	sections   *services.SectionService
}

func newSeeder(db *gorm.DB) *seeder {
	n := events.Discard{}
	userRepo := store.NewUserRepository(db)
	return &seeder{
		users:      services.NewUserService(userRepo),
		userRepo:   userRepo,
		categories: services.NewCategoryService(store.NewCategoryRepository(db), n),
		articles:   services.NewArticleService(store.NewArticleRepository(db), n),
		projects:   services.NewProjectService(store.NewProjectRepository(db), n),
		events:     services.NewEventService(store.NewEventRepository(db), n),
		profiles:   services.NewProfileService(store.NewProfileRepository(db), n),
		sections:   services.NewSectionService(store.NewResourceRepository(db), n),
	}
}

func (s *seeder) seedAdmin(ctx context.Context) error {
	u, err := s.userRepo.GetByEmail(ctx, SeedAdminEmail)
	switch {
	case errors.Is(err, store.ErrNotFound):
		_, err = s.users.Create(ctx, services.CreateUserInput{
			Email:    SeedAdminEmail,
			Password: SeedAdminPassword,
			Name:     "Administrator",
			Role:     users.RoleAdmin,
		})
		if err == nil {
			log.Printf("Created admin user %s", SeedAdminEmail)
		}
		return err
	case err != nil:
		return err
	}
	pw, role := SeedAdminPassword, users.RoleAdmin
	if _, err := s.users.Update(ctx, u.ID, services.UserPatch{Password: &pw, Role: &role}); err != nil {
		return err
	}
	log.Printf("Reset password of admin user %s", SeedAdminEmail)
	return nil
}

var starterCategories = []content.Category{
	{Name: "Research", Slug: "research"},
	{Name: "Policy", Slug: "policy"},
	{Name: "Technical", Slug: "technical"},
}

func (s *seeder) seedCategories(ctx context.Context) error {
	for _, c := range starterCategories {
		_, err := s.categories.GetBySlug(ctx, c.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if _, err := s.categories.Create(ctx, c); err != nil {
			return err
		}
		log.Printf("Seeded category: %s", c.Name)
	}
	return nil
}

func (s *seeder) categoryID(ctx context.Context, slug string) (*string, error) {
	c, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &c.ID, nil
}

func (s *seeder) seedArticles(ctx context.Context) error {
	research, err := s.categoryID(ctx, "research")
	if err != nil {
		return err
	}
	technical, err := s.categoryID(ctx, "technical")
	if err != nil {
		return err
	}
	list := []content.Article{
		{
			Title:       "Cybersecurity Trends 2026",
			Slug:        "cybersecurity-trends-2026",
			Content:     "<p>Exploring the latest trends in artificial intelligence and cybersecurity...</p>",
			Format:      content.FormatHTML,
			Excerpt:     "The landscape of digital security is evolving rapidly...",
			ImageURL:    "https://images.unsplash.com/photo-1550751827-4bd374c3f58b",
			Date:        "Jan 15, 2026",
			Featured:    true,
			IsPublished: true,
			CategoryID:  research,
		},
		{
			Title:       "Protecting Critical Infrastructure",
			Slug:        "protecting-critical-infrastructure",
			Content:     "<p>A deep dive into securing national power grids and water systems...</p>",
			Format:      content.FormatHTML,
			Excerpt:     "How governments are responding to increased cyber threats...",
			ImageURL:    "https://images.unsplash.com/photo-1558494949-ef010cbdcc4b",
			Date:        "Dec 10, 2025",
			IsPublished: true,
			CategoryID:  technical,
		},
	}
	for _, a := range list {
		_, err := s.articles.GetBySlug(ctx, a.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if _, err := s.articles.Create(ctx, a); err != nil {
			return err
		}
		log.Printf("Seeded article: %s", a.Title)
	}
	return nil
}

// seedMissing creates every item whose key is not already present.
func seedMissing[T any](ctx context.Context, kind string, list func(context.Context) ([]T, error), create func(context.Context, T) (T, error), key func(T) string, items []T) error {
	existing, err := list(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, v := range existing {
		have[key(v)] = true
	}
	for _, v := range items {
		if have[key(v)] {
			continue
		}
		if _, err := create(ctx, v); err != nil {
			return err
		}
		log.Printf("Seeded %s: %s", kind, key(v))
	}
	return nil
}

func (s *seeder) seedProjects(ctx context.Context) error {
	return seedMissing(ctx, "project", s.projects.List, s.projects.Create,
		func(p content.Project) string { return p.Title },
		[]content.Project{
			{
				Title:       "Regional SOC Initiative",
				Description: "Building a collaborative Security Operations Center for East Africa.",
				ImageURL:    "https://images.unsplash.com/photo-1563986768609-322da13575f3",
				Status:      content.ProjectOngoing,
			},
			{
				Title:       "African Cyber Academy",
				Description: "Specialized training programs for the next generation of security experts.",
				ImageURL:    "https://images.unsplash.com/photo-1509062522246-3755977927d7",
				Status:      content.ProjectCompleted,
			},
		})
}

func (s *seeder) seedEvents(ctx context.Context) error {
	return seedMissing(ctx, "event", s.events.List, s.events.Create,
		func(e content.Event) string { return e.Title },
		[]content.Event{
			{Title: "ACC Tech Summit 2026", Date: "Oct 15, 2026", Location: "Nairobi, Kenya", Type: content.EventInPerson},
			{
				Title:            "Webinar: Identity Security",
				Date:             "Mar 20, 2026",
				Location:         "Online",
				Type:             content.EventOnline,
				RegistrationLink: "https://zoom.us/j/123456",
			},
		})
}

func (s *seeder) seedProfiles(ctx context.Context) error {
	return seedMissing(ctx, "profile", s.profiles.List, s.profiles.Create,
		func(p content.Profile) string { return p.Name },
		[]content.Profile{
			{
				Name:     "Amani Kweli",
				Role:     "Executive Director",
				Bio:      "Executive Director with over 15 years of experience in telecom security.",
				ImageURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d",
				Type:     content.ProfileStaff,
			},
			{
				Name:     "Sarah Johnson",
				Role:     "Technical Lead",
				Bio:      "Lead Architect specializing in cloud security and compliance.",
				ImageURL: "https://images.unsplash.com/photo-1494790108377-be9c29b29330",
				Type:     content.ProfileStaff,
			},
		})
}

func rawJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

// DefaultSections is the starter layout of each page that has none yet.
var DefaultSections = []sections.Input{
	{
		Title: "Hero", Type: sections.TypeHero, Page: site.PageHome,
		SourceConfig: rawJSON(sections.HeroConfig{
			HeroTitle:    "Securing Africa's Digital Future",
			HeroSubtitle: "A nonprofit consortium uniting researchers, practitioners and policymakers.",
			HeroCtaText:  "Our Solutions",
			HeroCtaLink:  "/solutions",
		}),
	},
	{
		Title: "Our Impact", Type: sections.TypeStats, Page: site.PageHome,
		SourceConfig: rawJSON(sections.ItemsConfig{Items: []sections.Item{
			{Label: "Member Organisations", Value: "40+"},
			{Label: "Countries", Value: "12"},
			{Label: "Professionals Trained", Value: "1,500"},
		}}),
	},
	{Title: "Latest Insights", Type: sections.TypeGrid, Page: site.PageHome, SourceType: sections.SourceLatest},
	{Title: "Our Projects", Type: sections.TypeProjects, Page: site.PageHome},
	{Title: "Mission & Vision", Type: sections.TypeMissionVision, Page: site.PageAbout},
	{
		Title: "Our Team", Type: sections.TypeProfiles, Page: site.PageAbout,
		SourceConfig: rawJSON(sections.ProfilesConfig{ProfileType: content.ProfileStaff}),
	},
	{Title: "Projects", Type: sections.TypeGrid, Page: site.PageSolutions, SourceType: sections.SourceProjects},
	{Title: "Blog", Type: sections.TypeList, Page: site.PageBlog, SourceType: sections.SourceLatest,
		SourceConfig: rawJSON(sections.CollectionConfig{Limit: 12})},
}

func (s *seeder) seedSections(ctx context.Context) error {
	existing, err := s.sections.List(ctx)
	if err != nil {
		return err
	}
	seeded := make(map[site.Page]bool)
	for _, sec := range existing {
		seeded[sec.Page] = true
	}
	for _, in := range DefaultSections {
		if seeded[in.Page] {
			continue
		}
		if _, err := s.sections.Create(ctx, in); err != nil {
			return err
		}
		log.Printf("Seeded %s section on %s: %s", in.Type, in.Page, in.Title)
	}
	return nil
}
