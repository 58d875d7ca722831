// Package render turns page sections into HTML for the public site.
//
// Resolve is pure: it maps a section plus the content collections onto a
// View. Renderer executes the embedded templates over those views.
package render

import (
	"strings"

	"acc-portal/internal/domain/content"
	"acc-portal/internal/domain/sections"
)

const defaultLimit = 3

const (
	defaultMission = "To serve as Africa's premier platform for cybersecurity collaboration, research and capacity building."
	defaultVision  = "A resilient and secure digital future for all of Africa."
)

type Kind string

const (
	KindHero          Kind = "hero"
	KindItems         Kind = "items"
	KindProfiles      Kind = "profiles"
	KindProjects      Kind = "projects"
	KindCollection    Kind = "collection"
	KindMissionVision Kind = "mission-vision"
	KindPlaceholder   Kind = "placeholder"
)

// Collections is the content a page draws on. Callers pass published
// articles only.
type Collections struct {
	Articles []content.Article
	Projects []content.Project
	Profiles []content.Profile
}

// Card is one entry of a grid, list, projects or profiles section.
type Card struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary,omitempty"`
	Label    string `json:"label,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Href     string `json:"href,omitempty"`
	LinkText string `json:"linkText,omitempty"`
	External bool   `json:"external,omitempty"`
	// Restricted marks a project without a public link.
	Restricted bool `json:"restricted,omitempty"`
}

type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	CtaText  string `json:"ctaText,omitempty"`
	CtaLink  string `json:"ctaLink,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type View struct {
	ID       string        `json:"id"`
	Type     sections.Type `json:"type"`
	Kind     Kind          `json:"kind"`
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle,omitempty"`

	// Variant distinguishes banner from hero, stats from features and
	// list from grid.
	Variant string `json:"variant"`

	Hero    Hero            `json:"hero"`
	Items   []sections.Item `json:"items,omitempty"`
	Cards   []Card          `json:"cards,omitempty"`
	Mission string          `json:"mission,omitempty"`
	Vision  string          `json:"vision,omitempty"`
}

// Resolve builds the view for one section.
func Resolve(s sections.Section, c Collections) View {
	v := View{
		ID:       s.ID,
		Type:     s.Type,
		Title:    s.Title,
		Subtitle: s.Subtitle,
		Variant:  string(s.Type),
	}

	switch s.Type {
	case sections.TypeHero, sections.TypeBanner:
		v.Kind = KindHero
		v.Hero = resolveHero(s)
	case sections.TypeStats, sections.TypeFeatures:
		v.Kind = KindItems
		if cfg, ok := s.Config.(*sections.ItemsConfig); ok {
			v.Items = cfg.Items
		}
	case sections.TypeProfiles:
		v.Kind = KindProfiles
		v.Cards = profileCards(s, c.Profiles)
	case sections.TypeProjects:
		v.Kind = KindProjects
		limit := defaultLimit
		if cfg, ok := s.Config.(*sections.ProjectsConfig); ok && cfg.Limit > 0 {
			limit = cfg.Limit
		}
		v.Cards = projectCards(take(c.Projects, limit), true)
	case sections.TypeGrid, sections.TypeList:
		v.Kind = KindCollection
		v.Cards = collectionCards(s, c)
	case sections.TypeMissionVision:
		v.Kind = KindMissionVision
		v.Mission = orDefault(s.Content, defaultMission)
		v.Vision = orDefault(s.Subtitle, defaultVision)
	default:
		v.Kind = KindPlaceholder
	}
	return v
}

// ResolveAll resolves list in the order given.
func ResolveAll(list []sections.Section, c Collections) []View {
	out := make([]View, 0, len(list))
	for _, s := range list {
		out = append(out, Resolve(s, c))
	}
	return out
}

func resolveHero(s sections.Section) Hero {
	cfg, _ := s.Config.(*sections.HeroConfig)
	if cfg == nil {
		cfg = &sections.HeroConfig{}
	}
	h := Hero{
		Title:    orDefault(cfg.HeroTitle, s.Title),
		Subtitle: firstNonEmpty(cfg.HeroSubtitle, s.Subtitle, s.Content),
		CtaText:  cfg.HeroCtaText,
		CtaLink:  orDefault(cfg.HeroCtaLink, "#"),
		ImageURL: orDefault(cfg.ImageURL, cfg.HeroImage),
	}
	if h.CtaText == "" {
		h.CtaLink = ""
	}
	return h
}

func profileCards(s sections.Section, all []content.Profile) []Card {
	cfg, _ := s.Config.(*sections.ProfilesConfig)
	var want content.ProfileType
	limit := 0
	if cfg != nil {
		want = cfg.ProfileType
		limit = cfg.Limit
	}

	cards := make([]Card, 0, len(all))
	for _, p := range all {
		if want != "" && p.Type != want {
			continue
		}
		if limit > 0 && len(cards) == limit {
			break
		}
		cards = append(cards, Card{
			ID:       p.ID,
			Title:    p.Name,
			Label:    p.Role,
			Summary:  p.Bio,
			ImageURL: p.ImageURL,
		})
	}
	return cards
}

func collectionCards(s sections.Section, c Collections) []Card {
	cfg, _ := s.Config.(*sections.CollectionConfig)
	if cfg == nil {
		cfg = &sections.CollectionConfig{}
	}
	limit := defaultLimit
	if cfg.Limit > 0 {
		limit = cfg.Limit
	}

	switch s.SourceType {
	case sections.SourceProjects:
		return projectCards(take(c.Projects, limit), false)
	case sections.SourceCategory:
		var picked []content.Article
		for _, a := range c.Articles {
			if a.CategoryID != nil && *a.CategoryID == cfg.CategoryID {
				picked = append(picked, a)
			}
		}
		return articleCards(take(picked, limit))
	case sections.SourceManual:
		if len(cfg.ArticleIDs) > 0 {
			return articleCards(take(pickArticles(c.Articles, cfg.ArticleIDs), limit))
		}
	}
	return articleCards(take(c.Articles, limit))
}

// pickArticles returns the articles named by ids, in the order of ids.
// Unknown ids are skipped.
func pickArticles(all []content.Article, ids []string) []content.Article {
	byID := make(map[string]content.Article, len(all))
	for _, a := range all {
		byID[a.ID] = a
	}
	out := make([]content.Article, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			out = append(out, a)
		}
	}
	return out
}

func articleCards(list []content.Article) []Card {
	cards := make([]Card, 0, len(list))
	for _, a := range list {
		card := Card{
			ID:       a.ID,
			Title:    a.Title,
			Summary:  a.Excerpt,
			ImageURL: a.ImageURL,
			Href:     "/blog/" + a.Slug,
			LinkText: "Read More",
		}
		if a.Category != nil {
			card.Label = a.Category.Name
		}
		cards = append(cards, card)
	}
	return cards
}

// projectCards builds project cards. Detailed cards link out to the
// project or mark it restricted.
func projectCards(list []content.Project, detailed bool) []Card {
	cards := make([]Card, 0, len(list))
	for _, p := range list {
		card := Card{
			ID:       p.ID,
			Title:    p.Title,
			Summary:  p.Description,
			Label:    string(p.Status),
			ImageURL: p.ImageURL,
		}
		switch {
		case !detailed:
			card.LinkText = "View Project"
		case strings.TrimSpace(p.Link) != "":
			card.Href = p.Link
			card.LinkText = "View Details"
			card.External = true
		default:
			card.Restricted = true
			card.LinkText = "Restricted Access"
		}
		cards = append(cards, card)
	}
	return cards
}

func take[T any](list []T, n int) []T {
	if n >= 0 && len(list) > n {
		return list[:n]
	}
	return list
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
