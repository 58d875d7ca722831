package sections

import (
	"encoding/json"
	"testing"

	"acc-portal/internal/domain/content"
	"acc-portal/internal/domain/site"
	"acc-portal/internal/domain/validation"

	"gorm.io/datatypes"
)

func TestInputBuildDefaultsSource(t *testing.T) {
	cases := map[Type]SourceType{
		TypeHero:          SourceManual,
		TypeBanner:        SourceManual,
		TypeStats:         SourceManual,
		TypeFeatures:      SourceManual,
		TypeProfiles:      SourceProfiles,
		TypeProjects:      SourceProjects,
		TypeGrid:          SourceLatest,
		TypeList:          SourceLatest,
		TypeMissionVision: SourceLatest,
	}
	for typ, want := range cases {
		s, err := Input{Title: "T", Type: typ, Page: site.PageHome}.Build()
		if err != nil {
			t.Fatalf("Build(%s): %v", typ, err)
		}
		if s.SourceType != want {
			t.Errorf("%s source = %s, want %s", typ, s.SourceType, want)
		}
		if !configMatches(typ, s.Config) {
			t.Errorf("%s config variant = %T", typ, s.Config)
		}
	}
}

func TestInputBuildStrictConfig(t *testing.T) {
	_, err := Input{
		Title:        "Hero",
		Type:         TypeHero,
		Page:         site.PageHome,
		SourceConfig: json.RawMessage(`{"heroTitle":"Welcome","limit":3}`),
	}.Build()
	if !validation.Is(err) {
		t.Fatalf("unknown config field should be rejected, got %v", err)
	}

	s, err := Input{
		Title:        "Hero",
		Type:         TypeHero,
		Page:         site.PageHome,
		SourceConfig: json.RawMessage(`{"heroTitle":"Welcome","heroCtaText":"Join"}`),
	}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	hero := s.Config.(*HeroConfig)
	if hero.HeroTitle != "Welcome" || hero.HeroCtaText != "Join" {
		t.Fatalf("hero = %+v", hero)
	}
}

func TestInputBuildRejects(t *testing.T) {
	cases := []struct {
		name  string
		in    Input
		field string
	}{
		{"unknown type", Input{Title: "x", Type: "carousel", Page: site.PageHome}, "type"},
		{"unknown page", Input{Title: "x", Type: TypeGrid, Page: "pricing"}, "page"},
		{"missing title", Input{Type: TypeGrid, Page: site.PageHome}, "title"},
		{"bad source", Input{Title: "x", Type: TypeHero, Page: site.PageHome, SourceType: SourceLatest}, "sourceType"},
		{"category needs id", Input{Title: "x", Type: TypeGrid, Page: site.PageBlog, SourceType: SourceCategory}, "sourceConfig.categoryId"},
		{"manual needs ids", Input{Title: "x", Type: TypeList, Page: site.PageBlog, SourceType: SourceManual}, "sourceConfig.articleIds"},
		{"negative limit", Input{Title: "x", Type: TypeProjects, Page: site.PageHome, SourceConfig: json.RawMessage(`{"limit":-1}`)}, "sourceConfig.limit"},
		{"item label", Input{Title: "x", Type: TypeStats, Page: site.PageHome, SourceConfig: json.RawMessage(`{"items":[{"value":"50+"}]}`)}, "sourceConfig.items"},
		{"profile type", Input{Title: "x", Type: TypeProfiles, Page: site.PageAbout, SourceConfig: json.RawMessage(`{"profileType":"Alumni"}`)}, "sourceConfig.profileType"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.in.Build()
			v, ok := err.(*validation.Error)
			if !ok {
				t.Fatalf("err = %v, want validation error", err)
			}
			if v.Field != tc.field {
				t.Fatalf("field = %q, want %q (%v)", v.Field, tc.field, v)
			}
		})
	}
}

func TestPatchTypeChangeResetsSource(t *testing.T) {
	s, err := Input{
		Title:        "Latest news",
		Type:         TypeGrid,
		Page:         site.PageHome,
		SourceType:   SourceCategory,
		SourceConfig: json.RawMessage(`{"categoryId":"c1","limit":6}`),
	}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	typ := TypeProfiles
	if err := (Patch{Type: &typ}).Apply(&s); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if s.SourceType != SourceProfiles {
		t.Fatalf("source = %s", s.SourceType)
	}
	if _, ok := s.Config.(*ProfilesConfig); !ok {
		t.Fatalf("config = %T", s.Config)
	}

	typ = TypeList
	src := SourceCategory
	if err := (Patch{Type: &typ, SourceType: &src, SourceConfig: json.RawMessage(`{"categoryId":"c2"}`)}).Apply(&s); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if s.SourceType != SourceCategory || s.Config.(*CollectionConfig).CategoryID != "c2" {
		t.Fatalf("section = %+v", s)
	}
}

func TestPatchKeepsConfigWhenTypeUnchanged(t *testing.T) {
	s, _ := Input{
		Title:        "Stats",
		Type:         TypeStats,
		Page:         site.PageHome,
		SourceConfig: json.RawMessage(`{"items":[{"label":"Members","value":"120"}]}`),
	}.Build()

	title := "Our impact"
	typ := TypeStats
	if err := (Patch{Title: &title, Type: &typ}).Apply(&s); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if s.Title != "Our impact" || len(s.Config.(*ItemsConfig).Items) != 1 {
		t.Fatalf("section = %+v", s)
	}
}

func TestPatchFailureLeavesSectionUntouched(t *testing.T) {
	s, _ := Input{Title: "Hero", Type: TypeHero, Page: site.PageHome}.Build()
	before := s.Title

	title := "New"
	page := site.Page("nowhere")
	if err := (Patch{Title: &title, Page: &page}).Apply(&s); err == nil {
		t.Fatal("expected error")
	}
	if s.Title != before || s.Page != site.PageHome {
		t.Fatalf("section mutated on failure: %+v", s)
	}
}

func TestFromResourceLenient(t *testing.T) {
	r := content.Resource{
		ID:    "res-1",
		Title: "From Row",
		Type:  content.ResourceSection,
		Metadata: datatypes.JSON(`{
			"id": "stale", "title": "Stale", "type": "grid", "page": "blog",
			"order": "2", "sourceConfig": {"limit": "three", "heroTitle": "leftover"}
		}`),
	}
	s := FromResource(r)
	if s.ID != "res-1" || s.Title != "From Row" {
		t.Fatalf("row identity should win: %+v", s)
	}
	if s.Order != 2 || s.Page != site.PageBlog || s.SourceType != SourceLatest {
		t.Fatalf("section = %+v", s)
	}
	if c, ok := s.Config.(*CollectionConfig); !ok || c.Limit != 0 {
		t.Fatalf("malformed config should fall back to empty, got %#v", s.Config)
	}
}

func TestFromResourceUnknownTypeSurvives(t *testing.T) {
	r := content.Resource{
		ID:       "res-2",
		Title:    "Map",
		Metadata: datatypes.JSON(`{"type":"map","page":"contact","order":1,"sourceConfig":{"mapConfig":{"lat":5.6}}}`),
	}
	s := FromResource(r)
	u, ok := s.Config.(*UnknownConfig)
	if !ok {
		t.Fatalf("config = %T", s.Config)
	}
	b, err := s.Metadata()
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back["type"] != "map" || back["sourceConfig"].(map[string]any)["mapConfig"] == nil {
		t.Fatalf("unknown config lost: %s (raw %s)", b, u.Raw)
	}
}

func TestFromResourceBadMetadata(t *testing.T) {
	s := FromResource(content.Resource{ID: "x", Title: "Broken", Metadata: datatypes.JSON(`not json`)})
	if s.ID != "x" || s.Config == nil {
		t.Fatalf("section = %+v", s)
	}
}
