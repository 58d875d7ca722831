package content

import (
	"math"
	"testing"

	"acc-portal/internal/domain/validation"

	"gorm.io/datatypes"
)

func TestArticleNormalizeDerivesSlug(t *testing.T) {
	a := Article{Title: "  Cyber Threats in 2025! ", Content: "<p>x</p>"}
	a.Normalize()
	if a.Slug != "cyber-threats-in-2025" {
		t.Fatalf("slug = %q", a.Slug)
	}
	if a.Format != FormatHTML {
		t.Fatalf("format = %q", a.Format)
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestArticleValidate(t *testing.T) {
	bad := "not-a-uuid"
	cases := []struct {
		name  string
		a     Article
		field string
	}{
		{"missing title", Article{Slug: "s", Content: "c", Format: FormatHTML}, "title"},
		{"missing content", Article{Title: "t", Slug: "s", Format: FormatHTML}, "content"},
		{"bad slug", Article{Title: "t", Slug: "Has Spaces", Content: "c", Format: FormatHTML}, "slug"},
		{"bad format", Article{Title: "t", Slug: "s", Content: "c", Format: "rtf"}, "format"},
		{"bad category", Article{Title: "t", Slug: "s", Content: "c", Format: FormatHTML, CategoryID: &bad}, "categoryId"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.a.Validate()
			v, ok := err.(*validation.Error)
			if !ok {
				t.Fatalf("err = %v, want validation error", err)
			}
			if v.Field != tc.field {
				t.Fatalf("field = %q, want %q", v.Field, tc.field)
			}
		})
	}
}

func TestArticlePatchOnlyTouchesSuppliedFields(t *testing.T) {
	cat := "8b0f1a4e-1b7e-4a53-9a57-2f1f0c3f6d11"
	a := Article{Title: "Old", Slug: "old", Content: "body", Featured: true, CategoryID: &cat}

	title := "New"
	a2 := a
	ArticlePatch{Title: &title}.Apply(&a2)
	if a2.Title != "New" || a2.Slug != "old" || a2.Content != "body" || !a2.Featured {
		t.Fatalf("patched = %+v", a2)
	}
	if a2.CategoryID == nil || *a2.CategoryID != cat {
		t.Fatalf("category should be untouched")
	}

	empty := ""
	ArticlePatch{CategoryID: &empty}.Apply(&a2)
	if a2.CategoryID != nil {
		t.Fatalf("empty categoryId should detach, got %v", *a2.CategoryID)
	}
}

func TestEnumDefaultsAndValidation(t *testing.T) {
	e := Event{Title: "Summit", Date: "2025-03-01", Location: "Accra"}
	e.Normalize()
	if e.Type != EventInPerson {
		t.Fatalf("event type = %q", e.Type)
	}
	e.Type = "Hybrid"
	if err := e.Validate(); err == nil {
		t.Fatal("expected invalid event type")
	}

	p := Profile{Name: "Ama", Role: "Director", Bio: "..."}
	p.Normalize()
	if p.Type != ProfileStaff || p.Validate() != nil {
		t.Fatalf("profile = %+v", p)
	}

	pr := Project{Title: "CERT", Description: "..."}
	pr.Normalize()
	if pr.Status != ProjectOngoing || pr.Validate() != nil {
		t.Fatalf("project = %+v", pr)
	}
}

func TestResourceValidateMetadata(t *testing.T) {
	r := Resource{Title: "t", Slug: "s", Type: ResourceSection, Metadata: datatypes.JSON(`{"type":`)}
	if err := r.Validate(); err == nil {
		t.Fatal("expected invalid metadata")
	}
	r.Metadata = datatypes.JSON(`{"type":"hero"}`)
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	r.Type = "WIDGET"
	if err := r.Validate(); err == nil {
		t.Fatal("expected unknown type error")
	}
}

func TestResourceQueryNormalize(t *testing.T) {
	cases := []struct {
		in        ResourceQuery
		page, lim int
	}{
		{ResourceQuery{}, 1, 10},
		{ResourceQuery{Page: 3, Limit: 25}, 3, 25},
		{ResourceQuery{Page: -1, Limit: 1000}, 1, 100},
		{ResourceQuery{Page: math.MaxInt, Limit: 100}, MaxResourcePage, 100},
	}
	for _, tc := range cases {
		q := tc.in
		q.Normalize()
		if q.Page != tc.page || q.Limit != tc.lim {
			t.Errorf("Normalize(%+v) = page %d limit %d", tc.in, q.Page, q.Limit)
		}
	}

	q := ResourceQuery{Page: 2, Limit: 10}
	if q.Offset() != 10 {
		t.Fatalf("offset = %d", q.Offset())
	}
	meta := NewPageMeta(21, q)
	if meta.TotalPages != 3 || meta.Total != 21 {
		t.Fatalf("meta = %+v", meta)
	}
	if NewPageMeta(0, q).TotalPages != 0 {
		t.Fatal("no rows means zero pages")
	}

	huge := ResourceQuery{Page: math.MaxInt, Limit: MaxResourceLimit}
	huge.Normalize()
	if off := huge.Offset(); off < 0 || off > math.MaxInt32 {
		t.Fatalf("offset = %d", off)
	}
}
