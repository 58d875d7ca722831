package sections

import (
	"testing"

	"acc-portal/internal/domain/site"
)

func ids(list []Section) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestForPageSortsStable(t *testing.T) {
	list := []Section{
		{ID: "a", Page: site.PageHome, Order: 2},
		{ID: "b", Page: site.PageAbout, Order: 1},
		{ID: "c", Page: site.PageHome, Order: 1},
		{ID: "d", Page: site.PageHome, Order: 2},
	}
	got := ids(ForPage(list, site.PageHome))
	if !equal(got, []string{"c", "a", "d"}) {
		t.Fatalf("ForPage = %v", got)
	}
}

func TestNextOrder(t *testing.T) {
	list := []Section{
		{ID: "a", Page: site.PageHome, Order: 1},
		{ID: "b", Page: site.PageHome, Order: 7},
		{ID: "c", Page: site.PageAbout, Order: 1},
	}
	if n := NextOrder(list, site.PageHome); n != 3 {
		t.Fatalf("NextOrder(home) = %d", n)
	}
	if n := NextOrder(list, site.PageBlog); n != 1 {
		t.Fatalf("NextOrder(blog) = %d", n)
	}
}

func TestReorder(t *testing.T) {
	page := []Section{{ID: "a", Order: 1}, {ID: "b", Order: 2}, {ID: "c", Order: 3}}

	out, err := Reorder(page, []string{"c", "a", "b"})
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	for i, s := range out {
		if s.Order != i+1 {
			t.Fatalf("order of %s = %d", s.ID, s.Order)
		}
	}
	if !equal(ids(out), []string{"c", "a", "b"}) {
		t.Fatalf("Reorder = %v", ids(out))
	}

	for _, bad := range [][]string{{"a", "b"}, {"a", "b", "x"}, {"a", "a", "b"}} {
		if _, err := Reorder(page, bad); err == nil {
			t.Errorf("Reorder(%v) should fail", bad)
		}
	}
}

func TestMove(t *testing.T) {
	page := []Section{{ID: "a", Order: 1}, {ID: "b", Order: 2}, {ID: "c", Order: 3}}

	got, err := Move(page, "b", -1)
	if err != nil || !equal(got, []string{"b", "a", "c"}) {
		t.Fatalf("Move up = %v, %v", got, err)
	}
	got, _ = Move(page, "c", +1)
	if !equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("Move past end = %v", got)
	}
	if _, err := Move(page, "zzz", 1); err == nil {
		t.Fatal("unknown id should fail")
	}
}
