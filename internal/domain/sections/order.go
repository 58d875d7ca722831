package sections

import (
	"sort"

	"acc-portal/internal/domain/site"
	"acc-portal/internal/domain/validation"
)

// SortByOrder sorts by Order ascending. Ties keep their incoming relative
// order, so callers pass sections oldest first.
func SortByOrder(list []Section) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Order < list[j].Order
	})
}

// ForPage returns the sections placed on page, in display order.
func ForPage(list []Section, page site.Page) []Section {
	out := make([]Section, 0, len(list))
	for _, s := range list {
		if s.Page == page {
			out = append(out, s)
		}
	}
	SortByOrder(out)
	return out
}

// NextOrder is the order assigned to a new section on page when none was
// given: one past the current count.
func NextOrder(list []Section, page site.Page) int {
	n := 0
	for _, s := range list {
		if s.Page == page {
			n++
		}
	}
	return n + 1
}

// Reorder assigns orders 1..n following ids. ids must name every section
// in pageSections exactly once.
func Reorder(pageSections []Section, ids []string) ([]Section, error) {
	if len(ids) != len(pageSections) {
		return nil, validation.Newf("ids", "expected %d ids, got %d", len(pageSections), len(ids))
	}
	byID := make(map[string]Section, len(pageSections))
	for _, s := range pageSections {
		byID[s.ID] = s
	}

	out := make([]Section, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, validation.Newf("ids", "section %s is not on this page", id)
		}
		if seen[id] {
			return nil, validation.Newf("ids", "section %s listed twice", id)
		}
		seen[id] = true
		s.Order = i + 1
		out = append(out, s)
	}
	return out, nil
}

// Move swaps the section id with its neighbour in direction dir (-1 up,
// +1 down) and returns the page's ids in the new order. Moving past either
// end is a no-op.
func Move(pageSections []Section, id string, dir int) ([]string, error) {
	ordered := append([]Section(nil), pageSections...)
	SortByOrder(ordered)

	idx := -1
	for i, s := range ordered {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, validation.Newf("id", "section %s is not on this page", id)
	}
	j := idx + dir
	if j >= 0 && j < len(ordered) {
		ordered[idx], ordered[j] = ordered[j], ordered[idx]
	}

	ids := make([]string, len(ordered))
	for i, s := range ordered {
		ids[i] = s.ID
	}
	return ids, nil
}
