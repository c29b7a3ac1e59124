package content

import (
	"sort"
	"strings"
)

type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// Params are the user-supplied catalog filters. The zero value means no
// filtering and newest-first order, so applying it to a Catalog.All snapshot
// reproduces that snapshot exactly.
type Params struct {
	Search       string
	Category     string // empty means all categories
	Monetization string // empty means all monetization types
	Sort         SortOrder
}

// ParseSortOrder maps a raw query value onto a sort order, defaulting to
// newest first.
func ParseSortOrder(raw string) SortOrder {
	if SortOrder(raw) == SortOldest {
		return SortOldest
	}
	return SortNewest
}

// Apply filters and sorts a catalog snapshot. It is a pure function of its
// inputs: the input slice is never mutated, and identical inputs yield
// identical ordered output.
//
// Search is case-insensitive substring containment over title, summary and
// tags only; category and monetization are exact matches.
func Apply(items []CaseStudy, p Params) []CaseStudy {
	query := strings.ToLower(strings.TrimSpace(p.Search))

	out := make([]CaseStudy, 0, len(items))
	for _, item := range items {
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		if p.Category != "" && item.Category != p.Category {
			continue
		}
		if p.Monetization != "" && item.Monetization != p.Monetization {
			continue
		}
		out = append(out, item)
	}

	sortByPublishedAt(out, p.Sort != SortOldest)
	return out
}

func matchesQuery(c CaseStudy, query string) bool {
	if strings.Contains(strings.ToLower(c.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Summary), query) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// sortByPublishedAt stable-sorts items by publish date. Records without a
// date sort last regardless of direction; equal dates keep their relative
// input order.
func sortByPublishedAt(items []CaseStudy, newestFirst bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case !a.HasPublishedAt():
			return false
		case !b.HasPublishedAt():
			return true
		}
		if newestFirst {
			return a.PublishedAt.After(b.PublishedAt)
		}
		return a.PublishedAt.Before(b.PublishedAt)
	})
}
