package content

import (
	"context"
	"sort"
)

// Catalog provides locale-scoped sorted views of the content tree and the
// filter vocabularies derived from it. The vocabularies only ever contain
// values observed in the current locale's catalog, so the UI never offers a
// filter with zero matches.
type Catalog struct {
	loader *Loader
}

func NewCatalog(loader *Loader) *Catalog {
	return &Catalog{loader: loader}
}

// All returns the locale's case studies sorted newest first. Records without
// a publish date sort last. The sort is stable.
func (c *Catalog) All(ctx context.Context, locale string) ([]CaseStudy, error) {
	items, err := c.loader.Load(ctx, locale)
	if err != nil {
		return nil, err
	}
	sortByPublishedAt(items, true)
	return items, nil
}

// Categories returns the distinct category values present, sorted.
func (c *Catalog) Categories(ctx context.Context, locale string) ([]string, error) {
	items, err := c.loader.Load(ctx, locale)
	if err != nil {
		return nil, err
	}
	return distinctSorted(items, func(item CaseStudy) string { return item.Category }), nil
}

// MonetizationTypes returns the distinct monetization values present, sorted.
func (c *Catalog) MonetizationTypes(ctx context.Context, locale string) ([]string, error) {
	items, err := c.loader.Load(ctx, locale)
	if err != nil {
		return nil, err
	}
	return distinctSorted(items, func(item CaseStudy) string { return item.Monetization }), nil
}

func distinctSorted(items []CaseStudy, pick func(CaseStudy) string) []string {
	seen := make(map[string]bool, len(items))
	values := make([]string, 0, len(items))
	for _, item := range items {
		v := pick(item)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
