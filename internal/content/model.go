package content

import "time"

// CaseStudy is one published write-up of an AI project's monetization
// approach, loaded from a per-locale Markdown file. Records are read-only
// after construction.
type CaseStudy struct {
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	Category     string    `json:"category"`
	Monetization string    `json:"monetization"`
	Stage        string    `json:"stage"`
	PublishedAt  time.Time `json:"published_at"`
	Tags         []string  `json:"tags"`
	Cover        string    `json:"cover,omitempty"`
	Content      string    `json:"content,omitempty"`
}

// HasPublishedAt reports whether the source carried a usable publish date.
// Records without one sort after all dated records, in both sort orders.
func (c CaseStudy) HasPublishedAt() bool {
	return !c.PublishedAt.IsZero()
}

// frontMatter mirrors the metadata block of a case file. Field names are
// fixed by the content contract.
type frontMatter struct {
	Slug         string   `yaml:"slug"`
	Title        string   `yaml:"title"`
	Category     string   `yaml:"category"`
	Monetization string   `yaml:"monetization"`
	Stage        string   `yaml:"stage"`
	PublishedAt  string   `yaml:"publishedAt"`
	Tags         []string `yaml:"tags"`
	Cover        string   `yaml:"cover"`
}
