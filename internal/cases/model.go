package cases

import "time"

// Case is the admin-managed datastore row. It mirrors the Markdown content
// shape plus datastore-only bookkeeping (id, is_published, timestamps). The
// Markdown tree stays authoritative for public reads; these rows are fed by
// the one-way sync and by the admin panel.
type Case struct {
	ID           string     `bson:"_id,omitempty" json:"id"`
	Locale       string     `bson:"locale" json:"locale"`
	Slug         string     `bson:"slug" json:"slug"`
	Title        string     `bson:"title" json:"title"`
	Summary      string     `bson:"summary" json:"summary"`
	Category     string     `bson:"category" json:"category"`
	Monetization string     `bson:"monetization" json:"monetization"`
	Stage        string     `bson:"stage" json:"stage"`
	PublishedAt  *time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
	Tags         []string   `bson:"tags" json:"tags"`
	Cover        string     `bson:"cover,omitempty" json:"cover,omitempty"`
	Content      string     `bson:"content" json:"content"`
	IsPublished  bool       `bson:"is_published" json:"is_published"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
}

type UpsertRequest struct {
	Locale       string   `json:"locale" validate:"required"`
	Slug         string   `json:"slug" validate:"omitempty,slugfmt"`
	Title        string   `json:"title" validate:"required"`
	Summary      string   `json:"summary"`
	Category     string   `json:"category" validate:"required"`
	Monetization string   `json:"monetization" validate:"required"`
	Stage        string   `json:"stage"`
	PublishedAt  string   `json:"published_at" validate:"omitempty,isodate"`
	Tags         []string `json:"tags"`
	Cover        string   `json:"cover" validate:"omitempty,url"`
	Content      string   `json:"content"`
	IsPublished  *bool    `json:"is_published"`
}

type ListFilter struct {
	Locale   string
	Category string
}
