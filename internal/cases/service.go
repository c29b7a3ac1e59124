package cases

import (
	"context"
	"errors"
	"strings"
	"time"

	"casehub-backend/internal/content"
	"casehub-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound      = errors.New("case not found")
	ErrSlugExists    = errors.New("slug already exists for locale")
	ErrInvalidSlug   = errors.New("invalid slug")
	ErrInvalidLocale = errors.New("invalid locale")
)

type Service struct {
	repo    Repository
	locales []string
}

func NewService(repo Repository, locales []string) *Service {
	return &Service{
		repo:    repo,
		locales: locales,
	}
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (Case, error) {
	locale, err := s.checkLocale(req.Locale)
	if err != nil {
		return Case{}, err
	}
	slug := normalizeSlug(req.Slug, req.Title)
	if slug == "" {
		return Case{}, ErrInvalidSlug
	}

	now := time.Now().UTC()
	item := Case{
		ID:           primitive.NewObjectID().Hex(),
		Locale:       locale,
		Slug:         slug,
		Title:        strings.TrimSpace(req.Title),
		Summary:      strings.TrimSpace(req.Summary),
		Category:     strings.TrimSpace(req.Category),
		Monetization: strings.TrimSpace(req.Monetization),
		Stage:        strings.TrimSpace(req.Stage),
		PublishedAt:  parseDate(req.PublishedAt),
		Tags:         normalizeTags(req.Tags),
		Cover:        strings.TrimSpace(req.Cover),
		Content:      req.Content,
		IsPublished:  req.IsPublished != nil && *req.IsPublished,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Case{}, ErrSlugExists
		}
		return Case{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (Case, error) {
	id = strings.TrimSpace(id)
	locale, err := s.checkLocale(req.Locale)
	if err != nil {
		return Case{}, err
	}
	slug := normalizeSlug(req.Slug, req.Title)
	if slug == "" {
		return Case{}, ErrInvalidSlug
	}

	set := bson.M{
		"locale":       locale,
		"slug":         slug,
		"title":        strings.TrimSpace(req.Title),
		"summary":      strings.TrimSpace(req.Summary),
		"category":     strings.TrimSpace(req.Category),
		"monetization": strings.TrimSpace(req.Monetization),
		"stage":        strings.TrimSpace(req.Stage),
		"published_at": parseDate(req.PublishedAt),
		"tags":         normalizeTags(req.Tags),
		"cover":        strings.TrimSpace(req.Cover),
		"content":      req.Content,
		"is_published": req.IsPublished != nil && *req.IsPublished,
		"updated_at":   time.Now().UTC(),
	}

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Case{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Case{}, ErrSlugExists
		}
		return Case{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) List(ctx context.Context, filter ListFilter, page, limit int64) ([]Case, int64, error) {
	filter.Locale = strings.TrimSpace(filter.Locale)
	filter.Category = strings.TrimSpace(filter.Category)

	skip := (page - 1) * limit
	items, err := s.repo.List(ctx, filter, limit, skip)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// SyncFromContent upserts Markdown records into the datastore, keyed by
// (slug, locale). The direction is one-way and last-write-wins: rows never
// flow back to disk. Synced rows are marked published.
func (s *Service) SyncFromContent(ctx context.Context, locale string, items []content.CaseStudy) (int, error) {
	locale, err := s.checkLocale(locale)
	if err != nil {
		return 0, err
	}

	synced := 0
	now := time.Now().UTC()
	for _, src := range items {
		var publishedAt *time.Time
		if src.HasPublishedAt() {
			t := src.PublishedAt
			publishedAt = &t
		}

		row := Case{
			ID:           primitive.NewObjectID().Hex(),
			Locale:       locale,
			Slug:         src.Slug,
			Title:        src.Title,
			Summary:      src.Summary,
			Category:     src.Category,
			Monetization: src.Monetization,
			Stage:        src.Stage,
			PublishedAt:  publishedAt,
			Tags:         normalizeTags(src.Tags),
			Cover:        src.Cover,
			Content:      src.Content,
			IsPublished:  true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.repo.Upsert(ctx, row); err != nil {
			return synced, err
		}
		synced++
	}
	return synced, nil
}

func (s *Service) checkLocale(locale string) (string, error) {
	locale = strings.TrimSpace(locale)
	for _, configured := range s.locales {
		if configured == locale {
			return locale, nil
		}
	}
	return "", ErrInvalidLocale
}

func normalizeSlug(slug, title string) string {
	raw := strings.TrimSpace(slug)
	if raw == "" {
		raw = strings.TrimSpace(title)
	}
	return utils.Slugify(raw)
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}
