package content

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"casehub-backend/internal/cache"
	"casehub-backend/internal/httpx"
	"casehub-backend/internal/middleware"
	"casehub-backend/internal/search"
	"casehub-backend/internal/transport"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	loader  *Loader
	catalog *Catalog
	index   *search.Index
	cache   cache.Cache
	ttl     time.Duration
	locales []string
	log     *slog.Logger
}

func NewHandler(loader *Loader, catalog *Catalog, index *search.Index, cacheStore cache.Cache, ttl time.Duration, locales []string, log *slog.Logger) *Handler {
	return &Handler{
		loader:  loader,
		catalog: catalog,
		index:   index,
		cache:   cacheStore,
		ttl:     ttl,
		locales: locales,
		log:     log,
	}
}

// List serves the filtered catalog. With no filter parameters the response
// is exactly the unfiltered recency order, and is served from cache when
// possible; any filter bypasses the cache and reads the tree fresh.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	locale := httpx.Locale(r, h.locales, h.loader.DefaultLocale())

	params := Params{
		Search:       r.URL.Query().Get("q"),
		Category:     strings.TrimSpace(r.URL.Query().Get("category")),
		Monetization: strings.TrimSpace(r.URL.Query().Get("monetization")),
		Sort:         ParseSortOrder(r.URL.Query().Get("sort")),
	}
	unfiltered := params == (Params{Sort: SortNewest})

	cacheKey := "cases:" + locale
	if unfiltered {
		if cached, ok, err := h.cache.Get(r.Context(), cacheKey); err == nil && ok {
			log.Info("cases list: cache hit", slog.String("locale", locale))
			transport.WriteCachedJSON(w, http.StatusOK, cached)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.catalog.All(ctx, locale)
	if err != nil {
		log.Error("cases list: content load failed",
			slog.String("locale", locale),
			slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "content source unavailable", nil)
		return
	}

	filtered := Apply(items, params)
	response := map[string]interface{}{
		"items":  stripBodies(filtered),
		"count":  len(filtered),
		"locale": locale,
	}

	if unfiltered {
		if payload, err := json.Marshal(response); err == nil {
			_ = h.cache.Set(r.Context(), cacheKey, payload, h.ttl)
		}
	}

	log.Info("cases list: ok", slog.String("locale", locale), slog.Int("count", len(filtered)))
	transport.WriteJSON(w, http.StatusOK, response)
}

// GetBySlug serves a single case study including its raw Markdown body and
// a GFM-rendered HTML version.
func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	locale := httpx.Locale(r, h.locales, h.loader.DefaultLocale())
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		log.Warn("cases get: missing slug")
		transport.WriteError(w, http.StatusBadRequest, "missing slug", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.loader.LoadOne(ctx, locale, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("cases get: not found", slog.String("slug", slug), slog.String("locale", locale))
			transport.WriteError(w, http.StatusNotFound, "case study not found", nil)
			return
		}
		log.Error("cases get: content load failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "content source unavailable", nil)
		return
	}

	html, err := RenderHTML(item.Content)
	if err != nil {
		log.Error("cases get: render failed", slog.String("slug", slug), slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "render error", nil)
		return
	}

	log.Info("cases get: ok", slog.String("slug", slug), slog.String("locale", locale))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"item":         item,
		"content_html": html,
	})
}

// Categories serves the locale's category vocabulary.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	h.vocabulary(w, r, "categories", h.catalog.Categories)
}

// MonetizationTypes serves the locale's monetization vocabulary.
func (h *Handler) MonetizationTypes(w http.ResponseWriter, r *http.Request) {
	h.vocabulary(w, r, "monetization_types", h.catalog.MonetizationTypes)
}

func (h *Handler) vocabulary(w http.ResponseWriter, r *http.Request, field string, derive func(context.Context, string) ([]string, error)) {
	log := h.logWithRequest(r)
	locale := httpx.Locale(r, h.locales, h.loader.DefaultLocale())

	cacheKey := field + ":" + locale
	if cached, ok, err := h.cache.Get(r.Context(), cacheKey); err == nil && ok {
		log.Info("vocabulary: cache hit", slog.String("field", field), slog.String("locale", locale))
		transport.WriteCachedJSON(w, http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	values, err := derive(ctx, locale)
	if err != nil {
		log.Error("vocabulary: content load failed",
			slog.String("field", field),
			slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "content source unavailable", nil)
		return
	}

	response := map[string]interface{}{field: values, "locale": locale}
	if payload, err := json.Marshal(response); err == nil {
		_ = h.cache.Set(r.Context(), cacheKey, payload, h.ttl)
	}

	log.Info("vocabulary: ok", slog.String("field", field), slog.Int("count", len(values)))
	transport.WriteJSON(w, http.StatusOK, response)
}

// Search serves the prefix-index lookup. The index covers the default
// locale only and results come back in index order, not recency order.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	query := r.URL.Query().Get("q")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.loader.Load(ctx, h.loader.DefaultLocale())
	if err != nil {
		log.Error("cases search: content load failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "content source unavailable", nil)
		return
	}

	bySlug := make(map[string]CaseStudy, len(items))
	for _, item := range items {
		bySlug[item.Slug] = item
	}

	matched := make([]CaseStudy, 0, len(items))
	for _, slug := range h.index.Search(query) {
		if item, ok := bySlug[slug]; ok {
			matched = append(matched, item)
		}
	}

	log.Info("cases search: ok", slog.Int("count", len(matched)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": stripBodies(matched),
		"count": len(matched),
	})
}

// RebuildSearch rebuilds the prefix index from the current content tree.
// Admin-gated; this is the only way the index changes after startup.
func (h *Handler) RebuildSearch(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := h.loader.Load(ctx, h.loader.DefaultLocale())
	if err != nil {
		log.Error("search rebuild: content load failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "content source unavailable", nil)
		return
	}

	h.index.Build(SearchDocuments(items))

	// A rebuild means the tree changed on disk, so cached list and
	// vocabulary responses are stale too.
	for _, locale := range h.locales {
		for _, prefix := range []string{"cases:", "categories:", "monetization_types:"} {
			_ = h.cache.Delete(ctx, prefix+locale)
		}
	}

	log.Info("search rebuild: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "rebuilt",
		"indexed": len(items),
	})
}

// SearchDocuments derives the text blob indexed for each record: title,
// summary, joined tags and category, in that order.
func SearchDocuments(items []CaseStudy) []search.Document {
	docs := make([]search.Document, 0, len(items))
	for _, item := range items {
		text := item.Title + " " + item.Summary + " " + strings.Join(item.Tags, " ") + " " + item.Category
		docs = append(docs, search.Document{Slug: item.Slug, Text: text})
	}
	return docs
}

// stripBodies drops the full Markdown body from list responses; the body is
// only served on the detail endpoint.
func stripBodies(items []CaseStudy) []CaseStudy {
	out := make([]CaseStudy, 0, len(items))
	for _, item := range items {
		item.Content = ""
		out = append(out, item)
	}
	return out
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
