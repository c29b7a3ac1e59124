package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

const (
	// summaryLimit caps the derived summary at a fixed number of runes. The
	// cut is a raw prefix of the body, not word-aware.
	summaryLimit = 200

	fileExt = ".md"

	// readRetries bounds re-reads of a file after a transient I/O failure.
	readRetries  = 2
	retryBackoff = 50 * time.Millisecond
)

var (
	ErrNotFound         = errors.New("case study not found")
	ErrSourceUnreadable = errors.New("content source unreadable")
	ErrMalformedRecord  = errors.New("malformed case study record")
)

// Loader reads per-locale Markdown case files from a directory tree of the
// form <root>/<locale>/<slug>.md. Every Load reads the tree fresh; nothing
// is cached between calls.
type Loader struct {
	root          string
	defaultLocale string
	locales       []string
	log           *slog.Logger
}

func NewLoader(root, defaultLocale string, locales []string, log *slog.Logger) *Loader {
	return &Loader{
		root:          root,
		defaultLocale: defaultLocale,
		locales:       locales,
		log:           log,
	}
}

// Load returns all case studies for a locale, in directory order. An
// unconfigured locale, or a configured locale whose directory is missing,
// falls back to the default locale. Files that cannot be read or parsed are
// skipped with a warning; only a missing default-locale directory fails the
// whole load.
func (l *Loader) Load(ctx context.Context, locale string) ([]CaseStudy, error) {
	locale = l.normalizeLocale(locale)

	entries, err := os.ReadDir(filepath.Join(l.root, locale))
	if err != nil && locale != l.defaultLocale {
		l.log.Warn("content: locale directory unreadable, falling back",
			slog.String("locale", locale),
			slog.String("fallback", l.defaultLocale))
		locale = l.defaultLocale
		entries, err = os.ReadDir(filepath.Join(l.root, locale))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: locale %q: %v", ErrSourceUnreadable, locale, err)
	}

	items := make([]CaseStudy, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(name), fileExt) {
			continue
		}

		path := filepath.Join(l.root, locale, name)
		data, err := readFileRetry(ctx, path)
		if err != nil {
			l.log.Warn("content: skipping unreadable file",
				slog.String("path", path),
				slog.String("error", err.Error()))
			continue
		}

		item, err := parseCase(name, data)
		if err != nil {
			l.log.Warn("content: skipping malformed file",
				slog.String("path", path),
				slog.String("error", err.Error()))
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

// LoadOne returns the case study with the given slug, or ErrNotFound.
func (l *Loader) LoadOne(ctx context.Context, locale, slug string) (CaseStudy, error) {
	items, err := l.Load(ctx, locale)
	if err != nil {
		return CaseStudy{}, err
	}
	for _, item := range items {
		if item.Slug == slug {
			return item, nil
		}
	}
	return CaseStudy{}, ErrNotFound
}

// DefaultLocale is the locale used for fallback and for the search index.
func (l *Loader) DefaultLocale() string {
	return l.defaultLocale
}

func (l *Loader) normalizeLocale(locale string) string {
	for _, configured := range l.locales {
		if configured == locale {
			return locale
		}
	}
	return l.defaultLocale
}

func parseCase(filename string, data []byte) (CaseStudy, error) {
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return CaseStudy{}, fmt.Errorf("%w: front matter: %v", ErrMalformedRecord, err)
	}
	if strings.TrimSpace(meta.Title) == "" {
		// A missing title is never substituted with a guess.
		return CaseStudy{}, fmt.Errorf("%w: missing title", ErrMalformedRecord)
	}

	slug := strings.TrimSpace(meta.Slug)
	if slug == "" {
		slug = strings.TrimSuffix(filename, filepath.Ext(filename))
	}

	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}

	content := string(body)
	return CaseStudy{
		Slug:         slug,
		Title:        meta.Title,
		Summary:      firstRunes(content, summaryLimit),
		Category:     meta.Category,
		Monetization: meta.Monetization,
		Stage:        meta.Stage,
		PublishedAt:  parsePublishedAt(meta.PublishedAt),
		Tags:         tags,
		Cover:        meta.Cover,
		Content:      content,
	}, nil
}

// parsePublishedAt accepts ISO-8601 dates with or without a time component.
// Anything unparseable yields the zero time, which sorts last.
func parsePublishedAt(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func readFileRetry(ctx context.Context, path string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= readRetries; attempt++ {
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if os.IsNotExist(err) {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBackoff):
		}
	}
	return nil, lastErr
}
