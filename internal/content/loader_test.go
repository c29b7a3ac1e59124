package content

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeCase(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func testContentRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, locale := range []string{"zh", "en"} {
		if err := os.MkdirAll(filepath.Join(root, locale), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	writeCase(t, filepath.Join(root, "zh"), "ai-writer.md", `---
slug: ai-writer
title: AI写作助手
category: SaaS
monetization: Subscription
stage: launched
publishedAt: 2024-01-01
tags:
  - writing
  - productivity
---
这是一个AI写作助手的案例正文。`)

	writeCase(t, filepath.Join(root, "zh"), "chatbot.md", `---
slug: chatbot
title: 客服机器人
category: SaaS
monetization: Ads
publishedAt: 2024-06-01
---
客服机器人案例。`)

	writeCase(t, filepath.Join(root, "en"), "ai-writer.md", `---
slug: ai-writer
title: AI Writing Assistant
category: SaaS
monetization: Subscription
publishedAt: 2024-01-01
---
An AI writing assistant case study.`)

	return root
}

func newTestLoader(t *testing.T, root string) *Loader {
	t.Helper()
	return NewLoader(root, "zh", []string{"zh", "en"}, discardLogger())
}

func TestLoadLocale(t *testing.T) {
	loader := newTestLoader(t, testContentRoot(t))
	items, err := loader.Load(context.Background(), "zh")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestLoadFallsBackForUnknownLocale(t *testing.T) {
	loader := newTestLoader(t, testContentRoot(t))
	items, err := loader.Load(context.Background(), "fr")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected default locale catalog, got %d items", len(items))
	}
	if items[0].Title != "AI写作助手" && items[1].Title != "AI写作助手" {
		t.Fatalf("expected zh records, got %+v", items)
	}
}

func TestLoadFallsBackForMissingLocaleDir(t *testing.T) {
	root := testContentRoot(t)
	if err := os.RemoveAll(filepath.Join(root, "en")); err != nil {
		t.Fatalf("remove dir: %v", err)
	}
	loader := newTestLoader(t, root)
	items, err := loader.Load(context.Background(), "en")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected default locale catalog, got %d items", len(items))
	}
}

func TestLoadFailsForMissingDefaultLocaleDir(t *testing.T) {
	root := t.TempDir()
	loader := newTestLoader(t, root)
	_, err := loader.Load(context.Background(), "zh")
	if !errors.Is(err, ErrSourceUnreadable) {
		t.Fatalf("expected ErrSourceUnreadable, got %v", err)
	}
}

func TestSlugDerivedFromFilename(t *testing.T) {
	root := testContentRoot(t)
	writeCase(t, filepath.Join(root, "zh"), "my-case.md", `---
title: 没有slug的案例
category: Tools
monetization: One-time
---
正文。`)

	loader := newTestLoader(t, root)
	item, err := loader.LoadOne(context.Background(), "zh", "my-case")
	if err != nil {
		t.Fatalf("LoadOne error: %v", err)
	}
	if item.Slug != "my-case" {
		t.Fatalf("expected filename-derived slug, got %q", item.Slug)
	}
}

func TestSummaryIsBoundedPrefixOfBody(t *testing.T) {
	root := testContentRoot(t)
	long := strings.Repeat("多语言正文abc ", 60)
	writeCase(t, filepath.Join(root, "zh"), "long.md", `---
title: 长正文
category: Tools
monetization: Ads
---
`+long)

	loader := newTestLoader(t, root)
	item, err := loader.LoadOne(context.Background(), "zh", "long")
	if err != nil {
		t.Fatalf("LoadOne error: %v", err)
	}
	if got := len([]rune(item.Summary)); got != summaryLimit {
		t.Fatalf("expected %d-rune summary, got %d", summaryLimit, got)
	}
	if !strings.HasPrefix(item.Content, item.Summary) {
		t.Fatalf("summary must be a prefix of content")
	}
}

func TestTagsDefaultToEmptySlice(t *testing.T) {
	loader := newTestLoader(t, testContentRoot(t))
	item, err := loader.LoadOne(context.Background(), "zh", "chatbot")
	if err != nil {
		t.Fatalf("LoadOne error: %v", err)
	}
	if item.Tags == nil {
		t.Fatalf("tags must never be nil")
	}
	if len(item.Tags) != 0 {
		t.Fatalf("expected empty tags, got %v", item.Tags)
	}
}

func TestMalformedFileIsSkipped(t *testing.T) {
	root := testContentRoot(t)
	writeCase(t, filepath.Join(root, "zh"), "broken.md", `---
category: SaaS
monetization: Ads
---
A record with no title is malformed and must be skipped, not guessed.`)

	loader := newTestLoader(t, root)
	items, err := loader.Load(context.Background(), "zh")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	for _, item := range items {
		if item.Slug == "broken" {
			t.Fatalf("malformed record must not be loaded")
		}
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 valid items, got %d", len(items))
	}
}

func TestNonMarkdownFilesIgnored(t *testing.T) {
	root := testContentRoot(t)
	writeCase(t, filepath.Join(root, "zh"), "notes.txt", "not markdown")

	loader := newTestLoader(t, root)
	items, err := loader.Load(context.Background(), "zh")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestLoadOneNotFound(t *testing.T) {
	loader := newTestLoader(t, testContentRoot(t))
	_, err := loader.LoadOne(context.Background(), "zh", "does-not-exist")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUnparseablePublishedAtSortsAsUndated(t *testing.T) {
	root := testContentRoot(t)
	writeCase(t, filepath.Join(root, "zh"), "baddate.md", `---
title: 日期无效
category: Tools
monetization: Ads
publishedAt: not-a-date
---
正文。`)

	loader := newTestLoader(t, root)
	item, err := loader.LoadOne(context.Background(), "zh", "baddate")
	if err != nil {
		t.Fatalf("LoadOne error: %v", err)
	}
	if item.HasPublishedAt() {
		t.Fatalf("unparseable date must yield an undated record")
	}
}
