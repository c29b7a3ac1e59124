package search

import (
	"reflect"
	"testing"
)

func buildTestIndex() *Index {
	idx := New()
	idx.Build([]Document{
		{Slug: "ai-writer", Text: "AI Writing Assistant subscription saas productivity"},
		{Slug: "chatbot-ads", Text: "Support Chatbot advertising ads saas"},
		{Slug: "image-api", Text: "Image Generation API usage-based developer-tools"},
	})
	return idx
}

func TestSearchExactToken(t *testing.T) {
	idx := buildTestIndex()
	got := idx.Search("advertising")
	if !reflect.DeepEqual(got, []string{"chatbot-ads"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestSearchPrefix(t *testing.T) {
	idx := buildTestIndex()
	got := idx.Search("sub")
	if !reflect.DeepEqual(got, []string{"ai-writer"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestSearchSharedTokenKeepsIndexOrder(t *testing.T) {
	idx := buildTestIndex()
	got := idx.Search("saas")
	if !reflect.DeepEqual(got, []string{"ai-writer", "chatbot-ads"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestSearchMultiTokenIntersects(t *testing.T) {
	idx := buildTestIndex()
	got := idx.Search("saas ads")
	if !reflect.DeepEqual(got, []string{"chatbot-ads"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestSearchBlankReturnsAll(t *testing.T) {
	idx := buildTestIndex()
	got := idx.Search("   ")
	if !reflect.DeepEqual(got, []string{"ai-writer", "chatbot-ads", "image-api"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestSearchMiss(t *testing.T) {
	idx := buildTestIndex()
	if got := idx.Search("zzz"); len(got) != 0 {
		t.Fatalf("expected no results, got %v", got)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	idx := buildTestIndex()
	got := idx.Search("IMAGE")
	if !reflect.DeepEqual(got, []string{"image-api"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestRebuildReplacesContents(t *testing.T) {
	idx := buildTestIndex()
	idx.Build([]Document{{Slug: "fresh", Text: "fresh entry"}})
	if idx.Len() != 1 {
		t.Fatalf("expected 1 document after rebuild, got %d", idx.Len())
	}
	if got := idx.Search("saas"); len(got) != 0 {
		t.Fatalf("expected stale tokens to be gone, got %v", got)
	}
	if got := idx.Search("fresh"); !reflect.DeepEqual(got, []string{"fresh"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}
