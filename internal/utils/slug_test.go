package utils

import "testing"

func TestSlugify(t *testing.T) {
	if got := Slugify("AI Writing Assistant"); got != "ai-writing-assistant" {
		t.Fatalf("unexpected slug: %q", got)
	}
	if got := Slugify("  SaaS & Ads / 2024  "); got != "saas-and-ads-2024" {
		t.Fatalf("unexpected slug: %q", got)
	}
	if got := Slugify("It's Done"); got != "its-done" {
		t.Fatalf("unexpected slug: %q", got)
	}
	if got := Slugify("---"); got != "" {
		t.Fatalf("expected empty slug, got %q", got)
	}
}

func TestIsSlug(t *testing.T) {
	if !IsSlug("my-case") {
		t.Fatalf("expected my-case to be a valid slug")
	}
	if IsSlug("My Case") {
		t.Fatalf("expected My Case to be rejected")
	}
	if IsSlug("") {
		t.Fatalf("expected empty string to be rejected")
	}
}
