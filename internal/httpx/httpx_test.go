package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestParsePageLimitDefaults(t *testing.T) {
	page, limit, err := ParsePageLimit(url.Values{}, 10, 100)
	if err != nil {
		t.Fatalf("ParsePageLimit error: %v", err)
	}
	if page != 1 || limit != 10 {
		t.Fatalf("unexpected defaults: page=%d limit=%d", page, limit)
	}
}

func TestParsePageLimitClamp(t *testing.T) {
	values := url.Values{"page": {"3"}, "limit": {"500"}}
	page, limit, err := ParsePageLimit(values, 10, 100)
	if err != nil {
		t.Fatalf("ParsePageLimit error: %v", err)
	}
	if page != 3 || limit != 100 {
		t.Fatalf("unexpected values: page=%d limit=%d", page, limit)
	}
}

func TestParsePageLimitInvalid(t *testing.T) {
	if _, _, err := ParsePageLimit(url.Values{"page": {"0"}}, 10, 100); err == nil {
		t.Fatalf("expected error for page=0")
	}
	if _, _, err := ParsePageLimit(url.Values{"limit": {"abc"}}, 10, 100); err == nil {
		t.Fatalf("expected error for non-numeric limit")
	}
}

func TestLocaleFromQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/cases?locale=en", nil)
	if got := Locale(r, []string{"zh", "en"}, "zh"); got != "en" {
		t.Fatalf("expected en, got %q", got)
	}
}

func TestLocaleFromCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/cases", nil)
	r.AddCookie(&http.Cookie{Name: LocaleCookie, Value: "en"})
	if got := Locale(r, []string{"zh", "en"}, "zh"); got != "en" {
		t.Fatalf("expected en, got %q", got)
	}
}

func TestLocaleFallback(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/cases?locale=fr", nil)
	if got := Locale(r, []string{"zh", "en"}, "zh"); got != "zh" {
		t.Fatalf("expected fallback zh, got %q", got)
	}

	r = httptest.NewRequest("GET", "/api/v1/cases", nil)
	if got := Locale(r, []string{"zh", "en"}, "zh"); got != "zh" {
		t.Fatalf("expected fallback zh, got %q", got)
	}
}
