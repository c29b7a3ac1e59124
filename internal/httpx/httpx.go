package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LocaleCookie carries the visitor's language preference; it is the only
// per-request state the content endpoints read besides query parameters.
const LocaleCookie = "locale"

func DecodeJSON(body io.Reader, v interface{}) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

func ValidationDetails(errs validator.ValidationErrors) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	details := make(map[string]string, len(errs))
	for _, err := range errs {
		details[err.Field()] = err.Tag()
	}
	return details
}

// ParsePageLimit reads 1-based `page` and `limit` query params as used by the
// admin list endpoints, clamping limit to maxLimit.
func ParsePageLimit(values url.Values, defaultLimit, maxLimit int64) (int64, int64, error) {
	page := int64(1)
	limit := defaultLimit

	rawPage := strings.TrimSpace(values.Get("page"))
	if rawPage != "" {
		parsed, err := strconv.ParseInt(rawPage, 10, 64)
		if err != nil || parsed <= 0 {
			return 0, 0, errors.New("invalid page")
		}
		page = parsed
	}

	rawLimit := strings.TrimSpace(values.Get("limit"))
	if rawLimit != "" {
		parsed, err := strconv.ParseInt(rawLimit, 10, 64)
		if err != nil || parsed <= 0 {
			return 0, 0, errors.New("invalid limit")
		}
		limit = parsed
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit, nil
}

// Locale resolves the request locale: explicit `locale` query param first,
// then the preference cookie. Anything unrecognized falls back to the
// default, so handlers always pass a configured locale downstream.
func Locale(r *http.Request, supported []string, fallback string) string {
	candidate := strings.TrimSpace(r.URL.Query().Get("locale"))
	if candidate == "" {
		if cookie, err := r.Cookie(LocaleCookie); err == nil {
			candidate = strings.TrimSpace(cookie.Value)
		}
	}
	for _, locale := range supported {
		if locale == candidate {
			return candidate
		}
	}
	return fallback
}
