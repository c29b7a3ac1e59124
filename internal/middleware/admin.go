package middleware

import (
	"net/http"

	"casehub-backend/internal/auth"
	"casehub-backend/internal/transport"
)

// AccessCookie holds the short-lived admin JWT.
const AccessCookie = "casehub_access"

// AdminAuth admits requests that carry the static API key, or a valid admin
// access cookie whose email is still on the allow-list. isAdminEmail may be
// nil when no allow-list is configured, in which case any admin token passes.
func AdminAuth(adminKey string, manager *auth.Manager, isAdminEmail func(string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" && manager == nil {
				transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
				return
			}

			if adminKey != "" && r.Header.Get("X-Admin-Key") == adminKey {
				next.ServeHTTP(w, r)
				return
			}

			if manager != nil {
				cookie, err := r.Cookie(AccessCookie)
				if err == nil && cookie.Value != "" {
					claims, err := manager.Parse(cookie.Value)
					if err == nil && claims.Role == "admin" {
						if isAdminEmail == nil || isAdminEmail(claims.Email) {
							next.ServeHTTP(w, r)
							return
						}
					}
				}
			}

			transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		})
	}
}
