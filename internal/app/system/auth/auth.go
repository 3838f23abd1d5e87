// Package auth carries the authenticated principal through the request
// context. Login, tokens, and session issuance live upstream (the API
// gateway terminates authentication); this service trusts the identity
// headers the gateway injects:
//
//	X-User-Id:   hex ObjectID of the caller
//	X-User-Name: display name
//	X-User-Role: student | teacher | admin
package auth

import (
	"context"
	"net/http"
	"strings"
)

// Principal is the authenticated caller injected into r.Context().
type Principal struct {
	ID   string
	Name string
	Role string
}

type ctxKey string

const principalKey ctxKey = "principal"

// CurrentUser returns the principal and a "found?" flag.
func CurrentUser(r *http.Request) (*Principal, bool) {
	p, ok := r.Context().Value(principalKey).(*Principal)
	return p, ok
}

func withPrincipal(r *http.Request, p *Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), principalKey, p))
}

// LoadPrincipal injects the principal into context when the gateway
// identity headers are present. Requests without them pass through
// unauthenticated; RequireSignedIn rejects those downstream.
func LoadPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-User-Id"))
		if id != "" {
			p := &Principal{
				ID:   id,
				Name: strings.TrimSpace(r.Header.Get("X-User-Name")),
				Role: strings.ToLower(strings.TrimSpace(r.Header.Get("X-User-Role"))),
			}
			r = withPrincipal(r, p)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a principal in context (set by
// LoadPrincipal). Unauthenticated callers get a plain 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the principal holds one of the allowed roles.
// Missing principal yields 401; wrong role yields 403.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := CurrentUser(r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if _, ok := set[strings.ToLower(p.Role)]; !ok {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithTestUser injects a principal directly, bypassing LoadPrincipal.
// Only for use in handler tests.
func WithTestUser(r *http.Request, p *Principal) *http.Request {
	return withPrincipal(r, p)
}
