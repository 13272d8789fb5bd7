package httpapi

import (
	"log"
	"net/http"

	"brightsteps/backend/internal/httpctx"
	"brightsteps/backend/internal/store"
)

// RequireSession resolves the bearer token against the issued session
// token and attaches the store's current user to the request context.
// A token outliving the store session (e.g. after a backend sign-out)
// is rejected here.
func RequireSession(s *store.Store, session *sessionToken) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				http.Error(w, "missing token", http.StatusUnauthorized)
				return
			}
			if !session.Matches(token) {
				log.Printf("[auth] stale or unknown token for %s %s", r.Method, r.URL.Path)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			user := s.CurrentUser()
			if user == nil {
				log.Printf("[auth] token valid but no signed-in session")
				http.Error(w, "session expired", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(httpctx.WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(value string) string {
	const prefix = "Bearer "
	if len(value) <= len(prefix) || value[:len(prefix)] != prefix {
		return ""
	}
	return value[len(prefix):]
}
