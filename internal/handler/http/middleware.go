package http

import (
	"net/http"

	"github.com/vasiliy-maslov/shop-service/internal/session"
)

// RequireAuth gates the catalog and cart routes: an anonymous session is
// redirected to the login entry point and the wrapped handler never runs.
func RequireAuth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessions.Get(w, r)
			if !sess.Authenticated() {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
