package middleware

import (
	"net/http"
	"strings"

	"github.com/nuttaponsrpn/Kiki-POS/internal/domain"
	"github.com/nuttaponsrpn/Kiki-POS/internal/session"

	"go.uber.org/zap"
)

// restrictedPrefixes are admin-only page sections
var restrictedPrefixes = []string{"/products", "/dashboard"}

// RouteGuard gates page navigation by session state:
// unauthenticated requests to anything but /login redirect to /login,
// authenticated requests to /login redirect home, and user-role requests to
// the restricted prefixes redirect home.
func RouteGuard(codec *session.Codec, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := codec.Read(r)

			if err != nil {
				if r.URL.Path != "/login" {
					http.Redirect(w, r, "/login", http.StatusFound)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if r.URL.Path == "/login" {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			if sess.Role == domain.RoleUser {
				for _, prefix := range restrictedPrefixes {
					if strings.HasPrefix(r.URL.Path, prefix) {
						logger.Debug("Restricted section denied",
							zap.String("username", sess.Username),
							zap.String("path", r.URL.Path),
						)
						http.Redirect(w, r, "/", http.StatusFound)
						return
					}
				}
			}

			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
		})
	}
}

// RequireSession guards API routes: a missing or malformed session cookie
// gets a 401 instead of a redirect
func RequireSession(codec *session.Codec, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := codec.Read(r)
			if err != nil {
				logger.Debug("Missing session cookie", zap.String("path", r.URL.Path))
				RespondWithError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
		})
	}
}

// RequireAdmin ensures the session role is admin
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := session.FromContext(r.Context())
			if !ok {
				logger.Warn("Session not found in context")
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			if sess.Role != domain.RoleAdmin {
				logger.Warn("Non-admin user attempted to access admin endpoint",
					zap.String("username", sess.Username),
					zap.String("role", string(sess.Role)),
				)
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
