package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nuttaponsrpn/Kiki-POS/internal/domain"
	"github.com/nuttaponsrpn/Kiki-POS/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sessionRequest(t *testing.T, codec *session.Codec, path string, sess *domain.Session) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sess != nil {
		rec := httptest.NewRecorder()
		require.NoError(t, codec.Write(rec, *sess))
		req.AddCookie(rec.Result().Cookies()[0])
	}
	return req
}

func TestRouteGuard(t *testing.T) {
	codec := session.NewCodec(7)
	logger := zap.NewNop()

	admin := &domain.Session{Username: "kikiadmin", Role: domain.RoleAdmin}
	user := &domain.Session{Username: "kikishop", Role: domain.RoleUser}

	tests := []struct {
		name         string
		path         string
		sess         *domain.Session
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "unauthenticated page redirects to login",
			path:         "/dashboard",
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:       "unauthenticated login page passes",
			path:       "/login",
			wantStatus: http.StatusOK,
		},
		{
			name:         "authenticated login page redirects home",
			path:         "/login",
			sess:         user,
			wantStatus:   http.StatusFound,
			wantLocation: "/",
		},
		{
			name:       "admin reaches restricted section",
			path:       "/dashboard",
			sess:       admin,
			wantStatus: http.StatusOK,
		},
		{
			name:         "user redirected off dashboard",
			path:         "/dashboard",
			sess:         user,
			wantStatus:   http.StatusFound,
			wantLocation: "/",
		},
		{
			name:         "user redirected off products subpage",
			path:         "/products/new",
			sess:         user,
			wantStatus:   http.StatusFound,
			wantLocation: "/",
		},
		{
			name:       "user reaches home",
			path:       "/",
			sess:       user,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSession *domain.Session
			handler := RouteGuard(codec, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if sess, ok := session.FromContext(r.Context()); ok {
					gotSession = &sess
				}
				w.WriteHeader(http.StatusOK)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, sessionRequest(t, codec, tt.path, tt.sess))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
			if tt.wantStatus == http.StatusOK && tt.sess != nil {
				require.NotNil(t, gotSession)
				assert.Equal(t, tt.sess.Username, gotSession.Username)
			}
		})
	}
}

func TestRequireSession(t *testing.T) {
	codec := session.NewCodec(7)
	handler := RequireSession(codec, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, sessionRequest(t, codec, "/api/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication required")

	rec = httptest.NewRecorder()
	sess := &domain.Session{Username: "kikishop", Role: domain.RoleUser}
	handler.ServeHTTP(rec, sessionRequest(t, codec, "/api/orders", sess))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	codec := session.NewCodec(7)
	requireSession := RequireSession(codec, zap.NewNop())
	requireAdmin := RequireAdmin(zap.NewNop())

	handler := requireSession(requireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	rec := httptest.NewRecorder()
	user := &domain.Session{Username: "kikishop", Role: domain.RoleUser}
	handler.ServeHTTP(rec, sessionRequest(t, codec, "/api/products", user))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient permissions")

	rec = httptest.NewRecorder()
	admin := &domain.Session{Username: "kikiadmin", Role: domain.RoleAdmin}
	handler.ServeHTTP(rec, sessionRequest(t, codec, "/api/products", admin))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_NoSessionInContext(t *testing.T) {
	handler := RequireAdmin(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
