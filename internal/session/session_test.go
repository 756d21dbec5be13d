package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nuttaponsrpn/Kiki-POS/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_WriteReadRoundtrip(t *testing.T) {
	codec := NewCodec(7)

	rec := httptest.NewRecorder()
	err := codec.Write(rec, domain.Session{Username: "kikiadmin", Role: domain.RoleAdmin})
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	cookie := cookies[0]
	assert.Equal(t, "user", cookie.Name)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 7*24*60*60, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	session, err := codec.Read(req)
	require.NoError(t, err)
	assert.Equal(t, "kikiadmin", session.Username)
	assert.Equal(t, domain.RoleAdmin, session.Role)
}

func TestCodec_ReadMissingCookie(t *testing.T) {
	codec := NewCodec(7)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := codec.Read(req)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestCodec_ReadMalformedCookie(t *testing.T) {
	codec := NewCodec(7)

	tests := []struct {
		name  string
		value string
	}{
		{"not json", "plain-text"},
		{"bad escape", "%zz"},
		{"empty username", "%7B%22username%22%3A%22%22%2C%22role%22%3A%22admin%22%7D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.value})

			_, err := codec.Read(req)
			assert.ErrorIs(t, err, ErrNoSession)
		})
	}
}

func TestCodec_Clear(t *testing.T) {
	codec := NewCodec(7)

	rec := httptest.NewRecorder()
	codec.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "user", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

func TestNewCodec_DefaultLifetime(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, NewCodec(0).Write(rec, domain.Session{Username: "kikishop", Role: domain.RoleUser}))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, 7*24*60*60, cookies[0].MaxAge)
}

func TestSessionContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithSession(context.Background(), domain.Session{Username: "kikishop", Role: domain.RoleUser})
	session, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "kikishop", session.Username)
}
