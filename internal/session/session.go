package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/nuttaponsrpn/Kiki-POS/internal/domain"
)

// CookieName is the session cookie, JSON-shaped {username, role}
const CookieName = "user"

var (
	ErrNoSession = errors.New("no session")
)

type contextKey string

const sessionKey contextKey = "session"

// Codec reads and writes the session cookie
type Codec struct {
	maxAge time.Duration
}

// NewCodec creates a Codec with the given cookie lifetime in days
func NewCodec(maxAgeDays int) *Codec {
	if maxAgeDays <= 0 {
		maxAgeDays = 7
	}
	return &Codec{maxAge: time.Duration(maxAgeDays) * 24 * time.Hour}
}

// Write sets the session cookie on the response
func (c *Codec) Write(w http.ResponseWriter, session domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(string(payload)),
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read decodes the session cookie from the request
func (c *Codec) Read(r *http.Request) (domain.Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return domain.Session{}, ErrNoSession
	}

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return domain.Session{}, ErrNoSession
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return domain.Session{}, ErrNoSession
	}
	if session.Username == "" {
		return domain.Session{}, ErrNoSession
	}

	return session, nil
}

// Clear expires the session cookie
func (c *Codec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// WithSession attaches the session to the context
func WithSession(ctx context.Context, session domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// FromContext extracts the session placed by the route guard
func FromContext(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionKey).(domain.Session)
	return session, ok
}
