package session

import (
	"context"
	"net/http"
	"strings"
)

// TokenCookieName holds the raw token when the cookie store is in use.
const TokenCookieName = "token"

// CookieStore keeps the token itself in a browser cookie.
type CookieStore struct {
	opts CookieOptions
}

func NewCookieStore(opts CookieOptions) *CookieStore {
	return &CookieStore{opts: opts}
}

func (s *CookieStore) Token(_ context.Context, r *http.Request) (string, error) {
	token, ok := readCookie(r, TokenCookieName)
	if !ok {
		return "", ErrNoSession
	}
	return token, nil
}

func (s *CookieStore) Save(_ context.Context, w http.ResponseWriter, _ *http.Request, token string) error {
	writeCookie(w, TokenCookieName, strings.TrimSpace(token), s.opts)
	return nil
}

func (s *CookieStore) Clear(_ context.Context, w http.ResponseWriter, _ *http.Request) error {
	clearCookie(w, TokenCookieName, s.opts)
	return nil
}
