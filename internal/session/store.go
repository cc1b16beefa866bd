// Package session persists the upstream session token between browser
// requests.
package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

var ErrNoSession = errors.New("no session token")

// Store keeps the token issued at login. Token returns ErrNoSession when the
// request carries no live session.
type Store interface {
	Token(ctx context.Context, r *http.Request) (string, error)
	Save(ctx context.Context, w http.ResponseWriter, r *http.Request, token string) error
	Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// CookieOptions controls the attributes of the session cookie.
type CookieOptions struct {
	TTL    time.Duration
	Secure bool
}

func readCookie(r *http.Request, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

func writeCookie(w http.ResponseWriter, name, value string, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(opts.TTL.Seconds()),
		Expires:  time.Now().Add(opts.TTL),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, name string, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
