// Package flash carries one-time user notices across redirects.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

// CookieName is the cookie used for one-time notices.
const CookieName = "flash"

// Kind classifies notice presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notice is one message shown to the user on the next render.
type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func Success(message string) Notice {
	return Notice{Kind: KindSuccess, Message: message}
}

func Error(message string) Notice {
	return Notice{Kind: KindError, Message: message}
}

// Write stores a notice cookie for the next page render.
func Write(w http.ResponseWriter, notice Notice, secure bool) {
	if w == nil {
		return
	}
	normalized, ok := normalize(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear returns the pending notice, if any, and expires the cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request, secure bool) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return Notice{}, false
	}
	if w != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
	return decode(cookie.Value)
}

func decode(raw string) (Notice, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Notice{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	return normalize(notice)
}

func normalize(notice Notice) (Notice, bool) {
	notice.Message = strings.TrimSpace(notice.Message)
	if notice.Message == "" {
		return Notice{}, false
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case KindSuccess, KindError:
		return notice, true
	default:
		return Notice{}, false
	}
}
