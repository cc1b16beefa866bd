package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/skillfolio/skillfolio-web/internal/session"
	"github.com/skillfolio/skillfolio-web/internal/upstream"
)

// fakeAPI is an in-process stand-in for the remote profile API. It records
// every call so tests can assert which requests were (not) made.
type fakeAPI struct {
	t        *testing.T
	server   *httptest.Server
	mu       sync.Mutex
	calls    []apiCall
	handlers map[string]http.HandlerFunc
}

type apiCall struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{
		t: t,
		handlers: map[string]http.HandlerFunc{
			"GET /profile":          jsonBody(`{"name":"Ada Lovelace","email":"ada@example.test"}`),
			"GET /profile/skills":   jsonBody(`{"topSkills":["Rust"]}`),
			"GET /profile/projects": jsonBody(`[{"title":"Analytical Engine","description":"Notes","links":["https://example.test/engine"],"skillsUsed":["Math","Go"]}]`),
		},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	key := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
		Body:   string(body),
	})
	h, ok := f.handlers[key]
	f.mu.Unlock()

	if !ok {
		f.t.Errorf("unexpected upstream call: %s", key)
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

func (f *fakeAPI) on(methodPath string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[methodPath] = h
}

func (f *fakeAPI) callsTo(methodPath string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.Method+" "+c.Path == methodPath {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeAPI) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func jsonBody(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func failWith(status int, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(msg))
	}
}

func newTestRouter(t *testing.T, api API, store session.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	New(api, store, false).RegisterRoutes(r)
	return r
}

func newTestApp(t *testing.T) (*gin.Engine, *fakeAPI) {
	t.Helper()
	api := newFakeAPI(t)
	store := session.NewCookieStore(session.CookieOptions{TTL: 7 * 24 * time.Hour})
	return newTestRouter(t, upstream.NewClient(api.server.URL, 0), store), api
}

type reqOpt func(*http.Request)

func withToken(token string) reqOpt {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: session.TokenCookieName, Value: token})
	}
}

func withCookies(cookies []*http.Cookie) reqOpt {
	return func(r *http.Request) {
		for _, c := range cookies {
			if c.MaxAge >= 0 {
				r.AddCookie(c)
			}
		}
	}
}

func asHTMX() reqOpt {
	return func(r *http.Request) { r.Header.Set(htmxRequestHeader, "true") }
}

func do(r *gin.Engine, method, target string, form url.Values, opts ...reqOpt) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, opt := range opts {
		opt(req)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func cookieNamed(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
