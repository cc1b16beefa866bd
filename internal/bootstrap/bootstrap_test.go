package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillfolio/skillfolio-web/internal/api/http/middleware"
	"github.com/skillfolio/skillfolio-web/internal/session"
	"github.com/skillfolio/skillfolio-web/internal/upstream"
)

func testDeps(origins ...string) RouterDeps {
	return RouterDeps{
		ServiceName:        "skillfolio-web",
		Version:            "test",
		API:                upstream.NewClient("http://127.0.0.1:0", time.Second),
		Sessions:           session.NewCookieStore(session.CookieOptions{TTL: time.Hour}),
		CORSAllowedOrigins: origins,
	}
}

func TestBuildRouter_MountsViewsAndHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r, err := BuildRouter(testDeps())
	require.NoError(t, err)

	health := httptest.NewRecorder()
	r.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
	assert.NotEmpty(t, health.Header().Get(middleware.RequestIDHeader))

	login := httptest.NewRecorder()
	r.ServeHTTP(login, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, login.Code)
	assert.Contains(t, login.Body.String(), "<h2>Login</h2>")

	dash := httptest.NewRecorder()
	r.ServeHTTP(dash, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusSeeOther, dash.Code)
	assert.Equal(t, "/login", dash.Header().Get("Location"))
}

func TestBuildRouter_CORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r, err := BuildRouter(testDeps("https://app.example.test"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "https://app.example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "https://app.example.test", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestBuildRouter_CORSWildcardDropsCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r, err := BuildRouter(testDeps("*"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "https://anywhere.example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := OpenRedis(context.Background(), RedisOptions{Addr: addr})
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = OpenRedis(context.Background(), RedisOptions{Addr: addr, PingTO: 200 * time.Millisecond})
	assert.Error(t, err)

	_, err = OpenRedis(context.Background(), RedisOptions{})
	assert.Error(t, err)
}

func TestSetGinMode(t *testing.T) {
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	SetGinMode("production")
	assert.Equal(t, gin.ReleaseMode, gin.Mode())

	SetGinMode("test")
	assert.Equal(t, gin.TestMode, gin.Mode())
}
