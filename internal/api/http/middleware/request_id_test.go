package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/skillfolio/skillfolio-web/internal/logging"
)

func newRouter(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		*seen = logging.RequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequestIDMiddleware_PropagatesIncomingHeader(t *testing.T) {
	var seen string
	r := newRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "  rid-42 ")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "rid-42", seen)
	assert.Equal(t, "rid-42", rr.Header().Get(RequestIDHeader))
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var seen string
	r := newRouter(&seen)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, seen, 32)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
}
