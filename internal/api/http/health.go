package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Sessions  string    `json:"sessions,omitempty"`
}

// Pinger is satisfied by the session backend when it has one
// (a *redis.Client wrapped by PingFunc).
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	serviceName string
	version     string
	sessions    Pinger
}

// NewHealthHandler builds the handler; sessions may be nil when the cookie
// session store is in use.
func NewHealthHandler(serviceName, version string, sessions Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		sessions:    sessions,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	sessionStatus := "cookie"
	code := http.StatusOK
	if h.sessions != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.sessions.Ping(pingCtx); err != nil {
			sessionStatus = "down"
			status = "degraded"
			code = http.StatusServiceUnavailable
		} else {
			sessionStatus = "up"
		}
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Sessions:  sessionStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
