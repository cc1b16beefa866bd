package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillfolio/skillfolio-web/internal/flash"
	"github.com/skillfolio/skillfolio-web/internal/logging"
	"github.com/skillfolio/skillfolio-web/internal/session"
	"github.com/skillfolio/skillfolio-web/internal/upstream"
)

const (
	pathDashboard = "/"
	pathLogin     = "/login"
	pathRegister  = "/register"

	htmxRequestHeader  = "HX-Request"
	htmxRedirectHeader = "HX-Redirect"
)

// API is the slice of the remote profile API the views call.
type API interface {
	Register(ctx context.Context, reg upstream.Registration) error
	Login(ctx context.Context, creds upstream.Credentials) (string, error)
	Profile(ctx context.Context, token string) (*upstream.Profile, error)
	Skills(ctx context.Context, token string) ([]string, error)
	AddSkill(ctx context.Context, token, skill string) ([]string, error)
	Projects(ctx context.Context, token, skill string) ([]upstream.Project, error)
	AddProject(ctx context.Context, token string, p upstream.Project) ([]upstream.Project, error)
}

type Handler struct {
	api           API
	sessions      session.Store
	secureCookies bool
}

func New(api API, sessions session.Store, secureCookies bool) *Handler {
	return &Handler{
		api:           api,
		sessions:      sessions,
		secureCookies: secureCookies,
	}
}

// RegisterRoutes mounts the view and form-action routes. There is no router-level
// auth guard; the dashboard routes check the session themselves.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET(pathDashboard, h.Dashboard)
	r.GET(pathLogin, h.LoginPage)
	r.POST(pathLogin, h.Login)
	r.GET(pathRegister, h.RegisterPage)
	r.POST(pathRegister, h.Register)
	r.POST("/logout", h.Logout)

	r.POST("/skills", h.AddSkill)
	r.GET("/projects", h.SearchProjects)
	r.POST("/projects", h.AddProject)
}

func isHTMX(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader(htmxRequestHeader), "true")
}

// redirect navigates the browser. HTMX requests get an HX-Redirect header so
// the target page replaces the whole document instead of a fragment.
func (h *Handler) redirect(c *gin.Context, location string) {
	if isHTMX(c) {
		c.Header(htmxRedirectHeader, location)
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, location)
}

// requireToken returns the session token, or redirects to the login page
// and returns false when there is none.
func (h *Handler) requireToken(c *gin.Context) (string, bool) {
	token, err := h.sessions.Token(c.Request.Context(), c.Request)
	if errors.Is(err, session.ErrNoSession) {
		h.redirect(c, pathLogin)
		return "", false
	}
	if err != nil {
		logging.New(c.Request.Context()).LogError("session_lookup", err)
		h.renderError(c, http.StatusInternalServerError, "Could not read your session. Please try again.")
		return "", false
	}
	return token, true
}

func (h *Handler) pendingNotices(c *gin.Context) []flash.Notice {
	notice, ok := flash.ReadAndClear(c.Writer, c.Request, h.secureCookies)
	if !ok {
		return nil
	}
	return []flash.Notice{notice}
}

func (h *Handler) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", errorPage{
		Page:    Page{Title: "Error"},
		Message: message,
	})
}

// alertFor converts a failed call into the notice shown to the user.
func alertFor(err error) flash.Notice {
	return flash.Error(upstream.Message(err))
}
