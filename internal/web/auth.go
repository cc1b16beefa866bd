package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillfolio/skillfolio-web/internal/flash"
	"github.com/skillfolio/skillfolio-web/internal/logging"
	"github.com/skillfolio/skillfolio-web/internal/upstream"
)

const msgRegistered = "Registration successful. Please login."

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", loginPage{
		Page: Page{Title: "Login", Alerts: h.pendingNotices(c)},
	})
}

func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	logger := logging.New(ctx)

	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLogin(c, form, flash.Error("Invalid form submission"))
		return
	}

	token, err := h.api.Login(ctx, upstream.Credentials{
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
	})
	if err != nil {
		logger.LogWarnf("login", "login failed: %v", err)
		h.renderLogin(c, form, alertFor(err))
		return
	}

	if err := h.sessions.Save(ctx, c.Writer, c.Request, token); err != nil {
		logger.LogError("login", err)
		h.renderLogin(c, form, flash.Error("Could not start your session. Please try again."))
		return
	}

	h.redirect(c, pathDashboard)
}

func (h *Handler) renderLogin(c *gin.Context, form LoginForm, alert flash.Notice) {
	c.HTML(http.StatusOK, "login.html", loginPage{
		Page:  Page{Title: "Login", Alerts: []flash.Notice{alert}},
		Email: form.Email,
	})
}

func (h *Handler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", registerPage{
		Page: Page{Title: "Register", Alerts: h.pendingNotices(c)},
	})
}

func (h *Handler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderRegister(c, form, flash.Error("Invalid form submission"))
		return
	}

	err := h.api.Register(ctx, upstream.Registration{
		Name:     strings.TrimSpace(form.Name),
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
	})
	if err != nil {
		logging.New(ctx).LogWarnf("register", "registration failed: %v", err)
		h.renderRegister(c, form, alertFor(err))
		return
	}

	flash.Write(c.Writer, flash.Success(msgRegistered), h.secureCookies)
	h.redirect(c, pathLogin)
}

func (h *Handler) renderRegister(c *gin.Context, form RegisterForm, alert flash.Notice) {
	c.HTML(http.StatusOK, "register.html", registerPage{
		Page:  Page{Title: "Register", Alerts: []flash.Notice{alert}},
		Name:  form.Name,
		Email: form.Email,
	})
}

// Logout clears the session token and returns to the login page.
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.sessions.Clear(ctx, c.Writer, c.Request); err != nil {
		logging.New(ctx).LogError("logout", err)
	}
	h.redirect(c, pathLogin)
}
