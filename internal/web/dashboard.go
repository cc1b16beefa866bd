package web

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/skillfolio/skillfolio-web/internal/flash"
	"github.com/skillfolio/skillfolio-web/internal/logging"
	"github.com/skillfolio/skillfolio-web/internal/upstream"
)

const (
	StatusReady = "ready"
	StatusEmpty = "empty"
)

const (
	msgSkillAdded   = "Skill added."
	msgProjectAdded = "Project added."
)

// DashboardState is the view model for one dashboard render. Each slice
// reflects the last successful upstream response for it.
type DashboardState struct {
	Page
	Status      string
	Profile     *upstream.Profile
	Skills      []string
	Projects    []upstream.Project
	SearchSkill string
	NewSkill    string
	NewProject  ProjectForm
	// Fragment is set when only one section is rendered for an HTMX swap.
	Fragment bool
}

// load fetches the profile, skills and projects concurrently. The fetches are
// independent: a failure in one adds an alert and leaves the others alone.
func (h *Handler) load(ctx context.Context, token string, state *DashboardState) {
	var wg sync.WaitGroup
	var profileErr, skillsErr, projectsErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		state.Profile, profileErr = h.api.Profile(ctx, token)
	}()
	go func() {
		defer wg.Done()
		state.Skills, skillsErr = h.api.Skills(ctx, token)
	}()
	go func() {
		defer wg.Done()
		state.Projects, projectsErr = h.api.Projects(ctx, token, state.SearchSkill)
	}()
	wg.Wait()

	logger := logging.New(ctx)
	for _, r := range []struct {
		op  string
		err error
	}{
		{"fetch_profile", profileErr},
		{"fetch_skills", skillsErr},
		{"fetch_projects", projectsErr},
	} {
		if r.err != nil {
			logger.LogWarnf(r.op, "%v", r.err)
			state.Alerts = append(state.Alerts, alertFor(r.err))
		}
	}

	state.Status = StatusReady
	if state.Profile == nil {
		state.Status = StatusEmpty
	}
}

func (h *Handler) renderDashboard(c *gin.Context, state *DashboardState) {
	state.Title = "Dashboard"
	c.HTML(http.StatusOK, "dashboard.html", state)
}

// Dashboard renders the profile page. Without a session it redirects to
// the login page before any upstream call.
func (h *Handler) Dashboard(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	state := &DashboardState{
		Page:        Page{Alerts: h.pendingNotices(c)},
		SearchSkill: strings.TrimSpace(c.Query("skill")),
	}
	h.load(c.Request.Context(), token, state)
	h.renderDashboard(c, state)
}

// AddSkill appends a skill and replaces the skill list with the server's
// response. An empty input is a no-op.
func (h *Handler) AddSkill(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var form SkillForm
	_ = c.ShouldBind(&form)
	skill := strings.TrimSpace(form.Skill)
	if skill == "" {
		if isHTMX(c) {
			c.Status(http.StatusNoContent)
			return
		}
		h.redirect(c, pathDashboard)
		return
	}

	skills, err := h.api.AddSkill(ctx, token, skill)
	if err != nil {
		logging.New(ctx).LogWarnf("add_skill", "%v", err)
		h.renderFailure(c, token, err, func(s *DashboardState) { s.NewSkill = form.Skill })
		return
	}

	if !isHTMX(c) {
		h.redirectWithNotice(c, flash.Success(msgSkillAdded))
		return
	}
	c.HTML(http.StatusOK, "skills", &DashboardState{Skills: skills, Fragment: true})
}

// AddProject validates the draft, submits it, and replaces the project list
// with the server's response.
func (h *Handler) AddProject(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var form ProjectForm
	_ = c.ShouldBind(&form)
	keepDraft := func(s *DashboardState) { s.NewProject = form }

	if msg, valid := form.Validate(); !valid {
		h.renderFailure(c, token, nil, keepDraft, flash.Error(msg))
		return
	}

	projects, err := h.api.AddProject(ctx, token, form.Project())
	if err != nil {
		logging.New(ctx).LogWarnf("add_project", "%v", err)
		h.renderFailure(c, token, err, keepDraft)
		return
	}

	if !isHTMX(c) {
		h.redirectWithNotice(c, flash.Success(msgProjectAdded))
		return
	}
	c.HTML(http.StatusOK, "projects", &DashboardState{Projects: projects, Fragment: true})
}

// SearchProjects replaces the project list with the projects matching the
// skill. An empty term resets to the unfiltered list.
func (h *Handler) SearchProjects(c *gin.Context) {
	var form SearchForm
	_ = c.ShouldBindQuery(&form)
	skill := strings.TrimSpace(form.Skill)

	if !isHTMX(c) {
		target := pathDashboard
		if skill != "" {
			target += "?" + url.Values{"skill": {skill}}.Encode()
		}
		c.Redirect(http.StatusSeeOther, target)
		return
	}

	token, ok := h.requireToken(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	projects, err := h.api.Projects(ctx, token, skill)
	if err != nil {
		logging.New(ctx).LogWarnf("search_projects", "%v", err)
		h.renderAlerts(c, alertFor(err))
		return
	}

	c.HTML(http.StatusOK, "projects", &DashboardState{
		Projects:    projects,
		SearchSkill: skill,
		Fragment:    true,
	})
}

// renderFailure reports a failed or rejected mutation without touching the
// displayed state. HTMX requests only get the alert, retargeted at the alert
// area; full-page requests re-render the dashboard with the draft preserved.
func (h *Handler) renderFailure(c *gin.Context, token string, err error, keep func(*DashboardState), extra ...flash.Notice) {
	alerts := extra
	if err != nil {
		alerts = append(alerts, alertFor(err))
	}

	if isHTMX(c) {
		h.renderAlerts(c, alerts...)
		return
	}

	state := &DashboardState{}
	state.Alerts = alerts
	keep(state)
	h.load(c.Request.Context(), token, state)
	h.renderDashboard(c, state)
}

// redirectWithNotice sends a plain form post back to the dashboard so a
// reload does not resubmit it. The fresh page load reads the updated lists.
func (h *Handler) redirectWithNotice(c *gin.Context, notice flash.Notice) {
	flash.Write(c.Writer, notice, h.secureCookies)
	c.Redirect(http.StatusSeeOther, pathDashboard)
}

func (h *Handler) renderAlerts(c *gin.Context, alerts ...flash.Notice) {
	c.Header("HX-Retarget", "#alerts")
	c.Header("HX-Reswap", "innerHTML")
	c.HTML(http.StatusOK, "alerts", alerts)
}
