package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/skillfolio/skillfolio-web/internal/logging"
)

// Client handles communication with the remote profile API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client. A zero timeout leaves requests bounded
// only by the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Do sends one JSON request and decodes the JSON response into out.
// token, when non-empty, is sent verbatim as the Authorization header.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any, token string, out any) error {
	logger := logging.New(ctx)
	start := time.Now()

	var reqBody io.Reader
	bodySize := 0
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodySize = len(data)
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	logger.LogDebugf("upstream", "sending method=%s endpoint=%s body_bytes=%d auth=%t", method, endpoint, bodySize, token != "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.LogErrorf("upstream", "method=%s endpoint=%s duration=%s error=%v", method, endpoint, time.Since(start), err)
		return transportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.LogErrorf("upstream", "method=%s endpoint=%s read body: %v", method, endpoint, err)
		return transportError(err)
	}

	duration := time.Since(start)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.LogWarnf("upstream", "method=%s endpoint=%s status=%d duration=%s", method, endpoint, resp.StatusCode, duration)
		return statusError(resp.StatusCode, data)
	}
	logger.LogInfof("upstream", "method=%s endpoint=%s status=%d duration=%s", method, endpoint, resp.StatusCode, duration)

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.LogErrorf("upstream", "method=%s endpoint=%s decode: %v", method, endpoint, err)
		return decodeError(resp.StatusCode, err)
	}
	return nil
}

// Register creates an account. The response body is ignored.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	return c.Do(ctx, http.MethodPost, "/auth/register", reg, "", nil)
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	var resp TokenResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/login", creds, "", &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &Error{Message: "login response did not include a token"}
	}
	return resp.Token, nil
}

// Profile fetches the signed-in user's profile. A null body yields nil.
func (c *Client) Profile(ctx context.Context, token string) (*Profile, error) {
	var p *Profile
	if err := c.Do(ctx, http.MethodGet, "/profile", nil, token, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// Skills fetches the profile's skill list.
func (c *Client) Skills(ctx context.Context, token string) ([]string, error) {
	var resp SkillsResponse
	if err := c.Do(ctx, http.MethodGet, "/profile/skills", nil, token, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.TopSkills), nil
}

// AddSkill appends a skill and returns the authoritative post-mutation list.
// The API may answer with a bare array or a {topSkills} object.
func (c *Client) AddSkill(ctx context.Context, token, skill string) ([]string, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, http.MethodPatch, "/profile/skills", NewSkill{Skill: skill}, token, &raw); err != nil {
		return nil, err
	}
	skills, err := decodeSkillList(raw)
	if err != nil {
		return nil, decodeError(http.StatusOK, err)
	}
	return skills, nil
}

// Projects lists projects, filtered by skill when skill is non-empty.
func (c *Client) Projects(ctx context.Context, token, skill string) ([]Project, error) {
	endpoint := "/profile/projects"
	if skill != "" {
		endpoint += "?" + url.Values{"skill": {skill}}.Encode()
	}
	var projects []Project
	if err := c.Do(ctx, http.MethodGet, endpoint, nil, token, &projects); err != nil {
		return nil, err
	}
	return nonNil(projects), nil
}

// AddProject appends a project and returns the updated project list.
func (c *Client) AddProject(ctx context.Context, token string, p Project) ([]Project, error) {
	p.Links = nonNil(p.Links)
	p.SkillsUsed = nonNil(p.SkillsUsed)
	var projects []Project
	if err := c.Do(ctx, http.MethodPatch, "/profile/projects", p, token, &projects); err != nil {
		return nil, err
	}
	return nonNil(projects), nil
}

func decodeSkillList(raw json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []string{}, nil
	}
	if trimmed[0] == '{' {
		var resp SkillsResponse
		if err := json.Unmarshal(trimmed, &resp); err != nil {
			return nil, err
		}
		return nonNil(resp.TopSkills), nil
	}
	var skills []string
	if err := json.Unmarshal(trimmed, &skills); err != nil {
		return nil, err
	}
	return nonNil(skills), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
