package upstream

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register request body.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// Profile is read-only from the dashboard's perspective.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SkillsResponse wraps the skill list returned by GET /profile/skills.
type SkillsResponse struct {
	TopSkills []string `json:"topSkills"`
}

// NewSkill is the PATCH /profile/skills request body.
type NewSkill struct {
	Skill string `json:"skill"`
}

// Project is a user-authored record on the profile.
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Links       []string `json:"links"`
	SkillsUsed  []string `json:"skillsUsed"`
}
