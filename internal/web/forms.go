package web

import (
	"strings"

	"github.com/skillfolio/skillfolio-web/internal/upstream"
)

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type RegisterForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

type SkillForm struct {
	Skill string `form:"skill"`
}

type SearchForm struct {
	Skill string `form:"skill"`
}

// ProjectForm is the add-project draft. Links and SkillsUsed are
// comma-separated text inputs.
type ProjectForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Links       string `form:"links"`
	SkillsUsed  string `form:"skillsUsed"`
}

const errProjectRequired = "Title and description are required"

func (f ProjectForm) Validate() (string, bool) {
	if strings.TrimSpace(f.Title) == "" || strings.TrimSpace(f.Description) == "" {
		return errProjectRequired, false
	}
	return "", true
}

func (f ProjectForm) Project() upstream.Project {
	return upstream.Project{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Links:       splitList(f.Links),
		SkillsUsed:  splitList(f.SkillsUsed),
	}
}

// splitList splits a comma-separated input, trimming entries and dropping
// empty ones.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
