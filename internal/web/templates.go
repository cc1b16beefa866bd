package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/skillfolio/skillfolio-web/internal/flash"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoadTemplates parses the embedded page and fragment templates for use
// with gin's SetHTMLTemplate.
func LoadTemplates() (*template.Template, error) {
	tmpl, err := template.New("web").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Page is the data every full-page template reads.
type Page struct {
	Title  string
	Alerts []flash.Notice
}

type loginPage struct {
	Page
	Email string
}

type registerPage struct {
	Page
	Name  string
	Email string
}

type errorPage struct {
	Page
	Message string
}
