// Package view holds the embedded HTML templates and their helpers.
package view

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Load parses every embedded template with the shared FuncMap.
func Load() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// MustLoad is Load for program start-up.
func MustLoad() *template.Template {
	tmpl, err := Load()
	if err != nil {
		panic(err)
	}
	return tmpl
}
