// Package web embeds the HTML templates served by the application.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var files embed.FS

// Funcs are the helpers available to every template
var Funcs = template.FuncMap{
	"imageURL": func(name string) string {
		if name == "" {
			return ""
		}
		return "/uploads/" + name
	},
	"fieldError": func(errs map[string]string, field string) string {
		return errs[field]
	},
}

// Templates parses every embedded page and partial
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*.tmpl")
}
