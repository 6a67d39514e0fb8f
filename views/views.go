// Package views embeds the HTML templates.
package views

import (
	"embed"
	"html/template"
)

//go:embed *.html
var FS embed.FS

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"glyph": func(valid bool) string {
			if valid {
				return "✅"
			}
			return "❌"
		},
		"resultClass": func(valid bool) string {
			if valid {
				return "result valid"
			}
			return "result invalid"
		},
	}
}
