package http

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// ── ViewEngine ───────────────────────────────────────────────────────────────

// ViewEngine holds a template set parsed once from a filesystem.
type ViewEngine struct {
	tmpl *template.Template
}

// NewViewEngine parses every file in fsys matching the patterns.
//
//	engine, err := gohttp.NewViewEngine(views.FS, template.FuncMap{...}, "*.html")
func NewViewEngine(fsys fs.FS, funcs template.FuncMap, patterns ...string) (*ViewEngine, error) {
	if len(patterns) == 0 {
		patterns = []string{"*.html"}
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("views: %w", err)
	}
	return &ViewEngine{tmpl: tmpl}, nil
}

// View renders the named template as a full HTML response.
//
//	engine.View(res.Raw(), "index", data)
func (ve *ViewEngine) View(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := ve.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Fragment renders the named template to a string, for SSE element patches.
func (ve *ViewEngine) Fragment(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := ve.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("views: render %s: %w", name, err)
	}
	return buf.String(), nil
}
