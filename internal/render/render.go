// Package render wraps the template engine behind a small logical-name
// interface: generators ask for a template by name and hand over a data
// context, nothing more.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
)

// Engine renders named templates loaded from a templates directory.
type Engine struct {
	tpl *template.Template
}

// Load parses every .html file under dir. Template names are the file
// names without extension ("about.html" renders as "about").
func Load(dir string) (*Engine, error) {
	tpl, err := template.New("").Option("missingkey=error").ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("load templates from %s: %w", dir, err)
	}
	return &Engine{tpl: tpl}, nil
}

// Render executes the named template with data. Lookup failures and render
// failures are both reported as errors.
func (e *Engine) Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := e.tpl.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}
