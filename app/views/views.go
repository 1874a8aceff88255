// Package views renders post components to HTML.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates
var embedded embed.FS

// Renderer executes the page templates.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses the page templates from fsys. A nil fsys uses the
// templates compiled into the binary.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	if fsys == nil {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, err
		}
		fsys = sub
	}

	pages := map[string][]string{
		"index": {"layout.html", "posts/index.html", "shared/avatar.html"},
		"show":  {"layout.html", "posts/show.html", "shared/avatar.html", "shared/comment.html"},
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, files := range pages {
		tmpl, err := template.ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", name, err)
		}
		templates[name] = tmpl
	}
	return &Renderer{templates: templates}, nil
}

// MustRenderer is like NewRenderer but panics on error.
func MustRenderer(fsys fs.FS) *Renderer {
	r, err := NewRenderer(fsys)
	if err != nil {
		panic(err)
	}
	return r
}

// Index renders the post list page.
func (r *Renderer) Index(w io.Writer, data *IndexView) error {
	return r.templates["index"].ExecuteTemplate(w, "layout", data)
}

// Show renders a single post component.
func (r *Renderer) Show(w io.Writer, data *PostView) error {
	return r.templates["show"].ExecuteTemplate(w, "layout", data)
}
