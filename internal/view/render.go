package view

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageView is the full dashboard page.
type PageView struct {
	Title  string
	List   ListView
	Detail DetailView
}

// Renderer writes views as HTML.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("dashboard").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page writes the full page.
func (r *Renderer) Page(w io.Writer, page PageView) error {
	return r.tmpl.ExecuteTemplate(w, "page", page)
}

// List writes the list fragment.
func (r *Renderer) List(w io.Writer, list ListView) error {
	return r.tmpl.ExecuteTemplate(w, "list", list)
}

// Detail writes the detail fragment.
func (r *Renderer) Detail(w io.Writer, detail DetailView) error {
	return r.tmpl.ExecuteTemplate(w, "detail", detail)
}
