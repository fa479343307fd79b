// Package view plugs html/template into echo's Renderer hook. Templates
// are embedded at build time; there is nothing to deploy next to the
// binary.
package view

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/damsolebgdu91/Projet-Fil-Rouge/web"
)

// Renderer implements echo.Renderer over the embedded template set.
type Renderer struct{ templates *template.Template }

// New parses the embedded templates. It panics on a parse error because
// a broken template is a build defect, not a runtime condition.
func New() *Renderer {
	return &Renderer{
		templates: template.Must(template.ParseFS(web.Templates, "templates/*.html")),
	}
}

// Render writes the named template with data.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
