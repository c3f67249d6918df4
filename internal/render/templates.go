package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/internal/views"
	"github.com/cognigraph/console/pkg/api"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData is the envelope every page template receives. Data carries the
// page-specific view model.
type PageData struct {
	Title   string
	Active  views.View
	User    *api.User
	Notices []state.Notice
	Build   *ProgressVM
	Data    any
}

// Renderer executes the embedded template set behind echo's Renderer
// interface.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"filesize": FileSize,
	}
	templates, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
