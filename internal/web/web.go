// Package web renders the single page of the food order application.
package web

import (
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFiles embed.FS

type Page struct {
	Title        string
	AdminEnabled bool
}

type TemplateRenderer struct {
	templates *template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	templates, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: templates}, nil
}

func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

type PageHandler struct {
	page Page
}

// NewPageHandler installs the renderer on e and serves the page at /.
func NewPageHandler(e *echo.Echo, renderer *TemplateRenderer, page Page) *PageHandler {
	handler := &PageHandler{page: page}

	e.Renderer = renderer
	e.GET("/", handler.Index)

	return handler
}

func (h *PageHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", h.page)
}
