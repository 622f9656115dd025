package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData binds the landing page.
type PageData struct {
	Title             string
	View              models.DisplayState
	Queue             []models.QueuedFile
	MinJobDescription int
	MaxFileSizeLabel  string
}

// Engine renders the embedded templates. It satisfies fiber.Views so
// handlers can call c.Render.
type Engine struct {
	tmpl *template.Template
}

func New() *Engine {
	return &Engine{}
}

var funcs = template.FuncMap{
	"recommendationClass": func(s string) string { return string(services.ClassifyRecommendation(s)) },
	"scoreTier":           services.ScoreTier,
	"formatScore":         services.FormatScore,
	"formatFileSize":      services.FormatFileSize,
	"formatTime":          func(t time.Time) string { return t.Format("Jan 2, 2006 15:04:05") },
	"inc":                 func(i int) int { return i + 1 },
}

// Load parses the embedded templates.
func (e *Engine) Load() error {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	e.tmpl = tmpl
	return nil
}

// Render executes the named template. Layouts are not used.
func (e *Engine) Render(out io.Writer, name string, binding interface{}, _ ...string) error {
	if e.tmpl == nil {
		if err := e.Load(); err != nil {
			return err
		}
	}
	if err := e.tmpl.ExecuteTemplate(out, name, binding); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
