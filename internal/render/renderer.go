package render

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/chris/catsort/internal/filters"
)

// Renderer executes templates with the functions of a Registry
type Renderer struct {
	registry *Registry
	logger   *slog.Logger
}

type executor interface {
	Execute(w io.Writer, data any) error
}

// NewRenderer creates a renderer over registry
func NewRenderer(registry *Registry, logger *slog.Logger) *Renderer {
	return &Renderer{registry: registry, logger: logger}
}

// NewDefaultRenderer creates a renderer with the catsort filters and the
// built-in helpers registered
func NewDefaultRenderer(logger *slog.Logger) (*Renderer, error) {
	registry := NewRegistry()

	if err := filters.Register(registry); err != nil {
		return nil, err
	}
	if err := RegisterBuiltins(registry); err != nil {
		return nil, err
	}

	logger.Debug("registered template functions", "names", registry.Names())
	return NewRenderer(registry, logger), nil
}

// Render parses body as a text template named name and executes it with data.
// Output is written to w only when execution succeeds.
func (r *Renderer) Render(w io.Writer, name, body string, data any) error {
	tmpl, err := template.New(name).Funcs(r.registry.FuncMap()).Parse(body)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return r.execute(w, name, tmpl, data)
}

// RenderFile renders the template at path. Files ending in .html or .htm are
// parsed with html/template so their output is escaped.
func (r *Renderer) RenderFile(w io.Writer, path string, data any) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	name := filepath.Base(path)
	if !isHTML(path) {
		return r.Render(w, name, string(body), data)
	}

	tmpl, err := htmltemplate.New(name).Funcs(htmltemplate.FuncMap(r.registry.FuncMap())).Parse(string(body))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return r.execute(w, name, tmpl, data)
}

func (r *Renderer) execute(w io.Writer, name string, tmpl executor, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		r.logger.Debug("template execution failed", "template", name, "error", err)
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	r.logger.Debug("rendered template", "template", name, "bytes", buf.Len())
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func isHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}
