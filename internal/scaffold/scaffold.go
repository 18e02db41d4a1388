package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/inertia-go/inertia/internal/errors"
)

// Config contains values spliced into scaffold files.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// Entry is the Vite entry chunk.
	Entry string
}

// Template represents a named set of starter files.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents. Contents are
	// text/template documents executed with a Config.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"chi":     chiTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.Newf(errors.CategoryCLI,
			"unknown template %q (available: %s)", name, strings.Join(List(), ", "))
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create renders the template's files into dir. Unless force is set, an
// existing file fails the whole scaffold before anything is written.
func (t *Template) Create(dir string, cfg Config, force bool) error {
	if !force {
		for relPath := range t.Files {
			if _, err := os.Stat(filepath.Join(dir, relPath)); err == nil {
				return errors.Newf(errors.CategoryCLI,
					"%s already exists (use --force to overwrite)", relPath)
			}
		}
	}

	for relPath, content := range t.Files {
		tmpl, err := template.New(relPath).Parse(content)
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}

	return nil
}

// minimalTemplate carries just the root template.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "Root template only",
		Files: map[string]string{
			"web/root.html": rootHTML,
		},
	}
}

// chiTemplate adds a runnable chi server.
func chiTemplate() *Template {
	return &Template{
		Name:        "chi",
		Description: "Root template plus a chi server",
		Files: map[string]string{
			"web/root.html": rootHTML,
			"main.go":       chiMain,
		},
	}
}

const rootHTML = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>{{.ProjectName}}</title>
    @inertia::head
    @vite
  </head>
  <body>
    @inertia::body
  </body>
</html>
`

const chiMain = `package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/inertia-go/inertia"
	"github.com/inertia-go/inertia/pkg/props"
	"github.com/inertia-go/inertia/pkg/vite"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	manifest, err := vite.Load("dist/.vite/manifest.json")
	if err != nil {
		logger.Error("load manifest", "error", err)
		os.Exit(1)
	}

	resolver, err := vite.NewResolver(vite.ResolverConfig{
		TemplatePath: "web/root.html",
		Manifest:     manifest,
		Entry:        "{{.Entry}}",
	})
	if err != nil {
		logger.Error("build resolver", "error", err)
		os.Exit(1)
	}

	in, err := inertia.New(inertia.Config{
		VersionFunc:      func() (string, error) { return resolver.Version(), nil },
		TemplateResolver: resolver.Resolve,
		Logger:           logger,
	})
	if err != nil {
		logger.Error("build controller", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(in.Middleware)

	r.Handle("/", in.Handler("Welcome", func(r *http.Request) (props.Map, error) {
		return props.Map{
			"name": props.Data("{{.ProjectName}}"),
		}, nil
	}))

	r.Handle("/dist/*", http.StripPrefix("/dist/", http.FileServer(http.Dir("dist"))))

	logger.Info("listening", "addr", ":3000")
	if err := http.ListenAndServe(":3000", r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
`
