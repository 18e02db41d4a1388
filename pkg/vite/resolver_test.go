package vite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inertia-go/inertia"
	"github.com/inertia-go/inertia/pkg/protocol"
)

const rootTemplate = `<!doctype html>
<html>
<head>
  @vite
  @inertia::head
</head>
<body>
  @inertia::body
</body>
</html>`

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "root.html")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func prodResolver(t *testing.T) *Resolver {
	t.Helper()
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	r, err := NewResolver(ResolverConfig{
		TemplatePath: writeTemplate(t, rootTemplate),
		Manifest:     m,
		Entry:        "src/main.tsx",
	})
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	return r
}

func TestResolver_ClientHydration(t *testing.T) {
	r := prodResolver(t)
	page := protocol.NewPage("Events/Index", "/events", r.Version(), nil)

	doc, err := r.Resolve(context.Background(), inertia.ViewData{Page: page})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if !strings.Contains(doc, `<script type="module" src="/assets/main-4f8d9a2c.js"></script>`) {
		t.Errorf("document missing entry script:\n%s", doc)
	}
	if !strings.Contains(doc, `<div id="app" data-page="`) {
		t.Errorf("document missing hydration container:\n%s", doc)
	}
	if strings.Contains(doc, "@vite") || strings.Contains(doc, "@inertia::") {
		t.Errorf("document still carries directives:\n%s", doc)
	}
}

func TestResolver_ServerRendered(t *testing.T) {
	r := prodResolver(t)
	page := protocol.NewPage("Events/Index", "/events", r.Version(), nil)

	doc, err := r.Resolve(context.Background(), inertia.ViewData{
		Page: page,
		SSR: &protocol.SSRPage{
			Head: []string{"<title>Events</title>"},
			Body: "<main>listing</main>",
		},
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if !strings.Contains(doc, "<title>Events</title>") {
		t.Errorf("document missing SSR head:\n%s", doc)
	}
	if !strings.Contains(doc, "<main>listing</main>") {
		t.Errorf("document missing SSR body:\n%s", doc)
	}
	if strings.Contains(doc, "data-page=") {
		t.Errorf("document still carries the hydration container:\n%s", doc)
	}
}

func TestResolver_DevServer(t *testing.T) {
	r, err := NewResolver(ResolverConfig{
		TemplatePath: writeTemplate(t, rootTemplate),
		Entry:        "src/main.tsx",
		DevServer:    "http://localhost:5174",
	})
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	if r.Version() != DevVersion {
		t.Errorf("Version() = %q, want %q", r.Version(), DevVersion)
	}

	doc, err := r.Resolve(context.Background(), inertia.ViewData{
		Page: protocol.NewPage("X", "/x", DevVersion, nil),
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !strings.Contains(doc, "http://localhost:5174/@vite/client") {
		t.Errorf("document missing dev server client:\n%s", doc)
	}
}

func TestResolver_MissingBodyDirective(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	r, err := NewResolver(ResolverConfig{
		TemplatePath: writeTemplate(t, "<html><body>static</body></html>"),
		Manifest:     m,
		Entry:        "src/main.tsx",
	})
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	_, err = r.Resolve(context.Background(), inertia.ViewData{})
	if !errors.Is(err, inertia.ErrTemplate) {
		t.Fatalf("Resolve() error = %v, want ErrTemplate", err)
	}
}

func TestResolver_MissingEntry(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	r, err := NewResolver(ResolverConfig{
		TemplatePath: writeTemplate(t, rootTemplate),
		Manifest:     m,
		Entry:        "src/other.tsx",
	})
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	_, err = r.Resolve(context.Background(), inertia.ViewData{})
	if !errors.Is(err, inertia.ErrTemplate) {
		t.Fatalf("Resolve() error = %v, want ErrTemplate", err)
	}
}

func TestNewResolver_Validation(t *testing.T) {
	if _, err := NewResolver(ResolverConfig{Manifest: &Manifest{}}); err == nil {
		t.Error("NewResolver() without TemplatePath succeeded")
	}
	if _, err := NewResolver(ResolverConfig{TemplatePath: "root.html"}); err == nil {
		t.Error("NewResolver() without Manifest or DevServer succeeded")
	}
}

func TestResolver_WiredIntoController(t *testing.T) {
	r := prodResolver(t)

	in, err := inertia.New(inertia.Config{
		Version:          r.Version(),
		TemplateResolver: r.Resolve,
	})
	if err != nil {
		t.Fatalf("inertia.New() error = %v", err)
	}
	if in.Version() != r.Version() {
		t.Errorf("controller version = %q, want manifest fingerprint %q", in.Version(), r.Version())
	}
}
