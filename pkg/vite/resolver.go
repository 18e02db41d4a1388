package vite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/inertia-go/inertia"
)

// Directives recognized in the root template.
const (
	DirectiveVite = "@vite"
	DirectiveHead = "@inertia::head"
	DirectiveBody = "@inertia::body"
)

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	// TemplatePath is the root HTML document. It may use three
	// directives: @vite (asset tags), @inertia::head (SSR head
	// fragments) and @inertia::body (SSR markup, or the hydration
	// container without SSR). @inertia::body is required.
	TemplatePath string

	// Manifest resolves production asset tags.
	// Required unless DevServer is set.
	Manifest *Manifest

	// Entry is the source module the page boots from.
	// Example: "src/main.tsx".
	Entry string

	// Base prefixes every production asset path, for builds served
	// from a subpath or CDN origin.
	// Default: "/".
	Base string

	// ContainerID is the hydration container element id.
	// Default: inertia.DefaultContainerID.
	ContainerID string

	// DevServer, when non-empty, switches asset tags to the Vite dev
	// server at this URL and pins Version to "dev".
	DevServer string
}

// Resolver renders the root HTML document around a page: Vite asset tags,
// SSR fragments when present, the hydration container when not. Resolve
// satisfies inertia.TemplateResolver.
type Resolver struct {
	cfg ResolverConfig
}

// NewResolver validates cfg and builds a Resolver.
func NewResolver(cfg ResolverConfig) (*Resolver, error) {
	if cfg.TemplatePath == "" {
		return nil, errors.New("vite: resolver requires TemplatePath")
	}
	if cfg.Manifest == nil && cfg.DevServer == "" {
		return nil, errors.New("vite: resolver requires a Manifest or a DevServer")
	}
	if cfg.ContainerID == "" {
		cfg.ContainerID = inertia.DefaultContainerID
	}
	return &Resolver{cfg: cfg}, nil
}

// Version returns the asset version the resolver's tags are built
// against: the manifest fingerprint, or "dev" against a dev server.
func (r *Resolver) Version() string {
	if r.cfg.DevServer != "" {
		return DevVersion
	}
	return r.cfg.Manifest.Version()
}

// Resolve assembles the full HTML document for data. The template file is
// re-read on every call so edits show up without a restart.
func (r *Resolver) Resolve(ctx context.Context, data inertia.ViewData) (string, error) {
	raw, err := os.ReadFile(r.cfg.TemplatePath)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", inertia.ErrTemplate, r.cfg.TemplatePath, err)
	}
	doc := string(raw)
	if !strings.Contains(doc, DirectiveBody) {
		return "", fmt.Errorf("%w: template %s has no %s directive", inertia.ErrTemplate, r.cfg.TemplatePath, DirectiveBody)
	}

	tags, err := r.tags()
	if err != nil {
		return "", fmt.Errorf("%w: %v", inertia.ErrTemplate, err)
	}

	body, err := data.BodyHTML(r.cfg.ContainerID)
	if err != nil {
		return "", err
	}

	doc = strings.ReplaceAll(doc, DirectiveVite, tags)
	doc = strings.ReplaceAll(doc, DirectiveHead, data.HeadHTML())
	doc = strings.ReplaceAll(doc, DirectiveBody, body)
	return doc, nil
}

func (r *Resolver) tags() (string, error) {
	if r.cfg.DevServer != "" {
		return DevTags(r.cfg.DevServer, r.cfg.Entry), nil
	}
	return r.cfg.Manifest.Tags(r.cfg.Entry, r.cfg.Base)
}
