// Package inertia implements the server side of the Inertia protocol:
// classifying requests as full visits or partial reloads, resolving page
// props, negotiating asset versions, and orchestrating optional
// server-side rendering through an external renderer process.
//
// Create an Inertia instance with inertia.New():
//
//	in, err := inertia.New(inertia.Config{
//	    VersionFunc:  manifest.Version,
//	    RootTemplate: "resources/root.html",
//	})
//
//	mux.Handle("/events", in.Handler("Events/Index", eventProps))
//	http.ListenAndServe(":8080", in.Middleware(mux))
//
// Handlers render pages with Render or RenderWithProps. Hydrated clients
// (requests carrying the X-Inertia header) receive the page object as
// JSON; plain navigations receive the full HTML document produced by the
// configured template resolver, optionally pre-rendered by the SSR
// process.
package inertia

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inertia-go/inertia/pkg/props"
	"github.com/inertia-go/inertia/pkg/ssr"
)

// =============================================================================
// Inertia Type
// =============================================================================

// Inertia is the protocol controller. It holds the immutable per-process
// state (asset version, template resolver, renderer client) and serves
// every request through Render, RenderWithProps, Location and Middleware.
type Inertia struct {
	config    Config
	version   string
	resolver  TemplateResolver
	ssrClient *ssr.Client
	logger    *slog.Logger
}

// New creates a protocol controller from cfg. It resolves the asset
// version once (unless cfg.VersionPerRequest is set), wires the template
// resolver and, when cfg.SSR is non-nil, the renderer client.
func New(cfg Config) (*Inertia, error) {
	if cfg.ContainerID == "" {
		cfg.ContainerID = DefaultContainerID
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	resolver := cfg.TemplateResolver
	if resolver == nil {
		if cfg.RootTemplate == "" {
			return nil, errors.New("inertia: config requires RootTemplate or TemplateResolver")
		}
		resolver = HTMLTemplateResolver(cfg.RootTemplate, cfg.ContainerID)
	}

	version := cfg.Version
	if cfg.VersionFunc != nil {
		v, err := cfg.VersionFunc()
		if err != nil {
			return nil, fmt.Errorf("inertia: resolve asset version: %w", err)
		}
		version = v
	}

	var client *ssr.Client
	if cfg.SSR != nil {
		var opts []ssr.ClientOption
		if cfg.SSR.Timeout > 0 {
			opts = append(opts, ssr.WithTimeout(cfg.SSR.Timeout))
		}
		client = ssr.NewClient(cfg.SSR.BaseURL, opts...)
	}

	return &Inertia{
		config:    cfg,
		version:   version,
		resolver:  resolver,
		ssrClient: client,
		logger:    logger,
	}, nil
}

// Version returns the asset version used for negotiation on the next
// request.
func (i *Inertia) Version() string {
	return i.currentVersion()
}

// Config returns the controller configuration.
func (i *Inertia) Config() Config {
	return i.config
}

// currentVersion returns the version for one request. The construction-time
// value is authoritative unless VersionPerRequest re-evaluates the resolver;
// a failing re-evaluation falls back to the last known version.
func (i *Inertia) currentVersion() string {
	if i.config.VersionPerRequest && i.config.VersionFunc != nil {
		v, err := i.config.VersionFunc()
		if err != nil {
			i.logger.Warn("asset version lookup failed, using last known version", "error", err)
			return i.version
		}
		return v
	}
	return i.version
}

// =============================================================================
// Context Props
// =============================================================================

type ctxPropsKey struct{}

// WithProps returns a context carrying extra shared props. Every render
// performed with the returned context merges them between the configured
// shared props and the route props; later WithProps calls override earlier
// keys. Middleware uses this to expose flash errors to pages.
func WithProps(ctx context.Context, m props.Map) context.Context {
	if len(m) == 0 {
		return ctx
	}
	return context.WithValue(ctx, ctxPropsKey{}, props.Merge(propsFromContext(ctx), m))
}

func propsFromContext(ctx context.Context) props.Map {
	m, _ := ctx.Value(ctxPropsKey{}).(props.Map)
	return m
}
