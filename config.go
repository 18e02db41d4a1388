package inertia

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/inertia-go/inertia/pkg/flash"
	"github.com/inertia-go/inertia/pkg/props"
	"github.com/inertia-go/inertia/pkg/ssr"
)

// =============================================================================
// Configuration Types
// =============================================================================

// DefaultContainerID is the id of the client-side hydration container
// rendered when no SSR result is available.
const DefaultContainerID = "app"

// Config configures an Inertia protocol controller.
type Config struct {
	// Version is the literal asset version used for negotiation. Clients
	// holding a different version are forced to refresh. Empty means the
	// application is unversioned (the page serializes a null version).
	Version string

	// VersionFunc computes the asset version, typically a hash of the
	// build manifest. When set it takes precedence over Version and is
	// evaluated once at New; a failure there fails construction.
	VersionFunc func() (string, error)

	// VersionPerRequest re-evaluates VersionFunc on every request instead
	// of once at construction. Leave false unless assets can change under
	// a running process; a failing re-evaluation logs a warning and keeps
	// the last known version.
	VersionPerRequest bool

	// RootTemplate is the path of an html/template document executed with
	// a TemplateData value for plain navigations. Ignored when
	// TemplateResolver is set.
	RootTemplate string

	// TemplateResolver produces the full HTML document for plain
	// navigations. pkg/vite provides a manifest-aware implementation;
	// when nil, RootTemplate is adapted via HTMLTemplateResolver.
	TemplateResolver TemplateResolver

	// ContainerID is the id of the hydration container div emitted when
	// rendering without SSR.
	// Default: "app".
	ContainerID string

	// ViewData is passed through to the template resolver on every
	// render, for document-level values (titles, meta) the page props
	// should not carry.
	ViewData map[string]any

	// SSR enables server-side pre-rendering through an external renderer.
	// Nil disables SSR; rendering then always emits the hydration
	// container.
	SSR *SSRConfig

	// SharedProps computes props shared by every page in a request's
	// scope. Route props override shared props on key collision.
	SharedProps func(*http.Request) props.Map

	// FlashLoader extracts the request's temporary session, if any.
	// Invoked by Middleware; a loaded flash is exposed to handlers via
	// the request context and its error bag is shared with every page as
	// an Always prop under the "errors" key.
	FlashLoader func(http.ResponseWriter, *http.Request) (*flash.Flash, error)

	// Reflash persists the request's temporary session across a forced
	// refresh so validation errors survive the extra round trip. A
	// failure is logged at warn and never blocks the refresh.
	Reflash func(http.ResponseWriter, *http.Request, *flash.Flash) error

	// OnSSRFallback is invoked each time a render falls back to
	// client-side hydration after a failed SSR exchange. Useful for
	// metrics (e.g. middleware.RecordSSRFallback).
	OnSSRFallback func(component string)

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// SSRConfig configures the external renderer client.
type SSRConfig struct {
	// BaseURL is the renderer's address.
	// Default: ssr.DefaultBaseURL.
	BaseURL string

	// Timeout bounds each render exchange. A render that exceeds it is
	// abandoned and the request falls back to client-side hydration.
	// Default: ssr.DefaultTimeout.
	Timeout time.Duration
}

// =============================================================================
// Default Configurations
// =============================================================================

// DefaultConfig returns a Config with sensible defaults. RootTemplate or
// TemplateResolver must still be provided.
func DefaultConfig() Config {
	return Config{
		ContainerID: DefaultContainerID,
	}
}

// DefaultSSRConfig returns an SSRConfig pointing at the stock renderer
// address.
func DefaultSSRConfig() SSRConfig {
	return SSRConfig{
		BaseURL: ssr.DefaultBaseURL,
		Timeout: ssr.DefaultTimeout,
	}
}
