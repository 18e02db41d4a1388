package inertiatest

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/inertia-go/inertia/pkg/flash"
	"github.com/inertia-go/inertia/pkg/protocol"
)

// RequestBuilder allows fluent construction of protocol-shaped requests.
type RequestBuilder struct {
	method    string
	target    string
	hydrated  bool
	version   string
	component string
	only      []string
	except    []string
	flash     *flash.Flash
}

// NewRequest creates a builder for a GET request to target. Without
// further calls, Build returns a plain browser navigation.
//
// Example:
//
//	req := inertiatest.NewRequest("/events?page=2").Build()
func NewRequest(target string) *RequestBuilder {
	return &RequestBuilder{method: http.MethodGet, target: target}
}

// Method overrides the request method.
func (b *RequestBuilder) Method(m string) *RequestBuilder {
	b.method = m
	return b
}

// Hydrated marks the request as coming from a booted Inertia client.
func (b *RequestBuilder) Hydrated() *RequestBuilder {
	b.hydrated = true
	return b
}

// WithVersion sets the asset version the client reports. Real clients
// only send it once hydrated, so this implies Hydrated.
func (b *RequestBuilder) WithVersion(v string) *RequestBuilder {
	b.version = v
	b.hydrated = true
	return b
}

// Partial turns the request into a partial reload of component asking
// for the given keys. Partial reloads are always hydrated.
//
// Example:
//
//	req := inertiatest.NewRequest("/events").
//	    Partial("Events/Index", "events").
//	    Build()
func (b *RequestBuilder) Partial(component string, only ...string) *RequestBuilder {
	b.component = component
	b.only = only
	b.hydrated = true
	return b
}

// Except excludes keys from a partial reload. Use together with Partial.
func (b *RequestBuilder) Except(keys ...string) *RequestBuilder {
	b.except = keys
	return b
}

// WithFlash attaches a flash to the request context, as the flash
// middleware would after a redirect.
func (b *RequestBuilder) WithFlash(f *flash.Flash) *RequestBuilder {
	b.flash = f
	return b
}

// WithFlashErrors is a shorthand for WithFlash carrying only validation
// errors.
//
// Example:
//
//	req := inertiatest.NewRequest("/register").
//	    WithFlashErrors(map[string]any{"email": "taken"}).
//	    Build()
func (b *RequestBuilder) WithFlashErrors(errs map[string]any) *RequestBuilder {
	return b.WithFlash(&flash.Flash{Errors: errs})
}

// Build returns the final request.
func (b *RequestBuilder) Build() *http.Request {
	target := b.target
	if !strings.HasPrefix(target, "http") {
		target = "http://example.com" + target
	}
	req := httptest.NewRequest(b.method, target, nil)

	if b.hydrated {
		req.Header.Set(protocol.HeaderInertia, "true")
	}
	if b.version != "" {
		req.Header.Set(protocol.HeaderVersion, b.version)
	}
	if b.component != "" {
		req.Header.Set(protocol.HeaderPartialComponent, b.component)
		if len(b.only) > 0 {
			req.Header.Set(protocol.HeaderPartialData, strings.Join(b.only, ","))
		}
		if len(b.except) > 0 {
			req.Header.Set(protocol.HeaderPartialExcept, strings.Join(b.except, ","))
		}
	}
	if b.flash != nil {
		req = req.WithContext(flash.NewContext(req.Context(), b.flash))
	}

	return req
}
