package protocol

import (
	"errors"
	"fmt"
	"net/http"
)

// Header names of the Inertia protocol. net/http canonicalizes lookups, so
// matching is case-insensitive regardless of what the client sends.
const (
	HeaderInertia          = "X-Inertia"
	HeaderVersion          = "X-Inertia-Version"
	HeaderPartialComponent = "X-Inertia-Partial-Component"
	HeaderPartialData      = "X-Inertia-Partial-Data"
	HeaderPartialExcept    = "X-Inertia-Partial-Except"
	HeaderLocation         = "X-Inertia-Location"
)

// ErrHeader marks a malformed protocol header. It is fatal to the request
// and maps to a 400 at the HTTP boundary.
var ErrHeader = errors.New("protocol: malformed header")

// HeaderError reports a protocol header whose value could not be decoded as
// printable text. It unwraps to ErrHeader.
type HeaderError struct {
	Name string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("protocol: header %s contains non-printable bytes", e.Name)
}

func (e *HeaderError) Unwrap() error { return ErrHeader }

// IsInertiaRequest reports whether the request comes from an already-hydrated
// Inertia client, signalled by a non-empty X-Inertia header.
func IsInertiaRequest(h http.Header) bool {
	return h.Get(HeaderInertia) != ""
}

// ClientVersion returns the asset version the client reports having cached,
// or the empty string when the header is absent.
func ClientVersion(h http.Header) string {
	return h.Get(HeaderVersion)
}

// headerText returns the value of the named header after verifying that it
// contains only printable ASCII. Callers classify requests from these values,
// so a garbled header is rejected rather than silently misparsed.
func headerText(h http.Header, name string) (string, error) {
	v := h.Get(name)
	for i := 0; i < len(v); i++ {
		if v[i] < 0x20 || v[i] > 0x7e {
			return "", &HeaderError{Name: name}
		}
	}
	return v, nil
}
