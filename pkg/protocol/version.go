package protocol

import "net/http"

// VersionIsStale compares the client's cached asset version against the
// server's current one. A missing client version is considered fresh (first
// visits have nothing cached); otherwise staleness is plain string
// inequality.
//
// Stale requests from hydrated clients must be answered with a 409 Conflict
// carrying X-Inertia-Location; stale plain navigations get an ordinary
// redirect. That split lives in the controller layer.
func VersionIsStale(h http.Header, current string) bool {
	v := h.Get(HeaderVersion)
	if v == "" {
		return false
	}
	return v != current
}
