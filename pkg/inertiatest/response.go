package inertiatest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/inertia-go/inertia/pkg/protocol"
)

// ExpectHydrated asserts a response is a JSON data response addressed to
// a hydrated client.
func ExpectHydrated(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get(protocol.HeaderInertia); got != "true" {
		t.Errorf("%s = %q, want %q", protocol.HeaderInertia, got, "true")
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

// ExpectDocument asserts a response is a full HTML document, as served
// to a plain browser navigation.
func ExpectDocument(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if got := rr.Header().Get(protocol.HeaderInertia); got != "" {
		t.Errorf("%s = %q, want unset", protocol.HeaderInertia, got)
	}
}

// ExpectConflict asserts a stale-version response telling the client to
// hard-visit location.
func ExpectConflict(t *testing.T, rr *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
	if got := rr.Header().Get(protocol.HeaderLocation); got != location {
		t.Errorf("%s = %q, want %q", protocol.HeaderLocation, got, location)
	}
}

// ExpectRedirect asserts a redirect to location with the given status.
func ExpectRedirect(t *testing.T, rr *httptest.ResponseRecorder, status int, location string) {
	t.Helper()
	if rr.Code != status {
		t.Errorf("status = %d, want %d", rr.Code, status)
	}
	if got := rr.Header().Get("Location"); got != location {
		t.Errorf("Location = %q, want %q", got, location)
	}
}
