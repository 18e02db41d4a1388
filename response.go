package inertia

import (
	"net/http"

	"github.com/inertia-go/inertia/pkg/flash"
	"github.com/inertia-go/inertia/pkg/protocol"
)

// Location issues a redirect to an external or non-Inertia URL. A hydrated
// client cannot follow a plain redirect out of the page runtime, so it
// receives 409 Conflict with X-Inertia-Location and performs a full window
// visit; plain navigations receive a regular 302.
func (i *Inertia) Location(w http.ResponseWriter, r *http.Request, url string) {
	if protocol.IsInertiaRequest(r.Header) {
		w.Header().Set(protocol.HeaderLocation, url)
		w.WriteHeader(http.StatusConflict)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// Back redirects to the previous URL recorded in the request's temporary
// session, falling back to the Referer header and then to fallback. It
// responds 303 See Other so the follow-up request is a GET even after a
// mutation.
func (i *Inertia) Back(w http.ResponseWriter, r *http.Request, fallback string) {
	url := fallback
	if ref := r.Header.Get("Referer"); ref != "" {
		url = ref
	}
	if f, ok := flash.FromContext(r.Context()); ok && f.PrevURL != "" {
		url = f.PrevURL
	}
	if url == "" {
		url = "/"
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
