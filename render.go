package inertia

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/inertia-go/inertia/pkg/flash"
	"github.com/inertia-go/inertia/pkg/props"
	"github.com/inertia-go/inertia/pkg/protocol"
)

// =============================================================================
// Rendering
// =============================================================================

// Render serves component with no route props.
func (i *Inertia) Render(w http.ResponseWriter, r *http.Request, component string) error {
	return i.RenderWithProps(w, r, component, nil)
}

// RenderWithProps serves one page request end to end: classify the
// request, negotiate the asset version, resolve the visible props,
// assemble the page object and answer with either the page JSON (hydrated
// clients) or the full HTML document.
//
// The response is always written, including on failure; the returned
// error exists for logging and metrics at the call site.
func (i *Inertia) RenderWithProps(w http.ResponseWriter, r *http.Request, component string, page props.Map) error {
	kind, err := protocol.Classify(r.Header)
	if err != nil {
		i.logger.Debug("rejecting malformed protocol header", "error", err)
		http.Error(w, "malformed Inertia header", http.StatusBadRequest)
		return err
	}

	version := i.currentVersion()

	if protocol.VersionIsStale(r.Header, version) {
		i.forceRefresh(w, r)
		return nil
	}

	merged := props.Merge(i.sharedProps(r), propsFromContext(r.Context()), page)
	resolved, err := props.Resolve(merged, kind)
	if err != nil {
		i.logger.Error("prop resolution failed", "component", component, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return err
	}

	assembled := protocol.NewPage(component, requestURL(r), version, resolved)

	if protocol.IsInertiaRequest(r.Header) {
		return i.writeData(w, assembled)
	}
	return i.writeDocument(w, r, assembled)
}

// forceRefresh answers a client holding stale assets. The temporary
// session, when present, is persisted first so validation errors survive
// the extra round trip; then hydrated clients get 409 Conflict with
// X-Inertia-Location (a full window visit) and plain navigations a
// regular redirect.
func (i *Inertia) forceRefresh(w http.ResponseWriter, r *http.Request) {
	if i.config.Reflash != nil {
		if f, ok := flash.FromContext(r.Context()); ok {
			if err := i.config.Reflash(w, r, f); err != nil {
				i.logger.Warn("reflash of temporary session failed", "error", err)
			}
		}
	}
	i.Location(w, r, requestURL(r))
}

func (i *Inertia) sharedProps(r *http.Request) props.Map {
	if i.config.SharedProps == nil {
		return nil
	}
	return i.config.SharedProps(r)
}

// writeData answers a hydrated client with the page object itself.
func (i *Inertia) writeData(w http.ResponseWriter, page protocol.Page) error {
	body, err := json.Marshal(page)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrSerialize, err)
		i.logger.Error("page serialization failed", "component", page.Component, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(protocol.HeaderInertia, "true")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
	return nil
}

// writeDocument serves the full HTML document for a plain navigation,
// pre-rendered by the SSR process when one is configured and reachable.
// A failed SSR exchange is never retried and never fails the request.
func (i *Inertia) writeDocument(w http.ResponseWriter, r *http.Request, page protocol.Page) error {
	var ssrPage *protocol.SSRPage
	if i.ssrClient != nil {
		sp, err := i.ssrClient.Render(r.Context(), page)
		if err != nil {
			i.logger.Warn("ssr render failed, falling back to client hydration",
				"component", page.Component, "error", err)
			if i.config.OnSSRFallback != nil {
				i.config.OnSSRFallback(page.Component)
			}
		} else {
			ssrPage = sp
		}
	}

	doc, err := i.resolver(r.Context(), ViewData{Page: page, SSR: ssrPage, View: i.config.ViewData})
	if err != nil {
		if !errors.Is(err, ErrTemplate) && !errors.Is(err, ErrSerialize) {
			err = fmt.Errorf("%w: %v", ErrTemplate, err)
		}
		i.logger.Error("root document resolution failed", "component", page.Component, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
	return nil
}

// requestURL is the URL recorded on the page object and echoed in refresh
// redirects: path plus query, exactly as the client sent it.
func requestURL(r *http.Request) string {
	return r.URL.RequestURI()
}
