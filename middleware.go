package inertia

import (
	"net/http"

	"github.com/inertia-go/inertia/pkg/flash"
	"github.com/inertia-go/inertia/pkg/props"
)

// Middleware prepares requests for rendering and finalizes responses. It
// loads the request's temporary session through Config.FlashLoader,
// stashes it in the request context and shares its error bag with every
// page as an Always prop under the "errors" key. After the wrapped
// handler runs it rewrites 301/302 answers to PUT, PATCH and DELETE into
// 303 See Other, so hydrated clients re-GET instead of replaying the
// mutation.
//
// Mount it once around the router:
//
//	http.ListenAndServe(addr, in.Middleware(mux))
//
// or with chi, r.Use(in.Middleware).
func (i *Inertia) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if i.config.FlashLoader != nil {
			f, err := i.config.FlashLoader(w, r)
			switch {
			case err != nil:
				i.logger.Warn("temporary session load failed", "error", err)
			case f != nil:
				ctx := flash.NewContext(r.Context(), f)
				ctx = WithProps(ctx, props.Map{"errors": props.Always(f.Errors)})
				r = r.WithContext(ctx)
			}
		}

		next.ServeHTTP(&seeOtherWriter{ResponseWriter: w, method: r.Method}, r)
	})
}

// seeOtherWriter rewrites mutating-request redirects on the way out: a
// 301 or 302 answer to PUT, PATCH or DELETE becomes 303 See Other.
type seeOtherWriter struct {
	http.ResponseWriter
	method string
}

func (w *seeOtherWriter) WriteHeader(code int) {
	if code == http.StatusMovedPermanently || code == http.StatusFound {
		switch w.method {
		case http.MethodPut, http.MethodPatch, http.MethodDelete:
			code = http.StatusSeeOther
		}
	}
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap supports http.ResponseController.
func (w *seeOtherWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
