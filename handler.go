package inertia

import (
	"net/http"

	"github.com/inertia-go/inertia/pkg/props"
)

// Handler adapts a prop-producing function into an http.Handler that
// renders component. fn may be nil for pages without route props.
//
//	mux.Handle("/events", in.Handler("Events/Index", func(r *http.Request) (props.Map, error) {
//	    return props.Map{
//	        "events": props.Lazy(loadEvents),
//	    }, nil
//	}))
func (i *Inertia) Handler(component string, fn func(*http.Request) (props.Map, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var page props.Map
		if fn != nil {
			var err error
			page, err = fn(r)
			if err != nil {
				i.logger.Error("page props handler failed", "component", component, "error", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
		}
		i.RenderWithProps(w, r, component, page)
	})
}
