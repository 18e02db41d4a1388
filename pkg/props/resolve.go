package props

import (
	"github.com/inertia-go/inertia/pkg/protocol"
)

// Resolve applies the visibility rules to m for the given request kind and
// returns the concrete value map to send.
//
// Standard visits include every property except OnDemand ones, evaluating
// Lazy thunks now. Partial reloads include Always properties
// unconditionally and filter everything else through the reload's
// only/except sets, evaluating thunks only for properties that survive the
// filter.
//
// Resolution depends only on m and kind. The input map is never mutated
// and the result is freshly allocated per call.
func Resolve(m Map, kind protocol.RequestKind) (map[string]any, error) {
	out := make(map[string]any, len(m))

	if partial := kind.Partial(); partial != nil {
		for key, prop := range m {
			if prop.kind == KindAlways {
				out[key] = prop.value
				continue
			}
			if !partial.Selects(key) {
				continue
			}
			v, err := prop.eval()
			if err != nil {
				return nil, &ResolveError{Key: key, Err: err}
			}
			out[key] = v
		}
		return out, nil
	}

	for key, prop := range m {
		if prop.kind == KindOnDemand {
			continue
		}
		v, err := prop.eval()
		if err != nil {
			return nil, &ResolveError{Key: key, Err: err}
		}
		out[key] = v
	}
	return out, nil
}
