package flash

import "context"

// Flash is one request's temporary session: validation errors keyed by
// field plus the URL of the request that produced them. It survives
// exactly one redirect or forced refresh.
type Flash struct {
	Errors  map[string]any `json:"errors,omitempty"`
	PrevURL string         `json:"prev_url,omitempty"`
}

// HasErrors reports whether the flash carries validation errors.
func (f *Flash) HasErrors() bool {
	return f != nil && len(f.Errors) > 0
}

// clone returns a copy whose error map is independent of the original.
func (f Flash) clone() Flash {
	if f.Errors == nil {
		return f
	}
	errs := make(map[string]any, len(f.Errors))
	for k, v := range f.Errors {
		errs[k] = v
	}
	return Flash{Errors: errs, PrevURL: f.PrevURL}
}

type ctxKey struct{}

// NewContext returns ctx carrying f.
func NewContext(ctx context.Context, f *Flash) context.Context {
	return context.WithValue(ctx, ctxKey{}, f)
}

// FromContext returns the flash carried by ctx, if any.
func FromContext(ctx context.Context) (*Flash, bool) {
	f, ok := ctx.Value(ctxKey{}).(*Flash)
	return f, ok && f != nil
}
