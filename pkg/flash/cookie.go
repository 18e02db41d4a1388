package flash

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultCookieName is the cookie that ties a browser to its stored flash.
const DefaultCookieName = "inertia_flash"

// CookieProvider binds flashes to a browser through an opaque cookie id.
// Its Flash and Pop methods match the reflash/loader hooks the controller
// configuration consumes.
type CookieProvider struct {
	store    Store
	name     string
	ttl      time.Duration
	path     string
	secure   bool
	sameSite http.SameSite
}

// CookieOption configures a CookieProvider.
type CookieOption func(*CookieProvider)

// WithCookieName overrides the cookie name. Default: DefaultCookieName.
func WithCookieName(name string) CookieOption {
	return func(cp *CookieProvider) {
		if name != "" {
			cp.name = name
		}
	}
}

// WithTTL sets how long a stored flash survives unread. Default: 5 minutes,
// plenty for the single reload it exists to outlive.
func WithTTL(d time.Duration) CookieOption {
	return func(cp *CookieProvider) {
		if d > 0 {
			cp.ttl = d
		}
	}
}

// WithSecure marks the cookie Secure for HTTPS-only deployments.
func WithSecure(secure bool) CookieOption {
	return func(cp *CookieProvider) {
		cp.secure = secure
	}
}

// NewCookieProvider wraps store with browser cookie plumbing.
func NewCookieProvider(store Store, opts ...CookieOption) *CookieProvider {
	cp := &CookieProvider{
		store:    store,
		name:     DefaultCookieName,
		ttl:      5 * time.Minute,
		path:     "/",
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(cp)
	}
	return cp
}

// Flash persists f for the browser behind r, minting the cookie when the
// browser doesn't carry one yet.
func (cp *CookieProvider) Flash(w http.ResponseWriter, r *http.Request, f *Flash) error {
	if f == nil {
		return nil
	}

	id := cp.cookieID(r)
	if id == "" {
		id = uuid.NewString()
	}

	if err := cp.store.Put(r.Context(), id, *f, time.Now().Add(cp.ttl)); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cp.name,
		Value:    id,
		Path:     cp.path,
		MaxAge:   int(cp.ttl / time.Second),
		HttpOnly: true,
		Secure:   cp.secure,
		SameSite: cp.sameSite,
	})
	return nil
}

// Pop returns the browser's stored flash, if any, removing it from the
// store. A browser without a flash cookie yields (nil, nil).
func (cp *CookieProvider) Pop(w http.ResponseWriter, r *http.Request) (*Flash, error) {
	id := cp.cookieID(r)
	if id == "" {
		return nil, nil
	}
	return cp.store.Take(r.Context(), id)
}

func (cp *CookieProvider) cookieID(r *http.Request) string {
	c, err := r.Cookie(cp.name)
	if err != nil {
		return ""
	}
	return c.Value
}
