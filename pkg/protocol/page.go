package protocol

import (
	"encoding/json"
	"reflect"
)

// Page is the payload delivered to the client for one render: which
// component to mount, the resolved props to feed it, the canonical request
// URL, and the asset version the payload was built against. Immutable once
// built; cheap to hand to the SSR renderer.
type Page struct {
	Component string
	Props     map[string]any
	URL       string
	Version   string
}

// NewPage builds a Page. Pure constructor; no validation beyond types.
func NewPage(component, url, version string, props map[string]any) Page {
	return Page{
		Component: component,
		Props:     props,
		URL:       url,
		Version:   version,
	}
}

// Equal reports whether two pages carry the same component, props, URL and
// version. Props are compared structurally.
func (p Page) Equal(o Page) bool {
	return p.Component == o.Component &&
		p.URL == o.URL &&
		p.Version == o.Version &&
		reflect.DeepEqual(p.Props, o.Props)
}

// pageWire is the JSON shape hydrated clients consume. Version is nullable
// on the wire; props is always an object.
type pageWire struct {
	Component string         `json:"component"`
	Props     map[string]any `json:"props"`
	URL       string         `json:"url"`
	Version   *string        `json:"version"`
}

// MarshalJSON serializes the page wire shape. An unset version serializes
// as null, and nil props serialize as {}.
func (p Page) MarshalJSON() ([]byte, error) {
	w := pageWire{
		Component: p.Component,
		Props:     p.Props,
		URL:       p.URL,
	}
	if p.Version != "" {
		w.Version = &p.Version
	}
	if w.Props == nil {
		w.Props = map[string]any{}
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts the wire shape, mapping a null version back to the
// empty string.
func (p *Page) UnmarshalJSON(data []byte) error {
	var w pageWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.Component = w.Component
	p.Props = w.Props
	p.URL = w.URL
	if w.Version != nil {
		p.Version = *w.Version
	} else {
		p.Version = ""
	}
	return nil
}
