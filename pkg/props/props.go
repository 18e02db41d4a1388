package props

import (
	"errors"
	"fmt"
)

// Thunk produces a property value on demand. It must be safe to call from
// any goroutine; the resolver bounds invocations to at most one per
// resolution.
type Thunk func() (any, error)

// Kind identifies a property's inclusion/evaluation contract.
type Kind uint8

const (
	KindData Kind = iota
	KindAlways
	KindLazy
	KindOnDemand
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindAlways:
		return "always"
	case KindLazy:
		return "lazy"
	case KindOnDemand:
		return "on_demand"
	default:
		return "unknown"
	}
}

// Prop is one named page property. Build it with Data, Always, Lazy or
// OnDemand; the zero value behaves like Data(nil).
type Prop struct {
	kind  Kind
	value any
	fn    Thunk
}

// Data is a precomputed value sent on standard visits and on partial
// reloads that select it.
func Data(v any) Prop { return Prop{kind: KindData, value: v} }

// Always is a precomputed value sent on every visit type, bypassing
// partial filters.
func Always(v any) Prop { return Prop{kind: KindAlways, value: v} }

// Lazy defers computing a value until a visit actually includes it.
func Lazy(fn Thunk) Prop { return Prop{kind: KindLazy, fn: fn} }

// OnDemand defers a value that is only ever computed when a partial reload
// selects it explicitly; standard visits skip it entirely.
func OnDemand(fn Thunk) Prop { return Prop{kind: KindOnDemand, fn: fn} }

// Kind returns the property's inclusion contract.
func (p Prop) Kind() Kind { return p.kind }

// errNilThunk guards Lazy/OnDemand props built with a nil function.
var errNilThunk = errors.New("props: nil thunk")

// eval produces the property's concrete value, invoking the thunk for the
// deferred kinds. This is the only evaluation point.
func (p Prop) eval() (any, error) {
	switch p.kind {
	case KindLazy, KindOnDemand:
		if p.fn == nil {
			return nil, errNilThunk
		}
		return p.fn()
	default:
		return p.value, nil
	}
}

// Map is a property table: name → Prop. Names are unique by construction
// and insertion order is irrelevant. The resolver never mutates it.
type Map map[string]Prop

// Merge combines tables left to right: a key present in a later table
// overrides the same key in an earlier one. The inputs are never mutated.
// Merging all-empty tables returns nil.
func Merge(tables ...Map) Map {
	var out Map
	for _, t := range tables {
		if len(t) == 0 {
			continue
		}
		if out == nil {
			out = make(Map, len(t))
		}
		for k, p := range t {
			out[k] = p
		}
	}
	return out
}

// ResolveError reports a thunk failure for a named property. Resolution
// stops at the first failure; the request is failed rather than sent with
// a hole in its props.
type ResolveError struct {
	Key string
	Err error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("props: resolve %q: %v", e.Key, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }
