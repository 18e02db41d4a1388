package protocol

import (
	"net/http"
	"strings"
)

// Partial scopes a partial reload: the target component plus the only/except
// name sets parsed from the partial headers. A non-empty Only set takes
// absolute precedence over Except.
type Partial struct {
	Component string
	Only      []string
	Except    []string
}

// Selects reports whether the filter includes the named property. Always
// properties bypass this check entirely; see the props package.
func (p *Partial) Selects(key string) bool {
	if len(p.Only) > 0 {
		return containsName(p.Only, key)
	}
	return !containsName(p.Except, key)
}

func containsName(names []string, key string) bool {
	for _, n := range names {
		if n == key {
			return true
		}
	}
	return false
}

// RequestKind is the terminal classification of a request, computed once
// per request. The zero value is a standard visit.
type RequestKind struct {
	partial *Partial
}

// Standard is the classification of a full visit.
var Standard = RequestKind{}

// PartialReload classifies a partial reload scoped by p.
func PartialReload(p *Partial) RequestKind {
	return RequestKind{partial: p}
}

// IsPartial reports whether the request is a partial reload.
func (k RequestKind) IsPartial() bool { return k.partial != nil }

// Partial returns the reload scope, or nil for standard visits.
func (k RequestKind) Partial() *Partial { return k.partial }

func (k RequestKind) String() string {
	if k.partial == nil {
		return "standard"
	}
	return "partial:" + k.partial.Component
}

// Classify turns the request headers into a RequestKind.
//
// Absence of X-Inertia-Partial-Component means a standard visit. Presence
// means a partial reload, with the only/except sets parsed from their
// comma-separated headers (trimmed, empty entries dropped). A header value
// containing non-printable bytes fails with a HeaderError.
func Classify(h http.Header) (RequestKind, error) {
	component, err := headerText(h, HeaderPartialComponent)
	if err != nil {
		return Standard, err
	}
	if component == "" {
		return Standard, nil
	}

	only, err := headerList(h, HeaderPartialData)
	if err != nil {
		return Standard, err
	}
	except, err := headerList(h, HeaderPartialExcept)
	if err != nil {
		return Standard, err
	}

	return PartialReload(&Partial{
		Component: component,
		Only:      only,
		Except:    except,
	}), nil
}

// headerList parses a comma-separated header into its non-empty, trimmed
// entries. An absent header yields an empty set.
func headerList(h http.Header, name string) ([]string, error) {
	v, err := headerText(h, name)
	if err != nil {
		return nil, err
	}
	if v == "" {
		return nil, nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out, nil
}
