// Package protocol implements the wire-level half of the Inertia protocol:
// request classification, asset-version negotiation, and the Page payload
// exchanged with hydrated clients.
//
// # Request Classification
//
// An incoming request is classified once, from its headers, into one of two
// kinds:
//
//   - Standard: a first load or a full browser navigation. The client
//     expects every property of the page.
//   - Partial reload: an already-hydrated client asking for a subset of a
//     component's properties, scoped by the X-Inertia-Partial-Data (only)
//     and X-Inertia-Partial-Except header sets.
//
// # Headers
//
// Consumed (names are case-insensitive on the wire):
//
//	X-Inertia                    presence + non-empty ⇒ hydrated client
//	X-Inertia-Version            client's cached asset version
//	X-Inertia-Partial-Component  target component; presence ⇒ partial reload
//	X-Inertia-Partial-Data       comma-separated "only" set
//	X-Inertia-Partial-Except     comma-separated "except" set
//
// Produced (by the controller layer):
//
//	X-Inertia: true              marks JSON data responses
//	X-Inertia-Location           forced refresh / external redirect target
//
// # Page Wire Shape
//
// A Page serializes as:
//
//	{"component": string, "props": object, "url": string, "version": string|null}
//
// Props always serializes as an object, never null; version serializes as
// null when unset.
package protocol
