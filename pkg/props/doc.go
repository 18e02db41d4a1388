// Package props models the named page properties a route exposes and the
// visibility algorithm that decides which of them are evaluated and sent
// for a given request.
//
// # Property Kinds
//
// A property is built by one of four constructors, each with its own
// inclusion and evaluation contract:
//
//   - Always: precomputed value, included on every visit, ignores partial
//     filters.
//   - Data: precomputed value, included on standard visits; on partial
//     reloads only when selected by the filter.
//   - Lazy: thunk, evaluated and included on standard visits; on partial
//     reloads evaluated only when selected, never evaluated when dropped.
//   - OnDemand: thunk, never included on standard visits; evaluated and
//     included on partial reloads only when explicitly selected.
//
// Inclusion summary:
//
//	kind      standard visit   partial reload
//	Always    value            value (filter bypassed)
//	Data      value            value if selected
//	Lazy      eval             eval if selected
//	OnDemand  skipped          eval if selected
//
// Thunks are zero-argument and must be safe to invoke concurrently from
// independent requests; Resolve performs no synchronization and invokes
// each thunk at most once per call.
package props
