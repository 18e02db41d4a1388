// Package inertiatest provides helpers for testing Inertia handlers.
//
// Handlers under test are plain http.Handlers, so the package builds on
// net/http/httptest: a fluent builder produces protocol-shaped requests,
// and ParsePage pulls the page object back out of either response form
// (the JSON body of a hydrated response, or the data-page attribute of a
// full HTML document).
//
// # Usage
//
//	req := inertiatest.NewRequest("/events?page=2").
//	    WithVersion("abc123").
//	    Build()
//
//	rr := httptest.NewRecorder()
//	handler.ServeHTTP(rr, req)
//
//	inertiatest.ExpectHydrated(t, rr)
//	inertiatest.ParsePage(t, rr).
//	    AssertComponent("Events/Index").
//	    AssertProp("page", 2)
//
// Partial reloads compose the same way:
//
//	req := inertiatest.NewRequest("/events").
//	    WithVersion("abc123").
//	    Partial("Events/Index", "events").
//	    Build()
package inertiatest
