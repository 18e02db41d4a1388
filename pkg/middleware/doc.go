// Package middleware provides production observability middleware for
// Inertia applications.
//
// This package includes:
//   - Prometheus metrics middleware
//   - OpenTelemetry distributed tracing middleware
//
// Both are standard func(http.Handler) http.Handler wrappers, mountable
// on any net/http mux or chi router, and both classify each request the
// way the controller does (standard visit, partial reload, hydrated or
// plain) so dashboards speak the protocol's language.
//
// # Prometheus Metrics
//
// The Prometheus middleware collects metrics about Inertia traffic:
//   - inertia_requests_total: Counter of requests by visit kind, client
//     mode and response status
//   - inertia_request_duration_seconds: Histogram of request duration by
//     visit kind
//   - inertia_version_conflicts_total: Counter of stale-version conflicts
//     that forced a full refresh
//   - inertia_partial_reloads_total: Counter of partial reloads by
//     component
//   - inertia_ssr_fallbacks_total: Counter of SSR renders that fell back
//     to client hydration, by component
//
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus())
//
// Then expose metrics on a separate port:
//
//	http.Handle("/metrics", promhttp.Handler())
//	go http.ListenAndServe(":9090", nil)
//
// SSR fallbacks happen inside the controller, out of this middleware's
// sight; wire the controller's hook to the recorder:
//
//	inertia.Config{OnSSRFallback: middleware.RecordSSRFallback}
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware opens a server span per request carrying
// the Inertia classification (visit kind, partial component, client
// version) alongside the usual HTTP attributes, and propagates the span
// through the request context so database drivers and HTTP clients
// downstream inherit the trace:
//
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in your main() before starting the server.
package middleware
