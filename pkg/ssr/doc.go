// Package ssr orchestrates server-side pre-rendering through an external
// renderer process.
//
// The renderer is a separate JavaScript process (typically the bundled
// @inertiajs/server entry) speaking a small HTTP contract on one base
// address:
//
//	POST /render    body: serialized page      → {"head": [string...], "body": string}
//	GET  /shutdown  terminates the renderer
//	GET  /health    liveness probe
//
// Client wraps that contract with a hard request timeout. Rendering is a
// stateless request/response exchange: a single failed attempt is reported
// to the caller, never retried; callers fall back to client-side hydration
// instead of failing the request.
//
// Process owns the renderer's lifecycle: it spawns the runtime at startup
// and shuts it down exactly once, gracefully over HTTP with a forced kill
// as fallback. StartProcess returns as soon as the runtime is spawned;
// WaitReady blocks until the health endpoint answers, so the first page
// render never races renderer boot. Stop the serving listener first so the
// renderer is never killed while in-flight SSR calls are still outstanding.
package ssr
