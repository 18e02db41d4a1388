package ssr

import "errors"

var (
	// ErrUnavailable marks a failed render exchange: renderer unreachable,
	// request timed out, non-OK status, or malformed response body. Callers
	// recover by falling back to client-side hydration.
	ErrUnavailable = errors.New("ssr: renderer unavailable")

	// ErrProcess marks a renderer process that could not be started. Fatal
	// at startup, never per-request.
	ErrProcess = errors.New("ssr: renderer process failed")
)
