package inertia

import "errors"

var (
	// ErrSerialize reports that a page object could not be serialized for
	// the wire or for the hydration container. Fatal to the request.
	ErrSerialize = errors.New("inertia: page serialization failed")

	// ErrTemplate reports that the root document could not be produced.
	// Fatal to the request.
	ErrTemplate = errors.New("inertia: template resolution failed")
)
