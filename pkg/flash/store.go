package flash

import (
	"context"
	"time"
)

// Store persists flashes across the redirect boundary. Implementations
// must be safe for concurrent use.
type Store interface {
	// Put saves the flash under id until expiresAt, overwriting any
	// previous flash for the same id.
	Put(ctx context.Context, id string, f Flash, expiresAt time.Time) error

	// Take returns and removes the flash stored under id.
	// Returns (nil, nil) if none is stored or it has expired.
	Take(ctx context.Context, id string) (*Flash, error)

	// Close releases any resources held by the store.
	Close() error
}

// ErrStoreClosed is returned when operations are attempted on a closed
// store.
type ErrStoreClosed struct{}

func (e ErrStoreClosed) Error() string {
	return "flash store is closed"
}
