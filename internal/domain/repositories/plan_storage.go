package repositories

import "context"

// PlanStorage is the key/value persistence used for the planning document.
// It mirrors browser local storage: one opaque JSON blob per key.
type PlanStorage interface {
	// Get returns the raw value stored under key.
	// Returns nil, nil if nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Name returns the backend name for logging
	Name() string
}
