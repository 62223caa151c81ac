package repositories

import "context"

// KeyValueStore is the storage collaborator every repository is built on.
// Writes to different keys are not atomic with each other.
type KeyValueStore interface {
	// Get returns the value stored under key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// BatchWriter is implemented by stores that can write several keys at once.
type BatchWriter interface {
	// SetMany writes all entries or none of them.
	SetMany(ctx context.Context, entries map[string]string) error
}

// Closer is implemented by stores holding connections.
type Closer interface {
	Close() error
}
