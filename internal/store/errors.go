package store

import "errors"

// Sentinel errors returned by the storage layer. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrNoOpenStore is returned by operations that need the current
	// account store when no store is open.
	ErrNoOpenStore = errors.New("no open account store")

	// ErrPrefKeyNotFound is returned when a preference key is absent from
	// its namespace.
	ErrPrefKeyNotFound = errors.New("preference key not found")
)
