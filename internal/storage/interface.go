package storage

import "errors"

var (
	// ErrNotFound is returned by GetItem when no value is stored under the key
	ErrNotFound = errors.New("item not found")
	// ErrNotLoaded is returned when an item operation runs before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider persists opaque JSON documents under string keys, in the manner of a
// browser's local storage. Implementations must make SetItem durable before returning.
type Provider interface {
	// Lifecycle. Load may be called again on an open provider to pick up
	// writes made by other processes.
	Init() error
	Load() error
	Close() error

	// Items
	GetItem(key string) ([]byte, error)
	SetItem(key string, value []byte) error
	RemoveItem(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// FileBacked is implemented by providers whose data lives in a single local file
type FileBacked interface {
	FilePath() string
}
