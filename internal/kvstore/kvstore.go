package kvstore

import (
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key is absent or has expired.
var ErrNotFound = errors.New("kvstore: key not found")

// KVStore is an interface for a simple key-value store.
type KVStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// TTLStore is implemented by stores that can expire entries on their own.
type TTLStore interface {
	KVStore
	SetWithTTL(key string, value []byte, ttl time.Duration) error
}
