package kvstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "badger_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := NewBadgerStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create BadgerStore: %v", err)
	}
	return store
}

// stores returns one fresh instance of every KVStore implementation.
func stores(t *testing.T) map[string]TTLStore {
	return map[string]TTLStore{
		"badger": newTestBadgerStore(t),
		"memory": NewMemoryStore(),
	}
}

func TestStore_BasicOperations(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			key := "test_key"
			value := []byte("test_value")

			if err := store.Set(key, value); err != nil {
				t.Errorf("Failed to set key: %v", err)
			}

			retrieved, err := store.Get(key)
			if err != nil {
				t.Errorf("Failed to get key: %v", err)
			}
			if string(retrieved) != string(value) {
				t.Errorf("Expected value %s, got %s", string(value), string(retrieved))
			}
		})
	}
}

func TestStore_GetNonExistentKey(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			_, err := store.Get("non_existent_key")
			if err != ErrNotFound {
				t.Errorf("Expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			key := "test_key"
			if err := store.Set(key, []byte("test_value")); err != nil {
				t.Errorf("Failed to set key: %v", err)
			}
			if err := store.Delete(key); err != nil {
				t.Errorf("Failed to delete key: %v", err)
			}
			if _, err := store.Get(key); err != ErrNotFound {
				t.Errorf("Expected ErrNotFound after delete, got %v", err)
			}
			// deleting twice is not an error
			if err := store.Delete(key); err != nil {
				t.Errorf("Second delete failed: %v", err)
			}
		})
	}
}

func TestStore_EmptyValue(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			if err := store.Set("empty_key", []byte{}); err != nil {
				t.Errorf("Failed to set empty value: %v", err)
			}
			retrieved, err := store.Get("empty_key")
			if err != nil {
				t.Errorf("Failed to get empty value: %v", err)
			}
			if len(retrieved) != 0 {
				t.Errorf("Expected empty value, got %v", retrieved)
			}
		})
	}
}

func TestStore_Close(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Close(); err != nil {
				t.Errorf("Failed to close store: %v", err)
			}
			if err := store.Set("key", []byte("value")); err == nil {
				t.Error("Expected error when using closed store, got nil")
			}
		})
	}
}

func TestBadgerStore_InvalidPath(t *testing.T) {
	// a regular file cannot be used as a parent directory
	f, err := os.CreateTemp("", "badger_not_a_dir")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	f.Close()
	defer os.Remove(f.Name())

	if _, err := NewBadgerStore(filepath.Join(f.Name(), "db")); err == nil {
		t.Error("Expected error when creating BadgerStore under a file, got nil")
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if err := store.SetWithTTL("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	if _, err := store.Get("k"); err != nil {
		t.Errorf("Expected key before expiry, got %v", err)
	}

	now = now.Add(time.Minute)
	if _, err := store.Get("k"); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound after ttl, got %v", err)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	value := []byte("abc")
	_ = store.Set("k", value)
	value[0] = 'z'

	got, _ := store.Get("k")
	got[1] = 'z'

	again, _ := store.Get("k")
	if string(again) != "abc" {
		t.Errorf("Expected stored value to be isolated, got %s", again)
	}
}
