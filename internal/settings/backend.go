// Package settings persists per-user console settings. Values live in a
// user-settings ConfigMap in the cluster and are mirrored to a local file so
// they survive clusters without the settings namespace or without RBAC to
// write it.
package settings

import (
	"context"
	"errors"
	"sync"
)

// Well-known setting keys. ConfigMap keys follow the console's user-settings
// naming; local keys name the entries of the local fallback file.
const (
	ColumnManagementConfigMapKey    = "console.tableColumns"
	ColumnManagementLocalStorageKey = "kview/table-columns"

	RefreshIntervalConfigMapKey    = "console.refreshInterval"
	RefreshIntervalLocalStorageKey = "kview/refresh-interval"
)

// ErrNoBackend is returned when a setting has nowhere to be written.
var ErrNoBackend = errors.New("no settings backend configured")

// TableColumns maps a column layout id to the ordered ids of its visible
// columns.
type TableColumns map[string][]string

// UpdateFunc computes the next raw value of a key from its previous value.
type UpdateFunc func(prev string, found bool) (string, error)

// Backend stores raw string values by key.
type Backend interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Update applies fn as an atomic read-modify-write of one key. Other keys
	// are left untouched.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// MemoryBackend keeps values in memory. Used for dummy mode and tests.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: map[string]string{}}
}

func (b *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	value, ok := b.values[key]
	return value, ok, nil
}

func (b *MemoryBackend) Update(_ context.Context, key string, fn UpdateFunc) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	prev, ok := b.values[key]
	next, err := fn(prev, ok)
	if err != nil {
		return err
	}
	b.values[key] = next
	return nil
}
