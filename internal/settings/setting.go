package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/renato0307/kview/internal/logging"
)

// Setting is a typed user setting bound to a key in the cluster ConfigMap and
// a key in the local fallback. Values are stored as JSON, the format the
// console user-settings ConfigMap uses.
type Setting[T any] struct {
	remote          Backend
	local           Backend
	configMapKey    string
	localStorageKey string
}

// NewSetting creates a setting. Either backend may be nil: without a remote
// backend the setting is local only, without a local backend nothing is
// mirrored.
func NewSetting[T any](remote, local Backend, configMapKey, localStorageKey string) *Setting[T] {
	return &Setting[T]{
		remote:          remote,
		local:           local,
		configMapKey:    configMapKey,
		localStorageKey: localStorageKey,
	}
}

// TableColumnsSetting returns the setting holding column management choices.
func TableColumnsSetting(remote, local Backend) *Setting[TableColumns] {
	return NewSetting[TableColumns](remote, local, ColumnManagementConfigMapKey, ColumnManagementLocalStorageKey)
}

// RefreshIntervalSetting returns the setting holding the refresh interval key.
func RefreshIntervalSetting(remote, local Backend) *Setting[string] {
	return NewSetting[string](remote, local, RefreshIntervalConfigMapKey, RefreshIntervalLocalStorageKey)
}

// Get returns the stored value. The ConfigMap wins; when it has no value the
// local one is used and copied to the ConfigMap. A local value saved while the
// ConfigMap could not be written wins until it reaches the ConfigMap.
func (s *Setting[T]) Get(ctx context.Context) (T, bool, error) {
	var zero T

	if s.remote != nil && s.pending(ctx) {
		raw, found, err := s.local.Get(ctx, s.localStorageKey)
		if err == nil && found {
			value, err := decode[T](raw)
			if err != nil {
				return zero, false, err
			}
			s.push(ctx, raw)
			return value, true, nil
		}
	}

	remoteOK := s.remote != nil
	if s.remote != nil {
		raw, found, err := s.remote.Get(ctx, s.configMapKey)
		switch {
		case err != nil:
			logging.Warn("User settings ConfigMap unavailable, using local settings",
				"key", s.configMapKey, "error", err)
			remoteOK = false
			if s.local == nil {
				return zero, false, err
			}
		case found:
			value, err := decode[T](raw)
			return value, err == nil, err
		}
	}

	if s.local == nil {
		return zero, false, nil
	}

	raw, found, err := s.local.Get(ctx, s.localStorageKey)
	if err != nil || !found {
		return zero, false, err
	}
	value, err := decode[T](raw)
	if err != nil {
		return zero, false, err
	}

	if remoteOK {
		s.migrate(ctx, raw)
	}
	return value, true, nil
}

// migrate copies a local value into the ConfigMap unless another writer got
// there first.
func (s *Setting[T]) migrate(ctx context.Context, raw string) {
	err := s.remote.Update(ctx, s.configMapKey, func(prev string, found bool) (string, error) {
		if found {
			return prev, nil
		}
		return raw, nil
	})
	if err != nil {
		logging.Warn("Failed to migrate local setting", "key", s.configMapKey, "error", err)
		return
	}
	logging.Info("Migrated local setting to user settings ConfigMap", "key", s.configMapKey)
}

// Set applies update to the current value as one read-modify-write. The
// result is written to the ConfigMap and mirrored locally. When the ConfigMap
// cannot be written the update is saved locally, starting from the ConfigMap
// value when it could still be read, and the local value is marked as newer.
func (s *Setting[T]) Set(ctx context.Context, update func(prev T) T) error {
	var written string
	apply := func(prev string, found bool) (string, error) {
		var value T
		if found {
			v, err := decode[T](prev)
			if err != nil {
				return "", err
			}
			value = v
		}

		raw, err := encode(update(value))
		if err != nil {
			return "", err
		}
		written = raw
		return raw, nil
	}

	if s.remote == nil {
		if s.local == nil {
			return fmt.Errorf("failed to save %s: %w", s.configMapKey, ErrNoBackend)
		}
		if err := s.local.Update(ctx, s.localStorageKey, apply); err != nil {
			return fmt.Errorf("failed to save %s locally: %w", s.localStorageKey, err)
		}
		return nil
	}

	// A pending local value is newer than the ConfigMap, so it is the base.
	pending := s.local != nil && s.pending(ctx)
	if !pending {
		err := s.remote.Update(ctx, s.configMapKey, apply)
		if err == nil {
			s.mirror(ctx, written)
			return nil
		}
		if s.local == nil {
			return fmt.Errorf("failed to save %s: %w", s.configMapKey, err)
		}
		logging.Warn("User settings ConfigMap not writable, saving locally",
			"key", s.configMapKey, "error", err)
	}

	var remotePrev string
	var remoteFound bool
	if !pending {
		if raw, found, err := s.remote.Get(ctx, s.configMapKey); err == nil {
			remotePrev, remoteFound = raw, found
		}
	}
	err := s.local.Update(ctx, s.localStorageKey, func(prev string, found bool) (string, error) {
		if remoteFound {
			return apply(remotePrev, true)
		}
		return apply(prev, found)
	})
	if err != nil {
		return fmt.Errorf("failed to save %s locally: %w", s.localStorageKey, err)
	}
	s.setPending(ctx, true)

	if pending {
		s.push(ctx, written)
	}
	return nil
}

// pendingKey marks a local value not yet written to the ConfigMap.
func (s *Setting[T]) pendingKey() string {
	return s.localStorageKey + "/pending"
}

func (s *Setting[T]) pending(ctx context.Context) bool {
	if s.local == nil {
		return false
	}
	raw, found, err := s.local.Get(ctx, s.pendingKey())
	return err == nil && found && raw == "true"
}

func (s *Setting[T]) setPending(ctx context.Context, pending bool) {
	value := ""
	if pending {
		value = "true"
	}
	err := s.local.Update(ctx, s.pendingKey(), func(string, bool) (string, error) {
		return value, nil
	})
	if err != nil {
		logging.Warn("Failed to record pending setting", "key", s.localStorageKey, "error", err)
	}
}

// push writes a pending local value to the ConfigMap and clears the marker
// once it is there.
func (s *Setting[T]) push(ctx context.Context, raw string) {
	err := s.remote.Update(ctx, s.configMapKey, func(string, bool) (string, error) {
		return raw, nil
	})
	if err != nil {
		logging.Debug("Pending setting still not writable", "key", s.configMapKey, "error", err)
		return
	}
	s.setPending(ctx, false)
	logging.Info("Saved pending local setting to user settings ConfigMap", "key", s.configMapKey)
}

func (s *Setting[T]) mirror(ctx context.Context, raw string) {
	if s.local == nil {
		return
	}
	err := s.local.Update(ctx, s.localStorageKey, func(string, bool) (string, error) {
		return raw, nil
	})
	if err != nil {
		logging.Warn("Failed to mirror setting locally", "key", s.localStorageKey, "error", err)
	}
}

func decode[T any](raw string) (T, error) {
	var value T
	if raw == "" {
		return value, nil
	}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return value, fmt.Errorf("failed to decode setting: %w", err)
	}
	return value, nil
}

func encode[T any](value T) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to encode setting: %w", err)
	}
	return string(data), nil
}
