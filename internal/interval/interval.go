// Package interval maps refresh interval codes ("15s", "1m", "1d") to
// durations and back. A nil duration means refresh is off.
package interval

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/prometheus/common/model"

	"github.com/renato0307/kview/internal/i18n"
)

// OffKey selects "no refresh". It is never passed to the duration codec.
const OffKey = "OFF_KEY"

// ErrUnknownInterval is returned for codes outside the option table.
var ErrUnknownInterval = errors.New("unknown refresh interval")

type option struct {
	key   string
	unit  string
	count int
}

// Display order. The off entry comes first.
var table = []option{
	{key: "15s", unit: "second", count: 15},
	{key: "30s", unit: "second", count: 30},
	{key: "1m", unit: "minute", count: 1},
	{key: "5m", unit: "minute", count: 5},
	{key: "15m", unit: "minute", count: 15},
	{key: "30m", unit: "minute", count: 30},
	{key: "1h", unit: "hour", count: 1},
	{key: "2h", unit: "hour", count: 2},
	{key: "1d", unit: "day", count: 1},
}

// Option is one selectable entry of the interval picker.
type Option struct {
	Key   string
	Label string
}

// Keys returns the interval codes in display order, without OffKey.
func Keys() []string {
	keys := make([]string, len(table))
	for i, o := range table {
		keys[i] = o.key
	}
	return keys
}

// Known reports whether key is OffKey or a code of the option table.
func Known(key string) bool {
	return key == OffKey || slices.ContainsFunc(table, func(o option) bool { return o.key == key })
}

// Options returns the translated picker entries, off first.
func Options(tr i18n.Translator) []Option {
	opts := make([]Option, 0, len(table)+1)
	opts = append(opts, Option{Key: OffKey, Label: Label(tr, OffKey)})
	for _, o := range table {
		opts = append(opts, Option{Key: o.key, Label: Label(tr, o.key)})
	}
	return opts
}

// Label returns the display label of a key, or the key itself when unknown.
func Label(tr i18n.Translator, key string) string {
	if key == OffKey {
		return tr.T("monitoring~Refresh off")
	}
	for _, o := range table {
		if o.key == key {
			return tr.T("monitoring~{{count}} "+o.unit, o.count)
		}
	}
	return key
}

// FormatDuration renders d in the prometheus duration format ("1h", "1d").
func FormatDuration(d time.Duration) string {
	return model.Duration(d).String()
}

// ParseDuration parses a prometheus duration code.
func ParseDuration(code string) (time.Duration, error) {
	d, err := model.ParseDuration(code)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrUnknownInterval, code, err)
	}
	return time.Duration(d), nil
}

// SelectedKey returns the picker key for the current interval. A nil interval
// selects OffKey.
func SelectedKey(interval *time.Duration) (string, error) {
	if interval == nil {
		return OffKey, nil
	}
	key := FormatDuration(*interval)
	if !Known(key) {
		return "", fmt.Errorf("%w: %s", ErrUnknownInterval, key)
	}
	return key, nil
}

// MustSelectedKey is SelectedKey for intervals that come from the option
// table. It panics otherwise.
func MustSelectedKey(interval *time.Duration) string {
	key, err := SelectedKey(interval)
	if err != nil {
		panic(err)
	}
	return key
}

// Parse converts a picker key to an interval. OffKey returns nil.
func Parse(key string) (*time.Duration, error) {
	if key == OffKey {
		return nil, nil
	}
	if !Known(key) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInterval, key)
	}
	d, err := ParseDuration(key)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// OnSelect passes the interval of key to set. Unknown keys return an error
// and set is not called.
func OnSelect(key string, set func(*time.Duration)) error {
	d, err := Parse(key)
	if err != nil {
		return err
	}
	set(d)
	return nil
}

// Selector binds the externally owned current interval and its setter.
type Selector struct {
	current *time.Duration
	set     func(*time.Duration)
}

// NewSelector creates a selector for the current interval.
func NewSelector(current *time.Duration, set func(*time.Duration)) *Selector {
	return &Selector{current: current, set: set}
}

// Key returns the key of the current interval.
func (s *Selector) Key() (string, error) {
	return SelectedKey(s.current)
}

// Select applies key through the setter and remembers it as current.
func (s *Selector) Select(key string) error {
	return OnSelect(key, func(d *time.Duration) {
		s.current = d
		if s.set != nil {
			s.set(d)
		}
	})
}
