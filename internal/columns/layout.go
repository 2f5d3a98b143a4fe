// Package columns implements column management for resource tables: which
// columns a table shows, how the user toggles them, and how the choice is
// committed to user settings.
package columns

import (
	"errors"
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"
)

const (
	// MaxViewColumns is the maximum number of columns a resource table shows.
	MaxViewColumns = 9

	// NameColumnID identifies the column that is always shown and cannot be
	// toggled.
	NameColumnID = "name"

	// NamespaceColumnID identifies the column that is only shown while all
	// namespaces are listed.
	NamespaceColumnID = "namespace"
)

// ErrInvalidLayout is returned for layouts that cannot drive column
// management. It indicates a static data mismatch, not a user error.
var ErrInvalidLayout = errors.New("invalid column layout")

// ManagedColumn describes one column a layout can show.
// A column with an empty ID is never selectable.
type ManagedColumn struct {
	ID         string
	Title      string
	Additional bool // not shown by default
}

// Layout is the named, ordered set of candidate columns for one resource
// table.
type Layout struct {
	ID              string           // settings key for this table
	Columns         []ManagedColumn  // declared order, also the display order
	SelectedColumns sets.Set[string] // previously committed choice, may be empty
	Type            string           // display label for the resource kind
}

// DefaultColumns returns the columns shown when nothing was committed yet.
func (l Layout) DefaultColumns() []ManagedColumn {
	result := []ManagedColumn{}
	for _, col := range l.Columns {
		if col.ID != "" && !col.Additional {
			result = append(result, col)
		}
	}
	return result
}

// AdditionalColumns returns the opt-in columns.
func (l Layout) AdditionalColumns() []ManagedColumn {
	result := []ManagedColumn{}
	for _, col := range l.Columns {
		if col.Additional {
			result = append(result, col)
		}
	}
	return result
}

// DefaultIDs returns the ids of DefaultColumns.
func (l Layout) DefaultIDs() sets.Set[string] {
	ids := sets.New[string]()
	for _, col := range l.DefaultColumns() {
		ids.Insert(col.ID)
	}
	return ids
}

// Has reports whether the layout declares a column with the given id.
func (l Layout) Has(id string) bool {
	if id == "" {
		return false
	}
	for _, col := range l.Columns {
		if col.ID == id {
			return true
		}
	}
	return false
}

// Column returns the column with the given id.
func (l Layout) Column(id string) (ManagedColumn, bool) {
	for _, col := range l.Columns {
		if id != "" && col.ID == id {
			return col, true
		}
	}
	return ManagedColumn{}, false
}

// Validate checks the static shape of a layout.
func (l Layout) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("%w: missing layout id", ErrInvalidLayout)
	}

	seen := sets.New[string]()
	for _, col := range l.Columns {
		if col.ID == "" {
			continue
		}
		if seen.Has(col.ID) {
			return fmt.Errorf("%w: %s declares column %q twice", ErrInvalidLayout, l.ID, col.ID)
		}
		if col.Additional && readOnlyColumns.Has(col.ID) {
			return fmt.Errorf("%w: %s declares read-only column %q as additional", ErrInvalidLayout, l.ID, col.ID)
		}
		seen.Insert(col.ID)
	}

	// Read-only columns are always shown, so they count against the budget.
	defaults := l.DefaultIDs().Union(seen.Intersection(readOnlyColumns))
	if defaults.Len() == 0 {
		return fmt.Errorf("%w: %s has no default columns", ErrInvalidLayout, l.ID)
	}
	if defaults.Len() > MaxViewColumns {
		return fmt.Errorf("%w: %s has %d default columns, at most %d are allowed",
			ErrInvalidLayout, l.ID, defaults.Len(), MaxViewColumns)
	}
	return nil
}

// Visible returns the ordered ids a table built from this layout shows.
func (l Layout) Visible() ([]string, error) {
	sel, err := NewSelection(l)
	if err != nil {
		return nil, err
	}
	return sel.Commit(), nil
}
