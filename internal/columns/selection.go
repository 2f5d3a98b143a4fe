package columns

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

// readOnlyColumns are always selected and never toggled.
var readOnlyColumns = sets.New(NameColumnID)

// Row is the presentation state of one column in the management list.
type Row struct {
	Column   ManagedColumn
	Checked  bool
	Disabled bool
}

// Selection is the working set of checked column ids while the column
// management modal is open. It is owned by a single modal and discarded when
// the modal closes.
type Selection struct {
	layout  Layout
	checked sets.Set[string]
}

// NewSelection seeds a selection from the layout's committed columns, or from
// its default columns when nothing was committed.
func NewSelection(layout Layout) (*Selection, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	s := &Selection{layout: layout}
	s.checked = s.seed()
	return s, nil
}

// MustNewSelection is NewSelection for static layouts. It panics on an
// invalid layout.
func MustNewSelection(layout Layout) *Selection {
	s, err := NewSelection(layout)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Selection) seed() sets.Set[string] {
	checked := sets.New[string]()

	// Ids the layout no longer declares can never be committed, so they are
	// dropped instead of occupying capacity.
	for _, col := range s.layout.Columns {
		if col.ID != "" && s.layout.SelectedColumns.Has(col.ID) {
			checked.Insert(col.ID)
		}
	}
	if checked.Len() == 0 {
		checked = s.layout.DefaultIDs()
	}

	for _, id := range readOnlyColumns.UnsortedList() {
		if s.layout.Has(id) {
			checked.Insert(id)
		}
	}

	if checked.Len() > MaxViewColumns {
		checked = s.truncate(checked)
	}
	return checked
}

// truncate keeps the read-only columns and then the first checked columns in
// layout order until capacity is reached.
func (s *Selection) truncate(checked sets.Set[string]) sets.Set[string] {
	result := checked.Intersection(readOnlyColumns)
	for _, col := range s.layout.Columns {
		if result.Len() >= MaxViewColumns {
			break
		}
		if checked.Has(col.ID) {
			result.Insert(col.ID)
		}
	}
	return result
}

// Layout returns the layout this selection was built from.
func (s *Selection) Layout() Layout {
	return s.layout
}

// AtCapacity reports whether no further column can be checked.
func (s *Selection) AtCapacity() bool {
	return s.checked.Len() >= MaxViewColumns
}

// IsChecked reports whether the column is currently selected.
func (s *Selection) IsChecked(id string) bool {
	return s.checked.Has(id)
}

// IsDisabled reports whether toggling the column is blocked. Checked columns
// can always be unchecked, except read-only ones.
func (s *Selection) IsDisabled(id string) bool {
	if !s.layout.Has(id) || readOnlyColumns.Has(id) {
		return true
	}
	return s.AtCapacity() && !s.checked.Has(id)
}

// Toggle flips the membership of a column and reports whether anything
// changed. Disabled columns are left untouched.
func (s *Selection) Toggle(id string) bool {
	if s.IsDisabled(id) {
		return false
	}

	if s.checked.Has(id) {
		s.checked.Delete(id)
	} else {
		s.checked.Insert(id)
	}
	return true
}

// Reset checks every default column and unchecks every additional one.
// Read-only columns stay checked.
func (s *Selection) Reset() {
	s.checked.Insert(s.layout.DefaultIDs().UnsortedList()...)
	for _, col := range s.layout.AdditionalColumns() {
		if !readOnlyColumns.Has(col.ID) {
			s.checked.Delete(col.ID)
		}
	}
}

// Checked returns a copy of the working set.
func (s *Selection) Checked() sets.Set[string] {
	return s.checked.Clone()
}

// Commit returns the checked ids in the layout's declared order. Read-only
// columns declared by the layout are always included.
func (s *Selection) Commit() []string {
	ordered := []string{}
	for _, col := range s.layout.Columns {
		if col.ID == "" {
			continue
		}
		if s.checked.Has(col.ID) || readOnlyColumns.Has(col.ID) {
			ordered = append(ordered, col.ID)
		}
	}
	return ordered
}

// Rows returns the presentation state of every column in layout order.
func (s *Selection) Rows() []Row {
	return s.rows(s.layout.Columns)
}

// DefaultRows returns the rows of the default columns.
func (s *Selection) DefaultRows() []Row {
	return s.rows(s.layout.DefaultColumns())
}

// AdditionalRows returns the rows of the additional columns.
func (s *Selection) AdditionalRows() []Row {
	return s.rows(s.layout.AdditionalColumns())
}

func (s *Selection) rows(cols []ManagedColumn) []Row {
	rows := make([]Row, len(cols))
	for i, col := range cols {
		rows[i] = Row{
			Column:   col,
			Checked:  col.ID != "" && s.checked.Has(col.ID),
			Disabled: s.IsDisabled(col.ID),
		}
	}
	return rows
}
