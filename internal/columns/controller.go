package columns

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/renato0307/kview/internal/logging"
	"github.com/renato0307/kview/internal/settings"
)

// ErrFinished is returned when a controller is used after commit or cancel.
var ErrFinished = errors.New("column management already finished")

// ColumnSettings is the settings store column choices are committed to.
// Set must apply update as an atomic read-modify-write.
type ColumnSettings interface {
	Set(ctx context.Context, update func(prev settings.TableColumns) settings.TableColumns) error
}

// Controller binds a Selection to the settings store and to the cancel and
// close callbacks of whatever hosts it.
type Controller struct {
	*Selection

	store    ColumnSettings
	cancel   func()
	close    func()
	finished bool
}

// NewController opens column management for a layout. cancel and close may be
// nil.
func NewController(layout Layout, store ColumnSettings, cancel, close func()) (*Controller, error) {
	sel, err := NewSelection(layout)
	if err != nil {
		return nil, err
	}
	return &Controller{
		Selection: sel,
		store:     store,
		cancel:    cancel,
		close:     close,
	}, nil
}

// Commit persists the ordered selection under the layout id and closes the
// controller. Nothing is closed when persisting fails.
func (c *Controller) Commit(ctx context.Context) ([]string, error) {
	return c.Snapshot().Save(ctx)
}

// Snapshot captures the ordered selection for a later Save. Hosts that
// persist off their event loop take the snapshot on it.
func (c *Controller) Snapshot() PendingCommit {
	return PendingCommit{ctrl: c, IDs: c.Selection.Commit()}
}

// PendingCommit is a selection captured by Snapshot.
type PendingCommit struct {
	ctrl *Controller
	IDs  []string
}

// Save persists the captured ids and closes the controller.
func (p PendingCommit) Save(ctx context.Context) ([]string, error) {
	c := p.ctrl
	if c.finished {
		return nil, ErrFinished
	}

	if err := Persist(ctx, c.store, c.layout.ID, p.IDs); err != nil {
		return nil, err
	}

	c.finished = true
	if c.close != nil {
		c.close()
	}
	return p.IDs, nil
}

// Cancel discards the selection without touching the settings store.
func (c *Controller) Cancel() error {
	if c.finished {
		return ErrFinished
	}
	c.finished = true
	if c.cancel != nil {
		c.cancel()
	}
	return nil
}

// Finished reports whether Commit or Cancel already ran.
func (c *Controller) Finished() bool {
	return c.finished
}

// Persist stores ids under layoutID, keeping the choices of every other
// layout.
func Persist(ctx context.Context, store ColumnSettings, layoutID string, ids []string) error {
	err := store.Set(ctx, func(prev settings.TableColumns) settings.TableColumns {
		next := make(settings.TableColumns, len(prev)+1)
		maps.Copy(next, prev)
		next[layoutID] = slices.Clone(ids)
		return next
	})
	if err != nil {
		return fmt.Errorf("failed to save columns for %s: %w", layoutID, err)
	}

	logging.Debug("Saved table columns", "layout", layoutID, "columns", ids)
	return nil
}

// SelectedFor returns the committed choice of one layout as a set.
func SelectedFor(all settings.TableColumns, layoutID string) sets.Set[string] {
	return sets.New(all[layoutID]...)
}
