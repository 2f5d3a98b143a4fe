package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/cli-runtime/pkg/printers"
	"k8s.io/kubectl/pkg/util/templates"

	"github.com/renato0307/kview/internal/columns"
	"github.com/renato0307/kview/internal/logging"
	"github.com/renato0307/kview/internal/screens"
)

var (
	columnsLong = templates.LongDesc(`
		Manage the columns resource tables show.

		Choices are saved in the same user settings the console uses, so they
		apply the next time the table is opened. At most 9 columns are shown
		and the name column is always one of them.`)

	columnsExample = templates.Examples(`
		# Show the columns of the pods table
		kview columns list pods

		# Show the pod IP and hide the node
		kview columns toggle pods ip node

		# Go back to the default columns
		kview columns reset pods

		# Choose the columns interactively
		kview columns edit deployments`)
)

// columnsEditor is the interactive column chooser of "columns edit".
// It returns the ids the user picked.
type columnsEditor func(ctx context.Context, ctrl *columns.Controller) ([]string, error)

func newColumnsCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "columns",
		Short:   "Manage the columns of resource tables",
		Long:    columnsLong,
		Example: columnsExample,
	}

	cmd.AddCommand(&cobra.Command{
		Use:               "list RESOURCE",
		Short:             "List the columns of a resource table and whether they are shown",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeResources,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := o.openColumns(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printColumns(cmd.OutOrStdout(), ctrl)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:               "toggle RESOURCE COLUMN...",
		Short:             "Show hidden columns and hide shown ones",
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: completeResources,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := o.openColumns(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := toggleColumns(ctrl, args[1:]); err != nil {
				return err
			}
			return commitColumns(cmd.Context(), cmd.OutOrStdout(), ctrl)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:               "reset RESOURCE",
		Short:             "Show the default columns of a resource table",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeResources,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := o.openColumns(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ctrl.Reset()
			return commitColumns(cmd.Context(), cmd.OutOrStdout(), ctrl)
		},
	})

	cmd.AddCommand(newColumnsEditCmd(o, editColumnsForm))

	return cmd
}

func newColumnsEditCmd(o *options, edit columnsEditor) *cobra.Command {
	return &cobra.Command{
		Use:               "edit RESOURCE",
		Short:             "Choose the columns of a resource table interactively",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeResources,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := o.openColumns(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			chosen, err := edit(cmd.Context(), ctrl)
			if errors.Is(err, huh.ErrUserAborted) {
				ctrl.Cancel()
				fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled, columns unchanged")
				return nil
			}
			if err != nil {
				return err
			}

			if err := selectExactly(ctrl, chosen); err != nil {
				return err
			}
			return commitColumns(cmd.Context(), cmd.OutOrStdout(), ctrl)
		},
	}
}

// openColumns seeds a column controller for resource from the stored choice.
func (o *options) openColumns(ctx context.Context, resource string) (*columns.Controller, error) {
	cfg, ok := screens.ScreenConfigByID(resource)
	if !ok || !cfg.Managed() {
		return nil, fmt.Errorf("unknown resource %q (valid: %s)", resource, strings.Join(managedResources(), ", "))
	}

	s, err := o.connect(ctx)
	if err != nil {
		return nil, err
	}

	all, _, err := s.columns.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read column settings: %w", err)
	}

	return columns.NewController(cfg.Layout(columns.SelectedFor(all, cfg.LayoutID)), s.columns, nil, nil)
}

func managedResources() []string {
	var ids []string
	for _, cfg := range screens.ScreenConfigs() {
		if cfg.Managed() {
			ids = append(ids, cfg.ID)
		}
	}
	return ids
}

func completeResources(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return managedResources(), cobra.ShellCompDirectiveNoFileComp
}

func printColumns(out io.Writer, ctrl *columns.Controller) error {
	w := printers.GetNewTabWriter(out)
	fmt.Fprintln(w, "COLUMN\tTITLE\tSHOWN\tDEFAULT")
	for _, row := range ctrl.Rows() {
		if row.Column.ID == "" {
			continue
		}
		shown := "no"
		switch {
		case row.Checked && row.Column.ID == columns.NameColumnID:
			shown = "always"
		case row.Checked:
			shown = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", row.Column.ID, row.Column.Title, shown, !row.Column.Additional)
	}
	return w.Flush()
}

// toggleColumns flips every id. Nothing is committed when one of them cannot
// be toggled.
func toggleColumns(ctrl *columns.Controller, ids []string) error {
	layout := ctrl.Layout()
	for _, id := range ids {
		if !layout.Has(id) {
			return fmt.Errorf("%s has no column %q", layout.Type, id)
		}
		if !ctrl.Toggle(id) {
			if id == columns.NameColumnID {
				return fmt.Errorf("column %q is always shown", id)
			}
			return fmt.Errorf("cannot show %q: at most %d columns can be shown", id, columns.MaxViewColumns)
		}
	}
	return nil
}

// selectExactly makes chosen the selection. Columns are unchecked before
// others are checked so capacity is never exceeded midway.
func selectExactly(ctrl *columns.Controller, chosen []string) error {
	layout := ctrl.Layout()
	for _, id := range chosen {
		if !layout.Has(id) {
			return fmt.Errorf("%s has no column %q", layout.Type, id)
		}
	}

	want := sets.New(chosen...)
	want.Insert(columns.NameColumnID)

	var add []string
	for _, row := range ctrl.Rows() {
		id := row.Column.ID
		if id == "" || id == columns.NameColumnID {
			continue
		}
		switch {
		case row.Checked && !want.Has(id):
			ctrl.Toggle(id)
		case !row.Checked && want.Has(id):
			add = append(add, id)
		}
	}
	return toggleColumns(ctrl, add)
}

func commitColumns(ctx context.Context, out io.Writer, ctrl *columns.Controller) error {
	ids, err := ctrl.Commit(ctx)
	if err != nil {
		return err
	}
	logging.Info("Columns saved from the command line", "layout", ctrl.Layout().ID, "columns", ids)
	fmt.Fprintf(out, "Saved %s columns: %s\n", ctrl.Layout().Type, strings.Join(ids, ", "))
	return nil
}

// editColumnsForm asks for the columns with a multi-select. The name column
// is not offered since it cannot be hidden.
func editColumnsForm(ctx context.Context, ctrl *columns.Controller) ([]string, error) {
	layout := ctrl.Layout()

	var options []huh.Option[string]
	for _, row := range ctrl.Rows() {
		id := row.Column.ID
		if id == "" || id == columns.NameColumnID {
			continue
		}
		label := row.Column.Title
		if row.Column.Additional {
			label += " (additional)"
		}
		options = append(options, huh.NewOption(label, id).Selected(row.Checked))
	}

	limit := columns.MaxViewColumns
	if layout.Has(columns.NameColumnID) {
		limit--
	}

	var chosen []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(fmt.Sprintf("%s columns", layout.Type)).
				Description(fmt.Sprintf("Name is always shown. Pick up to %d more.", limit)).
				Options(options...).
				Limit(limit).
				Value(&chosen),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}
	return chosen, nil
}
