package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/printers"
	"k8s.io/kubectl/pkg/util/templates"
	"sigs.k8s.io/yaml"

	"github.com/renato0307/kview/internal/i18n"
	"github.com/renato0307/kview/internal/interval"
	"github.com/renato0307/kview/internal/k8s"
)

// taxonomy is the YAML document printed by "kinds -o yaml".
type taxonomy struct {
	Kinds           []k8s.Kind   `json:"kinds"`
	PullPolicies    []k8s.Choice `json:"pullPolicies,omitempty"`
	RestartPolicies []k8s.Choice `json:"restartPolicies,omitempty"`
	HookActions     []k8s.Choice `json:"hookActions,omitempty"`
	VolumeSources   []k8s.Choice `json:"volumeSources,omitempty"`
}

func newKindsCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "kinds [KIND]",
		Short: "Print the resource kinds and policy tables kview knows about",
		Example: templates.Examples(`
			# Print every table
			kview kinds

			# Print the tables as YAML
			kview kinds -o yaml

			# Print one kind with its API coordinates
			kview kinds deployment -o yaml`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := taxonomy{
				Kinds:           k8s.Kinds(),
				PullPolicies:    k8s.PullPolicies(),
				RestartPolicies: k8s.RestartPolicies(),
				HookActions:     k8s.HookActions(),
				VolumeSources:   k8s.VolumeSources(),
			}
			if len(args) == 1 {
				kind, ok := k8s.KindByID(args[0])
				if !ok {
					return fmt.Errorf("unknown kind %q", args[0])
				}
				doc = taxonomy{Kinds: []k8s.Kind{kind}}
			}

			switch output {
			case "", "table":
				return printTaxonomy(cmd.OutOrStdout(), doc)
			case "yaml":
				return printTaxonomyYAML(cmd.OutOrStdout(), doc)
			default:
				return fmt.Errorf("unknown output format %q (valid: table, yaml)", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, yaml)")
	return cmd
}

func printTaxonomyYAML(out io.Writer, doc taxonomy) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode kinds: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func printTaxonomy(out io.Writer, doc taxonomy) error {
	w := printers.GetNewTabWriter(out)

	fmt.Fprintln(w, "KIND\tID\tLABEL\tPLURAL\tGROUP\tVERSION\tRESOURCE")
	for _, kind := range doc.Kinds {
		gvr := kind.GroupVersionResource()
		group := gvr.Group
		if group == "" {
			group = "core"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			kind.Kind, kind.ID, kind.Label, kind.LabelPlural, group, gvr.Version, gvr.Resource)
	}

	sections := []struct {
		title   string
		choices []k8s.Choice
	}{
		{"PULL POLICY", doc.PullPolicies},
		{"RESTART POLICY", doc.RestartPolicies},
		{"HOOK ACTION", doc.HookActions},
		{"VOLUME SOURCE", doc.VolumeSources},
	}
	for _, section := range sections {
		if len(section.choices) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\tLABEL\tWEIGHT\tDEFAULT\n", section.title)
		for _, choice := range section.choices {
			id := choice.ID
			if choice.Value != "" {
				id = choice.Value
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%t\n", id, choice.Label, choice.Weight, choice.Default)
		}
	}
	return w.Flush()
}

func newIntervalsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "intervals",
		Short: "Print the refresh intervals accepted by --refresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printIntervals(cmd.OutOrStdout(), i18n.New(o.cfg.Language))
		},
	}
}

func printIntervals(out io.Writer, tr i18n.Translator) error {
	w := printers.GetNewTabWriter(out)
	fmt.Fprintln(w, "KEY\tLABEL\tSECONDS")
	for _, opt := range interval.Options(tr) {
		d, err := interval.Parse(opt.Key)
		if err != nil {
			return err
		}
		seconds := "-"
		if d != nil {
			seconds = fmt.Sprintf("%.0f", d.Seconds())
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", opt.Key, opt.Label, seconds)
	}
	return w.Flush()
}
