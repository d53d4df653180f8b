package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/cardfx/internal/ir"
	"github.com/roach88/cardfx/internal/rules"
)

// RulesResult is the payload of the rules command.
type RulesResult struct {
	TableVersion string               `json:"table_version"`
	Rules        []ir.InteractionRule `json:"rules"`
	Modifiers    []ModifierView       `json:"modifiers"`
	Problems     []ir.ValidationError `json:"problems,omitempty"`
}

// ModifierView is one layout table entry. Values is empty for entries
// that apply whatever the attribute value is.
type ModifierView struct {
	Key    string                           `json:"key"`
	Direct *ir.ModifierDescriptor           `json:"direct,omitempty"`
	Values map[string]ir.ModifierDescriptor `json:"values,omitempty"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Show and check the built-in tables",
		Long: `Print the interaction rule table in evaluation order and the layout
modifier table by attribute key, then check both tables for problems.

Exit codes:
  0 - Tables are valid
  1 - Tables have errors`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(rootOpts, cmd)
		},
	}
}

func runRules(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	table := opts.engine().Table()

	result := RulesResult{
		TableVersion: ir.TableVersion,
		Rules:        table.Rules(),
		Modifiers:    modifierViews(table),
		Problems:     table.Validate(),
	}

	if err := f.Render(result, func(w io.Writer) {
		fmt.Fprintf(w, "Interaction rules (table v%s):\n", result.TableVersion)
		writeRules(w, result.Rules)
		fmt.Fprintln(w, "\nLayout modifiers:")
		for _, m := range result.Modifiers {
			if m.Direct != nil {
				fmt.Fprintf(w, "%-14s *          %-10s %s\n", m.Key, m.Direct.Effect, m.Direct.Description)
				continue
			}
			for _, v := range slices.Sorted(maps.Keys(m.Values)) {
				d := m.Values[v]
				fmt.Fprintf(w, "%-14s %-10s %-10s %s\n", m.Key, v, d.Effect, d.Description)
			}
		}
		for _, p := range result.Problems {
			fmt.Fprintf(w, "\n%s", p.Error())
		}
		if len(result.Problems) > 0 {
			fmt.Fprintln(w)
		}
	}); err != nil {
		return err
	}

	if ir.HasErrors(result.Problems) {
		return NewExitError(ExitFailure, "rule tables have errors")
	}
	return nil
}

func modifierViews(table *rules.Table) []ModifierView {
	keys := table.ModifierKeys()
	out := make([]ModifierView, 0, len(keys))
	for _, k := range keys {
		entry, _ := table.Modifier(k)
		view := ModifierView{Key: k}
		switch e := entry.(type) {
		case ir.Direct:
			d := e.Descriptor
			view.Direct = &d
		case ir.ByValue:
			view.Values = map[string]ir.ModifierDescriptor(e)
		}
		out = append(out, view)
	}
	return out
}
