package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cardfx/internal/compiler"
	"github.com/roach88/cardfx/internal/engine"
	"github.com/roach88/cardfx/internal/ir"
)

// StrengthOptions holds flags for the strength command.
type StrengthOptions struct {
	*RootOptions
	TagsA   []string
	TagsB   []string
	Explain bool
}

// StrengthResult is the payload of the strength command.
type StrengthResult struct {
	TagsA         []string                  `json:"tags_a"`
	TagsB         []string                  `json:"tags_b"`
	Strength      float64                   `json:"strength"`
	Significant   bool                      `json:"significant"`
	Contributions []engine.RuleContribution `json:"contributions,omitempty"`
}

// NewStrengthCommand creates the strength command.
func NewStrengthCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StrengthOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "strength --a <tags> --b <tags>",
		Short: "Score the interaction between two tag sets",
		Long: `Compute the interaction strength between two tag sets.

Examples:
  cardfx strength --a javascript,react --b javascript
  cardfx strength --a unity --b audio --explain`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrength(opts, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.TagsA, "a", nil, "first card's tags (comma separated)")
	cmd.Flags().StringSliceVar(&opts.TagsB, "b", nil, "second card's tags (comma separated)")
	cmd.Flags().BoolVar(&opts.Explain, "explain", false, "list the rules that contributed")

	return cmd
}

func runStrength(opts *StrengthOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	a := compiler.NormalizeTags(opts.TagsA)
	b := compiler.NormalizeTags(opts.TagsB)
	eng := opts.engine()

	s := eng.CalculateInteractionStrength(a, b)
	result := StrengthResult{
		TagsA:       a,
		TagsB:       b,
		Strength:    s,
		Significant: s > engine.SignificanceThreshold,
	}
	if opts.Explain {
		result.Contributions = eng.Explain(a, b)
	}

	return f.Render(result, func(w io.Writer) {
		fmt.Fprintf(w, "%.4f", result.Strength)
		if result.Significant {
			fmt.Fprintln(w, " (significant)")
		} else {
			fmt.Fprintln(w, " (below threshold)")
		}
		for _, c := range result.Contributions {
			fmt.Fprintf(w, "  %-24s %-10s %d/%d  ratio %.4f  +%.4f\n",
				strings.Join(c.Rule.Tags, "+"), c.Rule.Effect,
				c.MatchCountA, c.MatchCountB, c.MatchRatio, c.Contribution)
		}
	})
}

// ApplicableOptions holds flags for the applicable command.
type ApplicableOptions struct {
	*RootOptions
	Tags []string
}

// ApplicableResult is the payload of the applicable command.
type ApplicableResult struct {
	Tags  []string             `json:"tags"`
	Rules []ir.InteractionRule `json:"rules"`
}

// NewApplicableCommand creates the applicable command.
func NewApplicableCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplicableOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "applicable --tags <tags>",
		Short: "List the rules a tag set touches",
		Long: `List, in table order, every interaction rule sharing at least one tag
with the given set.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApplicable(opts, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Tags, "tags", nil, "tags (comma separated)")

	return cmd
}

func runApplicable(opts *ApplicableOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	tags := compiler.NormalizeTags(opts.Tags)
	result := ApplicableResult{
		Tags:  tags,
		Rules: opts.engine().ApplicableInteractions(tags),
	}

	return f.Render(result, func(w io.Writer) {
		if len(result.Rules) == 0 {
			fmt.Fprintln(w, "No applicable rules.")
			return
		}
		writeRules(w, result.Rules)
	})
}

func writeRules(w io.Writer, rules []ir.InteractionRule) {
	for _, r := range rules {
		fmt.Fprintf(w, "%-28s %-10s %.2f  %s\n", strings.Join(r.Tags, "+"), r.Effect, r.Strength, r.Description)
	}
}
