package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/cardfx/internal/compiler"
	"github.com/roach88/cardfx/internal/ir"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool                 `json:"valid"`
	Cards    int                  `json:"cards"`
	Errors   []ir.ValidationError `json:"errors,omitempty"`
	Warnings []ir.ValidationError `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Check a deck manifest",
		Long: `Check a deck manifest against the built-in tables.

Errors (empty or duplicate card ids, blank tags or keys) fail validation.
Warnings flag input the engine accepts but ignores, such as tags no rule
mentions or attributes without a layout modifier.

Exit codes:
  0 - Manifest is valid (warnings allowed)
  1 - Manifest has errors
  2 - Manifest could not be loaded`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	deck, err := LoadDeck(path)
	if err != nil {
		return f.fail(ExitCommandError, err)
	}
	f.VerboseLog("Validating %d card(s) from %s", len(deck.Cards), path)

	result := ValidationResult{Cards: len(deck.Cards)}
	for _, v := range compiler.ValidateDeck(deck, opts.engine().Table()) {
		if v.Warning {
			result.Warnings = append(result.Warnings, v)
		} else {
			result.Errors = append(result.Errors, v)
		}
	}
	result.Valid = len(result.Errors) == 0

	if !result.Valid {
		if f.Format == "json" {
			if err := f.Error(ErrCodeValidation, fmt.Sprintf("%d validation error(s)", len(result.Errors)), result); err != nil {
				return err
			}
		} else {
			writeValidation(f.Writer, result)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(result.Errors)))
	}

	return f.Render(result, func(w io.Writer) {
		writeValidation(w, result)
	})
}

func writeValidation(w io.Writer, result ValidationResult) {
	for _, e := range result.Errors {
		fmt.Fprintf(w, "error:   %s\n", e.Error())
	}
	for _, e := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", e.Error())
	}
	if result.Valid {
		fmt.Fprintf(w, "✓ %d card(s) valid", result.Cards)
		if n := len(result.Warnings); n > 0 {
			fmt.Fprintf(w, " (%d warning(s))", n)
		}
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, "✗ %d error(s), %d warning(s)\n", len(result.Errors), len(result.Warnings))
}
