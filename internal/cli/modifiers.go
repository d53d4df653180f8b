package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/cardfx/internal/ir"
)

// ModifiersResult is the payload of the modifiers command.
type ModifiersResult struct {
	Deck  string             `json:"deck,omitempty"`
	Cards []ir.CardModifiers `json:"cards"`
}

// NewModifiersCommand creates the modifiers command.
func NewModifiersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "modifiers <manifest>",
		Short: "List layout modifiers for every card",
		Long: `Resolve each card's private attributes to layout modifiers.

Attributes are visited in declaration order. Attributes without a table
entry, and values a by-value entry does not list, produce nothing.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModifiers(rootOpts, args[0], cmd)
		},
	}
}

func runModifiers(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	deck, err := LoadDeck(path)
	if err != nil {
		return f.fail(ExitCommandError, err)
	}

	eng := opts.engine()
	result := ModifiersResult{Deck: deck.Name, Cards: make([]ir.CardModifiers, len(deck.Cards))}
	for i, c := range deck.Cards {
		result.Cards[i] = ir.CardModifiers{
			CardIndex: i,
			CardID:    c.ID,
			Modifiers: eng.CalculateLayoutModifiers(c.Private),
		}
	}

	return f.Render(result, func(w io.Writer) {
		for _, cm := range result.Cards {
			fmt.Fprintf(w, "%s:\n", cm.CardID)
			if len(cm.Modifiers) == 0 {
				fmt.Fprintln(w, "  (none)")
				continue
			}
			for _, m := range cm.Modifiers {
				fmt.Fprintf(w, "  %s=%s  %s  %s\n", m.Tag, m.Value.Key(), m.Effect, m.Description)
			}
		}
	})
}
