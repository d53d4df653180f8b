package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cardfx/internal/ir"
)

// PairView is a pair interaction with card ids resolved.
type PairView struct {
	IndexA   int         `json:"index_a"`
	IndexB   int         `json:"index_b"`
	CardA    string      `json:"card_a"`
	CardB    string      `json:"card_b"`
	Strength float64     `json:"strength"`
	Effects  []ir.Effect `json:"effects"`
}

// InteractionsResult is the payload of the interactions command.
type InteractionsResult struct {
	Deck  string     `json:"deck,omitempty"`
	Cards int        `json:"cards"`
	Pairs []PairView `json:"pairs"`
}

// NewInteractionsCommand creates the interactions command.
func NewInteractionsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "interactions <manifest>",
		Short: "List significant card pair interactions",
		Long: `Score every card pair in a deck manifest and list the pairs whose
strength exceeds the significance threshold, in scan order.

The manifest is a directory of .cue files, a single .cue file, or a
.yaml/.yml file.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractions(rootOpts, args[0], cmd)
		},
	}
}

func runInteractions(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	deck, err := LoadDeck(path)
	if err != nil {
		return f.fail(ExitCommandError, err)
	}
	f.VerboseLog("Loaded %d card(s) from %s", len(deck.Cards), path)

	pairs := opts.engine().CalculateCardInteractions(deck.Cards)
	result := InteractionsResult{
		Deck:  deck.Name,
		Cards: len(deck.Cards),
		Pairs: pairViews(deck.Cards, pairs),
	}

	return f.Render(result, func(w io.Writer) {
		writePairs(w, result.Pairs)
	})
}

func pairViews(cards []ir.Card, pairs []ir.PairInteraction) []PairView {
	out := make([]PairView, len(pairs))
	for i, p := range pairs {
		out[i] = PairView{
			IndexA:   p.IndexA,
			IndexB:   p.IndexB,
			CardA:    cards[p.IndexA].ID,
			CardB:    cards[p.IndexB].ID,
			Strength: p.Strength,
			Effects:  p.Effects,
		}
	}
	return out
}

func writePairs(w io.Writer, pairs []PairView) {
	if len(pairs) == 0 {
		fmt.Fprintln(w, "No significant interactions.")
		return
	}
	for _, p := range pairs {
		fmt.Fprintf(w, "%s <-> %s  %.4f  %s\n", p.CardA, p.CardB, p.Strength, joinEffects(p.Effects))
	}
	fmt.Fprintf(w, "\n%d interaction(s)\n", len(pairs))
}

func joinEffects(effects []ir.Effect) string {
	parts := make([]string, len(effects))
	for i, e := range effects {
		parts[i] = string(e)
	}
	return strings.Join(parts, ", ")
}
