package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/cardfx/internal/store"
)

// AnalyzeOptions holds flags for the analyze command.
type AnalyzeOptions struct {
	*RootOptions
	DBPath string
}

// AnalyzeResult is the payload of the analyze command.
type AnalyzeResult struct {
	RunID       string     `json:"run_id"`
	Seq         int64      `json:"seq"`
	Deck        string     `json:"deck,omitempty"`
	DeckDigest  string     `json:"deck_digest"`
	Cards       int        `json:"cards"`
	Pairs       []PairView `json:"pairs"`
	Modifiers   int        `json:"modifiers"`
	PreviousRun string     `json:"previous_run,omitempty"`
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalyzeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "analyze <manifest>",
		Short: "Analyze a deck and record the run",
		Long: `Compute pair interactions and layout modifiers for a deck and store the
run in the history database.

If the same deck (same cards, tags and attributes, in the same order) was
analyzed before, the previous run id is reported.

Examples:
  cardfx analyze ./deck --db ./cardfx.db
  CARDFX_DB_PATH=./cardfx.db cardfx analyze deck.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", rootOpts.Config.DBPath, "history database path (env CARDFX_DB_PATH)")

	return cmd
}

func runAnalyze(opts *AnalyzeOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	ctx := cmd.Context()

	if opts.DBPath == "" {
		return f.fail(ExitCommandError, &LoadError{Code: ErrCodeInvalidInput, Message: "--db is required"})
	}

	deck, err := LoadDeck(path)
	if err != nil {
		return f.fail(ExitCommandError, err)
	}

	analysis, err := opts.engine().Analyze(deck)
	if err != nil {
		return f.fail(ExitCommandError, err)
	}

	st, err := store.Open(opts.DBPath, store.WithLogger(opts.log()))
	if err != nil {
		return f.fail(ExitCommandError, &LoadError{Code: ErrCodeStore, Message: err.Error()})
	}
	defer st.Close()

	result := AnalyzeResult{
		Deck:       deck.Name,
		DeckDigest: analysis.DeckDigest,
		Cards:      len(deck.Cards),
		Pairs:      pairViews(deck.Cards, analysis.Interactions),
	}
	for _, cm := range analysis.Modifiers {
		result.Modifiers += len(cm.Modifiers)
	}

	prev, err := st.LatestRunForDigest(ctx, analysis.DeckDigest)
	switch {
	case err == nil:
		result.PreviousRun = prev.ID
	case !errors.Is(err, store.ErrRunNotFound):
		return f.fail(ExitCommandError, &LoadError{Code: ErrCodeStore, Message: err.Error()})
	}

	run, err := st.WriteRun(ctx, store.NewRun(opts.IDs, opts.Now(), deck, analysis))
	if err != nil {
		return f.fail(ExitCommandError, &LoadError{Code: ErrCodeStore, Message: err.Error()})
	}
	result.RunID = run.ID
	result.Seq = run.Seq

	return f.Render(result, func(w io.Writer) {
		fmt.Fprintf(w, "Run %s (#%d)\n", result.RunID, result.Seq)
		fmt.Fprintf(w, "Deck digest: %s\n", result.DeckDigest)
		if result.PreviousRun != "" {
			fmt.Fprintf(w, "Previously analyzed as run %s\n", result.PreviousRun)
		}
		fmt.Fprintf(w, "%d card(s), %d modifier(s)\n\n", result.Cards, result.Modifiers)
		writePairs(w, result.Pairs)
	})
}
