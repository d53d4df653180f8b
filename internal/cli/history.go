package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/cardfx/internal/ir"
	"github.com/roach88/cardfx/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DBPath string
	Limit  int
	RunID  string
	Delete string
}

// HistoryResult is the payload of the history command when listing runs.
type HistoryResult struct {
	Runs []store.RunSummary `json:"runs"`
}

// DeleteResult is the payload of history --delete.
type DeleteResult struct {
	Deleted string `json:"deleted"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or show stored analysis runs",
		Long: `List runs recorded by analyze, newest first, or show one run in full.

Examples:
  cardfx history --db ./cardfx.db
  cardfx history --db ./cardfx.db --limit 5
  cardfx history --db ./cardfx.db --run <run-id> --format json
  cardfx history --db ./cardfx.db --delete <run-id>`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", rootOpts.Config.DBPath, "history database path (env CARDFX_DB_PATH)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 for all)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show a single run")
	cmd.Flags().StringVar(&opts.Delete, "delete", "", "delete a run")
	cmd.MarkFlagsMutuallyExclusive("run", "delete")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	ctx := cmd.Context()

	if opts.DBPath == "" {
		return f.fail(ExitCommandError, &LoadError{Code: ErrCodeInvalidInput, Message: "--db is required"})
	}
	// Reading history must not create an empty database as a side effect.
	if _, err := os.Stat(opts.DBPath); err != nil {
		return f.fail(ExitCommandError, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("database not found: %s", opts.DBPath)})
	}

	st, err := store.Open(opts.DBPath, store.WithLogger(opts.log()))
	if err != nil {
		return f.fail(ExitCommandError, &LoadError{Code: ErrCodeStore, Message: err.Error()})
	}
	defer st.Close()

	if opts.Delete != "" {
		if _, err := st.ReadRun(ctx, opts.Delete); errors.Is(err, store.ErrRunNotFound) {
			return f.fail(ExitCommandError, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("run %s not found", opts.Delete)})
		}
		if err := st.DeleteRun(ctx, opts.Delete); err != nil {
			return f.fail(ExitCommandError, &LoadError{Code: ErrCodeStore, Message: err.Error()})
		}
		result := DeleteResult{Deleted: opts.Delete}
		return f.Render(result, func(w io.Writer) {
			fmt.Fprintf(w, "Deleted run %s\n", result.Deleted)
		})
	}

	if opts.RunID != "" {
		run, err := st.ReadRun(ctx, opts.RunID)
		if errors.Is(err, store.ErrRunNotFound) {
			return f.fail(ExitCommandError, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("run %s not found", opts.RunID)})
		}
		if err != nil {
			return f.fail(ExitCommandError, &LoadError{Code: ErrCodeStore, Message: err.Error()})
		}
		return f.Render(run, func(w io.Writer) {
			writeRun(w, run)
		})
	}

	runs, err := st.ListRuns(ctx, opts.Limit)
	if err != nil {
		return f.fail(ExitCommandError, &LoadError{Code: ErrCodeStore, Message: err.Error()})
	}

	result := HistoryResult{Runs: runs}
	return f.Render(result, func(w io.Writer) {
		if len(runs) == 0 {
			fmt.Fprintln(w, "No runs recorded.")
			return
		}
		for _, r := range runs {
			name := r.DeckName
			if name == "" {
				name = "-"
			}
			fmt.Fprintf(w, "#%-4d %s  %s  %-16s %d card(s)  %d interaction(s)  %s\n",
				r.Seq, r.ID, r.CreatedAt.Format(time.RFC3339), name,
				r.CardCount, r.InteractionCount, shortDigest(r.DeckDigest))
		}
	})
}

func writeRun(w io.Writer, run store.Run) {
	fmt.Fprintf(w, "Run %s (#%d)\n", run.ID, run.Seq)
	if run.DeckName != "" {
		fmt.Fprintf(w, "Deck: %s\n", run.DeckName)
	}
	fmt.Fprintf(w, "Created: %s\n", run.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Digest: %s (table v%s, cardfx %s)\n\n",
		run.Analysis.DeckDigest, run.Analysis.TableVersion, run.ToolVersion)

	cards := make([]ir.Card, len(run.CardIDs))
	for i, id := range run.CardIDs {
		cards[i] = ir.Card{ID: id}
	}
	writePairs(w, pairViews(cards, run.Analysis.Interactions))

	for _, cm := range run.Analysis.Modifiers {
		if len(cm.Modifiers) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:", cm.CardID)
		for _, m := range cm.Modifiers {
			fmt.Fprintf(w, " %s", m.Effect)
		}
		fmt.Fprintln(w)
	}
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
