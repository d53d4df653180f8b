package cli

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/cardfx/internal/config"
	"github.com/roach88/cardfx/internal/engine"
	"github.com/roach88/cardfx/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Config supplies environment defaults for flags.
	Config config.Config

	// IDs and Now stamp stored runs. Tests replace them with the
	// deterministic versions from testutil.
	IDs store.IDGenerator
	Now func() time.Time

	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cardfx CLI.
func NewRootCommand(cfg config.Config) *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{
		Config: cfg,
		IDs:    store.UUIDv7Generator{},
		Now:    time.Now,
	})
}

// NewRootCommandWithOptions creates the root command around caller-owned
// options. Flag parsing fills Verbose and Format.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	if opts.IDs == nil {
		opts.IDs = store.UUIDv7Generator{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cmd := &cobra.Command{
		Use:   "cardfx",
		Short: "cardfx - portfolio card interaction effects",
		Long: `Compute visual interaction effects between portfolio project cards.

Cards carry public tags and private attributes. Tags drive pairwise
interactions (merge, chain, glow, ...); private attributes drive per-card
layout modifiers.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			opts.logger = opts.Config.NewLogger(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewInteractionsCommand(opts))
	cmd.AddCommand(NewModifiersCommand(opts))
	cmd.AddCommand(NewStrengthCommand(opts))
	cmd.AddCommand(NewApplicableCommand(opts))
	cmd.AddCommand(NewRulesCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewAnalyzeCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// formatter builds the output formatter for a command.
// Verbose logs go to stderr to avoid corrupting JSON.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// engine returns an engine over the built-in tables that logs through the
// command's logger.
func (o *RootOptions) engine() *engine.Engine {
	return engine.New(nil, engine.WithLogger(o.log()))
}

func (o *RootOptions) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return slog.Default()
}
