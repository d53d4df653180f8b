// Command cardfx computes interaction effects between portfolio cards.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/roach88/cardfx/internal/cli"
	"github.com/roach88/cardfx/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cardfx: %v\n", err)
		os.Exit(cli.ExitCommandError)
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr, false))

	err = cli.NewRootCommand(cfg).Execute()
	if err != nil && !rendered(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}

// rendered reports whether a command already wrote err through its
// output formatter. Those errors wrap their cause.
func rendered(err error) bool {
	var exitErr *cli.ExitError
	return errors.As(err, &exitErr) && exitErr.Err != nil
}
