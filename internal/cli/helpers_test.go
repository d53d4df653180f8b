package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardfx/internal/config"
	"github.com/roach88/cardfx/internal/testutil"
)

var (
	yamlDeck = filepath.Join("..", "..", "testdata", "decks", "portfolio.yaml")
	cueDeck  = filepath.Join("..", "..", "testdata", "decks", "portfolio")
)

// testOptions returns root options with deterministic run ids and clock.
func testOptions(format string) *RootOptions {
	return &RootOptions{
		Format: format,
		Config: config.Config{LogLevel: "error"},
		IDs:    testutil.NewFixedIDGenerator("run"),
		Now:    testutil.NewFixedClock(testutil.Epoch, 0).Now,
	}
}

// execute runs cmd with args and returns stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// decodeResponse parses a JSON envelope, decoding data into out if non-nil.
func decodeResponse(t *testing.T, output string, out any) CLIResponse {
	t.Helper()
	var raw struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
		Error  *CLIError       `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &raw), "output: %s", output)
	if out != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, out))
	}
	return CLIResponse{Status: raw.Status, Error: raw.Error}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
