package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scenariosDir = filepath.Join("..", "..", "testdata", "scenarios")

// copyScenarios copies the shared scenarios into a temp dir so golden
// files written by --update stay out of the tree.
func copyScenarios(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	entries, err := os.ReadDir(scenariosDir)
	require.NoError(t, err)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(scenariosDir, e.Name()))
		require.NoError(t, err)
		writeFile(t, dir, e.Name(), string(data))
	}
	return dir
}

const failingScenario = `
name: wrong_count
description: rust and go repel, so one pair is reported
cards:
  - {id: a, tags: [rust]}
  - {id: b, tags: [go]}
assertions:
  - type: pair_count
    count: 0
`

func TestTestCommand_Passes(t *testing.T) {
	out, err := execute(t, NewTestCommand(testOptions("text")), scenariosDir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ react_family")
	assert.Contains(t, out, "✓ unity_audio")
	assert.Contains(t, out, "✓ hardware_lab")
	assert.Contains(t, out, "Test Summary: 3 passed, 0 failed, 3 total")
}

func TestTestCommand_JSON(t *testing.T) {
	out, err := execute(t, NewTestCommand(testOptions("json")), scenariosDir)
	require.NoError(t, err)

	var result TestResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Passed)
	assert.Zero(t, result.Failed)
}

func TestTestCommand_Failure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wrong_count.yaml", failingScenario)

	out, err := execute(t, NewTestCommand(testOptions("text")), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong_count")
	assert.Contains(t, out, "Assertion failed: pair_count")
	assert.Contains(t, out, "a <-> b")
	assert.NotContains(t, out, "failed to load scenario")

	out, err = execute(t, NewTestCommand(testOptions("json")), dir)
	require.Error(t, err)
	var result TestResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	assert.Equal(t, 1, result.Failed)
}

func TestTestCommand_BadScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "name: broken\nunknown_field: 1\n")

	out, err := execute(t, NewTestCommand(testOptions("text")), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommand_UpdateGolden(t *testing.T) {
	dir := copyScenarios(t)

	out, err := execute(t, NewTestCommand(testOptions("text")), dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ react_family (golden updated)")

	golden := filepath.Join(dir, "golden", "react_family.golden")
	require.FileExists(t, golden)

	_, err = execute(t, NewTestCommand(testOptions("text")), dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(golden, []byte("{}\n"), 0644))
	out, err = execute(t, NewTestCommand(testOptions("text")), dir, "--filter", "react*")
	require.Error(t, err)
	assert.Contains(t, out, "does not match golden file")
	assert.Contains(t, out, "1 failed, 1 total")
}

func TestTestCommand_Filter(t *testing.T) {
	out, err := execute(t, NewTestCommand(testOptions("json")), scenariosDir, "--filter", "unity*")
	require.NoError(t, err)

	var result TestResult
	decodeResponse(t, out, &result)
	require.Len(t, result.Scenarios, 1)
	assert.Equal(t, "unity_audio", result.Scenarios[0].Name)

	_, err = execute(t, NewTestCommand(testOptions("text")), scenariosDir, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommand_MissingAndEmpty(t *testing.T) {
	_, err := execute(t, NewTestCommand(testOptions("text")), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	out, err := execute(t, NewTestCommand(testOptions("text")), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", out)
}
