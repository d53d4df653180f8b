package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_CanonicalShape(t *testing.T) {
	result, err := Run(jsScenario(Assertion{Type: AssertOrder}))
	require.NoError(t, err)

	data, err := Snapshot(result)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"deck_digest":"`)
	assert.Contains(t, s, `"effects":["merge","merge","chain"]`)
	assert.Contains(t, s, `"effect":"stabilize"`)
	assert.NotContains(t, s, "\n")
}

func TestRunWithGolden_MatchesFixture(t *testing.T) {
	dir := t.TempDir()
	s := jsScenario(Assertion{Type: AssertPairCount, Count: intPtr(1)})

	// Seed the fixture from a first run, then compare a second run to it.
	result, err := Run(s)
	require.NoError(t, err)
	data, err := Snapshot(result)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, s.Name+".golden"), data, 0644))

	require.NoError(t, RunWithGolden(t, s, goldie.WithFixtureDir(dir)))
}

func TestAssertGolden_UsesScenarioName(t *testing.T) {
	dir := t.TempDir()
	s := jsScenario(Assertion{Type: AssertOrder})
	result, err := Run(s)
	require.NoError(t, err)

	g := goldie.New(t, goldie.WithFixtureDir(dir), goldie.WithNameSuffix(".golden"))
	data, err := Snapshot(result)
	require.NoError(t, err)
	require.NoError(t, g.Update(t, "named", data))

	require.NoError(t, AssertGolden(t, "named", result, goldie.WithFixtureDir(dir)))
	_, err = os.Stat(filepath.Join(dir, "named.golden"))
	assert.NoError(t, err)
}

func TestRunWithGolden_ReadsNextToScenarioFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "js_pair.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: renamed
description: golden file follows the file name, not the scenario name
cards:
  - {id: a, tags: [javascript, react]}
  - {id: b, tags: [javascript]}
assertions:
  - type: pair_count
    count: 1
`), 0644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path)

	result, err := Run(s)
	require.NoError(t, err)
	data, err := Snapshot(result)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, GoldenDir), 0755))
	require.NoError(t, os.WriteFile(GoldenPath(path), data, 0644))

	require.NoError(t, RunWithGolden(t, s))
}

func TestSnapshot_BundledGoldenPinsStrength(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "scenarios", GoldenDir, "react_family.golden"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"effects":["merge","merge","chain"],"index_a":0,"index_b":1,"strength":0.4444444444444445`)
}
