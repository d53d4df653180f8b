package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir is the directory, next to the scenario files, that holds
// analysis snapshots. `cardfx test` and RunWithGolden both read it.
const GoldenDir = "golden"

// Snapshot renders a result's analysis as canonical JSON. The same deck
// and tables always produce the same bytes.
func Snapshot(result *Result) ([]byte, error) {
	return result.Analysis.CanonicalJSON()
}

// RunWithGolden executes a scenario and compares the analysis against its
// golden file, GoldenPath(scenario.Path). Scenarios built in code have no
// path and use GoldenDir/{scenario.Name}.golden relative to the test.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness/ -update
//
// or `cardfx test <dir> --update`.
//
// Extra goldie options (e.g. goldie.WithFixtureDir) override the defaults.
// Returns error if scenario execution fails. Assertion failures and golden
// mismatches fail the test.
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...goldie.Option) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		t.Errorf("%s: %s", scenario.Name, e)
	}

	dir, name := GoldenDir, scenario.Name
	if scenario.Path != "" {
		p := GoldenPath(scenario.Path)
		dir, name = filepath.Dir(p), strings.TrimSuffix(filepath.Base(p), ".golden")
	}
	return AssertGolden(t, name, result, append([]goldie.Option{goldie.WithFixtureDir(dir)}, opts...)...)
}

// AssertGolden compares an existing result against GoldenDir/{name}.golden
// without re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result, opts ...goldie.Option) error {
	t.Helper()

	data, err := Snapshot(result)
	if err != nil {
		return err
	}

	g := goldie.New(t, append([]goldie.Option{
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	}, opts...)...)
	g.Assert(t, name, data)

	return nil
}
