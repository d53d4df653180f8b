package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/cardfx/internal/engine"
	"github.com/roach88/cardfx/internal/ir"
	"github.com/roach88/cardfx/internal/testutil"
)

// openTestStore opens a fresh database in a temp dir, closed on cleanup.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testDeck() ir.Deck {
	return ir.Deck{
		Name: "portfolio",
		Cards: []ir.Card{
			{
				ID:         "site",
				PublicTags: []string{"javascript", "react"},
				Private: ir.Attributes{
					{Key: "featured", Value: ir.Bool(true)},
					{Key: "status", Value: ir.String("completed")},
				},
			},
			{
				ID:         "blog",
				PublicTags: []string{"javascript"},
				Private: ir.Attributes{
					{Key: "status", Value: ir.String("unknown")},
				},
			},
			{
				ID:         "synth",
				PublicTags: []string{"audio", "dsp"},
				Private: ir.Attributes{
					{Key: "priority", Value: ir.Number(1)},
				},
			},
		},
	}
}

// newTestRun analyzes deck with the built-in tables and packages it
// with deterministic ids and timestamps.
func newTestRun(t *testing.T, gen *testutil.FixedIDGenerator, clock *testutil.FixedClock, deck ir.Deck) Run {
	t.Helper()
	analysis, err := engine.Default().Analyze(deck)
	require.NoError(t, err)
	return NewRun(gen, clock.Now(), deck, analysis)
}
