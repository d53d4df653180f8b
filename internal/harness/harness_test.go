package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardfx/internal/engine"
	"github.com/roach88/cardfx/internal/ir"
	"github.com/roach88/cardfx/internal/rules"
)

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

func jsScenario(assertions ...Assertion) *Scenario {
	return &Scenario{
		Name:        "js",
		Description: "javascript pair",
		Cards: []ir.Card{
			{
				ID:         "site",
				PublicTags: []string{"javascript", "react"},
				Private:    ir.Attributes{{Key: "status", Value: ir.String("completed")}},
			},
			{ID: "blog", PublicTags: []string{"javascript"}},
			{ID: "synth", PublicTags: []string{"audio"}},
		},
		Assertions: assertions,
	}
}

func TestRun_Passes(t *testing.T) {
	s := jsScenario(
		Assertion{Type: AssertPairCount, Count: intPtr(1)},
		Assertion{Type: AssertPairPresent, A: "blog", B: "site", MinStrength: floatPtr(0.4), EffectsInclude: []string{"merge"}},
		Assertion{Type: AssertPairAbsent, A: "site", B: "synth"},
		Assertion{Type: AssertModifierEffects, Card: "site", Effects: []string{"stabilize"}},
		Assertion{Type: AssertModifierEffects, Card: "synth", Effects: []string{}},
		Assertion{Type: AssertOrder},
	)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)

	require.Len(t, result.Analysis.Interactions, 1)
	p := result.Analysis.Interactions[0]
	assert.Equal(t, 0, p.IndexA)
	assert.Equal(t, 1, p.IndexB)
	assert.Equal(t, []ir.Effect{ir.EffectMerge, ir.EffectMerge, ir.EffectChain}, p.Effects)
	assert.Equal(t, ir.MustDeckDigest(s.Cards), result.Analysis.DeckDigest)
}

func TestRun_ReportsFailures(t *testing.T) {
	s := jsScenario(
		Assertion{Type: AssertPairCount, Count: intPtr(2)},
		Assertion{Type: AssertPairPresent, A: "site", B: "blog", MinStrength: floatPtr(0.9)},
		Assertion{Type: AssertPairPresent, A: "site", B: "blog", EffectsInclude: []string{"repel"}},
		Assertion{Type: AssertPairPresent, A: "site", B: "synth"},
		Assertion{Type: AssertPairAbsent, A: "site", B: "blog"},
		Assertion{Type: AssertModifierEffects, Card: "site", Effects: []string{"pulse"}},
	)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 6)
	assert.Contains(t, result.Errors[0], "assertions[0]")
	assert.Contains(t, result.Errors[0], "Expected: 2 pairs")
	assert.Contains(t, result.Errors[1], "strength >= 0.9")
	assert.Contains(t, result.Errors[2], "with effect repel")
	assert.Contains(t, result.Errors[3], "pair not significant")
	assert.Contains(t, result.Errors[4], "no pair site <-> blog")
	assert.Contains(t, result.Errors[5], "modifiers [stabilize]")
	assert.Contains(t, result.Errors[5], "site <-> blog", "failure lists the pairs")
}

func TestRun_Deterministic(t *testing.T) {
	s := jsScenario(Assertion{Type: AssertOrder})

	r1, err := Run(s)
	require.NoError(t, err)
	r2, err := Run(s)
	require.NoError(t, err)

	b1, err := Snapshot(r1)
	require.NoError(t, err)
	b2, err := Snapshot(r2)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2))
}

func TestHarness_CustomEngine(t *testing.T) {
	table := rules.NewTable([]ir.InteractionRule{
		{Tags: []string{"audio", "javascript"}, Effect: ir.EffectRepel, Strength: 1},
	}, nil)
	h := New(engine.New(table))

	s := jsScenario(
		Assertion{Type: AssertPairPresent, A: "blog", B: "synth", EffectsInclude: []string{"repel"}},
		Assertion{Type: AssertModifierEffects, Card: "site", Effects: []string{}},
	)
	result, err := h.Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestOrderAssertion_DetectsDisorder(t *testing.T) {
	analysis := ir.Analysis{Interactions: []ir.PairInteraction{
		{IndexA: 0, IndexB: 2, Strength: 0.5},
		{IndexA: 0, IndexB: 1, Strength: 0.9},
	}}
	err := evaluateAssertion(Assertion{Type: AssertOrder}, analysis, nil, []string{"a", "b", "c"})
	require.Error(t, err)

	var aerr *AssertionError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, AssertOrder, aerr.Type)
	assert.Contains(t, err.Error(), "(0, 2) before (0, 1)")
	assert.Contains(t, err.Error(), "a <-> c")
}

func TestOrderAssertion_DetectsInvertedPair(t *testing.T) {
	analysis := ir.Analysis{Interactions: []ir.PairInteraction{{IndexA: 1, IndexB: 0}}}
	err := evaluateAssertion(Assertion{Type: AssertOrder}, analysis, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pair 0 is (1, 0)")
}

func TestScenarioFiles(t *testing.T) {
	files, err := FindScenarios(filepath.Join("..", "..", "testdata", "scenarios"), "")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			s, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)

			// testdata/scenarios/golden pins the canonical analysis.
			require.NoError(t, RunWithGolden(t, s))
		})
	}
}
