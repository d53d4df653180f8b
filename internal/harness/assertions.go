package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/cardfx/internal/ir"
)

// AssertionError is returned when an assertion fails.
// It includes the full pair list to help debug the failure.
type AssertionError struct {
	Type     string               // Assertion type for categorization
	Expected string               // Human-readable expected outcome
	Actual   string               // Human-readable actual outcome
	Pairs    []ir.PairInteraction // All significant pairs
	CardIDs  []string             // Card ids by index, for rendering pairs
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nPairs:\n")
	if len(e.Pairs) == 0 {
		fmt.Fprintf(&buf, "  (none)\n")
	}
	for _, p := range e.Pairs {
		fmt.Fprintf(&buf, "  %s <-> %s %.4f %v\n",
			cardName(e.CardIDs, p.IndexA), cardName(e.CardIDs, p.IndexB), p.Strength, p.Effects)
	}

	return buf.String()
}

func cardName(ids []string, i int) string {
	if i >= 0 && i < len(ids) {
		return ids[i]
	}
	return fmt.Sprintf("#%d", i)
}

// evaluateAssertion dispatches on assertion type. index maps card ids to
// deck positions; ids is the reverse.
func evaluateAssertion(a Assertion, analysis ir.Analysis, index map[string]int, ids []string) error {
	fail := func(expected, actual string) error {
		return &AssertionError{
			Type:     a.Type,
			Expected: expected,
			Actual:   actual,
			Pairs:    analysis.Interactions,
			CardIDs:  ids,
		}
	}

	switch a.Type {
	case AssertPairCount:
		if got := len(analysis.Interactions); got != *a.Count {
			return fail(fmt.Sprintf("%d pairs", *a.Count), fmt.Sprintf("%d pairs", got))
		}
		return nil

	case AssertPairPresent:
		p, ok := findPair(analysis.Interactions, index[a.A], index[a.B])
		if !ok {
			return fail(fmt.Sprintf("pair %s <-> %s", a.A, a.B), "pair not significant")
		}
		if a.MinStrength != nil && p.Strength < *a.MinStrength {
			return fail(
				fmt.Sprintf("pair %s <-> %s with strength >= %g", a.A, a.B, *a.MinStrength),
				fmt.Sprintf("strength %g", p.Strength),
			)
		}
		for _, want := range a.EffectsInclude {
			if !slices.Contains(p.Effects, ir.Effect(want)) {
				return fail(
					fmt.Sprintf("pair %s <-> %s with effect %s", a.A, a.B, want),
					fmt.Sprintf("effects %v", p.Effects),
				)
			}
		}
		return nil

	case AssertPairAbsent:
		if p, ok := findPair(analysis.Interactions, index[a.A], index[a.B]); ok {
			return fail(
				fmt.Sprintf("no pair %s <-> %s", a.A, a.B),
				fmt.Sprintf("strength %g effects %v", p.Strength, p.Effects),
			)
		}
		return nil

	case AssertModifierEffects:
		got := modifierEffects(analysis, index[a.Card])
		if !slices.Equal(got, a.Effects) {
			return fail(
				fmt.Sprintf("card %s modifiers %v", a.Card, a.Effects),
				fmt.Sprintf("modifiers %v", got),
			)
		}
		return nil

	case AssertOrder:
		for k, p := range analysis.Interactions {
			if p.IndexA >= p.IndexB {
				return fail("index_a < index_b in every pair", fmt.Sprintf("pair %d is (%d, %d)", k, p.IndexA, p.IndexB))
			}
			if k == 0 {
				continue
			}
			prev := analysis.Interactions[k-1]
			if prev.IndexA > p.IndexA || (prev.IndexA == p.IndexA && prev.IndexB >= p.IndexB) {
				return fail(
					"pairs in ascending (index_a, index_b) order",
					fmt.Sprintf("(%d, %d) before (%d, %d)", prev.IndexA, prev.IndexB, p.IndexA, p.IndexB),
				)
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

// findPair looks up the pair for two card positions in either order.
func findPair(pairs []ir.PairInteraction, i, j int) (ir.PairInteraction, bool) {
	if i > j {
		i, j = j, i
	}
	for _, p := range pairs {
		if p.IndexA == i && p.IndexB == j {
			return p, true
		}
	}
	return ir.PairInteraction{}, false
}

func modifierEffects(analysis ir.Analysis, cardIndex int) []string {
	out := []string{}
	for _, cm := range analysis.Modifiers {
		if cm.CardIndex != cardIndex {
			continue
		}
		for _, m := range cm.Modifiers {
			out = append(out, m.Effect)
		}
	}
	return out
}
