package engine

import (
	"github.com/roach88/cardfx/internal/ir"
)

// tagSet is a card's public tags prepared for membership tests.
type tagSet map[string]struct{}

func newTagSet(tags []string) tagSet {
	s := make(tagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// matchCount counts how many of the rule's tags are in the set.
func (s tagSet) matchCount(rule ir.InteractionRule) int {
	n := 0
	for _, t := range rule.Tags {
		if _, ok := s[t]; ok {
			n++
		}
	}
	return n
}

// intersects reports whether any of the rule's tags is in the set.
func (s tagSet) intersects(rule ir.InteractionRule) bool {
	for _, t := range rule.Tags {
		if _, ok := s[t]; ok {
			return true
		}
	}
	return false
}

// RuleContribution explains how one rule fed a strength score.
type RuleContribution struct {
	Rule         ir.InteractionRule `json:"rule"`
	MatchCountA  int                `json:"match_count_a"`
	MatchCountB  int                `json:"match_count_b"`
	MatchRatio   float64            `json:"match_ratio"`
	Contribution float64            `json:"contribution"`
}

// Explain lists the rules that apply to the pair (tagsA, tagsB), in table
// order, with the share each contributes before averaging.
//
// A rule applies when each side matches at least one of its tags. The two
// counts are taken independently, so a rule {x, y} applies to A={x,y},
// B={x} even though B never supplies y.
func (e *Engine) Explain(tagsA, tagsB []string) []RuleContribution {
	return e.contributions(newTagSet(tagsA), newTagSet(tagsB))
}

func (e *Engine) contributions(a, b tagSet) []RuleContribution {
	var out []RuleContribution
	for _, rule := range e.rules {
		countA := a.matchCount(rule)
		if countA == 0 {
			continue
		}
		countB := b.matchCount(rule)
		if countB == 0 {
			continue
		}
		// Counts never exceed len(rule.Tags), so ratio stays within [0,1].
		ratio := float64(countA+countB) / float64(2*len(rule.Tags))
		out = append(out, RuleContribution{
			Rule:         rule.Clone(),
			MatchCountA:  countA,
			MatchCountB:  countB,
			MatchRatio:   ratio,
			// Rounded here so no platform fuses it into the later sum;
			// stored strengths and snapshots must agree bit for bit.
			Contribution: float64(rule.Strength * ratio),
		})
	}
	return out
}

// CalculateInteractionStrength returns the mean contribution of every
// applicable rule, or 0 when no rule applies. The result lies in [0,1]
// and is symmetric in its arguments.
func (e *Engine) CalculateInteractionStrength(tagsA, tagsB []string) float64 {
	return e.strength(newTagSet(tagsA), newTagSet(tagsB))
}

func (e *Engine) strength(a, b tagSet) float64 {
	contribs := e.contributions(a, b)
	if len(contribs) == 0 {
		return 0
	}
	var total float64
	for _, c := range contribs {
		total += c.Contribution
	}
	return total / float64(len(contribs))
}

// ApplicableInteractions returns, in table order, every rule sharing at
// least one tag with tags. The returned rules are copies.
func (e *Engine) ApplicableInteractions(tags []string) []ir.InteractionRule {
	set := newTagSet(tags)
	out := make([]ir.InteractionRule, 0)
	for _, rule := range e.rules {
		if set.intersects(rule) {
			out = append(out, rule.Clone())
		}
	}
	return out
}

// pairEffects collects, in table order, the effect of every rule that both
// sides touch. One effect per rule; a repeated effect is kept.
func (e *Engine) pairEffects(a, b tagSet) []ir.Effect {
	effects := make([]ir.Effect, 0)
	for _, rule := range e.rules {
		if a.intersects(rule) && b.intersects(rule) {
			effects = append(effects, rule.Effect)
		}
	}
	return effects
}

// CalculateCardInteractions scores every pair i < j in ascending scan
// order. Pairs whose strength does not exceed SignificanceThreshold are
// left out entirely.
func (e *Engine) CalculateCardInteractions(cards []ir.Card) []ir.PairInteraction {
	sets := make([]tagSet, len(cards))
	for i, c := range cards {
		sets[i] = newTagSet(c.PublicTags)
	}

	out := make([]ir.PairInteraction, 0)
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			s := e.strength(sets[i], sets[j])
			if s <= SignificanceThreshold {
				continue
			}
			effects := e.pairEffects(sets[i], sets[j])
			e.log().Debug("card pair interacts",
				"card_a", cards[i].ID,
				"card_b", cards[j].ID,
				"strength", s,
				"effects", effects,
			)
			out = append(out, ir.PairInteraction{
				IndexA:   i,
				IndexB:   j,
				Strength: s,
				Effects:  effects,
			})
		}
	}
	return out
}
