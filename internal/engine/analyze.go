package engine

import (
	"fmt"

	"github.com/roach88/cardfx/internal/ir"
)

// Analyze runs the whole engine over a deck: pair interactions plus the
// layout modifiers of every card, keyed by the deck's digest.
//
// The only error source is digest computation, which fails on values that
// cannot be canonically encoded (e.g. a NaN Number built by hand).
func (e *Engine) Analyze(deck ir.Deck) (ir.Analysis, error) {
	digest, err := ir.DeckDigest(deck.Cards)
	if err != nil {
		return ir.Analysis{}, fmt.Errorf("digest deck: %w", err)
	}

	mods := make([]ir.CardModifiers, len(deck.Cards))
	for i, c := range deck.Cards {
		mods[i] = ir.CardModifiers{
			CardIndex: i,
			CardID:    c.ID,
			Modifiers: e.CalculateLayoutModifiers(c.Private),
		}
	}

	analysis := ir.Analysis{
		DeckDigest:   digest,
		TableVersion: ir.TableVersion,
		Interactions: e.CalculateCardInteractions(deck.Cards),
		Modifiers:    mods,
	}

	e.log().Info("deck analyzed",
		"deck", deck.Name,
		"cards", len(deck.Cards),
		"interactions", len(analysis.Interactions),
		"digest", digest,
	)
	return analysis, nil
}
