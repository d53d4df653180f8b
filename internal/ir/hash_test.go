package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCards() []Card {
	return []Card{
		{ID: "portfolio", PublicTags: []string{"javascript", "react"}, Private: Attributes{
			{Key: "status", Value: String("completed")},
		}},
		{ID: "synth", PublicTags: []string{"audio", "dsp"}},
	}
}

func TestDeckDigestStable(t *testing.T) {
	a, err := DeckDigest(sampleCards())
	require.NoError(t, err)
	b, err := DeckDigest(sampleCards())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestDeckDigestOrderSensitive(t *testing.T) {
	cards := sampleCards()
	swapped := []Card{cards[1], cards[0]}

	assert.NotEqual(t, MustDeckDigest(cards), MustDeckDigest(swapped))
}

func TestDeckDigestAttributeOrderSensitive(t *testing.T) {
	one := []Card{{ID: "a", Private: Attributes{
		{Key: "featured", Value: Bool(true)},
		{Key: "status", Value: String("completed")},
	}}}
	two := []Card{{ID: "a", Private: Attributes{
		{Key: "status", Value: String("completed")},
		{Key: "featured", Value: Bool(true)},
	}}}

	assert.NotEqual(t, MustDeckDigest(one), MustDeckDigest(two))
}

func TestDeckDigestEmpty(t *testing.T) {
	d, err := DeckDigest(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, d)
}

func TestAnalysisCanonicalJSON(t *testing.T) {
	a := Analysis{
		DeckDigest:   "abc",
		TableVersion: TableVersion,
		Interactions: []PairInteraction{{IndexA: 0, IndexB: 1, Strength: 0.5, Effects: []Effect{EffectMerge}}},
		Modifiers: []CardModifiers{{CardIndex: 0, CardID: "x", Modifiers: []ResolvedModifier{{
			Tag:                "status",
			Value:              String("completed"),
			ModifierDescriptor: ModifierDescriptor{Effect: "stabilize", Description: "done"},
		}}}},
	}

	data, err := a.CanonicalJSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"deck_digest":"abc","interactions":[{"effects":["merge"],"index_a":0,"index_b":1,"strength":0.5}],`+
			`"modifiers":[{"card_id":"x","card_index":0,"modifiers":[{"description":"done","effect":"stabilize","tag":"status","value":"completed"}]}],`+
			`"table_version":"1"}`,
		string(data))
}
