package ir

import (
	"maps"
	"slices"
)

// Effect is a symbolic visual behavior emitted by an interaction rule.
// The renderer maps each effect to an animation; cardfx never draws.
type Effect string

const (
	EffectMerge      Effect = "merge"
	EffectGlow       Effect = "glow"
	EffectPulse      Effect = "pulse"
	EffectAttract    Effect = "attract"
	EffectRepel      Effect = "repel"
	EffectChain      Effect = "chain"
	EffectScale      Effect = "scale"
	EffectColorShift Effect = "colorShift"
)

// Effects lists every interaction effect in declaration order.
func Effects() []Effect {
	return []Effect{
		EffectMerge,
		EffectGlow,
		EffectPulse,
		EffectAttract,
		EffectRepel,
		EffectChain,
		EffectScale,
		EffectColorShift,
	}
}

// Valid reports whether e is one of the interaction effects.
func (e Effect) Valid() bool {
	return slices.Contains(Effects(), e)
}

// InteractionRule ties a group of public tags to a visual effect.
//
// A rule fires for a pair of cards when each card carries at least one of
// its tags. Strength is the rule's weight in [0,1] before it is scaled by
// how many of the tags matched.
type InteractionRule struct {
	Tags        []string `json:"tags"`
	Effect      Effect   `json:"effect"`
	Strength    float64  `json:"strength"`
	Description string   `json:"description"`
}

// HasTag reports whether tag is one of the rule's tags.
func (r InteractionRule) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

// Clone returns a deep copy of the rule.
func (r InteractionRule) Clone() InteractionRule {
	r.Tags = slices.Clone(r.Tags)
	return r
}

// ModifierDescriptor describes one layout change for a card.
// Params carries effect-specific knobs (scale factor, glow radius, ...).
type ModifierDescriptor struct {
	Effect      string             `json:"effect"`
	Params      map[string]float64 `json:"params,omitempty"`
	Description string             `json:"description"`
}

// Clone returns a deep copy of the descriptor.
func (d ModifierDescriptor) Clone() ModifierDescriptor {
	d.Params = maps.Clone(d.Params)
	return d
}

// ModifierEntry is the layout table entry for one private attribute.
// It is either Direct or ByValue.
type ModifierEntry interface {
	modifierEntry() // Sealed
}

// Direct applies the same descriptor whatever the attribute's value is.
type Direct struct {
	Descriptor ModifierDescriptor
}

func (Direct) modifierEntry() {}

// ByValue picks a descriptor by the attribute's value.
// Keys are Value.Key() forms, e.g. "completed", "3", "true".
type ByValue map[string]ModifierDescriptor

func (ByValue) modifierEntry() {}

// Resolve returns the descriptor for v, if any.
func (b ByValue) Resolve(v Value) (ModifierDescriptor, bool) {
	if v == nil {
		return ModifierDescriptor{}, false
	}
	d, ok := b[v.Key()]
	return d, ok
}

// CloneEntry returns a deep copy of a modifier entry.
func CloneEntry(e ModifierEntry) ModifierEntry {
	switch entry := e.(type) {
	case Direct:
		return Direct{Descriptor: entry.Descriptor.Clone()}
	case ByValue:
		out := make(ByValue, len(entry))
		for k, d := range entry {
			out[k] = d.Clone()
		}
		return out
	default:
		return nil
	}
}

// Card is a portfolio project as seen by the interaction engine.
type Card struct {
	ID         string     `json:"id"`
	Title      string     `json:"title,omitempty"`
	PublicTags []string   `json:"public_tags"`
	Private    Attributes `json:"private,omitempty"`
}

// Deck is an ordered collection of cards. Card indices in results refer
// to positions in Cards.
type Deck struct {
	Name  string `json:"name,omitempty"`
	Cards []Card `json:"cards"`
}

// PairInteraction is the interaction between cards IndexA < IndexB.
type PairInteraction struct {
	IndexA   int      `json:"index_a"`
	IndexB   int      `json:"index_b"`
	Strength float64  `json:"strength"`
	Effects  []Effect `json:"effects"`
}

// ResolvedModifier is a descriptor resolved for one private attribute.
type ResolvedModifier struct {
	Tag   string `json:"tag"`
	Value Value  `json:"value"`
	ModifierDescriptor
}

// CardModifiers groups the modifiers resolved for a single card.
type CardModifiers struct {
	CardIndex int                `json:"card_index"`
	CardID    string             `json:"card_id"`
	Modifiers []ResolvedModifier `json:"modifiers"`
}

// Analysis is the full engine output for a deck.
type Analysis struct {
	DeckDigest   string            `json:"deck_digest"`
	TableVersion string            `json:"table_version"`
	Interactions []PairInteraction `json:"interactions"`
	Modifiers    []CardModifiers   `json:"modifiers"`
}
