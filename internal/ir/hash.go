package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainDeck = "cardfx/deck/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DeckDigest computes the content-addressed identity of a card sequence.
// Card order and attribute order both participate, since both change the
// engine's output order. The deck name does not.
func DeckDigest(cards []Card) (string, error) {
	list := make([]any, len(cards))
	for i, c := range cards {
		list[i] = c.canonicalMap()
	}
	canonical, err := MarshalCanonical(map[string]any{
		"cards":         list,
		"table_version": TableVersion,
	})
	if err != nil {
		return "", fmt.Errorf("DeckDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDeck, canonical), nil
}

// MustDeckDigest is DeckDigest for inputs known to be valid.
// Panics on error.
func MustDeckDigest(cards []Card) string {
	d, err := DeckDigest(cards)
	if err != nil {
		panic(err)
	}
	return d
}

func (c Card) canonicalMap() map[string]any {
	return map[string]any{
		"id":      c.ID,
		"title":   c.Title,
		"tags":    c.PublicTags,
		"private": c.Private.canonicalList(),
	}
}

// canonicalList keeps attribute order, which a JSON object would lose.
func (a Attributes) canonicalList() []any {
	out := make([]any, len(a))
	for i, attr := range a {
		out[i] = []any{attr.Key, attr.Value}
	}
	return out
}

// CanonicalJSON renders the analysis as canonical JSON.
// Used for golden snapshots and stored run payloads.
func (a Analysis) CanonicalJSON() ([]byte, error) {
	interactions := make([]any, len(a.Interactions))
	for i, p := range a.Interactions {
		effects := make([]any, len(p.Effects))
		for j, e := range p.Effects {
			effects[j] = string(e)
		}
		interactions[i] = map[string]any{
			"index_a":  p.IndexA,
			"index_b":  p.IndexB,
			"strength": p.Strength,
			"effects":  effects,
		}
	}

	modifiers := make([]any, len(a.Modifiers))
	for i, cm := range a.Modifiers {
		mods := make([]any, len(cm.Modifiers))
		for j, m := range cm.Modifiers {
			entry := map[string]any{
				"tag":         m.Tag,
				"value":       m.Value,
				"effect":      m.Effect,
				"description": m.Description,
			}
			if len(m.Params) > 0 {
				entry["params"] = m.Params
			}
			mods[j] = entry
		}
		modifiers[i] = map[string]any{
			"card_index": cm.CardIndex,
			"card_id":    cm.CardID,
			"modifiers":  mods,
		}
	}

	return MarshalCanonical(map[string]any{
		"deck_digest":   a.DeckDigest,
		"table_version": a.TableVersion,
		"interactions":  interactions,
		"modifiers":     modifiers,
	})
}
