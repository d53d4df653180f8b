package compiler

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/cardfx/internal/ir"
	"github.com/roach88/cardfx/internal/rules"
)

// Manifest validation codes (E200-E299)
const (
	ErrCardEmptyID         = "E201" // card id is required
	ErrCardDuplicateID     = "E202" // two cards share an id
	ErrCardEmptyTag        = "E203" // blank public tag
	ErrAttrEmptyKey        = "E204" // blank private attribute key
	ErrAttrDuplicateKey    = "E205" // attribute declared twice (warning)
	ErrCardNoTags          = "E206" // card has no public tags (warning)
	ErrAttrUnsupported     = "E207" // attribute value is missing or not a finite scalar
	ErrTagUnknown          = "E210" // no rule mentions the tag (warning)
	ErrAttrNoModifier      = "E211" // no modifier for the key (warning)
	ErrAttrValueUnresolved = "E212" // ByValue entry has no descriptor for the value (warning)
)

// ValidateDeck checks a compiled deck against the given tables.
// Returns all problems found (does not fail-fast). Entries flagged as
// warnings describe input the engine accepts but will silently ignore.
func ValidateDeck(deck ir.Deck, table *rules.Table) []ir.ValidationError {
	if table == nil {
		table = rules.Default()
	}

	known := make(map[string]bool)
	for _, t := range table.KnownTags() {
		known[t] = true
	}

	var errs []ir.ValidationError
	ids := make(map[string]int, len(deck.Cards))

	for i, c := range deck.Cards {
		field := fmt.Sprintf("cards[%d]", i)
		if c.ID != "" {
			field = fmt.Sprintf("card.%s", c.ID)
		}

		if strings.TrimSpace(c.ID) == "" {
			errs = append(errs, ir.ValidationError{
				Field:   field + ".id",
				Message: "card id is required and must be non-empty",
				Code:    ErrCardEmptyID,
			})
		} else if prev, dup := ids[c.ID]; dup {
			errs = append(errs, ir.ValidationError{
				Field:   field + ".id",
				Message: fmt.Sprintf("duplicate card id (first used by cards[%d])", prev),
				Code:    ErrCardDuplicateID,
			})
		} else {
			ids[c.ID] = i
		}

		if len(c.PublicTags) == 0 {
			errs = append(errs, ir.ValidationError{
				Field:   field + ".tags",
				Message: "card has no public tags and can never interact",
				Code:    ErrCardNoTags,
				Warning: true,
			})
		}

		for _, tag := range c.PublicTags {
			switch {
			case strings.TrimSpace(tag) == "":
				errs = append(errs, ir.ValidationError{
					Field:   field + ".tags",
					Message: "tag must be non-empty",
					Code:    ErrCardEmptyTag,
				})
			case !known[tag]:
				errs = append(errs, ir.ValidationError{
					Field:   field + ".tags",
					Message: fmt.Sprintf("no interaction rule mentions tag %q", tag),
					Code:    ErrTagUnknown,
					Warning: true,
				})
			}
		}

		errs = append(errs, validateAttributes(field, c.Private, table)...)
	}

	return errs
}

func validateAttributes(field string, attrs ir.Attributes, table *rules.Table) []ir.ValidationError {
	var errs []ir.ValidationError
	seen := make(map[string]bool, len(attrs))

	for _, attr := range attrs {
		attrField := field + ".private." + attr.Key

		if strings.TrimSpace(attr.Key) == "" {
			errs = append(errs, ir.ValidationError{
				Field:   field + ".private",
				Message: "attribute key must be non-empty",
				Code:    ErrAttrEmptyKey,
			})
			continue
		}
		if !supportedValue(attr.Value) {
			errs = append(errs, ir.ValidationError{
				Field:   attrField,
				Message: fmt.Sprintf("unsupported attribute value %v", attr.Value),
				Code:    ErrAttrUnsupported,
			})
			continue
		}
		if seen[attr.Key] {
			errs = append(errs, ir.ValidationError{
				Field:   attrField,
				Message: "attribute declared more than once; each declaration yields a modifier",
				Code:    ErrAttrDuplicateKey,
				Warning: true,
			})
		}
		seen[attr.Key] = true

		entry, ok := table.Modifier(attr.Key)
		if !ok {
			errs = append(errs, ir.ValidationError{
				Field:   attrField,
				Message: "no layout modifier for this attribute",
				Code:    ErrAttrNoModifier,
				Warning: true,
			})
			continue
		}
		if byValue, ok := entry.(ir.ByValue); ok {
			if _, found := byValue.Resolve(attr.Value); !found {
				errs = append(errs, ir.ValidationError{
					Field:   attrField,
					Message: fmt.Sprintf("no layout modifier for value %q", valueKey(attr.Value)),
					Code:    ErrAttrValueUnresolved,
					Warning: true,
				})
			}
		}
	}
	return errs
}

// supportedValue reports whether v can be looked up and canonically
// encoded. Loaders never produce anything else; decks built in code can.
func supportedValue(v ir.Value) bool {
	switch val := v.(type) {
	case ir.String, ir.Bool:
		return true
	case ir.Number:
		f := float64(val)
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return false
	}
}

func valueKey(v ir.Value) string {
	if v == nil {
		return ""
	}
	return v.Key()
}
