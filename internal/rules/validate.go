package rules

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/roach88/cardfx/internal/ir"
)

// Table validation error codes (E300-E399)
const (
	ErrRuleTooFewTags     = "E301" // rule needs at least two tags
	ErrRuleDuplicateTag   = "E302" // same tag twice in one rule
	ErrRuleStrengthRange  = "E303" // strength outside [0,1]
	ErrRuleUnknownEffect  = "E304" // effect not in the enumeration
	ErrRuleEmptyTag       = "E305" // blank tag
	ErrModifierNoEffect   = "E310" // descriptor without an effect
	ErrModifierEmptyValue = "E311" // ByValue entry with no values
)

// Validate checks the table for malformed rules and modifiers.
// Returns all errors found (does not fail-fast).
func (t *Table) Validate() []ir.ValidationError {
	var errs []ir.ValidationError

	for i, r := range t.rules {
		field := fmt.Sprintf("rules[%d]", i)

		if len(r.Tags) < 2 {
			errs = append(errs, ir.ValidationError{
				Field:   field + ".tags",
				Message: fmt.Sprintf("rule needs at least 2 tags, has %d", len(r.Tags)),
				Code:    ErrRuleTooFewTags,
			})
		}

		seen := make(map[string]bool, len(r.Tags))
		for _, tag := range r.Tags {
			if strings.TrimSpace(tag) == "" {
				errs = append(errs, ir.ValidationError{
					Field:   field + ".tags",
					Message: "tag must be non-empty",
					Code:    ErrRuleEmptyTag,
				})
				continue
			}
			if seen[tag] {
				errs = append(errs, ir.ValidationError{
					Field:   field + ".tags",
					Message: fmt.Sprintf("duplicate tag %q", tag),
					Code:    ErrRuleDuplicateTag,
				})
			}
			seen[tag] = true
		}

		if r.Strength < 0 || r.Strength > 1 {
			errs = append(errs, ir.ValidationError{
				Field:   field + ".strength",
				Message: fmt.Sprintf("strength %v outside [0,1]", r.Strength),
				Code:    ErrRuleStrengthRange,
			})
		}

		if !r.Effect.Valid() {
			errs = append(errs, ir.ValidationError{
				Field:   field + ".effect",
				Message: fmt.Sprintf("unknown effect %q", r.Effect),
				Code:    ErrRuleUnknownEffect,
			})
		}
	}

	for _, key := range t.ModifierKeys() {
		field := "modifiers." + key
		switch entry := t.modifiers[key].(type) {
		case ir.Direct:
			if entry.Descriptor.Effect == "" {
				errs = append(errs, ir.ValidationError{
					Field:   field,
					Message: "descriptor has no effect",
					Code:    ErrModifierNoEffect,
				})
			}
		case ir.ByValue:
			if len(entry) == 0 {
				errs = append(errs, ir.ValidationError{
					Field:   field,
					Message: "value map is empty",
					Code:    ErrModifierEmptyValue,
				})
			}
			for _, value := range slices.Sorted(maps.Keys(entry)) {
				if entry[value].Effect == "" {
					errs = append(errs, ir.ValidationError{
						Field:   field + "." + value,
						Message: "descriptor has no effect",
						Code:    ErrModifierNoEffect,
					})
				}
			}
		}
	}

	return errs
}
