// Package rules holds the fixed interaction and layout modifier tables.
//
// Tables are built once and never mutated. Every accessor returns a deep
// copy, so a caller editing a returned rule cannot change what the engine
// sees. A Table is safe for concurrent use.
package rules

import (
	"slices"
	"sort"

	"github.com/roach88/cardfx/internal/ir"
)

// Table is an immutable pair of rule and modifier tables.
type Table struct {
	rules     []ir.InteractionRule
	modifiers map[string]ir.ModifierEntry
}

var defaultTable = NewTable(builtinRules, builtinModifiers)

// Default returns the built-in tables.
func Default() *Table {
	return defaultTable
}

// NewTable snapshots rules and modifiers into a Table.
// The inputs are copied; later edits to them do not affect the Table.
func NewTable(rules []ir.InteractionRule, modifiers map[string]ir.ModifierEntry) *Table {
	t := &Table{
		rules:     make([]ir.InteractionRule, len(rules)),
		modifiers: make(map[string]ir.ModifierEntry, len(modifiers)),
	}
	for i, r := range rules {
		t.rules[i] = r.Clone()
	}
	for k, e := range modifiers {
		if c := ir.CloneEntry(e); c != nil {
			t.modifiers[k] = c
		}
	}
	return t
}

// Rules returns a copy of the rule table in evaluation order.
func (t *Table) Rules() []ir.InteractionRule {
	out := make([]ir.InteractionRule, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.Clone()
	}
	return out
}

// RuleCount returns the number of interaction rules.
func (t *Table) RuleCount() int {
	return len(t.rules)
}

// Modifier returns a copy of the modifier entry for an attribute key.
func (t *Table) Modifier(key string) (ir.ModifierEntry, bool) {
	e, ok := t.modifiers[key]
	if !ok {
		return nil, false
	}
	return ir.CloneEntry(e), true
}

// ModifierKeys returns the attribute keys that have a modifier, sorted.
func (t *Table) ModifierKeys() []string {
	keys := make([]string, 0, len(t.modifiers))
	for k := range t.modifiers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KnownTags returns every tag mentioned by at least one rule, sorted.
// A card tag outside this set can never contribute to an interaction.
func (t *Table) KnownTags() []string {
	seen := make(map[string]struct{})
	for _, r := range t.rules {
		for _, tag := range r.Tags {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
