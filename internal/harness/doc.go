// Package harness runs deck scenarios through the interaction engine and
// checks the results.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: react_family
//	description: "React projects merge into the JavaScript cluster"
//	cards:
//	  - id: site
//	    tags: [javascript, react]
//	    private:
//	      status: completed
//	  - id: blog
//	    tags: [javascript]
//	assertions:
//	  - type: pair_count
//	    count: 1
//	  - type: pair_present
//	    a: site
//	    b: blog
//	    min_strength: 0.3
//	    effects_include: [merge]
//	  - type: modifier_effects
//	    card: site
//	    effects: [stabilize]
//
// Cards use the YAML manifest layout, so private attribute order is kept.
// Assertions reference cards by id.
//
// # Assertion Types
//
//   - pair_count: exactly Count significant pairs
//   - pair_present: the pair (a, b) is significant, optionally with a minimum
//     strength and a set of effects it must include
//   - pair_absent: the pair (a, b) is not significant
//   - modifier_effects: a card's layout modifier effects, in order
//   - order: pairs are reported in ascending scan order
//
// # Determinism
//
// Each scenario is analyzed and written to a fresh in-memory store with a
// fixed run id generator and clock, then read back. Assertions run on the
// stored analysis, so a scenario also checks that a run survives storage.
// Snapshot output is canonical JSON and byte-stable across runs.
package harness
