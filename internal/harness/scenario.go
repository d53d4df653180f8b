package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cardfx/internal/compiler"
	"github.com/roach88/cardfx/internal/ir"
)

// Scenario is a deck plus the assertions its analysis must satisfy.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string

	// Description explains what this scenario checks.
	Description string

	// Cards is the deck under test, in scan order.
	Cards []ir.Card

	// Assertions are checked against the stored analysis.
	Assertions []Assertion

	// Path is the file the scenario was loaded from. Empty for scenarios
	// built in code.
	Path string
}

// Deck returns the scenario's cards as a deck named after the scenario.
func (s *Scenario) Deck() ir.Deck {
	return ir.Deck{Name: s.Name, Cards: s.Cards}
}

// scenarioFile is the on-disk layout. Cards stay a raw node so the
// manifest decoder can keep private attribute order.
type scenarioFile struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Cards       yaml.Node   `yaml:"cards"`
	Assertions  []Assertion `yaml:"assertions"`
}

// Assertion checks one property of an analysis.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// A and B are the card ids of a pair (pair_present, pair_absent).
	A string `yaml:"a,omitempty"`
	B string `yaml:"b,omitempty"`

	// MinStrength is the lowest acceptable pair strength (pair_present).
	MinStrength *float64 `yaml:"min_strength,omitempty"`

	// EffectsInclude lists effects the pair must carry (pair_present).
	EffectsInclude []string `yaml:"effects_include,omitempty"`

	// Count is the expected number of significant pairs (pair_count).
	Count *int `yaml:"count,omitempty"`

	// Card is the card id whose modifiers are checked (modifier_effects).
	Card string `yaml:"card,omitempty"`

	// Effects is the exact ordered list of modifier effects (modifier_effects).
	Effects []string `yaml:"effects,omitempty"`
}

// Assertion type constants.
const (
	AssertPairCount       = "pair_count"
	AssertPairPresent     = "pair_present"
	AssertPairAbsent      = "pair_absent"
	AssertModifierEffects = "modifier_effects"
	AssertOrder           = "order"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	s, err := ParseScenario(path, data)
	if err != nil {
		return nil, err
	}
	s.Path = path
	return s, nil
}

// ParseScenario parses scenario YAML. file is only used in error messages.
func ParseScenario(file string, data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var raw scenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	scenario := &Scenario{
		Name:        raw.Name,
		Description: raw.Description,
		Cards:       []ir.Card{},
		Assertions:  raw.Assertions,
	}
	if raw.Cards.Kind != 0 {
		cards, err := compiler.DecodeYAMLCards(file, &raw.Cards)
		if err != nil {
			return nil, fmt.Errorf("invalid scenario: %w", err)
		}
		scenario.Cards = cards
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

// validateScenario checks that required fields are present and that
// assertions only reference cards in the deck.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for _, verr := range compiler.ValidateDeck(s.Deck(), nil) {
		if !verr.Warning {
			return fmt.Errorf("cards: %w", verr)
		}
	}

	ids := make(map[string]bool, len(s.Cards))
	for _, c := range s.Cards {
		ids[c.ID] = true
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i], ids); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, ids map[string]bool) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertPairCount:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for pair_count", index)
		}
		if *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for pair_count", index)
		}
	case AssertPairPresent, AssertPairAbsent:
		if a.A == "" || a.B == "" {
			return fmt.Errorf("assertions[%d]: a and b are required for %s", index, a.Type)
		}
		if a.A == a.B {
			return fmt.Errorf("assertions[%d]: a and b must be different cards", index)
		}
		for _, id := range []string{a.A, a.B} {
			if !ids[id] {
				return fmt.Errorf("assertions[%d]: unknown card %q", index, id)
			}
		}
		for _, e := range a.EffectsInclude {
			if !ir.Effect(e).Valid() {
				return fmt.Errorf("assertions[%d]: unknown effect %q", index, e)
			}
		}
	case AssertModifierEffects:
		if a.Card == "" {
			return fmt.Errorf("assertions[%d]: card is required for modifier_effects", index)
		}
		if !ids[a.Card] {
			return fmt.Errorf("assertions[%d]: unknown card %q", index, a.Card)
		}
		if a.Effects == nil {
			return fmt.Errorf("assertions[%d]: effects is required for modifier_effects (use [] for none)", index)
		}
	case AssertOrder:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
