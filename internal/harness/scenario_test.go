package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardfx/internal/ir"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, `
name: basic
description: "Two cards"
cards:
  - id: a
    tags: [JavaScript, react]
    private:
      status: completed
      difficulty: 3
  - id: b
    tags: [javascript]
assertions:
  - type: pair_count
    count: 1
  - type: pair_present
    a: a
    b: b
    min_strength: 0.2
    effects_include: [merge]
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "basic", s.Name)
	require.Len(t, s.Cards, 2)
	assert.Equal(t, []string{"javascript", "react"}, s.Cards[0].PublicTags, "tags are normalized")
	assert.Equal(t, []string{"status", "difficulty"}, s.Cards[0].Private.Keys())
	assert.Equal(t, ir.Number(3), s.Cards[0].Private[1].Value)

	require.Len(t, s.Assertions, 2)
	require.NotNil(t, s.Assertions[0].Count)
	assert.Equal(t, 1, *s.Assertions[0].Count)
	require.NotNil(t, s.Assertions[1].MinStrength)
	assert.Equal(t, 0.2, *s.Assertions[1].MinStrength)
	assert.Equal(t, []string{"merge"}, s.Assertions[1].EffectsInclude)

	deck := s.Deck()
	assert.Equal(t, "basic", deck.Name)
	assert.Len(t, deck.Cards, 2)
}

func TestLoadScenario_NoCards(t *testing.T) {
	path := writeScenario(t, `
name: empty
description: "Empty deck"
assertions:
  - type: pair_count
    count: 0
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.NotNil(t, s.Cards)
	assert.Empty(t, s.Cards)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "Typo in assertions key"
assertion:
  - type: order
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing name",
			yaml: `
description: "x"
assertions: [{type: order}]
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			yaml: `
name: x
assertions: [{type: order}]
`,
			wantErr: "description is required",
		},
		{
			name: "no assertions",
			yaml: `
name: x
description: "x"
`,
			wantErr: "assertions list is required",
		},
		{
			name: "duplicate card id",
			yaml: `
name: x
description: "x"
cards:
  - {id: a, tags: [go]}
  - {id: a, tags: [rust]}
assertions: [{type: order}]
`,
			wantErr: "E202",
		},
		{
			name: "non-scalar attribute",
			yaml: `
name: x
description: "x"
cards:
  - id: a
    tags: [go]
    private:
      status: [a, b]
assertions: [{type: order}]
`,
			wantErr: "attribute value must be a scalar",
		},
		{
			name: "unknown assertion type",
			yaml: `
name: x
description: "x"
assertions: [{type: trace_contains}]
`,
			wantErr: `unknown assertion type "trace_contains"`,
		},
		{
			name: "pair_count without count",
			yaml: `
name: x
description: "x"
assertions: [{type: pair_count}]
`,
			wantErr: "count is required",
		},
		{
			name: "negative count",
			yaml: `
name: x
description: "x"
assertions: [{type: pair_count, count: -1}]
`,
			wantErr: "count must be non-negative",
		},
		{
			name: "pair with unknown card",
			yaml: `
name: x
description: "x"
cards:
  - {id: a, tags: [go]}
assertions: [{type: pair_present, a: a, b: zzz}]
`,
			wantErr: `unknown card "zzz"`,
		},
		{
			name: "pair with itself",
			yaml: `
name: x
description: "x"
cards:
  - {id: a, tags: [go]}
assertions: [{type: pair_absent, a: a, b: a}]
`,
			wantErr: "must be different cards",
		},
		{
			name: "unknown effect",
			yaml: `
name: x
description: "x"
cards:
  - {id: a, tags: [go]}
  - {id: b, tags: [rust]}
assertions: [{type: pair_present, a: a, b: b, effects_include: [explode]}]
`,
			wantErr: `unknown effect "explode"`,
		},
		{
			name: "modifier_effects without effects",
			yaml: `
name: x
description: "x"
cards:
  - {id: a, tags: [go]}
assertions: [{type: modifier_effects, card: a}]
`,
			wantErr: "effects is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario("test.yaml", []byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
