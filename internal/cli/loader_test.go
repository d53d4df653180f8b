package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardfx/internal/ir"
)

func TestLoadDeck_YAML(t *testing.T) {
	deck, err := LoadDeck(yamlDeck)
	require.NoError(t, err)

	assert.Equal(t, "portfolio", deck.Name)
	require.Len(t, deck.Cards, 4)
	assert.Equal(t, "site", deck.Cards[0].ID)
	assert.Equal(t, []string{"status", "featured"}, deck.Cards[0].Private.Keys())
}

func TestLoadDeck_CUEDirMatchesYAML(t *testing.T) {
	fromCUE, err := LoadDeck(cueDeck)
	require.NoError(t, err)
	fromYAML, err := LoadDeck(yamlDeck)
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromCUE)
	assert.Equal(t, ir.MustDeckDigest(fromYAML.Cards), ir.MustDeckDigest(fromCUE.Cards))
}

func TestLoadDeck_SingleCUEFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "one.cue", `package deck

card: solo: tags: ["go"]
`)

	deck, err := LoadDeck(path)
	require.NoError(t, err)
	require.Len(t, deck.Cards, 1)
	assert.Equal(t, "solo", deck.Cards[0].ID)
	assert.Equal(t, []string{"go"}, deck.Cards[0].PublicTags)
}

func TestLoadDeck_Errors(t *testing.T) {
	dir := t.TempDir()
	emptyDir := filepath.Join(dir, "empty")
	writeFile(t, emptyDir, "README.md", "nothing here")
	badExt := writeFile(t, dir, "deck.json", "{}")
	badYAML := writeFile(t, dir, "bad.yaml", "cards:\n  - id: a\n    tags: [x]\n    colour: red\n")
	nested := writeFile(t, dir, "nested.yaml", "cards:\n  - id: a\n    private:\n      links: [a, b]\n")
	badCUE := filepath.Join(dir, "badcue")
	writeFile(t, badCUE, "deck.cue", "package deck\n\ncard: a: tags: [\n")
	conflict := filepath.Join(dir, "conflict")
	writeFile(t, conflict, "deck.cue", "package deck\n\ncard: a: title: \"x\"\ncard: a: title: \"y\"\n")

	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing path", filepath.Join(dir, "nope"), ErrCodeNotFound},
		{"dir without cue files", emptyDir, ErrCodeNoFiles},
		{"unsupported extension", badExt, ErrCodeFormat},
		{"unknown yaml field", badYAML, ErrCodeCompile},
		{"nested attribute", nested, ErrCodeCompile},
		{"cue syntax error", badCUE, ErrCodeLoadFailed},
		{"cue conflict", conflict, ErrCodeBuildFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDeck(tt.path)
			require.Error(t, err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr), "want *LoadError, got %T: %v", err, err)
			assert.Equal(t, tt.code, loadErr.Code, "message: %s", loadErr.Message)
		})
	}
}

func TestLoadError_Format(t *testing.T) {
	assert.Equal(t, "E005: gone", (&LoadError{Code: "E005", Message: "gone"}).Error())
	assert.Equal(t, "deck.yaml:3: E008: bad", (&LoadError{Code: "E008", Message: "bad", File: "deck.yaml", Line: 3}).Error())
}
