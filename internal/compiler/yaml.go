package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cardfx/internal/ir"
)

// yamlDeck is the on-disk YAML manifest layout.
type yamlDeck struct {
	Name  string     `yaml:"name"`
	Cards []yamlCard `yaml:"cards"`
}

// yamlCard keeps private as a raw node so attribute order survives.
type yamlCard struct {
	ID      string    `yaml:"id"`
	Title   string    `yaml:"title"`
	Tags    []string  `yaml:"tags"`
	Private yaml.Node `yaml:"private"`
}

// ParseYAMLDeck decodes a YAML deck manifest.
// file is only used in error messages.
func ParseYAMLDeck(file string, data []byte) (ir.Deck, error) {
	var raw yamlDeck
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return ir.Deck{}, nil
		}
		return ir.Deck{}, &CompileError{Field: "yaml", Message: err.Error(), File: file}
	}

	deck := ir.Deck{Name: raw.Name}
	for i, rc := range raw.Cards {
		c, err := compileYAMLCard(file, rc)
		if err != nil {
			var ce *CompileError
			if errors.As(err, &ce) {
				ce.Field = fmt.Sprintf("cards[%d].%s", i, ce.Field)
			}
			return ir.Deck{}, err
		}
		deck.Cards = append(deck.Cards, c)
	}
	return deck, nil
}

// DecodeYAMLCards converts an already-parsed YAML sequence of cards.
// Scenario files embed cards this way.
func DecodeYAMLCards(file string, node *yaml.Node) ([]ir.Card, error) {
	var raw []yamlCard
	if err := node.Decode(&raw); err != nil {
		return nil, &CompileError{Field: "cards", Message: err.Error(), File: file, Line: node.Line}
	}
	cards := make([]ir.Card, 0, len(raw))
	for i, rc := range raw {
		c, err := compileYAMLCard(file, rc)
		if err != nil {
			var ce *CompileError
			if errors.As(err, &ce) {
				ce.Field = fmt.Sprintf("cards[%d].%s", i, ce.Field)
			}
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func compileYAMLCard(file string, rc yamlCard) (ir.Card, error) {
	c := ir.Card{
		ID:         rc.ID,
		Title:      rc.Title,
		PublicTags: NormalizeTags(rc.Tags),
	}
	attrs, err := yamlAttributes(file, &rc.Private)
	if err != nil {
		return ir.Card{}, err
	}
	c.Private = attrs
	return c, nil
}

// yamlAttributes walks a mapping node pairwise to keep key order.
func yamlAttributes(file string, node *yaml.Node) (ir.Attributes, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, &CompileError{Field: "private", Message: "private must be a mapping", File: file, Line: node.Line}
	}

	var attrs ir.Attributes
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		key := keyNode.Value

		if valNode.Kind != yaml.ScalarNode {
			return nil, &CompileError{
				Field:   "private." + key,
				Message: "attribute value must be a scalar",
				File:    file,
				Line:    valNode.Line,
			}
		}

		var decoded any
		if err := valNode.Decode(&decoded); err != nil {
			return nil, &CompileError{Field: "private." + key, Message: err.Error(), File: file, Line: valNode.Line}
		}
		v, err := ir.ToValue(decoded)
		if err != nil {
			return nil, &CompileError{Field: "private." + key, Message: err.Error(), File: file, Line: valNode.Line}
		}
		attrs = append(attrs, ir.Attribute{Key: key, Value: v})
	}
	return attrs, nil
}
