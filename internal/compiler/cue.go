package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/cardfx/internal/ir"
)

// CompileCard parses a CUE value into a Card.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the card struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`card: site: { tags: ["react"] }`)
//	c, err := CompileCard(v.LookupPath(cue.ParsePath("card.site")))
//
// The card ID is the struct label. Private attributes keep their
// declaration order.
func CompileCard(v cue.Value) (*ir.Card, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	c := &ir.Card{}

	labels := v.Path().Selectors()
	if len(labels) > 0 {
		c.ID = labels[len(labels)-1].Unquoted()
	}

	// Title is optional
	if titleVal := v.LookupPath(cue.ParsePath("title")); titleVal.Exists() {
		title, err := titleVal.String()
		if err != nil {
			return nil, &CompileError{Field: "title", Message: "title must be a string", Pos: titleVal.Pos()}
		}
		c.Title = title
	}

	tags, err := parseTags(v)
	if err != nil {
		return nil, err
	}
	c.PublicTags = tags

	private, err := parsePrivate(v)
	if err != nil {
		return nil, err
	}
	c.Private = private

	return c, nil
}

// CompileDeck parses every card under the "card" struct, in declaration
// order. An optional top-level "name" string names the deck.
func CompileDeck(v cue.Value) (ir.Deck, error) {
	if err := v.Err(); err != nil {
		return ir.Deck{}, formatCUEError(err)
	}

	var deck ir.Deck
	if nameVal := v.LookupPath(cue.ParsePath("name")); nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return ir.Deck{}, &CompileError{Field: "name", Message: "deck name must be a string", Pos: nameVal.Pos()}
		}
		deck.Name = name
	}

	cardsVal := v.LookupPath(cue.ParsePath("card"))
	if !cardsVal.Exists() {
		return deck, nil
	}

	iter, err := cardsVal.Fields()
	if err != nil {
		return ir.Deck{}, formatCUEError(err)
	}
	for iter.Next() {
		c, err := CompileCard(iter.Value())
		if err != nil {
			return ir.Deck{}, err
		}
		deck.Cards = append(deck.Cards, *c)
	}
	return deck, nil
}

// parseTags reads the public tag list (optional, defaults to empty).
func parseTags(v cue.Value) ([]string, error) {
	tagsVal := v.LookupPath(cue.ParsePath("tags"))
	if !tagsVal.Exists() {
		return []string{}, nil
	}

	iter, err := tagsVal.List()
	if err != nil {
		return nil, &CompileError{Field: "tags", Message: "tags must be a list of strings", Pos: tagsVal.Pos()}
	}

	var raw []string
	for iter.Next() {
		tag, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("tags[%s]", iter.Selector()),
				Message: "tag must be a string",
				Pos:     iter.Value().Pos(),
			}
		}
		raw = append(raw, tag)
	}
	return NormalizeTags(raw), nil
}

// parsePrivate reads private attributes in declaration order.
func parsePrivate(v cue.Value) (ir.Attributes, error) {
	privVal := v.LookupPath(cue.ParsePath("private"))
	if !privVal.Exists() {
		return nil, nil
	}

	iter, err := privVal.Fields()
	if err != nil {
		return nil, &CompileError{Field: "private", Message: "private must be a struct", Pos: privVal.Pos()}
	}

	var attrs ir.Attributes
	for iter.Next() {
		key := iter.Selector().Unquoted()
		val, err := cueScalar(iter.Value())
		if err != nil {
			return nil, &CompileError{
				Field:   "private." + key,
				Message: err.Error(),
				Pos:     iter.Value().Pos(),
			}
		}
		attrs = append(attrs, ir.Attribute{Key: key, Value: val})
	}
	return attrs, nil
}

// cueScalar converts a concrete CUE scalar to an attribute value.
func cueScalar(v cue.Value) (ir.Value, error) {
	if !v.IsConcrete() {
		return nil, fmt.Errorf("attribute value must be concrete")
	}

	switch v.Kind() {
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, err
		}
		return ir.String(s), nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, err
		}
		return ir.Bool(b), nil
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, err
		}
		return ir.Number(n), nil
	case cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return ir.ToValue(f)
	default:
		return nil, fmt.Errorf("unsupported attribute value kind: %v", v.Kind())
	}
}
