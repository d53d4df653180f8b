package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"unicode/utf16"
)

// Value is a sealed interface over private attribute values.
// Only String, Number and Bool implement it.
type Value interface {
	value() // Sealed

	// Key is the lookup form used by ByValue modifier entries.
	Key() string
}

// String is a text attribute value, e.g. status: "completed".
type String string

func (String) value() {}

// Key returns the string itself.
func (s String) Key() string { return string(s) }

// Number is a numeric attribute value, e.g. difficulty: 3.
type Number float64

func (Number) value() {}

// Key returns the shortest decimal form: 3 -> "3", 2.5 -> "2.5".
func (n Number) Key() string { return formatNumber(float64(n)) }

// Bool is a flag attribute value, e.g. featured: true.
type Bool bool

func (Bool) value() {}

// Key returns "true" or "false".
func (b Bool) Key() string { return strconv.FormatBool(bool(b)) }

// ToValue converts a decoded scalar (YAML, JSON, CUE) to a Value.
// Lists, maps and nulls are rejected.
func ToValue(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null attribute values are not supported")
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Number(val), nil
	case int64:
		return Number(val), nil
	case uint64:
		return Number(val), nil
	case float32:
		return checkedNumber(float64(val))
	case float64:
		return checkedNumber(val)
	default:
		return nil, fmt.Errorf("unsupported attribute value type %T", v)
	}
}

func checkedNumber(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("non-finite number %v", f)
	}
	return Number(f), nil
}

// ParseValueJSON decodes a JSON scalar into a Value.
func ParseValueJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	if n, ok := raw.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("decode number %q: %w", n, err)
		}
		return Number(f), nil
	}
	return ToValue(raw)
}

// Attribute is one private key/value pair on a card.
type Attribute struct {
	Key   string
	Value Value
}

// Attributes is an ordered list of private attributes.
// Order is the order the attributes were declared in.
type Attributes []Attribute

// Get returns the value for key.
func (a Attributes) Get(key string) (Value, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return nil, false
}

// Keys returns attribute keys in declaration order.
func (a Attributes) Keys() []string {
	keys := make([]string, len(a))
	for i, attr := range a {
		keys[i] = attr.Key
	}
	return keys
}

// MarshalJSON writes attributes as a JSON object in declaration order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(attr.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", attr.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping the key order.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*a = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("attributes: expected object, got %v", tok)
	}

	var out Attributes
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("attributes: expected key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("attribute %q: %w", key, err)
		}
		v, err := ParseValueJSON(raw)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", key, err)
		}
		out = append(out, Attribute{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*a = out
	return nil
}

// formatNumber renders f the way ECMAScript's Number#toString does for the
// ranges cardfx cares about: integers without exponent, otherwise shortest.
func formatNumber(f float64) string {
	if f == 0 {
		// -0 prints as "0".
		f = 0
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// sortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings uses UTF-8 which produces a different order.
func sortedKeys[V any](obj map[string]V) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}
