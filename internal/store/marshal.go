package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/cardfx/internal/ir"
)

// marshalEffects serializes pair effects as a canonical JSON array.
func marshalEffects(effects []ir.Effect) (string, error) {
	list := make([]any, len(effects))
	for i, e := range effects {
		list[i] = string(e)
	}
	data, err := ir.MarshalCanonical(list)
	if err != nil {
		return "", fmt.Errorf("marshal effects: %w", err)
	}
	return string(data), nil
}

func unmarshalEffects(data string) ([]ir.Effect, error) {
	effects := make([]ir.Effect, 0)
	if err := json.Unmarshal([]byte(data), &effects); err != nil {
		return nil, fmt.Errorf("unmarshal effects: %w", err)
	}
	return effects, nil
}

// marshalValue serializes an attribute value as a canonical JSON scalar,
// which keeps "3" (string) and 3 (number) apart.
func marshalValue(v ir.Value) (string, error) {
	data, err := ir.MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("marshal value: %w", err)
	}
	return string(data), nil
}

func unmarshalValue(data string) (ir.Value, error) {
	v, err := ir.ParseValueJSON([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal value: %w", err)
	}
	return v, nil
}

func marshalParams(params map[string]float64) (string, error) {
	if params == nil {
		params = map[string]float64{}
	}
	data, err := ir.MarshalCanonical(params)
	if err != nil {
		return "", fmt.Errorf("marshal params: %w", err)
	}
	return string(data), nil
}

// unmarshalParams returns nil for an empty object so round trips keep
// omitempty behavior.
func unmarshalParams(data string) (map[string]float64, error) {
	var params map[string]float64
	if err := json.Unmarshal([]byte(data), &params); err != nil {
		return nil, fmt.Errorf("unmarshal params: %w", err)
	}
	if len(params) == 0 {
		return nil, nil
	}
	return params, nil
}
