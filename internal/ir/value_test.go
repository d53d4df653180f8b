package ir

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueKey(t *testing.T) {
	assert.Equal(t, "completed", String("completed").Key())
	assert.Equal(t, "3", Number(3).Key())
	assert.Equal(t, "2.5", Number(2.5).Key())
	assert.Equal(t, "true", Bool(true).Key())
	assert.Equal(t, "false", Bool(false).Key())
}

func TestToValue(t *testing.T) {
	tests := []struct {
		in   any
		want Value
	}{
		{"x", String("x")},
		{true, Bool(true)},
		{3, Number(3)},
		{int64(4), Number(4)},
		{uint64(5), Number(5)},
		{1.5, Number(1.5)},
		{String("y"), String("y")},
	}
	for _, tt := range tests {
		got, err := ToValue(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []any{nil, []any{1}, map[string]any{}} {
		_, err := ToValue(bad)
		assert.Error(t, err, "%T should be rejected", bad)
	}
}

func TestAttributesJSONKeepsOrder(t *testing.T) {
	attrs := Attributes{
		{Key: "status", Value: String("completed")},
		{Key: "featured", Value: Bool(true)},
		{Key: "difficulty", Value: Number(4)},
	}

	data, err := json.Marshal(attrs)
	require.NoError(t, err)
	assert.Equal(t, `{"status":"completed","featured":true,"difficulty":4}`, string(data))

	var back Attributes
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, attrs, back)
}

func TestAttributesUnmarshalRejectsNested(t *testing.T) {
	var attrs Attributes
	err := json.Unmarshal([]byte(`{"links":["a","b"]}`), &attrs)
	assert.Error(t, err)
}

func TestAttributesGet(t *testing.T) {
	attrs := Attributes{{Key: "status", Value: String("archived")}}

	v, ok := attrs.Get("status")
	require.True(t, ok)
	assert.Equal(t, String("archived"), v)

	_, ok = attrs.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"status"}, attrs.Keys())
}

func TestByValueResolve(t *testing.T) {
	entry := ByValue{
		"completed": {Effect: "stabilize"},
		"3":         {Effect: "elevate"},
	}

	d, ok := entry.Resolve(String("completed"))
	require.True(t, ok)
	assert.Equal(t, "stabilize", d.Effect)

	d, ok = entry.Resolve(Number(3))
	require.True(t, ok)
	assert.Equal(t, "elevate", d.Effect)

	_, ok = entry.Resolve(String("unknown-value"))
	assert.False(t, ok)
	_, ok = entry.Resolve(nil)
	assert.False(t, ok)
}

func TestNegativeZeroKey(t *testing.T) {
	negZero := Number(math.Copysign(0, -1))
	assert.Equal(t, "0", negZero.Key())

	d, ok := ByValue{"0": {Effect: "shrink"}}.Resolve(negZero)
	require.True(t, ok)
	assert.Equal(t, "shrink", d.Effect)
}

func TestCloneEntryIsDeep(t *testing.T) {
	orig := Direct{Descriptor: ModifierDescriptor{Effect: "highlight", Params: map[string]float64{"scale": 1.2}}}
	clone := CloneEntry(orig).(Direct)
	clone.Descriptor.Params["scale"] = 9

	assert.Equal(t, 1.2, orig.Descriptor.Params["scale"])
}
