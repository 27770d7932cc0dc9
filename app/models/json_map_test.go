package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMapValueNil(t *testing.T) {
	var m JSONMap

	val, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", val)
}

func TestJSONMapScanString(t *testing.T) {
	var m JSONMap
	require.NoError(t, m.Scan(`{"source":"mobile","score":3}`))

	assert.Equal(t, "mobile", m["source"])
	assert.Equal(t, float64(3), m["score"])
}

func TestJSONMapScanNil(t *testing.T) {
	var m JSONMap
	require.NoError(t, m.Scan(nil))
	assert.NotNil(t, m)
	assert.Empty(t, m)
}

func TestJSONMapScanUnsupportedType(t *testing.T) {
	var m JSONMap
	assert.Error(t, m.Scan(42))
}

func TestJSONMapRoundTrip(t *testing.T) {
	in := JSONMap{"platform": "fb", "nested": map[string]interface{}{"a": "b"}}

	val, err := in.Value()
	require.NoError(t, err)

	var out JSONMap
	require.NoError(t, out.Scan(val))

	assert.Equal(t, "fb", out["platform"])
	nested, ok := out["nested"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "b", nested["a"])
}
