package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_Unmarshal(t *testing.T) {
	var body struct {
		A Field[string]  `json:"a"`
		B Field[string]  `json:"b"`
		C Field[float64] `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"x","b":null}`), &body))

	assert.True(t, body.A.Set)
	require.NotNil(t, body.A.Value)
	assert.Equal(t, "x", *body.A.Value)

	assert.True(t, body.B.Set)
	assert.Nil(t, body.B.Value)

	assert.False(t, body.C.Set)
}

func TestField_UnmarshalWrongType(t *testing.T) {
	var body struct {
		Price Field[float64] `json:"price"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"price":"cheap"}`), &body))
}

func TestField_ApplyTo(t *testing.T) {
	old := "old"
	dst := &old

	Field[string]{}.ApplyTo(&dst)
	require.NotNil(t, dst)
	assert.Equal(t, "old", *dst)

	Of("new").ApplyTo(&dst)
	require.NotNil(t, dst)
	assert.Equal(t, "new", *dst)

	Null[string]().ApplyTo(&dst)
	assert.Nil(t, dst)
}
