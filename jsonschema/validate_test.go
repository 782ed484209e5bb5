package jsonschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	js "github.com/scidatatool/scidata/jsonschema"
)

func recordSchema() *js.Schema {
	return &js.Schema{
		Dialect: js.Draft2020,
		Type:    "object",
		Properties: map[string]*js.Schema{
			"name":   {Type: "string"},
			"number": {Type: []string{"integer", "null"}},
			"values": {Type: "array", Items: &js.Schema{Type: "number"}},
		},
		AdditionalProperties: true,
	}
}

func TestValidator_Accepts(t *testing.T) {
	vd, err := js.Compile(recordSchema())
	require.NoError(t, err)

	viol, err := vd.Validate(map[string]any{
		"name":   "Flux",
		"number": 3,
		"values": []float64{1, 2.5},
		"extra":  "ignored",
	})
	require.NoError(t, err)
	assert.Empty(t, viol)

	viol, err = vd.Validate(map[string]any{"number": nil})
	require.NoError(t, err)
	assert.Empty(t, viol)
}

func TestValidator_ReportsLeafViolations(t *testing.T) {
	vd, err := js.Compile(recordSchema())
	require.NoError(t, err)

	viol, err := vd.Validate(map[string]any{"name": 42, "values": []any{1, "x"}})
	require.NoError(t, err)
	require.Len(t, viol, 2)

	paths := []string{viol[0].Path, viol[1].Path}
	assert.ElementsMatch(t, []string{"/name", "/values/1"}, paths)
	for _, v := range viol {
		assert.NotEmpty(t, v.Message)
	}
}

func TestCompile_NilSchema(t *testing.T) {
	_, err := js.Compile(nil)
	require.Error(t, err)
}
