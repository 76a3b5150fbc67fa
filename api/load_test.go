package api

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/dojodts/errors"
)

const details = `{
  "dojo/store/Memory": {"location": "dojo/store/Memory", "type": "function", "classlike": true,
    "methods": [{"name": "get", "parameters": [{"name": "id", "types": ["Number"], "usage": "required"}], "returnTypes": ["Object"]}]},
  "dojo/_base/lang": {"type": "object", "summary": "Language helpers"},
  "dojo/number.__FormatOptions": {"location": "dojo/number.__FormatOptions", "type": "object",
    "properties": [{"name": "pattern", "types": ["String"], "from": "dojo/number.__FormatOptions"}]},
  "dijit/form/Button": {"location": "dijit/Button", "type": "function", "examples": ["a", "b"]}
}`

func TestParse_PreservesKeyOrder(t *testing.T) {
	coll, err := Parse([]byte(details))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"dojo/store/Memory",
		"dojo/_base/lang",
		"dojo/number.__FormatOptions",
		"dijit/form/Button",
	}, coll.Keys())
	assert.Equal(t, 4, coll.Len())
}

func TestParse_LocationFromKey(t *testing.T) {
	coll, err := Parse([]byte(details))
	require.NoError(t, err)

	assert.Equal(t, "dojo/_base/lang", coll.Get("dojo/_base/lang").Location)
	// A mismatching location is replaced by the key
	assert.Equal(t, "dijit/form/Button", coll.Get("dijit/form/Button").Location)
}

func TestParse_Fields(t *testing.T) {
	coll, err := Parse([]byte(details))
	require.NoError(t, err)

	memory := coll.Get("dojo/store/Memory")
	require.NotNil(t, memory)
	assert.True(t, memory.Classlike)
	assert.True(t, memory.IsFunction())
	require.Len(t, memory.Methods, 1)
	assert.Equal(t, "get", memory.Methods[0].Name)
	assert.Equal(t, []string{"Object"}, memory.Methods[0].ReturnTypes)
	assert.False(t, memory.Methods[0].Parameters[0].Optional())

	assert.Equal(t, Text("Language helpers"), coll.Get("dojo/_base/lang").Summary)
	assert.Equal(t, Text("a\nb"), coll.Get("dijit/form/Button").Examples)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not an object", data: `[1, 2]`},
		{name: "entity not an object", data: `{"dojo/on": "function"}`},
		{name: "malformed entity", data: `{"dojo/on": {"methods": "nope"}}`},
		{name: "duplicate key", data: `{"dojo/on": {}, "dojo/on": {}}`},
		{name: "empty key", data: `{"": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestText_Noise(t *testing.T) {
	coll, err := Parse([]byte(`{"a": {"summary": 42, "description": null}}`))
	require.NoError(t, err)
	assert.Equal(t, Text(""), coll.Get("a").Summary)
	assert.Equal(t, Text(""), coll.Get("a").Description)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "details.json")
	require.NoError(t, os.WriteFile(path, []byte(details), 0644))

	coll, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, coll.Len())

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.IsInputNotFound(err))
	assert.NotEmpty(t, errors.GetAllHints(err))
}
