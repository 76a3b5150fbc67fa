package typegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("mixin"))
	assert.True(t, IsIdentifier("_private$"))
	assert.False(t, IsIdentifier("is-array"))
	assert.False(t, IsIdentifier("2d"))
	assert.False(t, IsIdentifier(""))
	assert.False(t, IsIdentifier("delete"))
}

func TestTypeName(t *testing.T) {
	tests := map[string]string{
		"Memory":  "Memory",
		"string":  "string_",
		"number":  "number_",
		"default": "default_",
		"boolean": "boolean_",
		"unknown": "unknown_",
		"class":   "class_",
		"3d":      "_3d",
		"a.b":     "a_b",
	}
	for in, want := range tests {
		assert.Equal(t, want, TypeName(in), in)
	}
}

func TestMemberName(t *testing.T) {
	assert.Equal(t, "onClick", MemberName("onClick"))
	assert.Equal(t, "delete", MemberName("delete"))
	assert.Equal(t, `"aria-label"`, MemberName("aria-label"))
	assert.Equal(t, `"a\"b"`, MemberName(`a"b`))
}
