package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/dojodts/api"
)

func TestClassify(t *testing.T) {
	c := Default()

	withMethod := []api.Method{{Name: "run"}}

	tests := []struct {
		name   string
		entity api.Entity
		want   Kind
	}{
		{
			name:   "double underscore interface",
			entity: api.Entity{Location: "a/b/__Options", Type: api.KindObject},
			want:   Interface,
		},
		{
			name:   "dotted double underscore interface",
			entity: api.Entity{Location: "dojo/currency.__ParseOptions", Type: api.KindObject},
			want:   Interface,
		},
		{
			name:   "forced interface family",
			entity: api.Entity{Location: "dojo/store/api/Store", Type: api.KindFunction, Methods: withMethod},
			want:   Interface,
		},
		{
			name:   "forced interface number options",
			entity: api.Entity{Location: "dojo/number.__FormatOptions", Type: api.KindObject},
			want:   Interface,
		},
		{
			name:   "function without return and with methods",
			entity: api.Entity{Location: "pkg/thing", Type: api.KindFunction, Methods: withMethod},
			want:   Class,
		},
		{
			name:   "classlike flag",
			entity: api.Entity{Location: "dijit/form/Button", Type: api.KindObject, Classlike: true},
			want:   Class,
		},
		{
			name:   "forced class",
			entity: api.Entity{Location: "dojo/NodeList", Type: api.KindFunction, Doc: api.Doc{ReturnTypes: []string{"NodeList"}}},
			want:   Class,
		},
		{
			name: "function with return type and methods",
			entity: api.Entity{Location: "dojo/on", Type: api.KindFunction, Methods: withMethod,
				Doc: api.Doc{ReturnTypes: []string{"Object"}}},
			want: CallableNamespace,
		},
		{
			name:   "function without methods",
			entity: api.Entity{Location: "dojo/ready", Type: api.KindFunction},
			want:   CallableNamespace,
		},
		{
			name:   "object",
			entity: api.Entity{Location: "dojo/_base/lang", Type: api.KindObject, Methods: withMethod},
			want:   PlainNamespace,
		},
		{
			name:   "instance",
			entity: api.Entity{Location: "dojo/window", Type: api.KindInstance},
			want:   PlainNamespace,
		},
		{
			name:   "constructor kind without class signals",
			entity: api.Entity{Location: "dojo/Stateful", Type: api.KindConstructor},
			want:   PlainNamespace,
		},
		{
			name:   "unknown kind",
			entity: api.Entity{Location: "x"},
			want:   PlainNamespace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.entity
			assert.Equal(t, tt.want, c.Classify(&e))
		})
	}
}

func TestClassify_ForcedNamespaceOverridesEverything(t *testing.T) {
	c := Default()

	signals := []api.Entity{
		{Location: "dojo/main", Type: api.KindObject, Classlike: true},
		{Location: "dojo/main", Type: api.KindFunction, Methods: []api.Method{{Name: "ready"}}},
		{Location: "dojo/main", Type: api.KindFunction, Classlike: true, Methods: []api.Method{{Name: "ready"}}},
		{Location: "dojo/_base/kernel", Type: api.KindInstance, Classlike: true},
	}
	for _, e := range signals {
		e := e
		kind := c.Classify(&e)
		assert.NotEqual(t, Interface, kind, "%s", e.Location)
		assert.NotEqual(t, Class, kind, "%s", e.Location)
	}

	custom, err := New(Patterns{ForcedNamespace: []string{`__Hidden$`}})
	require.NoError(t, err)
	e := api.Entity{Location: "pkg/__Hidden", Type: api.KindObject}
	assert.Equal(t, PlainNamespace, custom.Classify(&e))
	assert.False(t, custom.IsInterfacePath("pkg/__Hidden"))
}

func TestClassify_IsTotal(t *testing.T) {
	c := Default()
	kinds := []string{"", api.KindObject, api.KindInstance, api.KindFunction, api.KindConstructor, "weird"}
	paths := []string{"a", "a/b", "a/__B", "dojo/main", "dojo/NodeList", "dojo/store/api/Store"}

	for _, kind := range kinds {
		for _, path := range paths {
			for _, classlike := range []bool{false, true} {
				for _, methods := range [][]api.Method{nil, {{Name: "m"}}} {
					e := api.Entity{Location: path, Type: kind, Classlike: classlike, Methods: methods}
					got := c.Classify(&e)
					assert.Contains(t, []Kind{PlainNamespace, CallableNamespace, Interface, Class}, got)
					assert.NotEqual(t, "unknown", got.String())
				}
			}
		}
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New(Patterns{ForcedClass: []string{"("}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forced class")
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "Memory", ShortName("dojo/store/Memory"))
	assert.Equal(t, "__FormatOptions", ShortName("dojo/number.__FormatOptions"))
	assert.Equal(t, "dom_attr", ShortName("dojo/dom-attr"))
	assert.Equal(t, []string{"dojo", "number", "__FormatOptions"}, Segments("dojo/number.__FormatOptions"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "interface", Interface.String())
	assert.Equal(t, "class", Class.String())
	assert.Equal(t, "callable", CallableNamespace.String())
	assert.Equal(t, "namespace", PlainNamespace.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
