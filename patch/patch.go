// Package patch applies per-entity corrections to the documentation before
// synthesis. Rules are plain data loaded from YAML.
package patch

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/teranos/dojodts/api"
	"github.com/teranos/dojodts/errors"
)

//go:embed patches.yaml
var defaultPatches []byte

// Func is the patching boundary used by the synthesizer. It returns nil to
// drop the entity or a (possibly new) entity to synthesize in its place.
type Func func(path string, e *api.Entity) *api.Entity

// None leaves every entity untouched
func None(_ string, e *api.Entity) *api.Entity {
	return e
}

// ParameterRef names one parameter of a method. An empty Method refers to
// the entity's own parameters (constructor or call signature).
type ParameterRef struct {
	Method    string `yaml:"method,omitempty"`
	Parameter string `yaml:"parameter"`
}

// Rule is one correction to a single entity.
type Rule struct {
	Path string `yaml:"path"`

	// Remove drops the entity from the output
	Remove bool `yaml:"remove,omitempty"`

	// Superclass replaces the documented superclass; "" clears it
	Superclass *string `yaml:"superclass,omitempty"`

	DeleteProperties []string `yaml:"delete_properties,omitempty"`
	DeleteMethods    []string `yaml:"delete_methods,omitempty"`

	// OptionalParameters marks parameters optional
	OptionalParameters []ParameterRef `yaml:"optional_parameters,omitempty"`

	// OwnMembersOnly drops members documented on another module
	OwnMembersOnly bool `yaml:"own_members_only,omitempty"`
}

// Table holds the rules keyed by entity location.
type Table struct {
	rules map[string]Rule
	order []string
}

// Default returns the rule table compiled into the binary
func Default() (*Table, error) {
	t, err := Parse(defaultPatches)
	if err != nil {
		return nil, errors.Wrap(err, "embedded patches.yaml")
	}
	return t, nil
}

// Load reads a rule table from a YAML file
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.MarkAs(err, errors.ErrInvalidPatchTable, "failed to read patch table")
	}
	t, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "patch table %s", path)
	}
	return t, nil
}

// Parse decodes a YAML list of rules. Rules without a path and two rules
// for the same path are rejected.
func Parse(data []byte) (*Table, error) {
	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, errors.MarkAs(err, errors.ErrInvalidPatchTable, "malformed patch table")
	}
	return New(rules...)
}

// New builds a table from rules
func New(rules ...Rule) (*Table, error) {
	t := &Table{rules: make(map[string]Rule, len(rules))}
	for i, r := range rules {
		if r.Path == "" {
			return nil, errors.Newk(errors.ErrInvalidPatchTable, "rule %d has no path", i+1)
		}
		if _, dup := t.rules[r.Path]; dup {
			return nil, errors.Newk(errors.ErrInvalidPatchTable, "duplicate rule for %s", r.Path)
		}
		for _, ref := range r.OptionalParameters {
			if ref.Parameter == "" {
				return nil, errors.Newk(errors.ErrInvalidPatchTable,
					"optional parameter rule for %s has no parameter name", r.Path)
			}
		}
		t.rules[r.Path] = r
		t.order = append(t.order, r.Path)
	}
	return t, nil
}

// Len returns the number of rules
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Rule returns the rule for path
func (t *Table) Rule(path string) (Rule, bool) {
	if t == nil {
		return Rule{}, false
	}
	r, ok := t.rules[path]
	return r, ok
}

// Paths returns the patched locations in table order
func (t *Table) Paths() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Apply returns the corrected entity for path, or nil when the entity is
// removed. Entities without a rule are returned as is; otherwise the result
// is a modified clone and e is never mutated.
func (t *Table) Apply(path string, e *api.Entity) *api.Entity {
	if e == nil {
		return nil
	}
	r, ok := t.Rule(path)
	if !ok {
		return e
	}
	if r.Remove {
		return nil
	}

	out := e.Clone()
	if r.Superclass != nil {
		out.Superclass = *r.Superclass
	}
	if r.OwnMembersOnly {
		out.Properties = keepProperties(out.Properties, func(p api.Property) bool {
			return !out.Inherited(p.From)
		})
		out.Methods = keepMethods(out.Methods, func(m api.Method) bool {
			return !out.Inherited(m.From)
		})
	}
	if len(r.DeleteProperties) > 0 {
		drop := set(r.DeleteProperties)
		out.Properties = keepProperties(out.Properties, func(p api.Property) bool {
			return !drop[p.Name]
		})
	}
	if len(r.DeleteMethods) > 0 {
		drop := set(r.DeleteMethods)
		out.Methods = keepMethods(out.Methods, func(m api.Method) bool {
			return !drop[m.Name]
		})
	}
	for _, ref := range r.OptionalParameters {
		markOptional(out, ref)
	}
	return out
}

// Func returns Apply as a patching function
func (t *Table) Func() Func {
	if t == nil {
		return None
	}
	return t.Apply
}

func markOptional(e *api.Entity, ref ParameterRef) {
	if ref.Method == "" {
		setOptional(e.Parameters, ref.Parameter)
		return
	}
	for i := range e.Methods {
		if e.Methods[i].Name == ref.Method {
			setOptional(e.Methods[i].Parameters, ref.Parameter)
		}
	}
}

func setOptional(params []api.Parameter, name string) {
	for i := range params {
		if params[i].Name == name {
			params[i].Usage = api.UsageOptional
		}
	}
}

func keepProperties(props []api.Property, keep func(api.Property) bool) []api.Property {
	var out []api.Property
	for _, p := range props {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func keepMethods(methods []api.Method, keep func(api.Method) bool) []api.Method {
	var out []api.Method
	for _, m := range methods {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func set(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
