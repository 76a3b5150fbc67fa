// Package api holds the entity model of the legacy toolkit documentation and
// an insertion-ordered collection of entities keyed by path.
package api

import (
	"encoding/json"
	"strings"
)

// Entity kinds as recorded by the documentation scraper.
const (
	KindObject      = "object"
	KindInstance    = "instance"
	KindFunction    = "function"
	KindConstructor = "constructor"
)

// UsageOptional is the only parameter usage value that marks a parameter optional.
const UsageOptional = "optional"

// Text is free documentation text. The scraper emits some fields either as a
// string or as a list of strings; both decode into one newline-joined string.
type Text string

// UnmarshalJSON accepts a string, a list of strings or null.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		// Anything else is noise; keep the field empty rather than failing the load
		*t = ""
		return nil
	}
	*t = Text(strings.Join(parts, "\n"))
	return nil
}

// Parameter is one documented parameter of a callable.
type Parameter struct {
	Name    string   `json:"name"`
	Types   []string `json:"types"`
	Usage   string   `json:"usage"`
	Summary Text     `json:"summary,omitempty"`
}

// Optional reports whether the parameter is tagged optional.
// Every other usage value counts as required.
func (p Parameter) Optional() bool {
	return p.Usage == UsageOptional
}

// Doc holds the documentation fields shared by entities and methods.
type Doc struct {
	Parameters        []Parameter `json:"parameters,omitempty"`
	ReturnDescription Text        `json:"returnDescription,omitempty"`
	ReturnTypes       []string    `json:"returnTypes,omitempty"`
	Summary           Text        `json:"summary,omitempty"`
	Description       Text        `json:"description,omitempty"`
	Examples          Text        `json:"examples,omitempty"`
}

// Property is a documented field.
type Property struct {
	Name            string   `json:"name"`
	Scope           string   `json:"scope,omitempty"`
	Types           []string `json:"types"`
	From            string   `json:"from,omitempty"`
	Usage           string   `json:"usage,omitempty"`
	Summary         Text     `json:"summary,omitempty"`
	ExtensionModule bool     `json:"extensionModule,omitempty"`
}

// Optional reports whether the property is tagged optional.
func (p Property) Optional() bool {
	return p.Usage == UsageOptional
}

// Method is a documented function member.
type Method struct {
	Doc
	Name            string `json:"name"`
	Scope           string `json:"scope,omitempty"`
	From            string `json:"from,omitempty"`
	ExtensionModule bool   `json:"extensionModule,omitempty"`
}

// Entity is one documented API symbol keyed by its location.
type Entity struct {
	Doc
	Location   string     `json:"location"`
	Type       string     `json:"type"`
	Classlike  bool       `json:"classlike,omitempty"`
	Superclass string     `json:"superclass,omitempty"`
	Properties []Property `json:"properties,omitempty"`
	Methods    []Method   `json:"methods,omitempty"`
}

// IsFunction reports whether the scraper recorded the entity as a function.
func (e *Entity) IsFunction() bool {
	return e.Type == KindFunction
}

// HasReturnTypes reports whether any return type is declared.
func (e *Entity) HasReturnTypes() bool {
	return len(e.ReturnTypes) > 0
}

// Inherited reports whether a member documented on from was mixed into e.
func (e *Entity) Inherited(from string) bool {
	return from != "" && from != e.Location
}

// Clone returns a deep copy of the entity.
func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	c := *e
	c.Doc = e.Doc.clone()
	if e.Properties != nil {
		c.Properties = make([]Property, len(e.Properties))
		for i, p := range e.Properties {
			p.Types = cloneStrings(p.Types)
			c.Properties[i] = p
		}
	}
	if e.Methods != nil {
		c.Methods = make([]Method, len(e.Methods))
		for i, m := range e.Methods {
			m.Doc = m.Doc.clone()
			c.Methods[i] = m
		}
	}
	return &c
}

func (d Doc) clone() Doc {
	c := d
	c.ReturnTypes = cloneStrings(d.ReturnTypes)
	if d.Parameters != nil {
		c.Parameters = make([]Parameter, len(d.Parameters))
		for i, p := range d.Parameters {
			p.Types = cloneStrings(p.Types)
			c.Parameters[i] = p
		}
	}
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
