// Package classify assigns each documented entity one of four declaration
// shapes. Structural heuristics are overridden by static path-pattern tables
// consulted in a fixed priority order.
package classify

import (
	"regexp"
	"strings"

	"github.com/teranos/dojodts/api"
	"github.com/teranos/dojodts/errors"
	"github.com/teranos/dojodts/typeref"
)

// Kind is the declaration shape of an entity.
type Kind int

const (
	// PlainNamespace is a bag of static properties and functions
	PlainNamespace Kind = iota
	// CallableNamespace is a function default export that may carry statics
	CallableNamespace
	// Interface is a pure field/method contract
	Interface
	// Class is a constructor with instance members
	Class
)

// String returns the lowercase shape name
func (k Kind) String() string {
	switch k {
	case PlainNamespace:
		return "namespace"
	case CallableNamespace:
		return "callable"
	case Interface:
		return "interface"
	case Class:
		return "class"
	default:
		return "unknown"
	}
}

// Default pattern tables for the 1.10 documentation.
var (
	// DefaultForcedNamespace lists entities documented with class- or
	// interface-like shapes that are really module objects.
	DefaultForcedNamespace = []string{
		`^dojo/main$`,
		`^dijit/main$`,
		`^dojox/main$`,
		`^dojo/_base/kernel$`,
	}

	// DefaultForcedInterface lists API documentation families that describe
	// contracts rather than implementations.
	DefaultForcedInterface = []string{
		`^dojo/store/api/`,
		`^dojo/data/api/`,
		`^dojo/number\.__`,
	}

	// DefaultForcedClass lists classes that fail the structural heuristic.
	DefaultForcedClass = []string{
		`^dojo/NodeList$`,
	}
)

// Patterns holds the override tables as regular expression sources.
type Patterns struct {
	ForcedNamespace []string
	ForcedInterface []string
	ForcedClass     []string
}

// DefaultPatterns returns the built-in override tables
func DefaultPatterns() Patterns {
	return Patterns{
		ForcedNamespace: DefaultForcedNamespace,
		ForcedInterface: DefaultForcedInterface,
		ForcedClass:     DefaultForcedClass,
	}
}

// Classifier decides declaration shapes. It holds only immutable data and is
// safe for concurrent use.
type Classifier struct {
	forcedNamespace []*regexp.Regexp
	forcedInterface []*regexp.Regexp
	forcedClass     []*regexp.Regexp
}

// New compiles the pattern tables
func New(p Patterns) (*Classifier, error) {
	ns, err := compile("forced namespace", p.ForcedNamespace)
	if err != nil {
		return nil, err
	}
	iface, err := compile("forced interface", p.ForcedInterface)
	if err != nil {
		return nil, err
	}
	class, err := compile("forced class", p.ForcedClass)
	if err != nil {
		return nil, err
	}
	return &Classifier{forcedNamespace: ns, forcedInterface: iface, forcedClass: class}, nil
}

// Default returns a classifier over the built-in tables
func Default() *Classifier {
	c, err := New(DefaultPatterns())
	if err != nil {
		panic(err)
	}
	return c
}

func compile(table string, sources []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(sources))
	for _, src := range sources {
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s pattern %q", table, src)
		}
		out = append(out, re)
	}
	return out, nil
}

// Classify returns the shape of e. The first matching rule wins:
//  1. forced namespace
//  2. interface: last segment starts with "__", or forced interface
//  3. class: classlike flag, a function with methods and no return type, or forced class
//  4. callable namespace for functions, plain namespace otherwise
func (c *Classifier) Classify(e *api.Entity) Kind {
	path := e.Location

	if matchAny(c.forcedNamespace, path) {
		return namespaceKind(e)
	}
	if c.IsInterfacePath(path) {
		return Interface
	}
	if e.Classlike ||
		(e.IsFunction() && !e.HasReturnTypes() && len(e.Methods) > 0) ||
		matchAny(c.forcedClass, path) {
		return Class
	}
	return namespaceKind(e)
}

// IsInterfacePath reports whether path names an interface by convention or
// by the forced-interface table. Forced namespaces never count.
func (c *Classifier) IsInterfacePath(path string) bool {
	if matchAny(c.forcedNamespace, path) {
		return false
	}
	return strings.HasPrefix(ShortName(path), "__") || matchAny(c.forcedInterface, path)
}

// ShortName returns the last segment of the normalised path
func ShortName(path string) string {
	parts := Segments(path)
	return parts[len(parts)-1]
}

// Segments splits a path on "/" and "." after normalisation
func Segments(path string) []string {
	return strings.Split(typeref.Normalize(path), ".")
}

func namespaceKind(e *api.Entity) Kind {
	if e.IsFunction() {
		return CallableNamespace
	}
	return PlainNamespace
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
