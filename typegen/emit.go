package typegen

import (
	"fmt"
	"strings"

	"github.com/teranos/dojodts/api"
	"github.com/teranos/dojodts/classify"
	"github.com/teranos/dojodts/jsdoc"
	"github.com/teranos/dojodts/typeref"
)

// writer accumulates indented declaration lines
type writer struct {
	sb    strings.Builder
	level int
}

func (w *writer) line(format string, args ...interface{}) {
	w.sb.WriteString(jsdoc.Indent(w.level))
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteByte('\n')
}

func (w *writer) open(head string) {
	w.line("%s {", head)
	w.level++
}

func (w *writer) close() {
	w.level--
	w.line("}")
}

func (w *writer) raw(s string) {
	w.sb.WriteString(s)
}

func (w *writer) blank() {
	w.sb.WriteByte('\n')
}

func (w *writer) String() string {
	return w.sb.String()
}

// emitter writes the declarations of one classified entity
type emitter struct {
	g        *Generator
	coll     *api.Collection
	e        *api.Entity
	kind     classify.Kind
	w        writer
	warnings []Warning
}

// names splits the entity location into namespace wrappers, the declared
// short name and the fully qualified reference to it.
func (em *emitter) names() (nesting []string, short, qualified string) {
	segs := classify.Segments(em.e.Location)
	for _, s := range segs[:len(segs)-1] {
		nesting = append(nesting, typeref.SegmentName(s))
	}
	short = TypeName(segs[len(segs)-1])
	qualified = strings.Join(append(append([]string{}, nesting...), short), ".")
	return nesting, short, qualified
}

func (em *emitter) emit() {
	em.w.line("// Types for %s", em.e.Location)
	switch em.kind {
	case classify.Interface:
		em.emitInterface()
	case classify.Class:
		em.emitClass()
	case classify.CallableNamespace:
		em.emitCallable()
	default:
		em.emitNamespace()
	}
	em.w.blank()
}

func (em *emitter) emitInterface() {
	nesting, short, qualified := em.names()

	em.openNesting(nesting)
	em.doc(&em.e.Doc)
	em.w.open("interface " + short)
	em.members(false)
	em.w.close()
	em.closeNesting(nesting)

	em.w.open(moduleHead(em.e.Location))
	if qualified != short {
		em.w.line("interface %s extends %s {}", short, qualified)
	}
	em.w.line("export = %s;", short)
	em.w.close()
}

func (em *emitter) emitClass() {
	nesting, short, qualified := em.names()

	head := "class " + short
	if len(nesting) == 0 {
		head = "declare " + head
	}
	if sup := em.e.Superclass; sup != "" && sup != em.e.Location {
		head += " " + em.heritage(sup) + " " + em.g.resolver.Resolve(sup)
	}

	em.openNesting(nesting)
	em.doc(&em.e.Doc)
	em.w.open(head)
	for _, sig := range em.signatures("constructor", em.constructorParameters()) {
		em.w.line("constructor(%s);", sig)
	}
	em.members(true)
	em.w.close()
	em.closeNesting(nesting)

	em.w.open(moduleHead(em.e.Location))
	if qualified != short {
		em.w.line("type %s = %s;", short, qualified)
		em.w.line("const %s: typeof %s;", short, qualified)
	}
	em.w.line("export = %s;", short)
	em.w.close()
}

func (em *emitter) emitCallable() {
	nesting, short, qualified := em.names()

	em.openNesting(nesting)
	em.doc(&em.e.Doc)
	em.w.open("interface " + short)
	ret := em.g.resolver.ResolveReturn(em.e.ReturnTypes)
	for _, sig := range em.signatures("", em.e.Parameters) {
		em.w.line("(%s): %s;", sig, ret)
	}
	em.members(false)
	em.w.close()
	em.closeNesting(nesting)

	value := short
	if qualified == short {
		value = "_" + short
	}
	em.w.open(moduleHead(em.e.Location))
	em.w.line("const %s: %s;", value, qualified)
	em.w.line("export = %s;", value)
	em.w.close()
}

func (em *emitter) emitNamespace() {
	props, methods := em.memberSet()

	em.doc(&em.e.Doc)
	em.w.open(moduleHead(em.e.Location))
	for _, m := range methods {
		if !IsIdentifier(m.Name) {
			em.w.line("// Skipping function with illegal name '%s'", m.Name)
			continue
		}
		em.doc(&m.Doc)
		ret := em.g.resolver.ResolveReturn(m.ReturnTypes)
		for _, sig := range em.signatures(m.Name, m.Parameters) {
			em.w.line("export function %s(%s): %s;", m.Name, sig, ret)
		}
	}
	for _, p := range props {
		if !IsIdentifier(p.Name) {
			em.w.line("// Skipping property with illegal name '%s'", p.Name)
			continue
		}
		em.doc(&api.Doc{Summary: p.Summary})
		em.w.line("export var %s: %s;", p.Name, em.g.resolver.ResolveList(p.Types))
	}
	em.w.close()
}

// members writes the property and method members of an interface or class
// body. Class bodies take their constructor from the entity itself.
func (em *emitter) members(class bool) {
	props, methods := em.memberSet()
	for _, p := range props {
		em.doc(&api.Doc{Summary: p.Summary})
		opt := ""
		if p.Optional() {
			opt = "?"
		}
		em.w.line("%s%s: %s;", MemberName(p.Name), opt, em.g.resolver.ResolveList(p.Types))
	}
	for _, m := range methods {
		if class && m.Name == "constructor" {
			continue
		}
		em.doc(&m.Doc)
		ret := em.g.resolver.ResolveReturn(m.ReturnTypes)
		for _, sig := range em.signatures(m.Name, m.Parameters) {
			em.w.line("%s(%s): %s;", MemberName(m.Name), sig, ret)
		}
	}
}

// memberSet returns the members with duplicate names collapsed. An own
// member replaces an inherited one of the same name, and a property
// sharing its name with a method is dropped.
func (em *emitter) memberSet() ([]api.Property, []api.Method) {
	methods := dedupe(em.e.Methods,
		func(m api.Method) string { return m.Name },
		func(m api.Method) bool { return !em.e.Inherited(m.From) })

	methodNames := make(map[string]bool, len(methods))
	for _, m := range methods {
		methodNames[m.Name] = true
	}
	var props []api.Property
	for _, p := range dedupe(em.e.Properties,
		func(p api.Property) string { return p.Name },
		func(p api.Property) bool { return !em.e.Inherited(p.From) }) {
		if !methodNames[p.Name] {
			props = append(props, p)
		}
	}
	return props, methods
}

func dedupe[T any](items []T, name func(T) string, own func(T) bool) []T {
	index := make(map[string]int, len(items))
	var out []T
	for _, it := range items {
		n := name(it)
		if i, seen := index[n]; seen {
			if own(it) && !own(out[i]) {
				out[i] = it
			}
			continue
		}
		index[n] = len(out)
		out = append(out, it)
	}
	return out
}

// constructorParameters prefers the entity's own parameters and falls back
// to a documented "constructor" method.
func (em *emitter) constructorParameters() []api.Parameter {
	if len(em.e.Parameters) > 0 {
		return em.e.Parameters
	}
	for _, m := range em.e.Methods {
		if m.Name == "constructor" {
			return m.Parameters
		}
	}
	return nil
}

// heritage picks the clause for a superclass: interfaces are implemented,
// anything else is extended.
func (em *emitter) heritage(sup string) string {
	kind, ok := classify.PlainNamespace, false
	if se := em.coll.Get(sup); se != nil {
		kind, ok = em.g.Classify(sup, se)
	}
	if !ok {
		kind = em.g.classifier.Classify(&api.Entity{Location: sup})
	}
	if kind == classify.Interface {
		return "implements"
	}
	return "extends"
}

func (em *emitter) signatures(member string, params []api.Parameter) []string {
	sigs, err := em.g.expander.Expand(params)
	if err != nil {
		em.warnings = append(em.warnings, Warning{Entity: em.e.Location, Member: member, Err: err})
	}
	return sigs
}

func (em *emitter) doc(d *api.Doc) {
	em.w.raw(jsdoc.Format(d, em.w.level))
}

func (em *emitter) openNesting(nesting []string) {
	for i, ns := range nesting {
		if i == 0 {
			em.w.open("declare namespace " + ns)
		} else {
			em.w.open("namespace " + ns)
		}
	}
}

func (em *emitter) closeNesting(nesting []string) {
	for range nesting {
		em.w.close()
	}
}

func moduleHead(location string) string {
	return `declare module "` + location + `"`
}
