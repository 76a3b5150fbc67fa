// Package jsdoc renders the free-text documentation of an entity or method
// as a JSDoc comment block.
package jsdoc

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/teranos/dojodts/api"
	"github.com/teranos/dojodts/typeref"
)

// IndentUnit is one level of indentation in generated declarations.
const IndentUnit = "  "

// paramContinuation aligns wrapped parameter summaries under the text.
const paramContinuation = "          "

var (
	lineBreakTags = regexp.MustCompile(`(?i)<br\s*/?>`)
	inlineTags    = regexp.MustCompile(`(?i)</?(p|code|em|strong|b|i|tt|pre)\s*>`)
)

// Indent returns the indentation prefix for a nesting level
func Indent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(IndentUnit, level)
}

// PlainLines converts documentation text to trimmed, non-blank plain lines.
// Inline markup from a fixed tag set is removed, <br> breaks a line, and
// HTML entities are decoded.
func PlainLines(text string) []string {
	text = lineBreakTags.ReplaceAllString(text, "\n")
	text = inlineTags.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(html.UnescapeString(line))
		if line == "" {
			continue
		}
		// A literal "*/" would terminate the comment early
		lines = append(lines, strings.ReplaceAll(line, "*/", "*\\/"))
	}
	return lines
}

// Format renders doc as a comment block at the given nesting level. It
// returns "" when there is nothing to document.
func Format(doc *api.Doc, level int) string {
	if doc == nil {
		return ""
	}
	summary := PlainLines(string(doc.Summary))
	description := PlainLines(string(doc.Description))
	returns := PlainLines(string(doc.ReturnDescription))
	examples := PlainLines(string(doc.Examples))

	if len(summary) == 0 && len(description) == 0 && len(doc.Parameters) == 0 &&
		len(returns) == 0 && len(examples) == 0 {
		return ""
	}

	ind := Indent(level)
	prefix := ind + " * "

	var sb strings.Builder
	sb.WriteString(ind + "/**\n")
	writeLines(&sb, prefix, summary)
	writeLines(&sb, prefix, description)
	sb.WriteString(ind + " *\n")

	for _, p := range doc.Parameters {
		sb.WriteString(prefix + "@param " + typeref.ParameterName(p.Name))
		if p.Optional() {
			sb.WriteString(" Optional.")
		}
		lines := PlainLines(string(p.Summary))
		if len(lines) > 0 {
			sb.WriteString(" " + strings.Join(lines, "\n"+prefix+paramContinuation))
		}
		sb.WriteString("\n")
	}

	if len(returns) > 0 {
		sb.WriteString(prefix + "@returns " + strings.Join(returns, "\n"+prefix+paramContinuation) + "\n")
	}

	if len(examples) > 0 {
		sb.WriteString(prefix + "@example\n")
		writeLines(&sb, prefix, examples)
	}

	sb.WriteString(ind + " */\n")
	return sb.String()
}

func writeLines(sb *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		sb.WriteString(prefix + l + "\n")
	}
}
