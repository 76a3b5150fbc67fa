// Package verify checks generated declaration files: an in-process syntax
// parse, an optional external type checker, and an up-to-date comparison
// against a checked-in output directory.
package verify

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/teranos/dojodts/errors"
)

// maxReportedErrors bounds the positions listed in a syntax failure
const maxReportedErrors = 10

// SyntaxError is the position of one error or missing node.
type SyntaxError struct {
	Line    int
	Column  int
	Missing bool
	Text    string
}

func (e SyntaxError) String() string {
	if e.Missing {
		return fmt.Sprintf("%d:%d: missing %s", e.Line, e.Column, e.Text)
	}
	return fmt.Sprintf("%d:%d: unexpected %q", e.Line, e.Column, e.Text)
}

// SyntaxErrors parses text with the TypeScript grammar and returns the
// positions of error nodes in document order.
func SyntaxErrors(ctx context.Context, text []byte) ([]SyntaxError, error) {
	// New parser per call: parsers are not safe for concurrent use
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, text)
	if err != nil {
		return nil, errors.Wrap(err, "tree-sitter parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, errors.New("tree-sitter returned nil root node")
	}
	if !root.HasError() {
		return nil, nil
	}

	var found []SyntaxError
	collectErrors(root, text, &found)
	if len(found) == 0 {
		// HasError without a located node; report the document start
		found = append(found, SyntaxError{Line: 1, Column: 1, Text: "syntax error"})
	}
	return found, nil
}

func collectErrors(n *sitter.Node, text []byte, found *[]SyntaxError) {
	if len(*found) >= maxReportedErrors || !n.HasError() && !n.IsMissing() {
		return
	}
	if n.IsError() || n.IsMissing() {
		p := n.StartPoint()
		e := SyntaxError{Line: int(p.Row) + 1, Column: int(p.Column) + 1, Missing: n.IsMissing()}
		if e.Missing {
			e.Text = n.Type()
		} else {
			e.Text = snippet(n.Content(text))
		}
		*found = append(*found, e)
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collectErrors(n.Child(i), text, found)
	}
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return s
}

// Syntax reports ErrCompileVerificationFailed when text does not parse as
// TypeScript. name labels the text in the error.
func Syntax(ctx context.Context, name string, text []byte) error {
	found, err := SyntaxErrors(ctx, text)
	if err != nil {
		return errors.Wrapf(err, "failed to parse %s", name)
	}
	if len(found) == 0 {
		return nil
	}

	lines := make([]string, len(found))
	for i, e := range found {
		lines[i] = name + ":" + e.String()
	}
	err = errors.Newk(errors.ErrCompileVerificationFailed,
		"%s: %d syntax errors, first at %s", name, len(found), found[0].String())
	return errors.WithDetail(err, strings.Join(lines, "\n"))
}
