// Package fmtspec splits the format string argument of print! and println!
// into literal text and `{}` argument placeholders.
package fmtspec

import (
	"fmt"
	"strings"

	"github.com/adhocteam/sculpt/ast"
	"github.com/adhocteam/sculpt/source"
)

type Kind int

const (
	// Lit is a run of literal text.
	Lit Kind = iota
	// Arg is a `{}` placeholder, possibly with whitespace between the
	// braces.
	Arg
)

func (k Kind) String() string {
	if k == Arg {
		return "Arg"
	}
	return "Lit"
}

// Spec is one piece of a format string. Span is in byte offsets of the
// program source. Val is the text of a Lit and empty for an Arg.
type Spec struct {
	Kind Kind
	Span source.Span
	Val  string
}

// Error is an invalid format string. Offset is the byte offset in the
// program source of the character that made it invalid.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// Extract splits the body of lit into format specs in order.
func Extract(lit ast.StrLit) ([]Spec, error) {
	s := lit.Val
	// offset of the body, just past the opening quote
	base := lit.Span.Start + 1

	var specs []Spec
	for i := 0; i < len(s); {
		switch s[i] {
		case '}':
			return nil, &Error{Offset: base + i, Msg: "unmatched '}' in format string"}
		case '{':
			n := strings.IndexAny(s[i+1:], "{}")
			if n < 0 || s[i+1+n] == '{' {
				return nil, &Error{Offset: base + i, Msg: "unclosed '{' in format string"}
			}
			end := i + 1 + n
			if j := strings.IndexFunc(s[i+1:end], isNotSpace); j >= 0 {
				return nil, &Error{Offset: base + i + 1 + j, Msg: "invalid character in format argument"}
			}
			specs = append(specs, Spec{
				Kind: Arg,
				Span: source.Span{Start: base + i, End: base + end + 1},
			})
			i = end + 1
		default:
			n := strings.IndexAny(s[i:], "{}")
			if n < 0 {
				n = len(s) - i
			}
			specs = append(specs, Spec{
				Kind: Lit,
				Span: source.Span{Start: base + i, End: base + i + n},
				Val:  s[i : i+n],
			})
			i += n
		}
	}
	return specs, nil
}

// Args returns the spans of the argument placeholders in specs.
func Args(specs []Spec) []source.Span {
	var spans []source.Span
	for _, spec := range specs {
		if spec.Kind == Arg {
			spans = append(spans, spec.Span)
		}
	}
	return spans
}

func isNotSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return false
	}
	return true
}
