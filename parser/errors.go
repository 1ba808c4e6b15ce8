package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adhocteam/sculpt/source"
)

// ErrSourceTooLarge is returned when an input exceeds Options.MaxSourceSize.
var ErrSourceTooLarge = errors.New("source too large")

// ErrorKind classifies a syntax error by what was found at the error
// position.
type ErrorKind int

const (
	// UnexpectedToken means a well-formed token appeared where the grammar
	// does not allow it.
	UnexpectedToken ErrorKind = iota
	// UnexpectedEOF means the input ended before the program was complete.
	UnexpectedEOF
	// InvalidToken means the input at the error position is not any token,
	// like an unterminated string literal.
	InvalidToken
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnrecognizedToken"
	case UnexpectedEOF:
		return "UnrecognizedEOF"
	case InvalidToken:
		return "InvalidToken"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// SyntaxError represents a syntax error in a sculpt program.
type SyntaxError struct {
	Kind ErrorKind
	// Offset is the byte offset where matching failed; Line and Column are
	// its 1-based position
	Offset int
	Line   int
	Column int
	// Span covers the offending token, or its first character if no token
	// could be read there
	Span source.Span
	// Found is the offending text, empty at end of input
	Found string
	// Expected holds descriptions of the tokens that would have continued
	// the parse, sorted
	Expected []string
	// Context is the grammar production being parsed
	Context string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d: unexpected %s", e.Line, e.Column, e.describeFound())
	if e.Context != "" {
		fmt.Fprintf(&b, " in %s", e.Context)
	}
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, ", expected %s", joinOr(e.Expected))
	}
	return b.String()
}

func (e *SyntaxError) describeFound() string {
	switch e.Kind {
	case UnexpectedEOF:
		return "end of input"
	case InvalidToken:
		if e.Found == `"` {
			return "unterminated string literal"
		}
		return fmt.Sprintf("character %q", e.Found)
	}
	return fmt.Sprintf("%q", e.Found)
}

// joinOr joins items as "a, b or c".
func joinOr(items []string) string {
	if len(items) == 1 {
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}
