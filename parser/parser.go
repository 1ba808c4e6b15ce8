package parser

import (
	"sort"

	"github.com/adhocteam/sculpt/ast"
	"github.com/adhocteam/sculpt/source"
)

// Parse parses a complete sculpt program. On failure it returns a nil tree
// and a *SyntaxError; the first mismatch aborts the parse.
func Parse(src string) (tree *ast.Main, err error) {
	p := newParser(src)
	defer func() {
		if e := recover(); e != nil {
			if se, ok := e.(*SyntaxError); ok {
				tree = nil
				err = se
			} else {
				panic(e)
			}
		}
	}()
	tree = p.parseMain()
	return
}

// parser is a recursive-descent parser with one method per grammar
// production and a single token of lookahead:
//
//	Main      := "fn" "main" "(" ")" "{" Statement* "}"
//	Statement := MacroName "(" ArgList ")" ";"
//	ArgList   := (StrLit ",")* StrLit?
type parser struct {
	src     string
	scanner *scanner
	tok     token

	// descriptions of the tokens tested against the current lookahead,
	// reported as the expected set if the parse fails here
	expected map[string]bool
	// name of the production being parsed
	context string
}

func newParser(src string) *parser {
	p := &parser{
		src:      src,
		scanner:  newScanner(src),
		expected: make(map[string]bool),
	}
	p.advance()
	return p
}

// advance moves the lookahead to the next significant token.
func (p *parser) advance() {
	p.tok = p.scanner.next()
	clear(p.expected)
}

// enter records prod as the production being parsed, returning a function
// that restores the previous one.
func (p *parser) enter(prod string) func() {
	prev := p.context
	p.context = prod
	return func() { p.context = prev }
}

// at reports whether the lookahead is a token of kind k, and for
// punctuation and keywords, whether its text is text.
func (p *parser) at(k tokenKind, text string) bool {
	p.expected[describeExpected(k, text)] = true
	return p.tok.kind == k && (text == "" || p.tok.text == text)
}

// expect consumes and returns the lookahead if it matches, otherwise fails.
func (p *parser) expect(k tokenKind, text string) token {
	if !p.at(k, text) {
		p.fail()
	}
	t := p.tok
	p.advance()
	return t
}

// fail aborts the parse with a syntax error at the lookahead token. The
// parser uses panic mode error handling; Parse recovers the *SyntaxError.
func (p *parser) fail() {
	expected := make([]string, 0, len(p.expected))
	for e := range p.expected {
		expected = append(expected, e)
	}
	sort.Strings(expected)

	kind := UnexpectedToken
	switch p.tok.kind {
	case tokEOF:
		kind = UnexpectedEOF
	case tokInvalid:
		kind = InvalidToken
	}

	line, col := source.NewFile("", p.src).LineCol(p.tok.span.Start)
	panic(&SyntaxError{
		Kind:     kind,
		Offset:   p.tok.span.Start,
		Line:     line,
		Column:   col,
		Span:     p.tok.span,
		Found:    p.tok.text,
		Expected: expected,
		Context:  p.context,
	})
}

func (p *parser) parseMain() *ast.Main {
	defer p.enter("Main")()

	start := p.expect(tokIdent, "fn")
	p.expect(tokIdent, "main")
	p.expect(tokPunct, "(")
	p.expect(tokPunct, ")")
	p.expect(tokPunct, "{")
	statements := []*ast.Macro{}
	for p.at(tokMacroName, "") {
		statements = append(statements, p.parseStatement())
	}
	end := p.expect(tokPunct, "}")
	p.expect(tokEOF, "")

	return &ast.Main{
		Statements: statements,
		Span:       source.Span{Start: start.span.Start, End: end.span.End},
	}
}

func (p *parser) parseStatement() *ast.Macro {
	defer p.enter("Statement")()

	name := p.expect(tokMacroName, "")
	p.expect(tokPunct, "(")
	args := p.parseArgList()
	p.expect(tokPunct, ")")
	end := p.expect(tokPunct, ";")

	return &ast.Macro{
		Name: ast.Name{Span: name.span, Name: name.text},
		Args: args,
		Span: source.Span{Start: name.span.Start, End: end.span.End},
	}
}

// parseArgList parses a comma separated list of string literals with an
// optional trailing comma. A leading comma or two commas in a row leave a
// comma as the lookahead, which the caller rejects.
func (p *parser) parseArgList() []ast.StrLit {
	defer p.enter("ArgList")()

	args := []ast.StrLit{}
	for p.at(tokString, "") {
		lit := p.tok
		p.advance()
		args = append(args, ast.StrLit{
			Span: lit.span,
			Val:  lit.text[1 : len(lit.text)-1],
		})
		if !p.at(tokPunct, ",") {
			break
		}
		p.advance()
	}
	return args
}

func describeExpected(k tokenKind, text string) string {
	if text != "" {
		return `"` + text + `"`
	}
	switch k {
	case tokMacroName:
		return "macro name"
	case tokString:
		return "string literal"
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	}
	return "token"
}
