package parser

import (
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/adhocteam/sculpt/source"
)

// lexerDef tokenizes sculpt source. Rules are tried in order at each
// position, so a run of lowercase letters followed by `!` is a macro name
// rather than an identifier followed by a stray `!`. There is no escape
// syntax in string literals and no comment syntax.
var lexerDef = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "MacroName", Pattern: `[a-z]+!`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Punct", Pattern: `[(){},;]`},
})

type tokenKind int

const (
	tokInvalid tokenKind = iota
	tokEOF
	tokMacroName
	tokIdent
	tokString
	tokPunct
)

var tokenKinds = func() map[lexer.TokenType]tokenKind {
	symbols := lexerDef.Symbols()
	return map[lexer.TokenType]tokenKind{
		lexer.EOF:            tokEOF,
		symbols["MacroName"]: tokMacroName,
		symbols["Ident"]:     tokIdent,
		symbols["String"]:    tokString,
		symbols["Punct"]:     tokPunct,
	}
}()

var whitespaceType = lexerDef.Symbols()["Whitespace"]

type token struct {
	kind tokenKind
	text string
	span source.Span
}

// scanner produces significant tokens one at a time, skipping whitespace.
// Tokens are read lazily, so input past the first grammar mismatch is never
// lexed.
type scanner struct {
	src string
	lex lexer.Lexer
	// byte offset just past the last lexeme read, including whitespace
	offset int
	failed bool
}

func newScanner(src string) *scanner {
	s := &scanner{src: src}
	lex, err := lexerDef.LexString("", src)
	if err != nil {
		s.failed = true
	}
	s.lex = lex
	return s
}

// next returns the next significant token. When no lexer rule matches the
// input, it returns a tokInvalid token covering the first unmatched
// character and keeps returning it on later calls.
func (s *scanner) next() token {
	for !s.failed {
		t, err := s.lex.Next()
		if err != nil {
			s.failed = true
			break
		}
		if t.Type == whitespaceType {
			s.offset = t.Pos.Offset + len(t.Value)
			continue
		}
		kind, ok := tokenKinds[t.Type]
		if !ok {
			s.failed = true
			break
		}
		if kind == tokEOF {
			return token{kind: tokEOF, span: source.Span{Start: len(s.src), End: len(s.src)}}
		}
		start := t.Pos.Offset
		s.offset = start + len(t.Value)
		return token{
			kind: kind,
			text: s.src[start:s.offset],
			span: source.Span{Start: start, End: s.offset},
		}
	}
	return s.invalid()
}

func (s *scanner) invalid() token {
	_, size := utf8.DecodeRuneInString(s.src[s.offset:])
	end := s.offset + size
	return token{
		kind: tokInvalid,
		text: s.src[s.offset:end],
		span: source.Span{Start: s.offset, End: end},
	}
}
