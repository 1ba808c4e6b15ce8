package ast

import (
	"encoding/json"
	"fmt"

	"github.com/adhocteam/sculpt/source"
)

// Node represents a portion of the sculpt syntax: the whole program, a
// macro invocation statement, or one of its tokens.
type Node interface {
	Pos() source.Span
}

// Main is a whole parsed program: the statements of the body of
// `fn main() { ... }` in source order.
type Main struct {
	Statements []*Macro
	Span       source.Span
}

func (n Main) Pos() source.Span {
	return n.Span
}

func (n Main) MarshalJSON() ([]byte, error) {
	type t Main
	return marshalNode("Main", t(n))
}

func (n *Main) UnmarshalJSON(data []byte) error {
	type t Main
	var raw t
	if err := unmarshalNode(data, "Main", &raw); err != nil {
		return err
	}
	*n = Main(raw)
	return nil
}

var _ Node = (*Main)(nil)

// Macro is one macro invocation statement, `name!(args...);`.
type Macro struct {
	Name Name
	Args []StrLit
	Span source.Span
}

func (n Macro) Pos() source.Span {
	return n.Span
}

func (n Macro) MarshalJSON() ([]byte, error) {
	type t Macro
	return marshalNode("Macro", t(n))
}

func (n *Macro) UnmarshalJSON(data []byte) error {
	type t Macro
	var raw t
	if err := unmarshalNode(data, "Macro", &raw); err != nil {
		return err
	}
	*n = Macro(raw)
	return nil
}

var _ Node = (*Macro)(nil)

// Name is a macro name token. Name includes the trailing `!`.
type Name struct {
	Span source.Span
	Name string
}

func (n Name) Pos() source.Span {
	return n.Span
}

func (n Name) MarshalJSON() ([]byte, error) {
	type t Name
	return marshalNode("Name", t(n))
}

func (n *Name) UnmarshalJSON(data []byte) error {
	type t Name
	var raw t
	if err := unmarshalNode(data, "Name", &raw); err != nil {
		return err
	}
	*n = Name(raw)
	return nil
}

var _ Node = (*Name)(nil)

// StrLit is a double-quoted string literal. Span covers the quotes, Val is
// the text between them exactly as written.
type StrLit struct {
	Span source.Span
	Val  string
}

func (n StrLit) Pos() source.Span {
	return n.Span
}

func (n StrLit) MarshalJSON() ([]byte, error) {
	type t StrLit
	return marshalNode("StrLit", t(n))
}

func (n *StrLit) UnmarshalJSON(data []byte) error {
	type t StrLit
	var raw t
	if err := unmarshalNode(data, "StrLit", &raw); err != nil {
		return err
	}
	*n = StrLit(raw)
	return nil
}

var _ Node = (*StrLit)(nil)

// NodeWrapper is the JSON form of every node: the node type name alongside
// its fields.
type NodeWrapper struct {
	Type string
	Node json.RawMessage
}

func marshalNode(typ string, node any) ([]byte, error) {
	return json.Marshal(struct {
		Type string
		Node any
	}{
		Type: typ,
		Node: node,
	})
}

func unmarshalNode(data []byte, typ string, node any) error {
	var wrapped NodeWrapper
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.Type != typ {
		return fmt.Errorf("expected %s node, got %q", typ, wrapped.Type)
	}
	return json.Unmarshal(wrapped.Node, node)
}

type visitor interface {
	visit(Node) visitor
}

type Inspector func(Node) bool

func (f Inspector) visit(n Node) visitor {
	if f(n) {
		return f
	}
	return nil
}

// Inspect traverses the tree rooted at n in depth-first source order,
// calling f for each node. If f returns false, the children of that node are
// skipped. After the children of a node are visited, f is called with nil.
func Inspect(n Node, f func(Node) bool) {
	walk(Inspector(f), n)
}

func walk(v visitor, n Node) {
	if v = v.visit(n); v == nil {
		return
	}

	switch n := n.(type) {
	case *Main:
		for _, stmt := range n.Statements {
			walk(v, stmt)
		}
	case *Macro:
		walk(v, &n.Name)
		for i := range n.Args {
			walk(v, &n.Args[i])
		}
	case *Name:
		// no children
	case *StrLit:
		// no children
	default:
		panic(fmt.Sprintf("unhandled type %T", n))
	}
	v.visit(nil)
}
