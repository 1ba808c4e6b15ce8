package ast

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	indentSize = 2
	maxLineLen = 80
)

type prettyPrinter struct {
	w     io.Writer
	depth int
	color bool
}

// NewPrettyPrinter returns a printer writing an indented outline of a
// syntax tree to w. Colored output uses ANSI escape sequences.
func NewPrettyPrinter(w io.Writer, color bool) *prettyPrinter {
	return &prettyPrinter{w: w, color: color}
}

func (p *prettyPrinter) print(format string, a ...interface{}) {
	fmt.Fprintf(p.w, format, a...)
}

func (p *prettyPrinter) println(format string, a ...interface{}) {
	p.print(strings.Repeat(" ", p.depth*indentSize))
	p.print(format+"\n", a...)
}

func (p *prettyPrinter) paint(code, s string) string {
	if !p.color {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

func (p *prettyPrinter) indent() {
	p.depth++
}

func (p *prettyPrinter) dedent() {
	p.depth--
	if p.depth < 0 {
		p.depth = 0
	}
}

func (p *prettyPrinter) PrettyPrint(m *Main) {
	p.printNode(m)
}

func (p *prettyPrinter) printNode(n Node) {
	switch node := n.(type) {
	case *Main:
		p.println("%s", p.paint("35", "fn main()"))
		p.indent()
		for _, stmt := range node.Statements {
			p.printNode(stmt)
		}
		p.dedent()
	case *Macro:
		p.printNode(&node.Name)
		p.indent()
		for i := range node.Args {
			p.printNode(&node.Args[i])
		}
		p.dedent()
	case *Name:
		p.println("%s", p.paint("36", node.Name))
	case *StrLit:
		p.printStrLit(node)
	}
}

func (p *prettyPrinter) printStrLit(n *StrLit) {
	val := n.Val
	if len(val) > maxLineLen {
		val = val[:maxLineLen] + "..."
	}
	p.println("%s", p.paint("32", fmt.Sprintf("%q", val)))
}

func PrettyPrintTree(m *Main) {
	NewPrettyPrinter(os.Stdout, true).PrettyPrint(m)
}
