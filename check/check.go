// Package check validates the arguments of the print! and println! macros
// against their format strings. Nothing is evaluated.
package check

import (
	"errors"
	"fmt"

	"github.com/adhocteam/sculpt/ast"
	"github.com/adhocteam/sculpt/fmtspec"
	"github.com/adhocteam/sculpt/source"
)

type Code string

const (
	MissingFmtStr         Code = "MissingFmtStr"
	InvalidFmtStr         Code = "InvalidFmtStr"
	ExtraFmtArguments     Code = "ExtraFmtArguments"
	NotEnoughFmtArguments Code = "NotEnoughFmtArguments"
	UnknownMacro          Code = "UnknownMacro"
)

// Label attaches a message to a span of the source. Message may be empty.
type Label struct {
	Span    source.Span
	Message string
}

// Diagnostic is a problem found in one statement. Span is its primary
// location; Labels point at every part of the source involved.
type Diagnostic struct {
	Code    Code
	Message string
	Span    source.Span
	Labels  []Label
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// Check returns the diagnostics for every statement of m, in source order.
func Check(m *ast.Main) []Diagnostic {
	var diags []Diagnostic
	ast.Inspect(m, func(n ast.Node) bool {
		macro, ok := n.(*ast.Macro)
		if !ok {
			return true
		}
		if d, ok := checkMacro(macro); !ok {
			diags = append(diags, d)
		}
		return false
	})
	return diags
}

func checkMacro(m *ast.Macro) (Diagnostic, bool) {
	switch m.Name.Name {
	case "println!":
		if len(m.Args) == 0 {
			return Diagnostic{}, true
		}
		return checkFormat(m.Args)
	case "print!":
		if len(m.Args) == 0 {
			return Diagnostic{
				Code:    MissingFmtStr,
				Message: "missing format string",
				Span:    m.Name.Span,
				Labels: []Label{
					{Span: m.Name.Span, Message: "requires at least a format string argument"},
				},
			}, false
		}
		return checkFormat(m.Args)
	}
	return Diagnostic{
		Code:    UnknownMacro,
		Message: fmt.Sprintf("cannot find macro `%s` in this scope", m.Name.Name),
		Span:    m.Name.Span,
		Labels: []Label{
			{Span: m.Name.Span, Message: "not a known macro"},
		},
	}, false
}

// checkFormat matches the placeholders of the format string args[0] against
// the remaining arguments.
func checkFormat(args []ast.StrLit) (Diagnostic, bool) {
	fmtStr, rest := args[0], args[1:]

	specs, err := fmtspec.Extract(fmtStr)
	if err != nil {
		var ferr *fmtspec.Error
		if !errors.As(err, &ferr) {
			panic(err)
		}
		span := source.Span{Start: ferr.Offset, End: ferr.Offset + 1}
		return Diagnostic{
			Code:    InvalidFmtStr,
			Message: ferr.Msg,
			Span:    span,
			Labels:  []Label{{Span: span, Message: "unexpected syntax"}},
		}, false
	}

	placeholders := fmtspec.Args(specs)
	switch {
	case len(rest) > len(placeholders):
		unused := rest[len(placeholders):]
		d := Diagnostic{
			Code:    ExtraFmtArguments,
			Message: "multiple unused formatting arguments",
			Span:    fmtStr.Span,
		}
		if len(unused) == 1 {
			d.Message = "unused formatting argument"
		}
		specLabel := "multiple missing formatting specifiers"
		if len(unused) == 1 {
			specLabel = "missing formatting specifier"
		}
		d.Labels = append(d.Labels, Label{Span: fmtStr.Span, Message: specLabel})
		for _, a := range unused {
			d.Labels = append(d.Labels, Label{Span: a.Span, Message: "argument never used"})
		}
		return d, false
	case len(rest) < len(placeholders):
		d := Diagnostic{
			Code: NotEnoughFmtArguments,
			Message: fmt.Sprintf("%d positional %s in format string, but there %s %d %s",
				len(placeholders), plural(len(placeholders), "argument", "arguments"),
				plural(len(rest), "is", "are"),
				len(rest), plural(len(rest), "argument", "arguments")),
			Span: placeholders[0],
		}
		for _, p := range placeholders {
			d.Labels = append(d.Labels, Label{Span: p})
		}
		for _, a := range rest {
			d.Labels = append(d.Labels, Label{Span: a.Span})
		}
		return d, false
	}
	return Diagnostic{}, true
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
