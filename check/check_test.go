package check

import (
	"testing"

	"github.com/adhocteam/sculpt/parser"
	"github.com/adhocteam/sculpt/source"
	"github.com/google/go-cmp/cmp"
)

func span(start, end int) source.Span {
	return source.Span{Start: start, End: end}
}

func TestCheckValid(t *testing.T) {
	srcs := []string{
		"fn main() {}",
		`fn main() { print!("Hello"); print!(" "); print!("world!"); println!(); }`,
		`fn main() { println!("Hello {} and {}!", "Alice", "Bob"); }`,
		`fn main() { print!("{ }{}", "a", "b",); }`,
	}
	for _, src := range srcs {
		t.Run("", func(t *testing.T) {
			m, err := parser.Parse(src)
			if err != nil {
				t.Fatal(err)
			}
			if diags := Check(m); len(diags) != 0 {
				t.Errorf("%q: unexpected diagnostics: %v", src, diags)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Diagnostic
	}{
		{
			"missing format string",
			"fn main() {\n    print!();\n}",
			[]Diagnostic{{
				Code:    MissingFmtStr,
				Message: "missing format string",
				Span:    span(16, 22),
				Labels:  []Label{{Span: span(16, 22), Message: "requires at least a format string argument"}},
			}},
		},
		{
			"invalid format string",
			`fn main() { println!("}"); }`,
			[]Diagnostic{{
				Code:    InvalidFmtStr,
				Message: "unmatched '}' in format string",
				Span:    span(22, 23),
				Labels:  []Label{{Span: span(22, 23), Message: "unexpected syntax"}},
			}},
		},
		{
			"extra arguments",
			`fn main() { print!(" {} ", "a", "b", "c"); }`,
			[]Diagnostic{{
				Code:    ExtraFmtArguments,
				Message: "multiple unused formatting arguments",
				Span:    span(19, 25),
				Labels: []Label{
					{Span: span(19, 25), Message: "multiple missing formatting specifiers"},
					{Span: span(32, 35), Message: "argument never used"},
					{Span: span(37, 40), Message: "argument never used"},
				},
			}},
		},
		{
			"one extra argument",
			`fn main() { println!("x", "y"); }`,
			[]Diagnostic{{
				Code:    ExtraFmtArguments,
				Message: "unused formatting argument",
				Span:    span(21, 24),
				Labels: []Label{
					{Span: span(21, 24), Message: "missing formatting specifier"},
					{Span: span(26, 29), Message: "argument never used"},
				},
			}},
		},
		{
			"not enough arguments",
			`fn main() { print!("{} {} {}", "a"); }`,
			[]Diagnostic{{
				Code:    NotEnoughFmtArguments,
				Message: "3 positional arguments in format string, but there is 1 argument",
				Span:    span(20, 22),
				Labels: []Label{
					{Span: span(20, 22)},
					{Span: span(23, 25)},
					{Span: span(26, 28)},
					{Span: span(31, 34)},
				},
			}},
		},
		{
			"unknown macro and source order",
			`fn main() { foo!(); print!(); }`,
			[]Diagnostic{
				{
					Code:    UnknownMacro,
					Message: "cannot find macro `foo!` in this scope",
					Span:    span(12, 16),
					Labels:  []Label{{Span: span(12, 16), Message: "not a known macro"}},
				},
				{
					Code:    MissingFmtStr,
					Message: "missing format string",
					Span:    span(20, 26),
					Labels:  []Label{{Span: span(20, 26), Message: "requires at least a format string argument"}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := parser.Parse(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, Check(m)); diff != "" {
				t.Errorf("(-want +got)\n%s", diff)
			}
		})
	}
}

func TestDiagnosticError(t *testing.T) {
	d := Diagnostic{Code: MissingFmtStr, Message: "missing format string"}
	var err error = d
	if got, want := err.Error(), "MissingFmtStr: missing format string"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}
