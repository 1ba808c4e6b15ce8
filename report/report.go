// Package report renders parse and check errors as human-readable
// diagnostics with excerpts of the offending source lines.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/adhocteam/sculpt/check"
	"github.com/adhocteam/sculpt/fmtspec"
	"github.com/adhocteam/sculpt/parser"
	"github.com/adhocteam/sculpt/source"
)

// Options configures Write.
type Options struct {
	// Color wraps the header and markers in ANSI escape sequences.
	Color bool
}

const (
	colorError   = "31"
	colorPrimary = "33"
	colorOther   = "34"
)

type diagnostic struct {
	code    string
	message string
	span    source.Span
	labels  []check.Label
	located bool
}

// Write renders err, located in file, to w. It understands
// *parser.SyntaxError, check.Diagnostic and *fmtspec.Error, also when
// wrapped; other errors are written without a source excerpt.
func Write(w io.Writer, file *source.File, err error, opts Options) error {
	d := toDiagnostic(err)
	r := &renderer{file: file, color: opts.Color}
	r.render(d)
	_, werr := w.Write(r.buf.Bytes())
	return werr
}

// WriteAll renders each error in turn.
func WriteAll(w io.Writer, file *source.File, errs []error, opts Options) error {
	for _, err := range errs {
		if err := Write(w, file, err, opts); err != nil {
			return err
		}
	}
	return nil
}

func toDiagnostic(err error) diagnostic {
	var (
		serr *parser.SyntaxError
		diag check.Diagnostic
		ferr *fmtspec.Error
	)
	switch {
	case errors.As(err, &serr):
		d := diagnostic{
			code:    serr.Kind.String(),
			message: "encountered unexpected syntax",
			span:    serr.Span,
			located: true,
		}
		switch serr.Kind {
		case parser.UnexpectedEOF:
			d.message = "unexpected end of file"
		case parser.UnexpectedToken:
			d.message += " " + strconv.Quote(serr.Found)
		}
		label := "unexpected syntax"
		if len(serr.Expected) > 0 {
			label = "expected one of: " + strings.Join(serr.Expected, ", ")
		}
		d.labels = []check.Label{{Span: serr.Span, Message: label}}
		return d
	case errors.As(err, &diag):
		return diagnostic{
			code:    string(diag.Code),
			message: diag.Message,
			span:    diag.Span,
			labels:  diag.Labels,
			located: true,
		}
	case errors.As(err, &ferr):
		span := source.Span{Start: ferr.Offset, End: ferr.Offset + 1}
		return diagnostic{
			code:    string(check.InvalidFmtStr),
			message: ferr.Msg,
			span:    span,
			labels:  []check.Label{{Span: span, Message: "unexpected syntax"}},
			located: true,
		}
	}
	return diagnostic{code: "Error", message: err.Error()}
}

type renderer struct {
	buf   bytes.Buffer
	file  *source.File
	color bool
}

func (r *renderer) paint(code, s string) string {
	if !r.color {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

func (r *renderer) render(d diagnostic) {
	header := "[" + d.code + "] Error:"
	if d.message != "" {
		fmt.Fprintf(&r.buf, "%s %s\n", r.paint(colorError, header), d.message)
	} else {
		fmt.Fprintf(&r.buf, "%s\n", r.paint(colorError, header))
	}
	if !d.located || r.file == nil {
		return
	}

	// group labels by the line they start on
	byLine := make(map[int][]check.Label)
	var lines []int
	for _, l := range d.labels {
		line, _ := r.file.LineCol(l.Span.Start)
		if _, ok := byLine[line]; !ok {
			lines = append(lines, line)
		}
		byLine[line] = append(byLine[line], l)
	}
	if len(lines) == 0 {
		line, _ := r.file.LineCol(d.span.Start)
		lines = append(lines, line)
	}
	sort.Ints(lines)

	width := len(strconv.Itoa(lines[len(lines)-1]))
	pad := strings.Repeat(" ", width+1)

	name := r.file.Name()
	if name == "" {
		name = "<input>"
	}
	line, col := r.file.LineCol(d.span.Start)
	fmt.Fprintf(&r.buf, "%s--> %s:%d:%d\n", pad, name, line, col)
	fmt.Fprintf(&r.buf, "%s |\n", pad)

	for _, n := range lines {
		fmt.Fprintf(&r.buf, " %*d | %s\n", width, n, r.file.Line(n))
		labels := byLine[n]
		sort.SliceStable(labels, func(i, j int) bool {
			return labels[i].Span.Start < labels[j].Span.Start
		})
		for _, l := range labels {
			r.renderMarker(pad, n, l, l.Span == d.span)
		}
	}
}

// renderMarker underlines the part of line n covered by the label. Spans
// running past the end of the line are cut at the line end; empty spans get
// a single marker.
func (r *renderer) renderMarker(pad string, n int, l check.Label, primary bool) {
	_, col := r.file.LineCol(l.Span.Start)
	end := l.Span.End
	if lineEnd := r.file.LineEnd(n); end > lineEnd {
		end = lineEnd
	}
	width := 1
	if end > l.Span.Start {
		width = utf8.RuneCountInString(l.Span.Text(r.file.Source()[:end]))
	}

	color := colorOther
	if primary {
		color = colorPrimary
	}
	marker := strings.Repeat(" ", col-1) + r.paint(color, strings.Repeat("^", width))
	if l.Message != "" {
		marker += " " + l.Message
	}
	fmt.Fprintf(&r.buf, "%s | %s\n", pad, marker)
}
