package source

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Span is a half-open range [Start, End) of byte offsets into a source
// text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Text returns the slice of src covered by the span. Offsets outside of src
// are clamped.
func (s Span) Text(src string) string {
	start, end := clamp(s.Start, len(src)), clamp(s.End, len(src))
	if end < start {
		return ""
	}
	return src[start:end]
}

func clamp(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

// File is a named source text with an index of line starts, used to turn
// byte offsets into 1-based line and column numbers for diagnostics.
type File struct {
	name       string
	src        string
	lineStarts []int
}

func NewFile(name, src string) *File {
	f := &File{name: name, src: src}
	f.lineStarts = make([]int, 1, strings.Count(src, "\n")+1)
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

func (f *File) Name() string {
	return f.name
}

func (f *File) Source() string {
	return f.src
}

// LineCount returns the number of lines in the file. A trailing newline
// starts a final, empty line.
func (f *File) LineCount() int {
	return len(f.lineStarts)
}

// LineCol returns the 1-based line and column of the byte offset. Columns
// count runes, not bytes. Offsets outside of the file are clamped to its
// start or end.
func (f *File) LineCol(offset int) (line, col int) {
	offset = clamp(offset, len(f.src))
	idx := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > offset
	}) - 1
	return idx + 1, utf8.RuneCountInString(f.src[f.lineStarts[idx]:offset]) + 1
}

// Line returns the text of the 1-based line n without its line terminator.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lineStarts) {
		return ""
	}
	start, end := f.lineSpan(n)
	return strings.TrimSuffix(f.src[start:end], "\r")
}

// lineSpan returns the byte range of line n, excluding the newline.
func (f *File) lineSpan(n int) (start, end int) {
	start = f.lineStarts[n-1]
	end = len(f.src)
	if n < len(f.lineStarts) {
		end = f.lineStarts[n] - 1
	}
	return start, end
}

// LineEnd returns the byte offset of the end of the 1-based line n,
// excluding the newline.
func (f *File) LineEnd(n int) int {
	if n < 1 || n > len(f.lineStarts) {
		return len(f.src)
	}
	_, end := f.lineSpan(n)
	return end
}
