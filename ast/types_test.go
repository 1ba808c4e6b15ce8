package ast

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/adhocteam/sculpt/source"
	"github.com/google/go-cmp/cmp"
)

// tree for `fn main() { print!("hi"); log!("a","b",); }`
func sampleTree() *Main {
	return &Main{
		Statements: []*Macro{
			{
				Name: Name{Span: source.Span{Start: 12, End: 18}, Name: "print!"},
				Args: []StrLit{{Span: source.Span{Start: 19, End: 23}, Val: "hi"}},
				Span: source.Span{Start: 12, End: 25},
			},
			{
				Name: Name{Span: source.Span{Start: 26, End: 30}, Name: "log!"},
				Args: []StrLit{
					{Span: source.Span{Start: 31, End: 34}, Val: "a"},
					{Span: source.Span{Start: 35, End: 38}, Val: "b"},
				},
				Span: source.Span{Start: 26, End: 41},
			},
		},
		Span: source.Span{Start: 0, End: 43},
	}
}

func TestMarshalJSON(t *testing.T) {
	b, err := json.Marshal(StrLit{Span: source.Span{Start: 1, End: 4}, Val: "a"})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"Type":"StrLit","Node":{"Span":{"Start":1,"End":4},"Val":"a"}}`
	if diff := cmp.Diff(want, string(b)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}

	want = `{"Type":"Name","Node":{"Span":{"Start":0,"End":2},"Name":"x!"}}`
	b, err = json.Marshal(&Name{Span: source.Span{End: 2}, Name: "x!"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, string(b)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	want := sampleTree()
	b, err := json.MarshalIndent(want, "", "    ")
	if err != nil {
		t.Fatal(err)
	}
	var got Main
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, &got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestUnmarshalJSONWrongType(t *testing.T) {
	var m Macro
	err := json.Unmarshal([]byte(`{"Type":"StrLit","Node":{}}`), &m)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "expected Macro node") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestInspect(t *testing.T) {
	var got []string
	Inspect(sampleTree(), func(n Node) bool {
		switch n := n.(type) {
		case *Main:
			got = append(got, "main")
		case *Macro:
			got = append(got, "macro")
		case *Name:
			got = append(got, n.Name)
		case *StrLit:
			got = append(got, n.Val)
		}
		return true
	})
	want := []string{"main", "macro", "print!", "hi", "macro", "log!", "a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	var names []string
	Inspect(sampleTree(), func(n Node) bool {
		if m, ok := n.(*Macro); ok {
			names = append(names, m.Name.Name)
			return false
		}
		return true
	})
	if diff := cmp.Diff([]string{"print!", "log!"}, names); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestPrettyPrint(t *testing.T) {
	var buf bytes.Buffer
	NewPrettyPrinter(&buf, false).PrettyPrint(sampleTree())
	want := `fn main()
  print!
    "hi"
  log!
    "a"
    "b"
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}

	buf.Reset()
	NewPrettyPrinter(&buf, true).PrettyPrint(&Main{Statements: []*Macro{}})
	if got := buf.String(); got != "\x1b[35mfn main()\x1b[0m\n" {
		t.Errorf("unexpected colored output %q", got)
	}
}
