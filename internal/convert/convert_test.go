package convert

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarkdownToHTML(t *testing.T) {
	input := "# Hi\n\nThis is **bold** and [[x]]\n- item1\n- item2"

	want := strings.Join([]string{
		"<h1>Hi</h1>",
		"<p>This is <b>bold</b> and 9dd4e461268c8034f5c8564e155c67a6",
		"</p>",
		"<ul>",
		"<li>item1</li>",
		"<li>item2</li>",
		"</ul>",
	}, "\n")

	got := MarkdownToHTML(input)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MarkdownToHTML mismatch (-want +got):\n%s", diff)
	}

	if opened, closed := strings.Count(got, "<p>"), strings.Count(got, "</p>"); opened != closed {
		t.Errorf("unbalanced paragraphs: %d opened, %d closed", opened, closed)
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "whitespace is trimmed before classification",
			input: []string{"   # Title   ", "  - item  ", "\t"},
			want:  []string{"<h1>Title</h1>", "<ul>", "<li>item</li>", "</ul>"},
		},
		{
			name:  "bold at line start is not a list item",
			input: []string{"**bold** start"},
			want:  []string{"<p><b>bold</b> start", "</p>"},
		},
		{
			name:  "inline markup inside list items",
			input: []string{"* ((cool)) __x__"},
			want:  []string{"<ol>", "<li>ool <em>x</em></li>", "</ol>"},
		},
		{
			name:  "inline markup inside headings",
			input: []string{"## **Bold** heading"},
			want:  []string{"<h2><b>Bold</b> heading</h2>"},
		},
		{
			name:  "multi-line paragraph closed at end",
			input: []string{"one", "two", "three"},
			want:  []string{"<p>one<br/>two<br/>three", "</p>"},
		},
		{
			name:  "windows line endings",
			input: []string{"one\r", "two\r"},
			want:  []string{"<p>one<br/>two", "</p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lines (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\nb\n", []string{"a", "b"}},
		{"a\n\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, SplitLines(tt.input)); diff != "" {
			t.Errorf("SplitLines(%q) (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestMarkdownToHTMLEmpty(t *testing.T) {
	if got := MarkdownToHTML(""); got != "" {
		t.Errorf("MarkdownToHTML(\"\") = %q, want empty", got)
	}
}
