// Package convert turns the restricted markdown dialect into HTML.
//
// Conversion is a single pass: every line is trimmed, rewritten by
// TransformInline and then fed to a Machine, which tracks the open block
// and emits HTML fragments.
package convert

import "strings"

// Lines converts markdown lines into HTML fragments, one per output line.
func Lines(lines []string) []string {
	var m Machine
	for _, line := range lines {
		m.Feed(TransformInline(strings.TrimSpace(line)))
	}
	return m.Close()
}

// MarkdownToHTML converts markdown content to HTML. Fragments are joined
// by newlines with no trailing newline.
func MarkdownToHTML(mdContent string) string {
	return strings.Join(Lines(SplitLines(mdContent)), "\n")
}

// SplitLines splits content on '\n'. A trailing newline does not produce
// an extra empty line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}
