package convert

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"
)

var (
	boldPattern     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	emphasisPattern = regexp.MustCompile(`__(.*?)__`)
)

// TransformInline rewrites the inline markup of a single line.
// Passes run in a fixed order: hash, c-removal, bold, emphasis.
func TransformInline(line string) string {
	line = replaceFirstSpan(line, "[[", "]]", HashText)
	line = replaceFirstSpan(line, "((", "))", RemoveC)
	line = ConvertBold(line)
	line = ConvertEmphasis(line)
	return line
}

// HashText returns the lowercase hex MD5 digest of text.
func HashText(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

// RemoveC drops every 'c' and 'C' from text.
func RemoveC(text string) string {
	return strings.NewReplacer("c", "", "C", "").Replace(text)
}

// ConvertBold converts **text** to <b>text</b>
func ConvertBold(line string) string {
	return boldPattern.ReplaceAllString(line, "<b>$1</b>")
}

// ConvertEmphasis converts __text__ to <em>text</em>
func ConvertEmphasis(line string) string {
	return emphasisPattern.ReplaceAllString(line, "<em>$1</em>")
}

// replaceFirstSpan replaces the first left...right span, delimiters
// included, with fn applied to the enclosed text. The right delimiter is
// searched for only after the left one.
func replaceFirstSpan(line, left, right string, fn func(string) string) string {
	start := strings.Index(line, left)
	if start == -1 {
		return line
	}
	inner := start + len(left)
	end := strings.Index(line[inner:], right)
	if end == -1 {
		return line
	}
	end += inner

	return line[:start] + fn(line[inner:end]) + line[end+len(right):]
}
