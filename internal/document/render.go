package document

import (
	"html"
	"strings"

	"github.com/gerunddev/markdown2html/internal/convert"
)

// Render converts the document body. Standalone output is a complete
// HTML5 page around the converted fragments.
func Render(doc *Document, standalone bool) string {
	fragments := convert.Lines(doc.Body)
	body := strings.Join(fragments, "\n")
	if !standalone {
		return body
	}

	lang := doc.Meta.Lang
	if lang == "" {
		lang = "en"
	}

	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n")
	page.WriteString(`<html lang="` + html.EscapeString(lang) + `">` + "\n")
	page.WriteString("<head>\n")
	page.WriteString(`<meta charset="utf-8">` + "\n")
	page.WriteString("<title>" + html.EscapeString(Title(doc, fragments)) + "</title>\n")
	for _, href := range doc.Meta.CSS {
		page.WriteString(`<link rel="stylesheet" href="` + html.EscapeString(href) + `">` + "\n")
	}
	page.WriteString("</head>\n")
	page.WriteString("<body>\n")
	if body != "" {
		page.WriteString(body + "\n")
	}
	page.WriteString("</body>\n")
	page.WriteString("</html>\n")
	return page.String()
}

// Title picks the page title: front matter first, then the first heading,
// then the document name.
func Title(doc *Document, fragments []string) string {
	if doc.Meta.Title != "" {
		return doc.Meta.Title
	}
	for _, fragment := range fragments {
		if text, ok := headingText(fragment); ok {
			return text
		}
	}
	return doc.Name
}

// headingText extracts the inner text of a "<hN>text</hN>" fragment.
func headingText(fragment string) (string, bool) {
	if !strings.HasPrefix(fragment, "<h") {
		return "", false
	}
	open := strings.Index(fragment, ">")
	end := strings.LastIndex(fragment, "</h")
	if open == -1 || end < open {
		return "", false
	}
	level := fragment[2:open]
	if level == "" || strings.Trim(level, "0123456789") != "" {
		return "", false
	}
	return fragment[open+1 : end], true
}
