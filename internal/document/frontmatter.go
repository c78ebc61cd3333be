package document

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Meta holds the document metadata read from front matter
type Meta struct {
	Title string   `yaml:"title"`
	Lang  string   `yaml:"lang"`
	CSS   []string `yaml:"css"`
}

// Document is a markdown body plus its metadata
type Document struct {
	Meta Meta
	// Name is the fallback title, usually the source file name
	Name string
	Body []string
}

// Parse splits lines into a Document. When frontMatter is false, or the
// lines carry no well-formed YAML block, the body is the input unchanged.
func Parse(lines []string, frontMatter bool) *Document {
	doc := &Document{Body: lines}
	if !frontMatter {
		return doc
	}

	meta, body, ok := extractFrontMatter(lines)
	if !ok {
		return doc
	}
	doc.Meta = meta
	doc.Body = body
	return doc
}

func extractFrontMatter(lines []string) (Meta, []string, bool) {
	var meta Meta

	// Check for front matter delimiters
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return meta, lines, false
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return meta, lines, false
	}

	yamlContent := strings.Join(lines[1:end], "\n")
	if err := yaml.Unmarshal([]byte(yamlContent), &meta); err != nil {
		return Meta{}, lines, false
	}

	body := lines[end+1:]
	for len(body) > 0 && strings.TrimSpace(body[0]) == "" {
		body = body[1:]
	}
	return meta, body, true
}
