package convert

import (
	"fmt"
	"strings"
)

// BlockContext is the structural mode the machine is in. Exactly one
// context is active at a time.
type BlockContext int

const (
	// ContextNone means no block is open
	ContextNone BlockContext = iota
	// ContextParagraph means a <p> is open and buffering lines
	ContextParagraph
	// ContextUnorderedList means a <ul> is open
	ContextUnorderedList
	// ContextOrderedList means an <ol> is open
	ContextOrderedList
)

func (c BlockContext) String() string {
	switch c {
	case ContextNone:
		return "none"
	case ContextParagraph:
		return "paragraph"
	case ContextUnorderedList:
		return "unordered-list"
	case ContextOrderedList:
		return "ordered-list"
	default:
		return fmt.Sprintf("BlockContext(%d)", int(c))
	}
}

// Machine classifies transformed lines and emits HTML fragments.
// The zero value is ready to use.
type Machine struct {
	context   BlockContext
	out       []string
	paragraph []string
}

// Context returns the currently open block context.
func (m *Machine) Context() BlockContext {
	return m.context
}

// Feed consumes one already-transformed, trimmed line.
func (m *Machine) Feed(line string) {
	switch {
	case strings.HasPrefix(line, "#"):
		m.heading(line)
	case strings.HasPrefix(line, "-"):
		m.enter(ContextUnorderedList)
		m.emit("<li>" + strings.TrimSpace(line[1:]) + "</li>")
	case strings.HasPrefix(line, "*"):
		m.enter(ContextOrderedList)
		m.emit("<li>" + strings.TrimSpace(line[1:]) + "</li>")
	case line == "":
		m.flush()
	default:
		m.text(line)
	}
}

// Close flushes any open block and returns the committed fragments.
// The machine is reset afterwards.
func (m *Machine) Close() []string {
	m.flush()
	out := m.out
	m.out = nil
	return out
}

// heading closes an open paragraph but leaves lists alone.
func (m *Machine) heading(line string) {
	if m.context == ContextParagraph {
		m.flush()
	}
	level := HeadingLevel(line)
	text := strings.TrimSpace(strings.TrimLeft(line, "#"))
	m.emit(fmt.Sprintf("<h%d>%s</h%d>", level, text, level))
}

func (m *Machine) text(line string) {
	if m.context == ContextParagraph {
		m.paragraph = append(m.paragraph, line)
		return
	}
	m.flush()
	m.context = ContextParagraph
	m.paragraph = append(m.paragraph[:0], line)
}

// enter switches to a list context, closing whatever else is open.
func (m *Machine) enter(ctx BlockContext) {
	if m.context == ctx {
		return
	}
	m.flush()
	switch ctx {
	case ContextUnorderedList:
		m.emit("<ul>")
	case ContextOrderedList:
		m.emit("<ol>")
	}
	m.context = ctx
}

// flush closes the open block, if any, and resets to ContextNone.
func (m *Machine) flush() {
	switch m.context {
	case ContextParagraph:
		m.emit("<p>" + strings.Join(m.paragraph, "<br/>"))
		m.emit("</p>")
		m.paragraph = m.paragraph[:0]
	case ContextUnorderedList:
		m.emit("</ul>")
	case ContextOrderedList:
		m.emit("</ol>")
	}
	m.context = ContextNone
}

func (m *Machine) emit(fragment string) {
	m.out = append(m.out, fragment)
}

// HeadingLevel counts the leading '#' characters of line.
// No upper bound is applied.
func HeadingLevel(line string) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	return level
}
