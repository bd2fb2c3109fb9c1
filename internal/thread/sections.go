package thread

import "strings"

// Canonical section names, in their fixed order. Level-2 headings are
// reserved for these four sections; any other "## " heading inside a body is
// ordinary content.
const (
	SectionBody  = "Body"
	SectionNotes = "Notes"
	SectionTodo  = "Todo"
	SectionLog   = "Log"
)

// SectionOrder is the fixed ordering of canonical sections. It defines where
// one section's content legally ends: at the next canonical heading, or at
// end-of-file for the last section.
var SectionOrder = []string{SectionBody, SectionNotes, SectionTodo, SectionLog}

// CanonicalHeading returns the canonical section name when line is exactly a
// reserved "## Name" heading (trailing whitespace ignored).
func CanonicalHeading(line string) (string, bool) {
	trimmed := strings.TrimRight(line, " \t\r")
	for _, name := range SectionOrder {
		if trimmed == "## "+name {
			return name, true
		}
	}
	return "", false
}

// span holds byte offsets of one canonical section inside a body string.
type span struct {
	headingStart int // offset of the "## Name" line
	contentStart int // offset just after the heading line and its newline
	contentEnd   int // offset of the next canonical heading, or len(body)
}

// sectionSpan resolves the boundaries of a canonical section. Only the four
// reserved headings terminate a span; a body's own "## Sub Heading" stays
// inside the preceding section's content.
func sectionSpan(body, name string) (span, bool) {
	offset := 0
	found := false
	var sp span

	for offset <= len(body) {
		lineEnd := len(body)
		nextOffset := len(body) + 1
		if nl := strings.IndexByte(body[offset:], '\n'); nl != -1 {
			lineEnd = offset + nl
			nextOffset = lineEnd + 1
		}
		line := body[offset:lineEnd]

		if heading, ok := CanonicalHeading(line); ok {
			if found {
				sp.contentEnd = offset
				return sp, true
			}
			if heading == name {
				found = true
				sp.headingStart = offset
				sp.contentStart = nextOffset
				if sp.contentStart > len(body) {
					sp.contentStart = len(body)
				}
				sp.contentEnd = len(body)
			}
		}

		offset = nextOffset
	}

	if found {
		return sp, true
	}
	return span{}, false
}

// HasSection reports whether the body contains the canonical section.
func HasSection(body, name string) bool {
	_, ok := sectionSpan(body, name)
	return ok
}

// ExtractSection returns a section's content, trimmed of leading and trailing
// blank lines. Returns "" when the section does not exist.
func ExtractSection(body, name string) string {
	sp, ok := sectionSpan(body, name)
	if !ok {
		return ""
	}
	return strings.TrimSpace(body[sp.contentStart:sp.contentEnd])
}

// ReplaceSection substitutes a section's content, preserving everything
// outside the span byte-for-byte. The replacement is spliced by offset, so
// the new content needs no escaping of any kind.
func ReplaceSection(body, name, newContent string) string {
	sp, ok := sectionSpan(body, name)
	if !ok {
		return body
	}
	if newContent == "" {
		return body[:sp.contentStart] + "\n" + body[sp.contentEnd:]
	}
	return body[:sp.contentStart] + "\n" + newContent + "\n\n" + body[sp.contentEnd:]
}

// AppendToSection appends to a section's existing content.
func AppendToSection(body, name, addition string) string {
	existing := ExtractSection(body, name)
	newContent := existing
	if newContent != "" {
		newContent += "\n"
	}
	newContent += addition
	return ReplaceSection(body, name, newContent)
}

// EnsureSection creates a section if it doesn't exist, placing it immediately
// before the named following section, or at end-of-file when that section is
// missing too.
func EnsureSection(body, name, before string) string {
	if HasSection(body, name) {
		return body
	}

	if sp, ok := sectionSpan(body, before); ok {
		return body[:sp.headingStart] + "## " + name + "\n\n" + body[sp.headingStart:]
	}

	return body + "\n## " + name + "\n\n"
}

// ensureInOrder returns the body with the named section present, inserted
// before the first later canonical section that exists.
func (t *Thread) ensureInOrder(name string) string {
	body := t.Body()
	if HasSection(body, name) {
		return body
	}

	after := false
	for _, s := range SectionOrder {
		if s == name {
			after = true
			continue
		}
		if after && HasSection(body, s) {
			return EnsureSection(body, name, s)
		}
	}
	return EnsureSection(body, name, "")
}

// SetSection replaces a canonical section's content, creating the section in
// canonical position when it is missing.
func (t *Thread) SetSection(name, content string) {
	t.setBody(ReplaceSection(t.ensureInOrder(name), name, content))
}

// AppendSection appends content to a canonical section, creating it when
// missing.
func (t *Thread) AppendSection(name, content string) {
	t.setBody(AppendToSection(t.ensureInOrder(name), name, content))
}

// insertLineAtTop places a single item line at the top of a section's
// content, directly below the heading and its blank line.
func insertLineAtTop(body, name, line string) string {
	sp, ok := sectionSpan(body, name)
	if !ok {
		return body
	}
	return body[:sp.contentStart] + "\n" + line + "\n" + body[sp.contentStart:]
}
