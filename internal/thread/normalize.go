package thread

import "strings"

// NormalizeBody rewrites free-form Body content into canonical shape: any
// bare "## " heading that is not one of the reserved section headings is
// demoted one level to "### ", because level-2 is reserved for canonical
// sections. All other lines pass through unchanged.
func NormalizeBody(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, "## ") {
			continue
		}
		if _, ok := CanonicalHeading(line); ok {
			continue
		}
		lines[i] = "#" + line
	}
	return strings.Join(lines, "\n")
}

// NormalizeList rewrites list-style section content (Notes/Todo/Log): blank
// lines between consecutive list items are dropped, runs of blank lines
// collapse to at most one, and leading/trailing whitespace is trimmed.
func NormalizeList(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}

	var out []string
	pendingBlank := false
	for _, line := range strings.Split(trimmed, "\n") {
		if strings.TrimSpace(line) == "" {
			pendingBlank = true
			continue
		}
		if pendingBlank && len(out) > 0 {
			// Keep a single separator unless it only splits two list items
			if !(isListLine(out[len(out)-1]) && isListLine(line)) {
				out = append(out, "")
			}
		}
		pendingBlank = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// isListLine reports whether a line is a markdown list item.
func isListLine(line string) bool {
	return strings.HasPrefix(line, "- ")
}
