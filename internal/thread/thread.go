// Package thread implements the thread document model: a markdown file with
// a YAML frontmatter header, four canonical body sections, and hash-addressed
// structured items that live either as section lines (legacy) or as
// frontmatter fields (modern).
package thread

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/strandhq/strand/internal/errors"
)

// ClosedStatuses are statuses of threads that no longer need attention.
var ClosedStatuses = []string{"resolved", "superseded", "deferred", "rejected"}

// OpenStatuses are statuses of threads that need attention.
var OpenStatuses = []string{"idea", "planning", "active", "blocked", "paused"}

// idPrefixRe matches ID-prefixed filenames like "abc123-slug-name.md".
var idPrefixRe = regexp.MustCompile(`^([0-9a-f]{6})-`)

// Frontmatter is the structured header of a thread file. In the modern
// representation it also owns the item collections; in the legacy
// representation those collections are empty and the items live as lines
// inside the canonical sections.
type Frontmatter struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Desc   string `yaml:"desc"`
	Status string `yaml:"status"`

	Notes     []NoteItem     `yaml:"notes,omitempty"`
	Todo      []TodoItem     `yaml:"todo,omitempty"`
	Log       []LogEntry     `yaml:"log,omitempty"`
	Deadlines []DeadlineItem `yaml:"deadlines,omitempty"`
	Events    []EventItem    `yaml:"events,omitempty"`
}

// Representation tells where a thread's items are stored. It is decided once
// at parse time and consulted by every item operation.
type Representation int

const (
	// Legacy: items are lines inside the canonical Notes/Todo/Log sections.
	Legacy Representation = iota
	// Modern: items are structured frontmatter fields.
	Modern
)

// Thread is a parsed thread file. Content always holds the full file text;
// BodyStart is the byte offset where the body begins. After any mutation the
// content is immediately re-rendered so the offset stays valid.
type Thread struct {
	Path        string
	Frontmatter Frontmatter
	Content     string
	BodyStart   int
	Repr        Representation
}

// Parse reads and parses a thread file.
func Parse(path string) (*Thread, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO(err)
	}

	t := &Thread{
		Path:    path,
		Content: string(raw),
	}

	if err := t.parseFrontmatter(); err != nil {
		return nil, err
	}

	// Filename prefix is the fallback identity source
	if t.Frontmatter.ID == "" {
		t.Frontmatter.ID = ExtractIDFromPath(path)
	}

	t.Repr = t.detectRepresentation()

	return t, nil
}

// parseFrontmatter splits Content into header and body and deserializes the
// header. BodyStart ends up immediately after the closing fence line and its
// trailing newline; everything from there on is the body, preserved verbatim.
func (t *Thread) parseFrontmatter() error {
	content := t.Content

	if !strings.HasPrefix(content, "---\n") {
		return errors.NewMissingDelimiter(t.Path)
	}

	end := strings.Index(content[4:], "\n---")
	if end == -1 {
		return errors.NewUnclosedHeader(t.Path)
	}

	yamlContent := content[4 : 4+end]

	// The closing fence runs to the end of its line
	fenceStart := 4 + end + 1
	if nl := strings.IndexByte(content[fenceStart:], '\n'); nl != -1 {
		t.BodyStart = fenceStart + nl + 1
	} else {
		t.BodyStart = len(content)
	}

	if err := yaml.Unmarshal([]byte(yamlContent), &t.Frontmatter); err != nil {
		return errors.NewHeaderParse(t.Path, err)
	}

	return nil
}

// detectRepresentation infers Legacy vs Modern from the shape of the canonical
// sections: a thread is legacy while Notes/Todo/Log still contain item lines.
func (t *Thread) detectRepresentation() Representation {
	body := t.Body()
	if sectionHasLinePrefix(body, SectionNotes, "- ") ||
		sectionHasLinePrefix(body, SectionTodo, "- [") ||
		ExtractSection(body, SectionLog) != "" {
		return Legacy
	}
	return Modern
}

// sectionHasLinePrefix reports whether any line of the section's content
// starts with the given prefix.
func sectionHasLinePrefix(body, name, prefix string) bool {
	for _, line := range strings.Split(ExtractSection(body, name), "\n") {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// ID returns the thread ID.
func (t *Thread) ID() string {
	return t.Frontmatter.ID
}

// Name returns the thread name/title.
func (t *Thread) Name() string {
	return t.Frontmatter.Name
}

// Status returns the thread status, including any reason suffix.
func (t *Thread) Status() string {
	return t.Frontmatter.Status
}

// BaseStatus returns the status without the reason suffix.
func (t *Thread) BaseStatus() string {
	return BaseStatus(t.Frontmatter.Status)
}

// Body returns the content after the frontmatter.
func (t *Thread) Body() string {
	if t.BodyStart >= len(t.Content) {
		return ""
	}
	return t.Content[t.BodyStart:]
}

// setBody replaces the body while leaving the serialized header untouched.
func (t *Thread) setBody(body string) {
	t.Content = t.Content[:t.BodyStart] + body
}

// SetField updates a scalar frontmatter field and rewrites content.
func (t *Thread) SetField(field, value string) error {
	switch field {
	case "id":
		t.Frontmatter.ID = value
	case "name":
		t.Frontmatter.Name = value
	case "desc":
		t.Frontmatter.Desc = value
	case "status":
		t.Frontmatter.Status = value
	default:
		return errors.NewUnknownField(field)
	}
	return t.rebuildContent()
}

// rebuildContent reconstructs the file text from the frontmatter and the
// current body, and updates BodyStart. The body bytes are carried over
// unchanged.
func (t *Thread) rebuildContent() error {
	fm, err := yaml.Marshal(&t.Frontmatter)
	if err != nil {
		return errors.NewInternal(err)
	}

	body := t.Body()

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(fm)
	sb.WriteString("---\n")
	t.BodyStart = sb.Len()
	sb.WriteString(body)

	t.Content = sb.String()
	return nil
}

// Write saves the thread to disk. The content is always assembled fully in
// memory first, so this is a single write with no partial states observable.
func (t *Thread) Write() error {
	if err := os.WriteFile(t.Path, []byte(t.Content), 0644); err != nil {
		return errors.NewIO(err)
	}
	return nil
}

// RelPath returns the path relative to the workspace root.
func (t *Thread) RelPath(root string) string {
	rel, err := filepath.Rel(root, t.Path)
	if err != nil {
		return t.Path
	}
	return rel
}

// ExtractIDFromPath extracts the 6-char hex ID prefix from a filename.
func ExtractIDFromPath(path string) string {
	filename := strings.TrimSuffix(filepath.Base(path), ".md")
	if m := idPrefixRe.FindStringSubmatch(filename); m != nil {
		return m[1]
	}
	return ""
}

// ExtractNameFromPath extracts the human-readable name from a filename.
func ExtractNameFromPath(path string) string {
	filename := strings.TrimSuffix(filepath.Base(path), ".md")
	if idPrefixRe.MatchString(filename) && len(filename) > 7 {
		return filename[7:]
	}
	return filename
}

// BaseStatus strips the reason suffix from a status
// (e.g. "blocked (waiting)" -> "blocked").
func BaseStatus(status string) string {
	if idx := strings.Index(status, " ("); idx != -1 {
		return status[:idx]
	}
	return status
}

// IsClosed reports whether a status is a closed status.
func IsClosed(status string) bool {
	base := BaseStatus(status)
	for _, s := range ClosedStatuses {
		if s == base {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether a status (ignoring any reason suffix) is known.
func IsValidStatus(status string) bool {
	base := BaseStatus(status)
	for _, s := range OpenStatuses {
		if s == base {
			return true
		}
	}
	return IsClosed(status)
}
