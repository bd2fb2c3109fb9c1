package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/strandhq/strand/internal/config"
	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/thread"
	"github.com/strandhq/strand/internal/workspace"
)

// NewInput contains parameters for the New operation.
type NewInput struct {
	Title  string
	Dir    string // directory whose .threads dir receives the file; default root
	Desc   string
	Status string // default from config
	Body   string
}

// NewOutput contains the result of the New operation.
type NewOutput struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// New creates a thread file in the modern representation: structured
// frontmatter, empty canonical sections, and a creation log entry.
func New(root string, cfg *config.Config, input NewInput) (*NewOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.NewInvalidRequest("title must not be empty")
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = cfg.DefaultStatus
	}
	if status == "" {
		status = "idea"
	}
	if !thread.IsValidStatus(status) {
		return nil, errors.NewInvalidRequest(fmt.Sprintf(
			"invalid status %q: valid statuses are %s",
			status, strings.Join(append(append([]string{}, thread.OpenStatuses...), thread.ClosedStatuses...), ", ")))
	}

	id, err := workspace.GenerateID(root)
	if err != nil {
		return nil, err
	}

	dir := input.Dir
	if dir == "" {
		dir = root
	}
	threadsDir := filepath.Join(dir, workspace.ThreadsDirName)
	if err := os.MkdirAll(threadsDir, 0755); err != nil {
		return nil, errors.NewIO(err)
	}

	slug := workspace.Slugify(title)
	if slug == "" {
		slug = "thread"
	}
	path := filepath.Join(threadsDir, id+"-"+slug+".md")
	if _, err := os.Stat(path); err == nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("thread file already exists: %s", path))
	}

	fm := thread.Frontmatter{
		ID:     id,
		Name:   title,
		Desc:   strings.TrimSpace(input.Desc),
		Status: status,
		Log: []thread.LogEntry{{
			TS:   time.Now().Format(thread.LogTimestampFormat),
			Text: "Created thread.",
		}},
	}
	header, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(header)
	sb.WriteString("---\n\n## Body\n\n")
	if body := strings.TrimSpace(input.Body); body != "" {
		sb.WriteString(thread.NormalizeBody(body))
		sb.WriteString("\n\n")
	}
	sb.WriteString("## Notes\n\n## Todo\n\n## Log\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return nil, errors.NewIO(err)
	}

	return &NewOutput{ID: id, Path: path}, nil
}
