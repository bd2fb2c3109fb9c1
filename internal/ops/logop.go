package ops

import (
	"strings"

	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/thread"
)

// LogAddInput contains parameters for the LogAdd operation.
type LogAddInput struct {
	Ref  string
	Text string
}

// LogAddOutput contains the result of the LogAdd operation.
type LogAddOutput struct {
	TS   string `json:"ts"`
	Path string `json:"path"`
}

// LogAdd prepends a timestamped entry to a thread's log.
func LogAdd(root string, input LogAddInput) (*LogAddOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.NewInvalidRequest("log text must not be empty")
	}

	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}

	if err := t.InsertLogEntry(text); err != nil {
		return nil, err
	}
	if err := t.Write(); err != nil {
		return nil, err
	}

	entries := t.LogEntries()
	ts := ""
	if len(entries) > 0 {
		ts = entries[0].TS
	}
	return &LogAddOutput{TS: ts, Path: t.Path}, nil
}

// LogListInput contains parameters for the LogList operation.
type LogListInput struct {
	Ref   string
	Limit int // 0 means all
}

// LogListOutput contains the result of the LogList operation.
type LogListOutput struct {
	Entries []thread.LogEntry `json:"entries"`
	Path    string            `json:"path"`
}

// LogList returns a thread's log, most recent first.
func LogList(root string, input LogListInput) (*LogListOutput, error) {
	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}

	entries := t.LogEntries()
	if input.Limit > 0 && len(entries) > input.Limit {
		entries = entries[:input.Limit]
	}
	return &LogListOutput{Entries: entries, Path: t.Path}, nil
}
