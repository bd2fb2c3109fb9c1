package ops

import (
	"fmt"
	"strings"

	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/thread"
)

// StatusSetInput contains parameters for the StatusSet operation.
type StatusSetInput struct {
	Ref    string
	Status string
	Reason string // optional, stored as a " (reason)" suffix
}

// StatusSetOutput contains the result of the StatusSet operation.
type StatusSetOutput struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	Old  string `json:"old"`
	New  string `json:"new"`
}

// StatusSet changes a thread's status and records the transition in the log.
func StatusSet(root string, input StatusSetInput) (*StatusSetOutput, error) {
	status := strings.TrimSpace(input.Status)
	if !thread.IsValidStatus(status) {
		return nil, errors.NewInvalidRequest(fmt.Sprintf(
			"invalid status %q: valid statuses are %s",
			status, strings.Join(append(append([]string{}, thread.OpenStatuses...), thread.ClosedStatuses...), ", ")))
	}
	if reason := strings.TrimSpace(input.Reason); reason != "" {
		status = fmt.Sprintf("%s (%s)", status, reason)
	}

	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}

	old := t.Status()
	if err := t.SetField("status", status); err != nil {
		return nil, err
	}
	if err := t.InsertLogEntry(fmt.Sprintf("Status: %s -> %s", old, status)); err != nil {
		return nil, err
	}
	if err := t.Write(); err != nil {
		return nil, err
	}

	return &StatusSetOutput{ID: t.ID(), Path: t.Path, Old: old, New: status}, nil
}

// Resolve closes a thread with the "resolved" status.
func Resolve(root, ref, reason string) (*StatusSetOutput, error) {
	return StatusSet(root, StatusSetInput{Ref: ref, Status: "resolved", Reason: reason})
}

// Reopen returns a closed thread to "active".
func Reopen(root, ref string) (*StatusSetOutput, error) {
	return StatusSet(root, StatusSetInput{Ref: ref, Status: "active"})
}
