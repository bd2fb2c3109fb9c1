// Package ops implements the operations behind the CLI commands and MCP
// tools. Each operation takes an Input struct, works on thread files under a
// workspace root, and returns an Output struct that serializes cleanly to
// JSON for MCP responses.
package ops

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/thread"
	"github.com/strandhq/strand/internal/workspace"
)

// hashPrefixRe matches a usable item hash prefix: 1 to 4 lowercase hex chars.
var hashPrefixRe = regexp.MustCompile(`^[0-9a-f]{1,4}$`)

// resolveThread locates a thread by reference (ID, exact name, or substring)
// and parses it.
func resolveThread(root, ref string) (*thread.Thread, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, errors.NewInvalidRequest("thread reference must not be empty")
	}
	path, err := workspace.FindByRef(root, ref)
	if err != nil {
		return nil, err
	}
	return thread.Parse(path)
}

// checkUnique enforces the ambiguity guard for hash-addressed mutations: the
// prefix must match exactly one item in the section. Zero matches is not
// found; more than one blocks the mutation, even when one candidate is an
// exact full-hash match.
func checkUnique(t *thread.Thread, section, prefix string) error {
	if !hashPrefixRe.MatchString(prefix) {
		return errors.NewInvalidRequest(fmt.Sprintf("invalid hash %q: expected 1-4 lowercase hex characters", prefix))
	}
	switch n := t.CountMatching(section, prefix); {
	case n == 0:
		return errors.NewItemNotFound(prefix)
	case n > 1:
		return errors.NewAmbiguousHash(prefix, n)
	}
	return nil
}

// logSummary shortens item text for use inside an automatic log entry.
func logSummary(text string) string {
	const max = 60
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
