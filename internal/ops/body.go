package ops

import (
	"strings"

	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/thread"
)

// BodySetInput contains parameters for the BodySet operation.
type BodySetInput struct {
	Ref     string
	Content string
	Append  bool
}

// BodySetOutput contains the result of the BodySet operation.
type BodySetOutput struct {
	Path string `json:"path"`
}

// BodySet replaces or appends to a thread's Body section. Level-2 headings in
// the new content are demoted so they cannot collide with the reserved
// section headings.
func BodySet(root string, input BodySetInput) (*BodySetOutput, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" && !input.Append {
		return nil, errors.NewInvalidRequest("body content must not be empty")
	}
	content = thread.NormalizeBody(content)

	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}

	if input.Append {
		t.AppendSection(thread.SectionBody, content)
	} else {
		t.SetSection(thread.SectionBody, content)
	}
	if err := t.Write(); err != nil {
		return nil, err
	}

	return &BodySetOutput{Path: t.Path}, nil
}
