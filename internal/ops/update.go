package ops

import (
	"fmt"
	"strings"

	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/thread"
)

// UpdateInput contains parameters for the Update operation.
type UpdateInput struct {
	Ref   string
	Field string // name, desc, or status
	Value string
}

// UpdateOutput contains the result of the Update operation.
type UpdateOutput struct {
	ID    string `json:"id"`
	Path  string `json:"path"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// Update sets a scalar frontmatter field. The ID field is derived from the
// filename and cannot be updated through this path.
func Update(root string, input UpdateInput) (*UpdateOutput, error) {
	field := strings.TrimSpace(input.Field)
	if field == "id" {
		return nil, errors.NewInvalidRequest("the id field cannot be changed")
	}
	if field == "status" && !thread.IsValidStatus(input.Value) {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid status %q", input.Value))
	}

	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}

	if err := t.SetField(field, input.Value); err != nil {
		return nil, err
	}
	if err := t.Write(); err != nil {
		return nil, err
	}

	return &UpdateOutput{ID: t.ID(), Path: t.Path, Field: field, Value: input.Value}, nil
}
