package ops

import (
	"fmt"

	"github.com/strandhq/strand/internal/thread"
	"github.com/strandhq/strand/internal/workspace"
)

// FixInput contains parameters for the Fix operation.
type FixInput struct {
	Ref    string // single-thread mode; ignored when All is set
	All    bool
	DryRun bool
}

// FixFileResult is the per-file outcome of a fix batch.
type FixFileResult struct {
	Path   string           `json:"path"`
	Report thread.FixReport `json:"report"`
}

// FixOutput contains the result of the Fix operation.
type FixOutput struct {
	Files   []FixFileResult `json:"files"`
	Changed int             `json:"changed"`
	DryRun  bool            `json:"dry_run,omitempty"`
	Errors  []string        `json:"errors,omitempty"`
}

// Fix repairs known corruption artifacts in thread item text. Batch mode has
// the same per-file error isolation as Migrate.
func Fix(root string, input FixInput) (*FixOutput, error) {
	out := &FixOutput{DryRun: input.DryRun}

	if !input.All {
		t, err := resolveThread(root, input.Ref)
		if err != nil {
			return nil, err
		}
		report, err := fixOne(t, input.DryRun)
		if err != nil {
			return nil, err
		}
		out.Files = append(out.Files, FixFileResult{Path: t.Path, Report: report})
		if report.Changed {
			out.Changed++
		}
		return out, nil
	}

	files, err := workspace.FindAll(root)
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		t, parseErr := thread.Parse(path)
		if parseErr != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %v", path, parseErr))
			continue
		}
		report, fixErr := fixOne(t, input.DryRun)
		if fixErr != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %v", path, fixErr))
			continue
		}
		out.Files = append(out.Files, FixFileResult{Path: path, Report: report})
		if report.Changed {
			out.Changed++
		}
	}
	return out, nil
}

// fixOne fixes a parsed thread and writes it back when it changed.
func fixOne(t *thread.Thread, dryRun bool) (thread.FixReport, error) {
	report, err := t.Fix(dryRun)
	if err != nil {
		return report, err
	}
	if report.Changed && !dryRun {
		if err := t.Write(); err != nil {
			return report, err
		}
	}
	return report, nil
}
