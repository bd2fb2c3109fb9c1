package ops

import (
	"fmt"

	"github.com/strandhq/strand/internal/thread"
	"github.com/strandhq/strand/internal/workspace"
)

// MigrateInput contains parameters for the Migrate operation.
type MigrateInput struct {
	Ref    string // single-thread mode; ignored when All is set
	All    bool
	DryRun bool
}

// MigrateFileResult is the per-file outcome of a migration batch.
type MigrateFileResult struct {
	Path   string                 `json:"path"`
	Report thread.MigrationReport `json:"report"`
}

// MigrateOutput contains the result of the Migrate operation.
type MigrateOutput struct {
	Files   []MigrateFileResult `json:"files"`
	Changed int                 `json:"changed"`
	DryRun  bool                `json:"dry_run,omitempty"`
	Errors  []string            `json:"errors,omitempty"`
}

// Migrate converts threads from the legacy representation to the modern one.
// In batch mode a failure on one file is recorded and the rest of the batch
// continues; callers decide success from the error count.
func Migrate(root string, input MigrateInput) (*MigrateOutput, error) {
	out := &MigrateOutput{DryRun: input.DryRun}

	if !input.All {
		t, err := resolveThread(root, input.Ref)
		if err != nil {
			return nil, err
		}
		report, err := migrateOne(t, input.DryRun)
		if err != nil {
			return nil, err
		}
		out.Files = append(out.Files, MigrateFileResult{Path: t.Path, Report: report})
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
		report, migErr := migrateOne(t, input.DryRun)
		if migErr != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %v", path, migErr))
			continue
		}
		out.Files = append(out.Files, MigrateFileResult{Path: path, Report: report})
		if report.Changed {
			out.Changed++
		}
	}
	return out, nil
}

// migrateOne migrates a parsed thread and writes it back when it changed.
func migrateOne(t *thread.Thread, dryRun bool) (thread.MigrationReport, error) {
	report, err := t.Migrate(dryRun)
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
