package thread

import (
	"strings"
	"testing"
)

func TestMigrate_LegacyToModern(t *testing.T) {
	th := parseThread(t, "abc123-test-thread.md", legacyContent)

	report, err := th.Migrate(false)
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	if !report.Changed {
		t.Fatal("report.Changed = false")
	}
	if report.Notes != 1 || report.Todos != 2 || report.LogEntries != 1 {
		t.Errorf("report = %+v", report)
	}

	if th.Repr != Modern {
		t.Error("representation not flipped to Modern")
	}
	if len(th.Frontmatter.Notes) != 1 || th.Frontmatter.Notes[0].Hash != "ab12" {
		t.Errorf("frontmatter notes = %+v", th.Frontmatter.Notes)
	}
	if len(th.Frontmatter.Todo) != 2 || !th.Frontmatter.Todo[1].Done {
		t.Errorf("frontmatter todo = %+v", th.Frontmatter.Todo)
	}

	// Section bodies are stripped, headings stay, user content survives
	body := th.Body()
	if ExtractSection(body, SectionNotes) != "" || ExtractSection(body, SectionTodo) != "" || ExtractSection(body, SectionLog) != "" {
		t.Errorf("legacy sections not emptied:\n%s", body)
	}
	if !strings.Contains(body, "## Sub Heading") || !strings.Contains(body, "Intro text.") {
		t.Errorf("body content lost:\n%s", body)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	th := parseThread(t, "abc123-test-thread.md", legacyContent)

	if _, err := th.Migrate(false); err != nil {
		t.Fatalf("first Migrate failed: %v", err)
	}
	content := th.Content

	report, err := th.Migrate(false)
	if err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
	if report.Changed {
		t.Errorf("second run reported changes: %+v", report)
	}
	if th.Content != content {
		t.Error("second run modified content")
	}
}

func TestMigrate_DryRun(t *testing.T) {
	th := parseThread(t, "abc123-test-thread.md", legacyContent)
	content := th.Content

	report, err := th.Migrate(true)
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if !report.Changed || report.Todos != 2 {
		t.Errorf("report = %+v", report)
	}
	if th.Content != content {
		t.Error("dry run modified content")
	}
	if th.Repr != Legacy {
		t.Error("dry run flipped representation")
	}
}

func TestMigrate_AlreadyModern(t *testing.T) {
	th := parseThread(t, "abc123-test-thread.md", modernContent)

	report, err := th.Migrate(false)
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if report.Changed {
		t.Errorf("modern thread reported changes: %+v", report)
	}
}

func TestMigrate_KeepsPopulatedCollections(t *testing.T) {
	// A half-migrated thread: frontmatter already holds notes, but a stray
	// legacy todo line remains. Migration must not overwrite the notes.
	content := `---
id: abc123
name: t
status: active
notes:
    - text: Kept note
      hash: aa11
---

## Body

## Todo

- [ ] Stray  <!-- bb22 -->
`
	th := parseThread(t, "abc123-t.md", content)

	report, err := th.Migrate(false)
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if !report.Changed {
		t.Fatal("no change reported")
	}
	if len(th.Frontmatter.Notes) != 1 || th.Frontmatter.Notes[0].Text != "Kept note" {
		t.Errorf("notes overwritten: %+v", th.Frontmatter.Notes)
	}
	if len(th.Frontmatter.Todo) != 1 || th.Frontmatter.Todo[0].Text != "Stray" {
		t.Errorf("todo = %+v", th.Frontmatter.Todo)
	}
}
