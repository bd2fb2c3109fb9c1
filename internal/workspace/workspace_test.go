package workspace

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/strandhq/strand/internal/errors"
)

// mkThread creates an empty thread file under dir/.threads.
func mkThread(t *testing.T, dir, filename string) string {
	t.Helper()
	threadsDir := filepath.Join(dir, ThreadsDirName)
	if err := os.MkdirAll(threadsDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(threadsDir, filename)
	content := "---\nid: " + filename[:6] + "\nname: x\nstatus: active\n---\n\n## Body\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	mkThread(t, root, "abc123-top.md")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if got := FindRoot(nested); got != root {
		t.Errorf("FindRoot = %q, want %q", got, root)
	}

	// No .threads anywhere: the starting dir is returned
	lone := t.TempDir()
	if got := FindRoot(lone); got != lone {
		t.Errorf("FindRoot = %q, want %q", got, lone)
	}
}

func TestFindAll(t *testing.T) {
	root := t.TempDir()
	a := mkThread(t, root, "abc123-alpha.md")
	sub := filepath.Join(root, "svc")
	b := mkThread(t, sub, "def456-beta.md")

	// Non-markdown files and nested repositories are skipped
	os.WriteFile(filepath.Join(root, ThreadsDirName, "notes.txt"), []byte("x"), 0644)
	nestedRepo := filepath.Join(root, "vendorcopy")
	mkThread(t, nestedRepo, "999999-hidden.md")
	os.MkdirAll(filepath.Join(nestedRepo, ".git"), 0755)

	threads, err := FindAll(root)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(threads) != 2 {
		t.Fatalf("threads = %v, want 2", threads)
	}
	// Sorted by path
	if threads[0] != a || threads[1] != b {
		t.Errorf("threads = %v, want [%s %s]", threads, a, b)
	}
}

func TestFindByRef(t *testing.T) {
	root := t.TempDir()
	alpha := mkThread(t, root, "abc123-payment-flow.md")
	mkThread(t, root, "def456-payment-retries.md")
	gamma := mkThread(t, root, "aaa111-unrelated.md")

	// Exact ID
	got, err := FindByRef(root, "abc123")
	if err != nil || got != alpha {
		t.Errorf("FindByRef(abc123) = (%q, %v)", got, err)
	}

	// Exact name
	got, err = FindByRef(root, "payment-flow")
	if err != nil || got != alpha {
		t.Errorf("FindByRef(payment-flow) = (%q, %v)", got, err)
	}

	// Unique substring, case-insensitive
	got, err = FindByRef(root, "UNREL")
	if err != nil || got != gamma {
		t.Errorf("FindByRef(UNREL) = (%q, %v)", got, err)
	}

	// Ambiguous substring
	_, err = FindByRef(root, "payment")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("ambiguous ref error = %v, want INVALID_REQUEST", err)
	}

	// No match
	_, err = FindByRef(root, "zzz")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("missing ref error = %v, want NOT_FOUND", err)
	}
}

func TestGenerateID(t *testing.T) {
	root := t.TempDir()
	mkThread(t, root, "abc123-existing.md")

	idRe := regexp.MustCompile(`^[0-9a-f]{6}$`)
	for range 5 {
		id, err := GenerateID(root)
		if err != nil {
			t.Fatalf("GenerateID failed: %v", err)
		}
		if !idRe.MatchString(id) {
			t.Errorf("id = %q, want 6 lowercase hex chars", id)
		}
		if id == "abc123" {
			t.Error("generated a colliding ID")
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Payment Flow", "payment-flow"},
		{"  Fix: the thing!  ", "fix-the-thing"},
		{"already-kebab", "already-kebab"},
		{"Ünïcode falls away", "n-code-falls-away"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
