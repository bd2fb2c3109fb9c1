package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultStatus != "idea" {
		t.Errorf("DefaultStatus = %q, want idea", cfg.DefaultStatus)
	}
	if cfg.Quiet || cfg.DBMaxOpenConns != 0 || len(cfg.DisabledTools) != 0 {
		t.Errorf("unexpected non-defaults: %+v", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	content := `{"default_status": "planning", "quiet": true, "db_max_open_conns": 4}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultStatus != "planning" || !cfg.Quiet || cfg.DBMaxOpenConns != 4 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0644)

	if _, err := Load(dir); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestLoadWithRepo_Precedence(t *testing.T) {
	globalDir := t.TempDir()
	globalContent := `{"default_status": "planning", "disabled_tools": ["thread_migrate"]}`
	os.WriteFile(filepath.Join(globalDir, "config.json"), []byte(globalContent), 0644)

	repoRoot := t.TempDir()
	repoCfgDir := filepath.Join(repoRoot, ".strand")
	os.MkdirAll(repoCfgDir, 0755)
	repoContent := `{"default_status": "active", "disabled_tools": ["thread_new", "thread_migrate"]}`
	os.WriteFile(filepath.Join(repoCfgDir, "config.json"), []byte(repoContent), 0644)

	// Start below the repo root so the upward walk is exercised
	nested := filepath.Join(repoRoot, "src", "pkg")
	os.MkdirAll(nested, 0755)

	cfg, err := LoadWithRepo(globalDir, nested)
	if err != nil {
		t.Fatalf("LoadWithRepo failed: %v", err)
	}

	if cfg.DefaultStatus != "active" {
		t.Errorf("DefaultStatus = %q, want workspace value", cfg.DefaultStatus)
	}
	// Arrays merge and deduplicate rather than override
	want := []string{"thread_migrate", "thread_new"}
	if len(cfg.DisabledTools) != len(want) {
		t.Fatalf("DisabledTools = %v, want %v", cfg.DisabledTools, want)
	}
	for i := range want {
		if cfg.DisabledTools[i] != want[i] {
			t.Errorf("DisabledTools = %v, want %v", cfg.DisabledTools, want)
			break
		}
	}
}

func TestFindRepoConfig_NotFound(t *testing.T) {
	if got := FindRepoConfig(t.TempDir()); got != "" {
		t.Errorf("FindRepoConfig = %q, want empty", got)
	}
}

func TestMerge(t *testing.T) {
	base := &Config{DefaultStatus: "idea", Quiet: true, DBMaxOpenConns: 2}
	overlay := &Config{DBMaxIdleConns: 3}

	got := Merge(base, overlay)
	if got.DefaultStatus != "idea" {
		t.Errorf("DefaultStatus = %q", got.DefaultStatus)
	}
	if !got.Quiet {
		t.Error("Quiet not carried from base")
	}
	if got.DBMaxOpenConns != 2 || got.DBMaxIdleConns != 3 {
		t.Errorf("pool limits = %d/%d", got.DBMaxOpenConns, got.DBMaxIdleConns)
	}
}

func TestMergeStringSlice(t *testing.T) {
	got := mergeStringSlice([]string{" a ", "b", ""}, []string{"b", "c"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}

	if mergeStringSlice(nil, nil) != nil {
		t.Error("empty merge should return nil")
	}
}
