package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDirInfo(t *testing.T) {
	tmpDir := t.TempDir()

	// Two scout files, one unrelated file, one subdirectory.
	for _, name := range []string{"match1.dvw", "match2.DVW", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "archive"), 0755); err != nil {
		t.Fatal(err)
	}

	cfg := Config{ScoutDir: tmpDir}
	info, err := LoadDirInfo(&cfg)
	if err != nil {
		t.Fatalf("LoadDirInfo() error = %v", err)
	}

	if info.ScoutFiles != 2 {
		t.Errorf("ScoutFiles = %d, want 2", info.ScoutFiles)
	}
	if cfg.StateDir != filepath.Join(tmpDir, ".scoutship") {
		t.Errorf("StateDir = %v, want %v", cfg.StateDir, filepath.Join(tmpDir, ".scoutship"))
	}
	if cfg.DBPath != filepath.Join(cfg.StateDir, "matches.db") {
		t.Errorf("DBPath = %v, want %v", cfg.DBPath, filepath.Join(cfg.StateDir, "matches.db"))
	}
}

func TestLoadDirInfo_MissingScoutDir(t *testing.T) {
	cfg := Config{}
	if _, err := LoadDirInfo(&cfg); err == nil {
		t.Error("LoadDirInfo() expected error for empty scout dir")
	}
}

func TestLoadDirInfo_NonexistentDir(t *testing.T) {
	cfg := Config{ScoutDir: filepath.Join(t.TempDir(), "missing")}
	if _, err := LoadDirInfo(&cfg); err == nil {
		t.Error("LoadDirInfo() expected error for nonexistent dir")
	}
}

func TestLoadDirInfo_NotADirectory(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Config{ScoutDir: file}
	if _, err := LoadDirInfo(&cfg); err == nil {
		t.Error("LoadDirInfo() expected error for file path")
	}
}

func TestLoadDirInfo_KeepsExplicitPaths(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := Config{
		ScoutDir: tmpDir,
		StateDir: "/state",
		DBPath:   "/custom/db.sqlite",
	}
	if _, err := LoadDirInfo(&cfg); err != nil {
		t.Fatalf("LoadDirInfo() error = %v", err)
	}

	if cfg.StateDir != "/state" {
		t.Errorf("StateDir = %v, want /state", cfg.StateDir)
	}
	if cfg.DBPath != "/custom/db.sqlite" {
		t.Errorf("DBPath = %v, want /custom/db.sqlite", cfg.DBPath)
	}
}
