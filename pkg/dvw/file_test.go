package dvw

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadFileUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.dvw")
	content := "[3TEAMS]\n1;Béziers Angels;\n2;Paris;\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got != content {
		t.Errorf("ReadFile() = %q, want the UTF-8 text unchanged", got)
	}
}

func TestReadFileLatin1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.dvw")
	// "Béziers" with é as the single Latin-1 byte 0xE9.
	raw := []byte("[3TEAMS]\n1;B\xe9ziers Angels;\n2;Paris;\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := "[3TEAMS]\n1;Béziers Angels;\n2;Paris;\n"
	if got != want {
		t.Errorf("ReadFile() = %q, want %q", got, want)
	}
}

func TestReadFileNormalizesCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.dvw")
	content := "[3TEAMS]\r\n1;Milano;\r\n2;Novara;\r\n\r\n[3SET]\r\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := "[3TEAMS]\n1;Milano;\n2;Novara;\n\n[3SET]\n"
	if got != want {
		t.Errorf("ReadFile() = %q, want LF endings", got)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.dvw"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile() error = %v, want os.ErrNotExist", err)
	}
}

func TestParseFileLatin1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "first_leg.dvw")
	raw := []byte("[3TEAMS]\n1;B\xe9ziers Angels;\n2;Paris;\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := ParseFile(path, WithIDSource(&seqIDSource{}))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if m.Teams.Home != "Béziers Angels" {
		t.Errorf("Teams.Home = %q, want the decoded name", m.Teams.Home)
	}
}
