package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const stateFileName = "ingest.json"

// FileRepository stores the ingest ledger as a JSON file in a
// directory. Saves are atomic: the ledger is written to a temporary
// file and renamed over the previous one.
type FileRepository struct {
	dir string
}

// NewFileRepository creates a repository rooted at dir. The directory
// is created on the first Save if it does not exist.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Path returns the full path of the ledger file.
func (r *FileRepository) Path() string {
	return filepath.Join(r.dir, stateFileName)
}

// Load reads the ledger from disk. A missing file yields an empty
// State and no error.
func (r *FileRepository) Load() (State, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("read state file: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("decode state file: %w", err)
	}
	return s, nil
}

// Save writes the ledger atomically.
func (r *FileRepository) Save(s State) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp := r.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, r.Path()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
