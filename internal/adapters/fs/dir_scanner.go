// Package fs provides filesystem-backed adapters for the scoutship
// agent.
package fs

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/bft-labs/scoutship/internal/domain"
	"github.com/bft-labs/scoutship/pkg/dvw"
)

// DirScanner discovers scout files in a single directory. It satisfies
// ports.FileSource.
type DirScanner struct {
	dir    string
	hashes map[string]hashEntry
}

// hashEntry memoizes a content hash keyed by the file's size and mtime,
// so unchanged files are not rehashed on every scan.
type hashEntry struct {
	size    int64
	modTime time.Time
	hash    string
}

// NewDirScanner creates a scanner for dir. The directory must exist
// when Scan is called.
func NewDirScanner(dir string) *DirScanner {
	return &DirScanner{dir: dir, hashes: make(map[string]hashEntry)}
}

// Scan lists the .dvw files in the directory, oldest modification time
// first. The extension match is case-insensitive so exports named
// MATCH.DVW are picked up too. Subdirectories are not descended into.
func (s *DirScanner) Scan(ctx context.Context) ([]domain.ScoutFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read scout dir: %w", err)
	}

	var files []domain.ScoutFile
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".dvw") {
			continue
		}

		path := filepath.Join(s.dir, name)
		info, err := entry.Info()
		if err != nil {
			// File vanished between ReadDir and Info; skip it.
			continue
		}

		hash, err := s.contentHash(path, info)
		if err != nil {
			return nil, fmt.Errorf("hash %s: %w", name, err)
		}

		files = append(files, domain.ScoutFile{
			Path:        path,
			Name:        name,
			Size:        info.Size(),
			ModTime:     info.ModTime(),
			ContentHash: hash,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name < files[j].Name
		}
		return files[i].ModTime.Before(files[j].ModTime)
	})
	return files, nil
}

// Read loads the file content as UTF-8 text, transcoding legacy
// Latin-1 exports when needed.
func (s *DirScanner) Read(ctx context.Context, file domain.ScoutFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return dvw.ReadFile(file.Path)
}

func (s *DirScanner) contentHash(path string, info os.FileInfo) (string, error) {
	if cached, ok := s.hashes[path]; ok &&
		cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		return cached.hash, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	s.hashes[path] = hashEntry{size: info.Size(), modTime: info.ModTime(), hash: hash}
	return hash, nil
}
