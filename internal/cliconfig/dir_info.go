package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultStateDirName = ".scoutship"
	DefaultDBFileName   = "matches.db"
)

// DirInfo describes what LoadDirInfo found in the scout directory.
type DirInfo struct {
	// ScoutFiles is the number of .dvw files at the top level of the
	// scout directory.
	ScoutFiles int
}

// LoadDirInfo verifies that the scout directory exists and derives the
// state directory and database path under it when they are not already
// set in the config.
func LoadDirInfo(cfg *Config) (DirInfo, error) {
	var info DirInfo

	if cfg.ScoutDir == "" {
		return info, fmt.Errorf("scout-dir is required")
	}

	st, err := os.Stat(cfg.ScoutDir)
	if err != nil {
		return info, fmt.Errorf("scout dir: %w", err)
	}
	if !st.IsDir() {
		return info, fmt.Errorf("scout dir %s is not a directory", cfg.ScoutDir)
	}

	entries, err := os.ReadDir(cfg.ScoutDir)
	if err != nil {
		return info, fmt.Errorf("read scout dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".dvw") {
			info.ScoutFiles++
		}
	}

	if cfg.StateDir == "" {
		cfg.StateDir = filepath.Join(cfg.ScoutDir, DefaultStateDirName)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.StateDir, DefaultDBFileName)
	}

	return info, nil
}
