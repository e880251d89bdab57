package scoutship

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/bft-labs/scoutship/internal/ports"
	"github.com/bft-labs/scoutship/pkg/state"
)

// ArchiveDirName is the subdirectory of the scout directory that holds
// compressed scout files.
const ArchiveDirName = "archive"

// ArchiveConfig holds configuration options for automatic scout file
// archiving. When enabled, scoutship periodically checks the scout
// directory size and compresses the oldest already-ingested files when
// it exceeds the high watermark.
type ArchiveConfig struct {
	// Enabled controls whether archiving is active. Default: false
	Enabled bool

	// CheckInterval is how often to check the scout directory size.
	// Default: 12 hours
	CheckInterval time.Duration

	// HighWatermark is the size in bytes above which archiving begins.
	// Default: 512 MiB
	HighWatermark int64

	// LowWatermark is the target size in bytes after archiving.
	// Default: 256 MiB
	LowWatermark int64
}

// DefaultArchiveConfig returns an ArchiveConfig with sensible defaults.
func DefaultArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		Enabled:       true,
		CheckInterval: 12 * time.Hour,
		HighWatermark: 512 << 20,
		LowWatermark:  256 << 20,
	}
}

// WithArchiveConfig enables automatic scout file archiving with the
// specified configuration. Only files already recorded in the ingest
// ledger are touched; a file that has not been decoded yet is never
// archived.
//
// Usage:
//
//	s, err := scoutship.New(cfg,
//	    scoutship.WithArchiveConfig(scoutship.ArchiveConfig{
//	        Enabled:       true,
//	        HighWatermark: 1 << 30,  // 1 GiB
//	        LowWatermark:  512 << 20, // 512 MiB
//	        CheckInterval: time.Hour,
//	    }),
//	)
func WithArchiveConfig(cfg ArchiveConfig) Option {
	if !cfg.Enabled {
		return func(o *options) {} // No-op if not enabled
	}

	// Apply defaults for zero values
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = 12 * time.Hour
	}
	if cfg.HighWatermark <= 0 {
		cfg.HighWatermark = 512 << 20
	}
	if cfg.LowWatermark <= 0 {
		cfg.LowWatermark = 256 << 20
	}

	return func(o *options) {
		o.archiveConfig = &cfg
	}
}

// archiveRunner manages the scout file archiving goroutine.
type archiveRunner struct {
	mu sync.RWMutex

	// Configuration
	checkInterval time.Duration
	highWatermark int64
	lowWatermark  int64

	// Runtime state
	scoutDir   string
	stateDir   string
	archiveDir string
	logger     ports.Logger
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func newArchiveRunner(cfg ArchiveConfig, scoutDir, stateDir string, logger ports.Logger) *archiveRunner {
	return &archiveRunner{
		checkInterval: cfg.CheckInterval,
		highWatermark: cfg.HighWatermark,
		lowWatermark:  cfg.LowWatermark,
		scoutDir:      scoutDir,
		stateDir:      stateDir,
		archiveDir:    filepath.Join(scoutDir, ArchiveDirName),
		logger:        logger,
	}
}

func (a *archiveRunner) start(ctx context.Context) {
	if a.scoutDir == "" {
		a.logger.Warn("scout archive disabled: no scout directory configured")
		return
	}

	archiveCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.logger.Info("scout archive enabled")

	a.wg.Add(1)
	go a.archiveLoop(archiveCtx)
}

func (a *archiveRunner) stop() {
	if a.cancel != nil {
		a.cancel()
	}
	a.wg.Wait()
}

func (a *archiveRunner) archiveLoop(ctx context.Context) {
	defer a.wg.Done()

	// Run immediately on startup
	a.archiveOnce(ctx)

	ticker := time.NewTicker(a.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.archiveOnce(ctx)
		}
	}
}

func (a *archiveRunner) archiveOnce(ctx context.Context) {
	a.mu.RLock()
	scoutDir := a.scoutDir
	stateDir := a.stateDir
	archiveDir := a.archiveDir
	a.mu.RUnlock()

	curSize, err := scoutDirSize(scoutDir)
	if err != nil {
		a.logger.Error("scout archive: size check failed", ports.Err(err))
		return
	}

	if curSize <= a.highWatermark {
		return
	}

	candidates, err := archiveCandidates(scoutDir, stateDir)
	if err != nil {
		a.logger.Error("scout archive: list candidates failed", ports.Err(err))
		return
	}
	if len(candidates) == 0 {
		return
	}

	compressed := int64(0)
	for _, cand := range candidates {
		if ctx.Err() != nil {
			return
		}
		if curSize <= a.lowWatermark {
			break
		}

		bytesFreed, arErr := compressFile(cand.path, archiveDir)
		if arErr != nil {
			a.logger.Error("scout archive: compress failed",
				ports.String("file", filepath.Base(cand.path)),
				ports.Err(arErr))
			continue
		}
		curSize -= bytesFreed
		compressed += bytesFreed
	}

	if compressed > 0 {
		a.logger.Info("scout archive completed", ports.Int64("bytes_freed", compressed))
	}
}

// archiveCandidate is a scout file eligible for compression.
type archiveCandidate struct {
	path    string
	size    int64
	modTime time.Time
}

// scoutDirSize sums the sizes of the scout files in the directory.
// The archive subdirectory does not count against the watermark.
func scoutDirSize(scoutDir string) (int64, error) {
	entries, err := os.ReadDir(scoutDir)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, entry := range entries {
		if entry.IsDir() || !isScoutFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}

// archiveCandidates lists the scout files recorded in the ingest
// ledger, oldest modification time first. Files the agent has not
// decoded yet are excluded.
func archiveCandidates(scoutDir, stateDir string) ([]archiveCandidate, error) {
	ledger, err := state.NewFileRepository(stateDir).Load()
	if err != nil {
		return nil, fmt.Errorf("load ingest ledger: %w", err)
	}
	if ledger.IsEmpty() {
		return nil, nil
	}

	ingested := make(map[string]bool, len(ledger.Files))
	for _, rec := range ledger.Files {
		ingested[rec.Path] = true
	}

	entries, err := os.ReadDir(scoutDir)
	if err != nil {
		return nil, err
	}

	var candidates []archiveCandidate
	for _, entry := range entries {
		if entry.IsDir() || !isScoutFile(entry.Name()) {
			continue
		}
		path := filepath.Join(scoutDir, entry.Name())
		if !ingested[path] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, archiveCandidate{
			path:    path,
			size:    info.Size(),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].modTime.Equal(candidates[j].modTime) {
			return candidates[i].path < candidates[j].path
		}
		return candidates[i].modTime.Before(candidates[j].modTime)
	})
	return candidates, nil
}

func isScoutFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".dvw")
}

// compressFile writes an xz-compressed copy of the file into the
// archive directory, then removes the original. Returns the bytes
// freed in the scout directory.
func compressFile(path, archiveDir string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return 0, fmt.Errorf("create archive dir: %w", err)
	}

	dst := filepath.Join(archiveDir, filepath.Base(path)+".xz")
	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	w, err := xz.NewWriter(out)
	if err != nil {
		out.Close()
		os.Remove(dst)
		return 0, fmt.Errorf("create xz writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		out.Close()
		os.Remove(dst)
		return 0, fmt.Errorf("compress %s: %w", filepath.Base(path), err)
	}
	if err := w.Close(); err != nil {
		out.Close()
		os.Remove(dst)
		return 0, fmt.Errorf("finalize %s: %w", filepath.Base(dst), err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return 0, err
	}

	if err := os.Remove(path); err != nil {
		return 0, err
	}
	return info.Size(), nil
}
