// Package archiver provides automatic scout file archiving for
// scoutship. When enabled, it periodically compresses the oldest
// already-ingested .dvw files to keep the scout directory below a size
// threshold.
package archiver

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

	"github.com/bft-labs/scoutship/pkg/scoutship"
	"github.com/bft-labs/scoutship/pkg/state"
)

// Plugin implements scout file archiving functionality.
// It periodically checks the scout directory size and moves the oldest
// ingested files into an xz-compressed archive subdirectory when the
// size exceeds the high watermark. Files the agent has not decoded yet
// are never touched.
type Plugin struct {
	mu sync.RWMutex

	// Configuration
	checkInterval time.Duration
	highWatermark int64
	lowWatermark  int64

	// Runtime state
	scoutDir string
	stateDir string
	logger   scoutship.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// Config holds configuration options for the archiver plugin.
type Config struct {
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

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CheckInterval: 12 * time.Hour,
		HighWatermark: 512 << 20, // 512 MiB
		LowWatermark:  256 << 20, // 256 MiB
	}
}

// New creates a new archiver plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = 12 * time.Hour
	}
	if cfg.HighWatermark <= 0 {
		cfg.HighWatermark = 512 << 20
	}
	if cfg.LowWatermark <= 0 {
		cfg.LowWatermark = 256 << 20
	}

	return &Plugin{
		checkInterval: cfg.CheckInterval,
		highWatermark: cfg.HighWatermark,
		lowWatermark:  cfg.LowWatermark,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "archiver"
}

// Initialize sets up the plugin and starts the archive loop.
func (p *Plugin) Initialize(ctx context.Context, cfg scoutship.PluginConfig) error {
	p.mu.Lock()
	p.scoutDir = cfg.ScoutDir
	p.stateDir = cfg.StateDir
	p.logger = cfg.Logger
	p.mu.Unlock()

	if p.scoutDir == "" {
		p.logger.Warn("archiver disabled: no scout directory configured")
		return nil
	}

	// Create cancellable context for the archive loop
	archiveCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("archiver plugin initialized")

	// Start archive loop
	p.wg.Add(1)
	go p.archiveLoop(archiveCtx)

	return nil
}

// Shutdown stops the archive loop.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	return nil
}

// archiveLoop runs periodic archive checks.
func (p *Plugin) archiveLoop(ctx context.Context) {
	defer p.wg.Done()

	// Run immediately on startup
	p.archiveOnce(ctx)

	ticker := time.NewTicker(p.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.archiveOnce(ctx)
		}
	}
}

// archiveOnce performs a single archive check.
func (p *Plugin) archiveOnce(ctx context.Context) {
	p.mu.RLock()
	scoutDir := p.scoutDir
	stateDir := p.stateDir
	p.mu.RUnlock()

	curSize, err := scoutDirSize(scoutDir)
	if err != nil {
		p.logger.Error("archiver: size check failed")
		return
	}

	if curSize <= p.highWatermark {
		return
	}

	candidates, err := ingestedFiles(scoutDir, stateDir)
	if err != nil {
		p.logger.Error("archiver: list candidates failed")
		return
	}
	if len(candidates) == 0 {
		return
	}

	archiveDir := filepath.Join(scoutDir, scoutship.ArchiveDirName)

	compressed := int64(0)
	for _, cand := range candidates {
		if ctx.Err() != nil {
			return
		}
		if curSize <= p.lowWatermark {
			break
		}

		bytesFreed, arErr := compress(cand.path, archiveDir)
		if arErr != nil {
			p.logger.Error("archiver: compress failed")
			continue
		}
		curSize -= bytesFreed
		compressed += bytesFreed
	}

	if compressed > 0 {
		p.logger.Info("archiver: archive pass completed")
	}
}

// candidate is a scout file eligible for compression.
type candidate struct {
	path    string
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

// ingestedFiles lists the scout files recorded in the ingest ledger,
// oldest modification time first.
func ingestedFiles(scoutDir, stateDir string) ([]candidate, error) {
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

	var candidates []candidate
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
		candidates = append(candidates, candidate{path: path, modTime: info.ModTime()})
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

// compress writes an xz-compressed copy of the file into the archive
// directory, then removes the original. Returns the bytes freed.
func compress(path, archiveDir string) (int64, error) {
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

// Ensure Plugin implements scoutship.Plugin.
var _ scoutship.Plugin = (*Plugin)(nil)
