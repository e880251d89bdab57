package scoutship

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/bft-labs/scoutship/internal/domain"
)

// Default configuration values.
const (
	DefaultScanInterval  = 30 * time.Second
	DefaultSendInterval  = time.Minute
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultMaxBatchCount = 16
	DefaultMaxBatchBytes = 4 << 20 // 4 MiB
	DefaultRetryBase     = time.Second
	DefaultRetryMax      = 2 * time.Minute
)

// Config holds the configuration for a Scoutship instance.
// Only ScoutDir is required; everything else has a default applied by
// SetDefaults.
type Config struct {
	// ScoutDir is the directory watched for .dvw scout files. Required.
	ScoutDir string

	// StateDir is where the ingest ledger lives.
	// Default: {ScoutDir}/.scoutship
	StateDir string

	// DBPath is the SQLite match archive path.
	// Default: {StateDir}/matches.db
	DBPath string

	// ServiceURL is the base URL of the scoutship service. Leave empty
	// to run offline: files are still decoded and archived locally.
	ServiceURL string

	// AuthKey authenticates uploads to the service.
	AuthKey string

	// AgentID identifies this agent installation. Default: hostname.
	AgentID string

	// ScanInterval is how often the scout directory is scanned.
	ScanInterval time.Duration

	// SendInterval is the time trigger for flushing a partial batch.
	SendInterval time.Duration

	// HTTPTimeout is the timeout for service requests.
	HTTPTimeout time.Duration

	// MaxBatchCount flushes the batch when it holds this many matches.
	MaxBatchCount int

	// MaxBatchBytes flushes the batch when payloads reach this size.
	MaxBatchBytes int

	// RetryBase is the initial backoff after a failed upload.
	RetryBase time.Duration

	// RetryMax caps the upload backoff.
	RetryMax time.Duration

	// Meta registers the agent with the service on startup.
	Meta bool

	// Once runs a single scan cycle and exits instead of polling.
	Once bool
}

// SetDefaults fills in default values for unset fields.
func (c *Config) SetDefaults() {
	if c.StateDir == "" && c.ScoutDir != "" {
		c.StateDir = filepath.Join(c.ScoutDir, ".scoutship")
	}
	if c.DBPath == "" && c.StateDir != "" {
		c.DBPath = filepath.Join(c.StateDir, "matches.db")
	}
	if c.AgentID == "" {
		c.AgentID = hostname()
	}
	if c.ScanInterval <= 0 {
		c.ScanInterval = DefaultScanInterval
	}
	if c.SendInterval <= 0 {
		c.SendInterval = DefaultSendInterval
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = DefaultHTTPTimeout
	}
	if c.MaxBatchCount <= 0 {
		c.MaxBatchCount = DefaultMaxBatchCount
	}
	if c.MaxBatchBytes <= 0 {
		c.MaxBatchBytes = DefaultMaxBatchBytes
	}
	if c.RetryBase <= 0 {
		c.RetryBase = DefaultRetryBase
	}
	if c.RetryMax <= 0 {
		c.RetryMax = DefaultRetryMax
	}
}

// Validate checks the configuration for errors. Call SetDefaults
// first.
func (c *Config) Validate() error {
	if c.ScoutDir == "" {
		return domain.ErrMissingScoutDir
	}
	if c.AuthKey != "" && c.ServiceURL == "" {
		return domain.ErrMissingServiceURL
	}
	if c.RetryBase > c.RetryMax {
		return fmt.Errorf("%w: retry base %v exceeds retry max %v",
			domain.ErrInvalidConfig, c.RetryBase, c.RetryMax)
	}
	return nil
}
