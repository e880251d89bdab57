package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	ScoutDir   string `toml:"scout_dir"`
	StateDir   string `toml:"state_dir"`
	DBPath     string `toml:"db_path"`
	ServiceURL string `toml:"service_url"`
	AuthKey    string `toml:"auth_key"`
	AgentID    string `toml:"agent_id"`

	ScanInterval string `toml:"scan_interval"`
	SendInterval string `toml:"send_interval"`
	HTTPTimeout  string `toml:"http_timeout"`
	RetryBase    string `toml:"retry_base"`
	RetryMax     string `toml:"retry_max"`

	MaxBatchCount int `toml:"max_batch_count"`
	MaxBatchBytes int `toml:"max_batch_bytes"`

	Meta *bool `toml:"meta"`
	Once *bool `toml:"once"`

	ArchiveEnabled       *bool  `toml:"archive_enabled"`
	ArchiveHighWatermark int64  `toml:"archive_high_watermark"`
	ArchiveLowWatermark  int64  `toml:"archive_low_watermark"`
	ArchiveCheckInterval string `toml:"archive_check_interval"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.scoutship/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".scoutship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("scout-dir", fc.ScoutDir, &cfg.ScoutDir)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("db-path", fc.DBPath, &cfg.DBPath)
	s.setString("service-url", fc.ServiceURL, &cfg.ServiceURL)
	s.setString("auth-key", fc.AuthKey, &cfg.AuthKey)
	s.setString("agent-id", fc.AgentID, &cfg.AgentID)

	if err := s.setDuration("scan-interval", fc.ScanInterval, &cfg.ScanInterval); err != nil {
		return err
	}
	if err := s.setDuration("send-interval", fc.SendInterval, &cfg.SendInterval); err != nil {
		return err
	}
	if err := s.setDuration("http-timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("retry-base", fc.RetryBase, &cfg.RetryBase); err != nil {
		return err
	}
	if err := s.setDuration("retry-max", fc.RetryMax, &cfg.RetryMax); err != nil {
		return err
	}
	if err := s.setDuration("archive-check", fc.ArchiveCheckInterval, &cfg.ArchiveCheckInterval); err != nil {
		return err
	}

	s.setInt("max-batch-count", fc.MaxBatchCount, &cfg.MaxBatchCount)
	s.setInt("max-batch-bytes", fc.MaxBatchBytes, &cfg.MaxBatchBytes)
	s.setInt64("archive-high", fc.ArchiveHighWatermark, &cfg.ArchiveHighWatermark)
	s.setInt64("archive-low", fc.ArchiveLowWatermark, &cfg.ArchiveLowWatermark)

	s.setBool("meta", fc.Meta, &cfg.Meta)
	s.setBool("once", fc.Once, &cfg.Once)
	s.setBool("archive", fc.ArchiveEnabled, &cfg.ArchiveEnabled)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
