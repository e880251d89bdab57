package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds CLI configuration for scoutship.
type Config struct {
	ScoutDir string
	StateDir string
	DBPath   string

	ServiceURL string
	AuthKey    string
	AgentID    string

	ScanInterval time.Duration
	SendInterval time.Duration
	HTTPTimeout  time.Duration

	MaxBatchCount int
	MaxBatchBytes int

	RetryBase time.Duration
	RetryMax  time.Duration

	Meta bool
	Once bool

	ArchiveEnabled       bool
	ArchiveHighWatermark int64
	ArchiveLowWatermark  int64
	ArchiveCheckInterval time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ScanInterval:         30 * time.Second,
		SendInterval:         time.Minute,
		HTTPTimeout:          30 * time.Second,
		MaxBatchCount:        16,
		MaxBatchBytes:        4 << 20, // 4MiB
		RetryBase:            time.Second,
		RetryMax:             2 * time.Minute,
		Meta:                 true,
		ArchiveCheckInterval: 12 * time.Hour,
		ArchiveHighWatermark: 512 << 20,
		ArchiveLowWatermark:  256 << 20,
		StateDir:             "", // Derived from ScoutDir during Validate
		AuthKey:              os.Getenv("SCOUTSHIP_AUTH_KEY"),
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.ScoutDir == "" {
		return fmt.Errorf("scout-dir is required")
	}

	if c.StateDir == "" {
		c.StateDir = filepath.Join(c.ScoutDir, DefaultStateDirName)
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.StateDir, DefaultDBFileName)
	}

	// Ensure no trailing slash
	if len(c.ServiceURL) > 0 && c.ServiceURL[len(c.ServiceURL)-1] == '/' {
		c.ServiceURL = c.ServiceURL[:len(c.ServiceURL)-1]
	}

	if c.AuthKey != "" && c.ServiceURL == "" {
		return fmt.Errorf("service-url is required when auth-key is set")
	}

	if c.ScanInterval <= 0 {
		return fmt.Errorf("scan interval must be positive")
	}
	if c.SendInterval <= 0 {
		return fmt.Errorf("send interval must be positive")
	}
	if c.RetryBase > c.RetryMax {
		return fmt.Errorf("retry-base %v exceeds retry-max %v", c.RetryBase, c.RetryMax)
	}
	if c.ArchiveEnabled && c.ArchiveLowWatermark > c.ArchiveHighWatermark {
		return fmt.Errorf("archive-low %d exceeds archive-high %d", c.ArchiveLowWatermark, c.ArchiveHighWatermark)
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt64 sets an int64 value if positive and flag not changed.
func (s *configSetter) setInt64(flag string, value int64, dst *int64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setInt64FromString parses a string to int64 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setInt64FromString(flag, value string, dst *int64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
