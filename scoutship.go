// Package scoutship re-exports the embeddable scout file agent so the
// module path itself is importable.
//
// Example usage:
//
//	cfg := scoutship.Config{
//	    ScoutDir:   "/home/scout/matches",
//	    ServiceURL: "https://api.example.com",
//	    AuthKey:    "your-api-key",
//	}
//	s, err := scoutship.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := s.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Stop()
//
// The full API, including plugins and event handlers, lives in
// pkg/scoutship.
package scoutship

import (
	facade "github.com/bft-labs/scoutship/pkg/scoutship"
)

// Scoutship is the scout file shipping agent.
type Scoutship = facade.Scoutship

// Config holds the configuration for a Scoutship instance.
// Only ScoutDir is required.
type Config = facade.Config

// Option configures a Scoutship instance at construction time.
type Option = facade.Option

// State describes the agent lifecycle state reported by Status.
type State = facade.State

// Lifecycle states.
const (
	StateStopped  = facade.StateStopped
	StateStarting = facade.StateStarting
	StateRunning  = facade.StateRunning
	StateStopping = facade.StateStopping
	StateCrashed  = facade.StateCrashed
)

// New creates a Scoutship instance with the given configuration.
func New(cfg Config, opts ...Option) (*Scoutship, error) {
	return facade.New(cfg, opts...)
}

// Construction options, re-exported from pkg/scoutship.
var (
	WithLogger        = facade.WithLogger
	WithHTTPClient    = facade.WithHTTPClient
	WithEventHandler  = facade.WithEventHandler
	WithPlugin        = facade.WithPlugin
	WithArchiveConfig = facade.WithArchiveConfig
)

// DefaultArchiveConfig returns the archive settings used when archiving
// is enabled without explicit watermarks.
func DefaultArchiveConfig() facade.ArchiveConfig {
	return facade.DefaultArchiveConfig()
}
