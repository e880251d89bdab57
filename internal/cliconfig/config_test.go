package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ScanInterval != 30*time.Second {
		t.Errorf("ScanInterval = %v, want 30s", cfg.ScanInterval)
	}
	if cfg.SendInterval != time.Minute {
		t.Errorf("SendInterval = %v, want 1m", cfg.SendInterval)
	}
	if cfg.MaxBatchCount != 16 {
		t.Errorf("MaxBatchCount = %v, want 16", cfg.MaxBatchCount)
	}
	if cfg.MaxBatchBytes != 4<<20 {
		t.Errorf("MaxBatchBytes = %v, want 4MB", cfg.MaxBatchBytes)
	}
	if !cfg.Meta {
		t.Error("Meta = false, want true")
	}
	if cfg.Once {
		t.Error("Once = true, want false")
	}
	if cfg.ArchiveEnabled {
		t.Error("ArchiveEnabled = true, want false")
	}
	if cfg.ArchiveHighWatermark != 512<<20 {
		t.Errorf("ArchiveHighWatermark = %v, want 512MiB", cfg.ArchiveHighWatermark)
	}
	if cfg.ServiceURL != "" {
		t.Errorf("ServiceURL = %v, want empty (offline by default)", cfg.ServiceURL)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid minimal config",
			config: Config{
				ScoutDir:     "/tmp/matches",
				ScanInterval: time.Second,
				SendInterval: time.Second,
			},
			wantErr: false,
		},
		{
			name: "missing scout dir",
			config: Config{
				ScanInterval: time.Second,
				SendInterval: time.Second,
			},
			wantErr: true,
		},
		{
			name: "auth key without service url",
			config: Config{
				ScoutDir:     "/tmp/matches",
				AuthKey:      "secret",
				ScanInterval: time.Second,
				SendInterval: time.Second,
			},
			wantErr: true,
		},
		{
			name: "valid with service url and auth key",
			config: Config{
				ScoutDir:     "/tmp/matches",
				ServiceURL:   "http://localhost:8080",
				AuthKey:      "secret",
				ScanInterval: time.Second,
				SendInterval: time.Second,
			},
			wantErr: false,
		},
		{
			name: "invalid scan interval",
			config: Config{
				ScoutDir:     "/tmp/matches",
				ScanInterval: -1,
				SendInterval: time.Second,
			},
			wantErr: true,
		},
		{
			name: "retry base exceeds retry max",
			config: Config{
				ScoutDir:     "/tmp/matches",
				ScanInterval: time.Second,
				SendInterval: time.Second,
				RetryBase:    time.Minute,
				RetryMax:     time.Second,
			},
			wantErr: true,
		},
		{
			name: "inverted archive watermarks",
			config: Config{
				ScoutDir:             "/tmp/matches",
				ScanInterval:         time.Second,
				SendInterval:         time.Second,
				ArchiveEnabled:       true,
				ArchiveHighWatermark: 1 << 20,
				ArchiveLowWatermark:  2 << 20,
			},
			wantErr: true,
		},
		{
			name: "inverted watermarks ignored when archive disabled",
			config: Config{
				ScoutDir:             "/tmp/matches",
				ScanInterval:         time.Second,
				SendInterval:         time.Second,
				ArchiveEnabled:       false,
				ArchiveHighWatermark: 1 << 20,
				ArchiveLowWatermark:  2 << 20,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_Derivations(t *testing.T) {
	// StateDir and DBPath derive from ScoutDir
	c1 := Config{
		ScoutDir:     "/matches",
		ScanInterval: time.Second,
		SendInterval: time.Second,
	}
	if err := c1.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if c1.StateDir != "/matches/.scoutship" {
		t.Errorf("StateDir = %v, want /matches/.scoutship", c1.StateDir)
	}
	if c1.DBPath != "/matches/.scoutship/matches.db" {
		t.Errorf("DBPath = %v, want /matches/.scoutship/matches.db", c1.DBPath)
	}

	// Trailing slash is trimmed from the service URL
	c2 := Config{
		ScoutDir:     "/matches",
		ServiceURL:   "http://api.example.com/v1/ingest/",
		ScanInterval: time.Second,
		SendInterval: time.Second,
	}
	if err := c2.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if c2.ServiceURL != "http://api.example.com/v1/ingest" {
		t.Errorf("ServiceURL = %v, want trailing slash trimmed", c2.ServiceURL)
	}

	// Explicit StateDir is respected, DBPath derives under it
	c3 := Config{
		ScoutDir:     "/matches",
		StateDir:     "/state",
		ScanInterval: time.Second,
		SendInterval: time.Second,
	}
	if err := c3.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if c3.StateDir != "/state" {
		t.Errorf("StateDir = %v, want /state", c3.StateDir)
	}
	if c3.DBPath != "/state/matches.db" {
		t.Errorf("DBPath = %v, want /state/matches.db", c3.DBPath)
	}
}
