package archiver

import "github.com/bft-labs/scoutship/pkg/scoutship"

// WithArchiver returns a scoutship Option that enables automatic scout
// file archiving. When enabled, the plugin periodically checks the
// scout directory size and compresses the oldest ingested files when it
// exceeds the configured high watermark.
//
// Usage:
//
//	s, err := scoutship.New(cfg,
//	    archiver.WithArchiver(archiver.Config{
//	        CheckInterval: 12 * time.Hour,
//	        HighWatermark: 512 << 20, // 512 MiB
//	        LowWatermark:  256 << 20, // 256 MiB
//	    }),
//	)
func WithArchiver(cfg Config) scoutship.Option {
	plugin := New(cfg)
	return scoutship.WithPlugin(plugin)
}

// WithDefaultArchiver returns a scoutship Option that enables archiving
// with default settings (check every 12h, high watermark 512MiB, low
// watermark 256MiB).
//
// Usage:
//
//	s, err := scoutship.New(cfg, archiver.WithDefaultArchiver())
func WithDefaultArchiver() scoutship.Option {
	return WithArchiver(DefaultConfig())
}
