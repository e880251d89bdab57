package configwatcher

import "github.com/bft-labs/scoutship/pkg/scoutship"

// WithConfigWatcher returns a scoutship Option that enables config file
// watching. When enabled, the plugin monitors the given config file for
// changes and sends snapshots to the service.
//
// Usage:
//
//	s, err := scoutship.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        ConfigPath:    "/home/scout/.scoutship/config.toml",
//	        RetryInterval: 5 * time.Second,
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithConfigWatcher(cfg Config) scoutship.Option {
	plugin := New(cfg)
	return scoutship.WithPlugin(plugin)
}

// WithConfigWatcherAt returns a scoutship Option that watches the given
// config file with default settings (retry every 5s, debounce 100ms).
//
// Usage:
//
//	s, err := scoutship.New(cfg, configwatcher.WithConfigWatcherAt(path))
func WithConfigWatcherAt(path string) scoutship.Option {
	cfg := DefaultConfig()
	cfg.ConfigPath = path
	return WithConfigWatcher(cfg)
}
