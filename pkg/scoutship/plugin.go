package scoutship

import "context"

// Plugin extends scoutship with optional functionality that follows
// the agent lifecycle. Plugins are initialized in registration order
// when Start() is called and shut down in reverse order on Stop().
type Plugin interface {
	// Name identifies the plugin in logs.
	Name() string

	// Initialize prepares the plugin. The context is the agent's run
	// context; long-running work should start a goroutine and watch it.
	// Returning an error aborts startup.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown releases plugin resources. Called even when other
	// plugins fail to shut down.
	Shutdown(ctx context.Context) error
}

// PluginConfig is the agent configuration handed to plugins during
// initialization.
type PluginConfig struct {
	// ScoutDir is the directory watched for scout files
	ScoutDir string

	// StateDir is where the ingest ledger lives
	StateDir string

	// DBPath is the match archive database path
	DBPath string

	// ServiceURL is the base URL of the scoutship service
	ServiceURL string

	// AgentID identifies this agent installation
	AgentID string

	// AuthKey authenticates service requests
	AuthKey string

	// Logger is the agent's logger
	Logger Logger
}

// BasePlugin provides a Name and no-op lifecycle methods. Embed it to
// implement only the methods you need.
type BasePlugin struct {
	name string
}

// NewBasePlugin creates a BasePlugin with the given name.
func NewBasePlugin(name string) BasePlugin {
	return BasePlugin{name: name}
}

// Name returns the plugin name.
func (p BasePlugin) Name() string { return p.name }

// Initialize does nothing.
func (p BasePlugin) Initialize(ctx context.Context, cfg PluginConfig) error { return nil }

// Shutdown does nothing.
func (p BasePlugin) Shutdown(ctx context.Context) error { return nil }
