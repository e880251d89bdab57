package scoutship

import (
	"net/http"

	"github.com/bft-labs/scoutship/internal/ports"
	"github.com/bft-labs/scoutship/pkg/log"
	"github.com/bft-labs/scoutship/pkg/sender"
)

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Logger is the interface for structured logging.
type Logger = log.Logger

// LogField represents a structured log field.
type LogField = log.Field

// Re-export types from sub-packages for convenient access.
// Users can also import the sub-packages directly.
type (
	// SenderMetadata is the Metadata type from pkg/sender.
	SenderMetadata = sender.Metadata

	// SenderHTTPClient is the HTTPClient interface from pkg/sender.
	SenderHTTPClient = sender.HTTPClient
)

// Option configures optional behavior of Scoutship.
type Option func(*options)

// options holds the optional configuration for a Scoutship instance.
type options struct {
	httpClient    ports.HTTPClient
	logger        ports.Logger
	eventHandler  EventHandler
	plugins       []Plugin
	archiveConfig *ArchiveConfig
}

// defaultOptions returns options with sensible defaults.
func defaultOptions(client *http.Client) options {
	return options{
		httpClient:   client,
		logger:       log.NewNoopLogger(),
		eventHandler: nil,
		plugins:      nil,
	}
}

// WithHTTPClient sets a custom HTTP client for service communication.
// If not provided, a default client with the configured timeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for scoutship events.
// Events are called synchronously from the ingest goroutine.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when Scoutship
// starts. Plugins are initialized in registration order and shut down
// in reverse order. Use this for custom plugins; built-in plugins ship
// their own options, like configwatcher.WithConfigWatcher() or
// archiver.WithArchiver().
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
