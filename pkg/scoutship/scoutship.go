package scoutship

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/bft-labs/scoutship/internal/adapters/fs"
	httpAdapter "github.com/bft-labs/scoutship/internal/adapters/http"
	"github.com/bft-labs/scoutship/internal/adapters/sqlite"
	"github.com/bft-labs/scoutship/internal/app"
	"github.com/bft-labs/scoutship/internal/domain"
	"github.com/bft-labs/scoutship/internal/ports"
	"github.com/bft-labs/scoutship/pkg/dvw"
	"github.com/bft-labs/scoutship/pkg/log"
	"github.com/bft-labs/scoutship/pkg/sender"
	"github.com/bft-labs/scoutship/pkg/state"
)

// Scoutship is a scout file ingest agent that can be embedded in other
// applications. Use New() to create an instance, then Start() to begin
// watching the scout directory.
type Scoutship struct {
	config    Config
	opts      options
	lifecycle *app.Lifecycle
	logger    ports.Logger
	emitter   eventEmitterWrapper

	source    ports.FileSource
	stateRepo ports.StateRepository
	sender    ports.ResultSender

	// store is open while the agent runs
	store ports.MatchStore
	agent *app.Agent

	// Plugin support
	plugins []Plugin

	// Archive runner (config-based, not a plugin)
	archive *archiveRunner

	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Scoutship instance with the given configuration.
// The instance is created in StateStopped; call Start() to begin
// ingesting. Returns an error if configuration is invalid.
func New(cfg Config, opts ...Option) (*Scoutship, error) {
	// Set defaults
	cfg.SetDefaults()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Validate module version compatibility
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	// Apply options
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	o := defaultOptions(httpClient)
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger
	var logger ports.Logger
	if o.logger != nil {
		logger = o.logger
	} else {
		logger = log.NewNoopLogger()
	}

	s := &Scoutship{
		config:  cfg,
		opts:    o,
		logger:  logger,
		plugins: o.plugins,
	}
	if o.eventHandler != nil {
		s.emitter = eventEmitterWrapper{handler: o.eventHandler}
	}

	// Create lifecycle manager
	s.lifecycle = app.NewLifecycle(logger, &s.emitter)

	// Create adapters from the configuration
	s.buildComponents()

	return s, nil
}

// buildComponents derives the adapters from the current configuration.
// Called from New and again from ReloadConfig.
func (s *Scoutship) buildComponents() {
	s.source = fs.NewDirScanner(s.config.ScoutDir)
	s.stateRepo = state.NewFileRepository(s.config.StateDir)
	s.sender = httpAdapter.NewResultSender(sender.NewHTTPSender(s.opts.httpClient), s.logger)

	if s.opts.archiveConfig != nil && s.opts.archiveConfig.Enabled {
		s.archive = newArchiveRunner(*s.opts.archiveConfig, s.config.ScoutDir, s.config.StateDir, s.logger)
	} else {
		s.archive = nil
	}
}

// Start begins ingesting in the background.
// Returns immediately after starting the ingest goroutine.
// Returns an error if already running or if startup fails.
// The provided context is used for the lifetime of the ingest loop.
func (s *Scoutship) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}

	// Transition to starting
	if err := s.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	// Create cancellable context
	runCtx, cancel := context.WithCancel(ctx)
	s.ctx = runCtx
	s.cancel = cancel
	s.lifecycle.SetCancel(cancel)

	// Initialize plugins
	pluginCfg := PluginConfig{
		ScoutDir:   s.config.ScoutDir,
		StateDir:   s.config.StateDir,
		DBPath:     s.config.DBPath,
		ServiceURL: s.config.ServiceURL,
		AgentID:    s.config.AgentID,
		AuthKey:    s.config.AuthKey,
		Logger:     s.logger,
	}
	for _, p := range s.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			s.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			cancel()
			_ = s.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return err
		}
		s.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}

	// Open the match archive
	if err := os.MkdirAll(s.config.StateDir, 0o755); err != nil {
		cancel()
		_ = s.lifecycle.TransitionTo(app.StateCrashed, "state dir create failed")
		return fmt.Errorf("create state dir: %w", err)
	}
	store, err := sqlite.Open(s.config.DBPath)
	if err != nil {
		cancel()
		_ = s.lifecycle.TransitionTo(app.StateCrashed, "match archive open failed")
		return err
	}
	s.store = store

	// Create agent config
	agentCfg := app.AgentConfig{
		ScanInterval:  s.config.ScanInterval,
		SendInterval:  s.config.SendInterval,
		MaxBatchCount: s.config.MaxBatchCount,
		MaxBatchBytes: s.config.MaxBatchBytes,
		RetryBase:     s.config.RetryBase,
		RetryMax:      s.config.RetryMax,
		Once:          s.config.Once,
		AgentID:       s.config.AgentID,
		Hostname:      hostname(),
		OSArch:        runtime.GOOS + "/" + runtime.GOARCH,
		AuthKey:       s.config.AuthKey,
		ServiceURL:    s.config.ServiceURL,
	}
	s.agent = app.NewAgent(agentCfg, s.source, store, s.sender, s.stateRepo, s.logger, &s.emitter)

	// Announce the agent to the service
	if s.config.Meta && s.config.ServiceURL != "" {
		if err := sender.SendMetadata(runCtx, s.opts.httpClient, sender.Metadata{
			AgentID:    s.config.AgentID,
			Hostname:   agentCfg.Hostname,
			OSArch:     agentCfg.OSArch,
			Version:    Version,
			AuthKey:    s.config.AuthKey,
			ServiceURL: s.config.ServiceURL,
		}); err != nil {
			s.logger.Warn("agent registration failed", ports.Err(err))
		}
	}

	// Start archive runner if configured
	if s.archive != nil {
		s.archive.start(runCtx)
	}

	// Start the agent in a goroutine
	s.lifecycle.AddWorker()
	go func() {
		defer s.lifecycle.WorkerDone()

		// Transition to running
		if err := s.lifecycle.TransitionTo(app.StateRunning, "agent starting"); err != nil {
			s.logger.Error("failed to transition to running", ports.Err(err))
			return
		}

		// Run the ingest loop
		err := s.agent.Run(runCtx)

		// Handle completion
		if err != nil && err != context.Canceled {
			s.logger.Error("agent error", ports.Err(err))
			_ = s.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		}
	}()

	return nil
}

// Stop gracefully shuts down the agent.
// Flushes pending batches, persists the ledger, and closes the match
// archive. Waits up to 30 seconds before forcing shutdown.
// Returns nil on graceful shutdown, ErrShutdownTimeout if forced.
func (s *Scoutship) Stop() error {
	s.mu.Lock()

	if !s.lifecycle.CanStop() {
		s.mu.Unlock()
		return domain.ErrNotRunning
	}

	// Transition to stopping
	if err := s.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		s.mu.Unlock()
		return err
	}

	// Cancel the context
	if s.cancel != nil {
		s.cancel()
	}

	s.mu.Unlock()

	// Wait for workers with timeout
	err := s.lifecycle.WaitWithTimeout(app.ShutdownTimeout)

	// Stop archive runner
	if s.archive != nil {
		s.archive.stop()
	}

	// Shutdown plugins (in reverse order)
	shutdownCtx := context.Background()
	for i := len(s.plugins) - 1; i >= 0; i-- {
		p := s.plugins[i]
		if shutdownErr := p.Shutdown(shutdownCtx); shutdownErr != nil {
			s.logger.Error("plugin shutdown failed",
				ports.String("plugin", p.Name()),
				ports.Err(shutdownErr))
		} else {
			s.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
		}
	}

	// Close the match archive
	s.mu.Lock()
	if s.store != nil {
		if closeErr := s.store.Close(); closeErr != nil {
			s.logger.Error("failed to close match archive", ports.Err(closeErr))
		}
		s.store = nil
	}
	s.mu.Unlock()

	// Transition to stopped
	if err != nil {
		_ = s.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = s.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}

	return err
}

// Wait blocks until the ingest goroutine has exited. Useful with
// Config.Once to wait for the single pass to finish before stopping.
func (s *Scoutship) Wait() {
	s.lifecycle.Wait()
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (s *Scoutship) Status() State {
	return convertState(s.lifecycle.State())
}

// ReloadConfig replaces the configuration. The agent must be stopped;
// the new configuration takes effect on the next Start.
func (s *Scoutship) ReloadConfig(cfg Config) error {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}

	s.config = cfg
	s.buildComponents()
	return nil
}

// hostname returns the current hostname.
func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnFileIngested(file, matchID, status string) {
	if e.handler == nil {
		return
	}
	e.handler.OnFileIngested(FileIngestedEvent{
		File:    file,
		MatchID: matchID,
		Status:  status,
	})
}

func (e *eventEmitterWrapper) OnSendSuccess(matchCount, bytesSent int, duration time.Duration) {
	if e.handler == nil {
		return
	}
	e.handler.OnSendSuccess(SendSuccessEvent{
		MatchCount: matchCount,
		BytesSent:  bytesSent,
		Duration:   duration,
	})
}

func (e *eventEmitterWrapper) OnSendError(err error, matchCount int, retryable bool) {
	if e.handler == nil {
		return
	}
	e.handler.OnSendError(SendErrorEvent{
		Error:      err,
		MatchCount: matchCount,
		Retryable:  retryable,
	})
}

func convertState(s app.State) State {
	switch s {
	case app.StateStopped:
		return StateStopped
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}

// validateModuleVersions checks that all module versions are compatible.
// Returns an error if any module version is below its minimum compatible version.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"dvw":    {dvw.Version, dvw.MinCompatibleVersion},
		"sender": {sender.Version, sender.MinCompatibleVersion},
		"state":  {state.Version, state.MinCompatibleVersion},
		"log":    {log.Version, log.MinCompatibleVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}

	return nil
}

// isVersionCompatible checks if version >= minVersion using semantic versioning.
// Assumes versions are in format "major.minor.patch".
func isVersionCompatible(version, minVersion string) bool {
	// Parse versions (simplified semver comparison)
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
