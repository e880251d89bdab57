// Package configwatcher provides config file monitoring for scoutship.
// When enabled, it watches the agent's config file for changes and
// sends a snapshot to the service.
package configwatcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/scoutship/pkg/scoutship"
)

const configEndpoint = "/v1/ingest/config"

// Error codes for config file issues.
const (
	ErrCodeFileNotFound     = "FILE_NOT_FOUND"
	ErrCodePermissionDenied = "PERMISSION_DENIED"
	ErrCodeReadError        = "READ_ERROR"
)

// Plugin implements config watching functionality.
// It monitors the agent's config file and sends a snapshot to the
// service when it changes, so operators can see what each court
// machine is actually running.
type Plugin struct {
	mu sync.RWMutex

	// Configuration
	configPath    string
	retryInterval time.Duration
	debounceDelay time.Duration

	// Runtime state
	serviceURL string
	agentID    string
	authKey    string
	logger     scoutship.Logger
	httpClient *http.Client
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	debounce   *time.Timer
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// ConfigPath is the config file to watch. The plugin is disabled
	// when empty.
	ConfigPath string

	// RetryInterval is the delay between retries on failure.
	// Default: 5 seconds
	RetryInterval time.Duration

	// DebounceDelay is the delay to wait after a file change before sending.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// HTTPTimeout is the timeout for HTTP requests.
	// Default: 30 seconds
	HTTPTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults. ConfigPath
// stays empty; set it to the file the agent was started with.
func DefaultConfig() Config {
	return Config{
		RetryInterval: 5 * time.Second,
		DebounceDelay: 100 * time.Millisecond,
		HTTPTimeout:   30 * time.Second,
	}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 5 * time.Second
	}
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}

	return &Plugin{
		configPath:    cfg.ConfigPath,
		retryInterval: cfg.RetryInterval,
		debounceDelay: cfg.DebounceDelay,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Initialize sets up the plugin and starts the config watcher.
func (p *Plugin) Initialize(ctx context.Context, cfg scoutship.PluginConfig) error {
	p.mu.Lock()
	p.serviceURL = cfg.ServiceURL
	p.agentID = cfg.AgentID
	p.authKey = cfg.AuthKey
	p.logger = cfg.Logger
	p.mu.Unlock()

	if p.configPath == "" || p.serviceURL == "" {
		p.logger.Warn("config watcher disabled: config path or service URL not configured")
		return nil
	}

	// Create cancellable context for the watcher loop
	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("config watcher plugin initialized")

	// Start watcher loop
	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	return nil
}

// Shutdown stops the config watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	return nil
}

// watchLoop watches for config file changes. The parent directory is
// watched rather than the file itself so editors that replace the file
// are still seen.
func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("config watcher: failed to create watcher")
		return
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(p.configPath)); err != nil {
		p.logger.Error("config watcher: failed to watch directory")
		// Still try to send initial config
		p.sendConfigWithRetry(ctx)
		return
	}

	// Send initial config
	p.sendConfigWithRetry(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(p.configPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceSend(ctx, p.debounceDelay)

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("config watcher: watcher error")
		}
	}
}

func (p *Plugin) debounceSend(ctx context.Context, delay time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}

	p.debounce = time.AfterFunc(delay, func() {
		p.sendConfigWithRetry(ctx)
	})
}

func (p *Plugin) configURL() string { return p.serviceURL + configEndpoint }

// buildMultipartPayload builds multipart form-data with the config file.
func (p *Plugin) buildMultipartPayload() (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	writer.WriteField("captured_at", time.Now().UTC().Format(time.RFC3339Nano))

	content, readErr := p.readFile(p.configPath)
	if readErr != nil {
		writer.WriteField("config_error", p.errorToCode(readErr))
	} else if part, err := writer.CreateFormFile("config", filepath.Base(p.configPath)); err == nil {
		part.Write([]byte(content))
	}

	contentType := writer.FormDataContentType()
	writer.Close()

	return &buf, contentType
}

// sendConfigWithRetry retries until success or context cancellation.
func (p *Plugin) sendConfigWithRetry(ctx context.Context) {
	retryCount := 0

	snapshot, contentType := p.buildMultipartPayload()
	snapshotBytes := snapshot.Bytes()

	for {
		reader := bytes.NewReader(snapshotBytes)

		if err := p.send(ctx, reader, contentType); err == nil {
			if retryCount > 0 {
				p.logger.Info("config watcher: sent configuration update after retries")
			} else {
				p.logger.Info("config watcher: sent configuration update")
			}
			return
		}

		// Failure - log and retry
		retryCount++
		p.logger.Error("config watcher: send failed")

		select {
		case <-ctx.Done():
			p.logger.Info("config watcher: stopping retry due to context cancellation")
			return
		case <-time.After(p.retryInterval):
			// Continue to next retry
		}
	}
}

func (p *Plugin) readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (p *Plugin) errorToCode(err error) string {
	if os.IsNotExist(err) {
		return ErrCodeFileNotFound
	}
	if os.IsPermission(err) {
		return ErrCodePermissionDenied
	}
	if strings.Contains(err.Error(), "permission denied") {
		return ErrCodePermissionDenied
	}
	return ErrCodeReadError
}

func (p *Plugin) send(ctx context.Context, body io.Reader, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.configURL(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Scoutship-Agent-Id", p.agentID)
	if p.authKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.authKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// Ensure Plugin implements scoutship.Plugin.
var _ scoutship.Plugin = (*Plugin)(nil)
