package configwatcher

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/scoutship/pkg/scoutship"
)

// TestPlugin_EndpointPath verifies that the plugin posts to the config
// ingest endpoint the backend exposes.
func TestPlugin_EndpointPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte(`scout_dir = "/matches"`), 0644); err != nil {
		t.Fatalf("Failed to create config.toml: %v", err)
	}

	var requestPath string
	var mu sync.Mutex

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requestPath = r.URL.Path
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	plugin := New(Config{
		ConfigPath:    configPath,
		RetryInterval: 100 * time.Millisecond,
		DebounceDelay: 10 * time.Millisecond,
		HTTPTimeout:   5 * time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, scoutship.PluginConfig{
		ServiceURL: ts.URL,
		AgentID:    "test-agent",
		AuthKey:    "test-key",
		Logger:     &noopLogger{},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	// Wait for initial config send
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	path := requestPath
	mu.Unlock()

	expectedPath := "/v1/ingest/config"
	if path != expectedPath {
		t.Errorf("Request path = %q, want %q", path, expectedPath)
	}

	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestPlugin_SendsConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	configToml := `scout_dir = "/matches/season-2025"
service_url = "https://collect.example.com"
`
	if err := os.WriteFile(configPath, []byte(configToml), 0644); err != nil {
		t.Fatalf("Failed to create config.toml: %v", err)
	}

	var mu sync.Mutex
	var receivedConfig string
	var receivedHeaders http.Header

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		receivedHeaders = r.Header.Clone()

		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("Content-Type = %v, want multipart/form-data", r.Header.Get("Content-Type"))
		}

		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Errorf("Failed to parse multipart form: %v", err)
		}

		if file, _, err := r.FormFile("config"); err == nil {
			data, _ := io.ReadAll(file)
			receivedConfig = string(data)
			file.Close()
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	cfg := DefaultConfig()
	cfg.ConfigPath = configPath
	plugin := New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, scoutship.PluginConfig{
		ServiceURL: ts.URL,
		AgentID:    "court-pc-1",
		AuthKey:    "secret",
		Logger:     &noopLogger{},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	config := receivedConfig
	headers := receivedHeaders
	mu.Unlock()

	// Verify headers
	if headers.Get("X-Scoutship-Agent-Id") != "court-pc-1" {
		t.Errorf("Agent-Id header = %v, want court-pc-1", headers.Get("X-Scoutship-Agent-Id"))
	}
	if headers.Get("Authorization") != "Bearer secret" {
		t.Errorf("Authorization header = %v, want Bearer secret", headers.Get("Authorization"))
	}

	// Verify config file was received
	if config != configToml {
		t.Errorf("Config content = %q, want %q", config, configToml)
	}

	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestPlugin_MissingFile(t *testing.T) {
	// Point at a file that does not exist
	configPath := filepath.Join(t.TempDir(), "config.toml")

	var mu sync.Mutex
	var receivedError string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		if err := r.ParseMultipartForm(10 << 20); err != nil {
			return
		}

		receivedError = r.FormValue("config_error")

		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	cfg := DefaultConfig()
	cfg.ConfigPath = configPath
	plugin := New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, scoutship.PluginConfig{
		ServiceURL: ts.URL,
		AgentID:    "test-agent",
		Logger:     &noopLogger{},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	configErr := receivedError
	mu.Unlock()

	if configErr != ErrCodeFileNotFound {
		t.Errorf("ConfigError = %v, want %v", configErr, ErrCodeFileNotFound)
	}

	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestPlugin_DetectsFileChange(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("scan_interval = \"30s\"\n"), 0644); err != nil {
		t.Fatalf("Failed to create config.toml: %v", err)
	}

	var mu sync.Mutex
	var requestCount int

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requestCount++
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	plugin := New(Config{
		ConfigPath:    configPath,
		RetryInterval: 100 * time.Millisecond,
		DebounceDelay: 10 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, scoutship.PluginConfig{
		ServiceURL: ts.URL,
		AgentID:    "test-agent",
		Logger:     &noopLogger{},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	// Wait for the initial snapshot
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	initial := requestCount
	mu.Unlock()
	if initial == 0 {
		t.Fatal("Expected initial config snapshot")
	}

	// Modify the config file
	if err := os.WriteFile(configPath, []byte("scan_interval = \"10s\"\n"), 0644); err != nil {
		t.Fatalf("Failed to modify config.toml: %v", err)
	}

	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	after := requestCount
	mu.Unlock()

	if after <= initial {
		t.Errorf("Expected another snapshot after change, count stayed at %d", after)
	}

	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestPlugin_Name(t *testing.T) {
	plugin := New(DefaultConfig())
	if plugin.Name() != "configwatcher" {
		t.Errorf("Name() = %v, want configwatcher", plugin.Name())
	}
}

func TestPlugin_DisabledWhenPathEmpty(t *testing.T) {
	var requestCount int
	var mu sync.Mutex

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requestCount++
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	// No ConfigPath - should be disabled
	plugin := New(DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, scoutship.PluginConfig{
		ServiceURL: ts.URL,
		AgentID:    "test-agent",
		Logger:     &noopLogger{},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	count := requestCount
	mu.Unlock()

	if count != 0 {
		t.Errorf("Expected 0 requests when disabled, got %d", count)
	}

	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

// noopLogger implements scoutship.Logger for testing
type noopLogger struct{}

func (noopLogger) Debug(msg string, fields ...scoutship.LogField) {}
func (noopLogger) Info(msg string, fields ...scoutship.LogField)  {}
func (noopLogger) Warn(msg string, fields ...scoutship.LogField)  {}
func (noopLogger) Error(msg string, fields ...scoutship.LogField) {}
