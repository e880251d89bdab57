package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RegisterEndpoint is the service path agent metadata is posted to.
const RegisterEndpoint = "/v1/agents/register"

// Metadata identifies the agent to the scoutship service.
type Metadata struct {
	// AgentID uniquely identifies this agent installation
	AgentID string

	// Hostname is the machine the agent runs on
	Hostname string

	// OSArch is the operating system and architecture, e.g. linux/amd64
	OSArch string

	// Version is the agent software version
	Version string

	// AuthKey authenticates the upload
	AuthKey string

	// ServiceURL is the base URL of the scoutship service
	ServiceURL string
}

type agentInfo struct {
	AgentID  string `json:"agent_id"`
	Hostname string `json:"hostname"`
	OSArch   string `json:"os_arch"`
	Version  string `json:"version,omitempty"`
}

// SendMetadata announces the agent to the service. It is called once
// at startup; a failure here does not block ingest.
func SendMetadata(ctx context.Context, client HTTPClient, metadata Metadata) error {
	body, err := json.Marshal(agentInfo{
		AgentID:  metadata.AgentID,
		Hostname: metadata.Hostname,
		OSArch:   metadata.OSArch,
		Version:  metadata.Version,
	})
	if err != nil {
		return fmt.Errorf("marshal agent info: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, metadata.ServiceURL+RegisterEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+metadata.AuthKey)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("register agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("registration rejected: status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
