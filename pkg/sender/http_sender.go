package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// IngestEndpoint is the service path matches are uploaded to.
const IngestEndpoint = "/v1/ingest/matches"

type manifest struct {
	AgentID    string          `json:"agent_id"`
	Hostname   string          `json:"hostname"`
	OSArch     string          `json:"os_arch"`
	MatchCount int             `json:"match_count"`
	TotalBytes int             `json:"total_bytes"`
	Matches    []ManifestEntry `json:"matches"`
}

// HTTPSender uploads matches as a multipart request: a "manifest" form
// field describing the batch and a "matches" file part holding the
// decoded matches as a JSON array.
type HTTPSender struct {
	client HTTPClient
}

// NewHTTPSender creates a sender using the given HTTP client.
func NewHTTPSender(client HTTPClient) *HTTPSender {
	return &HTTPSender{client: client}
}

// Send uploads the batch. Any non-2xx response is an error carrying
// the status and response body.
func (s *HTTPSender) Send(ctx context.Context, matches []MatchData, metadata Metadata) error {
	if len(matches) == 0 {
		return nil
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	m := manifest{
		AgentID:    metadata.AgentID,
		Hostname:   metadata.Hostname,
		OSArch:     metadata.OSArch,
		MatchCount: len(matches),
		Matches:    make([]ManifestEntry, 0, len(matches)),
	}
	payloads := make([]json.RawMessage, 0, len(matches))
	for _, match := range matches {
		m.TotalBytes += len(match.Payload)
		m.Matches = append(m.Matches, match.Meta)
		payloads = append(payloads, json.RawMessage(match.Payload))
	}

	manifestJSON, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := writer.WriteField("manifest", string(manifestJSON)); err != nil {
		return fmt.Errorf("write manifest field: %w", err)
	}

	part, err := writer.CreateFormFile("matches", "matches.json")
	if err != nil {
		return fmt.Errorf("create matches part: %w", err)
	}
	data, err := json.Marshal(payloads)
	if err != nil {
		return fmt.Errorf("marshal matches: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write matches part: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, metadata.ServiceURL+IngestEndpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+metadata.AuthKey)
	req.Header.Set("X-Agent-Hostname", metadata.Hostname)
	req.Header.Set("X-Agent-OSArch", metadata.OSArch)
	req.Header.Set("X-Scoutship-Agent-Id", metadata.AgentID)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send matches: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upload rejected: status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
