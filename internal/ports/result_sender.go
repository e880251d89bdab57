package ports

import (
	"context"

	"github.com/bft-labs/scoutship/internal/domain"
)

// ResultSender transmits match batches to the ingestion service.
// Implementations handle serialization, HTTP communication, and authentication.
type ResultSender interface {
	// Send transmits a batch of decoded matches to the remote service.
	// Returns nil on success, error on failure.
	// The implementation should handle retries with backoff internally
	// or return an error for the caller to handle.
	Send(ctx context.Context, batch *domain.Batch, metadata SendMetadata) error
}

// SendMetadata provides context for the send operation.
// This information is included in HTTP headers for server-side tracking.
type SendMetadata struct {
	// AgentID identifies this agent installation
	AgentID string

	// Hostname is the agent's hostname
	Hostname string

	// OSArch is the operating system and architecture (e.g., "linux/amd64")
	OSArch string

	// AuthKey is the API authentication key
	AuthKey string

	// ServiceURL is the base URL of the ingestion service
	ServiceURL string
}
