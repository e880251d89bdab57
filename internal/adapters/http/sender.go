// Package http adapts the sender module to the agent's ports.
package http

import (
	"context"

	"github.com/bft-labs/scoutship/internal/domain"
	"github.com/bft-labs/scoutship/internal/ports"
	"github.com/bft-labs/scoutship/pkg/sender"
)

// ResultSender implements ports.ResultSender on top of sender.Sender.
type ResultSender struct {
	sender sender.Sender
	logger ports.Logger
}

// NewResultSender creates a new result sender adapter.
func NewResultSender(s sender.Sender, logger ports.Logger) *ResultSender {
	return &ResultSender{
		sender: s,
		logger: logger,
	}
}

// Send uploads a batch of decoded matches to the remote service.
func (s *ResultSender) Send(ctx context.Context, batch *domain.Batch, metadata ports.SendMetadata) error {
	if batch.Empty() {
		return nil
	}

	matches := make([]sender.MatchData, 0, len(batch.Results))
	for i, result := range batch.Results {
		matches = append(matches, sender.MatchData{
			Meta: sender.ManifestEntry{
				MatchID:    result.MatchID,
				SourceFile: result.File.Name,
				Hash:       result.File.ContentHash,
				Bytes:      len(batch.Payloads[i]),
			},
			Payload: batch.Payloads[i],
		})
	}

	s.logger.Debug("sending match batch",
		ports.Int("matches", len(matches)),
		ports.Int("bytes", batch.TotalBytes))

	return s.sender.Send(ctx, matches, sender.Metadata{
		AgentID:    metadata.AgentID,
		Hostname:   metadata.Hostname,
		OSArch:     metadata.OSArch,
		AuthKey:    metadata.AuthKey,
		ServiceURL: metadata.ServiceURL,
	})
}
