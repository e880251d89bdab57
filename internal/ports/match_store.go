package ports

import (
	"context"

	"github.com/bft-labs/scoutship/internal/domain"
)

// MatchStore archives decoded matches locally.
// Implementations persist the full match document plus the summary
// columns needed for querying without decoding JSON.
type MatchStore interface {
	// Save upserts one decoded match document keyed by content hash.
	// Saving the same hash twice replaces the earlier row.
	Save(ctx context.Context, result domain.IngestResult, payload []byte) error

	// Has reports whether a content hash is already archived.
	Has(ctx context.Context, contentHash string) (bool, error)

	// Close releases the underlying store.
	Close() error
}
