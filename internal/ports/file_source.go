package ports

import (
	"context"

	"github.com/bft-labs/scoutship/internal/domain"
)

// FileSource discovers scout files to ingest.
// Implementations walk the scout directory, stat candidates, and hash
// their content so callers can deduplicate across scan cycles.
type FileSource interface {
	// Scan returns the scout files currently present, ordered oldest
	// first by modification time. A missing directory is an error;
	// an empty directory is an empty slice.
	Scan(ctx context.Context) ([]domain.ScoutFile, error)

	// Read returns the decoded text of one discovered file.
	Read(ctx context.Context, file domain.ScoutFile) (string, error)
}
