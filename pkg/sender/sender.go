package sender

import "context"

// MatchData is one decoded match prepared for upload.
type MatchData struct {
	// Meta describes the match for the upload manifest
	Meta ManifestEntry

	// Payload is the decoded match as JSON
	Payload []byte
}

// ManifestEntry describes one match in the upload manifest.
type ManifestEntry struct {
	// MatchID identifies the match
	MatchID string `json:"match_id"`

	// SourceFile is the scout file name the match was decoded from
	SourceFile string `json:"source_file"`

	// Hash is the BLAKE3 content hash of the source file
	Hash string `json:"hash"`

	// Bytes is the payload size
	Bytes int `json:"bytes"`
}

// Sender uploads decoded matches to the scoutship service.
type Sender interface {
	// Send uploads the matches in a single request. An error means
	// nothing was accepted and the whole batch should be retried.
	Send(ctx context.Context, matches []MatchData, metadata Metadata) error
}
