package domain

// Batch is an aggregate of decoded matches ready to be sent together.
// It maintains the invariant that Results and Payloads have the same length.
type Batch struct {
	// Results contains the ingest outcome for each match in the batch
	Results []IngestResult

	// Payloads contains the JSON-encoded match document for each result
	Payloads [][]byte

	// TotalBytes is the sum of all payload lengths
	TotalBytes int
}

// NewBatch creates a new empty batch.
func NewBatch() *Batch {
	return &Batch{
		Results:  make([]IngestResult, 0),
		Payloads: make([][]byte, 0),
	}
}

// Add appends a result and its encoded match document to the batch.
func (b *Batch) Add(result IngestResult, payload []byte) {
	b.Results = append(b.Results, result)
	b.Payloads = append(b.Payloads, payload)
	b.TotalBytes += len(payload)
}

// Size returns the number of matches in the batch.
func (b *Batch) Size() int {
	return len(b.Results)
}

// Empty returns true if the batch has no matches.
func (b *Batch) Empty() bool {
	return len(b.Results) == 0
}

// Reset clears the batch for reuse.
func (b *Batch) Reset() {
	b.Results = b.Results[:0]
	b.Payloads = b.Payloads[:0]
	b.TotalBytes = 0
}

// MatchIDs returns the identifiers of every match in the batch.
func (b *Batch) MatchIDs() []string {
	ids := make([]string, 0, len(b.Results))
	for _, r := range b.Results {
		ids = append(ids, r.MatchID)
	}
	return ids
}

// ContentHashes returns the source file hash of every match in the
// batch, in batch order.
func (b *Batch) ContentHashes() []string {
	hashes := make([]string, 0, len(b.Results))
	for _, r := range b.Results {
		hashes = append(hashes, r.File.ContentHash)
	}
	return hashes
}

// LastResult returns the last result in the batch, or nil if empty.
func (b *Batch) LastResult() *IngestResult {
	if len(b.Results) == 0 {
		return nil
	}
	return &b.Results[len(b.Results)-1]
}
