package app

import (
	"time"

	"github.com/bft-labs/scoutship/internal/domain"
)

// Batcher accumulates decoded matches until a count, size, or time
// trigger fires.
type Batcher struct {
	batch        *domain.Batch
	maxCount     int
	maxBytes     int
	sendInterval time.Duration
	lastSend     time.Time
}

// NewBatcher creates a new batcher with the given limits. A limit of
// zero disables that trigger.
func NewBatcher(maxCount, maxBytes int, sendInterval time.Duration) *Batcher {
	return &Batcher{
		batch:        domain.NewBatch(),
		maxCount:     maxCount,
		maxBytes:     maxBytes,
		sendInterval: sendInterval,
		lastSend:     time.Now(),
	}
}

// Add appends a result to the batch. Returns true when the batch has
// reached a count or size limit and should be sent. The result is
// always added; an oversized match simply ships in a batch of one.
func (b *Batcher) Add(result domain.IngestResult, payload []byte) bool {
	b.batch.Add(result, payload)

	if b.maxCount > 0 && b.batch.Size() >= b.maxCount {
		return true
	}
	if b.maxBytes > 0 && b.batch.TotalBytes >= b.maxBytes {
		return true
	}
	return false
}

// ShouldSend returns true if the batch should be sent based on the
// time trigger.
func (b *Batcher) ShouldSend() bool {
	if b.batch.Empty() {
		return false
	}
	return time.Since(b.lastSend) >= b.sendInterval
}

// Batch returns the current batch.
func (b *Batcher) Batch() *domain.Batch {
	return b.batch
}

// Reset clears the batch and updates the last send time.
func (b *Batcher) Reset() {
	b.batch.Reset()
	b.lastSend = time.Now()
}

// HasPending returns true if there are matches waiting to be sent.
func (b *Batcher) HasPending() bool {
	return !b.batch.Empty()
}

// TimeSinceLastSend returns the duration since the last send.
func (b *Batcher) TimeSinceLastSend() time.Duration {
	return time.Since(b.lastSend)
}
