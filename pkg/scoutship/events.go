package scoutship

import "time"

// StateChangeEvent is emitted when the agent transitions between
// lifecycle states.
type StateChangeEvent struct {
	// Previous is the state before the transition
	Previous State

	// Current is the state after the transition
	Current State

	// Reason describes what caused the transition
	Reason string
}

// FileIngestedEvent is emitted after a scout file has been decoded and
// archived.
type FileIngestedEvent struct {
	// File is the scout file name
	File string

	// MatchID is the identifier resolved from the file
	MatchID string

	// Status is "new" for a first ingest or "updated" for a rewritten file
	Status string
}

// SendSuccessEvent is emitted after a batch of matches was accepted by
// the service.
type SendSuccessEvent struct {
	// MatchCount is the number of matches in the batch
	MatchCount int

	// BytesSent is the total payload size
	BytesSent int

	// Duration is how long the upload took
	Duration time.Duration
}

// SendErrorEvent is emitted when a batch upload fails.
type SendErrorEvent struct {
	// Error is the upload failure
	Error error

	// MatchCount is the number of matches in the failed batch
	MatchCount int

	// Retryable indicates whether the batch will be retried
	Retryable bool
}

// EventHandler receives notifications about scoutship operations.
// Handlers are called synchronously from the ingest goroutine and
// should return quickly.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnFileIngested(event FileIngestedEvent)
	OnSendSuccess(event SendSuccessEvent)
	OnSendError(event SendErrorEvent)
}

// BaseEventHandler provides no-op implementations of every EventHandler
// method. Embed it to implement only the events you care about.
type BaseEventHandler struct{}

// OnStateChange does nothing.
func (BaseEventHandler) OnStateChange(event StateChangeEvent) {}

// OnFileIngested does nothing.
func (BaseEventHandler) OnFileIngested(event FileIngestedEvent) {}

// OnSendSuccess does nothing.
func (BaseEventHandler) OnSendSuccess(event SendSuccessEvent) {}

// OnSendError does nothing.
func (BaseEventHandler) OnSendError(event SendErrorEvent) {}
