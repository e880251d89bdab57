package domain

import "errors"

// Domain errors represent error conditions in the scoutship domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("scoutship: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("scoutship: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("scoutship: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("scoutship: invalid configuration")

	// ErrContextCanceled is returned when the operation context is canceled.
	ErrContextCanceled = errors.New("scoutship: context canceled")

	// ErrMissingScoutDir is returned when no scout directory is configured.
	ErrMissingScoutDir = errors.New("scoutship: scout directory is required")

	// ErrMissingServiceURL is returned when upload is requested without a
	// service URL.
	ErrMissingServiceURL = errors.New("scoutship: service URL is required")

	// ErrStoreClosed is returned when the match archive is used after Close.
	ErrStoreClosed = errors.New("scoutship: match store is closed")
)
