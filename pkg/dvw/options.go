package dvw

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// IDSource produces fallback identifiers for records that arrive without
// one. Identifiers only need to be unique within a single match; they
// are labels, not keys into external systems.
type IDSource interface {
	// MatchID returns an 8-character lowercase hex token.
	MatchID() string

	// PlayerID returns a 6-character alphanumeric token.
	PlayerID() string
}

// Option configures optional behavior of Parse.
type Option func(*options)

// options holds the optional configuration for one parse run.
type options struct {
	ids IDSource
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{ids: uuidSource{}}
}

// WithIDSource sets the generator used for fallback match and player
// identifiers. If not provided, a UUID-backed source is used. Tests can
// inject a counter to make parse output fully deterministic.
func WithIDSource(src IDSource) Option {
	return func(o *options) {
		if src != nil {
			o.ids = src
		}
	}
}

// uuidSource derives identifier tokens from random UUIDs.
type uuidSource struct{}

func (uuidSource) MatchID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:4])
}

func (uuidSource) PlayerID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:6]
}
