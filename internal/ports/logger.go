package ports

import "github.com/bft-labs/scoutship/pkg/log"

// Logger re-exports the structured logging interface from pkg/log so the
// application layer, adapters, and plugins share one vocabulary.
type Logger = log.Logger

// Field re-exports the structured logging field type from pkg/log.
type Field = log.Field

// Field constructors, re-exported for call sites that already import ports.
var (
	String   = log.String
	Int      = log.Int
	Int64    = log.Int64
	Uint64   = log.Uint64
	Float64  = log.Float64
	Bool     = log.Bool
	Duration = log.Duration
	Time     = log.Time
	Strs     = log.Strs
	Err      = log.Err
	Any      = log.Any
)
