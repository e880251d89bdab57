package ports

import "github.com/bft-labs/scoutship/pkg/state"

// StateRepository handles ingest-ledger persistence for crash recovery.
// pkg/state defines the ledger and its file-backed implementation; the
// alias keeps the application layer on the ports vocabulary.
type StateRepository = state.Repository
