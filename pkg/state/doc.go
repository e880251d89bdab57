// Package state persists the scoutship ingest ledger across agent
// restarts.
//
// The ledger records every scout file the agent has decoded, keyed by
// content hash, together with scan and upload progress. Loading it at
// startup lets the agent skip files it already processed and resume
// uploads where it left off.
//
// # Usage
//
//	repo := state.NewFileRepository("/var/lib/scoutship")
//
//	st, err := repo.Load()
//	if err != nil {
//		// handle error
//	}
//
//	st.Record(hash, state.FileRecord{Path: path, MatchID: id, IngestedAt: time.Now()})
//	st.MarkScan(time.Now())
//
//	if err := repo.Save(st); err != nil {
//		// handle error
//	}
//
// # Version
//
// Current version: 1.1.0 (see Version constant)
//
// The state module follows semantic versioning. The ledger file format
// is backward compatible within a major version.
package state
