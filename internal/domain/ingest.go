package domain

import "time"

// IngestStatus classifies what happened to one scout file during a scan
// cycle.
type IngestStatus string

const (
	// StatusNew marks a file whose hash was never seen before.
	StatusNew IngestStatus = "new"

	// StatusUpdated marks a file whose path is known but whose content
	// changed since the last cycle.
	StatusUpdated IngestStatus = "updated"

	// StatusUnchanged marks a file already recorded with the same hash.
	StatusUnchanged IngestStatus = "unchanged"

	// StatusFailed marks a file that could not be read or decoded.
	StatusFailed IngestStatus = "failed"
)

// IngestResult is the outcome of processing one scout file. Besides the
// identifiers it carries the match summary columns the archive stores,
// so adapters never decode the payload themselves.
type IngestResult struct {
	// File is the scout file this result describes
	File ScoutFile

	// MatchID is the identifier resolved from the file; empty on failure
	MatchID string

	// HomeTeam and VisitingTeam are the team names from the file
	HomeTeam     string
	VisitingTeam string

	// Winner is the winning team name, or "Tie"
	Winner string

	// HomeSets and VisitingSets are the set counts won by each side
	HomeSets     int
	VisitingSets int

	// PlayedAt is the match start time from the file header; nil when absent
	PlayedAt *time.Time

	// ParsedAt is when the agent decoded the file
	ParsedAt time.Time

	// Status classifies the outcome
	Status IngestStatus

	// Err carries the failure cause when Status is StatusFailed
	Err error
}

// Ingested reports whether the file produced match data this cycle.
// Unchanged and failed files do not.
func (r IngestResult) Ingested() bool {
	return r.Status == StatusNew || r.Status == StatusUpdated
}
