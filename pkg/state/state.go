package state

import "time"

// FileRecord tracks one ingested scout file.
type FileRecord struct {
	// Path is the absolute path the file was last seen at
	Path string `json:"path"`

	// Size is the file size in bytes at ingest time
	Size int64 `json:"size"`

	// ModTime is the file modification time at ingest time
	ModTime time.Time `json:"mod_time"`

	// MatchID is the identifier resolved from the file
	MatchID string `json:"match_id"`

	// IngestedAt is when the file was decoded and archived
	IngestedAt time.Time `json:"ingested_at"`

	// Sent reports whether the decoded match reached the remote service
	Sent bool `json:"sent"`

	// ParseError records why decoding failed; empty on success
	ParseError string `json:"parse_error,omitempty"`
}

// State is the persistent ingest ledger. Files is keyed by the BLAKE3
// content hash, so a renamed or copied file is still recognized and a
// rewritten file is picked up as new content.
type State struct {
	// Files maps content hash to the record of its ingest
	Files map[string]FileRecord `json:"files"`

	// LastScanAt is the timestamp of the last completed scan cycle
	LastScanAt time.Time `json:"last_scan_at"`

	// LastSendAt is the timestamp of the last successful upload
	LastSendAt time.Time `json:"last_send_at"`

	// TotalParsed counts files decoded over the agent's lifetime
	TotalParsed int `json:"total_parsed"`

	// TotalSent counts matches uploaded over the agent's lifetime
	TotalSent int `json:"total_sent"`
}

// IsEmpty returns true if the ledger has no records.
func (s State) IsEmpty() bool {
	return len(s.Files) == 0
}

// Seen reports whether the content hash has already been ingested.
func (s State) Seen(hash string) bool {
	_, ok := s.Files[hash]
	return ok
}

// PathSeen reports whether any record exists for the given path,
// regardless of content hash. A true result with an unseen hash means
// the file was rewritten in place.
func (s State) PathSeen(path string) bool {
	for _, rec := range s.Files {
		if rec.Path == path {
			return true
		}
	}
	return false
}

// Record stores the ledger entry for a content hash, allocating the map
// on first use. The parse counter is bumped when a new hash arrives
// without a parse error.
func (s *State) Record(hash string, rec FileRecord) {
	if s.Files == nil {
		s.Files = make(map[string]FileRecord)
	}
	if _, exists := s.Files[hash]; !exists && rec.ParseError == "" {
		s.TotalParsed++
	}
	s.Files[hash] = rec
}

// MarkScan updates the scan timestamp.
func (s *State) MarkScan(now time.Time) {
	s.LastScanAt = now
}

// MarkSent flags the given content hashes as uploaded and updates the
// send timestamp and counter. Unknown hashes are ignored.
func (s *State) MarkSent(hashes []string, now time.Time) {
	for _, h := range hashes {
		rec, ok := s.Files[h]
		if !ok || rec.Sent {
			continue
		}
		rec.Sent = true
		s.Files[h] = rec
		s.TotalSent++
	}
	s.LastSendAt = now
}
