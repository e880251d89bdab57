package domain

import "time"

// ScoutFile represents a single scout file discovered on disk.
// A scout file is the atomic unit of work picked up by the scanner.
type ScoutFile struct {
	// Path is the absolute path to the file
	Path string

	// Name is the base filename (e.g., "match_2024_08_09.dvw")
	Name string

	// Size is the file size in bytes
	Size int64

	// ModTime is the file modification time
	ModTime time.Time

	// ContentHash is the BLAKE3 digest of the raw bytes, lowercase hex.
	// Two files with the same hash carry the same scout data.
	ContentHash string
}

// FileMeta is the serialization twin of ScoutFile. The state ledger and
// upload manifests both use this shape, so the two stay byte-compatible.
type FileMeta struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
	Hash    string    `json:"hash"`
}

// ToScoutFile converts FileMeta to a ScoutFile domain entity.
func (m FileMeta) ToScoutFile() ScoutFile {
	return ScoutFile{
		Path:        m.Path,
		Name:        m.Name,
		Size:        m.Size,
		ModTime:     m.ModTime,
		ContentHash: m.Hash,
	}
}

// ToMeta converts a ScoutFile to FileMeta for JSON serialization.
func (f ScoutFile) ToMeta() FileMeta {
	return FileMeta{
		Path:    f.Path,
		Name:    f.Name,
		Size:    f.Size,
		ModTime: f.ModTime,
		Hash:    f.ContentHash,
	}
}
