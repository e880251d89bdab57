// Package sqlite archives decoded matches in an embedded SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bft-labs/scoutship/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	match_id      TEXT NOT NULL,
	content_hash  TEXT NOT NULL UNIQUE,
	home_team     TEXT NOT NULL DEFAULT '',
	visiting_team TEXT NOT NULL DEFAULT '',
	winner        TEXT NOT NULL DEFAULT '',
	home_sets     INTEGER NOT NULL DEFAULT 0,
	visiting_sets INTEGER NOT NULL DEFAULT 0,
	played_at     TEXT,
	source_file   TEXT NOT NULL DEFAULT '',
	payload       BLOB NOT NULL,
	ingested_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_matches_match_id ON matches(match_id);
`

// Store persists decoded matches keyed by content hash. A file whose
// content has not changed maps to the existing row; an edited export
// produces a new hash and therefore a new row. Store satisfies
// ports.MatchStore.
type Store struct {
	db *sql.DB

	mu     sync.Mutex
	closed bool
}

// Open creates or opens the database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single-writer agent; WAL keeps readers from blocking it.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save upserts the decoded match. The row is addressed by content
// hash; saving the same content twice updates the row in place.
func (s *Store) Save(ctx context.Context, result domain.IngestResult, payload []byte) error {
	if err := s.check(); err != nil {
		return err
	}

	var playedAt sql.NullString
	if result.PlayedAt != nil {
		playedAt = sql.NullString{String: result.PlayedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO matches (
			match_id, content_hash, home_team, visiting_team, winner,
			home_sets, visiting_sets, played_at, source_file, payload, ingested_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(content_hash) DO UPDATE SET
			match_id      = excluded.match_id,
			home_team     = excluded.home_team,
			visiting_team = excluded.visiting_team,
			winner        = excluded.winner,
			home_sets     = excluded.home_sets,
			visiting_sets = excluded.visiting_sets,
			played_at     = excluded.played_at,
			source_file   = excluded.source_file,
			payload       = excluded.payload,
			ingested_at   = excluded.ingested_at`,
		result.MatchID,
		result.File.ContentHash,
		result.HomeTeam,
		result.VisitingTeam,
		result.Winner,
		result.HomeSets,
		result.VisitingSets,
		playedAt,
		result.File.Name,
		payload,
		result.ParsedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save match %s: %w", result.MatchID, err)
	}
	return nil
}

// Has reports whether a match with the given content hash is already
// archived.
func (s *Store) Has(ctx context.Context, contentHash string) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}

	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM matches WHERE content_hash = ?", contentHash).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query match by hash: %w", err)
	}
	return true, nil
}

// Close releases the database handle. Further calls to Save or Has
// return domain.ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store) check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}
	return nil
}
