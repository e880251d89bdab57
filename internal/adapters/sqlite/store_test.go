package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bft-labs/scoutship/internal/domain"
)

func testResult(hash string) domain.IngestResult {
	played := time.Date(2024, 8, 9, 18, 30, 0, 0, time.UTC)
	return domain.IngestResult{
		File: domain.ScoutFile{
			Path:        "/scout/match.dvw",
			Name:        "match.dvw",
			Size:        2048,
			ContentHash: hash,
		},
		MatchID:      "11435",
		HomeTeam:     "Vero Volley Milano",
		VisitingTeam: "Igor Gorgonzola Novara",
		Winner:       "Vero Volley Milano",
		HomeSets:     3,
		VisitingSets: 1,
		PlayedAt:     &played,
		ParsedAt:     played.Add(2 * time.Hour),
		Status:       domain.StatusNew,
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "matches.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveAndHas(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ok, err := store.Has(ctx, "aabbcc")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if ok {
		t.Fatal("empty store reported a match")
	}

	if err := store.Save(ctx, testResult("aabbcc"), []byte(`{"match_id":"11435"}`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	ok, err = store.Has(ctx, "aabbcc")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if !ok {
		t.Error("saved match not found by hash")
	}

	ok, err = store.Has(ctx, "other")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if ok {
		t.Error("unknown hash reported as present")
	}
}

func TestStoreUpsertByHash(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testResult("aabbcc"), []byte("v1")); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	updated := testResult("aabbcc")
	updated.Winner = "Igor Gorgonzola Novara"
	if err := store.Save(ctx, updated, []byte("v2")); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	var count int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM matches").Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row after upsert, got %d", count)
	}

	var winner string
	var payload []byte
	err := store.db.QueryRow(
		"SELECT winner, payload FROM matches WHERE content_hash = ?", "aabbcc").
		Scan(&winner, &payload)
	if err != nil {
		t.Fatalf("row query failed: %v", err)
	}
	if winner != "Igor Gorgonzola Novara" {
		t.Errorf("expected updated winner, got %q", winner)
	}
	if string(payload) != "v2" {
		t.Errorf("expected updated payload, got %q", payload)
	}
}

func TestStoreDistinctHashesKeepRows(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testResult("hash1"), []byte("v1")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, testResult("hash2"), []byte("v2")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var count int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM matches").Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows for distinct hashes, got %d", count)
	}
}

func TestStoreNilPlayedAt(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	result := testResult("nodate")
	result.PlayedAt = nil
	if err := store.Save(ctx, result, []byte("{}")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	ok, err := store.Has(ctx, "nodate")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if !ok {
		t.Error("match without play date not found")
	}
}

func TestStoreClosed(t *testing.T) {
	store := openTestStore(t)
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	ctx := context.Background()
	if err := store.Save(ctx, testResult("aabbcc"), []byte("{}")); !errors.Is(err, domain.ErrStoreClosed) {
		t.Errorf("expected ErrStoreClosed from Save, got %v", err)
	}
	if _, err := store.Has(ctx, "aabbcc"); !errors.Is(err, domain.ErrStoreClosed) {
		t.Errorf("expected ErrStoreClosed from Has, got %v", err)
	}

	// Close is idempotent.
	if err := store.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

func TestStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Save(context.Background(), testResult("persist"), []byte("{}")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	ok, err := reopened.Has(context.Background(), "persist")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if !ok {
		t.Error("match lost across reopen")
	}
}
