package app

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bft-labs/scoutship/internal/domain"
	"github.com/bft-labs/scoutship/internal/ports"
	"github.com/bft-labs/scoutship/pkg/dvw"
	"github.com/bft-labs/scoutship/pkg/state"
)

// AgentConfig contains configuration for the agent loop.
type AgentConfig struct {
	ScanInterval  time.Duration
	SendInterval  time.Duration
	MaxBatchCount int
	MaxBatchBytes int
	RetryBase     time.Duration
	RetryMax      time.Duration
	Once          bool

	// Metadata for send operations
	AgentID    string
	Hostname   string
	OSArch     string
	AuthKey    string
	ServiceURL string
}

// Agent orchestrates the scan/decode/archive/upload loop.
type Agent struct {
	config    AgentConfig
	source    ports.FileSource
	store     ports.MatchStore
	sender    ports.ResultSender
	stateRepo ports.StateRepository
	logger    ports.Logger
	batcher   *Batcher
	emitter   SendEventEmitter
}

// SendEventEmitter is called when files are ingested and on send
// success or failure.
type SendEventEmitter interface {
	OnFileIngested(file, matchID, status string)
	OnSendSuccess(matchCount, bytesSent int, duration time.Duration)
	OnSendError(err error, matchCount int, retryable bool)
}

// NewAgent creates a new agent with the given dependencies.
func NewAgent(
	config AgentConfig,
	source ports.FileSource,
	store ports.MatchStore,
	sender ports.ResultSender,
	stateRepo ports.StateRepository,
	logger ports.Logger,
	emitter SendEventEmitter,
) *Agent {
	return &Agent{
		config:    config,
		source:    source,
		store:     store,
		sender:    sender,
		stateRepo: stateRepo,
		logger:    logger,
		batcher:   NewBatcher(config.MaxBatchCount, config.MaxBatchBytes, config.SendInterval),
		emitter:   emitter,
	}
}

// Run executes the main ingest loop: scan the scout directory, decode
// new or changed files, archive them, and upload decoded matches in
// batches. Returns when the context is canceled, or after one cycle in
// Once mode.
func (a *Agent) Run(ctx context.Context) error {
	ledger, err := a.stateRepo.Load()
	if err != nil {
		a.logger.Error("failed to load ingest ledger", ports.Err(err))
		// Continue with an empty ledger
	}

	backoff := newBackoff(a.config.RetryBase, a.config.RetryMax)

	for {
		select {
		case <-ctx.Done():
			a.flush(ctx, &ledger, backoff)
			return ctx.Err()
		default:
		}

		if err := a.cycle(ctx, &ledger, backoff); err != nil {
			if ctx.Err() != nil {
				a.flush(ctx, &ledger, backoff)
				return ctx.Err()
			}
			a.logger.Error("scan cycle failed", ports.Err(err))
		}

		if a.batcher.ShouldSend() {
			a.trySend(ctx, &ledger, backoff)
		}

		if a.config.Once {
			a.flush(ctx, &ledger, backoff)
			return nil
		}

		select {
		case <-ctx.Done():
			a.flush(ctx, &ledger, backoff)
			return ctx.Err()
		case <-time.After(a.config.ScanInterval):
		}
	}
}

// cycle performs one scan of the scout directory and ingests every
// file whose content has not been seen before.
func (a *Agent) cycle(ctx context.Context, ledger *state.State, backoff *backoff) error {
	files, err := a.source.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan scout dir: %w", err)
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ledger.Seen(file.ContentHash) {
			continue
		}

		result, payload := a.ingest(ctx, file, ledger)
		if !result.Ingested() {
			continue
		}

		if a.config.ServiceURL == "" {
			continue
		}
		if a.batcher.Add(result, payload) || a.batcher.ShouldSend() {
			a.trySend(ctx, ledger, backoff)
		}
	}

	ledger.MarkScan(time.Now().UTC())
	if err := a.stateRepo.Save(*ledger); err != nil {
		a.logger.Error("failed to save ingest ledger", ports.Err(err))
	}
	return nil
}

// ingest decodes a single scout file, archives the result, and records
// it in the ledger. A file that cannot be read is recorded as failed
// so it is retried only when its content changes.
func (a *Agent) ingest(ctx context.Context, file domain.ScoutFile, ledger *state.State) (domain.IngestResult, []byte) {
	status := domain.StatusNew
	if ledger.PathSeen(file.Path) {
		status = domain.StatusUpdated
	}

	result := domain.IngestResult{
		File:     file,
		Status:   status,
		ParsedAt: time.Now().UTC(),
	}

	content, err := a.source.Read(ctx, file)
	if err != nil {
		a.logger.Error("failed to read scout file",
			ports.String("file", file.Name),
			ports.Err(err))
		return a.recordFailure(result, ledger, err), nil
	}

	match := dvw.Parse(content)
	match.Filename = strings.TrimSuffix(file.Name, filepath.Ext(file.Name))
	summary := match.Summary()

	result.MatchID = match.MatchID
	result.HomeTeam = summary.HomeTeam
	result.VisitingTeam = summary.VisitingTeam
	result.Winner = summary.Winner
	result.HomeSets = summary.HomeSets
	result.VisitingSets = summary.VisitingSets
	result.PlayedAt = match.Date

	payload, err := json.Marshal(match)
	if err != nil {
		a.logger.Error("failed to encode match",
			ports.String("match_id", match.MatchID),
			ports.Err(err))
		return a.recordFailure(result, ledger, err), nil
	}

	if err := a.store.Save(ctx, result, payload); err != nil {
		// Not recorded in the ledger: the next scan retries the file.
		a.logger.Error("failed to archive match",
			ports.String("match_id", match.MatchID),
			ports.Err(err))
		result.Status = domain.StatusFailed
		result.Err = err
		return result, nil
	}

	ledger.Record(file.ContentHash, state.FileRecord{
		Path:       file.Path,
		Size:       file.Size,
		ModTime:    file.ModTime,
		MatchID:    match.MatchID,
		IngestedAt: result.ParsedAt,
	})

	a.logger.Info("ingested scout file",
		ports.String("file", file.Name),
		ports.String("match_id", match.MatchID),
		ports.String("status", string(result.Status)))

	if a.emitter != nil {
		a.emitter.OnFileIngested(file.Name, match.MatchID, string(result.Status))
	}

	return result, payload
}

// recordFailure writes a failed record so the file is not re-read
// every cycle; a rewritten file gets a fresh hash and a fresh attempt.
func (a *Agent) recordFailure(result domain.IngestResult, ledger *state.State, cause error) domain.IngestResult {
	result.Status = domain.StatusFailed
	result.Err = cause
	ledger.Record(result.File.ContentHash, state.FileRecord{
		Path:       result.File.Path,
		Size:       result.File.Size,
		ModTime:    result.File.ModTime,
		IngestedAt: result.ParsedAt,
		ParseError: cause.Error(),
	})
	return result
}

// flush sends any pending matches before the loop exits.
func (a *Agent) flush(ctx context.Context, ledger *state.State, backoff *backoff) {
	if a.batcher.HasPending() {
		a.trySend(ctx, ledger, backoff)
	}
}

// trySend attempts to send the current batch.
func (a *Agent) trySend(ctx context.Context, ledger *state.State, backoff *backoff) {
	batch := a.batcher.Batch()
	if batch.Empty() {
		return
	}

	metadata := ports.SendMetadata{
		AgentID:    a.config.AgentID,
		Hostname:   a.config.Hostname,
		OSArch:     a.config.OSArch,
		AuthKey:    a.config.AuthKey,
		ServiceURL: a.config.ServiceURL,
	}

	start := time.Now()
	err := a.sender.Send(ctx, batch, metadata)
	duration := time.Since(start)

	if err != nil {
		a.logger.Error("send failed",
			ports.Err(err),
			ports.Int("matches", batch.Size()),
			ports.Int("bytes", batch.TotalBytes),
		)

		if a.emitter != nil {
			a.emitter.OnSendError(err, batch.Size(), true)
		}

		backoff.Sleep()
		return
	}

	a.logger.Info("sent batch",
		ports.Int("matches", batch.Size()),
		ports.Int("bytes", batch.TotalBytes),
		ports.Duration("duration", duration),
	)

	if a.emitter != nil {
		a.emitter.OnSendSuccess(batch.Size(), batch.TotalBytes, duration)
	}

	ledger.MarkSent(batch.ContentHashes(), time.Now().UTC())
	if err := a.stateRepo.Save(*ledger); err != nil {
		a.logger.Error("failed to save ingest ledger", ports.Err(err))
	}

	a.batcher.Reset()
	backoff.Reset()
}
