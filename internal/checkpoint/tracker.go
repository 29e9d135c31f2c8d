package checkpoint

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger-sync/internal/logger"
	"github.com/feral-file/ff-ledger-sync/internal/metrics"
	"github.com/feral-file/ff-ledger-sync/internal/store"
	"github.com/feral-file/ff-ledger-sync/internal/types"
)

// Tracker persists the last fully processed block of each contract
//
//go:generate mockgen -source=tracker.go -destination=../mocks/checkpoint_tracker.go -package=mocks -mock_names=Tracker=MockCheckpointTracker
type Tracker interface {
	// Get returns the last processed block, 0 when the contract was never synced
	Get(ctx context.Context, contractAddress string) (uint64, error)

	// Next returns the first block to process, never below startBlock
	Next(ctx context.Context, contractAddress string, startBlock uint64) (uint64, error)

	// Advance moves the checkpoint forward. Lower values fail with *domain.RegressionError
	// and leave the stored value unchanged; equal values are accepted.
	Advance(ctx context.Context, contractAddress string, block uint64) error

	// Reset overwrites the checkpoint. It is the only way to lower it.
	Reset(ctx context.Context, contractAddress string, block uint64) error
}

type tracker struct {
	store store.Store
}

// NewTracker creates a checkpoint tracker backed by the store
func NewTracker(st store.Store) Tracker {
	return &tracker{store: st}
}

func (t *tracker) Get(ctx context.Context, contractAddress string) (uint64, error) {
	state, err := t.store.GetSyncState(ctx, types.NormalizeAddress(contractAddress))
	if err != nil {
		return 0, fmt.Errorf("failed to get checkpoint: %w", err)
	}
	if state == nil {
		return 0, nil
	}
	return state.LastProcessedBlock, nil
}

func (t *tracker) Next(ctx context.Context, contractAddress string, startBlock uint64) (uint64, error) {
	last, err := t.Get(ctx, contractAddress)
	if err != nil {
		return 0, err
	}
	next := last + 1
	if next < startBlock {
		next = startBlock
	}
	return next, nil
}

func (t *tracker) Advance(ctx context.Context, contractAddress string, block uint64) error {
	contractAddress = types.NormalizeAddress(contractAddress)
	if err := t.store.AdvanceCheckpoint(ctx, contractAddress, block); err != nil {
		return err
	}

	metrics.CheckpointBlock.WithLabelValues(contractAddress).Set(float64(block))
	return nil
}

func (t *tracker) Reset(ctx context.Context, contractAddress string, block uint64) error {
	contractAddress = types.NormalizeAddress(contractAddress)
	current, err := t.Get(ctx, contractAddress)
	if err != nil {
		return err
	}

	if err := t.store.ResetCheckpoint(ctx, contractAddress, block); err != nil {
		return err
	}

	logger.WarnCtx(ctx, "Checkpoint reset",
		zap.String("contract", contractAddress),
		zap.Uint64("from", current),
		zap.Uint64("to", block))
	metrics.CheckpointBlock.WithLabelValues(contractAddress).Set(float64(block))
	return nil
}
