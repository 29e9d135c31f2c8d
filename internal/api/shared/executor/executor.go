package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/feral-file/ff-ledger-sync/internal/api/shared/dto"
	"github.com/feral-file/ff-ledger-sync/internal/checkpoint"
	"github.com/feral-file/ff-ledger-sync/internal/store"
	"github.com/feral-file/ff-ledger-sync/internal/types"
	"github.com/feral-file/ff-ledger-sync/internal/workflows"
)

// ErrReconciliationUnavailable is returned when no workflow launcher is configured
var ErrReconciliationUnavailable = errors.New("reconciliation is not configured")

// Executor holds the admin API business logic
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetNFT returns a record, nil when absent
	GetNFT(ctx context.Context, contractAddress string, tokenID string) (*dto.NFTResponse, error)

	// ListNFTs lists records matching the filter
	ListNFTs(ctx context.Context, filter store.NFTFilter) (*dto.NFTListResponse, error)

	// ListPendingMints lists retry queue entries, most retried first
	ListPendingMints(ctx context.Context, filter store.PendingMintFilter) (*dto.PendingMintListResponse, error)

	// ListSyncStates lists every checkpoint
	ListSyncStates(ctx context.Context) (*dto.SyncStateListResponse, error)

	// ResetCheckpoint overwrites the checkpoint of a contract
	ResetCheckpoint(ctx context.Context, contractAddress string, block uint64) (*dto.SyncStateResponse, error)

	// StartReconciliation starts the reconciliation workflow of a contract
	StartReconciliation(ctx context.Context, contractAddress string, upperBound uint64) (*dto.ReconciliationResponse, error)
}

type executor struct {
	store    store.Store
	tracker  checkpoint.Tracker
	launcher workflows.Launcher
}

// NewExecutor creates the admin executor; launcher may be nil when Temporal is not configured
func NewExecutor(st store.Store, tracker checkpoint.Tracker, launcher workflows.Launcher) Executor {
	return &executor{
		store:    st,
		tracker:  tracker,
		launcher: launcher,
	}
}

func (e *executor) GetNFT(ctx context.Context, contractAddress string, tokenID string) (*dto.NFTResponse, error) {
	record, err := e.store.GetNFTRecord(ctx, types.NormalizeAddress(contractAddress), tokenID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	resp := dto.MapNFT(record)
	return &resp, nil
}

func (e *executor) ListNFTs(ctx context.Context, filter store.NFTFilter) (*dto.NFTListResponse, error) {
	records, total, err := e.store.ListNFTRecords(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NFTResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.MapNFT(&records[i]))
	}

	return &dto.NFTListResponse{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func (e *executor) ListPendingMints(ctx context.Context, filter store.PendingMintFilter) (*dto.PendingMintListResponse, error) {
	entries, total, err := e.store.ListPendingMints(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PendingMintResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.MapPendingMint(&entries[i]))
	}

	return &dto.PendingMintListResponse{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func (e *executor) ListSyncStates(ctx context.Context) (*dto.SyncStateListResponse, error) {
	states, err := e.store.ListSyncStates(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SyncStateResponse, 0, len(states))
	for i := range states {
		items = append(items, dto.MapSyncState(&states[i]))
	}

	return &dto.SyncStateListResponse{Items: items}, nil
}

func (e *executor) ResetCheckpoint(ctx context.Context, contractAddress string, block uint64) (*dto.SyncStateResponse, error) {
	contractAddress = types.NormalizeAddress(contractAddress)
	if err := e.tracker.Reset(ctx, contractAddress, block); err != nil {
		return nil, fmt.Errorf("failed to reset checkpoint: %w", err)
	}

	state, err := e.store.GetSyncState(ctx, contractAddress)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return &dto.SyncStateResponse{ContractAddress: contractAddress, LastProcessedBlock: block}, nil
	}

	resp := dto.MapSyncState(state)
	return &resp, nil
}

func (e *executor) StartReconciliation(ctx context.Context, contractAddress string, upperBound uint64) (*dto.ReconciliationResponse, error) {
	if e.launcher == nil {
		return nil, ErrReconciliationUnavailable
	}

	execution, err := e.launcher.StartReconciliation(ctx, workflows.ReconcileRequest{
		ContractAddress: contractAddress,
		UpperBound:      upperBound,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ReconciliationResponse{
		WorkflowID: execution.WorkflowID,
		RunID:      execution.RunID,
	}, nil
}
