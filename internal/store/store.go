package store

import (
	"context"
	"time"

	"github.com/feral-file/ff-ledger-sync/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// InsertNFTRecord inserts a record unless (contract_address, token_id) exists; created is false for the no-op case
	InsertNFTRecord(ctx context.Context, record *schema.NFTRecord) (created bool, err error)
	// UpdateNFTOwner updates the owner of an existing record; creator is never touched
	UpdateNFTOwner(ctx context.Context, contractAddress string, tokenID string, ownerAddress string) (updated bool, err error)
	// GetNFTRecord retrieves a record, nil when absent
	GetNFTRecord(ctx context.Context, contractAddress string, tokenID string) (*schema.NFTRecord, error)
	// ListNFTRecords lists records matching the filter with the total match count
	ListNFTRecords(ctx context.Context, filter NFTFilter) ([]schema.NFTRecord, int64, error)
	// ListTokenIDs returns every stored token id of a contract
	ListTokenIDs(ctx context.Context, contractAddress string) ([]string, error)

	// InsertPendingMint queues a mint unless one is already pending; an existing entry keeps its retry count
	InsertPendingMint(ctx context.Context, pending *schema.PendingMint) (created bool, err error)
	// ClaimPendingMints leases up to input.Limit claimable entries to input.ClaimToken
	ClaimPendingMints(ctx context.Context, input ClaimPendingMintsInput) ([]schema.PendingMint, error)
	// ResolvePendingMint stores the record and deletes the claimed entry atomically
	ResolvePendingMint(ctx context.Context, pendingID int64, claimToken string, record *schema.NFTRecord) (created bool, err error)
	// FailPendingMint records a failed attempt on a claimed entry and releases the lease
	FailPendingMint(ctx context.Context, pendingID int64, claimToken string, lastError string, attemptedAt time.Time) (*schema.PendingMint, error)
	// ListPendingMints lists entries for operator inspection
	ListPendingMints(ctx context.Context, filter PendingMintFilter) ([]schema.PendingMint, int64, error)
	// DeletePendingMint removes an entry by id
	DeletePendingMint(ctx context.Context, pendingID int64) error

	// GetSyncState retrieves the checkpoint row of a contract, nil when absent
	GetSyncState(ctx context.Context, contractAddress string) (*schema.SyncState, error)
	// AdvanceCheckpoint moves a checkpoint forward; lower values fail with *domain.RegressionError
	AdvanceCheckpoint(ctx context.Context, contractAddress string, block uint64) error
	// ResetCheckpoint sets a checkpoint unconditionally (administrative correction)
	ResetCheckpoint(ctx context.Context, contractAddress string, block uint64) error
	// ListSyncStates lists every checkpoint row
	ListSyncStates(ctx context.Context) ([]schema.SyncState, error)

	// CommitScanBatch applies one scanned block range and advances its checkpoint in a single transaction
	CommitScanBatch(ctx context.Context, batch ScanBatch) (*ScanBatchResult, error)

	// UpsertQuestCompletion inserts a completion unless (user_id, quest_type, completion_date) exists
	UpsertQuestCompletion(ctx context.Context, completion *schema.QuestCompletion) (created bool, err error)
	// GetUserIDByWallet resolves a wallet to its user, domain.ErrUnknownWallet when unlinked
	GetUserIDByWallet(ctx context.Context, address string) (string, error)
}

// NFTFilter selects NFT records for listing
type NFTFilter struct {
	ContractAddress string
	OwnerAddress    string
	CreatorAddress  string
	Category        string
	HasGeo          *bool
	Limit           int
	Offset          int
}

// PendingMintFilter selects pending mints for listing
type PendingMintFilter struct {
	ContractAddress string
	MinRetryCount   int
	Limit           int
	Offset          int
}

// ClaimPendingMintsInput describes one claim round of a sweep
type ClaimPendingMintsInput struct {
	// ClaimToken identifies the sweep cycle holding the lease
	ClaimToken string
	// Now is compared against existing leases
	Now time.Time
	// LeaseUntil is the expiry written on claimed rows
	LeaseUntil time.Time
	// AttemptedBefore excludes entries already attempted in the current cycle
	AttemptedBefore time.Time
	// Limit caps the number of rows claimed
	Limit int
}

// OwnerUpdate is a transfer to apply in a scan batch
type OwnerUpdate struct {
	TokenID      string
	OwnerAddress string
}

// ScanBatch is the store-side result of scanning [FromBlock, ToBlock] of a contract
type ScanBatch struct {
	ContractAddress string
	FromBlock       uint64
	ToBlock         uint64
	Records         []*schema.NFTRecord
	PendingMints    []*schema.PendingMint
	OwnerUpdates    []OwnerUpdate
}

// ScanBatchResult reports what a committed batch changed
type ScanBatchResult struct {
	// Created holds the records that did not exist before the batch
	Created        []*schema.NFTRecord
	PendingCreated int
	OwnersUpdated  int
}
