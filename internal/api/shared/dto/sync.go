package dto

import (
	"time"

	"github.com/feral-file/ff-ledger-sync/internal/store/schema"
)

// PendingMintResponse is one retry queue entry
type PendingMintResponse struct {
	ID              int64      `json:"id"`
	ContractAddress string     `json:"contract_address"`
	TokenID         string     `json:"token_id"`
	OwnerAddress    string     `json:"owner_address"`
	CreatorAddress  *string    `json:"creator_address,omitempty"`
	TransactionHash *string    `json:"transaction_hash,omitempty"`
	RetryCount      int        `json:"retry_count"`
	LastError       *string    `json:"last_error,omitempty"`
	LastAttemptAt   *time.Time `json:"last_attempt_at,omitempty"`
	ClaimedUntil    *time.Time `json:"claimed_until,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// PendingMintListResponse is a page of retry queue entries
type PendingMintListResponse struct {
	Items  []PendingMintResponse `json:"items"`
	Total  int64                 `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// SyncStateResponse is the checkpoint of one contract
type SyncStateResponse struct {
	ContractAddress    string    `json:"contract_address"`
	LastProcessedBlock uint64    `json:"last_processed_block"`
	LastSyncAt         time.Time `json:"last_sync_at"`
}

// SyncStateListResponse lists every checkpoint
type SyncStateListResponse struct {
	Items []SyncStateResponse `json:"items"`
}

// ReconciliationResponse identifies a started reconciliation workflow
type ReconciliationResponse struct {
	WorkflowID string `json:"workflow_id"`
	RunID      string `json:"run_id"`
}

// MapPendingMint converts a queue entry to its response
func MapPendingMint(p *schema.PendingMint) PendingMintResponse {
	return PendingMintResponse{
		ID:              p.ID,
		ContractAddress: p.ContractAddress,
		TokenID:         p.TokenID,
		OwnerAddress:    p.OwnerAddress,
		CreatorAddress:  p.CreatorAddress,
		TransactionHash: p.TransactionHash,
		RetryCount:      p.RetryCount,
		LastError:       p.LastError,
		LastAttemptAt:   p.LastAttemptAt,
		ClaimedUntil:    p.ClaimedUntil,
		CreatedAt:       p.CreatedAt,
	}
}

// MapSyncState converts a checkpoint row to its response
func MapSyncState(s *schema.SyncState) SyncStateResponse {
	return SyncStateResponse{
		ContractAddress:    s.ContractAddress,
		LastProcessedBlock: s.LastProcessedBlock,
		LastSyncAt:         s.LastSyncAt,
	}
}
