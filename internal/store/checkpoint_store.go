package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-ledger-sync/internal/domain"
	"github.com/feral-file/ff-ledger-sync/internal/store/schema"
)

// advanceCheckpoint upserts the checkpoint only when the stored value does not exceed block.
// A suppressed update means a regression.
func advanceCheckpoint(tx *gorm.DB, contractAddress string, block uint64) error {
	state := schema.SyncState{
		ContractAddress:    contractAddress,
		LastProcessedBlock: block,
	}

	result := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "contract_address"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_processed_block": gorm.Expr("EXCLUDED.last_processed_block"),
			"last_sync_at":         gorm.Expr("now()"),
			"updated_at":           gorm.Expr("now()"),
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			gorm.Expr("sync_states.last_processed_block <= EXCLUDED.last_processed_block"),
		}},
	}).Create(&state)
	if result.Error != nil {
		return fmt.Errorf("failed to advance checkpoint: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		return nil
	}

	var current schema.SyncState
	if err := tx.Where("contract_address = ?", contractAddress).First(&current).Error; err != nil {
		return fmt.Errorf("failed to read checkpoint after suppressed advance: %w", err)
	}

	return &domain.RegressionError{
		ContractAddress: contractAddress,
		Current:         current.LastProcessedBlock,
		Attempted:       block,
	}
}

// GetSyncState retrieves the checkpoint row of a contract
func (s *pgStore) GetSyncState(ctx context.Context, contractAddress string) (*schema.SyncState, error) {
	var state schema.SyncState
	err := s.db.WithContext(ctx).Where("contract_address = ?", contractAddress).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sync state: %w", err)
	}

	return &state, nil
}

// AdvanceCheckpoint moves a checkpoint forward
func (s *pgStore) AdvanceCheckpoint(ctx context.Context, contractAddress string, block uint64) error {
	return advanceCheckpoint(s.db.WithContext(ctx), contractAddress, block)
}

// ResetCheckpoint overwrites a checkpoint regardless of its current value
func (s *pgStore) ResetCheckpoint(ctx context.Context, contractAddress string, block uint64) error {
	state := schema.SyncState{
		ContractAddress:    contractAddress,
		LastProcessedBlock: block,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "contract_address"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_processed_block": block,
			"last_sync_at":         gorm.Expr("now()"),
			"updated_at":           gorm.Expr("now()"),
		}),
	}).Create(&state).Error
	if err != nil {
		return fmt.Errorf("failed to reset checkpoint: %w", err)
	}

	return nil
}

// ListSyncStates lists every checkpoint row ordered by contract
func (s *pgStore) ListSyncStates(ctx context.Context) ([]schema.SyncState, error) {
	var states []schema.SyncState
	if err := s.db.WithContext(ctx).Order("contract_address ASC").Find(&states).Error; err != nil {
		return nil, fmt.Errorf("failed to list sync states: %w", err)
	}

	return states, nil
}
