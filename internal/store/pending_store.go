package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-ledger-sync/internal/domain"
	"github.com/feral-file/ff-ledger-sync/internal/store/schema"
)

const claimPendingMintsSQL = `
UPDATE pending_mints
SET claimed_by = ?, claimed_until = ?, updated_at = now()
WHERE id IN (
	SELECT id FROM pending_mints
	WHERE (claimed_until IS NULL OR claimed_until < ?)
	  AND (last_attempt_at IS NULL OR last_attempt_at < ?)
	ORDER BY last_attempt_at ASC NULLS FIRST, id ASC
	LIMIT ?
	FOR UPDATE SKIP LOCKED
)
RETURNING *`

func insertPendingMint(tx *gorm.DB, pending *schema.PendingMint) (bool, error) {
	pending.ID = 0
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contract_address"}, {Name: "token_id"}},
		DoNothing: true,
	}).Create(pending)
	if result.Error != nil {
		return false, fmt.Errorf("failed to insert pending mint: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// InsertPendingMint queues a mint, leaving an existing entry untouched
func (s *pgStore) InsertPendingMint(ctx context.Context, pending *schema.PendingMint) (bool, error) {
	return insertPendingMint(s.db.WithContext(ctx), pending)
}

// ClaimPendingMints leases claimable entries with row locks so overlapping sweeps never share an entry
func (s *pgStore) ClaimPendingMints(ctx context.Context, input ClaimPendingMintsInput) ([]schema.PendingMint, error) {
	if input.Limit <= 0 {
		return nil, nil
	}

	var entries []schema.PendingMint
	err := s.db.WithContext(ctx).
		Raw(claimPendingMintsSQL, input.ClaimToken, input.LeaseUntil, input.Now, input.AttemptedBefore, input.Limit).
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to claim pending mints: %w", err)
	}

	return entries, nil
}

// ResolvePendingMint inserts the record and deletes the entry if the claim is still held
func (s *pgStore) ResolvePendingMint(ctx context.Context, pendingID int64, claimToken string, record *schema.NFTRecord) (bool, error) {
	var created bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND claimed_by = ?", pendingID, claimToken).Delete(&schema.PendingMint{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete pending mint: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrClaimLost
		}

		var err error
		created, err = insertNFTRecord(tx, record)
		return err
	})
	if err != nil {
		return false, err
	}

	return created, nil
}

// FailPendingMint increments retry_count on a claimed entry and releases its lease
func (s *pgStore) FailPendingMint(ctx context.Context, pendingID int64, claimToken string, lastError string, attemptedAt time.Time) (*schema.PendingMint, error) {
	var updated []schema.PendingMint
	result := s.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ? AND claimed_by = ?", pendingID, claimToken).
		Updates(map[string]interface{}{
			"retry_count":     gorm.Expr("retry_count + 1"),
			"last_error":      lastError,
			"last_attempt_at": attemptedAt,
			"claimed_by":      nil,
			"claimed_until":   nil,
			"updated_at":      gorm.Expr("now()"),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to record pending mint failure: %w", result.Error)
	}
	if result.RowsAffected == 0 || len(updated) == 0 {
		return nil, domain.ErrClaimLost
	}

	return &updated[0], nil
}

// ListPendingMints lists entries, most retried first
func (s *pgStore) ListPendingMints(ctx context.Context, filter PendingMintFilter) ([]schema.PendingMint, int64, error) {
	query := s.db.WithContext(ctx).Model(&schema.PendingMint{})

	if filter.ContractAddress != "" {
		query = query.Where("contract_address = ?", filter.ContractAddress)
	}
	if filter.MinRetryCount > 0 {
		query = query.Where("retry_count >= ?", filter.MinRetryCount)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pending mints: %w", err)
	}

	var entries []schema.PendingMint
	err := query.
		Order("retry_count DESC").
		Order("id ASC").
		Limit(normalizeLimit(filter.Limit)).
		Offset(max(filter.Offset, 0)).
		Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pending mints: %w", err)
	}

	return entries, total, nil
}

// DeletePendingMint removes an entry by id
func (s *pgStore) DeletePendingMint(ctx context.Context, pendingID int64) error {
	if err := s.db.WithContext(ctx).Delete(&schema.PendingMint{}, pendingID).Error; err != nil {
		return fmt.Errorf("failed to delete pending mint: %w", err)
	}
	return nil
}
