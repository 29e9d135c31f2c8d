package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/feral-file/ff-ledger-sync/internal/store/schema"
)

// CommitScanBatch writes a scanned block range in one transaction:
// records, pending mints, owner updates in event order, then the checkpoint.
// A regression aborts the whole batch.
func (s *pgStore) CommitScanBatch(ctx context.Context, batch ScanBatch) (*ScanBatchResult, error) {
	result := &ScanBatchResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created := make([]*schema.NFTRecord, 0, len(batch.Records))
		for _, record := range batch.Records {
			ok, err := insertNFTRecord(tx, record)
			if err != nil {
				return err
			}
			if err := deletePendingMintByToken(tx, record.ContractAddress, record.TokenID); err != nil {
				return err
			}
			if ok {
				created = append(created, record)
			}
		}

		pendingCreated := 0
		for _, pending := range batch.PendingMints {
			ok, err := insertPendingMint(tx, pending)
			if err != nil {
				return err
			}
			if ok {
				pendingCreated++
			}
		}

		ownersUpdated := 0
		for _, update := range batch.OwnerUpdates {
			updated, err := updateOwner(tx, batch.ContractAddress, update.TokenID, update.OwnerAddress)
			if err != nil {
				return err
			}
			if updated {
				ownersUpdated++
			}
		}

		if err := advanceCheckpoint(tx, batch.ContractAddress, batch.ToBlock); err != nil {
			return err
		}

		result.Created = created
		result.PendingCreated = pendingCreated
		result.OwnersUpdated = ownersUpdated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
