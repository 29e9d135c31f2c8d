package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-ledger-sync/internal/domain"
	"github.com/feral-file/ff-ledger-sync/internal/store/schema"
	"github.com/feral-file/ff-ledger-sync/internal/types"
)

const (
	// DEFAULT_LIST_LIMIT applies when a filter carries no limit
	DEFAULT_LIST_LIMIT = 50
	// MAX_LIST_LIMIT caps listing page sizes
	MAX_LIST_LIMIT = 500

	nftTxHashIndex = "idx_nft_records_transaction_hash"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the pool of the *sql.DB behind a gorm connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 20
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// normalizeLimit clamps a page size into [1, MAX_LIST_LIMIT]
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DEFAULT_LIST_LIMIT
	}
	if limit > MAX_LIST_LIMIT {
		return MAX_LIST_LIMIT
	}
	return limit
}

// insertNFTRecord is shared by every insert path so they all ignore the same conflicts
func insertNFTRecord(tx *gorm.DB, record *schema.NFTRecord) (bool, error) {
	record.ID = 0
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contract_address"}, {Name: "token_id"}},
		DoNothing: true,
	}).Create(record)
	if result.Error != nil {
		if IsUniqueViolation(result.Error, nftTxHashIndex) {
			return false, fmt.Errorf("%w: %s (token %s/%s)", domain.ErrDuplicateTransactionHash,
				types.SafeString(record.TransactionHash), record.ContractAddress, record.TokenID)
		}
		return false, fmt.Errorf("failed to insert nft record: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// deletePendingMintByToken drops the queue entry of a token that now has a record
func deletePendingMintByToken(tx *gorm.DB, contractAddress string, tokenID string) error {
	if err := tx.Where("contract_address = ? AND token_id = ?", contractAddress, tokenID).
		Delete(&schema.PendingMint{}).Error; err != nil {
		return fmt.Errorf("failed to delete pending mint: %w", err)
	}
	return nil
}

// InsertNFTRecord inserts a record and clears any pending entry of the same token
func (s *pgStore) InsertNFTRecord(ctx context.Context, record *schema.NFTRecord) (bool, error) {
	var created bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = insertNFTRecord(tx, record)
		if err != nil {
			return err
		}
		return deletePendingMintByToken(tx, record.ContractAddress, record.TokenID)
	})
	if err != nil {
		return false, err
	}

	return created, nil
}

// updateOwner moves a token to ownerAddress on its record and on any pending entry.
// Creator is never touched.
func updateOwner(tx *gorm.DB, contractAddress string, tokenID string, ownerAddress string) (bool, error) {
	changes := map[string]interface{}{
		"owner_address": ownerAddress,
		"updated_at":    gorm.Expr("now()"),
	}

	res := tx.Model(&schema.NFTRecord{}).
		Where("contract_address = ? AND token_id = ?", contractAddress, tokenID).
		Updates(changes)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update nft owner: %w", res.Error)
	}

	pending := tx.Model(&schema.PendingMint{}).
		Where("contract_address = ? AND token_id = ?", contractAddress, tokenID).
		Updates(changes)
	if pending.Error != nil {
		return false, fmt.Errorf("failed to update pending mint owner: %w", pending.Error)
	}

	return res.RowsAffected > 0, nil
}

// UpdateNFTOwner applies a single ownership change outside a scan batch
func (s *pgStore) UpdateNFTOwner(ctx context.Context, contractAddress string, tokenID string, ownerAddress string) (bool, error) {
	var updated bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		updated, err = updateOwner(tx, contractAddress, tokenID, ownerAddress)
		return err
	})
	return updated, err
}

// GetNFTRecord retrieves a record by contract and token id
func (s *pgStore) GetNFTRecord(ctx context.Context, contractAddress string, tokenID string) (*schema.NFTRecord, error) {
	var record schema.NFTRecord
	err := s.db.WithContext(ctx).
		Where("contract_address = ? AND token_id = ?", contractAddress, tokenID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get nft record: %w", err)
	}

	return &record, nil
}

// ListNFTRecords lists records ordered by newest first
func (s *pgStore) ListNFTRecords(ctx context.Context, filter NFTFilter) ([]schema.NFTRecord, int64, error) {
	query := s.db.WithContext(ctx).Model(&schema.NFTRecord{})

	if filter.ContractAddress != "" {
		query = query.Where("contract_address = ?", filter.ContractAddress)
	}
	if filter.OwnerAddress != "" {
		query = query.Where("owner_address = ?", filter.OwnerAddress)
	}
	if filter.CreatorAddress != "" {
		query = query.Where("creator_address = ?", filter.CreatorAddress)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.HasGeo != nil {
		if *filter.HasGeo {
			query = query.Where("latitude IS NOT NULL AND longitude IS NOT NULL")
		} else {
			query = query.Where("latitude IS NULL OR longitude IS NULL")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count nft records: %w", err)
	}

	var records []schema.NFTRecord
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(normalizeLimit(filter.Limit)).
		Offset(max(filter.Offset, 0)).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list nft records: %w", err)
	}

	return records, total, nil
}

// ListTokenIDs returns the token ids stored for a contract
func (s *pgStore) ListTokenIDs(ctx context.Context, contractAddress string) ([]string, error) {
	var tokenIDs []string
	err := s.db.WithContext(ctx).
		Model(&schema.NFTRecord{}).
		Where("contract_address = ?", contractAddress).
		Pluck("token_id", &tokenIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list token ids: %w", err)
	}

	return tokenIDs, nil
}

