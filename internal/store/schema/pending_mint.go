package schema

import "time"

// PendingMint represents the pending_mints table - mints whose metadata could not be resolved yet
type PendingMint struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ContractAddress is the lowercase address of the NFT contract
	ContractAddress string `gorm:"column:contract_address;not null;type:text;uniqueIndex:idx_pending_mints_contract_token,priority:1"`
	// TokenID is the decimal form of the on-chain token id
	TokenID string `gorm:"column:token_id;not null;type:text;uniqueIndex:idx_pending_mints_contract_token,priority:2"`
	// OwnerAddress is the owner observed when the entry was created
	OwnerAddress string `gorm:"column:owner_address;not null;type:text"`
	// CreatorAddress is the minter when known from the mint log
	CreatorAddress *string `gorm:"column:creator_address;type:text"`
	// TransactionHash is the mint transaction when known
	TransactionHash *string `gorm:"column:transaction_hash;type:text"`
	// RetryCount counts unsuccessful sweep attempts
	RetryCount int `gorm:"column:retry_count;not null;default:0"`
	// LastError is the most recent failure, kept for operator inspection
	LastError *string `gorm:"column:last_error;type:text"`
	// LastAttemptAt is the time of the most recent sweep attempt
	LastAttemptAt *time.Time `gorm:"column:last_attempt_at;type:timestamptz"`
	// ClaimedBy is the claim token of the sweep currently processing the entry
	ClaimedBy *string `gorm:"column:claimed_by;type:text"`
	// ClaimedUntil is when the current claim lease expires
	ClaimedUntil *time.Time `gorm:"column:claimed_until;type:timestamptz"`
	// CreatedAt is the timestamp when this entry was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when this entry was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the PendingMint model
func (PendingMint) TableName() string {
	return "pending_mints"
}
