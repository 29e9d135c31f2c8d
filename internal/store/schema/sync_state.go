package schema

import "time"

// SyncState represents the sync_states table - one checkpoint per contract
type SyncState struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ContractAddress is the lowercase address the checkpoint belongs to
	ContractAddress string `gorm:"column:contract_address;not null;type:text;uniqueIndex"`
	// LastProcessedBlock is the highest block fully processed
	LastProcessedBlock uint64 `gorm:"column:last_processed_block;not null;default:0"`
	// LastSyncAt is when the checkpoint last advanced
	LastSyncAt time.Time `gorm:"column:last_sync_at;not null;default:now()"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the SyncState model
func (SyncState) TableName() string {
	return "sync_states"
}
